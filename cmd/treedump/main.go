// treedump prints the rows of a tree chained across one or more files.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"github.com/qbuat/rootgo"
	"github.com/qbuat/rootgo/tree"
	"github.com/qbuat/rootgo/tree/csvfile"
)

// ManifestEntry is one line of a -manifest file.
type ManifestEntry struct {
	Path string `csv:"path"`
}

func main() {
	var treeName, files, manifest, vars string
	var flatten bool
	var max int

	flag.StringVar(&treeName, "tree", "", "Name of the tree to read")
	flag.StringVar(&files, "files", "", "Comma-delimited list of tree files")
	flag.StringVar(&manifest, "manifest", "", "CSV manifest of tree files (column: path). Alternative to -files.")
	flag.StringVar(&vars, "vars", "", "Comma-delimited branch declarations, e.g. pt/F,njet/I,trk_pt/VF")
	flag.BoolVar(&flatten, "flatten", false, "Demote vector-of-vector branch types to their flattened form")
	flag.IntVar(&max, "max", 0, "Stop after this many rows (0 = no limit)")
	flag.Parse()

	if treeName == "" || vars == "" || (files == "" && manifest == "") {
		flag.PrintDefaults()
		os.Exit(1)
	}

	paths, err := resolvePaths(files, manifest)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	buf, err := buildBuffer(vars, flatten)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	chain := tree.NewChain(treeName, paths, buf, csvfile.Open)
	defer chain.Close()

	names := buf.Names()
	for n := 0; chain.Next(); n++ {
		if max > 0 && n >= max {
			break
		}
		fields := make([]string, len(names))
		for i, name := range names {
			fields[i] = fmt.Sprintf("%s=%s", name, buf.Get(name))
		}
		fmt.Printf("%s (weight=%g)\n", strings.Join(fields, " "), chain.Weight())
	}
}

func resolvePaths(files, manifest string) ([]string, error) {
	if manifest != "" {
		f, err := os.Open(rootgo.ExpandHome(manifest))
		if err != nil {
			return nil, err
		}
		defer f.Close()

		entries := []*ManifestEntry{}
		if err := gocsv.UnmarshalFile(f, &entries); err != nil {
			return nil, err
		}

		paths := make([]string, 0, len(entries))
		for _, entry := range entries {
			paths = append(paths, rootgo.ExpandHome(entry.Path))
		}
		return paths, nil
	}

	parts := strings.Split(files, ",")
	paths := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			paths = append(paths, rootgo.ExpandHome(part))
		}
	}
	return paths, nil
}

func buildBuffer(vars string, flatten bool) (*tree.Buffer, error) {
	declared := []tree.Var{}
	for _, decl := range strings.Split(vars, ",") {
		name, spelling, found := strings.Cut(strings.TrimSpace(decl), "/")
		if !found {
			return nil, fmt.Errorf("branch declaration %q lacks a /TYPE suffix", decl)
		}
		declared = append(declared, tree.Var{Name: name, Type: spelling})
	}

	var opts []tree.BufferOption
	if flatten {
		opts = append(opts, tree.Flattened())
	}
	return tree.NewBuffer(declared, opts...)
}
