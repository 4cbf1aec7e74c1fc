// treesummary prints summary statistics and an ASCII histogram of one
// scalar branch of a tree chained across one or more files.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
	"github.com/montanaflynn/stats"
	"github.com/qbuat/rootgo"
	"github.com/qbuat/rootgo/tree"
	"github.com/qbuat/rootgo/tree/csvfile"
)

// ManifestEntry is one line of a -manifest file.
type ManifestEntry struct {
	Path string `csv:"path"`
}

func main() {
	var treeName, files, manifest, varDecl string

	flag.StringVar(&treeName, "tree", "", "Name of the tree to read")
	flag.StringVar(&files, "files", "", "Comma-delimited list of tree files")
	flag.StringVar(&manifest, "manifest", "", "CSV manifest of tree files (column: path). Alternative to -files.")
	flag.StringVar(&varDecl, "var", "", "Scalar branch to summarize, e.g. pt/F or njet/I")
	flag.Parse()

	if treeName == "" || varDecl == "" || (files == "" && manifest == "") {
		flag.PrintDefaults()
		os.Exit(1)
	}

	paths, err := resolvePaths(files, manifest)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	name, _, found := strings.Cut(varDecl, "/")
	if !found {
		log.Fatalf("branch declaration %q lacks a /TYPE suffix", varDecl)
	}
	buf, err := tree.NewBuffer([]tree.Var{declFromString(varDecl)})
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}

	values, err := collect(treeName, paths, buf, name)
	if err != nil {
		log.Fatalln(pfx.Err(err))
	}
	if len(values) == 0 {
		log.Fatalf("no rows read for branch %s of tree %s", name, treeName)
	}

	printSummary(name, values)

	// The number of buckets is arbitrary.
	hist := histogram.Hist(25, values)
	if err := histogram.Fprint(os.Stdout, hist, histogram.Linear(5)); err != nil {
		log.Fatalln(pfx.Err(err))
	}
}

func declFromString(decl string) tree.Var {
	name, spelling, _ := strings.Cut(strings.TrimSpace(decl), "/")
	return tree.Var{Name: name, Type: spelling}
}

func collect(treeName string, paths []string, buf *tree.Buffer, branch string) ([]float64, error) {
	chain := tree.NewChain(treeName, paths, buf, csvfile.Open)
	defer chain.Close()

	var values []float64
	for chain.Next() {
		switch cell := buf.Get(branch).(type) {
		case *tree.Float:
			values = append(values, float64(cell.Value))
		case *tree.Int:
			values = append(values, float64(cell.Value))
		case *tree.UInt:
			values = append(values, float64(cell.Value))
		default:
			return nil, fmt.Errorf("branch %s is not a scalar (%s)", branch, cell.Kind())
		}
	}
	return values, nil
}

func printSummary(name string, values []float64) {
	mean, _ := stats.Mean(values)
	median, _ := stats.Median(values)
	stdev, _ := stats.StandardDeviation(values)
	min, _ := stats.Min(values)
	max, _ := stats.Max(values)

	fmt.Printf("%s: n=%d mean=%g median=%g stdev=%g min=%g max=%g\n",
		name, len(values), mean, median, stdev, min, max)
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
