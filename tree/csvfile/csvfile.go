// Package csvfile stores trees as delimited text files: a metadata line, a
// header of name/TYPE column declarations, then one CSV record per row.
// Sequence-valued columns pack their elements into one field with ';'
// separators. Files may be gzip-, zip-, xz-, zlib- or bzip2-compressed;
// compression is sniffed and undone transparently on open.
//
// It is a reference implementation of the tree.File/tree.Table interfaces,
// not a reimplementation of any native columnar format.
package csvfile

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/csimplestring/go-csv/detector"
	"github.com/qbuat/rootgo"
	"github.com/qbuat/rootgo/tree"
)

// metadataPrefix opens the first line of every tree file:
//
//	#tree <name> weight=<w>
const metadataPrefix = "#tree "

type column struct {
	name string
	kind tree.Kind
}

// Table is one tree read eagerly from a file.
type Table struct {
	name    string
	weight  float64
	columns []column
	rows    [][]string
	bound   map[int]tree.Cell
}

var _ tree.Table = (*Table)(nil)

func (t *Table) Name() string    { return t.name }
func (t *Table) Weight() float64 { return t.weight }

func (t *Table) BranchNames() []string {
	names := make([]string, len(t.columns))
	for i, col := range t.columns {
		names[i] = col.name
	}
	return names
}

// Bind attaches a cell to the named column. The column must exist and its
// declared kind must match the cell's. Nested sequence kinds are not
// representable in this backend.
func (t *Table) Bind(branch string, cell tree.Cell) error {
	switch cell.Kind() {
	case tree.KindVecVecInt, tree.KindVecVecFloat:
		return fmt.Errorf("csvfile: kind %s is not representable in this backend", cell.Kind())
	}

	for i, col := range t.columns {
		if col.name != branch {
			continue
		}
		if col.kind != cell.Kind() {
			return fmt.Errorf("csvfile: branch %s in tree %s holds %s, not %s", branch, t.name, col.kind, cell.Kind())
		}
		if t.bound == nil {
			t.bound = make(map[int]tree.Cell)
		}
		t.bound[i] = cell
		return nil
	}
	return fmt.Errorf("csvfile: tree %s has no branch %s", t.name, branch)
}

// ReadEntry parses row i into every bound cell. Only bound columns are
// touched.
func (t *Table) ReadEntry(i int64) error {
	if i < 0 || i >= int64(len(t.rows)) {
		return io.EOF
	}
	row := t.rows[i]
	for col, cell := range t.bound {
		if col >= len(row) {
			return fmt.Errorf("csvfile: row %d of tree %s has no field %d", i, t.name, col)
		}
		if err := fill(cell, row[col]); err != nil {
			return fmt.Errorf("csvfile: row %d, branch %s: %w", i, t.columns[col].name, err)
		}
	}
	return nil
}

func fill(cell tree.Cell, field string) error {
	switch c := cell.(type) {
	case *tree.Int:
		v, err := strconv.ParseInt(field, 10, 32)
		if err != nil {
			return err
		}
		c.Value = int32(v)
	case *tree.UInt:
		v, err := strconv.ParseUint(field, 10, 32)
		if err != nil {
			return err
		}
		c.Value = uint32(v)
	case *tree.Float:
		v, err := strconv.ParseFloat(field, 32)
		if err != nil {
			return err
		}
		c.Value = float32(v)
	case *tree.VecInt:
		c.Values = c.Values[:0]
		if field == "" {
			return nil
		}
		for _, part := range strings.Split(field, ";") {
			v, err := strconv.ParseInt(part, 10, 32)
			if err != nil {
				return err
			}
			c.Values = append(c.Values, int32(v))
		}
	case *tree.VecFloat:
		c.Values = c.Values[:0]
		if field == "" {
			return nil
		}
		for _, part := range strings.Split(field, ";") {
			v, err := strconv.ParseFloat(part, 32)
			if err != nil {
				return err
			}
			c.Values = append(c.Values, float32(v))
		}
	default:
		return fmt.Errorf("unbindable cell kind %s", cell.Kind())
	}
	return nil
}

// File is one opened tree file. The contents are read eagerly, so Close
// only drops them.
type File struct {
	path  string
	table *Table
}

var _ tree.File = (*File)(nil)

// Open reads the named (possibly compressed) tree file into memory.
func Open(path string) (tree.File, error) {
	rc, err := rootgo.OpenMaybeCompressed(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	table, err := parse(rc)
	if err != nil {
		return nil, fmt.Errorf("csvfile: %s: %w", path, err)
	}
	return &File{path: path, table: table}, nil
}

// Get returns the file's table. Requesting any other tree name fails.
func (f *File) Get(name string) (tree.Table, error) {
	if name != f.table.name {
		return nil, fmt.Errorf("csvfile: %s holds tree %q, not %q", f.path, f.table.name, name)
	}
	return f.table, nil
}

func (f *File) Close() error {
	f.table = nil
	return nil
}

// determineDelimiter sniffs whether the column region is comma- or
// tab-delimited. Anything else the detector proposes (';' in particular,
// which delimits sequence elements inside a field) falls back to comma.
func determineDelimiter(data []byte) rune {
	d := detector.New()
	for _, candidate := range d.DetectDelimiter(bytes.NewReader(data), '"') {
		switch candidate {
		case ",", "\t":
			return rune(candidate[0])
		}
	}
	return ','
}

func parse(r io.Reader) (*Table, error) {
	br := bufio.NewReader(r)

	meta, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, pfx.Err(err)
	}
	meta = strings.TrimRight(meta, "\r\n")
	if !strings.HasPrefix(meta, metadataPrefix) {
		return nil, fmt.Errorf("missing %q metadata line", strings.TrimSpace(metadataPrefix))
	}

	table := &Table{weight: 1}
	for i, field := range strings.Fields(meta[len(metadataPrefix):]) {
		if i == 0 {
			table.name = field
			continue
		}
		if w, ok := strings.CutPrefix(field, "weight="); ok {
			weight, err := strconv.ParseFloat(w, 64)
			if err != nil {
				return nil, fmt.Errorf("bad weight %q: %w", w, err)
			}
			table.weight = weight
		}
	}
	if table.name == "" {
		return nil, fmt.Errorf("metadata line declares no tree name")
	}

	rest, err := io.ReadAll(br)
	if err != nil {
		return nil, pfx.Err(err)
	}

	cr := csv.NewReader(bytes.NewReader(rest))
	cr.Comma = determineDelimiter(rest)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		// A tree with no columns at all; chains skip these.
		return table, nil
	}
	if err != nil {
		return nil, pfx.Err(err)
	}

	for _, decl := range header {
		name, spelling, found := strings.Cut(decl, "/")
		if !found {
			return nil, fmt.Errorf("column declaration %q lacks a /TYPE suffix", decl)
		}
		kind, err := tree.ResolveKind(spelling)
		if err != nil {
			return nil, err
		}
		table.columns = append(table.columns, column{name: name, kind: kind})
	}

	rows, err := cr.ReadAll()
	if err != nil {
		return nil, pfx.Err(err)
	}
	table.rows = rows

	return table, nil
}
