package tree

import (
	"errors"
	"fmt"
	"io"
	"regexp"

	"github.com/qbuat/rootgo/hist"
)

// Table is one row-oriented dataset with named, typed columns ("branches").
// Implementations bind buffer cells to columns and overwrite the bound cells
// on every ReadEntry.
type Table interface {
	Name() string
	BranchNames() []string

	// Bind attaches a cell to the named branch, so that ReadEntry fills it.
	Bind(branch string, cell Cell) error

	// ReadEntry loads row i into every bound cell. io.EOF signals that i is
	// past the last row.
	ReadEntry(i int64) error

	// Weight is the table-level event weight.
	Weight() float64
}

// File is a container of named tables.
type File interface {
	Get(tree string) (Table, error)
	Close() error
}

// FileOpener opens a backing file by path. Chains use it to acquire one
// file at a time.
type FileOpener func(path string) (File, error)

// Tree couples a table with the buffer its columns are bound to.
type Tree struct {
	table Table
	buf   *Buffer

	// Style is applied to histograms newly created by Draw.
	Style hist.Style
}

// New binds every buffer cell to its same-named branch and returns the
// bound tree.
func New(table Table, buf *Buffer) (*Tree, error) {
	for _, name := range buf.Names() {
		if err := table.Bind(name, buf.Get(name)); err != nil {
			return nil, fmt.Errorf("tree: binding branch %s of tree %s: %w", name, table.Name(), err)
		}
	}
	return &Tree{table: table, buf: buf}, nil
}

// Buffer returns the buffer bound to the tree's columns.
func (t *Tree) Buffer() *Buffer { return t.buf }

// Table returns the underlying table.
func (t *Tree) Table() Table { return t.table }

// Scan starts a fresh pass over the tree's rows from entry 0. Each call
// returns an independent scanner, so iteration restarts per call.
func (t *Tree) Scan() *Scanner {
	return &Scanner{table: t.table}
}

// Scanner is a forward-only pass over a table's rows. It stops at the first
// index that cannot be read; Err distinguishes a read failure from plain
// exhaustion.
type Scanner struct {
	table Table
	next  int64
	err   error
}

// Next loads the next row into the bound cells and reports whether one was
// read.
func (s *Scanner) Next() bool {
	if s.err != nil {
		return false
	}
	if err := s.table.ReadEntry(s.next); err != nil {
		if err != io.EOF {
			s.err = err
		}
		return false
	}
	s.next++
	return true
}

// Entry returns the index of the row most recently read.
func (s *Scanner) Entry() int64 { return s.next - 1 }

// Err returns the read failure that stopped the scan, if any. Reaching the
// end of the table is not an error.
func (s *Scanner) Err() error { return s.err }

// drawCommand extracts the result-histogram name from a draw expression
// such as "pt>>h_pt(100,0,500)".
var drawCommand = regexp.MustCompile(`^.+>>\+?(?P<name>[^(]+).*$`)

// Plotter executes a draw expression against a table, materializing the
// result histogram into a directory.
type Plotter interface {
	Draw(table Table, args ...string) error
}

// Directory is a name-keyed registry of histogram objects, typically owned
// by the plotting engine.
type Directory interface {
	Get(name string) (Histogram, bool)
}

// Histogram is the minimal view Draw has of a plotted result.
type Histogram interface {
	Name() string
}

// Decorator is implemented by histograms that accept display attributes.
type Decorator interface {
	Decorate(style hist.Style)
}

// Draw runs a draw expression through the plotter and returns the resulting
// histogram, if the expression names one with the ">>name" redirection
// syntax. A histogram that already existed beforehand is returned as is; a
// newly created one is first decorated with the tree's display style.
func (t *Tree) Draw(plotter Plotter, dir Directory, args ...string) (Histogram, error) {
	if len(args) == 0 {
		return nil, errors.New("tree: Draw did not receive any arguments")
	}

	var histname string
	existed := false
	if m := drawCommand.FindStringSubmatch(args[0]); m != nil {
		histname = m[drawCommand.SubexpIndex("name")]
		_, existed = dir.Get(histname)
	}

	if err := plotter.Draw(t.table, args...); err != nil {
		return nil, err
	}
	if histname == "" {
		return nil, nil
	}

	h, ok := dir.Get(histname)
	if !ok {
		return nil, fmt.Errorf("tree: draw expression %q produced no histogram %q", args[0], histname)
	}
	// A pre-existing histogram keeps whatever display attributes it has.
	if !existed {
		if d, ok := h.(Decorator); ok {
			d.Decorate(t.Style)
		}
	}
	return h, nil
}
