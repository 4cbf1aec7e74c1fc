package tree

import (
	"fmt"
	"io"
	"testing"

	"github.com/qbuat/rootgo/hist"
)

// memTable is an in-memory Table for tests: one float column per name.
type memTable struct {
	name   string
	weight float64
	cols   map[string][]float32
	order  []string
	bound  map[string]*Float
	badRow int64 // row index that fails to read; -1 for none
}

func newMemTable(name string, weight float64, cols map[string][]float32, order []string) *memTable {
	return &memTable{
		name:   name,
		weight: weight,
		cols:   cols,
		order:  order,
		bound:  make(map[string]*Float),
		badRow: -1,
	}
}

func (m *memTable) Name() string          { return m.name }
func (m *memTable) BranchNames() []string { return m.order }
func (m *memTable) Weight() float64       { return m.weight }

func (m *memTable) Bind(branch string, cell Cell) error {
	if _, ok := m.cols[branch]; !ok {
		return fmt.Errorf("no branch %s", branch)
	}
	f, ok := cell.(*Float)
	if !ok {
		return fmt.Errorf("branch %s holds F", branch)
	}
	m.bound[branch] = f
	return nil
}

func (m *memTable) ReadEntry(i int64) error {
	if i == m.badRow {
		return fmt.Errorf("row %d is corrupt", i)
	}
	for branch, cell := range m.bound {
		col := m.cols[branch]
		if i < 0 || i >= int64(len(col)) {
			return io.EOF
		}
		cell.Value = col[i]
	}
	if len(m.bound) == 0 {
		if len(m.order) == 0 {
			return io.EOF
		}
		if i >= int64(len(m.cols[m.order[0]])) {
			return io.EOF
		}
	}
	return nil
}

func floatBuffer(t *testing.T, names ...string) *Buffer {
	t.Helper()
	vars := make([]Var, len(names))
	for i, name := range names {
		vars[i] = Var{Name: name, Type: "F"}
	}
	buf, err := NewBuffer(vars)
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestScannerReadsAllRows(t *testing.T) {
	table := newMemTable("events", 1, map[string][]float32{
		"pt": {10, 20, 30},
	}, []string{"pt"})
	buf := floatBuffer(t, "pt")

	tr, err := New(table, buf)
	if err != nil {
		t.Fatal(err)
	}

	pt := buf.Get("pt").(*Float)
	var got []float32
	s := tr.Scan()
	for s.Next() {
		got = append(got, pt.Value)
	}
	if err := s.Err(); err != nil {
		t.Fatal(err)
	}
	if len(got) != 3 || got[0] != 10 || got[2] != 30 {
		t.Errorf("rows = %v, want [10 20 30]", got)
	}
}

func TestScanRestartsPerCall(t *testing.T) {
	table := newMemTable("events", 1, map[string][]float32{
		"pt": {1, 2},
	}, []string{"pt"})
	buf := floatBuffer(t, "pt")

	tr, err := New(table, buf)
	if err != nil {
		t.Fatal(err)
	}

	for pass := 0; pass < 2; pass++ {
		n := 0
		for s := tr.Scan(); s.Next(); {
			n++
		}
		if n != 2 {
			t.Errorf("pass %d read %d rows, want 2", pass, n)
		}
	}
}

func TestScannerStopsAtUnreadableIndex(t *testing.T) {
	table := newMemTable("events", 1, map[string][]float32{
		"pt": {1, 2, 3, 4},
	}, []string{"pt"})
	table.badRow = 2
	buf := floatBuffer(t, "pt")

	tr, err := New(table, buf)
	if err != nil {
		t.Fatal(err)
	}

	n := 0
	s := tr.Scan()
	for s.Next() {
		n++
	}
	if n != 2 {
		t.Errorf("read %d rows, want 2 before the corrupt one", n)
	}
	if s.Err() == nil {
		t.Error("scanner did not report the read failure")
	}
}

func TestNewRejectsMissingBranch(t *testing.T) {
	table := newMemTable("events", 1, map[string][]float32{
		"pt": {1},
	}, []string{"pt"})
	buf := floatBuffer(t, "pt", "eta")

	if _, err := New(table, buf); err == nil {
		t.Error("expected an error binding a missing branch")
	}
}

// fakeHist is a Draw result histogram accepting display attributes.
type fakeHist struct {
	name      string
	decorated int
	style     hist.Style
}

func (h *fakeHist) Name() string              { return h.name }
func (h *fakeHist) Decorate(style hist.Style) { h.decorated++; h.style = style }

// fakeDir is a Directory whose plotter materializes histograms into it.
type fakeDir map[string]Histogram

func (d fakeDir) Get(name string) (Histogram, bool) {
	h, ok := d[name]
	return h, ok
}

// fakePlotter creates the named histogram in the directory on Draw.
type fakePlotter struct {
	dir   fakeDir
	calls []string
}

func (p *fakePlotter) Draw(table Table, args ...string) error {
	p.calls = append(p.calls, args[0])
	if m := drawCommand.FindStringSubmatch(args[0]); m != nil {
		name := m[drawCommand.SubexpIndex("name")]
		if _, ok := p.dir[name]; !ok {
			p.dir[name] = &fakeHist{name: name}
		}
	}
	return nil
}

func TestDrawCapturesHistogramName(t *testing.T) {
	table := newMemTable("events", 1, map[string][]float32{"pt": {1}}, []string{"pt"})
	buf := floatBuffer(t, "pt")
	tr, err := New(table, buf)
	if err != nil {
		t.Fatal(err)
	}
	tr.Style = hist.Style{LineColor: 4}

	dir := fakeDir{}
	plotter := &fakePlotter{dir: dir}

	h, err := tr.Draw(plotter, dir, "pt>>h_pt(100,0,500)", "weight", "goff")
	if err != nil {
		t.Fatal(err)
	}
	if h == nil || h.Name() != "h_pt" {
		t.Fatalf("histogram = %v, want h_pt", h)
	}
	if fh := h.(*fakeHist); fh.decorated != 1 || fh.style.LineColor != 4 {
		t.Errorf("new histogram not decorated with the tree style: %+v", fh)
	}
}

func TestDrawKeepsExistingDecoration(t *testing.T) {
	table := newMemTable("events", 1, map[string][]float32{"pt": {1}}, []string{"pt"})
	buf := floatBuffer(t, "pt")
	tr, err := New(table, buf)
	if err != nil {
		t.Fatal(err)
	}

	existing := &fakeHist{name: "h_pt"}
	dir := fakeDir{"h_pt": existing}
	plotter := &fakePlotter{dir: dir}

	h, err := tr.Draw(plotter, dir, "pt>>+h_pt")
	if err != nil {
		t.Fatal(err)
	}
	if h != existing {
		t.Fatal("expected the pre-existing histogram back")
	}
	if existing.decorated != 0 {
		t.Error("pre-existing histogram must keep its display attributes")
	}
}

func TestDrawWithoutRedirection(t *testing.T) {
	table := newMemTable("events", 1, map[string][]float32{"pt": {1}}, []string{"pt"})
	buf := floatBuffer(t, "pt")
	tr, err := New(table, buf)
	if err != nil {
		t.Fatal(err)
	}

	dir := fakeDir{}
	plotter := &fakePlotter{dir: dir}

	h, err := tr.Draw(plotter, dir, "pt")
	if err != nil {
		t.Fatal(err)
	}
	if h != nil {
		t.Errorf("histogram = %v, want nil without >> redirection", h)
	}

	if _, err := tr.Draw(plotter, dir); err == nil {
		t.Error("expected an error for Draw with no arguments")
	}
}
