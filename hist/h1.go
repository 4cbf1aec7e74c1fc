// Package hist provides the in-memory one-dimensional histogram used by the
// measurement-assembly layer. It deliberately implements only the small
// operation set that layer needs (fill, integral, scale, clone); a native
// histogramming engine can be substituted behind the same method set.
package hist

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Histogram is the minimal histogram capability the measurement-assembly
// layer depends on. Any binned type with a total integral, in-place scaling,
// and deep cloning can stand in for H1, including wrappers around a native
// engine's histograms.
type Histogram interface {
	Name() string
	SetName(name string)
	Integral() float64
	Scale(f float64)
	Clone(name string) Histogram
}

// Style carries the display attributes a plotting frontend may consult. It
// has no effect on any numerical operation.
type Style struct {
	LineColor   int
	LineWidth   int
	FillColor   int
	FillStyle   int
	MarkerStyle int
}

// H1 is a fixed-binning one-dimensional histogram with underflow and
// overflow bins. Bin 0 is the underflow, bins 1..N the visible range, and
// bin N+1 the overflow, so content indexing matches the usual convention of
// ROOT-style histogramming engines.
type H1 struct {
	name     string
	title    string
	nbins    int
	xlow     float64
	xup      float64
	contents []float64
	entries  int64

	Style Style
}

var _ Histogram = (*H1)(nil)

// NewH1 creates an empty histogram with nbins uniform bins over [xlow, xup).
func NewH1(name, title string, nbins int, xlow, xup float64) (*H1, error) {
	if nbins < 1 {
		return nil, fmt.Errorf("hist: histogram %q needs at least one bin, got %d", name, nbins)
	}
	if xup <= xlow {
		return nil, fmt.Errorf("hist: histogram %q has an empty axis range [%g, %g)", name, xlow, xup)
	}

	return &H1{
		name:     name,
		title:    title,
		nbins:    nbins,
		xlow:     xlow,
		xup:      xup,
		contents: make([]float64, nbins+2),
	}, nil
}

func (h *H1) Name() string        { return h.name }
func (h *H1) SetName(name string) { h.name = name }
func (h *H1) Title() string       { return h.title }
func (h *H1) Nbins() int          { return h.nbins }
func (h *H1) Entries() int64      { return h.entries }

// FindBin returns the bin index holding x: 0 for underflow, Nbins()+1 for
// overflow.
func (h *H1) FindBin(x float64) int {
	if x < h.xlow {
		return 0
	}
	if x >= h.xup {
		return h.nbins + 1
	}
	return 1 + int(float64(h.nbins)*(x-h.xlow)/(h.xup-h.xlow))
}

// Fill adds weight w at coordinate x.
func (h *H1) Fill(x, w float64) {
	h.contents[h.FindBin(x)] += w
	h.entries++
}

// BinContent returns the content of bin i. Out-of-range indices return 0.
func (h *H1) BinContent(i int) float64 {
	if i < 0 || i >= len(h.contents) {
		return 0
	}
	return h.contents[i]
}

// SetBinContent sets the content of bin i. Out-of-range indices are ignored.
func (h *H1) SetBinContent(i int, v float64) {
	if i < 0 || i >= len(h.contents) {
		return
	}
	h.contents[i] = v
}

// Integral sums every bin, underflow and overflow included.
func (h *H1) Integral() float64 {
	return floats.Sum(h.contents)
}

// IntegralRange sums bins lo through hi inclusive, clamped to the valid
// index range. IntegralRange(0, Nbins()+1) equals Integral().
func (h *H1) IntegralRange(lo, hi int) float64 {
	if lo < 0 {
		lo = 0
	}
	if hi > h.nbins+1 {
		hi = h.nbins + 1
	}
	if hi < lo {
		return 0
	}
	return floats.Sum(h.contents[lo : hi+1])
}

// Scale multiplies every bin, flows included, by f.
func (h *H1) Scale(f float64) {
	floats.Scale(f, h.contents)
}

// Clone returns a deep copy of h under the given name. An empty name keeps
// the original's.
func (h *H1) Clone(name string) Histogram {
	if name == "" {
		name = h.name
	}
	out := &H1{
		name:     name,
		title:    h.title,
		nbins:    h.nbins,
		xlow:     h.xlow,
		xup:      h.xup,
		contents: make([]float64, len(h.contents)),
		entries:  h.entries,
		Style:    h.Style,
	}
	copy(out.contents, h.contents)
	return out
}

// Decorate applies display attributes without touching the contents.
func (h *H1) Decorate(style Style) {
	h.Style = style
}
