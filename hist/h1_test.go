package hist

import (
	"math"
	"testing"
)

func TestFindBin(t *testing.T) {
	h, err := NewH1("h", "", 10, 0, 100)
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range []struct {
		x   float64
		bin int
	}{
		{-5, 0},
		{0, 1},
		{9.999, 1},
		{10, 2},
		{99.999, 10},
		{100, 11},
		{250, 11},
	} {
		if bin := h.FindBin(v.x); bin != v.bin {
			t.Errorf("FindBin(%g) = %d, want %d", v.x, bin, v.bin)
		}
	}
}

func TestIntegralIncludesFlows(t *testing.T) {
	h, err := NewH1("h", "", 4, 0, 4)
	if err != nil {
		t.Fatal(err)
	}
	h.Fill(-1, 2)  // underflow
	h.Fill(0.5, 3) // bin 1
	h.Fill(2.5, 4) // bin 3
	h.Fill(10, 5)  // overflow

	if got, want := h.Integral(), 14.0; got != want {
		t.Errorf("Integral() = %g, want %g", got, want)
	}
	if got, want := h.IntegralRange(1, 4), 7.0; got != want {
		t.Errorf("IntegralRange(1, 4) = %g, want %g", got, want)
	}
	if got, want := h.IntegralRange(0, h.Nbins()+1), h.Integral(); got != want {
		t.Errorf("IntegralRange over all bins = %g, want %g", got, want)
	}
}

func TestScale(t *testing.T) {
	h, err := NewH1("h", "", 2, 0, 2)
	if err != nil {
		t.Fatal(err)
	}
	h.SetBinContent(0, 1)
	h.SetBinContent(1, 2)
	h.SetBinContent(2, 3)
	h.SetBinContent(3, 4)

	h.Scale(0.5)

	if got, want := h.Integral(), 5.0; math.Abs(got-want) > 1e-12 {
		t.Errorf("Integral() after Scale = %g, want %g", got, want)
	}
	if got, want := h.BinContent(0), 0.5; got != want {
		t.Errorf("underflow after Scale = %g, want %g", got, want)
	}
}

func TestCloneIsDeep(t *testing.T) {
	h, err := NewH1("orig", "title", 3, 0, 3)
	if err != nil {
		t.Fatal(err)
	}
	h.Fill(1.5, 7)

	c := h.Clone("copy").(*H1)
	if c.Name() != "copy" {
		t.Errorf("clone name = %s, want copy", c.Name())
	}

	c.Fill(1.5, 1)
	if got, want := h.Integral(), 7.0; got != want {
		t.Errorf("source integral changed by clone fill: %g, want %g", got, want)
	}

	same := h.Clone("").(*H1)
	if same.Name() != "orig" {
		t.Errorf("empty-name clone = %s, want orig", same.Name())
	}
}

func TestNewH1Rejects(t *testing.T) {
	if _, err := NewH1("h", "", 0, 0, 1); err == nil {
		t.Error("expected an error for zero bins")
	}
	if _, err := NewH1("h", "", 5, 1, 1); err == nil {
		t.Error("expected an error for an empty axis range")
	}
}
