package tree

import (
	"errors"
	"testing"
)

func TestNewBufferKinds(t *testing.T) {
	for _, v := range []struct {
		spelling string
		kind     Kind
	}{
		{"I", KindInt},
		{"i", KindInt},
		{"Int_T", KindInt},
		{"UI", KindUInt},
		{"uint_t", KindUInt},
		{"F", KindFloat},
		{"Float_T", KindFloat},
		{"VI", KindVecInt},
		{"vector<int>", KindVecInt},
		{"VF", KindVecFloat},
		{"vector<float>", KindVecFloat},
		{"VVI", KindVecVecInt},
		{"vector<vector<int> >", KindVecVecInt},
		{"VVF", KindVecVecFloat},
		{"vector<vector<float> >", KindVecVecFloat},
	} {
		buf, err := NewBuffer([]Var{{Name: "x", Type: v.spelling}})
		if err != nil {
			t.Errorf("spelling %q: %v", v.spelling, err)
			continue
		}
		if got := buf.Get("x").Kind(); got != v.kind {
			t.Errorf("spelling %q resolved to %s, want %s", v.spelling, got, v.kind)
		}
	}
}

func TestNewBufferUnsupportedType(t *testing.T) {
	_, err := NewBuffer([]Var{{Name: "x", Type: "D"}})
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("error = %v, want ErrUnsupportedType", err)
	}
}

func TestNewBufferFlatten(t *testing.T) {
	for _, v := range []struct {
		spelling string
		kind     Kind
	}{
		{"Int", KindInt},
		{"Float_T", KindFloat},
		{"vector<float>", KindFloat},
		{"vector<int, allocator<int> >", KindInt},
		{"VVI", KindVecInt},
		{"VVF", KindVecFloat},
		{"vector<vector<int>, allocator<vector<int> > >", KindVecInt},
		{"vector<vector<float>, allocator<vector<float> > >", KindVecFloat},
		// Historically bound to VI rather than VF; see flatSpellings.
		{"vector<vector<float> >", KindVecInt},
	} {
		buf, err := NewBuffer([]Var{{Name: "x", Type: v.spelling}}, Flattened())
		if err != nil {
			t.Errorf("flattened spelling %q: %v", v.spelling, err)
			continue
		}
		if got := buf.Get("x").Kind(); got != v.kind {
			t.Errorf("flattened spelling %q resolved to %s, want %s", v.spelling, got, v.kind)
		}
	}

	if _, err := NewBuffer([]Var{{Name: "x", Type: "mystery"}}, Flattened()); !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("unknown flattened spelling: error = %v, want ErrUnsupportedType", err)
	}
}

func TestNewBufferDuplicateName(t *testing.T) {
	_, err := NewBuffer([]Var{
		{Name: "pt", Type: "F"},
		{Name: "pt", Type: "I"},
	})
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("error = %v, want ErrDuplicateName", err)
	}
}

func TestNewBufferIllegalName(t *testing.T) {
	for _, name := range []string{"Reset", "get", "_hidden", "Names"} {
		_, err := NewBuffer([]Var{{Name: name, Type: "F"}})
		if !errors.Is(err, ErrIllegalName) {
			t.Errorf("name %q: error = %v, want ErrIllegalName", name, err)
		}
	}
}

func TestBufferDefaultsAndReset(t *testing.T) {
	buf, err := NewBuffer([]Var{
		{Name: "njet", Type: "I"},
		{Name: "run", Type: "UI"},
		{Name: "pt", Type: "F"},
		{Name: "trk", Type: "VF"},
	})
	if err != nil {
		t.Fatal(err)
	}

	njet := buf.Get("njet").(*Int)
	run := buf.Get("run").(*UInt)
	pt := buf.Get("pt").(*Float)
	trk := buf.Get("trk").(*VecFloat)

	if njet.Value != -1111 || pt.Value != -1111 {
		t.Errorf("scalar defaults = %d, %g, want -1111", njet.Value, pt.Value)
	}
	if run.Value != 0 {
		t.Errorf("unsigned default = %d, want 0 for a negative buffer default", run.Value)
	}

	njet.Value = 4
	run.Value = 337833
	pt.Value = 52.5
	trk.Values = append(trk.Values, 1, 2, 3)

	buf.Reset()

	if njet.Value != -1111 || run.Value != 0 || pt.Value != -1111 {
		t.Errorf("scalars after Reset = %d, %d, %g", njet.Value, run.Value, pt.Value)
	}
	if len(trk.Values) != 0 {
		t.Errorf("vector after Reset has %d elements", len(trk.Values))
	}
}

func TestBufferWithDefault(t *testing.T) {
	buf, err := NewBuffer([]Var{{Name: "pt", Type: "F"}}, WithDefault(-999))
	if err != nil {
		t.Fatal(err)
	}
	if got := buf.Get("pt").(*Float).Value; got != -999 {
		t.Errorf("default = %g, want -999", got)
	}
}

func TestBufferOrder(t *testing.T) {
	buf, err := NewBuffer([]Var{
		{Name: "c", Type: "F"},
		{Name: "a", Type: "I"},
		{Name: "b", Type: "VI"},
	})
	if err != nil {
		t.Fatal(err)
	}
	names := buf.Names()
	if len(names) != 3 || names[0] != "c" || names[1] != "a" || names[2] != "b" {
		t.Errorf("names = %v, want declaration order", names)
	}
	if buf.Len() != 3 {
		t.Errorf("Len() = %d, want 3", buf.Len())
	}
}
