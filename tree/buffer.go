package tree

import (
	"errors"
	"fmt"
	"strings"
)

// Buffer configuration errors. Construction fails on the first offending
// declaration; no cells are created past it.
var (
	ErrUnsupportedType = errors.New("unsupported variable type")
	ErrDuplicateName   = errors.New("duplicate variable name")
	ErrIllegalName     = errors.New("illegal variable name")
)

// DefaultCellValue is the value scalar cells reset to unless overridden
// with WithDefault.
const DefaultCellValue = -1111

// Var declares one buffer variable: a branch name and a type spelling.
// Spellings are matched case-insensitively and several synonyms are accepted
// per kind, e.g. "F", "Float_T" and (after flattening) "vector<float>" all
// declare a Float cell.
type Var struct {
	Name string
	Type string
}

// BufferOption configures NewBuffer.
type BufferOption func(*bufferOptions)

type bufferOptions struct {
	def     float64
	flatten bool
}

// WithDefault overrides the value scalar cells reset to.
func WithDefault(v float64) BufferOption {
	return func(o *bufferOptions) { o.def = v }
}

// Flattened demotes composite vector-of-vector type spellings to their
// flattened single-vector form before resolution, for sources that store
// per-object sequences as one flat sequence per row.
func Flattened() BufferOption {
	return func(o *bufferOptions) { o.flatten = true }
}

// flatSpellings demotes type spellings to their flattened form. The table
// has long bound the "vector<vector<float> >" spelling to "VI": almost
// certainly a typo for "VF", but kept until the intended semantics are
// confirmed, since downstream ntuple configurations may rely on it.
var flatSpellings = map[string]string{
	"Float_T":                          "F",
	"Int_T":                            "I",
	"Int":                              "I",
	"Float":                            "F",
	"F":                                "F",
	"I":                                "I",
	"UI":                               "UI",
	"vector<float>":                    "F",
	"vector<int>":                      "I",
	"vector<int, allocator<int> >":     "I",
	"vector<float, allocator<float> >": "F",
	"VF":                               "F",
	"VI":                               "I",
	"vector<vector<float> >":           "VI",
	"vector<vector<int>, allocator<vector<int> > >":     "VI",
	"vector<vector<float>, allocator<vector<float> > >": "VF",
	"VVF": "VF",
	"VVI": "VI",
}

// ResolveKind maps a type spelling to its storage kind, case-insensitively.
func ResolveKind(spelling string) (Kind, error) {
	switch strings.ToUpper(spelling) {
	case "I", "INT_T":
		return KindInt, nil
	case "UI", "UINT_T":
		return KindUInt, nil
	case "F", "FLOAT_T":
		return KindFloat, nil
	case "VI", "VECTOR<INT>":
		return KindVecInt, nil
	case "VF", "VECTOR<FLOAT>":
		return KindVecFloat, nil
	case "VVI", "VECTOR<VECTOR<INT> >":
		return KindVecVecInt, nil
	case "VVF", "VECTOR<VECTOR<FLOAT> >":
		return KindVecVecFloat, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedType, strings.ToUpper(spelling))
}

// reservedNames are buffer method names; variables may not shadow them.
var reservedNames = map[string]struct{}{
	"get":    {},
	"names":  {},
	"cells":  {},
	"len":    {},
	"reset":  {},
	"string": {},
}

// Buffer is a name-keyed collection of typed cells bound to a table's
// columns for row-by-row access. It is constructed once from a list of
// variable declarations; the backing table mutates the cells in place as
// rows are read.
type Buffer struct {
	names []string
	cells map[string]Cell
}

// NewBuffer constructs a buffer from variable declarations. Duplicate
// names, names shadowing buffer methods or starting with "_", and
// unrecognized type spellings each fail with a distinct error kind.
func NewBuffer(vars []Var, opts ...BufferOption) (*Buffer, error) {
	o := bufferOptions{def: DefaultCellValue}
	for _, opt := range opts {
		opt(&o)
	}

	b := &Buffer{cells: make(map[string]Cell, len(vars))}
	for _, v := range vars {
		spelling := v.Type
		if o.flatten {
			flat, ok := flatSpellings[spelling]
			if !ok {
				return nil, fmt.Errorf("%w: no flattened form for %s", ErrUnsupportedType, spelling)
			}
			spelling = flat
		}

		if _, dup := b.cells[v.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateName, v.Name)
		}
		if _, reserved := reservedNames[strings.ToLower(v.Name)]; reserved || strings.HasPrefix(v.Name, "_") {
			return nil, fmt.Errorf("%w: %s", ErrIllegalName, v.Name)
		}

		kind, err := ResolveKind(spelling)
		if err != nil {
			return nil, err
		}

		b.cells[v.Name] = newCell(kind, o.def)
		b.names = append(b.names, v.Name)
	}

	return b, nil
}

func newCell(kind Kind, def float64) Cell {
	switch kind {
	case KindInt:
		return &Int{Value: int32(def), Default: int32(def)}
	case KindUInt:
		udef := uint32(0)
		if def > 0 {
			udef = uint32(def)
		}
		return &UInt{Value: udef, Default: udef}
	case KindFloat:
		return &Float{Value: float32(def), Default: float32(def)}
	case KindVecInt:
		return &VecInt{}
	case KindVecFloat:
		return &VecFloat{}
	case KindVecVecInt:
		return &VecVecInt{}
	case KindVecVecFloat:
		return &VecVecFloat{}
	}
	return nil
}

// Get returns the named cell, or nil if the buffer has none by that name.
func (b *Buffer) Get(name string) Cell {
	return b.cells[name]
}

// Names returns the variable names in declaration order.
func (b *Buffer) Names() []string {
	return b.names
}

// Cells returns the cells in declaration order.
func (b *Buffer) Cells() []Cell {
	out := make([]Cell, len(b.names))
	for i, name := range b.names {
		out[i] = b.cells[name]
	}
	return out
}

// Len returns the number of variables.
func (b *Buffer) Len() int { return len(b.names) }

// Reset restores every cell to its default.
func (b *Buffer) Reset() {
	for _, cell := range b.cells {
		cell.Reset()
	}
}

func (b *Buffer) String() string {
	var rep strings.Builder
	for _, name := range b.names {
		fmt.Fprintf(&rep, "%s ==> %s\n", name, b.cells[name])
	}
	return rep.String()
}
