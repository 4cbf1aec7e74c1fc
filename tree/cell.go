// Package tree provides typed, name-keyed buffers bound to the columns of
// row-oriented tables ("trees"), restartable row iteration over a single
// table, and chained iteration over a sequence of same-schema tables spread
// across files. The storage itself lives behind the File/Table interfaces;
// see the csvfile subpackage for a reference backend.
package tree

import (
	"fmt"
	"strings"
)

// Kind enumerates the storage kinds a buffer cell can take.
type Kind int

const (
	KindInt Kind = iota
	KindUInt
	KindFloat
	KindVecInt
	KindVecFloat
	KindVecVecInt
	KindVecVecFloat
)

// String returns the canonical short spelling of the kind, usable as a
// column type declaration.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "I"
	case KindUInt:
		return "UI"
	case KindFloat:
		return "F"
	case KindVecInt:
		return "VI"
	case KindVecFloat:
		return "VF"
	case KindVecVecInt:
		return "VVI"
	case KindVecVecFloat:
		return "VVF"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Cell is one typed storage slot of a buffer. Table implementations write
// into the concrete cell types (*Int, *Float, ...) when reading rows.
type Cell interface {
	Kind() Kind
	// Reset restores the cell to its default: scalars to their configured
	// default value, sequences to empty.
	Reset()
	fmt.Stringer
}

// Int is a signed 32-bit integer cell.
type Int struct {
	Value   int32
	Default int32
}

func (c *Int) Kind() Kind     { return KindInt }
func (c *Int) Reset()         { c.Value = c.Default }
func (c *Int) String() string { return fmt.Sprintf("%d", c.Value) }

// UInt is an unsigned 32-bit integer cell. Negative buffer defaults clamp
// to zero.
type UInt struct {
	Value   uint32
	Default uint32
}

func (c *UInt) Kind() Kind     { return KindUInt }
func (c *UInt) Reset()         { c.Value = c.Default }
func (c *UInt) String() string { return fmt.Sprintf("%d", c.Value) }

// Float is a 32-bit floating point cell.
type Float struct {
	Value   float32
	Default float32
}

func (c *Float) Kind() Kind     { return KindFloat }
func (c *Float) Reset()         { c.Value = c.Default }
func (c *Float) String() string { return fmt.Sprintf("%g", c.Value) }

// VecInt is a sequence-of-integer cell.
type VecInt struct {
	Values []int32
}

func (c *VecInt) Kind() Kind { return KindVecInt }
func (c *VecInt) Reset()     { c.Values = c.Values[:0] }
func (c *VecInt) String() string {
	parts := make([]string, len(c.Values))
	for i, v := range c.Values {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// VecFloat is a sequence-of-float cell.
type VecFloat struct {
	Values []float32
}

func (c *VecFloat) Kind() Kind { return KindVecFloat }
func (c *VecFloat) Reset()     { c.Values = c.Values[:0] }
func (c *VecFloat) String() string {
	parts := make([]string, len(c.Values))
	for i, v := range c.Values {
		parts[i] = fmt.Sprintf("%g", v)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// VecVecInt is a sequence-of-sequence-of-integer cell.
type VecVecInt struct {
	Values [][]int32
}

func (c *VecVecInt) Kind() Kind { return KindVecVecInt }
func (c *VecVecInt) Reset()     { c.Values = c.Values[:0] }
func (c *VecVecInt) String() string {
	return fmt.Sprintf("%v", c.Values)
}

// VecVecFloat is a sequence-of-sequence-of-float cell.
type VecVecFloat struct {
	Values [][]float32
}

func (c *VecVecFloat) Kind() Kind { return KindVecVecFloat }
func (c *VecVecFloat) Reset()     { c.Values = c.Values[:0] }
func (c *VecVecFloat) String() string {
	return fmt.Sprintf("%v", c.Values)
}
