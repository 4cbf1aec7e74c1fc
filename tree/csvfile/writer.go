package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/qbuat/rootgo/tree"
)

// Writer appends the current contents of a buffer as rows of a new tree
// file. Output is uncompressed.
type Writer struct {
	f     *os.File
	w     *csv.Writer
	cells []tree.Cell
}

// Create starts a new tree file holding one tree with the buffer's
// variables as columns. Nested sequence kinds cannot be written by this
// backend.
func Create(path, name string, weight float64, buf *tree.Buffer) (*Writer, error) {
	header := make([]string, 0, buf.Len())
	cells := make([]tree.Cell, 0, buf.Len())
	for _, varName := range buf.Names() {
		cell := buf.Get(varName)
		switch cell.Kind() {
		case tree.KindVecVecInt, tree.KindVecVecFloat:
			return nil, fmt.Errorf("csvfile: kind %s is not representable in this backend", cell.Kind())
		}
		header = append(header, varName+"/"+cell.Kind().String())
		cells = append(cells, cell)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if _, err := fmt.Fprintf(f, "%s%s weight=%g\n", metadataPrefix, name, weight); err != nil {
		f.Close()
		return nil, err
	}

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, err
	}

	return &Writer{f: f, w: w, cells: cells}, nil
}

// WriteEntry appends one row holding the buffer's current cell values.
func (w *Writer) WriteEntry() error {
	record := make([]string, len(w.cells))
	for i, cell := range w.cells {
		record[i] = format(cell)
	}
	return w.w.Write(record)
}

// Close flushes buffered rows and closes the file.
func (w *Writer) Close() error {
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

func format(cell tree.Cell) string {
	switch c := cell.(type) {
	case *tree.Int:
		return strconv.FormatInt(int64(c.Value), 10)
	case *tree.UInt:
		return strconv.FormatUint(uint64(c.Value), 10)
	case *tree.Float:
		return strconv.FormatFloat(float64(c.Value), 'g', -1, 32)
	case *tree.VecInt:
		parts := make([]string, len(c.Values))
		for i, v := range c.Values {
			parts[i] = strconv.FormatInt(int64(v), 10)
		}
		return strings.Join(parts, ";")
	case *tree.VecFloat:
		parts := make([]string, len(c.Values))
		for i, v := range c.Values {
			parts[i] = strconv.FormatFloat(float64(v), 'g', -1, 32)
		}
		return strings.Join(parts, ";")
	}
	return ""
}
