package tree

import (
	"log"
)

// Chain iterates a logical sequence of same-schema tables spread across
// files, opening one file at a time and closing it before moving to the
// next. A defect in one file (missing file, missing tree, no branches,
// missing branch) logs a warning and skips to the next file; exhausting all
// files simply ends the iteration.
type Chain struct {
	treeName string
	files    []string
	buf      *Buffer
	open     FileOpener

	file    File
	table   Table
	scanner *Scanner
	weight  float64
}

// NewChain creates a chain over the named tree in the given files, binding
// the buffer's cells in each file as it is opened. Files are visited in the
// given order.
func NewChain(treeName string, files []string, buf *Buffer, open FileOpener) *Chain {
	queued := make([]string, len(files))
	copy(queued, files)
	return &Chain{
		treeName: treeName,
		files:    queued,
		buf:      buf,
		open:     open,
		weight:   1,
	}
}

// Next loads the next readable row of the chain into the buffer's cells and
// reports whether one was read. Rows flow across file boundaries
// transparently.
func (c *Chain) Next() bool {
	for {
		if c.scanner != nil {
			if c.scanner.Next() {
				return true
			}
			if err := c.scanner.Err(); err != nil {
				log.Printf("WARNING: skipping remainder of tree %s: %v", c.treeName, err)
			}
		}
		if !c.advance() {
			return false
		}
	}
}

// advance closes the current file and opens the next usable one, binding
// the buffer to its table. It reports false once every file has been tried.
func (c *Chain) advance() bool {
	c.Close()

	for len(c.files) > 0 {
		path := c.files[0]
		c.files = c.files[1:]

		file, err := c.open(path)
		if err != nil {
			log.Printf("WARNING: skipping file: could not open %s: %v", path, err)
			continue
		}

		table, err := file.Get(c.treeName)
		if err != nil || table == nil {
			log.Printf("WARNING: skipping file: tree %s does not exist in %s", c.treeName, path)
			file.Close()
			continue
		}

		if len(table.BranchNames()) == 0 {
			log.Printf("WARNING: skipping tree with no branches in file %s", path)
			file.Close()
			continue
		}

		if !c.bind(table, path) {
			file.Close()
			continue
		}

		c.file = file
		c.table = table
		c.weight = table.Weight()
		c.scanner = &Scanner{table: table}
		return true
	}

	return false
}

func (c *Chain) bind(table Table, path string) bool {
	if c.buf == nil {
		return true
	}
	for _, name := range c.buf.Names() {
		if err := table.Bind(name, c.buf.Get(name)); err != nil {
			log.Printf("WARNING: skipping file: branch %s was not found in tree %s in file %s", name, c.treeName, path)
			return false
		}
	}
	return true
}

// Weight returns the weight of the table currently being read.
func (c *Chain) Weight() float64 { return c.weight }

// Table returns the table currently being read, or nil between files.
func (c *Chain) Table() Table { return c.table }

// Close releases the currently open file. The chain keeps at most one file
// open at a time.
func (c *Chain) Close() {
	c.scanner = nil
	c.table = nil
	if c.file != nil {
		c.file.Close()
		c.file = nil
	}
}
