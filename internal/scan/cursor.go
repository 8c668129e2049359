package scan

import (
	"fmt"

	"fortio.org/safecast"
)

// Cursor is a byte position within one physical line.
type Cursor struct {
	src   string
	off   uint32
	limit uint32
}

// NewCursor creates a cursor over the provided line.
func NewCursor(line string) Cursor {
	limit, err := safecast.Conv[uint32](len(line))
	if err != nil {
		panic(fmt.Errorf("line length overflow: %w", err))
	}
	return Cursor{src: line, off: 0, limit: limit}
}

// EOF reports whether the end of the line has been reached.
func (c *Cursor) EOF() bool {
	return c.off >= c.limit
}

// Peek reads the current byte if any, otherwise returns 0.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.src[c.off]
}

// Peek2 reads the current and the next byte, or ok=false when fewer than two remain.
func (c *Cursor) Peek2() (b0, b1 byte, ok bool) {
	if c.off+1 >= c.limit {
		return 0, 0, false
	}
	return c.src[c.off], c.src[c.off+1], true
}

// Peek3 reads the current and the two following bytes, or ok=false when fewer than three remain.
func (c *Cursor) Peek3() (b0, b1, b2 byte, ok bool) {
	if c.off+2 >= c.limit {
		return 0, 0, 0, false
	}
	return c.src[c.off], c.src[c.off+1], c.src[c.off+2], true
}

// Bump advances the cursor one byte and returns the byte read.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.src[c.off]
	c.off++
	return b
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.src[c.off] == b {
		c.off++
		return true
	}
	return false
}

// Pos returns the current byte offset.
func (c *Cursor) Pos() int {
	return int(c.off)
}

// Prev returns the byte immediately before the cursor, or 0 at line start.
func (c *Cursor) Prev() byte {
	if c.off == 0 {
		return 0
	}
	return c.src[c.off-1]
}
