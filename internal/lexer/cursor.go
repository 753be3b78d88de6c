package lexer

import (
	"fmt"
	"strings"

	"aegis/internal/source"

	"fortio.org/safecast"
)

// Cursor is a read position inside a source.File.
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	limit, err := safecast.Conv[uint32](len(f.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return Cursor{File: f, Limit: limit}
}

func (c *Cursor) limit() uint32 {
	if c.Limit != 0 {
		return c.Limit
	}
	n, err := safecast.Conv[uint32](len(c.File.Content))
	if err != nil {
		panic(fmt.Errorf("len file content overflow: %w", err))
	}
	return n
}

// EOF reports whether the end of the file was reached
func (c *Cursor) EOF() bool {
	return c.Off >= c.limit()
}

// Peek returns the current byte, or 0 at the end
func (c *Cursor) Peek() byte {
	return c.At(0)
}

// At returns the byte at offset i from the cursor, or 0 past the end.
func (c *Cursor) At(i uint32) byte {
	if c.Off+i >= c.limit() {
		return 0
	}
	return c.File.Content[c.Off+i]
}

// Rest is the unread remainder up to Limit.
func (c *Cursor) Rest() []byte {
	if c.EOF() {
		return nil
	}
	return c.File.Content[c.Off:c.limit()]
}

// Bump advances by one byte and returns the byte read
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// EatPrefix consumes s if the remainder starts with it.
func (c *Cursor) EatPrefix(s string) bool {
	if !strings.HasPrefix(string(c.Rest()), s) {
		return false
	}
	c.Off += uint32(len(s)) // #nosec G115 -- операторы короче 4 байт
	return true
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// Mark is a saved position for building the Span of a fragment
type Mark uint32

// Mark saves the current position
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom returns the Span from mark to the cursor
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{
		File:  c.File.ID,
		Start: uint32(m),
		End:   c.Off,
	}
}

// Reset moves the cursor back to mark
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}
