// Package document provides the read-only, line-indexed text buffer that
// stormview displays.
//
// A Document is built once from loaded text and never mutated afterwards.
// Lines keep their original characters minus the line terminator. Widths are
// measured in grapheme clusters so a cursor column always addresses one
// user-perceived character.
package document

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rivo/uniseg"
)

// Document is an immutable sequence of text lines.
type Document struct {
	lines  []string
	widths []int
}

// Empty returns a document with no lines.
func Empty() *Document {
	return &Document{}
}

// Load builds a document from text.
// Interior and trailing empty lines are preserved; a single final line
// terminator ends the last line instead of starting a new one.
// Both "\n" and "\r\n" terminators are accepted.
func Load(text string) *Document {
	if text == "" {
		return Empty()
	}

	text = strings.TrimSuffix(text, "\n")
	raw := strings.Split(text, "\n")

	doc := &Document{
		lines:  make([]string, len(raw)),
		widths: make([]int, len(raw)),
	}
	for i, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		doc.lines[i] = line
		doc.widths[i] = uniseg.GraphemeClusterCount(line)
	}
	return doc
}

// FromReader reads all of r and builds a document from it.
func FromReader(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	return Load(string(data)), nil
}

// Open reads the file at path into a document.
// On error the caller is expected to fall back to Empty.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Load(string(data)), nil
}

// LineCount returns the number of lines.
func (d *Document) LineCount() int {
	if d == nil {
		return 0
	}
	return len(d.lines)
}

// LineAt returns the text of line row.
// The boolean is false when row is outside [0, LineCount()).
func (d *Document) LineAt(row int) (string, bool) {
	if d == nil || row < 0 || row >= len(d.lines) {
		return "", false
	}
	return d.lines[row], true
}

// Width returns the number of characters on line row, or 0 when the line
// does not exist.
func (d *Document) Width(row int) int {
	if d == nil || row < 0 || row >= len(d.widths) {
		return 0
	}
	return d.widths[row]
}

// Lines returns a copy of all lines.
func (d *Document) Lines() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}
