package report

import (
	"fmt"
	"sort"
)

// Position is a point in the source text.  Offsets are zero-indexed byte
// offsets; lines and columns are one-indexed.  Columns count bytes, not runes.
type Position struct {
	Offset int `json:"offset"`
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// -----------------------------------------------------------------------------

// LineIndex resolves byte offsets into line and column pairs.  It is built
// once over a source text and never modified afterwards, so it may be shared
// freely between goroutines.
type LineIndex struct {
	src string

	// newlines holds the offset of every '\n' in the source in ascending order.
	newlines []int
}

// NewLineIndex creates a new line index over the given source text.
func NewLineIndex(src string) *LineIndex {
	li := &LineIndex{src: src}

	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			li.newlines = append(li.newlines, i)
		}
	}

	return li
}

// Position resolves a byte offset.  Offsets outside of the source are clamped
// to its bounds.
func (li *LineIndex) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	} else if offset > len(li.src) {
		offset = len(li.src)
	}

	// The number of newlines strictly before the offset is the zero-indexed
	// line number of the offset.
	n := sort.SearchInts(li.newlines, offset)

	lastNewline := -1
	if n > 0 {
		lastNewline = li.newlines[n-1]
	}

	return Position{
		Offset: offset,
		Line:   n + 1,
		Column: offset - lastNewline,
	}
}

// LineCount returns the number of lines in the source.
func (li *LineIndex) LineCount() int {
	return len(li.newlines) + 1
}

// LineText returns the text of the given one-indexed line without its
// terminating newline.  An out of range line yields an empty string.
func (li *LineIndex) LineText(line int) string {
	if line < 1 || line > li.LineCount() {
		return ""
	}

	start := 0
	if line > 1 {
		start = li.newlines[line-2] + 1
	}

	end := len(li.src)
	if line <= len(li.newlines) {
		end = li.newlines[line-1]
	}

	text := li.src[start:end]
	if len(text) > 0 && text[len(text)-1] == '\r' {
		text = text[:len(text)-1]
	}

	return text
}
