package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineIndexPosition(t *testing.T) {
	li := NewLineIndex("main {\n  int x;\n}\n")

	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{Offset: 0, Line: 1, Column: 1}},
		{5, Position{Offset: 5, Line: 1, Column: 6}},
		// the newline itself belongs to the line it ends
		{6, Position{Offset: 6, Line: 1, Column: 7}},
		{7, Position{Offset: 7, Line: 2, Column: 1}},
		{11, Position{Offset: 11, Line: 2, Column: 5}},
		{16, Position{Offset: 16, Line: 3, Column: 1}},
		{18, Position{Offset: 18, Line: 4, Column: 1}},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, li.Position(tc.offset), "offset %d", tc.offset)
	}
}

func TestLineIndexClampsOffsets(t *testing.T) {
	li := NewLineIndex("ab\ncd")

	assert.Equal(t, Position{Offset: 0, Line: 1, Column: 1}, li.Position(-4))
	assert.Equal(t, Position{Offset: 5, Line: 2, Column: 3}, li.Position(99))
}

func TestLineIndexEmptySource(t *testing.T) {
	li := NewLineIndex("")

	assert.Equal(t, 1, li.LineCount())
	assert.Equal(t, Position{Offset: 0, Line: 1, Column: 1}, li.Position(0))
	assert.Equal(t, "", li.LineText(1))
}

func TestLineIndexLineText(t *testing.T) {
	li := NewLineIndex("first\r\nsecond\n\nlast")

	assert.Equal(t, 4, li.LineCount())
	assert.Equal(t, "first", li.LineText(1))
	assert.Equal(t, "second", li.LineText(2))
	assert.Equal(t, "", li.LineText(3))
	assert.Equal(t, "last", li.LineText(4))
	assert.Equal(t, "", li.LineText(0))
	assert.Equal(t, "", li.LineText(5))
}

func TestLineIndexMatchesLinearScan(t *testing.T) {
	src := "a\n\nbb\nccc\n  d = 1;\n"
	li := NewLineIndex(src)

	line, col := 1, 1
	for i := 0; i <= len(src); i++ {
		pos := li.Position(i)
		assert.Equal(t, line, pos.Line, "offset %d", i)
		assert.Equal(t, col, pos.Column, "offset %d", i)

		if i < len(src) && src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
}
