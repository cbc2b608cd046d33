package utils

import (
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// WordRangeAt locates the word containing the given rune column on a line.
// Returns the word's start and end rune indices (end exclusive). A caret
// sitting exactly on a word's trailing boundary still resolves to that word.
// ok is false when the column sits on whitespace/punctuation with no word
// at either side boundary.
func WordRangeAt(line []byte, col int) (start, end int, ok bool) {
	type segment struct {
		start, end int
		word       bool
	}
	var segs []segment

	state := -1
	rest := line
	runeStart := 0
	for len(rest) > 0 {
		var seg []byte
		seg, rest, state = uniseg.FirstWord(rest, state)
		n := utf8.RuneCount(seg)
		segs = append(segs, segment{
			start: runeStart,
			end:   runeStart + n,
			word:  isWordSegment(seg),
		})
		runeStart += n
	}

	// Prefer a word the column sits inside (start boundary inclusive).
	for _, s := range segs {
		if s.word && col >= s.start && col < s.end {
			return s.start, s.end, true
		}
	}
	// Then a word whose trailing boundary the column touches.
	for _, s := range segs {
		if s.word && col == s.end {
			return s.start, s.end, true
		}
	}
	return 0, 0, false
}

// isWordSegment reports whether a UAX#29 segment carries word content
// rather than spaces or punctuation.
func isWordSegment(seg []byte) bool {
	for _, r := range string(seg) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return true
		}
	}
	return false
}
