package scanner

import (
	"bytes"
	"fmt"
)

const (
	contextBefore = 10
	contextAfter  = 10
)

// StringMatch is one reported occurrence of the search pattern.
type StringMatch struct {
	Offset  uint64
	Message string
}

// StringSearcher finds occurrences of a literal byte pattern across the
// windows a single scan produces. The "last reported offset" dedupe
// cursor lives here, scoped to one StringSearcher instance rather than a
// package-level global: one instance serves exactly one scan, so the
// cursor persists across entries and windows within that scan without
// leaking across independent scans or concurrent callers.
type StringSearcher struct {
	pattern         []byte
	matchEntireWord bool
	needle          []byte
	hasLastPos      bool
	lastPos         uint64
}

// NewStringSearcher builds a searcher for pattern. When matchEntireWord
// is true, a match only counts if the byte following the pattern in the
// window is 0.
func NewStringSearcher(pattern []byte, matchEntireWord bool) *StringSearcher {
	needle := pattern
	if matchEntireWord {
		needle = make([]byte, len(pattern)+1)
		copy(needle, pattern)
	}
	return &StringSearcher{
		pattern:         pattern,
		matchEntireWord: matchEntireWord,
		needle:          needle,
	}
}

// Search finds every occurrence of the pattern in window, whose absolute
// offset in the image is startpos+local-offset. Matches that repeat the
// most recently reported absolute offset are dropped (global dedupe); a
// match advances the scan cursor by len(pattern)+20, a deduplicated repeat
// by one byte.
func (s *StringSearcher) Search(window []byte, startpos uint64) []StringMatch {
	var out []StringMatch
	length := len(s.needle)

	for offset := 0; offset < len(window); {
		idx := bytes.Index(window[offset:], s.needle)
		if idx < 0 {
			break
		}
		pos := offset + idx
		foundPos := startpos + uint64(pos)

		if s.hasLastPos && foundPos == s.lastPos {
			offset = pos + 1
			continue
		}

		var text string
		if s.matchEntireWord {
			text = fmt.Sprintf(" stringmatch: %s", s.pattern)
			offset = pos + len(s.pattern) + contextBefore + contextAfter
		} else {
			before := maskUnprintable(clampSlice(window, pos-contextBefore, pos))
			after := maskUnprintable(clampSlice(window, pos+length, pos+length+contextAfter))
			text = fmt.Sprintf(" stringmatch: %s%s%s", before, s.pattern, after)
			offset = pos + length + contextBefore + contextAfter
		}

		out = append(out, StringMatch{Offset: foundPos, Message: text})
		s.lastPos = foundPos
		s.hasLastPos = true
	}

	return out
}

// clampSlice returns window[max(lo,0):min(hi,len(window))], or an empty
// slice if the clamped range is empty.
func clampSlice(window []byte, lo, hi int) []byte {
	if lo < 0 {
		lo = 0
	}
	if hi > len(window) {
		hi = len(window)
	}
	if lo >= hi {
		return nil
	}
	return window[lo:hi]
}

// maskUnprintable replaces bytes outside 0x20-0x7E with '?' in a copy of
// b, leaving b itself untouched (it aliases the scratch window).
func maskUnprintable(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if c < 0x20 || c > 0x7E {
			out[i] = '?'
		} else {
			out[i] = c
		}
	}
	return out
}
