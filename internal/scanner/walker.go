package scanner

import (
	"strings"

	"github.com/kittennbfive/fsmagic-scanner/internal/magic"
)

// maxNestingDepth bounds the succeeded[] stack buffer: small, bounded,
// entry-local, reset by zeroing rather than reallocating. No signature in
// the reference fixture nests this deep; a database with deeper nesting
// is a defect caught here.
const maxNestingDepth = 32

// walkEntry traverses one signature entry's rules in depth-first,
// level-indented order. It returns whether the walk ended in an invalid
// state, whether that invalidity was specifically a range check failure
// (the caller uses this to drive the once-only blocksize warning), and
// the concatenated message fragments.
//
// The level field does not form a conventional in-memory tree — it is a
// flat, level-indented vector — so the bookkeeping below is intentionally
// explicit index arithmetic rather than a recursive descent.
func walkEntry(rules []magic.Rule, window []byte, blocksize int) (invalid, rangeInvalid bool, message string) {
	var succeeded [maxNestingDepth]bool
	var msg strings.Builder

	n := len(rules)
	i := 0
	for i < n {
		level := rules[i].Level
		if level >= maxNestingDepth {
			panic("scanner: rule nesting depth exceeds maxNestingDepth (database defect)")
		}

		res, fragment := evaluate(window, rules[i], blocksize)
		msg.WriteString(fragment)

		if res.invalid() {
			invalid = true
			rangeInvalid = res == outcomeInvalidRange
			break
		}

		levelDown := false

		if res == outcomeSuccess {
			succeeded[level] = true
			i++
			if i < n && rules[i].Level >= level {
				continue
			} else if level > 0 {
				levelDown = true
			} else {
				break
			}
		}

		if res == outcomeFailure || levelDown {
			if level > 0 && succeeded[level-1] {
				oldI := i
				if res == outcomeFailure {
					for i++; i < n && rules[i].Level > level; i++ {
					}
				}
				if i == n {
					i = oldI
					for i++; i < n && rules[i].Level != level-1; i++ {
					}
				}
			} else {
				break
			}
		}
	}

	return invalid, rangeInvalid, msg.String()
}
