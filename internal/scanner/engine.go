package scanner

import "github.com/kittennbfive/fsmagic-scanner/internal/magic"

// EntryResult is one signature entry's outcome for a single window.
type EntryResult struct {
	Entry         string
	Message       string
	Invalid       bool
	RangeInvalid  bool // this entry's invalidity was a blocksize-too-small condition
}

// RunSignatureEngine walks every entry in db against one window and
// returns a result for each entry that produced a message or hit a
// range-invalid rule (the latter possibly with an empty Message). It emits
// at most one result
// per entry per window and has no opinion on how those results are
// reported or logged — that policy (show-invalid gating, the once-only
// small-blocksize warning, the aggregate "anything found" flag) lives in
// Scanner, which is what actually drives this across every offset.
func RunSignatureEngine(db *magic.Database, window []byte, blocksize int) []EntryResult {
	var results []EntryResult
	for i := range db.Entries {
		invalid, rangeInvalid, msg := walkEntry(db.Entries[i].Rules, window, blocksize)
		if len(msg) == 0 && !rangeInvalid {
			continue
		}
		if len(msg) == 0 {
			// Range-invalid with nothing accumulated: still worth surfacing
			// so the caller can drive the once-only warning, but it is
			// never itself a reportable line.
			results = append(results, EntryResult{Entry: db.Entries[i].Name, RangeInvalid: true})
			continue
		}
		results = append(results, EntryResult{
			Entry:        db.Entries[i].Name,
			Message:      msg,
			Invalid:      invalid,
			RangeInvalid: rangeInvalid,
		})
	}
	return results
}
