package scanner

import (
	"fmt"
	"io"
)

const banner = "fsmagic-scanner: embedded filesystem signature scanner\n"

// Reporter renders Match values to an io.Writer, one line per match:
// "0x<hex> (<dec>):<message>", with an "[INVALID]: " prefix for matches
// the caller chose to surface under --show-invalid.
type Reporter struct {
	w io.Writer
}

func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Banner prints the startup banner followed by the run identifier, so a
// scan's log lines and its stdout report can be correlated after the fact.
func (r *Reporter) Banner(runID string, filename string, blocksize int) {
	fmt.Fprint(r.w, banner)
	fmt.Fprintf(r.w, "run %s: scanning %s with blocksize %d\n", runID, filename, blocksize)
}

// Report prints one match line.
func (r *Reporter) Report(m Match) {
	if m.Invalid {
		fmt.Fprintf(r.w, "[INVALID]: 0x%x (%d):%s\n", m.Offset, m.Offset, m.Message)
		return
	}
	fmt.Fprintf(r.w, "0x%x (%d):%s\n", m.Offset, m.Offset, m.Message)
}

// NothingFound prints the hint shown when a scan completes without
// reporting any valid match (invalid matches shown under --show-invalid do
// not count).
func (r *Reporter) NothingFound() {
	fmt.Fprintln(r.w, "nothing found")
}

// Done prints the termination line.
func (r *Reporter) Done() {
	fmt.Fprintln(r.w, "all done")
}
