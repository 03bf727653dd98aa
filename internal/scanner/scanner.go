package scanner

import (
	"fmt"
	"log/slog"

	"github.com/kittennbfive/fsmagic-scanner/internal/magic"
	"github.com/kittennbfive/fsmagic-scanner/internal/transform"
)

// Config collects the flags a scan run is configured with, plus a RunID
// used to correlate that run's log lines.
type Config struct {
	Blocksize       int
	NoSearch        bool
	ShowInvalid     bool
	Pattern         []byte
	MatchEntireWord bool
	RunID           string
}

// Match is one reportable line: either a signature-engine entry result or
// a string-search occurrence, tagged so the Reporter can format it.
type Match struct {
	Offset  uint64
	Message string
	Invalid bool
}

// Scanner drives the scan: for every starting byte offset it copies a
// block into scratch, applies the caller's transform exactly once, then
// runs the String Search and Signature Engine across that window. It owns
// the only long-lived mutable state the core needs: the scratch window
// itself, the string searcher's dedupe cursor, and the once-only
// small-blocksize warning flag.
type Scanner struct {
	DB        *magic.Database
	Transform transform.Transform
	Config    Config
	Logger    *slog.Logger

	searcher    *StringSearcher
	warnedSmall bool
}

// NewScanner builds a Scanner ready to Run. It does not call
// Transform.Init; the caller controls that lifecycle phase so it can
// Teardown even if Run returns an error partway through.
func NewScanner(db *magic.Database, tr transform.Transform, cfg Config, logger *slog.Logger) *Scanner {
	sc := &Scanner{DB: db, Transform: tr, Config: cfg, Logger: logger}
	if len(cfg.Pattern) > 0 {
		sc.searcher = NewStringSearcher(cfg.Pattern, cfg.MatchEntireWord)
	}
	return sc
}

// Run scans image and invokes report for every match line, one starting
// offset after another; within one window the string-search matches (which
// may lie further into the window) are reported before that offset's
// signature matches. It returns whether any valid match was reported —
// invalid matches surfaced under ShowInvalid do not count — which the
// caller uses to decide whether to print the "nothing found" hint.
func (sc *Scanner) Run(image []byte, report func(Match)) (found bool, err error) {
	b := sc.Config.Blocksize
	f := len(image)
	if b > f {
		return false, nil
	}

	window := make([]byte, b)
	for startpos := 0; startpos+b <= f; startpos++ {
		copy(window, image[startpos:startpos+b])

		if err := sc.Transform.Transform(window); err != nil {
			return found, fmt.Errorf("transform at offset %d: %w", startpos, err)
		}

		absOffset := uint64(startpos)

		if sc.searcher != nil {
			for _, m := range sc.searcher.Search(window, absOffset) {
				found = true
				report(Match{Offset: m.Offset, Message: m.Message})
			}
		}

		if !sc.Config.NoSearch {
			for _, r := range RunSignatureEngine(sc.DB, window, b) {
				if r.RangeInvalid && !sc.warnedSmall {
					sc.warnedSmall = true
					sc.Logger.Warn("blocksize is too small for at least one rule",
						"entry", r.Entry, "blocksize", b, "run_id", sc.Config.RunID)
				}
				if r.Message == "" {
					continue
				}
				if r.Invalid {
					if sc.Config.ShowInvalid {
						report(Match{Offset: absOffset, Message: r.Message, Invalid: true})
					}
					continue
				}
				found = true
				report(Match{Offset: absOffset, Message: r.Message})
			}
		}
	}

	return found, nil
}
