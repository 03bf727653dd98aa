// Command fsmagic-scanner locates embedded, obfuscated filesystem
// signatures inside firmware images by sliding a caller-chosen transform
// across every byte offset and matching the result against a hierarchical
// signature database, with an optional literal string search alongside.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/alecthomas/kingpin/v2"
	"github.com/google/uuid"

	"github.com/kittennbfive/fsmagic-scanner/internal/magic"
	"github.com/kittennbfive/fsmagic-scanner/internal/scanner"
	"github.com/kittennbfive/fsmagic-scanner/internal/transform"
)

const version = "fsmagic-scanner 1.0.0"

const minBlocksize = 128

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr *os.File) int {
	app := kingpin.New("fsmagic-scanner", "Embedded filesystem signature scanner for firmware images.")
	app.Version(version)

	file := app.Flag("file", "Input firmware image.").Required().String()
	blocksize := app.Flag("blocksize", "Window size in bytes.").Default("2048").Int()
	nosearch := app.Flag("nosearch", "Disable signature matching.").Bool()
	showInvalid := app.Flag("show-invalid", "Also report invalid matches.").Bool()
	pattern := app.Flag("string", "Enable string search for this literal pattern.").String()
	matchWord := app.Flag("match-word", "Require the string pattern to be null-terminated in the window.").Bool()
	transformName := app.Flag("transform", "De-obfuscation transform to apply to each window.").Default("identity").String()
	xorKey := app.Flag("xor-key", "Hex-encoded single-byte key for --transform=xor.").String()

	// kingpin only knows --help; --usage is this program's second spelling
	// of the same request, so it gets rewritten onto the flag kingpin
	// already handles (prints usage, exits 0) before parsing ever sees it.
	args = aliasUsageToHelp(args)

	if _, err := app.Parse(args); err != nil {
		fmt.Fprintf(stderr, "fsmagic-scanner: %v\n", err)
		return 1
	}

	if *blocksize < minBlocksize {
		fmt.Fprintf(stderr, "fsmagic-scanner: --blocksize must be >= %d, got %d\n", minBlocksize, *blocksize)
		return 1
	}
	if *pattern != "" && len(*pattern) < 2 {
		fmt.Fprintf(stderr, "fsmagic-scanner: --string pattern must be at least 2 bytes\n")
		return 1
	}

	runID := uuid.NewString()
	logger := slog.New(slog.NewTextHandler(stderr, nil)).With("run_id", runID)

	image, err := os.ReadFile(*file)
	if err != nil {
		fmt.Fprintf(stderr, "fsmagic-scanner: %v\n", err)
		return 1
	}

	db, err := magic.LoadDefault()
	if err != nil {
		fmt.Fprintf(stderr, "fsmagic-scanner: signature database: %v\n", err)
		return 1
	}

	tr, err := transform.Lookup(*transformName, *xorKey)
	if err != nil {
		fmt.Fprintf(stderr, "fsmagic-scanner: %v\n", err)
		return 1
	}
	if err := tr.Init(*blocksize); err != nil {
		fmt.Fprintf(stderr, "fsmagic-scanner: transform init: %v\n", err)
		return 1
	}
	defer tr.Teardown()

	cfg := scanner.Config{
		Blocksize:       *blocksize,
		NoSearch:        *nosearch,
		ShowInvalid:     *showInvalid,
		Pattern:         []byte(*pattern),
		MatchEntireWord: *matchWord,
		RunID:           runID,
	}

	sc := scanner.NewScanner(db, tr, cfg, logger)
	reporter := scanner.NewReporter(stdout)
	reporter.Banner(runID, *file, *blocksize)

	found, err := sc.Run(image, reporter.Report)
	if err != nil {
		fmt.Fprintf(stderr, "fsmagic-scanner: %v\n", err)
		return 1
	}
	if !found {
		reporter.NothingFound()
	}
	reporter.Done()

	return 0
}

// aliasUsageToHelp rewrites a bare "--usage" argument to "--help" so both
// spellings print usage and exit 0 through the same path.
func aliasUsageToHelp(args []string) []string {
	out := make([]string, len(args))
	for i, a := range args {
		if a == "--usage" {
			a = "--help"
		}
		out[i] = a
	}
	return out
}
