package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/gerunddev/gitfold/githist"
	"github.com/gerunddev/gitfold/interactive"
	"github.com/gerunddev/gitfold/ui"
	"github.com/gerunddev/gitfold/watch"
)

const usage = `usage: gitfold [flags] [revision | base..revision]

Browse a repository's first-parent history with merges folded away.
With no revision, HEAD is shown. base..revision limits the view to
commits reachable from revision but not from base.
`

func main() {
	// Parse flags
	interactiveMode := flag.Bool("i", false, "Pick the revision to view interactively")
	workDir := flag.String("C", ".", "Run as if started in this directory")
	workers := flag.Int("workers", 4, "Fork point resolver worker count")
	debugLog := flag.String("d", "", "Write debug logs to this file")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	logger := setupLogger(*debugLog)

	src, err := githist.Open(*workDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening repository: %v\n", err)
		os.Exit(1)
	}

	// Work out what to view
	startRev, endRev := "HEAD", ""
	if arg := flag.Arg(0); arg != "" {
		startRev, endRev = splitRange(arg)
	}
	if *interactiveMode {
		rng, err := interactive.Run(src)
		if err != nil {
			return // cancelled
		}
		startRev, endRev = rng.Start, rng.End
	}

	start, err := src.Resolve(startRev)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	end := plumbing.ZeroHash
	if endRev != "" {
		if end, err = src.Resolve(endRev); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	resolver := githist.NewResolver(src, *workers)
	resolver.SetLogger(logger)
	defer resolver.Close()

	hist, err := githist.New(src, resolver, start, end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var watcher *watch.Watcher
	if gitDir := src.GitDir(); gitDir != "" {
		if watcher, err = watch.New(gitDir, logger); err != nil {
			logger.Warn("repository watching disabled", "err", err)
		} else {
			defer watcher.Close()
		}
	}

	app := ui.NewApp(src, resolver, watcher, hist, startRev, endRev, logger)

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// splitRange parses base..revision the way git log ranges read:
// revision's history, stopping where base's begins.
func splitRange(arg string) (start, end string) {
	if base, rev, ok := strings.Cut(arg, ".."); ok {
		if rev == "" {
			rev = "HEAD"
		}
		return rev, base
	}
	return arg, ""
}

// setupLogger writes structured logs to the -d file or GITFOLD_LOG_FILE
// when set. A TUI owns the terminal, so without a file logs are dropped.
func setupLogger(path string) *log.Logger {
	out := io.Discard
	if path == "" {
		path = os.Getenv("GITFOLD_LOG_FILE")
	}
	if path != "" {
		if f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
			out = f
		}
	}
	logger := log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
	})
	if lvl, err := log.ParseLevel(os.Getenv("GITFOLD_LOG_LEVEL")); err == nil {
		logger.SetLevel(lvl)
	}
	log.SetDefault(logger)
	return logger
}
