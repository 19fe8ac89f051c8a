// Package main is the entry point for the keysearch command, a grep-style
// front-end for the buffer search engine.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/keysearch/internal/config"
	"github.com/dshills/keysearch/internal/engine/buffer"
	"github.com/dshills/keysearch/internal/engine/search"
	"github.com/dshills/keysearch/internal/watcher"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Exit codes follow the grep convention.
const (
	exitMatch   = 0
	exitNoMatch = 1
	exitError   = 2
)

type options struct {
	ConfigPath string
	Regex      bool
	IgnoreCase bool
	WholeWord  bool
	Separators string
	Limit      int
	Watch      bool

	set map[string]bool // flags explicitly given on the command line

	Pattern string
	Files   []string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitError
	}
	q := buildQuery(opts, cfg)

	compiled := q.Compile()
	if compiled == nil {
		fmt.Fprintf(os.Stderr, "Error: invalid pattern %q\n", q.Pattern)
		return exitError
	}

	limit := opts.Limit
	if !opts.set["limit"] {
		limit = cfg.Search.MaxResults
	}

	if len(opts.Files) == 0 {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: reading stdin: %v\n", err)
			return exitError
		}
		if searchText("(stdin)", string(data), compiled, limit) {
			return exitMatch
		}
		return exitNoMatch
	}

	found := false
	failed := false
	for _, path := range opts.Files {
		ok, err := searchFile(path, compiled, limit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			failed = true
			continue
		}
		found = found || ok
	}

	if opts.Watch && !failed {
		return watchFiles(opts.Files, compiled, limit)
	}

	switch {
	case failed:
		return exitError
	case found:
		return exitMatch
	default:
		return exitNoMatch
	}
}

// buildQuery combines config defaults with explicitly set flags.
func buildQuery(opts options, cfg config.Config) search.Query {
	q := search.Query{
		Pattern:   opts.Pattern,
		IsRegex:   cfg.Search.Regex,
		MatchCase: cfg.Search.CaseSensitive,
	}
	if opts.set["regex"] {
		q.IsRegex = opts.Regex
	}
	if opts.set["ignore-case"] {
		q.MatchCase = !opts.IgnoreCase
	}

	wholeWord := cfg.Search.WholeWord
	if opts.set["word"] {
		wholeWord = opts.WholeWord
	}
	if wholeWord {
		q.WordSeparators = cfg.Search.WordSeparators
		if opts.set["separators"] {
			q.WordSeparators = opts.Separators
		}
		if q.WordSeparators == "" {
			q.WordSeparators = search.DefaultWordSeparators
		}
	}
	return q
}

// searchFile reads one file into a buffer and reports its matches.
func searchFile(path string, compiled *search.Compiled, limit int) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	return searchText(path, string(data), compiled, limit), nil
}

// searchText searches one document and prints matches as path:line:col:text.
func searchText(name, text string, compiled *search.Compiled, limit int) bool {
	buf := buffer.FromString(text, buffer.WithDetectedLineEnding(text))
	matches := search.FindMatches(buf, compiled, buf.FullRange(), false, limit)
	for _, m := range matches {
		fmt.Printf("%s:%d:%d:%s\n", name, m.Range.Start.Line, m.Range.Start.Column,
			buf.LineContent(m.Range.Start.Line))
	}
	return len(matches) > 0
}

// watchFiles re-runs the search whenever a watched file changes.
// Runs until interrupted; always exits successfully once watching.
func watchFiles(paths []string, compiled *search.Compiled, limit int) int {
	w, err := watcher.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: creating watcher: %v\n", err)
		return exitError
	}
	defer w.Close()

	for _, path := range paths {
		if err := w.Add(path); err != nil {
			fmt.Fprintf(os.Stderr, "Error: watching %s: %v\n", path, err)
			return exitError
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case ev := <-w.Events():
			if ev.Op == watcher.OpRemove || ev.Op == watcher.OpRename {
				fmt.Fprintf(os.Stderr, "keysearch: %s: %s\n", ev.Path, ev.Op)
				continue
			}
			if _, err := searchFile(ev.Path, compiled, limit); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
		case err := <-w.Errors():
			fmt.Fprintf(os.Stderr, "Error: watcher: %v\n", err)
		case <-signals:
			return exitMatch
		}
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool
	var showHelp bool

	flag.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.ConfigPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&opts.Regex, "regex", false, "Treat the pattern as a regular expression")
	flag.BoolVar(&opts.Regex, "e", false, "Treat the pattern as a regular expression (shorthand)")
	flag.BoolVar(&opts.IgnoreCase, "ignore-case", false, "Case-insensitive matching")
	flag.BoolVar(&opts.IgnoreCase, "i", false, "Case-insensitive matching (shorthand)")
	flag.BoolVar(&opts.WholeWord, "word", false, "Match whole words only")
	flag.BoolVar(&opts.WholeWord, "w", false, "Match whole words only (shorthand)")
	flag.StringVar(&opts.Separators, "separators", "", "Word separator characters for -word")
	flag.IntVar(&opts.Limit, "limit", 0, "Maximum matches per file (0 = default)")
	flag.IntVar(&opts.Limit, "n", 0, "Maximum matches per file (shorthand)")
	flag.BoolVar(&opts.Watch, "watch", false, "Keep running and re-search files on change")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.BoolVar(&showHelp, "help", false, "Show help message")
	flag.BoolVar(&showHelp, "h", false, "Show help message (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "keysearch - buffer text search\n\n")
		fmt.Fprintf(os.Stderr, "Usage: keysearch [options] <pattern> [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  keysearch foo file.txt              Literal search\n")
		fmt.Fprintf(os.Stderr, "  keysearch -e 'a\\nb' file.txt        Multiline regex search\n")
		fmt.Fprintf(os.Stderr, "  keysearch -w cat notes.md           Whole-word search\n")
		fmt.Fprintf(os.Stderr, "  keysearch -watch TODO main.go       Re-search on change\n")
	}

	flag.Parse()

	opts.set = make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "e":
			opts.set["regex"] = true
		case "i":
			opts.set["ignore-case"] = true
		case "w":
			opts.set["word"] = true
		case "n":
			opts.set["limit"] = true
		default:
			opts.set[f.Name] = true
		}
	})

	if showHelp {
		flag.Usage()
		os.Exit(exitMatch)
	}

	if showVersion {
		fmt.Printf("keysearch %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(exitMatch)
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(exitError)
	}

	opts.Pattern = args[0]
	opts.Files = args[1:]
	return opts
}
