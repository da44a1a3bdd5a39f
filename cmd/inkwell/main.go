// Package main is the entry point for the inkwell editor.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/inkwell-editor/inkwell/internal/config"
	"github.com/inkwell-editor/inkwell/internal/engine"
	"github.com/inkwell-editor/inkwell/internal/term"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
)

type options struct {
	configPath string
	filename   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts, ok := parseFlags()
	if !ok {
		return 0
	}

	configPath := opts.configPath
	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		configPath = p
	}

	settings, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	var sessionOpts []engine.Option
	sessionOpts = append(sessionOpts, engine.WithMaxUndoEntries(settings.Editor.UndoDepth))
	if opts.filename != "" {
		data, err := os.ReadFile(opts.filename)
		if err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Error: reading %s: %v\n", opts.filename, err)
			return 1
		}
		sessionOpts = append(sessionOpts, engine.WithContent(string(data)))
	}
	session := engine.NewSession(sessionOpts...)

	editor, err := term.New(session, settings, opts.filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	// Live-reload settings while the editor runs. Watch failures are
	// not fatal: the config directory may not exist yet.
	watcher, err := config.Watch(configPath, editor.UpdateSettings, nil)
	if err == nil {
		defer watcher.Close()
	}

	if err := editor.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags() (options, bool) {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "", "Path to configuration file (shorthand)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")
	flag.Usage = usage
	flag.Parse()

	if showVersion {
		fmt.Printf("inkwell %s (%s)\n", version, commit)
		return opts, false
	}
	opts.filename = flag.Arg(0)
	return opts, true
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: inkwell [options] [file]\n\nOptions:\n")
	flag.PrintDefaults()
}
