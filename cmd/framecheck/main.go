package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/alecthomas/kong"
	"github.com/mattn/go-isatty"

	"github.com/typedframes/framecheck/internal/cache"
	"github.com/typedframes/framecheck/internal/project"
	"github.com/typedframes/framecheck/internal/runner"
)

const version = "0.1.0"

var CLI struct {
	Check   CheckCmd   `cmd:"" default:"withargs" help:"Check Python files for schema violations."`
	Version VersionCmd `cmd:"" help:"Print the framecheck version."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println("framecheck " + version)
	return nil
}

type CheckCmd struct {
	Paths   []string `arg:"" optional:"" type:"path" help:"Files or directories to check (default: current directory)."`
	JSON    bool     `help:"Emit diagnostics as a JSON array."`
	Strict  bool     `help:"Treat warnings as errors."`
	NoCache bool     `help:"Bypass the result cache."`
	NoColor bool     `help:"Disable colored output."`
}

type jsonDiagnostic struct {
	File    string `json:"file"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (c *CheckCmd) Run() error {
	start := time.Now()

	if len(c.Paths) == 0 {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		c.Paths = []string{cwd}
	}

	root, cfg := project.LoadFor(c.Paths[0])
	if !cfg.IsEnabled() {
		if c.JSON {
			// Machine consumers still get a well-formed empty list.
			fmt.Println("[]")
		}
		return nil
	}

	files, err := runner.CollectFiles(c.Paths)
	if err != nil {
		return err
	}
	sort.Strings(files)

	var store *cache.Store
	if !c.NoCache && root != "" {
		// Checking proceeds uncached if the cache cannot be opened.
		if s, err := cache.Open(root); err == nil {
			store = s
			defer store.Close()
		}
	}

	results := runner.New(cfg, store).Run(files)

	if c.JSON {
		return c.printJSON(results)
	}
	return c.printHuman(results, time.Since(start))
}

func (c *CheckCmd) printJSON(results []runner.FileResult) error {
	diags := []jsonDiagnostic{}
	failed := 0
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintln(os.Stderr, r.Err)
			continue
		}
		for _, e := range r.Entries {
			diags = append(diags, jsonDiagnostic{
				File:    relPath(r.Path),
				Line:    e.Line,
				Column:  e.Column,
				Code:    e.Code,
				Message: e.Message,
			})
		}
		failed += r.Errors(c.Strict)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(diags); err != nil {
		return err
	}
	if failed > 0 {
		os.Exit(1)
	}
	return nil
}

func (c *CheckCmd) printHuman(results []runner.FileResult, elapsed time.Duration) error {
	color := c.useColor()
	problems := 0
	badFiles := 0

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintln(os.Stderr, r.Err)
			continue
		}
		n := r.Errors(c.Strict)
		if n > 0 {
			badFiles++
		}
		problems += n
		for _, e := range r.Entries {
			if e.Warning && !c.Strict {
				fmt.Printf("%s %s:%d - %s\n", mark("!", colorYellow, color), relPath(r.Path), e.Line, e.Message)
				continue
			}
			fmt.Printf("%s %s:%d - %s\n", mark("✗", colorRed, color), relPath(r.Path), e.Line, e.Message)
		}
	}

	secs := elapsed.Seconds()
	if problems == 0 {
		fmt.Printf("%s Checked %d files in %.1fs\n", mark("✓", colorGreen, color), len(results), secs)
		return nil
	}
	fmt.Printf("%s Found %d problems in %d files (%.1fs)\n", mark("✗", colorRed, color), problems, badFiles, secs)
	os.Exit(1)
	return nil
}

func (c *CheckCmd) useColor() bool {
	if c.NoColor {
		return false
	}
	if _, set := os.LookupEnv("NO_COLOR"); set {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

const (
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
	colorReset  = "\x1b[0m"
)

func mark(sym, ansi string, color bool) string {
	if !color {
		return sym
	}
	return ansi + sym + colorReset
}

func relPath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	if rel, err := filepath.Rel(cwd, path); err == nil && !filepath.IsAbs(rel) {
		return rel
	}
	return path
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("framecheck"),
		kong.Description("Static schema checker for pandas and polars dataframes."),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
	)
	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}
