// Package runner checks batches of files concurrently, consulting the
// result cache when one is available. Each file's analysis is independent,
// so the pool shares nothing but the output slice.
package runner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/typedframes/framecheck/internal/cache"
	"github.com/typedframes/framecheck/internal/checker"
	"github.com/typedframes/framecheck/internal/project"
)

// FileResult is the outcome of checking one file.
type FileResult struct {
	Path        string
	Entries     []cache.Entry
	ParseFailed bool
	Err         error // I/O failure; Entries is empty then
}

// Errors counts the entries that fail the check. Warnings count only in
// strict mode.
func (r FileResult) Errors(strict bool) int {
	n := 0
	for _, e := range r.Entries {
		if !e.Warning || strict {
			n++
		}
	}
	return n
}

type Runner struct {
	opts    checker.Options
	store   *cache.Store
	workers int
}

// New builds a runner for a project. A nil store disables caching; cache
// open failures are treated the same way since a broken cache must never
// block a check.
func New(cfg project.Config, store *cache.Store) *Runner {
	return &Runner{
		opts: checker.Options{
			ExtraReserved:   cfg.ExtraReserved,
			ExtraFrameTypes: cfg.ExtraFrameTypes,
		},
		store:   store,
		workers: runtime.NumCPU(),
	}
}

// Run checks every path on a fixed worker pool. Results come back in the
// order of the input paths regardless of completion order.
func (r *Runner) Run(paths []string) []FileResult {
	results := make([]FileResult, len(paths))

	workers := r.workers
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				results[i] = r.checkFile(paths[i])
			}
		}()
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}

func (r *Runner) checkFile(path string) FileResult {
	content, err := os.ReadFile(path)
	if err != nil {
		return FileResult{Path: path, Err: fmt.Errorf("read %s: %w", path, err)}
	}

	key := ""
	if r.store != nil {
		key = cache.Key(content)
		if entries, ok := r.store.Get(path, key); ok {
			return fromEntries(path, entries)
		}
	}

	result := checker.Check(string(content), path, r.opts)
	entries := make([]cache.Entry, 0, len(result.Diagnostics))
	for _, d := range result.Diagnostics {
		entries = append(entries, cache.Entry{
			Line:    d.Token.Line,
			Column:  d.Token.Column,
			Code:    string(d.Code),
			Message: d.Message,
			Warning: d.IsWarning(),
			Parse:   d.IsParseFailure(),
		})
	}

	if r.store != nil {
		// Cache write failures are invisible: the check already succeeded.
		_ = r.store.Put(path, key, entries, time.Now().Unix())
	}

	return FileResult{Path: path, Entries: entries, ParseFailed: result.ParseFailed}
}

func fromEntries(path string, entries []cache.Entry) FileResult {
	result := FileResult{Path: path, Entries: entries}
	for _, e := range entries {
		if e.Parse {
			result.ParseFailed = true
			break
		}
	}
	return result
}

// CollectFiles expands the given paths into the Python files to check.
// Directories are walked recursively; hidden directories, __pycache__ and
// site-packages are skipped.
func CollectFiles(paths []string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})

	add := func(path string) {
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			add(path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			name := d.Name()
			if d.IsDir() {
				if p != path && (strings.HasPrefix(name, ".") || name == "__pycache__" || name == "site-packages") {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.HasSuffix(name, ".py") {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}
