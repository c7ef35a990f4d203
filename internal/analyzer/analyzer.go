// Package analyzer expands input patterns into ping log files and runs
// the parser over them with a small worker pool. Files are independent,
// so the only coordination is collecting results.
package analyzer

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"ping-tool/internal/category"
	"ping-tool/internal/models"
	"ping-tool/internal/parser"
)

// Analyzer parses many ping log files concurrently.
type Analyzer struct {
	workers int
}

// New creates an Analyzer with the given worker count (minimum 1).
func New(workers int) *Analyzer {
	if workers < 1 {
		workers = 1
	}
	return &Analyzer{workers: workers}
}

type result struct {
	path     string
	analysis *models.Analysis
	err      error
}

// Run analyzes every file and returns the successful analyses sorted by
// filename. Unreadable files and files without ping data are logged and
// skipped; neither aborts the run.
func (a *Analyzer) Run(paths []string) []*models.Analysis {
	jobs := make(chan string)
	results := make(chan result, len(paths))

	var wg sync.WaitGroup
	for i := 0; i < a.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				analysis, err := parser.ParseFile(path)
				results <- result{path: path, analysis: analysis, err: err}
			}
		}()
	}

	for _, path := range paths {
		jobs <- path
	}
	close(jobs)
	wg.Wait()
	close(results)

	var analyses []*models.Analysis
	for r := range results {
		switch {
		case errors.Is(r.err, parser.ErrNoData):
			log.Printf("No ping data found in %s", r.path)
		case r.err != nil:
			log.Printf("Skipping %s: %v", r.path, r.err)
		default:
			r.analysis.Category = category.Classify(r.path)
			analyses = append(analyses, r.analysis)
		}
	}

	sort.Slice(analyses, func(i, j int) bool {
		return analyses[i].Filename < analyses[j].Filename
	})
	return analyses
}

// Discover resolves file arguments and glob patterns into a unique,
// order-preserving list of ping log files. With no arguments and no
// pattern it falls back to *ping*.txt and *ping*.log in the current
// directory. Only .txt and .log files are kept.
func Discover(args []string, pattern string) ([]string, error) {
	var candidates []string

	switch {
	case len(args) > 0:
		for _, arg := range args {
			if info, err := os.Stat(arg); err == nil && !info.IsDir() {
				candidates = append(candidates, arg)
				continue
			}
			matches, err := filepath.Glob(arg)
			if err != nil {
				return nil, fmt.Errorf("bad pattern %q: %w", arg, err)
			}
			if len(matches) == 0 {
				log.Printf("Warning: no files found matching pattern %q", arg)
				continue
			}
			candidates = append(candidates, matches...)
		}
	case pattern != "":
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		candidates = matches
	default:
		for _, p := range []string{"*ping*.txt", "*ping*.log"} {
			matches, _ := filepath.Glob(p)
			candidates = append(candidates, matches...)
		}
	}

	seen := make(map[string]bool)
	var files []string
	for _, f := range candidates {
		if seen[f] {
			continue
		}
		seen[f] = true
		if strings.HasSuffix(f, ".txt") || strings.HasSuffix(f, ".log") {
			files = append(files, f)
		}
	}
	return files, nil
}
