// Package check validates JSON files in parallel and locates the first error
// in each one.
package check

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/bethropolis/jsonpad/internal/locate"
	"github.com/bethropolis/jsonpad/internal/logger"
	"github.com/bethropolis/jsonpad/internal/textpos"
	"github.com/bethropolis/jsonpad/internal/token"
)

// Result is the outcome for one file.
type Result struct {
	Path     string
	Valid    bool
	Empty    bool  // Only whitespace; reported valid
	Err      error // Read failure; Message and Position are unset
	Message  string
	Position *textpos.Position
}

// Options configures a check run. Zero values select defaults.
type Options struct {
	Jobs     int
	Parser   locate.Parser
	Locators []locate.Locator
}

func (o Options) withDefaults() Options {
	if o.Jobs <= 0 {
		o.Jobs = runtime.GOMAXPROCS(0)
	}
	if o.Parser == nil {
		o.Parser = locate.JSONParser{Exact: true}
	}
	if o.Locators == nil {
		o.Locators = []locate.Locator{locate.NewCascade(nil)}
	}
	return o
}

// Expand replaces every directory in paths with the *.json files below it,
// sorted. Other paths are kept in order.
func Expand(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			out = append(out, p)
			continue
		}
		var files []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		sort.Strings(files)
		out = append(out, files...)
	}
	return out, nil
}

// Text checks a single document.
func Text(path, text string, opts Options) Result {
	opts = opts.withDefaults()
	return checkText(path, text, opts)
}

func checkText(path, text string, opts Options) Result {
	res := Result{Path: path}
	if token.IsBlank(text) {
		res.Valid, res.Empty = true, true
		return res
	}
	err := opts.Parser.Parse(text)
	if err == nil {
		res.Valid = true
		return res
	}
	res.Message = err.Error()
	if pos, ok := locate.Resolve(err, text, opts.Locators...); ok {
		res.Position = &pos
	}
	return res
}

// Files checks every path concurrently, at most opts.Jobs at a time. Results
// are in input order. A file that cannot be read gets a Result with Err set;
// the returned error is only non-nil when ctx is cancelled.
func Files(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	opts = opts.withDefaults()
	results := make([]Result, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(opts.Jobs, len(paths)))

	for i, path := range paths {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			data, err := os.ReadFile(path)
			if err != nil {
				results[i] = Result{Path: path, Err: fmt.Errorf("read %s: %w", path, err)}
				return nil
			}
			results[i] = checkText(path, string(data), opts)
			logger.DebugTagf("check", "%s: valid=%v", path, results[i].Valid)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Failed counts results that are invalid or unreadable.
func Failed(results []Result) int {
	n := 0
	for _, r := range results {
		if r.Err != nil || !r.Valid {
			n++
		}
	}
	return n
}
