package build

import (
	"context"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// FileResult is the outcome of analyzing one file of a batch.
type FileResult struct {
	Path string

	// The analysis result.  This is nil if Err is set.
	*Result

	// The error that prevented the file from being analyzed if any.
	Err error
}

// Compiler analyzes batches of source files concurrently.
type Compiler struct {
	opts Options

	// The maximum number of files analyzed at once.
	jobs int
}

// NewCompiler creates a new compiler.  A non-positive job count means one
// file at a time.
func NewCompiler(opts Options, jobs int) *Compiler {
	if jobs < 1 {
		jobs = 1
	}

	return &Compiler{opts: opts, jobs: jobs}
}

// AnalyzeFiles analyzes every given file.  The results are in the same order
// as the paths.  Files which cannot be read are reported through their
// result's Err rather than stopping the batch: an error is only returned if
// the context is cancelled.
func (c *Compiler) AnalyzeFiles(ctx context.Context, paths []string) ([]*FileResult, error) {
	results := make([]*FileResult, len(paths))
	sem := semaphore.NewWeighted(int64(c.jobs))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}

		i, path := i, path
		g.Go(func() error {
			defer sem.Release(1)

			if err := gctx.Err(); err != nil {
				return err
			}

			res, err := AnalyzeFile(path, c.opts)
			results[i] = &FileResult{Path: path, Result: res, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Acquire only fails once the context is done.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// FindSources returns every file below root with the given extension in
// lexical order.
func FindSources(root, ext string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if !d.IsDir() && strings.HasSuffix(d.Name(), ext) {
			paths = append(paths, path)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}
