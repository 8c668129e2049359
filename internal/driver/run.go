package driver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"beautysh/internal/format"
)

// Options configures a formatting run.
type Options struct {
	Format format.Options

	// Resolve, when set, supplies per-file formatting options (EditorConfig
	// settings differ by directory). Format is the fallback.
	Resolve func(path string) (format.Options, error)

	// Check reports whether files would change without touching them.
	Check bool
	// Backup writes <path>.bak before rewriting a file in place.
	Backup bool
	// Stdout returns formatted content in the results instead of writing
	// files.
	Stdout bool
	// NoCache bypasses the clean-file cache for this run.
	NoCache bool
	// Jobs caps formatting parallelism; 0 means GOMAXPROCS.
	Jobs int
}

// Result captures the outcome for a single file. Err is set when the file
// could not be read or written back, or when formatting hit a structural
// mismatch; in the mismatch case the best-effort output is still applied.
type Result struct {
	Path      string
	Changed   bool
	Formatted string
	Notes     []string
	Err       error
}

// Run formats the scripts found under paths in parallel. Per-file failures
// land in the corresponding Result; only environment-level problems (no
// input files, cancellation) are returned as an error.
func Run(ctx context.Context, paths []string, opts Options) ([]Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	files, err := collectScripts(ctx, paths)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, errors.New("beautysh: no shell scripts found")
	}

	var cache *CleanCache
	if !opts.NoCache && !opts.Stdout {
		// A broken cache never blocks formatting.
		cache, _ = OpenCleanCache("beautysh")
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	results := make([]Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = formatOne(path, cache, opts)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func formatOne(path string, cache *CleanCache, opts Options) Result {
	res := Result{Path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = err
		return res
	}
	src := string(data)

	fileOpts := opts.Format
	if opts.Resolve != nil {
		fileOpts, err = opts.Resolve(path)
		if err != nil {
			res.Err = err
			return res
		}
	}

	key := CacheKey(src, fileOpts)
	if cache != nil {
		if hit, err := cache.Get(key); err == nil && hit {
			return res
		}
	}

	fopts := fileOpts
	fopts.Report = func(line int, msg string) {
		res.Notes = append(res.Notes, fmt.Sprintf("%s:%d: %s", path, line, msg))
	}
	// Soft structural errors still come with best-effort output; the write
	// policy runs regardless and the error lands in the result.
	fres, ferr := format.Beautify(src, fopts)
	if ferr != nil {
		res.Err = fmt.Errorf("%s: %w", path, ferr)
	}
	res.Changed = fres.Changed

	if opts.Stdout {
		res.Formatted = fres.Formatted
		return res
	}
	if !fres.Changed {
		if cache != nil && res.Err == nil {
			_ = cache.Put(key, newCleanPayload(path, int64(len(src))))
		}
		return res
	}
	if opts.Check {
		res.Formatted = fres.Formatted
		return res
	}

	mode := os.FileMode(0o644)
	if info, statErr := os.Stat(path); statErr == nil {
		mode = info.Mode()
	}
	if opts.Backup {
		if err := os.WriteFile(path+".bak", data, mode.Perm()); err != nil {
			res.Err = errors.Join(res.Err, err)
			return res
		}
	}
	if err := os.WriteFile(path, []byte(fres.Formatted), mode.Perm()); err != nil {
		res.Err = errors.Join(res.Err, err)
		return res
	}
	if cache != nil && res.Err == nil {
		_ = cache.Put(CacheKey(fres.Formatted, fileOpts), newCleanPayload(path, int64(len(fres.Formatted))))
	}
	return res
}

// FormatReader beautifies one stream, for stdin usage. The formatted text
// is written to w even when it equals the input and even on soft
// structural errors, which are returned after the write.
func FormatReader(r io.Reader, w io.Writer, opts format.Options) (bool, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return false, err
	}
	fres, ferr := format.Beautify(string(data), opts)
	if _, err := io.WriteString(w, fres.Formatted); err != nil {
		return false, err
	}
	return fres.Changed, ferr
}
