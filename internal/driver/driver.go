// Package driver runs the engine over files and directories.
package driver

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"lektor/internal/cache"
	"lektor/internal/check"
	"lektor/internal/diag"
	"lektor/internal/observ"
	"lektor/internal/source"
	"lektor/internal/trace"
)

// Options configure a driver run.
type Options struct {
	Engine         *check.Engine
	MaxDiagnostics int
	Jobs           int
	// Cache is optional. CacheSalt must change whenever the word lists do.
	Cache     *cache.DiskCache
	CacheSalt string
	Progress  ProgressSink
	// Timer, when set, collects load and check durations.
	Timer *observ.Timer
}

// FileResult is the outcome for one file.
type FileResult struct {
	Path   string
	FileID source.FileID
	Result *check.Result
	Bag    *diag.Bag
	Cached bool
	// Err is set when the file could not be read; the run goes on.
	Err error
}

// CheckReader checks text read from r (stdin) under name.
func CheckReader(ctx context.Context, name string, r io.Reader, opts Options) (*source.FileSet, *FileResult, error) {
	fs := source.NewFileSet()
	id, err := fs.LoadReader(name, r)
	if err != nil {
		return fs, nil, err
	}
	res, err := checkLoaded(ctx, fs, id, opts)
	return fs, res, err
}

// CheckFile checks a single file.
func CheckFile(ctx context.Context, path string, opts Options) (*source.FileSet, *FileResult, error) {
	fs := source.NewFileSet()
	start := time.Now()
	id, err := fs.Load(path)
	if err != nil {
		return fs, nil, err
	}
	if opts.Timer != nil {
		opts.Timer.Add("load", time.Since(start))
	}
	res, err := checkLoaded(ctx, fs, id, opts)
	return fs, res, err
}

// CheckDir checks every text file under dir in parallel. Unreadable files
// are reported in their FileResult; an unavailable lexicon stops the run.
func CheckDir(ctx context.Context, dir string, exts []string, opts Options) (*source.FileSet, []FileResult, error) {
	ctx, span := trace.Start(ctx, trace.ScopeRun, "check-dir")
	defer span.End("")

	files, err := ListTextFiles(dir, exts)
	if err != nil {
		return nil, nil, err
	}
	fileSet := source.NewFileSetWithBase(dir)
	if len(files) == 0 {
		return fileSet, nil, nil
	}
	span.WithExtra("files", strconv.Itoa(len(files)))

	// FileSet is not safe for concurrent Add, so everything is loaded first.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	start := time.Now()
	for _, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}
	if opts.Timer != nil {
		opts.Timer.Add("load", time.Since(start))
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Индексы уникальны для каждой горутины, мьютекс не нужен.
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, failed := loadErrors[path]; failed {
				results[i] = FileResult{Path: path, Bag: diag.NewBag(opts.MaxDiagnostics), Err: loadErr}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}
			res, err := checkLoaded(gctx, fileSet, fileIDs[path], opts)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			results[i] = *res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		emit(opts.Progress, Event{Stage: StageCheck, Status: StatusError, Err: err})
		return fileSet, results, err
	}
	emit(opts.Progress, Event{Stage: StageCheck, Status: StatusDone})
	return fileSet, results, nil
}

// checkLoaded runs the engine on a file already in fs, going through the
// cache when one is configured.
func checkLoaded(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options) (*FileResult, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("driver: no engine")
	}
	file := fs.Get(id)
	ctx, span := trace.Start(ctx, trace.ScopeFile, file.Path)
	defer span.End("")

	emit(opts.Progress, Event{File: file.Path, Stage: StageCheck, Status: StatusWorking})
	start := time.Now()
	text := string(file.Content)

	out := &FileResult{Path: file.Path, FileID: id, Bag: diag.NewBag(opts.MaxDiagnostics)}
	key := cache.KeyFor(text, opts.Engine.Options(), opts.CacheSalt)
	if payload, ok, err := opts.Cache.Get(key); err == nil && ok {
		out.Result = payload.Result(id)
		out.Cached = true
	} else {
		res, err := opts.Engine.RunFile(ctx, id, text)
		if err != nil {
			emit(opts.Progress, Event{File: file.Path, Stage: StageCheck, Status: StatusError, Err: err})
			return nil, err
		}
		out.Result = res
		if err := opts.Cache.Put(key, cache.FromResult(res)); err != nil {
			span.WithExtra("cache", err.Error())
		}
	}
	out.Bag.AddAll(out.Result.Issues)

	elapsed := time.Since(start)
	if opts.Timer != nil {
		opts.Timer.Add("check", elapsed)
	}
	span.WithExtra("issues", strconv.Itoa(len(out.Result.Issues)))
	emit(opts.Progress, Event{
		File:    file.Path,
		Stage:   StageCheck,
		Status:  StatusDone,
		Issues:  len(out.Result.Issues),
		Cached:  out.Cached,
		Elapsed: elapsed,
	})
	return out, nil
}
