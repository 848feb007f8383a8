package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"tint/internal/diag"
	"tint/internal/observ"
	"tint/internal/source"
	"tint/internal/trace"
)

// DirResult is the outcome of EvalDir. Files follow the sorted path order
// regardless of completion order.
type DirResult struct {
	FileSet *source.FileSet
	Files   []*Result
	Timing  observ.Report
}

// ListWGSLFiles returns the sorted *.wgsl files under dir.
func ListWGSLFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && path != dir && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if !d.IsDir() && strings.HasSuffix(path, ".wgsl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// EvalDir evaluates every *.wgsl file under dir in parallel.
func EvalDir(ctx context.Context, dir string, opts Options) (*DirResult, error) {
	files, err := ListWGSLFiles(dir)
	if err != nil {
		return nil, err
	}
	return EvalFiles(ctx, dir, files, opts)
}

// EvalFiles evaluates files in parallel. Paths are rendered relative to base.
func EvalFiles(ctx context.Context, base string, files []string, opts Options) (*DirResult, error) {
	fileSet := source.NewFileSetWithBase(base)
	out := &DirResult{FileSet: fileSet, Files: make([]*Result, len(files))}
	if len(files) == 0 {
		return out, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "eval_dir", trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)
	started := time.Now()

	// the file set is filled before any goroutine starts; afterwards it is
	// only read
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make([]error, len(files))
	for i, path := range files {
		emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusQueued})
		fileIDs[i], loadErrors[i] = fileSet.Load(path)
		if loadErrors[i] != nil {
			// keeps the load error attached to a file of its own
			fileIDs[i] = fileSet.Add(path, nil, source.FileVirtual)
		}
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

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
			fileStart := time.Now()

			if loadErr := loadErrors[i]; loadErr != nil {
				bag := diag.NewBag(opts.maxDiagnostics())
				file := fileSet.Get(fileIDs[i])
				bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: file.ID}, "failed to load file: "+loadErr.Error()))
				out.Files[i] = &Result{Path: path, FileSet: fileSet, File: file, Bag: bag}
				emit(opts.Progress, Event{File: path, Stage: StageLoad, Status: StatusError, Err: loadErr})
				return nil
			}

			emit(opts.Progress, Event{File: path, Stage: StageCheck, Status: StatusWorking})
			res := evalLoaded(gctx, fileSet, fileIDs[i], opts)
			out.Files[i] = res

			status := StatusDone
			switch {
			case res.Bag.HasErrors():
				status = StatusError
			case res.Cached:
				status = StatusCached
			}
			emit(opts.Progress, Event{File: path, Stage: StageCheck, Status: status, Elapsed: time.Since(fileStart)})
			return nil
		})
	}

	err := g.Wait()
	for _, res := range out.Files {
		if res != nil {
			out.Timing.Add(res.Timing)
		}
	}
	emit(opts.Progress, Event{Stage: StageCheck, Status: StatusDone, Err: err, Elapsed: time.Since(started)})
	span.WithExtra("files", strconv.Itoa(len(files))).End(base)
	return out, err
}
