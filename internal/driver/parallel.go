package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"dry/internal/diag"
	"dry/internal/source"
	"dry/internal/trace"
)

// ListFiles возвращает отсортированный список файлов dir с одним из расширений exts.
func ListFiles(dir string, exts []string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if slices.Contains(exts, filepath.Ext(path)) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// детерминированный порядок
	slices.Sort(files)
	return files, nil
}

// ExpandDir runs entry over every matching file under dir in parallel. The
// results keep the order of ListFiles. The returned error is a walk error or
// the context's; per-file problems live in each Result's bag.
func ExpandDir(ctx context.Context, dir string, exts []string, entry Entry, opts Options) (*source.FileSet, []*Result, error) {
	opts = opts.withDefaults()
	fileSet := source.NewFileSetWithBase(dir)

	files, err := ListFiles(dir, exts)
	if err != nil {
		return fileSet, nil, err
	}
	if len(files) == 0 {
		return fileSet, nil, nil
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "expand_dir", trace.ParentSpan(ctx))
	defer span.End("")
	ctx = trace.WithParent(ctx, span.ID())

	// FileSet заполняем до запуска горутин: дальше он только читается
	fileIDs := make([]source.FileID, len(files))
	loadErrors := make(map[int]error)
	for i, path := range files {
		id, err := fileSet.Load(path)
		if err != nil {
			// пустая запись, чтобы диагностике было к чему привязаться
			loadErrors[i] = err
			id = fileSet.AddVirtual(path, nil)
		}
		fileIDs[i] = id
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]*Result, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if loadErr, failed := loadErrors[i]; failed {
				results[i] = loadFailure(fileSet, fileIDs[i], loadErr, opts)
				return nil
			}
			results[i] = runFile(gctx, fileSet, fileIDs[i], entry, opts, opts.Progress)
			return nil
		})
	}

	err = g.Wait()
	span.WithExtra("files", strconv.Itoa(len(files)))
	return fileSet, results, err
}

func loadFailure(fileSet *source.FileSet, id source.FileID, err error, opts Options) *Result {
	bag := diag.NewBag(opts.MaxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, "failed to load file: "+err.Error()))
	res := &Result{Files: fileSet, FileID: id, Path: fileSet.DisplayPath(id), Bag: bag}
	if opts.Progress != nil {
		opts.Progress.OnEvent(Event{File: res.Path, Stage: StageLex, Status: StatusError})
	}
	return res
}
