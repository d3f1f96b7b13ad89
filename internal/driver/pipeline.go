package driver

import (
	"context"
	"fmt"
	"strconv"

	"dry/internal/diag"
	"dry/internal/expand"
	"dry/internal/lexer"
	"dry/internal/source"
	"dry/internal/token"
	"dry/internal/trace"
	"dry/internal/tt"
)

// Result is everything the driver produced for one input.
type Result struct {
	Files    *source.FileSet
	FileID   source.FileID
	Path     string
	Entry    Entry
	Tokens   []token.Token
	Input    []tt.Tree
	Output   []tt.Tree
	Trailing []token.Trivia
	Bag      *diag.Bag
	Stats    Stats
	// Rendered holds Render(Output, opts.Format) once the render stage ran.
	Rendered []byte
	Cached   bool
}

// Failed reports whether the input produced error diagnostics.
func (r *Result) Failed() bool {
	return r == nil || r.Bag.HasErrors()
}

// ExpandSource runs entry over an in-memory input.
func ExpandSource(ctx context.Context, name string, src []byte, entry Entry, opts Options) *Result {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, src)
	opts = opts.withDefaults()
	return runFile(ctx, fs, id, entry, opts, nil)
}

// ExpandFile loads path and runs entry over it.
func ExpandFile(ctx context.Context, path string, entry Entry, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	opts = opts.withDefaults()
	return runFile(ctx, fs, id, entry, opts, nil), nil
}

// runFile is the per-file pipeline: lex, tree, expand, render. Later stages
// are skipped once the bag holds an error. progress may be nil.
func runFile(ctx context.Context, fs *source.FileSet, id source.FileID, entry Entry, opts Options, progress ProgressSink) *Result {
	file := fs.Get(id)
	res := &Result{
		Files:  fs,
		FileID: id,
		Path:   fs.DisplayPath(id),
		Entry:  entry,
		Bag:    diag.NewBag(opts.MaxDiagnostics),
	}
	tracer := trace.FromContext(ctx)
	fileSpan := trace.Begin(tracer, trace.ScopeFile, "file:"+res.Path, trace.ParentSpan(ctx))
	defer func() {
		fileSpan.WithExtra("invocations", strconv.Itoa(res.Stats.Invocations)).
			WithExtra("diagnostics", strconv.Itoa(res.Bag.Len())).
			End("")
	}()
	notify := func(stage Stage, status Status) {
		if progress != nil {
			progress.OnEvent(Event{File: res.Path, Stage: stage, Status: status})
		}
	}
	reporter := diag.BagReporter{Bag: res.Bag}

	if key, ok := cacheKey(file, entry, opts); ok {
		var payload CachedOutput
		if hit, err := opts.Cache.Get(key, &payload); err == nil && hit && payload.valid(file) {
			payload.restore(res)
			fileSpan.WithExtra("cache", "hit")
			notify(StageRender, StatusCached)
			return res
		}
	}

	stage := func(st Stage, name string, fn func()) {
		if ctx.Err() != nil || res.Bag.HasErrors() {
			return
		}
		notify(st, StatusWorking)
		span := trace.Begin(tracer, trace.ScopePass, name, fileSpan.ID())
		mark := opts.Timer.Begin(name)
		fn()
		opts.Timer.End(mark, "")
		span.End("")
	}

	stage(StageLex, "lex", func() {
		res.Tokens = lexer.New(file, lexer.Options{Reporter: reporter}).All()
		res.Trailing = res.Tokens[len(res.Tokens)-1].Leading
	})
	stage(StageTree, "tree", func() {
		res.Input = tt.Build(res.Tokens, reporter)
	})
	stage(StageExpand, "expand", func() {
		res.Output = expandTrees(ctx, res, opts, reporter, fileSpan.ID())
	})
	stage(StageRender, "render", func() {
		out, err := Render(res, opts.Format)
		if err != nil {
			diag.ReportError(reporter, diag.IOWriteError, source.Span{File: id}, err.Error()).Emit()
			return
		}
		res.Rendered = out
	})

	switch {
	case ctx.Err() != nil:
		notify(StageRender, StatusError)
	case res.Failed():
		notify(StageRender, StatusError)
	default:
		if key, ok := cacheKey(file, entry, opts); ok {
			// кэш best effort, ошибка записи не портит результат
			_ = opts.Cache.Put(key, cachedFrom(res, file)) //nolint:errcheck
		}
		notify(StageRender, StatusDone)
	}
	return res
}

// expandTrees hands the input to the engine the way entry asks for.
func expandTrees(ctx context.Context, res *Result, opts Options, r diag.Reporter, parent uint64) []tt.Tree {
	switch res.Entry {
	case EntryFor, EntryWrap:
		res.Stats = Stats{Passes: 1, Invocations: 1}
		site := source.Span{}
		if len(res.Input) == 0 {
			site = res.Tokens[len(res.Tokens)-1].Span
		}
		var (
			out []tt.Tree
			err error
		)
		if res.Entry == EntryFor {
			out, err = expand.ForEach(res.Input, opts.engine(site, r))
		} else {
			out, err = expand.Wrap(res.Input, opts.engine(site, r))
		}
		if err != nil {
			h := host{reporter: r}
			h.fail(err, site)
			return nil
		}
		return out
	default:
		h := &host{opts: opts, reporter: r, tracer: trace.FromContext(ctx), parent: parent}
		out, ok := h.run(res.Input)
		res.Stats = h.stats
		if !ok {
			return nil
		}
		return out
	}
}
