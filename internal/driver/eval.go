// Package driver runs the lexer, parser and checker over WGSL files and
// collects their folded declarations and diagnostics.
package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"tint/internal/ast"
	"tint/internal/constant"
	"tint/internal/diag"
	"tint/internal/eval"
	"tint/internal/lexer"
	"tint/internal/observ"
	"tint/internal/parser"
	"tint/internal/sema"
	"tint/internal/source"
	"tint/internal/trace"
	"tint/internal/types"
)

// Options configure an evaluation run.
type Options struct {
	MaxDiagnostics   int
	RuntimeSemantics bool
	WarningsAsErrors bool
	EnableTimings    bool
	// Jobs limits concurrent files in EvalDir; 0 means GOMAXPROCS.
	Jobs int
	// Cache, when set, answers unchanged files without evaluating them.
	Cache    *DiskCache
	Progress ProgressSink
}

// DefaultMaxDiagnostics applies when Options.MaxDiagnostics is not positive.
const DefaultMaxDiagnostics = 100

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return DefaultMaxDiagnostics
	}
	return o.MaxDiagnostics
}

// DeclResult is a folded declaration rendered for output. Value is empty
// when the declaration failed.
type DeclResult struct {
	Name  string
	Type  string
	Value string
	Span  source.Span
}

// Result is the outcome of evaluating one file.
type Result struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag
	Decls   []DeclResult
	Asserts int
	Cached  bool
	Timing  observ.Report
}

// EvalFile evaluates every declaration of the file at path.
func EvalFile(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	fileID, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return evalLoaded(ctx, fs, fileID, opts), nil
}

// EvalSource evaluates in-memory source registered under name.
func EvalSource(ctx context.Context, name string, content []byte, opts Options) *Result {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual(name, content)
	return evalLoaded(ctx, fs, fileID, opts)
}

// evalLoaded runs the pipeline on a file already in fs. It only reads fs, so
// EvalDir calls it concurrently on a preloaded set.
func evalLoaded(ctx context.Context, fs *source.FileSet, fileID source.FileID, opts Options) *Result {
	file := fs.Get(fileID)
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "eval_file", trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)

	timer := observ.NewTimer()
	res := &Result{
		Path:    file.Path,
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.maxDiagnostics()),
	}

	key := cacheKey(file.Hash, opts)
	if opts.Cache != nil {
		idx := timer.Begin("cache")
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		note := "miss"
		if err != nil {
			note = "error: " + err.Error()
		}
		if hit {
			note = "hit"
			res.Decls, res.Asserts = diskPayloadToResult(&payload, fileID, res.Bag)
			res.Cached = true
		}
		timer.End(idx, note)
	}

	if !res.Cached {
		res.Decls, res.Asserts = check(ctx, file, res.Bag, timer, opts)
		if opts.Cache != nil {
			if err := opts.Cache.Put(key, resultToDiskPayload(res)); err != nil {
				trace.Point(tracer, trace.ScopeFile, "cache_put_failed", err.Error(), span.ID())
			}
		}
	}

	finish(res, timer, opts)
	span.WithExtra("decls", fmt.Sprint(len(res.Decls))).
		WithExtra("cached", fmt.Sprint(res.Cached)).
		End(file.Path)
	return res
}

// check parses and checks file, reporting into bag.
func check(ctx context.Context, file *source.File, bag *diag.Bag, timer *observ.Timer, opts Options) ([]DeclResult, int) {
	tracer := trace.FromContext(ctx)
	parent := trace.CurrentSpan(ctx)
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	maxErrors, err := safecast.Conv[uint](opts.maxDiagnostics())
	if err != nil {
		panic(fmt.Errorf("maxDiagnostics overflow: %w", err))
	}

	idx := timer.Begin("parse")
	parseSpan := trace.Begin(tracer, trace.ScopePass, "parse", parent)
	builder := ast.NewBuilder(ast.Hints{})
	lx := lexer.New(file, lexer.Options{Reporter: reporter})
	parsed := parser.ParseFile(lx, builder, parser.Options{Reporter: reporter, MaxErrors: maxErrors})
	items := 0
	if f := builder.Files.Get(parsed.File); f != nil {
		items = len(f.Items)
	}
	parseSpan.End(fmt.Sprintf("items=%d", items))
	timer.End(idx, fmt.Sprintf("items=%d", items))

	idx = timer.Begin("check")
	checkSpan := trace.Begin(tracer, trace.ScopePass, "check", parent)
	checked := sema.Check(builder, parsed.File, sema.Options{
		Reporter:   reporter,
		Eval:       eval.Options{RuntimeSemantics: opts.RuntimeSemantics},
		Tracer:     tracer,
		ParentSpan: checkSpan.ID(),
	})
	decls := renderDecls(checked.Values, checked.Decls)
	checkSpan.End(fmt.Sprintf("decls=%d", len(decls)))
	timer.End(idx, fmt.Sprintf("decls=%d asserts=%d", len(decls), checked.Asserts))
	return decls, checked.Asserts
}

func renderDecls(values *constant.Manager, decls []sema.Decl) []DeclResult {
	in := values.Types()
	out := make([]DeclResult, len(decls))
	for i, d := range decls {
		out[i] = DeclResult{Name: d.Name, Span: d.Span}
		if d.Value != nil {
			out[i].Type = in.Name(d.Type)
			out[i].Value = constant.Format(in, d.Value)
		}
	}
	return out
}

// finish applies the severity options and attaches timings.
func finish(res *Result, timer *observ.Timer, opts Options) {
	if opts.WarningsAsErrors {
		res.Bag.Transform(func(d diag.Diagnostic) diag.Diagnostic {
			if d.Severity == diag.SevWarning {
				d.Severity = diag.SevError
			}
			return d
		})
	}
	res.Bag.Sort()
	// a promoted warning may now repeat an error
	res.Bag.Dedup()
	res.Timing = timer.Report()
	if opts.EnableTimings {
		appendTimingDiagnostic(res.Bag, source.Span{File: res.File.ID}, timingPayload{
			Kind:    "file",
			Path:    res.Path,
			TotalMS: res.Timing.TotalMS,
			Phases:  res.Timing.Phases,
		})
	}
}

// EvalExpr evaluates a standalone expression. When declsPath is not empty,
// the declarations of that file are visible to the expression.
func EvalExpr(ctx context.Context, expr, declsPath string, opts Options) (*Result, error) {
	fs := source.NewFileSet()
	bag := diag.NewBag(opts.maxDiagnostics())
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})
	builder := ast.NewBuilder(ast.Hints{})
	timer := observ.NewTimer()

	declsFile := ast.NoFileID
	if declsPath != "" {
		id, err := fs.Load(declsPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", declsPath, err)
		}
		idx := timer.Begin("parse")
		lx := lexer.New(fs.Get(id), lexer.Options{Reporter: reporter})
		declsFile = parser.ParseFile(lx, builder, parser.Options{Reporter: reporter}).File
		timer.End(idx, declsPath)
	}

	exprID := fs.AddVirtual("<expr>", []byte(expr))
	res := &Result{Path: "<expr>", FileSet: fs, File: fs.Get(exprID), Bag: bag}
	idx := timer.Begin("parse_expr")
	lx := lexer.New(res.File, lexer.Options{Reporter: reporter})
	node, ok := parser.ParseExpr(lx, builder, parser.Options{Reporter: reporter})
	timer.End(idx, "")
	if ok {
		idx = timer.Begin("check")
		tracer := trace.FromContext(ctx)
		values := constant.NewManager(types.NewInterner())
		decl, _ := sema.CheckExpr(builder, declsFile, node, sema.Options{
			Reporter:   reporter,
			Values:     values,
			Eval:       eval.Options{RuntimeSemantics: opts.RuntimeSemantics},
			Tracer:     tracer,
			ParentSpan: trace.CurrentSpan(ctx),
		})
		decl.Name = "expr"
		res.Decls = renderDecls(values, []sema.Decl{decl})
		timer.End(idx, "")
	}
	finish(res, timer, opts)
	return res, nil
}
