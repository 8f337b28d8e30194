package driver

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"stylecheck/internal/diag"
	"stylecheck/internal/lint"
	"stylecheck/internal/observ"
	"stylecheck/internal/parser"
	"stylecheck/internal/source"
	"stylecheck/internal/trace"
)

// Options configures a check run.
type Options struct {
	// Jobs ограничивает число параллельных файлов; 0 - GOMAXPROCS.
	Jobs int
	// MaxDiagnostics: лимит диагностик на файл; 0 - без лимита.
	MaxDiagnostics int
	Discover       DiscoverOptions
	// Cache может быть nil - тогда кеш не используется.
	Cache       *DiskCache
	ToolVersion string
	Progress    ProgressSink
}

// FileResult is the outcome for one input file.
type FileResult struct {
	Path        string
	FileID      source.FileID
	Loaded      bool
	Diagnostics []diag.Diagnostic
	Dropped     int
	Err         *InputError
	Cached      bool
	Elapsed     time.Duration
}

// Result содержит результаты по всем файлам в порядке обнаружения.
type Result struct {
	FileSet *source.FileSet
	Files   []FileResult
	Timing  observ.Report
}

// Diagnostics concatenates per-file diagnostics in file order.
func (r *Result) Diagnostics() []diag.Diagnostic {
	var out []diag.Diagnostic
	for i := range r.Files {
		out = append(out, r.Files[i].Diagnostics...)
	}
	return out
}

// Failures returns the input errors in file order.
func (r *Result) Failures() []*InputError {
	var out []*InputError
	for i := range r.Files {
		if r.Files[i].Err != nil {
			out = append(out, r.Files[i].Err)
		}
	}
	return out
}

// Dropped: сколько диагностик отрезал лимит, по всем файлам.
func (r *Result) Dropped() int {
	n := 0
	for i := range r.Files {
		n += r.Files[i].Dropped
	}
	return n
}

// Exit codes of a check run.
const (
	ExitClean    = 0
	ExitFindings = 1
	ExitErrors   = 2
)

// ExitCode: 2 if any file failed, 1 if there are findings, 0 otherwise.
func (r *Result) ExitCode() int {
	findings := false
	for i := range r.Files {
		if r.Files[i].Err != nil {
			return ExitErrors
		}
		if len(r.Files[i].Diagnostics) > 0 || r.Files[i].Dropped > 0 {
			findings = true
		}
	}
	if findings {
		return ExitFindings
	}
	return ExitClean
}

// LintFile parses file and runs the default rule set over it. A syntax error
// is returned as *InputError and yields no diagnostics.
func LintFile(file *source.File, maxDiagnostics int) ([]diag.Diagnostic, int, error) {
	mod, err := parser.Parse(file)
	if err != nil {
		return nil, 0, &InputError{Path: file.Path, Kind: InputSyntax, Err: err}
	}
	bag := diag.NewBag(maxDiagnostics)
	lint.AnalyzeInto(diag.BagReporter{Bag: bag}, file.Path, file, mod)
	return bag.Items(), bag.Dropped(), nil
}

// CheckPaths discovers the files under paths, loads them sequentially into a
// FileSet and lints them in parallel. Input errors are recorded per file; the
// returned error is reserved for discovery failures and cancellation.
func CheckPaths(ctx context.Context, paths []string, opts Options) (*Result, error) {
	ctx, run := trace.Start(ctx, trace.ScopeDriver, "check")
	defer run.End("")
	timer := observ.NewTimer()

	idx := timer.Begin("discover")
	_, sp := trace.Start(ctx, trace.ScopePass, "discover")
	files, err := Discover(paths, opts.Discover)
	sp.WithExtra("files", strconv.Itoa(len(files))).End("")
	timer.End(idx, fmt.Sprintf("%d files", len(files)))
	if err != nil {
		trace.Error(ctx, "discover", err)
		return nil, fmt.Errorf("discover: %w", err)
	}

	res := &Result{
		FileSet: source.NewFileSet(),
		Files:   make([]FileResult, len(files)),
	}
	for _, path := range files {
		emit(opts.Progress, Event{File: source.DisplayPath(path), Status: StatusQueued})
	}

	// FileSet не потокобезопасен: загружаем всё заранее, в одной горутине
	idx = timer.Begin("load")
	_, sp = trace.Start(ctx, trace.ScopePass, "load")
	loaded := res.load(files, opts.Progress)
	sp.WithExtra("loaded", strconv.Itoa(loaded)).End("")
	timer.End(idx, fmt.Sprintf("%d loaded", loaded))

	idx = timer.Begin("lint")
	lctx, sp := trace.Start(ctx, trace.ScopePass, "lint")
	err = res.lintAll(lctx, opts, timer)
	sp.End("")
	timer.End(idx, "")
	res.Timing = timer.Report()

	if err != nil {
		trace.Error(ctx, "lint", err)
		return res, err
	}
	run.WithExtra("diagnostics", strconv.Itoa(len(res.Diagnostics())))
	return res, nil
}

func (r *Result) load(files []string, sink ProgressSink) int {
	loaded := 0
	for i, path := range files {
		fr := &r.Files[i]
		fr.Path = source.DisplayPath(path)
		emit(sink, Event{File: fr.Path, Stage: StageLoad, Status: StatusWorking})
		content, flags, err := source.ReadFile(path)
		if err != nil {
			fr.Err = loadError(fr.Path, err)
			emit(sink, Event{File: fr.Path, Stage: StageLoad, Status: StatusError, Err: fr.Err})
			continue
		}
		fr.FileID = r.FileSet.Add(path, content, flags)
		fr.Loaded = true
		loaded++
	}
	return loaded
}

func (r *Result) lintAll(ctx context.Context, opts Options, timer *observ.Timer) error {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if len(r.Files) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(r.Files)))

	for i := range r.Files {
		fr := &r.Files[i]
		if !fr.Loaded {
			continue
		}
		file := r.FileSet.Get(fr.FileID)
		// Результаты пишутся по уникальному индексу, мьютекс не нужен
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			lintOne(gctx, file, fr, opts, timer)
			return nil
		})
	}
	return g.Wait()
}

func lintOne(ctx context.Context, file *source.File, fr *FileResult, opts Options, timer *observ.Timer) {
	start := time.Now()
	ctx, sp := trace.Start(ctx, trace.ScopeFile, fr.Path)
	defer func() {
		fr.Elapsed = time.Since(start)
		sp.WithExtra("diagnostics", strconv.Itoa(len(fr.Diagnostics))).End(cacheNote(fr.Cached))
		if fr.Err != nil {
			emit(opts.Progress, Event{File: fr.Path, Stage: StageParse, Status: StatusError, Err: fr.Err, Elapsed: fr.Elapsed})
			return
		}
		emit(opts.Progress, Event{File: fr.Path, Stage: StageAnalyze, Status: StatusDone, Elapsed: fr.Elapsed, Count: len(fr.Diagnostics)})
	}()

	var key CacheKey
	if opts.Cache != nil {
		key = KeyFor(opts.ToolVersion, file, opts.MaxDiagnostics)
		var cached CachedResult
		ok, err := opts.Cache.Get(key, &cached)
		if err != nil {
			trace.Error(ctx, "cache-get", err)
		}
		if ok {
			timer.Since("cache-hit", start)
			fr.Diagnostics, fr.Err = fromCached(&cached, file)
			fr.Dropped = cached.Dropped
			fr.Cached = true
			return
		}
	}

	emit(opts.Progress, Event{File: fr.Path, Stage: StageParse, Status: StatusWorking})
	stageStart := time.Now()
	mod, err := parser.Parse(file)
	timer.Since("parse", stageStart)
	if err != nil {
		fr.Err = &InputError{Path: file.Path, Kind: InputSyntax, Err: err}
	} else {
		emit(opts.Progress, Event{File: fr.Path, Stage: StageAnalyze, Status: StatusWorking})
		stageStart = time.Now()
		bag := diag.NewBag(opts.MaxDiagnostics)
		lint.AnalyzeInto(diag.BagReporter{Bag: bag}, file.Path, file, mod)
		fr.Diagnostics, fr.Dropped = bag.Items(), bag.Dropped()
		timer.Since("analyze", stageStart)
	}

	if opts.Cache != nil {
		if err := opts.Cache.Put(key, toCached(file.Path, fr.Diagnostics, fr.Dropped, fr.Err)); err != nil {
			trace.Error(ctx, "cache-put", err)
		}
	}
}

func cacheNote(cached bool) string {
	if cached {
		return "cached"
	}
	return ""
}

func syntaxError(path string, line, col int, msg string) *InputError {
	return &InputError{
		Path: path,
		Kind: InputSyntax,
		Err:  &parser.SyntaxError{Line: line, Col: col, Msg: msg},
	}
}

func syntaxCol(e *InputError) int {
	var se *parser.SyntaxError
	if errors.As(e.Err, &se) {
		return se.Col
	}
	return 0
}
