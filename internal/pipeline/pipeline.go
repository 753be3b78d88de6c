package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"aegis/internal/diag"
	"aegis/internal/driver"
	"aegis/internal/gen"
)

// Request configures a batch run over a directory.
type Request struct {
	Dir    string
	Jobs   int
	Config gen.Config
	// Seed 0 picks a random base seed.
	Seed     uint64
	Extract  driver.ExtractOptions
	Progress ProgressSink
	Logger   *log.Logger
}

// FileResult is the outcome for one file. Err carries I/O failures only;
// a missing signature shows up as Result.NoDefinition().
type FileResult struct {
	Path    string
	Display string
	Seed    uint64
	Result  *driver.GenerateResult
	Err     error
	Elapsed time.Duration

	stages map[Stage]time.Duration
}

// Result is the outcome of a whole run, with Files in ListPyFiles order.
type Result struct {
	Seed    uint64
	Files   []FileResult
	Timings Timings
}

// Counts returns how many files had a signature, had none, or failed.
func (r *Result) Counts() (ok, noDef, failed int) {
	for i := range r.Files {
		f := &r.Files[i]
		switch {
		case f.Err != nil:
			failed++
		case f.Result == nil || f.Result.NoDefinition():
			noDef++
		default:
			ok++
		}
	}
	return ok, noDef, failed
}

// FileSeed derives a file's seed from the base seed and its index, so output
// does not depend on goroutine scheduling.
func FileSeed(base uint64, index int) uint64 {
	// splitmix64
	z := base + uint64(index+1)*0x9e3779b97f4a7c15 // #nosec G115 -- index >= 0
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	z ^= z >> 31
	if z == 0 {
		z = 1
	}
	return z
}

// Run extracts signatures and generates cases for every *.py in req.Dir in parallel.
func Run(ctx context.Context, req *Request) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return nil, errors.New("missing batch request")
	}
	if err := req.Config.Validate(); err != nil {
		return nil, err
	}
	logger := req.Logger
	if logger == nil {
		logger = log.Default()
	}

	files, err := ListPyFiles(req.Dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", req.Dir, err)
	}
	res := &Result{Seed: req.Seed, Files: make([]FileResult, len(files))}
	for res.Seed == 0 {
		res.Seed = FileSeed(uint64(time.Now().UnixNano()), 0) // #nosec G115 -- entropy only
	}
	if len(files) == 0 {
		return res, nil
	}
	for i, path := range files {
		res.Files[i] = FileResult{Path: path, Display: DisplayPath(path, req.Dir), Seed: FileSeed(res.Seed, i)}
		emit(req.Progress, Event{File: res.Files[i].Display, Stage: StageParse, Status: StatusQueued})
	}

	// Configure parallelism
	jobs := req.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i := range files {
		g.Go(func() error {
			// Check for cancellation
			if err := gctx.Err(); err != nil {
				return err
			}
			// each goroutine owns index i; no mutex needed
			runFile(gctx, req, logger, &res.Files[i])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}

	for i := range res.Files {
		for stage, dur := range res.Files[i].stages {
			res.Timings.Add(stage, dur)
		}
	}
	return res, nil
}

func runFile(ctx context.Context, req *Request, logger *log.Logger, fr *FileResult) {
	begin := time.Now()
	fr.stages = make(map[Stage]time.Duration, 3)
	logger.Debug("batch file start", "file", fr.Display, "seed", fr.Seed)

	emit(req.Progress, Event{File: fr.Display, Stage: StageParse, Status: StatusWorking})
	opts := driver.GenerateOptions{ExtractOptions: req.Extract, Seed: fr.Seed}
	opts.Logger = logger
	opts.Observer = func(ev driver.PhaseEvent) {
		stage := StageExtract
		if ev.Name == "generate" {
			stage = StageGenerate
		}
		switch ev.Status {
		case driver.PhaseStart:
			emit(req.Progress, Event{File: fr.Display, Stage: stage, Status: StatusWorking})
		case driver.PhaseEnd:
			fr.stages[stage] += ev.Elapsed
		}
	}

	gr, err := driver.Generate(ctx, fr.Path, req.Config, opts)
	fr.Elapsed = time.Since(begin)
	fr.Result = gr
	fr.Err = err
	switch {
	case err != nil:
		logger.Warn("batch file failed", "file", fr.Display, "err", err)
		emit(req.Progress, Event{File: fr.Display, Stage: StageParse, Status: StatusError, Err: err, Elapsed: fr.Elapsed})
	case gr.NoDefinition():
		logger.Debug("batch file has no definition", "file", fr.Display, "reason", gr.Err,
			"diagnostics", diag.FormatShortDiagnostics(gr.Bag.Items(), gr.FileSet, false))
		emit(req.Progress, Event{File: fr.Display, Stage: StageExtract, Status: StatusError, Err: gr.Err, Elapsed: fr.Elapsed})
	default:
		logger.Debug("batch file done", "file", fr.Display, "cases", len(gr.Cases), "elapsed", fr.Elapsed)
		emit(req.Progress, Event{File: fr.Display, Stage: StageGenerate, Status: StatusDone, Elapsed: fr.Elapsed})
	}
}

func emit(sink ProgressSink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}
