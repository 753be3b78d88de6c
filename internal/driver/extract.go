package driver

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"

	"aegis/internal/diag"
	"aegis/internal/extract"
	"aegis/internal/observ"
	"aegis/internal/sig"
	"aegis/internal/source"
)

// ExtractOptions controls extraction of one file.
type ExtractOptions struct {
	Extract        extract.Options
	MaxDiagnostics int
	// Cache may be nil, which disables caching.
	Cache    *SignatureCache
	Observer PhaseObserver
	Logger   *log.Logger
}

// ExtractResult is the outcome of extraction. Err carries the domain error
// (*extract.ParseError or extract.ErrNoDefinition) and Bag its diagnostics.
type ExtractResult struct {
	FileSet   *source.FileSet
	File      *source.File
	Signature *sig.Signature
	Bag       *diag.Bag
	Err       error
	Cached    bool
	Timing    observ.Report
}

// NoDefinition reports that there is no signature (syntax error or no def).
func (r *ExtractResult) NoDefinition() bool {
	return r != nil && errors.Is(r.Err, extract.ErrNoDefinition)
}

// Extract loads path ("-" is stdin) and extracts the first function.
// It returns an error only for I/O problems, an unknown engine or cancellation.
func Extract(ctx context.Context, path string, opts ExtractOptions) (*ExtractResult, error) {
	fs, file, err := loadFile(path)
	if err != nil {
		return nil, err
	}
	return ExtractFile(ctx, fs, file, opts)
}

// ExtractFile does the same for an already loaded file.
func ExtractFile(ctx context.Context, fs *source.FileSet, file *source.File, opts ExtractOptions) (*ExtractResult, error) {
	engine, err := extract.EngineFor(opts.Extract.Engine)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	res := &ExtractResult{FileSet: fs, File: file, Bag: diag.NewBag(max(opts.MaxDiagnostics, 1))}
	timer := observ.NewTimer()

	key := cacheKey(file.Hash, engine.Name(), opts.Extract.IncludeAsync)
	if opts.Cache != nil {
		idx := timer.Begin("cache")
		s, ok, cerr := opts.Cache.Get(key)
		switch {
		case cerr != nil:
			logger.Warn("signature cache read failed", "path", file.Path, "err", cerr)
		case ok:
			timer.End(idx, "hit")
			logger.Debug("signature cache hit", "path", file.Path, "engine", engine.Name())
			res.Signature, res.Cached = s, true
			res.Timing = timer.Report()
			return res, nil
		}
		timer.End(idx, "miss")
		logger.Debug("signature cache miss", "path", file.Path, "engine", engine.Name())
	}

	opts.Observer.start("extract")
	begin := time.Now()
	idx := timer.Begin("extract")
	extractOpts := opts.Extract
	if extractOpts.MaxErrors == 0 && opts.MaxDiagnostics > 0 {
		extractOpts.MaxErrors = uint(opts.MaxDiagnostics) // #nosec G115 -- positive int
	}
	s, err := extract.File(ctx, file, extractOpts)
	timer.End(idx, engine.Name())
	opts.Observer.end("extract", time.Since(begin))
	res.Timing = timer.Report()

	var perr *extract.ParseError
	switch {
	case err == nil:
		res.Signature = s
		if opts.Cache != nil {
			if werr := opts.Cache.Put(key, engine.Name(), file.Path, s); werr != nil {
				logger.Warn("signature cache write failed", "path", file.Path, "err", werr)
			}
		}
	case errors.As(err, &perr):
		res.Err = err
		if perr.Bag != nil {
			res.Bag.Merge(perr.Bag)
		} else {
			res.Bag.Add(diag.NewError(diag.ExtEngineFailed, fileStart(file), err.Error()))
		}
	case errors.Is(err, extract.ErrNoDefinition):
		res.Err = err
		res.Bag.Add(diag.NewError(diag.ExtNoDefinition, fileStart(file), "no function definition found"))
	default:
		return nil, err
	}
	return res, nil
}

func fileStart(file *source.File) source.Span {
	return source.Span{File: file.ID}
}
