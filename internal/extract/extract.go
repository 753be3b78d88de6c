package extract

import (
	"context"
	"fmt"
	"slices"

	"aegis/internal/diag"
	"aegis/internal/sig"
	"aegis/internal/source"
)

const (
	EngineNative     = "native"
	EngineTreeSitter = "treesitter"
)

type Options struct {
	// Engine is the engine name; empty means native.
	Engine string
	// IncludeAsync lets async def qualify.
	IncludeAsync bool
	// MaxErrors caps parse diagnostics (0 means no cap).
	MaxErrors uint
}

// Engine extracts the signature of the first function in a file.
type Engine interface {
	Name() string
	Extract(ctx context.Context, file *source.File, opts Options) (*sig.Signature, error)
}

var engines = map[string]Engine{
	EngineNative:     native{},
	EngineTreeSitter: treeSitter{},
}

// EngineFor returns the engine with the given name.
func EngineFor(name string) (Engine, error) {
	if name == "" {
		name = EngineNative
	}
	e, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownEngine, name, Engines())
	}
	return e, nil
}

// Engines lists the available engine names alphabetically.
func Engines() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Source extracts a signature from text. Errors:
//   - *ParseError when the text does not parse;
//   - ErrNoDefinition when there is no function;
//   - ErrUnknownEngine or a context error.
func Source(ctx context.Context, src []byte, opts Options) (*sig.Signature, error) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("<source>", src))
	return File(ctx, file, opts)
}

// File is Source for an already loaded file.
// A panic inside an engine becomes a *ParseError.
func File(ctx context.Context, file *source.File, opts Options) (s *sig.Signature, err error) {
	engine, err := EngineFor(opts.Engine)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			s, err = nil, &ParseError{Engine: engine.Name(), Panic: r}
		}
	}()
	s, err = engine.Extract(ctx, file, opts)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, &ParseError{Engine: engine.Name(), Bag: singleError(file, diag.SynDuplicateParam, s.Span, err.Error())}
	}
	return s, nil
}

// singleError wraps one error in a bag for engines without a reporter.
func singleError(file *source.File, code diag.Code, sp source.Span, msg string) *diag.Bag {
	bag := diag.NewBag(1)
	if file != nil {
		sp.File = file.ID
	}
	bag.Add(diag.NewError(code, sp, msg))
	return bag
}
