package driver

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"aegis/internal/gen"
	"aegis/internal/sig"
)

// GenerateOptions combines extraction with generation settings.
type GenerateOptions struct {
	ExtractOptions
	// Seed 0 picks a random seed; the chosen one is returned in the result.
	Seed uint64
	// Params replaces extraction with a ready parameter list.
	Params []sig.Param
}

type GenerateResult struct {
	*ExtractResult
	Params []sig.Param
	Cases  []gen.TestCase
	Seed   uint64
}

// Generate extracts the signature of path and synthesizes cfg.Count cases.
// Without a signature Cases is empty and the reason is in ExtractResult.Err.
func Generate(ctx context.Context, path string, cfg gen.Config, opts GenerateOptions) (*GenerateResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	res := &GenerateResult{Seed: resolveSeed(opts.Seed)}
	if opts.Params != nil {
		s := &sig.Signature{Params: opts.Params}
		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("invalid parameter list: %w", err)
		}
		res.ExtractResult = &ExtractResult{Signature: s}
	} else {
		er, err := Extract(ctx, path, opts.ExtractOptions)
		if err != nil {
			return nil, err
		}
		res.ExtractResult = er
	}
	if res.Signature == nil {
		return res, nil
	}
	res.Params = res.Signature.Params

	opts.Observer.start("generate")
	begin := time.Now()
	res.Cases = gen.NewSeeded(res.Seed).Generate(res.Params, cfg)
	opts.Observer.end("generate", time.Since(begin))
	return res, nil
}

func resolveSeed(seed uint64) uint64 {
	for seed == 0 {
		seed = rand.Uint64() // #nosec G404 -- seed for test data
	}
	return seed
}

// LoadParams reads a parameter list from JSON: [{"name": "x", "type": "list[int]"}, ...].
func LoadParams(path string) ([]sig.Param, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read params: %w", err)
	}
	var params []sig.Param
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("decode params %s: %w", path, err)
	}
	if params == nil {
		params = []sig.Param{}
	}
	return params, nil
}
