package gen_test

import (
	"slices"
	"testing"

	"github.com/leanovate/gopter"
	pgen "github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"aegis/internal/gen"
	"aegis/internal/sig"
)

var tagPool = []string{
	"int", "float", "str", "bool", "any", "MyClass",
	"list[int]", "list[str]", "dict[str, int]", "set[int]", "tuple[float]",
	"Optional[int]", "Optional[str]", "Callable[int, str]",
}

func TestProperty_CountAndKeys(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("every case has exactly the parameter names in order", prop.ForAll(
		func(count int, picks []int, seed uint64) bool {
			ps := make([]sig.Param, len(picks))
			names := make([]string, len(picks))
			for i, p := range picks {
				names[i] = "p" + string(rune('a'+i%26)) + string(rune('0'+i/26%10))
				ps[i] = sig.Param{Name: names[i], Type: sig.MustParseTag(tagPool[p])}
			}
			cfg := gen.DefaultConfig()
			cfg.Count = count
			cases := gen.NewSeeded(seed).Generate(ps, cfg)
			if len(cases) != count {
				return false
			}
			for _, tc := range cases {
				if !slices.Equal(tc.Names(), names) {
					return false
				}
			}
			return true
		},
		pgen.IntRange(1, 40),
		pgen.SliceOf(pgen.IntRange(0, len(tagPool)-1)),
		pgen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestProperty_IntWithinRange(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("int values stay inside [IntMin, IntMax]", prop.ForAll(
		func(a, b int64, seed uint64) bool {
			cfg := gen.DefaultConfig()
			cfg.Count = 50
			cfg.IntMin, cfg.IntMax = min(a, b), max(a, b)
			ps := []sig.Param{
				{Name: "x", Type: sig.MustParseTag("int")},
				{Name: "y", Type: sig.MustParseTag("Optional[int]")},
			}
			for _, tc := range gen.NewSeeded(seed).Generate(ps, cfg) {
				for _, in := range tc {
					v, ok := in.Value.(int64)
					if !ok {
						if in.Value == nil && in.Name == "y" {
							continue
						}
						return false
					}
					if v < cfg.IntMin || v > cfg.IntMax {
						return false
					}
				}
			}
			return true
		},
		pgen.Int64(),
		pgen.Int64(),
		pgen.UInt64(),
	))

	properties.Property("float values stay inside [FloatMin, FloatMax]", prop.ForAll(
		func(a, b float64, seed uint64) bool {
			cfg := gen.DefaultConfig()
			cfg.Count = 50
			cfg.FloatMin, cfg.FloatMax = min(a, b), max(a, b)
			ps := []sig.Param{{Name: "x", Type: sig.MustParseTag("float")}}
			for _, tc := range gen.NewSeeded(seed).Generate(ps, cfg) {
				v := tc[0].Value.(float64)
				if v < cfg.FloatMin || v > cfg.FloatMax {
					return false
				}
			}
			return true
		},
		pgen.Float64Range(-1e9, 1e9),
		pgen.Float64Range(-1e9, 1e9),
		pgen.UInt64(),
	))

	properties.TestingRun(t)
}

func TestProperty_SameSeedSameCases(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	properties.Property("same seed reproduces the output", prop.ForAll(
		func(seed uint64) bool {
			ps := []sig.Param{
				{Name: "s", Type: sig.MustParseTag("str")},
				{Name: "o", Type: sig.MustParseTag("Optional[str]")},
				{Name: "l", Type: sig.MustParseTag("set[str]")},
			}
			a := gen.NewSeeded(seed).Generate(ps, gen.DefaultConfig())
			b := gen.NewSeeded(seed).Generate(ps, gen.DefaultConfig())
			for i := range a {
				ja, _ := a[i].MarshalJSON()
				jb, _ := b[i].MarshalJSON()
				if string(ja) != string(jb) {
					return false
				}
			}
			return true
		},
		pgen.UInt64(),
	))

	properties.TestingRun(t)
}
