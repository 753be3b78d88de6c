package gen

import (
	"math"
	"math/rand/v2"
	"time"

	"aegis/internal/sig"
)

// Generator owns its random source. It is not safe for concurrent use
// by multiple goroutines.
type Generator struct {
	rng *rand.Rand
}

// New returns a generator over rng. A nil rng gets a random seed.
func New(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = newRand(uint64(time.Now().UnixNano())) // #nosec G115 -- entropy only
	}
	return &Generator{rng: rng}
}

// NewSeeded returns a deterministic generator.
func NewSeeded(seed uint64) *Generator {
	return &Generator{rng: newRand(seed)}
}

func newRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) // #nosec G404 -- test data, not crypto
}

// Generate is shorthand for New(rng).Generate.
func Generate(params []sig.Param, cfg Config, rng *rand.Rand) []TestCase {
	return New(rng).Generate(params, cfg)
}

// Generate returns exactly cfg.Count cases. The keys of each case are the
// names of params in the same order.
func (g *Generator) Generate(params []sig.Param, cfg Config) []TestCase {
	count := max(cfg.Count, 0)
	cases := make([]TestCase, 0, count)
	for range count {
		tc := make(TestCase, len(params))
		for i, p := range params {
			tc[i] = Input{Name: p.Name, Value: g.Value(p.Type, cfg)}
		}
		cases = append(cases, tc)
	}
	return cases
}

// Value synthesizes one value for a tag.
func (g *Generator) Value(t sig.Type, cfg Config) any {
	switch t.Kind {
	case sig.KindInt:
		return g.boundaryInt(cfg.IntMin, cfg.IntMax)
	case sig.KindFloat:
		return g.boundaryFloat(cfg.FloatMin, cfg.FloatMax)
	case sig.KindStr:
		return g.boundaryString(cfg.StringLength)
	case sig.KindBool:
		return g.coin()
	case sig.KindList:
		return g.list(elemKind(t))
	case sig.KindDict:
		return g.dict(t)
	case sig.KindSet:
		return g.set(elemKind(t))
	case sig.KindTuple:
		return g.tuple(elemKind(t))
	case sig.KindOptional:
		return g.optional(elemKind(t), cfg)
	default:
		// any, Named, Generic
		return int64(0)
	}
}

// elemKind is the kind of the single argument, or KindAny.
func elemKind(t sig.Type) sig.Kind {
	if elem, ok := t.Elem(); ok {
		return elem.Kind
	}
	return sig.KindAny
}

// boundaryInt: min, min+span/4, 0, max-span/4, max,
// rand[min, min+span/2], rand[floor(max/2), max], all clamped to [min, max].
func (g *Generator) boundaryInt(lo, hi int64) int64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	span := uint64(hi) - uint64(lo) // #nosec G115 -- two's complement difference
	var v int64
	switch g.rng.IntN(7) {
	case 0:
		v = lo
	case 1:
		v = lo + int64(span/4) // #nosec G115 -- span/4 <= hi-lo
	case 2:
		v = 0
	case 3:
		v = hi - int64(span/4) // #nosec G115
	case 4:
		v = hi
	case 5:
		v = g.intBetween(lo, lo+int64(span/2)) // #nosec G115
	default:
		v = g.intBetween(floorHalf(hi), hi)
	}
	return clampInt(v, lo, hi)
}

// floorHalf divides by 2 rounding down, like Python's //.
func floorHalf(v int64) int64 {
	return v >> 1
}

// intBetween is uniform in [a, b] inclusive. An inverted interval is swapped.
func (g *Generator) intBetween(a, b int64) int64 {
	if a > b {
		a, b = b, a
	}
	n := uint64(b) - uint64(a) // #nosec G115
	if n == math.MaxUint64 {
		return int64(g.rng.Uint64()) // #nosec G115 -- full int64 range
	}
	return a + int64(g.rng.Uint64N(n+1)) // #nosec G115 -- offset is at most b-a
}

func clampInt(v, lo, hi int64) int64 {
	return min(max(v, lo), hi)
}

// boundaryFloat uses the same seven candidates with float interpolation.
func (g *Generator) boundaryFloat(lo, hi float64) float64 {
	if lo > hi {
		lo, hi = hi, lo
	}
	// hi/4 - lo/4 instead of (hi-lo)/4 does not overflow at the float64 edges
	quarter := hi/4 - lo/4
	var v float64
	switch g.rng.IntN(7) {
	case 0:
		v = lo
	case 1:
		v = lo + quarter
	case 2:
		v = 0
	case 3:
		v = hi - quarter
	case 4:
		v = hi
	case 5:
		v = g.floatBetween(lo, lo+2*quarter)
	default:
		v = g.floatBetween(hi/2, hi)
	}
	return min(max(v, lo), hi)
}

func (g *Generator) floatBetween(a, b float64) float64 {
	if a > b {
		a, b = b, a
	}
	r := g.rng.Float64()
	return min(max(a*(1-r)+b*r, a), b)
}

var fixedStrings = [...]string{
	"",
	"a",
	"hello",
	"This is a longer string.",
	"special_characters!@#$%^&*()",
}

// boundaryString: five fixed classes plus random letters of length n.
func (g *Generator) boundaryString(n int) string {
	pick := g.rng.IntN(len(fixedStrings) + 1)
	if pick < len(fixedStrings) {
		return fixedStrings[pick]
	}
	return g.letters(n)
}

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func (g *Generator) letters(n int) string {
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = asciiLetters[g.rng.IntN(len(asciiLetters))]
	}
	return string(buf)
}

func (g *Generator) coin() bool {
	return g.rng.IntN(2) == 0
}

func (g *Generator) list(elem sig.Kind) List {
	switch elem {
	case sig.KindInt:
		return g.fill(5, func() any { return g.intBetween(0, 10) })
	case sig.KindStr:
		return g.fill(3, func() any { return g.letters(5) })
	case sig.KindFloat:
		return g.fill(3, func() any { return g.floatBetween(0, 10) })
	case sig.KindBool:
		return g.fill(3, func() any { return g.coin() })
	}
	return g.fill(5, func() any { return int64(0) })
}

func (g *Generator) fill(n int, next func() any) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = next()
	}
	return out
}

// dict: only dict[str, int] gets a non-empty value.
func (g *Generator) dict(t sig.Type) Dict {
	if len(t.Args) == 2 && t.Args[0].Kind == sig.KindStr && t.Args[1].Kind == sig.KindInt {
		return Dict{"key1": int64(1), "key2": int64(2)}
	}
	return Dict{}
}

func (g *Generator) set(elem sig.Kind) Set {
	switch elem {
	case sig.KindInt:
		return dedup(g.fill(5, func() any { return g.intBetween(0, 10) }))
	case sig.KindStr:
		return dedup(g.fill(3, func() any { return g.letters(5) }))
	}
	return Set{}
}

// dedup drops repeats and keeps first-seen order.
func dedup(values []any) Set {
	seen := make(map[any]struct{}, len(values))
	out := make(Set, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

func (g *Generator) tuple(elem sig.Kind) Tuple {
	switch elem {
	case sig.KindInt:
		return g.fill(3, func() any { return g.intBetween(0, 10) })
	case sig.KindStr:
		return g.fill(3, func() any { return g.letters(5) })
	case sig.KindFloat:
		return g.fill(3, func() any { return g.floatBetween(0, 10) })
	}
	return Tuple{int64(0), int64(0), int64(0)}
}

// optional: nil half of the time, otherwise a value over the full configured ranges.
func (g *Generator) optional(elem sig.Kind, cfg Config) any {
	if g.coin() {
		return nil
	}
	switch elem {
	case sig.KindInt:
		return g.intBetween(cfg.IntMin, cfg.IntMax)
	case sig.KindFloat:
		return g.floatBetween(cfg.FloatMin, cfg.FloatMax)
	case sig.KindStr:
		return g.letters(cfg.StringLength)
	}
	return int64(0)
}
