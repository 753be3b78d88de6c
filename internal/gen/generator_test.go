package gen_test

import (
	"encoding/json"
	"math"
	"reflect"
	"slices"
	"strings"
	"testing"

	"aegis/internal/gen"
	"aegis/internal/sig"
)

func params(pairs ...string) []sig.Param {
	out := make([]sig.Param, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, sig.Param{Name: pairs[i], Type: sig.MustParseTag(pairs[i+1])})
	}
	return out
}

func TestGenerate_CountAndKeys(t *testing.T) {
	ps := params("a", "int", "b", "str", "c", "Optional[float]", "d", "MyClass", "e", "dict[str, int]")
	for _, count := range []int{1, 3, 10, 57} {
		cfg := gen.DefaultConfig()
		cfg.Count = count
		cases := gen.NewSeeded(7).Generate(ps, cfg)
		if len(cases) != count {
			t.Fatalf("count %d: got %d cases", count, len(cases))
		}
		for i, tc := range cases {
			if !slices.Equal(tc.Names(), []string{"a", "b", "c", "d", "e"}) {
				t.Fatalf("case %d keys: %v", i, tc.Names())
			}
		}
	}
}

func TestGenerate_UnknownTypesStillProduceCount(t *testing.T) {
	cfg := gen.DefaultConfig()
	cfg.Count = 4
	cases := gen.NewSeeded(1).Generate(params("x", "any", "y", "Callable[int, str]"), cfg)
	if len(cases) != 4 {
		t.Fatalf("got %d cases, want 4", len(cases))
	}
	for _, tc := range cases {
		for _, in := range tc {
			if in.Value != int64(0) {
				t.Fatalf("%s = %#v, want int64(0)", in.Name, in.Value)
			}
		}
	}
}

func TestGenerate_NonPositiveCount(t *testing.T) {
	cfg := gen.DefaultConfig()
	for _, count := range []int{0, -3} {
		cfg.Count = count
		if got := gen.NewSeeded(1).Generate(params("x", "int"), cfg); len(got) != 0 {
			t.Fatalf("count %d: got %d cases", count, len(got))
		}
	}
}

func TestGenerate_NoParams(t *testing.T) {
	cases := gen.NewSeeded(1).Generate(nil, gen.DefaultConfig())
	if len(cases) != 10 {
		t.Fatalf("got %d cases, want 10", len(cases))
	}
	for _, tc := range cases {
		if len(tc) != 0 {
			t.Fatalf("expected empty case, got %v", tc)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	ps := params("n", "int", "s", "str", "l", "list[float]", "o", "Optional[str]")
	a := gen.NewSeeded(42).Generate(ps, gen.DefaultConfig())
	b := gen.NewSeeded(42).Generate(ps, gen.DefaultConfig())
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed produced different cases")
	}
}

func TestGenerate_IntRange(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi int64
	}{
		{"default", -100, 100},
		{"all negative", -50, -10},
		{"all positive", 10, 50},
		{"single point", 7, 7},
		{"full int64", math.MinInt64, math.MaxInt64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := gen.DefaultConfig()
			cfg.Count = 500
			cfg.IntMin, cfg.IntMax = tt.lo, tt.hi
			for _, tc := range gen.NewSeeded(3).Generate(params("x", "int"), cfg) {
				v, ok := tc[0].Value.(int64)
				if !ok {
					t.Fatalf("value %#v is not int64", tc[0].Value)
				}
				if v < tt.lo || v > tt.hi {
					t.Fatalf("value %d outside [%d, %d]", v, tt.lo, tt.hi)
				}
			}
		})
	}
}

func TestGenerate_IntHitsBoundaries(t *testing.T) {
	cfg := gen.DefaultConfig()
	cfg.Count = 1000
	seen := map[int64]bool{}
	for _, tc := range gen.NewSeeded(11).Generate(params("x", "int"), cfg) {
		seen[tc[0].Value.(int64)] = true
	}
	for _, want := range []int64{-100, -50, 0, 50, 100} {
		if !seen[want] {
			t.Errorf("boundary %d never generated", want)
		}
	}
}

func TestGenerate_FloatRange(t *testing.T) {
	tests := []struct {
		name   string
		lo, hi float64
	}{
		{"default", -10, 10},
		{"all negative", -5.5, -1.25},
		{"narrow", 0.1, 0.2},
		{"huge", -math.MaxFloat64, math.MaxFloat64},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := gen.DefaultConfig()
			cfg.Count = 500
			cfg.FloatMin, cfg.FloatMax = tt.lo, tt.hi
			ps := params("x", "float", "y", "Optional[float]")
			for _, tc := range gen.NewSeeded(5).Generate(ps, cfg) {
				v := tc[0].Value.(float64)
				if math.IsNaN(v) || v < tt.lo || v > tt.hi {
					t.Fatalf("float %v outside [%v, %v]", v, tt.lo, tt.hi)
				}
				if tc[1].Value == nil {
					continue
				}
				o := tc[1].Value.(float64)
				if math.IsNaN(o) || o < tt.lo || o > tt.hi {
					t.Fatalf("optional float %v outside [%v, %v]", o, tt.lo, tt.hi)
				}
			}
		})
	}
}

func TestGenerate_Strings(t *testing.T) {
	cfg := gen.DefaultConfig()
	cfg.Count = 600
	cfg.StringLength = 12
	fixed := map[string]bool{
		"":                             true,
		"a":                            true,
		"hello":                        true,
		"This is a longer string.":     true,
		"special_characters!@#$%^&*()": true,
	}
	random := 0
	for _, tc := range gen.NewSeeded(9).Generate(params("s", "str"), cfg) {
		s := tc[0].Value.(string)
		if fixed[s] {
			continue
		}
		random++
		if len(s) != 12 || strings.Trim(s, "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ") != "" {
			t.Fatalf("unexpected random string %q", s)
		}
	}
	if random == 0 {
		t.Fatalf("random letter strings never generated")
	}
}

func TestGenerate_BoolBothValues(t *testing.T) {
	cfg := gen.DefaultConfig()
	cfg.Count = 1000
	seen := map[bool]bool{}
	for _, tc := range gen.NewSeeded(2).Generate(params("b", "bool"), cfg) {
		seen[tc[0].Value.(bool)] = true
	}
	if !seen[true] || !seen[false] {
		t.Fatalf("bool values seen: %v", seen)
	}
}

func TestGenerate_OptionalStr(t *testing.T) {
	cfg := gen.DefaultConfig()
	cfg.Count = 1000
	var nils, strs int
	for _, tc := range gen.NewSeeded(4).Generate(params("o", "Optional[str]"), cfg) {
		switch v := tc[0].Value.(type) {
		case nil:
			nils++
		case string:
			strs++
			if len(v) != cfg.StringLength {
				t.Fatalf("optional string %q has length %d", v, len(v))
			}
		default:
			t.Fatalf("unexpected value %#v", v)
		}
	}
	if nils == 0 || strs == 0 {
		t.Fatalf("nil=%d str=%d, want both", nils, strs)
	}
}

func TestGenerate_OptionalFallbacks(t *testing.T) {
	cfg := gen.DefaultConfig()
	cfg.Count = 200
	for _, tc := range gen.NewSeeded(6).Generate(params("a", "Optional[any]", "b", "Optional[bool]", "i", "Optional[int]"), cfg) {
		for _, in := range tc[:2] {
			if in.Value != nil && in.Value != int64(0) {
				t.Fatalf("%s = %#v, want nil or 0", in.Name, in.Value)
			}
		}
		if v, ok := tc[2].Value.(int64); ok && (v < cfg.IntMin || v > cfg.IntMax) {
			t.Fatalf("optional int %d out of range", v)
		}
	}
}

func TestGenerate_ListOfInt(t *testing.T) {
	cfg := gen.DefaultConfig()
	cfg.Count = 5
	cases := gen.NewSeeded(8).Generate(params("numbers", "list[int]"), cfg)
	if len(cases) != 5 {
		t.Fatalf("got %d cases", len(cases))
	}
	for _, tc := range cases {
		v, ok := tc.Get("numbers")
		if !ok {
			t.Fatalf("numbers missing")
		}
		list, ok := v.(gen.List)
		if !ok || len(list) != 5 {
			t.Fatalf("numbers = %#v", v)
		}
		for _, x := range list {
			n, ok := x.(int64)
			if !ok || n < 0 || n > 10 {
				t.Fatalf("list element %#v", x)
			}
		}
	}
}

func TestGenerate_Collections(t *testing.T) {
	cfg := gen.DefaultConfig()
	cfg.Count = 50
	check := func(tag string, fn func(t *testing.T, v any)) {
		t.Run(tag, func(t *testing.T) {
			for _, tc := range gen.NewSeeded(12).Generate(params("v", tag), cfg) {
				fn(t, tc[0].Value)
			}
		})
	}
	check("list[str]", func(t *testing.T, v any) {
		l := v.(gen.List)
		if len(l) != 3 || len(l[0].(string)) != 5 {
			t.Fatalf("%#v", v)
		}
	})
	check("list[float]", func(t *testing.T, v any) {
		for _, x := range v.(gen.List) {
			if f := x.(float64); f < 0 || f > 10 {
				t.Fatalf("%v", f)
			}
		}
	})
	check("List[bool]", func(t *testing.T, v any) {
		if l := v.(gen.List); len(l) != 3 {
			t.Fatalf("%#v", v)
		}
	})
	check("list", func(t *testing.T, v any) {
		if !reflect.DeepEqual(v, gen.List{int64(0), int64(0), int64(0), int64(0), int64(0)}) {
			t.Fatalf("%#v", v)
		}
	})
	check("dict[str, int]", func(t *testing.T, v any) {
		if !reflect.DeepEqual(v, gen.Dict{"key1": int64(1), "key2": int64(2)}) {
			t.Fatalf("%#v", v)
		}
	})
	check("dict[int, str]", func(t *testing.T, v any) {
		if d := v.(gen.Dict); len(d) != 0 {
			t.Fatalf("%#v", v)
		}
	})
	check("set[int]", func(t *testing.T, v any) {
		s := v.(gen.Set)
		if len(s) == 0 || len(s) > 5 {
			t.Fatalf("%#v", v)
		}
		seen := map[any]bool{}
		for _, x := range s {
			if seen[x] {
				t.Fatalf("duplicate %v in %#v", x, s)
			}
			seen[x] = true
		}
	})
	check("set[float]", func(t *testing.T, v any) {
		if s := v.(gen.Set); len(s) != 0 {
			t.Fatalf("%#v", v)
		}
	})
	check("tuple[int]", func(t *testing.T, v any) {
		if tp := v.(gen.Tuple); len(tp) != 3 {
			t.Fatalf("%#v", v)
		}
	})
	check("tuple[bool]", func(t *testing.T, v any) {
		if !reflect.DeepEqual(v, gen.Tuple{int64(0), int64(0), int64(0)}) {
			t.Fatalf("%#v", v)
		}
	})
}

func TestTestCase_JSONKeepsOrder(t *testing.T) {
	tc := gen.TestCase{
		{Name: "zeta", Value: int64(1)},
		{Name: "alpha", Value: nil},
		{Name: "mid", Value: gen.List{"x", true}},
	}
	data, err := json.Marshal(tc)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if want := `{"zeta":1,"alpha":null,"mid":["x",true]}`; string(data) != want {
		t.Fatalf("got %s, want %s", data, want)
	}
}
