package sig

import "testing"

func TestParseAnnotation(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"int", "int"},
		{"MyClass", "MyClass"},
		{"list[int]", "list[int]"},
		{"List[int]", "List[int]"},
		{"dict[str, int]", "dict[str, int]"},
		{"dict[str, list[int]]", "dict[str, any]"},
		{"tuple[int, ...]", "tuple[int, any]"},
		{"list[int,]", "list[int]"},
		{"typing.List[int]", "any[int]"},
		{"list[list[int]]", "list[any]"},
		{"Optional[str]", "Optional[str]"},
		{"int | None", "any"},
		{"'Forward'", "any"},
		{"typing.Any", "any"},
		{"x[1:2]", "x[any]"},
		{"a[b][c]", "any[c]"},
		{"", "any"},
		{"list[", "any"},
		{"x = 1", "any"},
		{"dict[\n    str,\n    int,\n]", "dict[str, int]"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := ParseAnnotation(tt.text).String(); got != tt.want {
				t.Errorf("ParseAnnotation(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestResolveKinds(t *testing.T) {
	if k := ParseAnnotation("Dict[str, int]").Kind; k != KindDict {
		t.Errorf("Dict kind = %v", k)
	}
	if k := ParseAnnotation("Union[int, str]").Kind; k != KindGeneric {
		t.Errorf("Union kind = %v", k)
	}
	elem, ok := ParseAnnotation("set[bool]").Elem()
	if !ok || elem.Kind != KindBool {
		t.Errorf("set elem = %+v", elem)
	}
}
