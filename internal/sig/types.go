package sig

import (
	"strings"
)

// Kind is the closed set of type tag shapes.
type Kind uint8

const (
	KindAny Kind = iota
	KindInt
	KindFloat
	KindStr
	KindBool
	KindNamed
	KindList
	KindDict
	KindSet
	KindTuple
	KindOptional
	KindGeneric
)

var kindNames = [...]string{
	KindAny:      "any",
	KindInt:      "int",
	KindFloat:    "float",
	KindStr:      "str",
	KindBool:     "bool",
	KindNamed:    "named",
	KindList:     "list",
	KindDict:     "dict",
	KindSet:      "set",
	KindTuple:    "tuple",
	KindOptional: "Optional",
	KindGeneric:  "generic",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Parametric reports whether the kind renders with "[...]" arguments.
func (k Kind) Parametric() bool {
	switch k {
	case KindList, KindDict, KindSet, KindTuple, KindOptional, KindGeneric:
		return true
	default:
		return false
	}
}

// Type is the type tag of a parameter.
// Name keeps the spelling from the source ("List", "Int", "MyClass") and Kind its
// case-insensitive classification. Args is set only for parameterized forms.
type Type struct {
	Kind Kind
	Name string
	Args []Type
}

// anyOuter names the outer part when it is not a plain name: a.b[int] -> any[int].
const anyOuter = "any"

func Any() Type { return Type{Kind: KindAny} }

// Optional wraps a tag. Parameters with a default value are marked this way.
func Optional(inner Type) Type {
	return Type{Kind: KindOptional, Name: "Optional", Args: []Type{inner}}
}

// Named builds a tag from a plain name.
func Named(name string) Type {
	return Type{Kind: classifyName(name), Name: name}
}

// Generic builds a parameterized tag. An empty outer means the outer part
// was not a plain name.
func Generic(outer string, args ...Type) Type {
	if outer == "" {
		return Type{Kind: KindGeneric, Name: anyOuter, Args: args}
	}
	return Type{Kind: classifyOuter(outer), Name: outer, Args: args}
}

// classifyName classifies a plain name, ignoring case.
// Bare container names keep the container kind: list -> KindList.
func classifyName(name string) Kind {
	switch strings.ToLower(name) {
	case "int":
		return KindInt
	case "float":
		return KindFloat
	case "str":
		return KindStr
	case "bool":
		return KindBool
	case "list":
		return KindList
	case "dict":
		return KindDict
	case "set":
		return KindSet
	case "tuple":
		return KindTuple
	case "optional":
		return KindOptional
	}
	return KindNamed
}

func classifyOuter(name string) Kind {
	switch k := classifyName(name); k {
	case KindList, KindDict, KindSet, KindTuple, KindOptional:
		return k
	}
	return KindGeneric
}

// Elem returns the single argument of a parameterized tag.
func (t Type) Elem() (Type, bool) {
	if len(t.Args) != 1 {
		return Type{}, false
	}
	return t.Args[0], true
}

// Equal compares tags by rendering and kind.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind || t.name() != other.name() || len(t.Args) != len(other.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

func (t Type) name() string {
	if t.Name != "" {
		return t.Name
	}
	if t.Kind == KindNamed || t.Kind == KindGeneric {
		return anyOuter
	}
	return t.Kind.String()
}

// String renders the tag: "int", "list[int]", "dict[str, int]", "Optional[any]".
func (t Type) String() string {
	var sb strings.Builder
	t.write(&sb)
	return sb.String()
}

func (t Type) write(sb *strings.Builder) {
	if t.Kind == KindAny {
		sb.WriteString("any")
		return
	}
	sb.WriteString(t.name())
	if t.Args == nil {
		return
	}
	sb.WriteByte('[')
	for i, arg := range t.Args {
		if i > 0 {
			sb.WriteString(", ")
		}
		arg.write(sb)
	}
	sb.WriteByte(']')
}

func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseTag(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
