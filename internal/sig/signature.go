package sig

import (
	"errors"
	"fmt"

	"aegis/internal/source"
)

// ParamKind is the kind of a formal parameter.
type ParamKind uint8

const (
	PositionalOrKeyword ParamKind = iota
	PositionalOnly
	VarPositional // *args
	KeywordOnly
	VarKeyword // **kwargs
)

var paramKindNames = [...]string{
	PositionalOrKeyword: "positional",
	PositionalOnly:      "positional-only",
	VarPositional:       "var-positional",
	KeywordOnly:         "keyword-only",
	VarKeyword:          "var-keyword",
}

func (k ParamKind) String() string {
	if int(k) < len(paramKindNames) {
		return paramKindNames[k]
	}
	return "ParamKind(?)"
}

func (k ParamKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *ParamKind) UnmarshalText(text []byte) error {
	for i, name := range paramKindNames {
		if name == string(text) {
			*k = ParamKind(i) // #nosec G115 -- index is within the table
			return nil
		}
	}
	return fmt.Errorf("unknown parameter kind %q", text)
}

// Param is one parameter of an extracted signature. It is not modified after extraction.
type Param struct {
	Name       string      `json:"name" msgpack:"name"`
	Type       Type        `json:"type" msgpack:"type"`
	Kind       ParamKind   `json:"kind" msgpack:"kind"`
	HasDefault bool        `json:"has_default,omitempty" msgpack:"has_default,omitempty"`
	Span       source.Span `json:"-" msgpack:"span"`
}

// Signature is a function name with its ordered parameters.
type Signature struct {
	Name    string      `json:"name" msgpack:"name"`
	Params  []Param     `json:"params" msgpack:"params"`
	Async   bool        `json:"async,omitempty" msgpack:"async,omitempty"`
	Returns Type        `json:"returns" msgpack:"returns"`
	Span    source.Span `json:"-" msgpack:"span"`
}

// Names returns parameter names in declaration order.
func (s *Signature) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.Params))
	for i, p := range s.Params {
		names[i] = p.Name
	}
	return names
}

// Validate checks that names are unique. A signature loaded from JSON may break this.
func (s *Signature) Validate() error {
	seen := make(map[string]struct{}, len(s.Params))
	for _, p := range s.Params {
		if p.Name == "" {
			return errors.New("parameter without a name")
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("duplicate parameter %q", p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}
