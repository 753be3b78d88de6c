package sig

import (
	"errors"
	"fmt"
	"strings"
)

var ErrBadTag = errors.New("malformed type tag")

// ParseTag parses a rendered tag back into a Type.
//
//	tag  := name [ '[' [tag (',' tag)*] ']' ]
//	name := identifier or dotted name; bare "any" gives KindAny
func ParseTag(s string) (Type, error) {
	p := tagParser{src: s}
	t, err := p.tag()
	if err != nil {
		return Type{}, err
	}
	p.skipSpaces()
	if p.pos != len(p.src) {
		return Type{}, fmt.Errorf("%w %q: unexpected %q at %d", ErrBadTag, s, p.src[p.pos:], p.pos)
	}
	return t, nil
}

// MustParseTag is for tests and tables.
func MustParseTag(s string) Type {
	t, err := ParseTag(s)
	if err != nil {
		panic(err)
	}
	return t
}

type tagParser struct {
	src string
	pos int
}

func (p *tagParser) skipSpaces() {
	for p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}
}

func (p *tagParser) tag() (Type, error) {
	p.skipSpaces()
	start := p.pos
	for p.pos < len(p.src) && !strings.ContainsRune("[], ", rune(p.src[p.pos])) {
		p.pos++
	}
	name := p.src[start:p.pos]
	if name == "" {
		return Type{}, fmt.Errorf("%w %q: expected a name at %d", ErrBadTag, p.src, start)
	}
	p.skipSpaces()
	if p.pos >= len(p.src) || p.src[p.pos] != '[' {
		if name == "any" {
			return Any(), nil
		}
		return Named(name), nil
	}
	p.pos++ // '['
	args := make([]Type, 0, 2)
	p.skipSpaces()
	if p.pos < len(p.src) && p.src[p.pos] == ']' {
		p.pos++
		return Generic(name, args...), nil
	}
	for {
		arg, err := p.tag()
		if err != nil {
			return Type{}, err
		}
		args = append(args, arg)
		p.skipSpaces()
		if p.pos >= len(p.src) {
			return Type{}, fmt.Errorf("%w %q: unclosed '['", ErrBadTag, p.src)
		}
		switch p.src[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return Generic(name, args...), nil
		default:
			return Type{}, fmt.Errorf("%w %q: unexpected %q at %d", ErrBadTag, p.src, p.src[p.pos], p.pos)
		}
	}
}
