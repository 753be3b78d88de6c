package token

import "aegis/internal/source"

type TriviaKind uint8

const (
	// TriviaSpace is a run of spaces, tabs or form feeds inside a line.
	TriviaSpace TriviaKind = iota
	// TriviaNewline is a line break that does not end a logical line
	// (blank lines, breaks inside brackets).
	TriviaNewline
	// TriviaComment is "# ..." up to the end of the line.
	TriviaComment
	// TriviaContinuation is an explicit "\" line join.
	TriviaContinuation
)

func (k TriviaKind) String() string {
	switch k {
	case TriviaSpace:
		return "Space"
	case TriviaNewline:
		return "Newline"
	case TriviaComment:
		return "Comment"
	case TriviaContinuation:
		return "Continuation"
	default:
		return "Trivia(?)"
	}
}

type Trivia struct {
	Kind TriviaKind
	Span source.Span
	Text string
}
