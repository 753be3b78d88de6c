// Package token defines lexical token kinds and trivia for Python source text.
// Invariants:
//   - Token.Text is the exact source slice covered by Token.Span (identifiers
//     are the only exception: non-ASCII names carry their NFKC form).
//   - Layout is explicit: the lexer emits Newline, Indent and Dedent tokens;
//     blank lines, comments and line continuations live in leading Trivia.
//   - Soft keywords (match, case, type, _) are identifiers.
//   - Built-in type names (int, str, list, ...) are identifiers.
package token
