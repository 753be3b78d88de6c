package lexer

import (
	"testing"

	"aegis/internal/source"
)

// helper function to create a file
func createFile(content string) *source.File {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte(content))
	return fs.Get(id)
}

// TestSequentialReading проверяет последовательное чтение: "a\nb" → a, \n, b, EOF
func TestSequentialReading(t *testing.T) {
	cursor := NewCursor(createFile("a\nb"))
	for _, want := range []byte{'a', '\n', 'b'} {
		if cursor.EOF() {
			t.Fatalf("unexpected EOF before %q", want)
		}
		if got := cursor.Peek(); got != want {
			t.Fatalf("Peek() = %q, want %q", got, want)
		}
		if got := cursor.Bump(); got != want {
			t.Fatalf("Bump() = %q, want %q", got, want)
		}
	}
	if !cursor.EOF() {
		t.Fatal("Expected EOF at end")
	}
	if cursor.Peek() != 0 || cursor.Bump() != 0 {
		t.Fatal("Peek/Bump after EOF must return 0")
	}
}

func TestAtAndRest(t *testing.T) {
	cursor := NewCursor(createFile("abc"))
	if cursor.At(0) != 'a' || cursor.At(2) != 'c' || cursor.At(3) != 0 {
		t.Fatalf("At mismatch: %q %q %q", cursor.At(0), cursor.At(2), cursor.At(3))
	}
	cursor.Bump()
	if string(cursor.Rest()) != "bc" {
		t.Fatalf("Rest() = %q", cursor.Rest())
	}
	cursor.Limit = 2
	if string(cursor.Rest()) != "b" || cursor.At(1) != 0 {
		t.Fatalf("Limit ignored: %q", cursor.Rest())
	}
}

func TestEatPrefix(t *testing.T) {
	cursor := NewCursor(createFile("**=x"))
	if cursor.EatPrefix("**>") {
		t.Fatal("EatPrefix must not match a different operator")
	}
	if !cursor.EatPrefix("**=") {
		t.Fatal("EatPrefix(**=) failed")
	}
	if cursor.Off != 3 || cursor.Peek() != 'x' {
		t.Fatalf("cursor at %d", cursor.Off)
	}
	if cursor.EatPrefix("xy") {
		t.Fatal("EatPrefix past the end must fail")
	}
}

// TestSpanFromResolve проверяет, что span из Mark/SpanFrom резолвится в строки и колонки
func TestSpanFromResolve(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte("α\nβγ"))
	cursor := NewCursor(fs.Get(id))

	cursor.Bump()
	cursor.Bump() // α (2 байта)
	cursor.Eat('\n')
	m := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	sp := cursor.SpanFrom(m)

	start, end := fs.Resolve(sp)
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("start = %+v, want 2:1", start)
	}
	if end.Line != 2 || end.Col != 3 {
		t.Fatalf("end = %+v, want 2:3", end)
	}
}

func TestMarkReset(t *testing.T) {
	cursor := NewCursor(createFile("hello"))
	cursor.Bump()
	m := cursor.Mark()
	cursor.Bump()
	cursor.Bump()
	cursor.Reset(m)
	if cursor.Peek() != 'e' {
		t.Fatalf("after Reset Peek() = %q, want 'e'", cursor.Peek())
	}
	if cursor.Eat('x') || !cursor.Eat('e') {
		t.Fatal("Eat mismatch")
	}
}
