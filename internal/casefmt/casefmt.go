package casefmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"github.com/vmihailenco/msgpack/v5"

	"aegis/internal/gen"
	"aegis/internal/sig"
)

// Document is the machine-readable result of generate.
type Document struct {
	Function string         `json:"function" msgpack:"function"`
	Seed     uint64         `json:"seed" msgpack:"seed"`
	Params   []sig.Param    `json:"params" msgpack:"params"`
	Cases    []gen.TestCase `json:"cases" msgpack:"cases"`
}

// NewDocument builds a document, replacing nil slices with empty ones.
func NewDocument(s *sig.Signature, seed uint64, cases []gen.TestCase) Document {
	doc := Document{Seed: seed, Params: []sig.Param{}, Cases: cases}
	if s != nil {
		doc.Function = s.Name
		if s.Params != nil {
			doc.Params = s.Params
		}
	}
	if doc.Cases == nil {
		doc.Cases = []gen.TestCase{}
	}
	return doc
}

// PrettyOpts controls text output.
type PrettyOpts struct {
	Color bool
	// MaxValueWidth truncates long values (in terminal columns); 0 disables it.
	MaxValueWidth int
}

func styles(enabled bool) (name, dim *color.Color) {
	name = color.New(color.FgCyan, color.Bold)
	dim = color.New(color.Faint)
	if enabled {
		name.EnableColor()
		dim.EnableColor()
	} else {
		name.DisableColor()
		dim.DisableColor()
	}
	return name, dim
}

// SignaturePretty prints the def header and a parameter table.
func SignaturePretty(w io.Writer, s *sig.Signature, opts PrettyOpts) error {
	nameStyle, dim := styles(opts.Color)
	var sb strings.Builder
	if s.Async {
		sb.WriteString("async ")
	}
	fmt.Fprintf(&sb, "def %s(", nameStyle.Sprint(s.Name))
	for i, p := range s.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(paramPrefix(p.Kind) + p.Name + ": " + p.Type.String())
		if p.HasDefault {
			sb.WriteString(" = ...")
		}
	}
	fmt.Fprintf(&sb, ") -> %s\n", s.Returns.String())

	nameW, typeW := 0, 0
	for _, p := range s.Params {
		nameW = max(nameW, runewidth.StringWidth(p.Name))
		typeW = max(typeW, runewidth.StringWidth(p.Type.String()))
	}
	for i, p := range s.Params {
		line := fmt.Sprintf("  %2d. %s  %s  %s",
			i+1,
			nameStyle.Sprint(runewidth.FillRight(p.Name, nameW)),
			runewidth.FillRight(p.Type.String(), typeW),
			dim.Sprint(p.Kind.String()))
		if p.HasDefault {
			line += dim.Sprint("  default")
		}
		sb.WriteString(strings.TrimRight(line, " ") + "\n")
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

func paramPrefix(k sig.ParamKind) string {
	switch k {
	case sig.VarPositional:
		return "*"
	case sig.VarKeyword:
		return "**"
	}
	return ""
}

// SignatureJSON prints the signature as a JSON object.
func SignatureJSON(w io.Writer, s *sig.Signature) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

// CasesPretty prints one line per case: "#1  a=1  b='x'".
func CasesPretty(w io.Writer, doc Document, opts PrettyOpts) error {
	nameStyle, dim := styles(opts.Color)
	var sb strings.Builder
	title := doc.Function
	if title == "" {
		title = "<params>"
	}
	fmt.Fprintf(&sb, "%s %s\n", nameStyle.Sprint(title), dim.Sprintf("(%d cases, seed %d)", len(doc.Cases), doc.Seed))
	width := len(fmt.Sprint(len(doc.Cases)))
	for i, tc := range doc.Cases {
		fmt.Fprintf(&sb, "  %s", dim.Sprintf("#%-*d", width, i+1))
		if len(tc) == 0 {
			sb.WriteString("  " + dim.Sprint("(no parameters)"))
		}
		for _, in := range tc {
			value := Repr(in.Value)
			if opts.MaxValueWidth > 0 {
				value = runewidth.Truncate(value, opts.MaxValueWidth, "…")
			}
			fmt.Fprintf(&sb, "  %s=%s", nameStyle.Sprint(in.Name), value)
		}
		sb.WriteByte('\n')
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// CasesJSON prints the document indented.
func CasesJSON(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// CasesMsgpack writes the document as msgpack with case keys in parameter order.
func CasesMsgpack(w io.Writer, doc Document) error {
	enc := msgpack.NewEncoder(w)
	enc.SetSortMapKeys(true)
	return enc.Encode(&doc)
}

// DecodeMsgpack reads a document written by CasesMsgpack.
func DecodeMsgpack(r io.Reader) (Document, error) {
	var doc Document
	err := msgpack.NewDecoder(r).Decode(&doc)
	return doc, err
}
