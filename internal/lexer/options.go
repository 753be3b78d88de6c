package lexer

import (
	"aegis/internal/diag"
	"aegis/internal/source"
)

type Options struct {
	Reporter diag.Reporter // may be nil: errors are dropped but lexing goes on
}

func (lx *Lexer) errLex(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil, nil)
	}
}
