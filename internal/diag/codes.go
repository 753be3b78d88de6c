package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo               Code = 1000
	LexUnknownChar        Code = 1001
	LexUnterminatedString Code = 1002
	LexBadNumber          Code = 1003
	LexInconsistentDedent Code = 1004
	LexTabSpaceMix        Code = 1005
	LexBadContinuation    Code = 1006
	LexUnbalancedBracket  Code = 1007
	LexTokenTooLong       Code = 1008

	// Синтаксические
	SynInfo                   Code = 2000
	SynUnexpectedToken        Code = 2001
	SynUnclosedParen          Code = 2002
	SynExpectColon            Code = 2003
	SynExpectIndent           Code = 2004
	SynUnexpectedIndent       Code = 2005
	SynExpectIdentifier       Code = 2006
	SynExpectExpression       Code = 2007
	SynExpectNewline          Code = 2008
	SynDuplicateParam         Code = 2009
	SynNonDefaultAfterDefault Code = 2010
	SynBadParamOrder          Code = 2011
	SynInvalidTarget          Code = 2012
	SynTryWithoutHandler      Code = 2013
	SynTooManyErrors          Code = 2014

	// Извлечение сигнатуры
	ExtInfo         Code = 3000
	ExtNoDefinition Code = 3001
	ExtEngineFailed Code = 3002

	// Ввод-вывод
	IOLoadFileError Code = 4001

	// Конфигурация
	CfgInvalid Code = 5001

	// Наблюдаемость
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:               "Unknown error",
		LexInfo:                   "Lexical information",
		LexUnknownChar:            "Unknown character",
		LexUnterminatedString:     "Unterminated string literal",
		LexBadNumber:              "Invalid number literal",
		LexInconsistentDedent:     "Unindent does not match any outer indentation level",
		LexTabSpaceMix:            "Inconsistent use of tabs and spaces in indentation",
		LexBadContinuation:        "Unexpected character after line continuation",
		LexUnbalancedBracket:      "Unbalanced bracket",
		LexTokenTooLong:           "Token is too long",
		SynInfo:                   "Syntax information",
		SynUnexpectedToken:        "Unexpected token",
		SynUnclosedParen:          "Unclosed bracket",
		SynExpectColon:            "Expected ':'",
		SynExpectIndent:           "Expected an indented block",
		SynUnexpectedIndent:       "Unexpected indent",
		SynExpectIdentifier:       "Expected identifier",
		SynExpectExpression:       "Expected expression",
		SynExpectNewline:          "Expected end of statement",
		SynDuplicateParam:         "Duplicate argument in function definition",
		SynNonDefaultAfterDefault: "Non-default argument follows default argument",
		SynBadParamOrder:          "Invalid parameter order",
		SynInvalidTarget:          "Invalid assignment target",
		SynTryWithoutHandler:      "Expected 'except' or 'finally' block",
		SynTooManyErrors:          "Too many syntax errors",
		ExtInfo:                   "Extraction information",
		ExtNoDefinition:           "No function definition found",
		ExtEngineFailed:           "Extraction engine failed",
		IOLoadFileError:           "I/O load file error",
		CfgInvalid:                "Invalid configuration",
		ObsInfo:                   "Observability information",
		ObsTimings:                "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("EXT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
