package main

import "fmt"

// ErrorKind classifies compiler diagnostics.
type ErrorKind string

const (
	ErrLexical              ErrorKind = "lexical"
	ErrSyntax               ErrorKind = "syntax"
	ErrUndeclaredVariable   ErrorKind = "undeclared variable"
	ErrDuplicateDeclaration ErrorKind = "duplicate declaration"
	ErrTypeMismatch         ErrorKind = "type mismatch"
	ErrInvalidOperandType   ErrorKind = "invalid operand type"
	ErrDivisionByZero       ErrorKind = "division by zero"
)

// Error is a positioned compiler diagnostic. Every phase fails fast on
// its first error; a non-nil Error from one phase prevents later phases
// from running.
type Error struct {
	Kind ErrorKind
	Msg  string
	Line int
	Col  int
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s error at line %d, column %d: %s", e.phase(), e.Line, e.Col, e.Msg)
}

func (e *Error) phase() string {
	switch e.Kind {
	case ErrLexical:
		return "lexical"
	case ErrSyntax:
		return "syntax"
	case ErrDivisionByZero:
		return "codegen"
	default:
		return "semantic"
	}
}

func lexicalErrorf(line, col int, format string, args ...any) *Error {
	return &Error{Kind: ErrLexical, Msg: fmt.Sprintf(format, args...), Line: line, Col: col}
}

func syntaxErrorf(line, col int, format string, args ...any) *Error {
	return &Error{Kind: ErrSyntax, Msg: fmt.Sprintf(format, args...), Line: line, Col: col}
}

func semanticErrorf(kind ErrorKind, line, col int, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Line: line, Col: col}
}
