// Package errors implements the core's diagnostic type: one typed error
// per validator failure, tied to a source token, formatted as
// `[<line>:<column>] "<text>": <message>`.
package errors

import (
	"fmt"

	"github.com/smeil-lang/smeilc/internal/token"
)

// Kind discriminates the diagnostic taxonomy.
type Kind string

const (
	BadType                 Kind = "BadType"
	CircularType             Kind = "CircularType"
	DuplicateSymbol          Kind = "DuplicateSymbol"
	UnknownSymbol            Kind = "UnknownSymbol"
	ReservedName             Kind = "ReservedName"
	UnknownParameter         Kind = "UnknownParameter"
	DuplicateArgument        Kind = "DuplicateArgument"
	PositionalAfterNamed     Kind = "PositionalAfterNamed"
	MissingArgument          Kind = "MissingArgument"
	OutValueParameter        Kind = "OutValueParameter"
	ArgumentTypeMismatch     Kind = "ArgumentTypeMismatch"
	PrecisionLoss            Kind = "PrecisionLoss"
	TypeMismatch             Kind = "TypeMismatch"
	IncompatibleCast         Kind = "IncompatibleCast"
	IllegalSignalDirection   Kind = "IllegalSignalDirection"
	SelfReferenceInitializer Kind = "SelfReferenceInitializer"
	CircularInitializer      Kind = "CircularInitializer"
	MultipleWriters          Kind = "MultipleWriters"
	OrphanSignal             Kind = "OrphanSignal"
	CircularDependency       Kind = "CircularDependency"
	IncompatibleConnect      Kind = "IncompatibleConnect"
	UnsupportedArgumentExpr  Kind = "UnsupportedArgumentExpr"
	RecursionLimitExceeded   Kind = "RecursionLimitExceeded"
)

// Diagnostic is a single compilation failure tied to one offending token.
type Diagnostic struct {
	Kind    Kind
	Tok     token.Token
	Message string
}

// New creates a Diagnostic.
func New(kind Kind, tok token.Token, message string) *Diagnostic {
	return &Diagnostic{Kind: kind, Tok: tok, Message: message}
}

// Newf creates a Diagnostic with a formatted message.
func Newf(kind Kind, tok token.Token, format string, args ...interface{}) *Diagnostic {
	return New(kind, tok, fmt.Sprintf(format, args...))
}

// Error implements the error interface.
func (d *Diagnostic) Error() string {
	return fmt.Sprintf("[%d:%d] %q: %s", d.Tok.Pos.Line, d.Tok.Pos.Column, d.Tok.Text, d.Message)
}
