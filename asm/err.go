package asm

import (
	"errors"

	"github.com/ezrec/q16/translate"
)

var f = translate.From

var (
	ErrEquateSyntax    = errors.New(f(".equ syntax"))
	ErrEquateDuplicate = errors.New(f(".equ duplicated"))
	ErrLabelInvalid    = errors.New(f("label invalid"))
	ErrOperandEmpty    = errors.New(f("empty operand"))
)

// ErrSyntax locates an assembly error in the source text.
type ErrSyntax struct {
	LineNo int    // 1-based line number.
	Line   string // Trimmed source line.
	Err    error
}

func (err ErrSyntax) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err ErrSyntax) Unwrap() error {
	return err.Err
}

// ErrMnemonicUnknown names an unrecognised mnemonic.
type ErrMnemonicUnknown string

func (err ErrMnemonicUnknown) Error() string {
	return f("unknown mnemonic '%v'", string(err))
}

// ErrRegisterUnknown names an unrecognised register operand.
type ErrRegisterUnknown string

func (err ErrRegisterUnknown) Error() string {
	return f("unknown register '%v'", string(err))
}

// ErrParseNumber names a malformed numeric literal.
type ErrParseNumber string

func (err ErrParseNumber) Error() string {
	return f("could not parse literal '%v'", string(err))
}

// ErrParseExpression names a $(...) expression that is not an integer.
type ErrParseExpression string

func (err ErrParseExpression) Error() string {
	return f("$(%v) is not a valid expression", string(err))
}

// ErrOperandInvalid names a mnemonic given operands of the wrong kind.
type ErrOperandInvalid string

func (err ErrOperandInvalid) Error() string {
	return f("invalid operands for '%v'", string(err))
}

// ErrOperandCount reports a mnemonic given the wrong number of operands.
type ErrOperandCount struct {
	Mnemonic string
	Expect   string
	Found    int
}

func (err ErrOperandCount) Error() string {
	return f("'%v' requires %v operands, found %d", err.Mnemonic, err.Expect, err.Found)
}
