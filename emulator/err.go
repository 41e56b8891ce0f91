package emulator

import (
	"errors"

	"github.com/ezrec/q16/isa"
	"github.com/ezrec/q16/translate"
)

var f = translate.From

var (
	ErrStepLimit       = errors.New(f("step limit exceeded"))
	ErrAssertNone      = errors.New(f("no assertions in program"))
	ErrAssertMismatch  = errors.New(f("assertion failed"))
	ErrAssertMalformed = errors.New(f("malformed assertion"))
)

// ErrRuntime indicates the location of a runtime error.
type ErrRuntime struct {
	Pc  uint16
	Err error
}

func (err *ErrRuntime) Error() string {
	return f("pc 0x%04x %v", err.Pc, err.Err)
}

func (err *ErrRuntime) Unwrap() error {
	return err.Err
}

// ErrAssert describes a failed register assertion.
type ErrAssert struct {
	Index    int          // Index of the assertion in the program, from 1.
	Register isa.Register // Register checked.
	Expect   uint16       // Expected value.
	Found    uint16       // Value found.
}

func (err *ErrAssert) Error() string {
	return f("assert %v: expected %v=%v, found %v", err.Index, err.Register, err.Expect, err.Found)
}

func (err *ErrAssert) Unwrap() error {
	return ErrAssertMismatch
}

// ErrAssertRegister indicates an assertion naming an unknown register.
type ErrAssertRegister string

func (err ErrAssertRegister) Error() string {
	return f("unknown register '%v' in assertion", string(err))
}

func (err ErrAssertRegister) Unwrap() error {
	return ErrAssertMalformed
}
