package isa

import (
	"errors"

	"github.com/ezrec/q16/translate"
)

var f = translate.From

var (
	ErrOpcodeInvalid   = errors.New(f("opcode invalid"))
	ErrRegisterInvalid = errors.New(f("register invalid"))
	ErrFormInvalid     = errors.New(f("instruction form invalid"))
)

// ErrFormRegister indicates an opcode used without a register form.
type ErrFormRegister Opcode

func (err ErrFormRegister) Error() string {
	return f("'%v' has no register form", Opcode(err).String())
}

func (err ErrFormRegister) Is(target error) bool {
	return target == ErrFormInvalid
}

// ErrFormImmediate indicates an opcode used without an immediate form.
type ErrFormImmediate Opcode

func (err ErrFormImmediate) Error() string {
	return f("'%v' has no immediate form", Opcode(err).String())
}

func (err ErrFormImmediate) Is(target error) bool {
	return target == ErrFormInvalid
}
