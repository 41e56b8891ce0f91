package obj

import (
	"errors"

	"github.com/ezrec/q16/translate"
)

var f = translate.From

var (
	ErrLabelDuplicate  = errors.New(f("label duplicated"))
	ErrLabelUndefined  = errors.New(f("label undefined"))
	ErrObjectMagic     = errors.New(f("invalid magic bytes"))
	ErrObjectTruncated = errors.New(f("object truncated"))
	ErrObjectTooLarge  = errors.New(f("object too large"))
	ErrLabelName       = errors.New(f("label name invalid"))
)

// ErrLabelDuplicated names a label declared more than once.
type ErrLabelDuplicated string

func (err ErrLabelDuplicated) Error() string {
	return f("duplicate label '%v'", string(err))
}

func (err ErrLabelDuplicated) Unwrap() error {
	return ErrLabelDuplicate
}

// ErrLabelMissing names a label that is used but never declared.
type ErrLabelMissing string

func (err ErrLabelMissing) Error() string {
	return f("undefined label '%v'", string(err))
}

func (err ErrLabelMissing) Unwrap() error {
	return ErrLabelUndefined
}
