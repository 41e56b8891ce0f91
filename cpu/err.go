package cpu

import (
	"errors"

	"github.com/ezrec/q16/translate"
)

var f = translate.From

var (
	ErrStateShort    = errors.New(f("state snapshot too short"))
	ErrImageTooLarge = errors.New(f("image larger than memory"))
)
