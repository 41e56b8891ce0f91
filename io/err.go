package io

import (
	"errors"

	"github.com/ezrec/q16/translate"
)

var f = translate.From

var (
	// Display errors
	ErrScaleInvalid = errors.New(f("display scale must be positive"))
)
