package steps

import "errors"

var ErrInvalidStep = errors.New("step out of range")
