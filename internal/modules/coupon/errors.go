package coupon

import "errors"

var (
	ErrEmptyCode    = errors.New("coupon code is empty")
	ErrZeroSubtotal = errors.New("nothing to discount yet")
	ErrUnavailable  = errors.New("coupon validator unavailable")
)
