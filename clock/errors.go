package clock

import (
	"errors"

	"clocktree-go/errcode"
)

var (
	// Configuration errors, reported by Build.
	ErrNoSource      = errors.New("node has no source")
	ErrInvalidPLLMul = errors.New("invalid PLL multiplier")
	ErrInvalidPLLDiv = errors.New("invalid PLL divider")
	ErrInvalidAHBDiv = errors.New("invalid AHB prescaler")
	ErrInvalidAPBDiv = errors.New("invalid APB prescaler")
	ErrSysClkTooFast = errors.New("SYSCLK is set too high (max is 32MHz)")
	ErrHSERange      = errors.New("HSE frequency out of range")
	ErrMSIRange      = errors.New("invalid MSI range")

	// Hardware readiness, reported by Activate.
	ErrNotResponding = errors.New("clock hardware did not respond")
)

func invalid(op string, err error) error {
	return &errcode.E{C: errcode.InvalidParams, Op: op, Err: err}
}

func tooFast(op string, msg string) error {
	return &errcode.E{C: errcode.TooFast, Op: op, Msg: msg, Err: ErrSysClkTooFast}
}

func notResponding(op, flag string) error {
	return &errcode.E{C: errcode.Timeout, Op: op, Msg: flag + " did not settle", Err: ErrNotResponding}
}
