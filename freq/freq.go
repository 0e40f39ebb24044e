// Package freq models clock frequencies as exact rationals.
//
// A clock node's output is derived from its parent by multiplying and
// dividing by small integers, so every value in a tree is a rational number
// of hertz. Keeping numerator and denominator (instead of a float or a
// truncated integer) means a 16 MHz / 3 branch stays exact all the way to
// the comparison against the platform limit.
//
// The package is TinyGo-safe: no fmt, no allocation on the arithmetic path.
package freq

import (
	"math"
	"math/bits"

	"clocktree-go/x/conv"
	"clocktree-go/x/mathx"
)

// Hz is a frequency in hertz held as num/den, always kept in lowest terms.
// The zero value is 0 Hz and is only meaningful as "unset".
//
// A result whose terms do not fit in 64 bits is marked as overflowed. It
// compares greater than every other value, so it never passes an upper
// limit.
type Hz struct {
	num uint64
	den uint64
}

// overflowed is the value of any arithmetic whose exact terms do not fit.
var overflowed = Hz{num: 1, den: 0}

// New returns num/den Hz. It panics if den is zero.
func New(num, den uint64) Hz {
	if den == 0 {
		panic("freq: zero denominator")
	}
	return Hz{num: num, den: den}.reduce()
}

// Of returns an integral frequency.
func Of(hz uint64) Hz { return Hz{num: hz, den: 1} }

// KHz returns n kilohertz.
func KHz(n uint64) Hz { return Of(n * 1_000) }

// MHz returns n megahertz.
func MHz(n uint64) Hz { return Of(n * 1_000_000) }

func (f Hz) norm() Hz {
	if f.den == 0 && f.num == 0 {
		return Hz{num: 0, den: 1}
	}
	return f
}

func (f Hz) reduce() Hz {
	f = f.norm()
	if f.Overflowed() {
		return f
	}
	if f.num == 0 {
		return Hz{num: 0, den: 1}
	}
	if g := mathx.GCD(f.num, f.den); g > 1 {
		f.num /= g
		f.den /= g
	}
	return f
}

// Num returns the reduced numerator.
func (f Hz) Num() uint64 { return f.norm().num }

// Den returns the reduced denominator (1 for integral values, 0 once
// overflowed).
func (f Hz) Den() uint64 { return f.norm().den }

// Overflowed reports whether f came from arithmetic that did not fit.
func (f Hz) Overflowed() bool { return f.den == 0 && f.num != 0 }

// IsZero reports whether f is 0 Hz.
func (f Hz) IsZero() bool { return f.num == 0 }

// Scale returns f*mul/div exactly, or an overflowed value when the result
// does not fit. It panics if div is zero.
func (f Hz) Scale(mul, div uint64) Hz {
	if div == 0 {
		panic("freq: zero divider")
	}
	f = f.norm()
	if f.Overflowed() {
		return f
	}
	// Cancel before multiplying to keep the operands small.
	g1 := mathx.GCD(mul, f.den)
	g2 := mathx.GCD(f.num, div)
	nh, num := bits.Mul64(f.num/g2, mul/g1)
	dh, den := bits.Mul64(f.den/g1, div/g2)
	if nh != 0 || dh != 0 {
		return overflowed
	}
	return Hz{num: num, den: den}.reduce()
}

// Div returns f/d exactly.
func (f Hz) Div(d uint64) Hz { return f.Scale(1, d) }

// Cmp returns -1, 0 or +1 when f is less than, equal to or greater than g.
func (f Hz) Cmp(g Hz) int {
	f, g = f.norm(), g.norm()
	switch fo, gov := f.Overflowed(), g.Overflowed(); {
	case fo && gov:
		return 0
	case fo:
		return 1
	case gov:
		return -1
	}
	lh, ll := bits.Mul64(f.num, g.den)
	rh, rl := bits.Mul64(g.num, f.den)
	switch {
	case lh < rh || (lh == rh && ll < rl):
		return -1
	case lh > rh || (lh == rh && ll > rl):
		return 1
	}
	return 0
}

// LessEqual reports f <= g.
func (f Hz) LessEqual(g Hz) bool { return f.Cmp(g) <= 0 }

// Integer returns the truncated value in hertz and whether it is exact.
// An overflowed value reports the largest uint64, inexact.
func (f Hz) Integer() (uint64, bool) {
	f = f.norm()
	if f.Overflowed() {
		return math.MaxUint64, false
	}
	return f.num / f.den, f.num%f.den == 0
}

// Ceil returns the smallest integral number of hertz not below f.
func (f Hz) Ceil() uint64 {
	f = f.norm()
	if f.Overflowed() {
		return math.MaxUint64
	}
	return mathx.CeilDiv(f.num, f.den)
}

// String renders "16000000Hz", "65536/3Hz" or "overflow".
func (f Hz) String() string {
	f = f.norm()
	if f.Overflowed() {
		return "overflow"
	}
	var buf [48]byte
	out := conv.AppendUint(buf[:0], f.num)
	if f.den != 1 {
		out = append(out, '/')
		out = conv.AppendUint(out, f.den)
	}
	out = append(out, "Hz"...)
	return string(out)
}
