package mathx

import "golang.org/x/exp/constraints"

// CeilDiv returns ceil(a/b), or 0 when b is 0. It does not overflow for any
// a, so it is safe on frequency numerators near the top of uint64.
func CeilDiv[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	q := a / b
	if a%b != 0 {
		q++
	}
	return q
}

// RoundDiv returns a/b rounded to nearest, halves away from zero, or 0 when
// b is 0. Like CeilDiv it never forms a+b.
func RoundDiv[T constraints.Unsigned](a, b T) T {
	if b == 0 {
		return 0
	}
	q, r := a/b, a%b
	if r >= b-b/2 {
		q++
	}
	return q
}
