package mathx

import "golang.org/x/exp/constraints"

// GCD returns the greatest common divisor of a and b. GCD(0, 0) is 0.
func GCD[T constraints.Unsigned](a, b T) T {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
