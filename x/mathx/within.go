package mathx

import "golang.org/x/exp/constraints"

// Within reports whether lo <= v <= hi. An empty range (hi < lo) holds
// nothing.
func Within[T constraints.Ordered](v, lo, hi T) bool {
	return lo <= v && v <= hi
}
