package mathx

import "testing"

func TestGCD(t *testing.T) {
	type C struct{ a, b, want uint64 }
	for _, c := range []C{
		{0, 0, 0},
		{0, 7, 7},
		{7, 0, 7},
		{12, 18, 6},
		{16_000_000, 3, 1},
		{64_000_000, 2, 2},
		{32_000_000, 48, 16},
	} {
		if got := GCD(c.a, c.b); got != c.want {
			t.Fatalf("GCD(%d,%d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

func TestWithin(t *testing.T) {
	if !Within(8, 1, 24) || !Within(1, 1, 24) || !Within(24, 1, 24) {
		t.Fatal("8, 1 and 24 should lie in [1,24]")
	}
	if Within(25, 1, 24) || Within(8, 24, 1) {
		t.Fatal("25 and an empty range should not match")
	}
}

func TestRoundAndCeilDiv(t *testing.T) {
	if got := RoundDiv[uint64](32_500_000, 1_000_000); got != 33 {
		t.Fatalf("RoundDiv = %d, want 33", got)
	}
	if got := CeilDiv[uint64](16_000_001, 16_000_000); got != 2 {
		t.Fatalf("CeilDiv = %d, want 2", got)
	}
	if got := CeilDiv[uint32](5, 0); got != 0 {
		t.Fatalf("CeilDiv by zero = %d, want 0", got)
	}
	if got := RoundDiv[uint64](32_499_999, 1_000_000); got != 32 {
		t.Fatalf("RoundDiv = %d, want 32", got)
	}
	if got := RoundDiv[uint64](5, 2); got != 3 {
		t.Fatalf("RoundDiv(5, 2) = %d, want 3", got)
	}
	if got := RoundDiv[uint64](4, 3); got != 1 {
		t.Fatalf("RoundDiv(4, 3) = %d, want 1", got)
	}
}

func TestDivNearUint64Max(t *testing.T) {
	const top = 1<<64 - 1
	if got := CeilDiv[uint64](top, 2); got != 1<<63 {
		t.Fatalf("CeilDiv = %d, want 2^63", got)
	}
	if got := RoundDiv[uint64](top, 2); got != 1<<63 {
		t.Fatalf("RoundDiv = %d, want 2^63", got)
	}
	if got := CeilDiv[uint64](top, 1000); got != top/1000+1 {
		t.Fatalf("CeilDiv = %d", got)
	}
}
