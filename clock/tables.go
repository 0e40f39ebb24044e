package clock

import "golang.org/x/exp/slices"

// Hardware factor tables. A factor's register code is its index, except
// where noted.
var (
	pllMuls = [...]uint32{3, 4, 6, 8, 12, 16, 24, 32, 48}
	// PLLDIV code 0 is reserved.
	pllDivs = [...]uint32{0, 2, 3, 4}
	// HPRE: code 0 is /1, codes 8..15 are /2../512 (there is no /32).
	ahbDivs = [...]uint32{1, 2, 4, 8, 16, 64, 128, 256, 512}
	// PPREx: code 0 is /1, codes 4..7 are /2../16.
	apbDivs = [...]uint32{1, 2, 4, 8, 16}
)

// PLLMul is a PLL multiplication factor.
type PLLMul uint32

const (
	PLLMul3  PLLMul = 3
	PLLMul4  PLLMul = 4
	PLLMul6  PLLMul = 6
	PLLMul8  PLLMul = 8
	PLLMul12 PLLMul = 12
	PLLMul16 PLLMul = 16
	PLLMul24 PLLMul = 24
	PLLMul32 PLLMul = 32
	PLLMul48 PLLMul = 48
)

// PLLDiv is a PLL output division factor.
type PLLDiv uint32

const (
	PLLDiv2 PLLDiv = 2
	PLLDiv3 PLLDiv = 3
	PLLDiv4 PLLDiv = 4
)

// AHBDiv is the AHB (HCLK) prescaler. Zero means 1.
type AHBDiv uint32

const (
	AHBDiv1   AHBDiv = 1
	AHBDiv2   AHBDiv = 2
	AHBDiv4   AHBDiv = 4
	AHBDiv8   AHBDiv = 8
	AHBDiv16  AHBDiv = 16
	AHBDiv64  AHBDiv = 64
	AHBDiv128 AHBDiv = 128
	AHBDiv256 AHBDiv = 256
	AHBDiv512 AHBDiv = 512
)

// APBDiv is an APB (PCLK) prescaler. Zero means 1.
type APBDiv uint32

const (
	APBDiv1  APBDiv = 1
	APBDiv2  APBDiv = 2
	APBDiv4  APBDiv = 4
	APBDiv8  APBDiv = 8
	APBDiv16 APBDiv = 16
)

func index(table []uint32, v uint32) (uint32, bool) {
	if v == 0 {
		return 0, false
	}
	i := slices.Index(table, v)
	if i < 0 {
		return 0, false
	}
	return uint32(i), true
}

func (m PLLMul) code() (uint32, bool) { return index(pllMuls[:], uint32(m)) }
func (d PLLDiv) code() (uint32, bool) { return index(pllDivs[:], uint32(d)) }

func (d AHBDiv) code() (uint32, bool) {
	i, ok := index(ahbDivs[:], uint32(d))
	if !ok || i == 0 {
		return 0, ok
	}
	return 7 + i, true
}

func (d APBDiv) code() (uint32, bool) {
	i, ok := index(apbDivs[:], uint32(d))
	if !ok || i == 0 {
		return 0, ok
	}
	return 3 + i, true
}

// Valid reports whether m is a supported multiplier.
func (m PLLMul) Valid() bool {
	_, ok := m.code()
	return ok
}

// Valid reports whether d is a supported divider.
func (d PLLDiv) Valid() bool {
	_, ok := d.code()
	return ok
}

// Valid reports whether d is a supported AHB prescaler.
func (d AHBDiv) Valid() bool {
	_, ok := d.code()
	return ok
}

// Valid reports whether d is a supported APB prescaler.
func (d APBDiv) Valid() bool {
	_, ok := d.code()
	return ok
}

// PLLMuls returns the supported multipliers in register-code order.
func PLLMuls() []PLLMul {
	out := make([]PLLMul, len(pllMuls))
	for i, v := range pllMuls {
		out[i] = PLLMul(v)
	}
	return out
}

// PLLDivs returns the supported dividers in register-code order.
func PLLDivs() []PLLDiv {
	out := make([]PLLDiv, 0, len(pllDivs)-1)
	for _, v := range pllDivs[1:] {
		out = append(out, PLLDiv(v))
	}
	return out
}
