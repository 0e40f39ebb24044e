package clock

// Source selects the SYSCLK input; values match the RCC_CFGR SW/SWS encoding.
type Source uint8

const (
	SourceMSI Source = iota
	SourceHSI16
	SourceHSE
	SourcePLL
)

var sourceNames = [...]string{"msi", "hsi16", "hse", "pll"}

func (s Source) String() string {
	if int(s) < len(sourceNames) {
		return sourceNames[s]
	}
	return "unknown"
}

// ParseSource maps "msi", "hsi16", "hse" or "pll" to a Source.
func ParseSource(name string) (Source, bool) {
	for i, n := range sourceNames {
		if n == name {
			return Source(i), true
		}
	}
	return 0, false
}

// PLLSource selects the PLL input; values match RCC_CFGR PLLSRC.
type PLLSource uint8

const (
	PLLSourceHSI16 PLLSource = iota
	PLLSourceHSE
)

func (s PLLSource) String() string {
	switch s {
	case PLLSourceHSI16:
		return "hsi16"
	case PLLSourceHSE:
		return "hse"
	}
	return "unknown"
}
