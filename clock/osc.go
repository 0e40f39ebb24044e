package clock

import (
	"clocktree-go/freq"
	"clocktree-go/rcc"
	"clocktree-go/x/mathx"
)

// ---------------- HSI16 ----------------

// HSI16 output frequencies in Hz.
const (
	HSI16Hz     = 16_000_000
	HSI16Div4Hz = HSI16Hz / 4
)

// HSI16 is the 16 MHz internal RC oscillator, optionally divided by 4.
type HSI16 struct {
	DivideBy4 bool
}

func (h HSI16) Frequency() freq.Hz {
	if h.DivideBy4 {
		return freq.Of(HSI16Div4Hz)
	}
	return freq.Of(HSI16Hz)
}

func (HSI16) Name() string           { return "hsi16" }
func (HSI16) Selector() Source       { return SourceHSI16 }
func (HSI16) PLLSelector() PLLSource { return PLLSourceHSI16 }
func (HSI16) validate() error        { return nil }

func (h HSI16) init(a *activator) error {
	a.step("hsi16: enable")
	a.f.HSI16DIVEN.Write(b2u(h.DivideBy4))
	return a.writePoll("hsi16.ready", a.f.HSI16ON, 1, a.f.HSI16RDYF, 1, "HSI16RDYF")
}

// ---------------- HSE ----------------

// HSE crystal and bypass limits.
var (
	hseCrystalMin = freq.MHz(1)
	hseCrystalMax = freq.MHz(24)
	hseBypassMax  = freq.MHz(32)
)

// HSE is the external oscillator: a 1-24 MHz crystal, or an external clock
// of up to 32 MHz fed through the bypass.
type HSE struct {
	Hz     freq.Hz
	Bypass bool
}

func (h HSE) Frequency() freq.Hz   { return h.Hz }
func (HSE) Name() string           { return "hse" }
func (HSE) Selector() Source       { return SourceHSE }
func (HSE) PLLSelector() PLLSource { return PLLSourceHSE }

func (h HSE) validate() error {
	if h.Hz.IsZero() {
		return invalid("hse", ErrHSERange)
	}
	lo, hi := hseCrystalMin, hseCrystalMax
	if h.Bypass {
		lo, hi = freq.Of(1), hseBypassMax
	}
	if h.Hz.Cmp(lo) < 0 || h.Hz.Cmp(hi) > 0 {
		return invalid("hse", ErrHSERange)
	}
	return nil
}

// init starts the oscillator in the requested mode. HSEBYP is only
// writable while HSE is off, so a running HSE in the other mode is stopped
// first, moving SYSCLK to HSI16 if HSE clocks it.
func (h HSE) init(a *activator) error {
	f := a.f
	byp := b2u(h.Bypass)
	if f.HSEON.Read() == 1 {
		if f.HSEBYP.Read() == byp {
			a.step("hse: enable")
			return a.writePoll("hse.ready", f.HSEON, 1, f.HSERDY, 1, "HSERDY")
		}
		if hseClocksSysClk(f) {
			if err := a.moveToHSI16("hse"); err != nil {
				return err
			}
		}
		a.step("hse: stop")
		if err := a.writePoll("hse.stop", f.HSEON, 0, f.HSERDY, 0, "HSERDY"); err != nil {
			return err
		}
	}
	a.step("hse: enable")
	f.HSEBYP.Write(byp)
	return a.writePoll("hse.ready", f.HSEON, 1, f.HSERDY, 1, "HSERDY")
}

func hseClocksSysClk(f rcc.Fields) bool {
	switch Source(f.SWS.Read()) {
	case SourceHSE:
		return true
	case SourcePLL:
		return PLLSource(f.PLLSRC.Read()) == PLLSourceHSE
	}
	return false
}

// ---------------- MSI ----------------

// MSIRange selects the MSI frequency: MSIRange0Hz << range.
type MSIRange uint8

// MSIRange0Hz is the MSI frequency at MSIRange0.
const MSIRange0Hz = 65_536

const (
	MSIRange0 MSIRange = iota // 65.536 kHz
	MSIRange1                 // 131.072 kHz
	MSIRange2                 // 262.144 kHz
	MSIRange3                 // 524.288 kHz
	MSIRange4                 // 1.048 MHz
	MSIRange5                 // 2.097 MHz (reset default)
	MSIRange6                 // 4.194 MHz
)

// MSI is the multi-speed internal low-power oscillator. It cannot feed the PLL.
type MSI struct {
	Range MSIRange
}

func (m MSI) Frequency() freq.Hz {
	if !mathx.Within(m.Range, MSIRange0, MSIRange6) {
		return freq.Hz{}
	}
	return freq.Of(MSIRange0Hz << m.Range)
}

func (MSI) Name() string     { return "msi" }
func (MSI) Selector() Source { return SourceMSI }

func (m MSI) validate() error {
	if m.Range > MSIRange6 {
		return invalid("msi", ErrMSIRange)
	}
	return nil
}

func (m MSI) init(a *activator) error {
	a.step("msi: enable")
	a.f.MSIRANGE.Write(uint32(m.Range))
	return a.writePoll("msi.ready", a.f.MSION, 1, a.f.MSIRDY, 1, "MSIRDY")
}
