package clock

import (
	"errors"

	"clocktree-go/freq"
)

// PLL multiplies its source by Mul and divides by Div.
type PLL struct {
	Source PLLInput
	Mul    PLLMul
	Div    PLLDiv
}

// Frequency is Source*Mul/Div, or zero when the PLL has no source or divider.
func (p PLL) Frequency() freq.Hz {
	if p.Source == nil || p.Div == 0 {
		return freq.Hz{}
	}
	return p.Source.Frequency().Scale(uint64(p.Mul), uint64(p.Div))
}

func (PLL) Name() string     { return "pll" }
func (PLL) Selector() Source { return SourcePLL }

func (p PLL) validate() error {
	var errs []error
	if p.Source == nil {
		errs = append(errs, invalid("pll", ErrNoSource))
	} else if err := p.Source.validate(); err != nil {
		errs = append(errs, err)
	}
	if !p.Mul.Valid() {
		errs = append(errs, invalid("pll.mul", ErrInvalidPLLMul))
	}
	if !p.Div.Valid() {
		errs = append(errs, invalid("pll.div", ErrInvalidPLLDiv))
	}
	return errors.Join(errs...)
}

// init reprograms the PLL. The PLL is never
// reconfigured while it drives SYSCLK or while it is running, and the flash
// wait states are in place before the faster clock can reach the core.
func (p PLL) init(a *activator) error {
	f := a.f

	// 1. Move SYSCLK off the PLL.
	if Source(f.SWS.Read()) == SourcePLL {
		if err := a.moveToHSI16("pll"); err != nil {
			return err
		}
	}

	// 2. Stop it.
	a.step("pll: disable")
	if err := a.writePoll("pll.stop", f.PLLON, 0, f.PLLRDY, 0, "PLLRDY"); err != nil {
		return err
	}

	// 3. Wait states for the target; never lowered here, SysClk does that
	// once the switch is confirmed.
	lat := Latency(p.Frequency())
	if cur := f.LATENCY.Read(); cur > lat {
		lat = cur
	}
	f.LATENCY.Write(lat)

	// 4. Factors and input.
	mul, _ := p.Mul.code()
	div, _ := p.Div.code()
	f.PLLMUL.Write(mul)
	f.PLLDIV.Write(div)
	f.PLLSRC.Write(uint32(p.Source.PLLSelector()))

	// 5. Source.
	if err := p.Source.init(a); err != nil {
		return err
	}

	// 6. Lock.
	a.step("pll: enable")
	return a.writePoll("pll.lock", f.PLLON, 1, f.PLLRDY, 1, "PLLRDY")
}
