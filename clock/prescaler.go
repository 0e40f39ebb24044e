package clock

import (
	"clocktree-go/freq"
	"clocktree-go/regs"
)

// AHB divides SYSCLK down to HCLK.
type AHB struct {
	Source SysClk
	Div    AHBDiv
}

func (b AHB) Frequency() freq.Hz { return b.Source.Frequency().Div(uint64(b.Div.norm())) }
func (AHB) Name() string         { return "ahb" }

func (b AHB) validate() error {
	if !b.Div.norm().Valid() {
		return invalid("ahb", ErrInvalidAHBDiv)
	}
	return nil
}

func (b AHB) init(a *activator) error {
	code, _ := b.Div.norm().code()
	prescale(a, "ahb", a.f.HPRE, code)
	return nil
}

func (d AHBDiv) norm() AHBDiv {
	if d == 0 {
		return AHBDiv1
	}
	return d
}

// APB1 divides HCLK down to PCLK1.
type APB1 struct {
	Source AHB
	Div    APBDiv
}

func (b APB1) Frequency() freq.Hz { return b.Source.Frequency().Div(uint64(b.Div.norm())) }
func (APB1) Name() string         { return "apb1" }
func (b APB1) validate() error    { return validateAPB("apb1", b.Div) }

func (b APB1) init(a *activator) error {
	code, _ := b.Div.norm().code()
	prescale(a, "apb1", a.f.PPRE1, code)
	return nil
}

// APB2 divides HCLK down to PCLK2.
type APB2 struct {
	Source AHB
	Div    APBDiv
}

func (b APB2) Frequency() freq.Hz { return b.Source.Frequency().Div(uint64(b.Div.norm())) }
func (APB2) Name() string         { return "apb2" }
func (b APB2) validate() error    { return validateAPB("apb2", b.Div) }

func (b APB2) init(a *activator) error {
	code, _ := b.Div.norm().code()
	prescale(a, "apb2", a.f.PPRE2, code)
	return nil
}

func (d APBDiv) norm() APBDiv {
	if d == 0 {
		return APBDiv1
	}
	return d
}

// prescale writes a prescaler code. /1 (code 0) is the reset value and is
// only written back when an earlier configuration left the field elsewhere.
func prescale(a *activator, name string, f regs.Field, code uint32) {
	if code == 0 && f.Read() == 0 {
		return
	}
	a.step(name + ": prescale")
	f.Write(code)
}

func validateAPB(op string, d APBDiv) error {
	if !d.norm().Valid() {
		return invalid(op, ErrInvalidAPBDiv)
	}
	return nil
}
