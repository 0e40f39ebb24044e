package clock

import "clocktree-go/freq"

// SysClk is the system clock multiplexer.
type SysClk struct {
	Source SysClkInput
}

func (s SysClk) Frequency() freq.Hz {
	if s.Source == nil {
		return freq.Hz{}
	}
	return s.Source.Frequency()
}

func (SysClk) Name() string { return "sysclk" }

func (s SysClk) validate() error {
	if s.Source == nil {
		return invalid("sysclk", ErrNoSource)
	}
	if err := s.Source.validate(); err != nil {
		return err
	}
	if f := s.Frequency(); !f.LessEqual(MaxSysClk) {
		return tooFast("sysclk", f.String())
	}
	return nil
}

// init brings up the source, then switches SW and waits for SWS to echo it.
// Wait states are raised before the switch and lowered after it.
func (s SysClk) init(a *activator) error {
	if err := s.Source.init(a); err != nil {
		return err
	}
	f := a.f
	need := Latency(s.Frequency())
	if need > f.LATENCY.Read() {
		f.LATENCY.Write(need)
	}

	sel := uint32(s.Source.Selector())
	a.step("sysclk: switch to " + s.Source.Name())
	if err := a.writePoll("sysclk.switch", f.SW, sel, f.SWS, sel, "SWS"); err != nil {
		return err
	}

	if need < f.LATENCY.Read() {
		f.LATENCY.Write(need)
	}
	return nil
}
