package rcc

import "clocktree-go/regs"

// Reset values from the reference manual: MSI on and ready at range 5,
// SYSCLK on MSI, zero flash wait states.
const (
	resetCR    = 0x0000_0300
	resetICSCR = 0x0000_A000
)

// Op is the kind of register access recorded by Sim.
type Op uint8

const (
	OpRead Op = iota
	OpWrite
)

func (o Op) String() string {
	if o == OpWrite {
		return "write"
	}
	return "read"
}

// Access is one field access seen by Sim.
type Access struct {
	Op    Op
	Field string
	Value uint32
}

// Sim is a host model of the RCC and flash interface registers. Status
// flags follow their control bits the way silicon does (xRDY tracks xON,
// SWS tracks SW once the selected source is ready), every field access is
// logged in order, and individual status flags can be frozen to model
// hardware that never responds.
//
// Sim is not safe for concurrent use; activation is single-threaded.
type Sim struct {
	CR, ICSCR, CFGR, ACR regs.Word

	// Log holds every access made through Fields, in order.
	Log []Access
	// Violations lists sequencing rules broken by the writes so far.
	Violations []string

	raw     Fields
	byName  map[string]regs.BitField
	stalled map[string]bool
}

// NewSim returns a simulator in the post-reset state.
func NewSim() *Sim {
	s := &Sim{
		CR:      resetCR,
		ICSCR:   resetICSCR,
		byName:  make(map[string]regs.BitField),
		stalled: make(map[string]bool),
	}
	s.raw = buildFields(s.registers(), func(name string, bf regs.BitField) regs.Field {
		s.byName[name] = bf
		return bf
	})
	return s
}

// Stall freezes a status field (e.g. "PLLRDY", "SWS") at its current value.
func (s *Sim) Stall(field string) { s.stalled[field] = true }

// Fields returns logging fields backed by the simulated registers.
func (s *Sim) Fields() Fields {
	return buildFields(s.registers(), func(name string, bf regs.BitField) regs.Field {
		return &simField{s: s, name: name, bf: bf}
	})
}

func (s *Sim) registers() [4]regs.Register {
	return [4]regs.Register{&s.CR, &s.ICSCR, &s.CFGR, &s.ACR}
}

// Writes returns only the write accesses from Log.
func (s *Sim) Writes() []Access {
	var out []Access
	for _, a := range s.Log {
		if a.Op == OpWrite {
			out = append(out, a)
		}
	}
	return out
}

// Reset clears the access log and violations, keeping register state.
func (s *Sim) Reset() {
	s.Log = nil
	s.Violations = nil
}

type simField struct {
	s    *Sim
	name string
	bf   regs.BitField
}

func (f *simField) Read() uint32 {
	v := f.bf.Read()
	f.s.Log = append(f.s.Log, Access{Op: OpRead, Field: f.name, Value: v})
	return v
}

func (f *simField) Write(v uint32) {
	f.s.check(f.name, v)
	f.s.Log = append(f.s.Log, Access{Op: OpWrite, Field: f.name, Value: v})
	f.s.apply(f.name, v)
	f.s.settle()
}

// apply performs the write, except where the hardware ignores it: PLLON=0
// while the PLL drives SYSCLK, HSEON=0 while HSE clocks SYSCLK directly or
// through the PLL, and HSEBYP while HSE is on.
func (s *Sim) apply(name string, v uint32) {
	r := s.raw
	switch {
	case name == "PLLON" && v == 0 && r.SWS.Read() == 3:
		return
	case name == "HSEON" && v == 0 && s.hseClocksSysClk():
		return
	case name == "HSEBYP" && r.HSEON.Read() == 1:
		return
	}
	s.byName[name].Write(v)
}

func (s *Sim) hseClocksSysClk() bool {
	r := s.raw
	switch r.SWS.Read() {
	case 2:
		return true
	case 3:
		return r.PLLSRC.Read() == 1
	}
	return false
}

func (s *Sim) check(name string, v uint32) {
	r := s.raw
	switch name {
	case "PLLMUL", "PLLDIV", "PLLSRC":
		if r.PLLON.Read() == 1 {
			s.Violations = append(s.Violations, name+" written while PLLON=1")
		}
		if name == "PLLDIV" && v == 0 {
			s.Violations = append(s.Violations, "PLLDIV code 0 is reserved")
		}
	case "PLLON":
		if v == 0 && r.SWS.Read() == 3 {
			s.Violations = append(s.Violations, "PLLON cleared while SYSCLK runs from PLL")
		}
	case "HSEON":
		if v == 0 && s.hseClocksSysClk() {
			s.Violations = append(s.Violations, "HSEON cleared while HSE clocks SYSCLK")
		}
	case "HSEBYP":
		if r.HSEON.Read() == 1 {
			s.Violations = append(s.Violations, "HSEBYP written while HSEON=1")
		}
	case "SW":
		if !s.sourceReady(v) {
			s.Violations = append(s.Violations, "SW selects a source that is not ready")
		}
	}
}

func (s *Sim) sourceReady(sw uint32) bool {
	r := s.raw
	switch sw {
	case 0:
		return r.MSIRDY.Read() == 1
	case 1:
		return r.HSI16RDYF.Read() == 1
	case 2:
		return r.HSERDY.Read() == 1
	default:
		return r.PLLRDY.Read() == 1
	}
}

func (s *Sim) follow(status string, f regs.Field, v uint32) {
	if s.stalled[status] {
		return
	}
	f.Write(v)
}

// settle lets status flags catch up with the control bits.
func (s *Sim) settle() {
	r := s.raw
	s.follow("MSIRDY", r.MSIRDY, r.MSION.Read())
	s.follow("HSI16RDYF", r.HSI16RDYF, r.HSI16ON.Read())
	s.follow("HSI16DIVF", r.HSI16DIVF, r.HSI16DIVEN.Read())
	s.follow("HSERDY", r.HSERDY, r.HSEON.Read())

	lock := uint32(0)
	if r.PLLON.Read() == 1 {
		if r.PLLSRC.Read() == 0 {
			lock = r.HSI16RDYF.Read()
		} else {
			lock = r.HSERDY.Read()
		}
	}
	s.follow("PLLRDY", r.PLLRDY, lock)

	if sw := r.SW.Read(); s.sourceReady(sw) {
		s.follow("SWS", r.SWS, sw)
	}
}
