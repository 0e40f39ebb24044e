// Package clock describes the STM32L0 clock tree as plain value nodes,
// validates a tree before it can be activated, and runs the register
// sequence that brings the hardware onto it.
//
// A tree is built leaf-first:
//
//	pll := clock.PLL{Source: clock.HSI16{}, Mul: clock.PLLMul4, Div: clock.PLLDiv2}
//	plan, err := clock.Build(clock.Tree{SysClk: clock.SysClk{Source: pll}})
//	...
//	err = plan.Activate(rcc.Hardware())
//
// Which node may feed which is enforced by the Go type system: only
// PLLInput values can drive the PLL and only SysClkInput values can drive
// SYSCLK. Factor tables and the SYSCLK limit are checked by Build; the
// clockgen tool runs the same checks at go generate time and emits
// constant assertions, so an illegal board tree never compiles.
package clock

import (
	"clocktree-go/freq"
	"clocktree-go/rcc"
	"clocktree-go/regs"
)

// Node is a stage of the clock tree.
type Node interface {
	// Frequency is the node's output, derived from its source.
	Frequency() freq.Hz
	// Name is a short identifier used in errors and traces.
	Name() string

	validate() error
	init(a *activator) error
}

// SysClkInput is a node the SYSCLK multiplexer can select.
type SysClkInput interface {
	Node
	Selector() Source
}

// PLLInput is a node the PLL input multiplexer can select.
type PLLInput interface {
	Node
	PLLSelector() PLLSource
}

// activator carries the register fields and poll bound through one
// depth-first activation.
type activator struct {
	f     rcc.Fields
	limit uint32
	trace func(string)
}

func (a *activator) step(s string) {
	if a.trace != nil {
		a.trace(s)
	}
}

// writePoll writes v to cmd and waits for status to read want.
func (a *activator) writePoll(op string, cmd regs.Field, v uint32, status regs.Field, want uint32, flag string) error {
	if err := regs.WriteAndPoll(cmd, v, status, want, a.limit); err != nil {
		return notResponding(op, flag)
	}
	return nil
}

// moveToHSI16 switches SYSCLK onto HSI16 so that the source it ran from can
// be stopped.
func (a *activator) moveToHSI16(from string) error {
	a.step(from + ": move sysclk to hsi16")
	if err := a.writePoll("hsi16.ready", a.f.HSI16ON, 1, a.f.HSI16RDYF, 1, "HSI16RDYF"); err != nil {
		return err
	}
	return a.writePoll("sysclk.switch", a.f.SW, uint32(SourceHSI16), a.f.SWS, uint32(SourceHSI16), "SWS")
}

func b2u(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
