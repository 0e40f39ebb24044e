package clock

import (
	"errors"

	"clocktree-go/freq"
	"clocktree-go/rcc"
	"clocktree-go/regs"
)

// Poll bounds, counted in status register reads.
const (
	// DefaultPollLimit applies when Tree.PollLimit is zero. It leaves well
	// over a second for an oscillator to start, even on the slowest MSI range.
	DefaultPollLimit uint32 = 1 << 20
	// PollForever waits for hardware without bound.
	PollForever uint32 = ^uint32(0)
)

// Tree is a complete clock configuration.
type Tree struct {
	SysClk SysClk
	AHB    AHBDiv
	APB1   APBDiv
	APB2   APBDiv

	// PollLimit bounds every ready/lock/switch wait. Zero selects
	// DefaultPollLimit; PollForever waits indefinitely.
	PollLimit uint32
}

// Plan is a validated Tree ready to be activated.
type Plan struct {
	tree  Tree
	ahb   AHB
	apb1  APB1
	apb2  APB2
	limit uint32

	// Trace, if set, receives a short description of each activation step.
	Trace func(step string)
}

// Build validates t and resolves every node frequency. The violations of
// every node are reported together; the SYSCLK limit is only checked once
// its source is legal, since an illegal source has no frequency to judge.
func Build(t Tree) (*Plan, error) {
	ahb := AHB{Source: t.SysClk, Div: t.AHB.norm()}
	apb1 := APB1{Source: ahb, Div: t.APB1.norm()}
	apb2 := APB2{Source: ahb, Div: t.APB2.norm()}

	var errs []error
	for _, n := range []Node{t.SysClk, ahb, apb1, apb2} {
		if err := n.validate(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, err
	}

	limit := t.PollLimit
	switch limit {
	case 0:
		limit = DefaultPollLimit
	case PollForever:
		limit = regs.Forever
	}
	return &Plan{tree: t, ahb: ahb, apb1: apb1, apb2: apb2, limit: limit}, nil
}

// MustBuild is Build for trees that are known to be legal, such as
// generated board configurations. It panics on error.
func MustBuild(t Tree) *Plan {
	p, err := Build(t)
	if err != nil {
		panic(err)
	}
	return p
}

// Tree returns the configuration the plan was built from.
func (p *Plan) Tree() Tree { return p.tree }

// SysClk returns the SYSCLK frequency.
func (p *Plan) SysClk() freq.Hz { return p.tree.SysClk.Frequency() }

// HCLK returns the AHB bus and core frequency.
func (p *Plan) HCLK() freq.Hz { return p.ahb.Frequency() }

// PCLK1 returns the APB1 peripheral clock.
func (p *Plan) PCLK1() freq.Hz { return p.apb1.Frequency() }

// PCLK2 returns the APB2 peripheral clock.
func (p *Plan) PCLK2() freq.Hz { return p.apb2.Frequency() }

// Latency returns the flash wait states the plan runs with.
func (p *Plan) Latency() uint32 { return Latency(p.SysClk()) }

// PollLimit returns the effective poll bound; regs.Forever means unbounded.
func (p *Plan) PollLimit() uint32 { return p.limit }

// Activate drives the hardware onto the plan: SYSCLK and everything
// upstream of it depth-first, then the bus prescalers. It must run on a
// single thread before anything depends on the clocks. On error the
// hardware is left wherever the failed step stopped.
func (p *Plan) Activate(f rcc.Fields) error {
	a := &activator{f: f, limit: p.limit, trace: p.Trace}
	for _, n := range []Node{p.tree.SysClk, p.ahb, p.apb1, p.apb2} {
		if err := n.init(a); err != nil {
			return err
		}
	}
	a.step("clock tree active")
	return nil
}
