// Package clockgen emits the Go source for a board clock tree.
//
// The emitted file declares the tree inputs (source frequency and PLL
// factors) as constants, a clock.Tree literal built from them, the resolved
// frequencies as exact num/den constants, and an unsigned constant
// expression over the same inputs that overflows when SYSCLK exceeds
// clock.MaxSysClkHz. A tree that fails clock.Build is never emitted. Editing
// the input constants past the limit stops the package from compiling;
// MustBuild re-validates any other hand edit when Init runs.
package clockgen

import (
	"fmt"
	"go/format"
	"path/filepath"
	"strings"

	"clocktree-go/clock"
	"clocktree-go/clockcfg"
	"clocktree-go/freq"
)

// Generate validates cfg and returns the formatted source of its package.
// source names the description in the generated header.
func Generate(cfg *clockcfg.Config, source string) ([]byte, error) {
	tree, err := cfg.Tree()
	if err != nil {
		return nil, err
	}
	plan, err := clock.Build(tree)
	if err != nil {
		return nil, err
	}

	g := &gen{cfg: cfg, plan: plan}
	g.inputs, g.source, g.bound = sourceInputs(plan.Tree().SysClk.Source)
	g.writePreamble(filepath.Base(source))
	g.writeInputs()
	g.writeFrequencies()
	g.writeTree()
	g.writeInit()

	buf, err := format.Source([]byte(g.w.String()))
	if err != nil {
		return nil, fmt.Errorf("error formatting generated source: %w", err)
	}
	return buf, nil
}

type gen struct {
	w    strings.Builder
	cfg  *clockcfg.Config
	plan *clock.Plan

	inputs []input
	source string // SYSCLK source literal over the inputs
	bound  string // SYSCLK bound over the inputs, >= 0 iff within the limit
}

// input is one named constant the Tree literal is built from.
type input struct{ name, value string }

func (g *gen) writePreamble(source string) {
	// The freq import is only needed for HSE literals.
	useFreq := strings.Contains(g.source, "freq.")

	fmt.Fprintf(&g.w, "// Code generated by clockgen from %s. DO NOT EDIT.\n\n", source)
	fmt.Fprintf(&g.w, "package %s\n\n", g.cfg.Package)
	fmt.Fprintln(&g.w, "import (")
	fmt.Fprintln(&g.w, "\t\"clocktree-go/clock\"")
	if useFreq {
		fmt.Fprintln(&g.w, "\t\"clocktree-go/freq\"")
	}
	fmt.Fprintln(&g.w, "\t\"clocktree-go/rcc\"")
	fmt.Fprintln(&g.w, ")")
}

func (g *gen) writeInputs() {
	width := 0
	for _, in := range g.inputs {
		width = max(width, len(in.name))
	}

	fmt.Fprintln(&g.w)
	fmt.Fprintln(&g.w, "// Inputs of Tree.")
	fmt.Fprintln(&g.w, "const (")
	for _, in := range g.inputs {
		fmt.Fprintf(&g.w, "\t%-*s = %s\n", width, in.name, in.value)
	}
	fmt.Fprintln(&g.w, ")")

	fmt.Fprintln(&g.w)
	fmt.Fprintln(&g.w, "// SYSCLK from the inputs must not exceed clock.MaxSysClkHz; this constant")
	fmt.Fprintln(&g.w, "// overflows if it does.")
	fmt.Fprintf(&g.w, "const _ uint64 = %s\n", g.bound)
}

func (g *gen) writeFrequencies() {
	rows := []struct {
		name string
		f    freq.Hz
	}{
		{"SysClk", g.plan.SysClk()},
		{"HCLK", g.plan.HCLK()},
		{"PCLK1", g.plan.PCLK1()},
		{"PCLK2", g.plan.PCLK2()},
	}
	width := 0
	for _, r := range rows {
		width = max(width, len(r.name)+len("Num"))
	}

	fmt.Fprintln(&g.w)
	fmt.Fprintln(&g.w, "// Resolved frequencies in Hz, as exact Num/Den ratios.")
	fmt.Fprintln(&g.w, "const (")
	for _, r := range rows {
		fmt.Fprintf(&g.w, "\t%-*s = %d\n", width, r.name+"Num", r.f.Num())
		fmt.Fprintf(&g.w, "\t%-*s = %d\n", width, r.name+"Den", r.f.Den())
	}
	fmt.Fprintln(&g.w, ")")

	fmt.Fprintln(&g.w)
	fmt.Fprintln(&g.w, "// Latency is the flash wait-state count at SysClk.")
	fmt.Fprintf(&g.w, "const Latency = %d\n", g.plan.Latency())
}

func (g *gen) writeTree() {
	t := g.plan.Tree()
	fields := [][2]string{
		{"SysClk", "clock.SysClk{Source: " + g.source + "}"},
		{"AHB", fmt.Sprintf("clock.AHBDiv%d", one(uint32(t.AHB)))},
		{"APB1", fmt.Sprintf("clock.APBDiv%d", one(uint32(t.APB1)))},
		{"APB2", fmt.Sprintf("clock.APBDiv%d", one(uint32(t.APB2)))},
	}
	switch t.PollLimit {
	case 0:
	case clock.PollForever:
		fields = append(fields, [2]string{"PollLimit", "clock.PollForever"})
	default:
		fields = append(fields, [2]string{"PollLimit", fmt.Sprint(t.PollLimit)})
	}
	width := 0
	for _, f := range fields {
		width = max(width, len(f[0])+1)
	}

	fmt.Fprintln(&g.w)
	fmt.Fprintf(&g.w, "// Tree is the %s clock configuration.\n", g.cfg.Name)
	fmt.Fprintln(&g.w, "var Tree = clock.Tree{")
	for _, f := range fields {
		fmt.Fprintf(&g.w, "\t%-*s %s,\n", width, f[0]+":", f[1])
	}
	fmt.Fprintln(&g.w, "}")
}

func (g *gen) writeInit() {
	fmt.Fprintln(&g.w)
	fmt.Fprintln(&g.w, "// Init brings the hardware up on Tree. Call it once, before anything")
	fmt.Fprintln(&g.w, "// depends on the clocks.")
	fmt.Fprintln(&g.w, "func Init(f rcc.Fields) error {")
	fmt.Fprintln(&g.w, "\treturn clock.MustBuild(Tree).Activate(f)")
	fmt.Fprintln(&g.w, "}")
}

// sourceInputs returns the input constants of a validated SYSCLK source,
// its literal written in terms of them, and the limit expression.
func sourceInputs(n clock.Node) ([]input, string, string) {
	const direct = "clock.MaxSysClkHz*InputDen - InputNum"
	switch n := n.(type) {
	case clock.HSI16:
		hz := "clock.HSI16Hz"
		if n.DivideBy4 {
			hz = "clock.HSI16Div4Hz"
		}
		return []input{{"InputNum", hz}, {"InputDen", "1"}},
			"clock.HSI16{DivideBy4: InputNum == clock.HSI16Div4Hz}", direct
	case clock.HSE:
		lit := "clock.HSE{Hz: freq.New(InputNum, InputDen)}"
		if n.Bypass {
			lit = "clock.HSE{Hz: freq.New(InputNum, InputDen), Bypass: true}"
		}
		return []input{
			{"InputNum", fmt.Sprint(n.Hz.Num())},
			{"InputDen", fmt.Sprint(n.Hz.Den())},
		}, lit, direct
	case clock.MSI:
		return []input{
			{"MSIRange", fmt.Sprintf("clock.MSIRange%d", n.Range)},
			{"InputNum", "clock.MSIRange0Hz << MSIRange"},
			{"InputDen", "1"},
		}, "clock.MSI{Range: MSIRange}", direct
	case clock.PLL:
		in, src, _ := sourceInputs(n.Source)
		in = append(in,
			input{"PLLMul", fmt.Sprintf("clock.PLLMul%d", n.Mul)},
			input{"PLLDiv", fmt.Sprintf("clock.PLLDiv%d", n.Div)},
		)
		return in, "clock.PLL{Source: " + src + ", Mul: PLLMul, Div: PLLDiv}",
			"clock.MaxSysClkHz*uint64(PLLDiv)*InputDen - InputNum*uint64(PLLMul)"
	}
	panic("clockgen: unexpected node " + n.Name())
}

func one(v uint32) uint32 {
	if v == 0 {
		return 1
	}
	return v
}
