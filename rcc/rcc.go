// Package rcc names the STM32L0x3 reset-and-clock-control and flash
// bit-fields used to bring up the clock tree (RM0367).
package rcc

import "clocktree-go/regs"

// Peripheral base addresses.
const (
	RCCBase   = 0x4002_1000
	FlashBase = 0x4002_2000
)

// Fields is the set of register fields the clock tree reads and writes.
type Fields struct {
	// RCC_CR
	HSI16ON    regs.Field
	HSI16RDYF  regs.Field
	HSI16DIVEN regs.Field
	HSI16DIVF  regs.Field
	MSION      regs.Field
	MSIRDY     regs.Field
	HSEON      regs.Field
	HSERDY     regs.Field
	HSEBYP     regs.Field
	PLLON      regs.Field
	PLLRDY     regs.Field

	// RCC_ICSCR
	MSIRANGE regs.Field

	// RCC_CFGR
	SW     regs.Field
	SWS    regs.Field
	HPRE   regs.Field
	PPRE1  regs.Field
	PPRE2  regs.Field
	PLLSRC regs.Field
	PLLMUL regs.Field
	PLLDIV regs.Field

	// FLASH_ACR
	LATENCY regs.Field
}

type layout struct {
	name  string
	reg   int // index into the register argument list
	pos   uint8
	width uint8
	set   func(*Fields, regs.Field)
}

const (
	regCR = iota
	regICSCR
	regCFGR
	regACR
)

var fieldLayout = []layout{
	{"HSI16ON", regCR, 0, 1, func(f *Fields, v regs.Field) { f.HSI16ON = v }},
	{"HSI16RDYF", regCR, 2, 1, func(f *Fields, v regs.Field) { f.HSI16RDYF = v }},
	{"HSI16DIVEN", regCR, 3, 1, func(f *Fields, v regs.Field) { f.HSI16DIVEN = v }},
	{"HSI16DIVF", regCR, 4, 1, func(f *Fields, v regs.Field) { f.HSI16DIVF = v }},
	{"MSION", regCR, 8, 1, func(f *Fields, v regs.Field) { f.MSION = v }},
	{"MSIRDY", regCR, 9, 1, func(f *Fields, v regs.Field) { f.MSIRDY = v }},
	{"HSEON", regCR, 16, 1, func(f *Fields, v regs.Field) { f.HSEON = v }},
	{"HSERDY", regCR, 17, 1, func(f *Fields, v regs.Field) { f.HSERDY = v }},
	{"HSEBYP", regCR, 18, 1, func(f *Fields, v regs.Field) { f.HSEBYP = v }},
	{"PLLON", regCR, 24, 1, func(f *Fields, v regs.Field) { f.PLLON = v }},
	{"PLLRDY", regCR, 25, 1, func(f *Fields, v regs.Field) { f.PLLRDY = v }},

	{"MSIRANGE", regICSCR, 13, 3, func(f *Fields, v regs.Field) { f.MSIRANGE = v }},

	{"SW", regCFGR, 0, 2, func(f *Fields, v regs.Field) { f.SW = v }},
	{"SWS", regCFGR, 2, 2, func(f *Fields, v regs.Field) { f.SWS = v }},
	{"HPRE", regCFGR, 4, 4, func(f *Fields, v regs.Field) { f.HPRE = v }},
	{"PPRE1", regCFGR, 8, 3, func(f *Fields, v regs.Field) { f.PPRE1 = v }},
	{"PPRE2", regCFGR, 11, 3, func(f *Fields, v regs.Field) { f.PPRE2 = v }},
	{"PLLSRC", regCFGR, 16, 1, func(f *Fields, v regs.Field) { f.PLLSRC = v }},
	{"PLLMUL", regCFGR, 18, 4, func(f *Fields, v regs.Field) { f.PLLMUL = v }},
	{"PLLDIV", regCFGR, 22, 2, func(f *Fields, v regs.Field) { f.PLLDIV = v }},

	{"LATENCY", regACR, 0, 1, func(f *Fields, v regs.Field) { f.LATENCY = v }},
}

// NewFields maps every field onto the given RCC_CR, RCC_ICSCR, RCC_CFGR and
// FLASH_ACR registers.
func NewFields(cr, icscr, cfgr, acr regs.Register) Fields {
	return buildFields([4]regs.Register{cr, icscr, cfgr, acr}, func(_ string, bf regs.BitField) regs.Field { return bf })
}

func buildFields(r [4]regs.Register, wrap func(name string, bf regs.BitField) regs.Field) Fields {
	var f Fields
	for _, l := range fieldLayout {
		l.set(&f, wrap(l.name, regs.BitField{Reg: r[l.reg], Pos: l.pos, Width: l.width}))
	}
	return f
}
