//go:build stm32l0

package rcc

import (
	"runtime/volatile"
	"unsafe"
)

type rccBlock struct {
	CR    volatile.Register32 // 0x00
	ICSCR volatile.Register32 // 0x04
	CRRCR volatile.Register32 // 0x08
	CFGR  volatile.Register32 // 0x0C
}

type flashBlock struct {
	ACR volatile.Register32 // 0x00
}

var (
	rccRegs   = (*rccBlock)(unsafe.Pointer(uintptr(RCCBase)))
	flashRegs = (*flashBlock)(unsafe.Pointer(uintptr(FlashBase)))
)

// Hardware returns the fields backed by the memory-mapped registers.
func Hardware() Fields {
	return NewFields(&rccRegs.CR, &rccRegs.ICSCR, &rccRegs.CFGR, &flashRegs.ACR)
}

// CFGR returns the raw RCC_CFGR value, for fault reports.
func CFGR() uint32 { return rccRegs.CFGR.Get() }
