//go:build stm32l0

// Command stm32l0-boot brings the NUCLEO-L073RZ clock tree up at reset and
// then prints a heartbeat.
package main

import (
	"time"

	"clocktree-go/boards/nucleol073"
	"clocktree-go/clock"
	"clocktree-go/errcode"
	"clocktree-go/rcc"
	"clocktree-go/x/conv"
)

var clocked bool

// systemInit activates the board clock tree. It must run once, before any
// other program logic. On failure it reports the error code and RCC_CFGR,
// then halts.
func systemInit() {
	if clocked {
		return
	}
	clocked = true

	p := clock.MustBuild(nucleol073.Tree)
	p.Trace = func(step string) { println("clock:", step) }
	if err := p.Activate(rcc.Hardware()); err != nil {
		var buf [16]byte
		println("clock: init failed:", string(errcode.Of(err)), err.Error())
		println(string(conv.AppendHex32(append(buf[:0], "clock: RCC_CFGR="...), rcc.CFGR())))
		for {
		}
	}

	var num [20]byte
	println("clock: sysclk", string(conv.AppendUint(num[:0], nucleol073.SysClkNum)), "Hz")
}

func main() {
	systemInit()

	tick := time.NewTicker(1 * time.Second)
	defer tick.Stop()

	for t := range tick.C {
		println(t.Format("15:04:05"), "Heartbeat")
	}
}
