package clock

import "clocktree-go/freq"

// MaxSysClkHz is the highest SYSCLK frequency in voltage range 1.
const MaxSysClkHz = 32_000_000

// zeroWaitMaxHz is the highest HCLK that runs from flash without a wait
// state in voltage range 1.
const zeroWaitMaxHz = 16_000_000

// MaxSysClk is MaxSysClkHz as a frequency.
var MaxSysClk = freq.Of(MaxSysClkHz)

// Latency returns the flash wait states needed to run at f.
func Latency(f freq.Hz) uint32 {
	if f.LessEqual(freq.Of(zeroWaitMaxHz)) {
		return 0
	}
	return 1
}
