// Package nucleol073 holds the clock configuration of the NUCLEO-L073RZ
// board: SYSCLK at 32 MHz from HSI16 through the PLL.
package nucleol073

//go:generate go run clocktree-go/cmd/clockgen generate clock.yaml -o clock_gen.go
