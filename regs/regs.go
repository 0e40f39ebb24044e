// Package regs provides bit-field access over 32-bit registers and the
// write-then-poll primitive hardware handshakes are built from.
//
// Register is satisfied by TinyGo's *volatile.Register32, so the same code
// drives real memory-mapped registers on the MCU and plain words on the host.
package regs

import "errors"

// ErrNotReady is returned by Poll when the field never reached the value.
var ErrNotReady = errors.New("regs: field did not reach expected value")

// Forever disables the poll bound and waits until hardware responds.
const Forever uint32 = 0

// Register is a 32-bit hardware register.
type Register interface {
	Get() uint32
	Set(v uint32)
}

// Field is a named bit-field inside a register.
type Field interface {
	Read() uint32
	Write(v uint32)
}

// BitField addresses Width bits starting at Pos within Reg.
type BitField struct {
	Reg   Register
	Pos   uint8
	Width uint8
}

func (f BitField) mask() uint32 {
	if f.Width >= 32 {
		return ^uint32(0)
	}
	return (uint32(1)<<f.Width - 1) << f.Pos
}

// Read returns the field value shifted down to bit 0.
func (f BitField) Read() uint32 {
	return (f.Reg.Get() & f.mask()) >> f.Pos
}

// Write replaces the field with v using a read-modify-write of Reg.
// Bits of v beyond Width are discarded.
func (f BitField) Write(v uint32) {
	m := f.mask()
	f.Reg.Set(f.Reg.Get()&^m | (v<<f.Pos)&m)
}

// Poll busy-waits until f reads want. limit bounds the number of reads;
// Forever waits without bound.
func Poll(f Field, want, limit uint32) error {
	if limit == Forever {
		for f.Read() != want {
		}
		return nil
	}
	for i := uint32(0); i < limit; i++ {
		if f.Read() == want {
			return nil
		}
	}
	return ErrNotReady
}

// WriteAndPoll writes v to cmd, then polls status until it reads want.
func WriteAndPoll(cmd Field, v uint32, status Field, want, limit uint32) error {
	cmd.Write(v)
	return Poll(status, want, limit)
}

// Word is a plain in-memory Register for host builds and tests.
type Word uint32

func (w *Word) Get() uint32  { return uint32(*w) }
func (w *Word) Set(v uint32) { *w = Word(v) }
