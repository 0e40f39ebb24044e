package regs

import (
	"errors"
	"testing"
)

func TestBitFieldReadWrite(t *testing.T) {
	var w Word = 0xFFFF_FFFF
	f := BitField{Reg: &w, Pos: 18, Width: 4}
	f.Write(0x3)
	if got := f.Read(); got != 0x3 {
		t.Fatalf("Read = %#x, want 0x3", got)
	}
	// Neighbouring bits untouched.
	if got, want := uint32(w), uint32(0xFFC3_FFFF)|0x3<<18; got != want {
		t.Fatalf("word = %#08x, want %#08x", got, want)
	}
	// Over-wide values are masked.
	f.Write(0x1F)
	if got := f.Read(); got != 0xF {
		t.Fatalf("Read after wide write = %#x, want 0xf", got)
	}
}

func TestBitFieldFullWidth(t *testing.T) {
	var w Word
	f := BitField{Reg: &w, Pos: 0, Width: 32}
	f.Write(0xDEADBEEF)
	if f.Read() != 0xDEADBEEF {
		t.Fatalf("full-width read = %#x", f.Read())
	}
}

// countingField reports ready after n reads.
type countingField struct {
	reads, readyAfter uint32
}

func (c *countingField) Read() uint32 {
	c.reads++
	if c.reads >= c.readyAfter {
		return 1
	}
	return 0
}
func (c *countingField) Write(uint32) {}

func TestPollBounded(t *testing.T) {
	c := &countingField{readyAfter: 5}
	if err := Poll(c, 1, 10); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if c.reads != 5 {
		t.Fatalf("reads = %d, want 5", c.reads)
	}

	stuck := &countingField{readyAfter: 1 << 30}
	err := Poll(stuck, 1, 16)
	if !errors.Is(err, ErrNotReady) {
		t.Fatalf("err = %v, want ErrNotReady", err)
	}
	if stuck.reads != 16 {
		t.Fatalf("reads = %d, want exactly the limit", stuck.reads)
	}
}

func TestPollForeverReturnsOnceReady(t *testing.T) {
	c := &countingField{readyAfter: 1000}
	if err := Poll(c, 1, Forever); err != nil {
		t.Fatalf("Poll: %v", err)
	}
	if c.reads != 1000 {
		t.Fatalf("reads = %d", c.reads)
	}
}

func TestWriteAndPoll(t *testing.T) {
	var w Word
	cmd := BitField{Reg: &w, Pos: 0, Width: 2}
	status := BitField{Reg: &w, Pos: 0, Width: 2} // echo: status aliases command
	if err := WriteAndPoll(cmd, 3, status, 3, 1); err != nil {
		t.Fatalf("WriteAndPoll: %v", err)
	}
}
