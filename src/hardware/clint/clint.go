// Package clint drives the core-local interruptor: the machine timer
// and the per-hart software interrupt doorbells. It is the source of
// the machine timer and machine software causes the dispatch runtime
// routes, so the two blocks are configured together on real boards.
package clint

import "fortitude/src/hardware/mmio"

// Register block offsets. The software interrupt doorbells start at
// the base, one word per hart; the timer compare registers are an
// array of 64-bit values; the free-running counter sits near the top
// of the block.
const (
	msipOffset     = 0x0000
	mtimecmpOffset = 0x4000
	mtimeOffset    = 0xBFF8
)

// Block is one CLINT instance. The free-running counter is shared by
// every hart; the doorbell and compare registers are per hart.
type Block struct {
	win mmio.Window
}

func New(win mmio.Window) *Block {
	return &Block{win: win}
}

// Time reads the 64-bit free-running counter. The two halves are read
// separately, so the high word is read again after the low word to
// catch a carry between the two transactions.
func (b *Block) Time() uint64 {
	for {
		hi := b.win.Word(mtimeOffset + 4)
		lo := b.win.Word(mtimeOffset)
		if b.win.Word(mtimeOffset+4) == hi {
			return uint64(hi)<<32 | uint64(lo)
		}
	}
}

// SetTime loads the counter. Only simulation backings and early boot
// firmware write this; the low word goes first so a rollover during
// the two writes cannot produce a value above the target.
func (b *Block) SetTime(v uint64) {
	b.win.SetWord(mtimeOffset, uint32(v))
	b.win.SetWord(mtimeOffset+4, uint32(v>>32))
}

// Deadline reads hart's timer compare value.
func (b *Block) Deadline(hart uint) uint64 {
	off := int32(mtimecmpOffset + 8*hart)
	lo := b.win.Word(off)
	hi := b.win.Word(off + 4)
	return uint64(hi)<<32 | uint64(lo)
}

// SetDeadline arms hart's timer interrupt for counter value v. The
// high word is parked at all-ones while the halves change so a tick
// between the two writes cannot fire a stale deadline.
func (b *Block) SetDeadline(hart uint, v uint64) {
	off := int32(mtimecmpOffset + 8*hart)
	b.win.SetWord(off+4, ^uint32(0))
	b.win.SetWord(off, uint32(v))
	b.win.SetWord(off+4, uint32(v>>32))
}

// SetDeadlineIn arms hart's timer interrupt ticks counter ticks from
// now.
func (b *Block) SetDeadlineIn(hart uint, ticks uint64) {
	b.SetDeadline(hart, b.Time()+ticks)
}

// Signal rings hart's software interrupt doorbell. The receiving hart
// sees the machine software interrupt cause until Clear.
func (b *Block) Signal(hart uint) {
	b.win.SetWord(int32(msipOffset+4*hart), 1)
}

// Clear drops hart's software interrupt doorbell. The handler for the
// machine software cause must do this before returning or the
// interrupt fires again immediately.
func (b *Block) Clear(hart uint) {
	b.win.SetWord(int32(msipOffset+4*hart), 0)
}

// Signaled reports whether hart's doorbell is raised.
func (b *Block) Signaled(hart uint) bool {
	return b.win.Word(int32(msipOffset+4*hart))&1 != 0
}
