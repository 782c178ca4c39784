// Package rt is the boot-to-first-instruction and trap-dispatch
// runtime: it brings a hart from reset to the user entry point and
// thereafter routes exceptions and interrupts to handlers through
// either a static vector table or the controller-assisted claim loop.
package rt

import "unsafe"

// TrapFrame is the ordered snapshot of the caller-saved register set
// taken at trap entry. The field order here IS the wire contract with
// the save trampoline: registers are stored at consecutive word offsets
// in exactly this order, and the restore walks the same offsets so the
// stack pointer moves once on entry and once on exit. Cause and EPC sit
// at the end so the claim loop can re-enable interrupts mid-trap and
// still return to the original interrupted context after a nested trap
// has overwritten both CSRs.
//
// A frame lives on the trapped hart's stack and never outlives one
// trap episode. Exception handlers receive it by reference; interrupt
// handlers never see it.
type TrapFrame struct {
	RA uintptr
	T0 uintptr
	T1 uintptr
	T2 uintptr
	A0 uintptr
	A1 uintptr
	A2 uintptr
	A3 uintptr
	A4 uintptr
	A5 uintptr
	A6 uintptr
	A7 uintptr
	T3 uintptr
	T4 uintptr
	T5 uintptr
	T6 uintptr

	Cause uintptr
	EPC   uintptr
}

// FrameWords is the frame size in register words.
const FrameWords = int(unsafe.Sizeof(TrapFrame{}) / unsafe.Sizeof(uintptr(0)))

// frameOrder names the save order, first-saved first. The trampoline
// must store and load in this order; the layout test pins the struct
// offsets to it.
var frameOrder = [FrameWords]string{
	"ra", "t0", "t1", "t2",
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	"t3", "t4", "t5", "t6",
	"cause", "epc",
}

// Words flattens the frame in save order, for the beacon dump.
func (f *TrapFrame) Words() []uint32 {
	return []uint32{
		uint32(f.RA), uint32(f.T0), uint32(f.T1), uint32(f.T2),
		uint32(f.A0), uint32(f.A1), uint32(f.A2), uint32(f.A3),
		uint32(f.A4), uint32(f.A5), uint32(f.A6), uint32(f.A7),
		uint32(f.T3), uint32(f.T4), uint32(f.T5), uint32(f.T6),
		uint32(f.Cause), uint32(f.EPC),
	}
}
