package rt

import "fortitude/src/hart"

// ExceptionHandler receives the saved context of a synchronous trap.
// Exceptions are terminal in this runtime; the handler must not
// return to the faulting instruction.
type ExceptionHandler func(f *TrapFrame)

// Dispatcher routes a decoded trap cause to exactly one handler.
type Dispatcher struct {
	Exception ExceptionHandler
	Table     VectorTable
	// Unknown takes interrupt causes the table cannot answer for:
	// reserved slots and codes at or above the table size.
	Unknown hart.InterruptHandler
}

// Trap is the single software dispatch point for direct-mode traps.
// The assembly stub saves the caller-saved register file into f and
// calls here with the decoded cause; exactly one handler runs per
// invocation.
func (d *Dispatcher) Trap(f *TrapFrame) {
	c := hart.Cause(f.Cause)
	if !c.IsInterrupt() {
		d.Exception(f)
		return
	}
	code := c.Code()
	if code < NumCoreInterrupts {
		if v := d.Table[code]; !v.reserved() {
			v.h()
			return
		}
	}
	d.Unknown()
}

// FastTrap is the controller-claimed dispatch loop. The trap cause and
// return address are captured up front because claimed handlers run
// with interrupts re-enabled and a preempting trap overwrites both
// registers. Claims drain until the controller reports nothing
// pending, then interrupts go off and the saved pair is written back
// so the return stub restores the interrupted context. The number of
// handlers run is returned.
func FastTrap(m hart.Machine) int {
	cause := m.Cause()
	epc := m.EPC()

	n := 0
	for {
		h := m.ClaimNext()
		if h == nil {
			break
		}
		h()
		n++
	}

	m.InterruptsOff()
	m.SetCause(cause)
	m.SetEPC(epc)
	return n
}
