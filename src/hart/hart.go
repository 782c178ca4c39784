// Package hart abstracts one hardware execution unit: its trap CSRs,
// its interrupt gating, and the controller-assisted claim operation.
// Everything above this package (boot sequencing, trap dispatch) is
// written against Machine so the same runtime drives real silicon and
// the simulated hart the tests use.
package hart

// InterruptHandler is an ordinary returning handler, one per core
// interrupt cause or per controller interrupt id.
type InterruptHandler func()

// Cause mirrors the hardware cause register: the top bit distinguishes
// interrupt from exception, the low bits carry the numeric code.
type Cause uint32

const causeInterruptFlag = Cause(1) << 31

// Interrupt builds an interrupt cause value for the given code.
func Interrupt(code uint32) Cause {
	return causeInterruptFlag | Cause(code)
}

// Exception builds an exception cause value.
func Exception(code uint32) Cause {
	return Cause(code)
}

func (c Cause) IsInterrupt() bool {
	return c&causeInterruptFlag != 0
}

func (c Cause) Code() uint32 {
	return uint32(c &^ causeInterruptFlag)
}

// TrapMode selects how the core dispatches on a trap: a single direct
// entry point, or controller-vectored dispatch.
type TrapMode uint8

const (
	ModeDirect TrapMode = 0
	ModeClic   TrapMode = 3
)

// SubMode further selects the controller-vectored entry style:
// SubFastClaim routes all traps through the next-pending-interrupt
// drain loop instead of the static entry.
type SubMode uint8

const (
	SubDefault   SubMode = 0
	SubFastClaim SubMode = 1
)

// Machine is one hart's privileged surface. A Machine is owned by the
// code running on that hart; nothing here is safe to share across
// harts, and nothing here needs locks because the hardware's own
// pending/enable operations are atomic with respect to the owning
// hart's trap entry.
type Machine interface {
	// HartID reads the executing hart's numeric id from hardware.
	HartID() uint

	// Cause and EPC read the trap cause and return-address registers.
	// SetCause and SetEPC restore them; the fast dispatch path needs
	// the restore because nested traps overwrite both CSRs.
	Cause() Cause
	SetCause(Cause)
	EPC() uintptr
	SetEPC(uintptr)

	// SetTrapVector programs the trap-vector control register with the
	// entry address and dispatch mode. SetHandlerTable programs the
	// controller's vector-table base; it only matters in ModeClic.
	SetTrapVector(base uintptr, mode TrapMode, sub SubMode)
	SetHandlerTable(base uintptr)

	// InterruptsOn and InterruptsOff gate global interrupt delivery.
	InterruptsOn()
	InterruptsOff()

	// ClaimNext is the next-pending-interrupt operation: it atomically
	// selects the highest-ranked pending-and-enabled interrupt, clears
	// its pending bit, re-enables global interrupts as a side effect,
	// and returns the handler bound to it. A nil return means nothing
	// is pending.
	ClaimNext() InterruptHandler

	// Wait is the low-power wait-for-interrupt state.
	Wait()

	// Park diverts the hart into the abort/park state. It never
	// returns to the caller.
	Park()
}
