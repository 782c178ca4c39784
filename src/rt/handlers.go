package rt

import (
	"fortitude/src/hart"
	"fortitude/src/lib/beacon"
	"fortitude/src/lib/trust"
)

// DefaultExceptionHandler builds the terminal exception handler: it
// emits the whole saved frame as a beacon line so a host-side monitor
// can reconstruct the fault, then parks the hart. Nothing resumes.
func DefaultExceptionHandler(m hart.Machine) ExceptionHandler {
	return func(f *TrapFrame) {
		trust.Errorf("%s", beacon.EncodeFrame(uint8(m.HartID()), uint32(f.Cause), f.Words()))
		m.Park()
	}
}

// DefaultInterruptHandler builds the handler for interrupt causes
// nothing registered for. An interrupt with no handler means the
// enable configuration and the vector table disagree, which is not
// recoverable at runtime.
func DefaultInterruptHandler(m hart.Machine) hart.InterruptHandler {
	return func() {
		trust.Errorf("%s", beacon.EncodeUnhandled(uint8(m.HartID()), uint32(m.Cause())))
		m.Park()
	}
}
