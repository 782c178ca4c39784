package hart

import (
	"runtime"

	"fortitude/src/hardware/clic"
	"fortitude/src/hardware/mmio"
)

// Sim is a simulated hart: CSR state held in plain fields and a CLIC
// built over a RAM register backing. It exists so the boot and dispatch
// runtime can be exercised on a host; the register traffic it generates
// is byte-for-byte what the hardware controller would see.
type Sim struct {
	id    uint
	cause Cause
	epc   uintptr

	tvecBase uintptr
	tvecMode TrapMode
	tvecSub  SubMode
	tvtBase  uintptr

	ie     bool
	ctrl   *clic.Controller
	bound  []InterruptHandler
	parked bool

	waits     int
	waitLimit int
}

// NewSim builds a hart whose controller reports the given interrupt
// count and control-bit width through its capability register, exactly
// as hardware would.
func NewSim(id uint, lay *clic.Layout, nint uint32, ctlBits uint32) *Sim {
	size := lay.TableOffset + lay.Stride*(int32(nint)+1)
	store := mmio.NewRAMStore(size)
	win := mmio.NewWindow(store)
	win.Write(lay.InfoOffset, lay.InfoNumInterrupt, nint)
	win.Write(lay.InfoOffset, lay.InfoCtlBits, ctlBits)
	win.Write(lay.InfoOffset, lay.InfoVersion, 1)

	noop := func() {}
	bound := make([]InterruptHandler, nint)
	for i := range bound {
		bound[i] = noop
	}
	return &Sim{
		id:        id,
		ctrl:      clic.New(win, lay),
		bound:     bound,
		waitLimit: 16,
	}
}

// Controller exposes the simulated hart's CLIC so tests and samples
// can configure interrupts the same way platform code would.
func (s *Sim) Controller() *clic.Controller { return s.ctrl }

// Bind installs the per-id wrapper the claim operation will hand back
// for interrupt id. Unbound ids claim as a no-op.
func (s *Sim) Bind(id uint32, h InterruptHandler) { s.bound[id] = h }

// Post makes interrupt id pending, as a device raising its line would.
func (s *Sim) Post(id uint32) { s.ctrl.SetPending(id, true) }

// Raise loads the cause and return-address registers as trap entry
// hardware would, before the dispatch runtime runs.
func (s *Sim) Raise(c Cause, epc uintptr) {
	s.cause = c
	s.epc = epc
}

func (s *Sim) HartID() uint      { return s.id }
func (s *Sim) Cause() Cause      { return s.cause }
func (s *Sim) SetCause(c Cause)  { s.cause = c }
func (s *Sim) EPC() uintptr      { return s.epc }
func (s *Sim) SetEPC(pc uintptr) { s.epc = pc }

func (s *Sim) SetTrapVector(base uintptr, mode TrapMode, sub SubMode) {
	s.tvecBase = base
	s.tvecMode = mode
	s.tvecSub = sub
}

func (s *Sim) SetHandlerTable(base uintptr) { s.tvtBase = base }

func (s *Sim) InterruptsOn()  { s.ie = true }
func (s *Sim) InterruptsOff() { s.ie = false }

// ClaimNext scans the controller for the highest-level pending and
// enabled interrupt (lowest id wins a tie), clears exactly that pending
// bit, re-enables global interrupts, and returns the bound wrapper.
func (s *Sim) ClaimNext() InterruptHandler {
	s.ie = true
	best := -1
	bestLevel := -1
	for id := uint32(0); id < s.ctrl.NumInterrupts(); id++ {
		if !s.ctrl.Pending(id) || !s.ctrl.Enabled(id) {
			continue
		}
		if lv := int(s.ctrl.Level(id)); lv > bestLevel {
			best = int(id)
			bestLevel = lv
		}
	}
	if best < 0 {
		return nil
	}
	s.ctrl.SetPending(uint32(best), false)
	return s.bound[best]
}

// Wait counts wait-for-interrupt entries. A hart that is never released
// would sit here forever on hardware; the simulation releases it by
// ending its goroutine once the wait limit is reached so test benches
// can observe that the hart did not proceed.
func (s *Sim) Wait() {
	s.waits++
	if s.waitLimit > 0 && s.waits >= s.waitLimit {
		runtime.Goexit()
	}
}

// Park is the abort state. The goroutine ends; Parked reports it.
func (s *Sim) Park() {
	s.parked = true
	runtime.Goexit()
}

func (s *Sim) Parked() bool                  { return s.parked }
func (s *Sim) Waits() int                    { return s.waits }
func (s *Sim) IntsOn() bool                  { return s.ie }
func (s *Sim) TrapBase() uintptr             { return s.tvecBase }
func (s *Sim) TrapMode() (TrapMode, SubMode) { return s.tvecMode, s.tvecSub }
func (s *Sim) HandlerTable() uintptr         { return s.tvtBase }

var _ Machine = (*Sim)(nil)
