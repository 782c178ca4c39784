package rt

import (
	"fortitude/src/hardware/clic"
	"fortitude/src/hart"
	"fortitude/src/lib/beacon"
	"fortitude/src/lib/trust"
)

// park reason codes carried in the beacon park line
const (
	parkBadHartID     = 1
	parkEntryReturned = 2
)

// BootConfig is everything the reset path needs, built explicitly by
// the platform and threaded through the sequence. There is no
// module-level boot state.
type BootConfig struct {
	Mach hart.Machine

	// MaxHartID is the largest hart id the platform configured stacks
	// and regions for. Zero means single core. Anything above it is a
	// fatal configuration defect and parks.
	MaxHartID uint

	// HartIDFromBoot selects the supervisor/firmware handoff protocol
	// where argument 0 carries the hart id; otherwise the id is read
	// from hardware.
	HartIDFromBoot bool

	// MPHook is the election policy: exactly one hart must see true
	// and do global memory init. Nil gets DefaultMPHook. Harts that
	// see false proceed straight to trap setup and the entry point
	// once released.
	MPHook func(m hart.Machine, hartid uint) bool

	// PreInit runs only on the elected hart, strictly before section
	// init. It must not touch any statically allocated global; their
	// memory is not defined yet.
	PreInit func()

	// Entry is the user entry point. It receives the three boot words
	// verbatim and must never return.
	Entry func(a0, a1, a2 uintptr)

	Sections Sections

	// TrapBase is the trap entry address written to the trap-vector
	// register, together with the dispatch mode and submode. In
	// ModeClic HandlerTableBase is written to the controller's
	// vector-table base register as well, and hardware vectoring is
	// switched on through Controller when one is supplied.
	TrapBase         uintptr
	Mode             hart.TrapMode
	Sub              hart.SubMode
	HandlerTableBase uintptr
	Controller       *clic.Controller
}

// DefaultMPHook elects hart 0. Every other hart sits in the low-power
// wait state until something out of band (a later interrupt) releases
// it; this sequencer never does.
func DefaultMPHook(m hart.Machine, hartid uint) bool {
	if hartid == 0 {
		return true
	}
	for {
		m.Wait()
	}
}

// Boot is the reset sequence: hart identification, election, pre-init,
// section init, trap-vector programming, handoff. One pass, no
// re-entry, no recoverable errors; precondition violations park the
// hart. The three boot words pass through to the entry point verbatim.
func Boot(cfg *BootConfig, a0, a1, a2 uintptr) {
	m := cfg.Mach

	hartid := m.HartID()
	if cfg.HartIDFromBoot {
		hartid = uint(a0)
	}
	if hartid > cfg.MaxHartID {
		trust.Errorf("%s", beacon.EncodePark(uint8(hartid), parkBadHartID))
		m.Park()
	}

	hook := cfg.MPHook
	if hook == nil {
		hook = DefaultMPHook
	}
	if hook(m, hartid) {
		if cfg.PreInit != nil {
			cfg.PreInit()
		}
		ZeroRange(cfg.Sections.BSSStart, cfg.Sections.BSSEnd)
		CopyRange(cfg.Sections.DataStart, cfg.Sections.DataEnd, cfg.Sections.DataLoad)
	}

	setupTraps(cfg)

	cfg.Entry(a0, a1, a2)

	// the entry point contract is a diverging function; getting here
	// is a configuration defect
	trust.Errorf("%s", beacon.EncodePark(uint8(hartid), parkEntryReturned))
	m.Park()
}

// setupTraps programs the trap-vector control register, and in
// controller-vectored mode the handler-table base and the global
// vectoring enable.
func setupTraps(cfg *BootConfig) {
	cfg.Mach.SetTrapVector(cfg.TrapBase, cfg.Mode, cfg.Sub)
	if cfg.Mode != hart.ModeClic {
		return
	}
	cfg.Mach.SetHandlerTable(cfg.HandlerTableBase)
	if cfg.Controller != nil {
		cfg.Controller.SetVectoring(true)
	}
}
