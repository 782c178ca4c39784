package rt

import "fortitude/src/hart"

// NumCoreInterrupts is the static vector table size: one slot per core
// interrupt cause (software, timer, external × the three privilege
// levels, plus the reserved gaps the cause numbering leaves).
const NumCoreInterrupts = 12

// Vector is one vector table slot: either a handler or reserved.
// There is no sentinel value to misdispatch through; a reserved slot
// simply has nothing to call and routes to the default handler.
type Vector struct {
	h hart.InterruptHandler
}

// Handler makes a dispatchable slot. A nil handler is the same as
// Reserved.
func Handler(h hart.InterruptHandler) Vector {
	return Vector{h: h}
}

// Reserved is the slot for cause codes the hardware never raises.
func Reserved() Vector {
	return Vector{}
}

func (v Vector) reserved() bool {
	return v.h == nil
}

// VectorTable is the static dispatch table: populated once at startup,
// read-only afterward, shared by every hart.
type VectorTable [NumCoreInterrupts]Vector

// CoreHandlers is the explicit registration surface for the static
// table. Leave a field nil and that cause routes to the default
// handler.
type CoreHandlers struct {
	UserSoft           hart.InterruptHandler
	SupervisorSoft     hart.InterruptHandler
	MachineSoft        hart.InterruptHandler
	UserTimer          hart.InterruptHandler
	SupervisorTimer    hart.InterruptHandler
	MachineTimer       hart.InterruptHandler
	UserExternal       hart.InterruptHandler
	SupervisorExternal hart.InterruptHandler
	MachineExternal    hart.InterruptHandler
}

// Table builds the immutable vector table. Cause codes 2, 6 and 10 are
// reserved by the hardware numbering and stay that way.
func (c CoreHandlers) Table() VectorTable {
	return VectorTable{
		0:  Handler(c.UserSoft),
		1:  Handler(c.SupervisorSoft),
		2:  Reserved(),
		3:  Handler(c.MachineSoft),
		4:  Handler(c.UserTimer),
		5:  Handler(c.SupervisorTimer),
		6:  Reserved(),
		7:  Handler(c.MachineTimer),
		8:  Handler(c.UserExternal),
		9:  Handler(c.SupervisorExternal),
		10: Reserved(),
		11: Handler(c.MachineExternal),
	}
}
