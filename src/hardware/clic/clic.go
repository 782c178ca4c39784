// Package clic models the core-local interrupt controller: a global
// configuration register, a capability register, and a table of
// per-interrupt pending/enable/attribute/control registers indexed by
// interrupt id. The indexed design means there is no software lookup
// table; any id is reachable in O(1) from base + stride×id.
package clic

import "fortitude/src/hardware/mmio"

// Trigger is the attribute sub-field combining trigger mode and
// polarity, encoded exactly as the hardware does: bit 0 edge, bit 1
// negative.
type Trigger uint8

const (
	LevelPositive Trigger = 0
	EdgePositive  Trigger = 1
	LevelNegative Trigger = 2
	EdgeNegative  Trigger = 3
)

// PrivMode is the privilege mode an interrupt is taken in.
type PrivMode uint8

const (
	PrivUser       PrivMode = 0
	PrivSupervisor PrivMode = 1
	PrivMachine    PrivMode = 3
)

const ctlRegWidth = 8

// Controller is safe, bit-exact access to one CLIC instance. It owns
// its register window exclusively; only the hart that owns the
// controller may mutate it. The capability register is read once at
// construction; the interrupt count and the implemented control-bit
// width are configuration-time constants.
type Controller struct {
	win     mmio.Window
	lay     *Layout
	nint    uint32
	ctlBits uint
	version uint32
}

// New reads the capability register and returns the controller handle.
func New(win mmio.Window, lay *Layout) *Controller {
	return &Controller{
		win:     win,
		lay:     lay,
		nint:    win.Read(lay.InfoOffset, lay.InfoNumInterrupt),
		ctlBits: uint(win.Read(lay.InfoOffset, lay.InfoCtlBits)),
		version: win.Read(lay.InfoOffset, lay.InfoVersion),
	}
}

// NumInterrupts is the interrupt count the hardware reported. Ids must
// satisfy 0 <= id < NumInterrupts(); out-of-range ids are a caller
// contract violation.
func (c *Controller) NumInterrupts() uint32 { return c.nint }

// CtlBits is how many upper bits of each per-interrupt control
// register the hardware implements (clicintctlbits).
func (c *Controller) CtlBits() uint { return c.ctlBits }

func (c *Controller) Version() uint32 { return c.version }

// NumTriggers is how many of the programmable trigger slots the
// hardware implements.
func (c *Controller) NumTriggers() uint32 {
	return c.win.Read(c.lay.InfoOffset, c.lay.InfoNumTrigger)
}

func (c *Controller) Layout() *Layout { return c.lay }

// Vectoring enables or disables hardware vectoring in the global
// configuration register.
func (c *Controller) SetVectoring(on bool) {
	c.win.WriteByte(c.lay.CfgOffset, c.lay.CfgNVBits, boolByte(on))
}

func (c *Controller) Vectoring() bool {
	return c.win.ReadByte(c.lay.CfgOffset, c.lay.CfgNVBits) != 0
}

// SetLevelBits programs how many control bits are interpreted as level
// rather than priority. The value written must stay consistent with
// CtlBits; the hardware ignores excess bits.
func (c *Controller) SetLevelBits(n uint8) {
	c.win.WriteByte(c.lay.CfgOffset, c.lay.CfgNLBits, n)
}

func (c *Controller) LevelBits() uint8 {
	return c.win.ReadByte(c.lay.CfgOffset, c.lay.CfgNLBits)
}

// SetModeBits programs how many privilege-mode bits the per-interrupt
// attribute mode field uses.
func (c *Controller) SetModeBits(n uint8) {
	c.win.WriteByte(c.lay.CfgOffset, c.lay.CfgNMBits, n)
}

func (c *Controller) ModeBits() uint8 {
	return c.win.ReadByte(c.lay.CfgOffset, c.lay.CfgNMBits)
}

func (c *Controller) Pending(id uint32) bool {
	return c.win.ReadByte(c.lay.PendingOffset(id), c.lay.IPBit) != 0
}

// SetPending sets or clears the pending bit. Writing the bit of a
// level-triggered source is only meaningful while the line is asserted;
// that is hardware behavior, not checked here.
func (c *Controller) SetPending(id uint32, on bool) {
	c.win.WriteByte(c.lay.PendingOffset(id), c.lay.IPBit, boolByte(on))
}

func (c *Controller) Enabled(id uint32) bool {
	return c.win.ReadByte(c.lay.EnableOffset(id), c.lay.IEBit) != 0
}

func (c *Controller) SetEnabled(id uint32, on bool) {
	c.win.WriteByte(c.lay.EnableOffset(id), c.lay.IEBit, boolByte(on))
}

func (c *Controller) Trigger(id uint32) Trigger {
	return Trigger(c.win.ReadByte(c.lay.AttrOffset(id), c.lay.AttrTrig))
}

func (c *Controller) SetTrigger(id uint32, tr Trigger) {
	c.win.WriteByte(c.lay.AttrOffset(id), c.lay.AttrTrig, uint8(tr))
}

func (c *Controller) PrivMode(id uint32) PrivMode {
	return PrivMode(c.win.ReadByte(c.lay.AttrOffset(id), c.lay.AttrMode))
}

func (c *Controller) SetPrivMode(id uint32, m PrivMode) {
	c.win.WriteByte(c.lay.AttrOffset(id), c.lay.AttrMode, uint8(m))
}

// HWVectored is the per-interrupt selective-hardware-vectoring bit.
func (c *Controller) HWVectored(id uint32) bool {
	return c.win.ReadByte(c.lay.AttrOffset(id), c.lay.AttrSHV) != 0
}

func (c *Controller) SetHWVectored(id uint32, on bool) {
	c.win.WriteByte(c.lay.AttrOffset(id), c.lay.AttrSHV, boolByte(on))
}

// SetLevel writes the interrupt's level/priority value. Only the upper
// CtlBits bits of the control register are implemented, so the value is
// aligned there; a level wider than CtlBits is truncated. Never assume
// full 8-bit resolution.
func (c *Controller) SetLevel(id uint32, level uint8) {
	raw := level << (ctlRegWidth - c.ctlBits)
	c.win.WriteByte(c.lay.ControlOffset(id), c.lay.Ctl, raw)
}

// Level reads back the implemented level bits, right-aligned.
func (c *Controller) Level(id uint32) uint8 {
	raw := c.win.ReadByte(c.lay.ControlOffset(id), c.lay.Ctl)
	return raw >> (ctlRegWidth - c.ctlBits)
}

func boolByte(on bool) uint8 {
	if on {
		return 1
	}
	return 0
}
