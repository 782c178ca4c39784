package clic

import "fortitude/src/hardware/mmio"

// Layout is the register geometry for one CLIC hardware generation.
// Two generations are in the field and they are not compatible: the
// same logical fields sit at different widths, the per-interrupt table
// uses a different stride, and the published constants use opposite
// mask polarity. Both are valid; pick the one matching the silicon
// revision (confirm the revision before fixing field widths).
//
// The per-interrupt registers for id i live at
// TableOffset + Stride×i + lane, one byte-wide register per lane
// (pending, enable, attribute, control). cfg is byte-wide at CfgOffset,
// info is a 32-bit word at InfoOffset.
type Layout struct {
	Name string

	CfgOffset  int32
	CfgNVBits  mmio.Field
	CfgNLBits  mmio.Field
	CfgNMBits  mmio.Field
	InfoOffset int32

	InfoNumInterrupt mmio.Field
	InfoVersion      mmio.Field
	InfoCtlBits      mmio.Field
	InfoNumTrigger   mmio.Field

	TableOffset int32
	Stride      int32
	ipLane      int32
	ieLane      int32
	attrLane    int32
	ctlLane     int32

	IPBit    mmio.Field
	IEBit    mmio.Field
	AttrSHV  mmio.Field
	AttrTrig mmio.Field
	AttrMode mmio.Field
	Ctl      mmio.Field
}

func (l *Layout) PendingOffset(id uint32) int32 {
	return l.TableOffset + l.Stride*int32(id) + l.ipLane
}

func (l *Layout) EnableOffset(id uint32) int32 {
	return l.TableOffset + l.Stride*int32(id) + l.ieLane
}

func (l *Layout) AttrOffset(id uint32) int32 {
	return l.TableOffset + l.Stride*int32(id) + l.attrLane
}

func (l *Layout) ControlOffset(id uint32) int32 {
	return l.TableOffset + l.Stride*int32(id) + l.ctlLane
}

// Generation 1 publishes its fields as keep-masks: the mask names the
// bits a read-modify-write preserves, not the bits of the field. The
// raw constants are kept here exactly as documented and converted once.
const (
	g1CfgNLBitsKeep = 0xE1
	g1CfgNMBitsKeep = 0x9F
	g1InfoNumKeep   = 0xFFFFE000
	g1InfoVerKeep   = 0xFFE01FFF
	g1InfoCtlKeep   = 0xFE1FFFFF
	g1InfoTrigKeep  = 0x81FFFFFF
	g1AttrSHVKeep   = 0xFE
	g1AttrTrigKeep  = 0xF9
	g1AttrModeKeep  = 0x3F
	g1PendingKeep   = 0xFE
	g1EnableKeep    = 0xFE
	g1ControlKeep   = 0x00
	g1TableOffset   = 0x1000
	g1Stride        = 0x10
)

// LayoutG1 is the first-generation controller: one byte-wide register
// per word slot, sixteen bytes per interrupt id.
var LayoutG1 = &Layout{
	Name: "clic-g1",

	CfgOffset:  0x0,
	CfgNVBits:  mmio.Flag(0),
	CfgNLBits:  mmio.KeepMask(g1CfgNLBitsKeep, 8, 1),
	CfgNMBits:  mmio.KeepMask(g1CfgNMBitsKeep, 8, 5),
	InfoOffset: 0x4,

	InfoNumInterrupt: mmio.KeepMask(g1InfoNumKeep, 32, 0),
	InfoVersion:      mmio.KeepMask(g1InfoVerKeep, 32, 13),
	InfoCtlBits:      mmio.KeepMask(g1InfoCtlKeep, 32, 21),
	InfoNumTrigger:   mmio.KeepMask(g1InfoTrigKeep, 32, 25),

	TableOffset: g1TableOffset,
	Stride:      g1Stride,
	ipLane:      0x0,
	ieLane:      0x4,
	attrLane:    0x8,
	ctlLane:     0xC,

	IPBit:    mmio.KeepMask(g1PendingKeep, 8, 0),
	IEBit:    mmio.KeepMask(g1EnableKeep, 8, 0),
	AttrSHV:  mmio.KeepMask(g1AttrSHVKeep, 8, 0),
	AttrTrig: mmio.KeepMask(g1AttrTrigKeep, 8, 1),
	AttrMode: mmio.KeepMask(g1AttrModeKeep, 8, 6),
	Ctl:      mmio.KeepMask(g1ControlKeep, 8, 0),
}

// LayoutG2 is the second-generation controller: the four per-interrupt
// byte registers are packed into one word, four bytes per id, and the
// cfg fields are one bit narrower. Its documentation uses plain field
// masks.
var LayoutG2 = &Layout{
	Name: "clic-g2",

	CfgOffset:  0x0,
	CfgNVBits:  mmio.Flag(0),
	CfgNLBits:  mmio.Bits(3, 1),
	CfgNMBits:  mmio.Bits(5, 4),
	InfoOffset: 0x4,

	InfoNumInterrupt: mmio.Bits(12, 0),
	InfoVersion:      mmio.Bits(20, 13),
	InfoCtlBits:      mmio.Bits(24, 21),
	InfoNumTrigger:   mmio.Bits(31, 25),

	TableOffset: 0x1000,
	Stride:      0x4,
	ipLane:      0x0,
	ieLane:      0x1,
	attrLane:    0x2,
	ctlLane:     0x3,

	IPBit:    mmio.Flag(0),
	IEBit:    mmio.Flag(0),
	AttrSHV:  mmio.Flag(0),
	AttrTrig: mmio.Bits(2, 1),
	AttrMode: mmio.Bits(7, 6),
	Ctl:      mmio.Bits(7, 0),
}
