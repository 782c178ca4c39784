package mmio

// A Store is the backing for one memory-mapped register window. Every
// call is a fresh transaction against the backing; a Store never caches
// a value between calls because the registers behind it have side
// effects (pending-bit clears, state changes) that must not be elided.
type Store interface {
	Word(off int32) uint32
	SetWord(off int32, v uint32)
	Byte(off int32) uint8
	SetByte(off int32, v uint8)
}

// Field describes a sub-range of a register as an in-place mask plus
// the shift that right-aligns the field value. Mask and shift must
// agree: Mask>>Shift<<Shift == Mask and bit 0 of Mask>>Shift is set.
// That agreement is a construction-time requirement checked by the
// layout tests, not at runtime.
type Field struct {
	Mask  uint32
	Shift uint
}

// Bits builds a field covering bit hi down to bit lo, inclusive.
func Bits(hi, lo uint) Field {
	width := hi - lo + 1
	return Field{
		Mask:  ((uint32(1) << width) - 1) << lo,
		Shift: lo,
	}
}

// Flag is a single-bit field.
func Flag(n uint) Field {
	return Bits(n, n)
}

// KeepMask converts a generation-1 style keep-mask (the bits the write
// preserves) into the equivalent in-place field. width is the register
// width in bits, shift the field's low bit position.
func KeepMask(keep uint32, width uint, shift uint) Field {
	full := ^uint32(0)
	if width < 32 {
		full = (uint32(1) << width) - 1
	}
	return Field{Mask: full &^ keep, Shift: shift}
}

// Width reports the number of bits the field covers.
func (f Field) Width() uint {
	w := uint(0)
	for m := f.Mask >> f.Shift; m&1 == 1; m >>= 1 {
		w++
	}
	return w
}

// WellFormed is the mask/shift agreement contract. Malformed fields
// are caller errors, never runtime checks; layout tests call this over
// every field they ship.
func (f Field) WellFormed() bool {
	if f.Mask == 0 {
		return false
	}
	aligned := f.Mask >> f.Shift
	return aligned<<f.Shift == f.Mask && aligned&1 == 1
}

// A Window is masked read/modify/write access to one controller's
// register range. Offsets are relative to the window base and must stay
// inside the controller's documented range; that is the caller's
// contract, not a runtime check. Each Window owns its Store exclusively.
type Window struct {
	store Store
}

func NewWindow(s Store) Window {
	return Window{store: s}
}

// Read returns the field value right-aligned at bit 0.
func (w Window) Read(off int32, f Field) uint32 {
	return (w.store.Word(off) & f.Mask) >> f.Shift
}

// Write replaces exactly the bits the field covers: the old bits are
// cleared first, then the shifted value is OR-ed in. Bits of v outside
// the field width are dropped.
func (w Window) Write(off int32, f Field, v uint32) {
	reg := w.store.Word(off)
	reg = (reg &^ f.Mask) | ((v << f.Shift) & f.Mask)
	w.store.SetWord(off, reg)
}

// ReadByte is the byte-granularity variant of Read.
func (w Window) ReadByte(off int32, f Field) uint8 {
	return uint8((uint32(w.store.Byte(off)) & f.Mask) >> f.Shift)
}

// WriteByte is the byte-granularity variant of Write.
func (w Window) WriteByte(off int32, f Field, v uint8) {
	reg := uint32(w.store.Byte(off))
	reg = (reg &^ f.Mask) | ((uint32(v) << f.Shift) & f.Mask)
	w.store.SetByte(off, uint8(reg))
}

// Word and SetWord expose whole-register access for the cases where a
// register is one field wide (timer compare values and the like).
func (w Window) Word(off int32) uint32 {
	return w.store.Word(off)
}

func (w Window) SetWord(off int32, v uint32) {
	w.store.SetWord(off, v)
}
