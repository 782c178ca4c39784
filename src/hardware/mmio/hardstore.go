//go:build baremetal

package mmio

import (
	"unsafe"

	"github.com/tinygo-org/tinygo/src/runtime/volatile"
)

// HardStore is a Store over real memory-mapped hardware. It owns its
// base address: exactly one HardStore may exist per controller
// instance, which is what keeps register access single-owner without
// locks. All accesses go through the volatile primitives so they are
// never reordered or elided.
type HardStore struct {
	base uintptr
}

func NewHardStore(base uintptr) *HardStore {
	return &HardStore{base: base}
}

func (h *HardStore) Word(off int32) uint32 {
	return (*volatile.Register32)(unsafe.Pointer(h.base + uintptr(off))).Get()
}

func (h *HardStore) SetWord(off int32, v uint32) {
	(*volatile.Register32)(unsafe.Pointer(h.base + uintptr(off))).Set(v)
}

func (h *HardStore) Byte(off int32) uint8 {
	return (*volatile.Register8)(unsafe.Pointer(h.base + uintptr(off))).Get()
}

func (h *HardStore) SetByte(off int32, v uint8) {
	(*volatile.Register8)(unsafe.Pointer(h.base + uintptr(off))).Set(v)
}

var _ Store = (*HardStore)(nil)
