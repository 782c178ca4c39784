package mmio

import "encoding/binary"

// RAMStore is a Store over plain memory, used as the register backing
// for the simulated hart and for tests. Words are little-endian, the
// same byte order the hardware presents, so byte-lane and word access
// to the same register agree.
type RAMStore struct {
	buf      []byte
	accesses int
}

func NewRAMStore(size int32) *RAMStore {
	return &RAMStore{buf: make([]byte, size)}
}

func (r *RAMStore) Word(off int32) uint32 {
	r.accesses++
	return binary.LittleEndian.Uint32(r.buf[off : off+4])
}

func (r *RAMStore) SetWord(off int32, v uint32) {
	r.accesses++
	binary.LittleEndian.PutUint32(r.buf[off:off+4], v)
}

func (r *RAMStore) Byte(off int32) uint8 {
	r.accesses++
	return r.buf[off]
}

func (r *RAMStore) SetByte(off int32, v uint8) {
	r.accesses++
	r.buf[off] = v
}

// Accesses counts every transaction issued against the store. The
// accessor contract says no access is ever cached, so tests can assert
// the exact transaction count.
func (r *RAMStore) Accesses() int {
	return r.accesses
}

var _ Store = (*RAMStore)(nil)
