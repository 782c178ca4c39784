package rt

import "unsafe"

const wordBytes = unsafe.Sizeof(uintptr(0))

// Sections describes the link-produced memory regions the elected hart
// initializes before anything reads a static. The boundary addresses
// come from linker symbols and are consumed read-only. A region may be
// empty (start == end). The data load image never overlaps its runtime
// region; that is the link step's contract.
type Sections struct {
	BSSStart  uintptr
	BSSEnd    uintptr
	DataStart uintptr
	DataEnd   uintptr
	DataLoad  uintptr
}

// ZeroRange writes zero word by word from start up to but excluding
// end. An empty range performs no writes at all.
func ZeroRange(start, end uintptr) {
	for p := start; p < end; p += wordBytes {
		*(*uintptr)(unsafe.Pointer(p)) = 0
	}
}

// CopyRange copies word by word from the load image at src into
// [dst, dstEnd).
func CopyRange(dst, dstEnd, src uintptr) {
	for ; dst < dstEnd; dst, src = dst+wordBytes, src+wordBytes {
		*(*uintptr)(unsafe.Pointer(dst)) = *(*uintptr)(unsafe.Pointer(src))
	}
}
