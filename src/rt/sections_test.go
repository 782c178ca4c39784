package rt

import (
	"testing"
	"unsafe"
)

// sliceRange hands back the [start, end) addresses of a word slice so
// the section routines can run over host memory.
func sliceRange(s []uintptr) (uintptr, uintptr) {
	start := uintptr(unsafe.Pointer(&s[0]))
	return start, start + uintptr(len(s))*wordBytes
}

func TestZeroRange(t *testing.T) {
	buf := make([]uintptr, 8)
	for i := range buf {
		buf[i] = 0xDEADBEEF
	}
	// zero the middle, leave one guard word at each end
	start, _ := sliceRange(buf[1:7])
	_, end := sliceRange(buf[1:7])
	ZeroRange(start, end)

	t.Logf("expecting to see guards untouched and the middle zeroed")
	if buf[0] != 0xDEADBEEF || buf[7] != 0xDEADBEEF {
		t.Errorf("guard words were touched: %x %x", buf[0], buf[7])
	}
	for i := 1; i < 7; i++ {
		if buf[i] != 0 {
			t.Errorf("word %d not zeroed: %x", i, buf[i])
		}
	}
}

func TestZeroRangeIdempotent(t *testing.T) {
	buf := []uintptr{5, 6, 7, 8}
	start, end := sliceRange(buf)
	ZeroRange(start, end)
	ZeroRange(start, end)
	for i, w := range buf {
		if w != 0 {
			t.Errorf("word %d not zero after double clear: %x", i, w)
		}
	}
}

func TestZeroRangeEmpty(t *testing.T) {
	buf := []uintptr{1, 2, 3}
	start, _ := sliceRange(buf)
	ZeroRange(start, start)
	for i, w := range buf {
		if w != uintptr(i+1) {
			t.Errorf("empty range wrote to word %d", i)
		}
	}
}

func TestCopyRange(t *testing.T) {
	src := make([]uintptr, 6)
	for i := range src {
		src[i] = uintptr(0x1000 + i)
	}
	dst := make([]uintptr, 8)
	for i := range dst {
		dst[i] = 0xCC
	}

	dstStart, _ := sliceRange(dst[1:7])
	_, dstEnd := sliceRange(dst[1:7])
	srcStart, _ := sliceRange(src)
	CopyRange(dstStart, dstEnd, srcStart)

	if dst[0] != 0xCC || dst[7] != 0xCC {
		t.Errorf("guard words were touched: %x %x", dst[0], dst[7])
	}
	for i := 0; i < 6; i++ {
		if dst[i+1] != src[i] {
			t.Errorf("word %d: got %x, want %x", i, dst[i+1], src[i])
		}
	}
}

func TestCopyRangeEmpty(t *testing.T) {
	src := []uintptr{0xAA}
	dst := []uintptr{0xBB}
	dstStart, _ := sliceRange(dst)
	srcStart, _ := sliceRange(src)
	CopyRange(dstStart, dstStart, srcStart)
	if dst[0] != 0xBB {
		t.Errorf("zero-length copy wrote to the destination: %x", dst[0])
	}
}
