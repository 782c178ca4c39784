package rt

import (
	"testing"
	"unsafe"
)

// The trampoline stores registers at consecutive word offsets in the
// frameOrder sequence. If a field moves, the assembly and this struct
// silently disagree, so the offsets are pinned here.
func TestFrameLayout(t *testing.T) {
	var f TrapFrame
	offsets := []uintptr{
		unsafe.Offsetof(f.RA), unsafe.Offsetof(f.T0),
		unsafe.Offsetof(f.T1), unsafe.Offsetof(f.T2),
		unsafe.Offsetof(f.A0), unsafe.Offsetof(f.A1),
		unsafe.Offsetof(f.A2), unsafe.Offsetof(f.A3),
		unsafe.Offsetof(f.A4), unsafe.Offsetof(f.A5),
		unsafe.Offsetof(f.A6), unsafe.Offsetof(f.A7),
		unsafe.Offsetof(f.T3), unsafe.Offsetof(f.T4),
		unsafe.Offsetof(f.T5), unsafe.Offsetof(f.T6),
		unsafe.Offsetof(f.Cause), unsafe.Offsetof(f.EPC),
	}
	if len(offsets) != FrameWords {
		t.Fatalf("frame has %d words, offset list has %d", FrameWords, len(offsets))
	}
	for i, off := range offsets {
		if want := uintptr(i) * wordBytes; off != want {
			t.Errorf("%s at offset %d, want %d", frameOrder[i], off, want)
		}
	}
}

func TestFrameWords(t *testing.T) {
	f := TrapFrame{RA: 0x11, T6: 0x22, Cause: 0x33, EPC: 0x44}
	w := f.Words()
	if len(w) != FrameWords {
		t.Fatalf("got %d words, want %d", len(w), FrameWords)
	}
	if w[0] != 0x11 || w[15] != 0x22 || w[16] != 0x33 || w[17] != 0x44 {
		t.Errorf("words out of save order: %x", w)
	}
}
