package rt

import (
	"testing"

	"fortitude/src/hardware/clic"
	"fortitude/src/hart"
	"fortitude/src/lib/beacon"
)

func TestDefaultExceptionHandler(t *testing.T) {
	buf := captureLog(t)
	s := hart.NewSim(1, clic.LayoutG1, 4, 4)
	f := &TrapFrame{
		RA:    0x100,
		A0:    0x200,
		Cause: uintptr(hart.Exception(5)),
		EPC:   0x8000_0040,
	}
	h := DefaultExceptionHandler(s)
	runHart(t, func() { h(f) })

	if !s.Parked() {
		t.Errorf("exception handler did not park the hart")
	}
	rec := decodeBeacon(t, buf)
	if rec.Type != beacon.FrameLine || rec.Hart != 1 {
		t.Errorf("wrong beacon header: %+v", rec)
	}
	if rec.Cause != uint32(hart.Exception(5)) {
		t.Errorf("cause %x, want %x", rec.Cause, uint32(hart.Exception(5)))
	}
	t.Logf("expecting to see the full frame ride the beacon line")
	if len(rec.Words) != FrameWords {
		t.Fatalf("beacon carries %d words, want %d", len(rec.Words), FrameWords)
	}
	if rec.Words[0] != 0x100 || rec.Words[4] != 0x200 || rec.Words[17] != 0x8000_0040 {
		t.Errorf("frame words mangled: %x", rec.Words)
	}
}

func TestDefaultInterruptHandler(t *testing.T) {
	buf := captureLog(t)
	s := hart.NewSim(2, clic.LayoutG1, 4, 4)
	s.Raise(hart.Interrupt(9), 0x3000)
	h := DefaultInterruptHandler(s)
	runHart(t, func() { h() })

	if !s.Parked() {
		t.Errorf("unhandled interrupt did not park the hart")
	}
	rec := decodeBeacon(t, buf)
	if rec.Type != beacon.UnhandledLine || rec.Hart != 2 {
		t.Errorf("wrong beacon header: %+v", rec)
	}
	if rec.Cause != uint32(hart.Interrupt(9)) {
		t.Errorf("cause %x, want %x", rec.Cause, uint32(hart.Interrupt(9)))
	}
}
