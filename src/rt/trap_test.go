package rt

import (
	"testing"

	"fortitude/src/hardware/clic"
	"fortitude/src/hart"
)

// countingDispatcher builds a dispatcher where every route increments
// its own counter, so a test can assert exactly one handler ran.
func countingDispatcher() (*Dispatcher, *int, []int, *int) {
	exc := 0
	unknown := 0
	slots := make([]int, NumCoreInterrupts)
	bump := func(i int) hart.InterruptHandler {
		return func() { slots[i]++ }
	}
	d := &Dispatcher{
		Exception: func(f *TrapFrame) { exc++ },
		Table: CoreHandlers{
			MachineSoft:     bump(3),
			MachineTimer:    bump(7),
			MachineExternal: bump(11),
		}.Table(),
		Unknown: func() { unknown++ },
	}
	return d, &exc, slots, &unknown
}

func sumOf(slots []int) int {
	n := 0
	for _, s := range slots {
		n += s
	}
	return n
}

func TestTrapException(t *testing.T) {
	d, exc, slots, unknown := countingDispatcher()
	f := &TrapFrame{Cause: uintptr(hart.Exception(5))}
	d.Trap(f)
	if *exc != 1 || sumOf(slots) != 0 || *unknown != 0 {
		t.Errorf("exception cause routed wrong: exc=%d slots=%d unknown=%d",
			*exc, sumOf(slots), *unknown)
	}
}

func TestTrapInterrupt(t *testing.T) {
	d, exc, slots, unknown := countingDispatcher()
	f := &TrapFrame{Cause: uintptr(hart.Interrupt(7))}
	d.Trap(f)
	t.Logf("expecting to see exactly the machine timer handler run")
	if slots[7] != 1 || sumOf(slots) != 1 {
		t.Errorf("slot counts wrong: %v", slots)
	}
	if *exc != 0 || *unknown != 0 {
		t.Errorf("exception or unknown ran for a registered interrupt")
	}
}

func TestTrapReservedSlot(t *testing.T) {
	d, exc, slots, unknown := countingDispatcher()
	for _, code := range []uint32{2, 6, 10} {
		d.Trap(&TrapFrame{Cause: uintptr(hart.Interrupt(code))})
	}
	if *unknown != 3 || sumOf(slots) != 0 || *exc != 0 {
		t.Errorf("reserved causes did not all route to Unknown: unknown=%d", *unknown)
	}
}

func TestTrapUnregisteredSlot(t *testing.T) {
	d, _, slots, unknown := countingDispatcher()
	// slot 0 exists in the table but has no handler bound
	d.Trap(&TrapFrame{Cause: uintptr(hart.Interrupt(0))})
	if *unknown != 1 || sumOf(slots) != 0 {
		t.Errorf("nil slot should route to Unknown: unknown=%d slots=%v", *unknown, slots)
	}
}

func TestTrapOutOfRange(t *testing.T) {
	d, exc, slots, unknown := countingDispatcher()
	d.Trap(&TrapFrame{Cause: uintptr(hart.Interrupt(19))})
	if *unknown != 1 || sumOf(slots) != 0 || *exc != 0 {
		t.Errorf("out of range cause routed wrong: unknown=%d", *unknown)
	}
}

func TestFastTrapDrainsAll(t *testing.T) {
	s := hart.NewSim(0, clic.LayoutG1, 8, 4)
	ran := make([]int, 8)
	for id := uint32(0); id < 8; id++ {
		id := id
		s.Bind(id, func() { ran[id]++ })
	}
	for _, id := range []uint32{1, 4, 6} {
		s.Controller().SetEnabled(id, true)
		s.Controller().SetLevel(id, uint8(id))
		s.Post(id)
	}
	s.Raise(hart.Interrupt(4), 0x8000_0040)

	n := FastTrap(s)
	if n != 3 {
		t.Errorf("drained %d claims, want 3", n)
	}
	for id, c := range ran {
		want := 0
		if id == 1 || id == 4 || id == 6 {
			want = 1
		}
		if c != want {
			t.Errorf("id %d ran %d times, want %d", id, c, want)
		}
	}
	if s.IntsOn() {
		t.Errorf("interrupts still enabled after the drain")
	}
	if s.Cause() != hart.Interrupt(4) || s.EPC() != 0x8000_0040 {
		t.Errorf("cause/epc not restored: %x %x", s.Cause(), s.EPC())
	}
}

func TestFastTrapNothingPending(t *testing.T) {
	s := hart.NewSim(0, clic.LayoutG1, 8, 4)
	s.Raise(hart.Interrupt(0), 0x100)
	if n := FastTrap(s); n != 0 {
		t.Errorf("claimed %d with nothing pending", n)
	}
	if s.IntsOn() {
		t.Errorf("interrupts left enabled")
	}
}

// A handler that traps again overwrites the cause and return-address
// registers. The drain loop must still hand back the original pair.
func TestFastTrapRestoresAfterNestedTrap(t *testing.T) {
	s := hart.NewSim(0, clic.LayoutG2, 8, 4)
	s.Bind(2, func() { s.Raise(hart.Interrupt(9), 0xBAD) })
	s.Controller().SetEnabled(2, true)
	s.Controller().SetLevel(2, 7)
	s.Post(2)
	s.Raise(hart.Interrupt(2), 0x8000_1000)

	FastTrap(s)
	if s.Cause() != hart.Interrupt(2) || s.EPC() != 0x8000_1000 {
		t.Errorf("nested trap leaked into restored state: %x %x", s.Cause(), s.EPC())
	}
}

// The whole path: a controller with four interrupts, one configured
// edge triggered and posted, the claim loop runs exactly that handler
// and nothing else changes.
func TestFastTrapSingleConfigured(t *testing.T) {
	s := hart.NewSim(0, clic.LayoutG1, 4, 4)
	c := s.Controller()
	if c.NumInterrupts() != 4 {
		t.Fatalf("capability reports %d interrupts, want 4", c.NumInterrupts())
	}

	ran := make([]int, 4)
	for id := uint32(0); id < 4; id++ {
		id := id
		s.Bind(id, func() { ran[id]++ })
	}
	c.SetTrigger(2, clic.EdgePositive)
	c.SetLevel(2, 0xF)
	c.SetEnabled(2, true)
	s.Post(2)
	s.Raise(hart.Interrupt(2), 0x2000)

	if n := FastTrap(s); n != 1 {
		t.Errorf("drained %d claims, want 1", n)
	}
	if ran[0] != 0 || ran[1] != 0 || ran[2] != 1 || ran[3] != 0 {
		t.Errorf("wrong handlers ran: %v", ran)
	}
	if c.Pending(2) {
		t.Errorf("claim did not clear the pending bit")
	}
	for _, id := range []uint32{0, 1, 3} {
		if c.Pending(id) || c.Enabled(id) {
			t.Errorf("id %d was disturbed", id)
		}
	}
	if c.Trigger(2) != clic.EdgePositive {
		t.Errorf("trigger configuration was disturbed")
	}
}
