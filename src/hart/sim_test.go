package hart

import (
	"testing"

	"fortitude/src/hardware/clic"
)

func TestCauseEncoding(t *testing.T) {
	c := Interrupt(7)
	if !c.IsInterrupt() || c.Code() != 7 {
		t.Errorf("interrupt cause decoded as interrupt=%v code=%d", c.IsInterrupt(), c.Code())
	}
	e := Exception(2)
	if e.IsInterrupt() || e.Code() != 2 {
		t.Errorf("exception cause decoded as interrupt=%v code=%d", e.IsInterrupt(), e.Code())
	}
}

func TestClaimPicksHighestLevel(t *testing.T) {
	s := NewSim(0, clic.LayoutG1, 8, 4)
	ctrl := s.Controller()

	var order []uint32
	for _, id := range []uint32{2, 5} {
		id := id
		s.Bind(id, func() { order = append(order, id) })
		ctrl.SetEnabled(id, true)
	}
	ctrl.SetLevel(2, 1)
	ctrl.SetLevel(5, 9)
	s.Post(2)
	s.Post(5)

	for h := s.ClaimNext(); h != nil; h = s.ClaimNext() {
		h()
	}
	if len(order) != 2 || order[0] != 5 || order[1] != 2 {
		t.Errorf("claim order %v, want [5 2]", order)
	}
}

func TestClaimTieBreaksOnLowestID(t *testing.T) {
	s := NewSim(0, clic.LayoutG2, 8, 4)
	ctrl := s.Controller()
	for _, id := range []uint32{1, 6} {
		ctrl.SetEnabled(id, true)
		ctrl.SetLevel(id, 3)
		s.Post(id)
	}
	var got []uint32
	s.Bind(1, func() { got = append(got, 1) })
	s.Bind(6, func() { got = append(got, 6) })
	for h := s.ClaimNext(); h != nil; h = s.ClaimNext() {
		h()
	}
	if len(got) != 2 || got[0] != 1 {
		t.Errorf("tie should go to the lowest id, got %v", got)
	}
}

func TestClaimClearsOnePendingBitAndEnablesInterrupts(t *testing.T) {
	s := NewSim(0, clic.LayoutG1, 4, 2)
	ctrl := s.Controller()
	ctrl.SetEnabled(1, true)
	s.Post(1)
	s.Post(3) // pending but not enabled: must survive untouched

	s.InterruptsOff()
	h := s.ClaimNext()
	if h == nil {
		t.Fatalf("expected a claim for id 1")
	}
	if ctrl.Pending(1) {
		t.Errorf("claim did not clear id 1's pending bit")
	}
	if !ctrl.Pending(3) {
		t.Errorf("claim touched id 3, which is not enabled")
	}
	if !s.IntsOn() {
		t.Errorf("claim must re-enable global interrupts as a side effect")
	}
	if s.ClaimNext() != nil {
		t.Errorf("nothing claimable should remain")
	}
}
