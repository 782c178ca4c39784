// fastpath runs the whole boot and claim-loop dispatch path on a
// simulated hart, so the runtime can be watched on a host with no
// board attached. A real platform would differ only in the Machine
// implementation and in where the interrupts come from.
package main

import (
	"sync"

	"fortitude/src/hardware/clic"
	"fortitude/src/hardware/clint"
	"fortitude/src/hardware/mmio"
	"fortitude/src/hart"
	"fortitude/src/lib/trust"
	"fortitude/src/rt"
)

const (
	uartIRQ  = 1
	timerIRQ = 3
)

var machine *hart.Sim
var timer *clint.Block

func main() {
	machine = hart.NewSim(0, clic.LayoutG2, 8, 4)
	timer = clint.New(mmio.NewWindow(mmio.NewRAMStore(0xC000)))

	cfg := &rt.BootConfig{
		Mach:             machine,
		Entry:            entry,
		PreInit:          func() { trust.Infof("pre-init on the elected hart") },
		TrapBase:         0x8000_0000,
		Mode:             hart.ModeClic,
		Sub:              hart.SubFastClaim,
		HandlerTableBase: 0x8000_1000,
		Controller:       machine.Controller(),
	}
	// the simulated Park ends its goroutine, so the boot sequence runs
	// on one of its own and main waits for the hart to stop
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		rt.Boot(cfg, 0, 0, 0)
	}()
	wg.Wait()
	trust.Infof("hart parked: %v", machine.Parked())
}

func entry(a0, a1, a2 uintptr) {
	trust.Infof("entry point reached, boot words %x %x %x", a0, a1, a2)

	c := machine.Controller()
	trust.Infof("controller: %d interrupts, %d level bits, version %d",
		c.NumInterrupts(), c.CtlBits(), c.Version())

	machine.Bind(uartIRQ, onUART)
	machine.Bind(timerIRQ, onTimer)
	c.SetTrigger(uartIRQ, clic.EdgePositive)
	c.SetLevel(uartIRQ, 0x3)
	c.SetEnabled(uartIRQ, true)
	c.SetTrigger(timerIRQ, clic.LevelPositive)
	c.SetLevel(timerIRQ, 0xF)
	c.SetEnabled(timerIRQ, true)

	timer.SetDeadlineIn(0, 0x100)
	trust.Infof("timer armed for tick %x", timer.Deadline(0))

	// both lines fire before the hart takes the trap; the claim loop
	// drains them in level order, timer first
	machine.Post(uartIRQ)
	machine.Post(timerIRQ)
	machine.Raise(hart.Interrupt(timerIRQ), 0x8000_0200)

	n := rt.FastTrap(machine)
	trust.Infof("drained %d claims, cause/epc restored to %x/%x",
		n, uint32(machine.Cause()), machine.EPC())

	machine.Park()
}

func onUART() {
	trust.Infof("uart interrupt claimed")
}

func onTimer() {
	trust.Infof("timer interrupt claimed at tick %x", timer.Time())
	timer.SetDeadlineIn(0, 0x100)
}
