//go:build baremetal

package hart

import (
	"github.com/tinygo-org/tinygo/src/device/riscv"
)

// CSR numbers the device package does not name. mtvt and mnxti are the
// controller-vectored extensions of the trap CSRs.
const (
	csrMtvt  = riscv.CSR(0x307)
	csrMnxti = riscv.CSR(0x345)
)

const mstatusMIE = 1 << 3

// RV32 is the real-silicon Machine. Each privileged operation is a
// single CSR instruction; the function-level cost is what bounds trap
// latency, so nothing here allocates.
type RV32 struct {
	tableBase uintptr
	wrappers  []InterruptHandler
}

// NewRV32 binds the hart to its per-id wrapper slice. The slice backs
// the handler table the controller indexes into; the claim operation
// translates the returned entry address back to an index.
func NewRV32(wrappers []InterruptHandler) *RV32 {
	return &RV32{wrappers: wrappers}
}

func (m *RV32) HartID() uint {
	return uint(riscv.MHARTID.Get())
}

func (m *RV32) Cause() Cause {
	return Cause(riscv.MCAUSE.Get())
}

func (m *RV32) SetCause(c Cause) {
	riscv.MCAUSE.Set(uintptr(c))
}

func (m *RV32) EPC() uintptr {
	return riscv.MEPC.Get()
}

func (m *RV32) SetEPC(pc uintptr) {
	riscv.MEPC.Set(pc)
}

func (m *RV32) SetTrapVector(base uintptr, mode TrapMode, sub SubMode) {
	riscv.MTVEC.Set(base | uintptr(sub)<<2 | uintptr(mode))
}

func (m *RV32) SetHandlerTable(base uintptr) {
	m.tableBase = base
	csrMtvt.Set(base)
}

func (m *RV32) InterruptsOn() {
	riscv.MSTATUS.SetBits(mstatusMIE)
}

func (m *RV32) InterruptsOff() {
	riscv.MSTATUS.ClearBits(mstatusMIE)
}

// ClaimNext issues the mnxti read-and-set: the CSR access atomically
// clears the winning interrupt's pending bit and sets mstatus.MIE. The
// returned value is the address of the winning handler-table entry, or
// zero when nothing is pending.
func (m *RV32) ClaimNext() InterruptHandler {
	addr := riscv.AsmFull("csrrsi {}, 0x345, 8", map[string]interface{}{})
	if addr == 0 {
		return nil
	}
	return m.wrappers[(addr-m.tableBase)/4]
}

func (m *RV32) Wait() {
	riscv.Asm("wfi")
}

// Park disables interrupt delivery and holds the hart in wfi forever.
// A debugger can still attach and see where it stopped.
func (m *RV32) Park() {
	riscv.MSTATUS.ClearBits(mstatusMIE)
	for {
		riscv.Asm("wfi")
	}
}

var _ Machine = (*RV32)(nil)
