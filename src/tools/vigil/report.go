// Package vigil is the host side of the beacon protocol. A board that
// takes an unexpected trap emits one beacon line on its UART just
// before parking; vigil watches the serial stream, passes ordinary log
// output through, and turns beacon lines into readable trap reports.
package vigil

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"fortitude/src/lib/beacon"
)

// register names in frame save order, matching the trampoline contract
var regNames = []string{
	"ra", "t0", "t1", "t2",
	"a0", "a1", "a2", "a3", "a4", "a5", "a6", "a7",
	"t3", "t4", "t5", "t6",
	"cause", "epc",
}

// Format renders one decoded beacon record as a multi-line report.
func Format(rec *beacon.Record) string {
	var b strings.Builder
	switch rec.Type {
	case beacon.FrameLine:
		fmt.Fprintf(&b, "hart %d trapped, cause %08x\n", rec.Hart, rec.Cause)
		for i, w := range rec.Words {
			name := fmt.Sprintf("w%d", i)
			if i < len(regNames) {
				name = regNames[i]
			}
			fmt.Fprintf(&b, "  %-5s %08x\n", name, w)
		}
	case beacon.UnhandledLine:
		fmt.Fprintf(&b, "hart %d took interrupt %08x with no handler registered\n",
			rec.Hart, rec.Cause)
	case beacon.ParkLine:
		fmt.Fprintf(&b, "hart %d parked, reason %d\n", rec.Hart, rec.Cause)
	default:
		fmt.Fprintf(&b, "hart %d sent unknown beacon type %d\n", rec.Hart, rec.Type)
	}
	return b.String()
}

// Handler receives each line of serial traffic. Beacon lines arrive
// decoded through rec; everything else arrives with rec nil and the
// raw line in text. A decode error on a beacon-shaped line is reported
// through err with the damaged line in text.
type Handler func(rec *beacon.Record, text string, err error)

// Scan reads the serial stream line by line until EOF or a read error,
// feeding every line to h. CR is stripped so raw-mode terminals and
// cooked logs look the same.
func Scan(r io.Reader, h Handler) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if !beacon.IsBeaconLine(line) {
			h(nil, line, nil)
			continue
		}
		rec, err := beacon.Decode(line)
		h(rec, line, err)
	}
	return sc.Err()
}
