// Package beacon is the line protocol the default trap handlers speak
// over the UART. A core that hangs in the default handler is silent on
// hardware with no console, so just before parking it emits one beacon
// line; a host attached to the serial port (see tools/vigil) can decode
// it and see the trap frame that stopped the core. Lines are pure hex
// with a checksum so line noise cannot fake a report.
package beacon

import (
	"errors"
	"fmt"
	"strconv"
)

// each line starts with this so the monitor can pick beacons out of
// interleaved log output
const Sentinel = ';'

type LineType int

const (
	FrameLine     LineType = 0 // full trap frame dump
	UnhandledLine LineType = 1 // interrupt with no registered handler
	ParkLine      LineType = 2 // hart diverted to the park state
)

func (lt LineType) String() string {
	switch lt {
	case FrameLine:
		return "FrameLine"
	case UnhandledLine:
		return "UnhandledLine"
	case ParkLine:
		return "ParkLine"
	}
	return "unknown"
}

// Record is one decoded beacon line.
type Record struct {
	Type  LineType
	Hart  uint8
	Cause uint32
	Words []uint32 // register words, FrameLine only
}

// EncodeFrame builds the frame-dump line: type, word count, hart,
// cause, then each register word, then the checksum.
func EncodeFrame(hart uint8, cause uint32, words []uint32) string {
	s := fmt.Sprintf("%c%02X%02X%02X%08X", Sentinel, FrameLine, len(words), hart, cause)
	for _, w := range words {
		s += fmt.Sprintf("%08X", w)
	}
	return s + fmt.Sprintf("%02X", checksum(s))
}

// EncodeUnhandled builds the no-handler-registered line.
func EncodeUnhandled(hart uint8, cause uint32) string {
	s := fmt.Sprintf("%c%02X%02X%02X%08X", Sentinel, UnhandledLine, 0, hart, cause)
	return s + fmt.Sprintf("%02X", checksum(s))
}

// EncodePark builds the parked-hart line. cause carries the reason
// code the sequencer parked with.
func EncodePark(hart uint8, cause uint32) string {
	s := fmt.Sprintf("%c%02X%02X%02X%08X", Sentinel, ParkLine, 0, hart, cause)
	return s + fmt.Sprintf("%02X", checksum(s))
}

// IsBeaconLine is the cheap filter the monitor applies before trying a
// full decode.
func IsBeaconLine(line string) bool {
	return len(line) > 0 && line[0] == Sentinel
}

// Decode parses and checksums one line. Anything that does not survive
// the checksum is an error, never a partial record.
func Decode(line string) (*Record, error) {
	if !IsBeaconLine(line) {
		return nil, errors.New("not a beacon line")
	}
	// sentinel + type + count + hart + cause + checksum
	const minLen = 1 + 2 + 2 + 2 + 8 + 2
	if len(line) < minLen {
		return nil, fmt.Errorf("beacon line too short: %d bytes", len(line))
	}
	sum, err := hexByte(line[len(line)-2:])
	if err != nil {
		return nil, err
	}
	if checksum(line[:len(line)-2]) != sum {
		return nil, errors.New("bad checksum")
	}
	t, err := hexByte(line[1:3])
	if err != nil {
		return nil, err
	}
	count, err := hexByte(line[3:5])
	if err != nil {
		return nil, err
	}
	hart, err := hexByte(line[5:7])
	if err != nil {
		return nil, err
	}
	cause, err := hexWord(line[7:15])
	if err != nil {
		return nil, err
	}
	if len(line) != minLen+int(count)*8 {
		return nil, fmt.Errorf("beacon line length %d does not match word count %d", len(line), count)
	}
	rec := &Record{
		Type:  LineType(t),
		Hart:  hart,
		Cause: cause,
	}
	for i := 0; i < int(count); i++ {
		w, err := hexWord(line[15+i*8 : 15+(i+1)*8])
		if err != nil {
			return nil, err
		}
		rec.Words = append(rec.Words, w)
	}
	return rec, nil
}

// checksum is the two's complement of the byte sum of everything after
// the sentinel; the encoded value rides the last two hex digits.
func checksum(s string) uint8 {
	sum := uint8(0)
	for i := 1; i < len(s); i++ {
		sum += s[i]
	}
	return uint8(0) - sum
}

func hexByte(s string) (uint8, error) {
	v, err := strconv.ParseUint(s, 16, 8)
	if err != nil {
		return 0, fmt.Errorf("bad hex byte %q", s)
	}
	return uint8(v), nil
}

func hexWord(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("bad hex word %q", s)
	}
	return uint32(v), nil
}
