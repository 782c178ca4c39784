// Package vectorgen turns a handler manifest into interrupt
// vector-table source. The manifest is one handler name per line, in
// interrupt id order; an empty line or "-" leaves that id routed to
// the default handler. Device builds get an assembly jump table for
// the controller's vector-table base register, simulation builds get a
// Go table that binds the same names onto a simulated hart.
package vectorgen

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Manifest is the parsed handler list, index == interrupt id.
type Manifest struct {
	Names []string // "" means unassigned
}

// Parse reads the manifest. Lines starting with # are comments. A
// handler name must be a plain identifier since it becomes both an
// assembly symbol and a Go expression.
func Parse(r io.Reader) (*Manifest, error) {
	sc := bufio.NewScanner(r)
	m := &Manifest{}
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "#") {
			continue
		}
		if line == "" || line == "-" {
			m.Names = append(m.Names, "")
			continue
		}
		if !identifier(line) {
			return nil, fmt.Errorf("line %d: %q is not a usable handler name", lineNo, line)
		}
		m.Names = append(m.Names, line)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(m.Names) == 0 {
		return nil, fmt.Errorf("manifest is empty")
	}
	return m, nil
}

func identifier(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// EmitAsm writes the device-build jump table: one word per id pointing
// at a claim wrapper, wrappers after the table. align is the log2 byte
// alignment the vector-table base register requires.
func (m *Manifest) EmitAsm(w io.Writer, align int) error {
	if _, err := fmt.Fprint(w, warn); err != nil {
		return err
	}
	fmt.Fprintf(w, asmTableHead, align)
	for id, name := range m.Names {
		if name == "" {
			fmt.Fprintf(w, asmTableDefault, id)
			continue
		}
		fmt.Fprintf(w, asmTableEntry, id, name)
	}
	for id, name := range m.Names {
		if name == "" {
			continue
		}
		fmt.Fprintf(w, asmWrapper, id, name, id, name, name)
	}
	return nil
}

// EmitGo writes the simulation-build table: a function that binds each
// named handler onto a simulated hart, same ids as the device table.
func (m *Manifest) EmitGo(w io.Writer, pkg string) error {
	if _, err := fmt.Fprint(w, warn); err != nil {
		return err
	}
	fmt.Fprintf(w, goHead, pkg)
	for id, name := range m.Names {
		if name == "" {
			continue
		}
		fmt.Fprintf(w, goBind, id, name)
	}
	fmt.Fprint(w, goTail)
	return nil
}

const warn = `// DO NOT EDIT! This file is machine generated by vectorgen and your
// changes will be overwritten.

`

const asmTableHead = `	.section .trap.table
	.align %d
	.global interrupt_vector_table
interrupt_vector_table:
`

const asmTableEntry = `	.word wrap_%d_%s
`

const asmTableDefault = `	.word default_interrupt_wrapper // id %d unassigned
`

const asmWrapper = `
	.section .trap.wrappers
	.global wrap_%d_%s
wrap_%d_%s:
	j %s
`

const goHead = `package %s

import "fortitude/src/hart"

// BindInterrupts installs the generated handler table on a simulated
// hart. Unassigned ids keep the simulator's no-op binding.
func BindInterrupts(s *hart.Sim) {
`

const goBind = `	s.Bind(%d, %s)
`

const goTail = `}
`
