// Package trust is the leveled logger used everywhere in the tree. On
// a host it writes to stdout; on a board the sink is whatever UART
// writer the platform installs. Levels are a mask so a caller can turn
// on exactly the combination it wants.
package trust

import (
	"fmt"
	"io"
	"os"
)

type MaskLevel int

const (
	Nothing   MaskLevel = 0x0
	ErrorMask MaskLevel = 0x1
	WarnMask  MaskLevel = 0x2
	InfoMask  MaskLevel = 0x4
	DebugMask MaskLevel = 0x8
	fatalMask MaskLevel = 0x80
)

var level = fatalMask | ErrorMask | WarnMask | InfoMask | DebugMask

var sink io.Writer = os.Stdout

var exit = func(code int) { os.Exit(code) }

// SetOutput installs the writer log lines go to and returns the old
// one. Platform code points this at the UART before enabling traps.
func SetOutput(w io.Writer) io.Writer {
	old := sink
	sink = w
	return old
}

// SetExit replaces what Fatalf does after logging. A bare-metal build
// installs a park routine here; the default is os.Exit.
func SetExit(f func(code int)) {
	exit = f
}

// SetLevel sets the error mask directly. Pass something like
// ErrorMask|DebugMask to control exactly what gets printed. It returns
// the previous mask.
func SetLevel(mask MaskLevel) MaskLevel {
	if mask&0xf == 0 {
		fmt.Fprintf(sink, " WARN: trust.SetLevel is turning off log messages\n")
	}
	result := Nothing
	switch {
	case mask&ErrorMask > 0:
		result |= ErrorMask
		fallthrough
	case mask&WarnMask > 0:
		result |= WarnMask
		fallthrough
	case mask&InfoMask > 0:
		result |= InfoMask
		fallthrough
	case mask&DebugMask > 0:
		result |= DebugMask
	}
	r := level & 0xf
	level = result | fatalMask
	return r
}

func Level() MaskLevel {
	return level
}

func logf(l MaskLevel, format string, params ...interface{}) {
	if level&l == 0 {
		return
	}
	switch {
	case l&ErrorMask > 0:
		fmt.Fprintf(sink, "ERROR:")
	case l&WarnMask > 0:
		fmt.Fprintf(sink, " WARN:")
	case l&InfoMask > 0:
		fmt.Fprintf(sink, " INFO:")
	case l&DebugMask > 0:
		fmt.Fprintf(sink, "DEBUG:")
	case l&fatalMask > 0:
		fmt.Fprintf(sink, "FATAL:")
	}
	if len(format) == 0 {
		format = "\n"
	} else if format[len(format)-1] != '\n' {
		format += "\n"
	}
	fmt.Fprintf(sink, format, params...)
}

//Fatalf prints the given log message (format + params) and then exits
//through the installed exit routine. Fatalf is not maskable.
func Fatalf(exitCode int, format string, params ...interface{}) {
	logf(fatalMask, format, params...)
	exit(exitCode)
}

//Errorf prints the given log message (format + params) using the ErrorMask level.
func Errorf(format string, params ...interface{}) {
	logf(ErrorMask, format, params...)
}

//Warnf prints the given log message (format + params) using the WarnMask level.
func Warnf(format string, params ...interface{}) {
	logf(WarnMask, format, params...)
}

//Infof prints the given log message (format + params) using the InfoMask level.
func Infof(format string, params ...interface{}) {
	logf(InfoMask, format, params...)
}

//Debugf prints the given log message (format + params) using the DebugMask level.
func Debugf(format string, params ...interface{}) {
	logf(DebugMask, format, params...)
}
