package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"fortitude/src/lib/beacon"
	"fortitude/src/tools/vigil"

	tty "github.com/mattn/go-tty"
)

var helpFlag = flag.Bool("h", false, "get usage info")
var ptyFlag = flag.String("p", "", "serial device or pseudo TTY to watch (reads stdin when empty)")
var quietFlag = flag.Bool("q", false, "suppress non-beacon serial traffic")

func main() {
	flag.Parse()
	if *helpFlag {
		flag.Usage()
		os.Exit(0)
	}

	var in io.Reader = os.Stdin
	if *ptyFlag != "" {
		ttyObj, err := tty.OpenDevice(*ptyFlag)
		if err != nil {
			log.Fatalf("%v", err)
		}
		_ = ttyObj.MustRaw()
		defer ttyObj.Close()
		in = ttyObj.Input()
	}

	err := vigil.Scan(in, func(rec *beacon.Record, text string, err error) {
		switch {
		case err != nil:
			log.Printf("damaged beacon line %q: %v", text, err)
		case rec != nil:
			fmt.Print(vigil.Format(rec))
		case !*quietFlag:
			fmt.Println(text)
		}
	})
	if err != nil {
		log.Fatalf("reading serial stream: %v", err)
	}
}
