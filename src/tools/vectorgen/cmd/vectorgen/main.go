package main

import (
	"bufio"
	"flag"
	"log"
	"os"
	"time"

	"fortitude/src/tools/vectorgen"
)

var alignFlag = flag.Int("align", 6, "log2 of the table alignment in bytes")
var goFlag = flag.String("go", "", "emit a Go binding table for this package instead of assembly")

func main() {
	flag.Parse()
	if flag.NArg() < 2 {
		log.Fatalf("unable to process input, expected arguments: " +
			"vectorgen <infile> <outfile>")
	}
	in, err := os.Open(flag.Arg(0))
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	exists := true
	st, err := os.Stat(flag.Arg(1))
	if err != nil {
		_, ok := err.(*os.PathError)
		if !ok {
			log.Fatalf("%v", err)
		}
		exists = false
	}
	var lastGenTime time.Time
	if exists {
		lastGenTime = st.ModTime()
	}
	st, err = os.Stat(flag.Arg(0))
	if err != nil {
		log.Fatalf("stat 0: %v", err)
	}
	lastModTime := st.ModTime()

	log.Printf("last mod time: %s, last gen time: %s", lastModTime, lastGenTime)
	if lastModTime.After(lastGenTime) {
		generate(in, flag.Arg(1))
	}
	os.Exit(0)
}

func generate(fp *os.File, outFilename string) {
	m, err := vectorgen.Parse(fp)
	if err != nil {
		log.Fatalf("parsing manifest: %v", err)
	}
	fp.Close()

	out, err := os.Create(outFilename)
	if err != nil {
		log.Fatalf("%v", err)
	}
	wr := bufio.NewWriter(out)
	if *goFlag != "" {
		err = m.EmitGo(wr, *goFlag)
	} else {
		err = m.EmitAsm(wr, *alignFlag)
	}
	if err != nil {
		log.Fatalf("writing table: %v", err)
	}
	wr.Flush()
	out.Close()
}
