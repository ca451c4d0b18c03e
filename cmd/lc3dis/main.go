// Command lc3dis disassembles an LC-3 object image to stdout.
//
// This restores a feature the distilled spec dropped from its QEMU
// origin (target/lc3/disas.c): a standalone way to inspect an image
// without running it, built on the same lc3.Disassemble the -v trace
// flag of cmd/lc3 uses.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/bassosimone/lc3/pkg/lc3"
)

func main() {
	log.SetFlags(0)
	flag.Parse()

	paths := flag.Args()
	if len(paths) != 1 {
		log.Fatal("usage: lc3dis <image>")
	}

	fp, err := os.Open(paths[0])
	if err != nil {
		log.Fatal(err)
	}
	defer fp.Close()

	mem := lc3.NewMemory(nil)
	origin, err := mem.LoadImage(fp)
	if err != nil {
		log.Fatal(err)
	}

	addr := uint32(origin)
	for addr < lc3.MemorySize {
		word, err := mem.Read(uint16(addr))
		if err != nil {
			log.Fatal(err)
		}
		if word == 0 && addr > uint32(origin) {
			break
		}
		fmt.Printf("0x%04X: 0x%04X  %s\n", addr, word, lc3.Disassemble(word))
		addr++
	}
}
