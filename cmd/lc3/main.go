// Command lc3 loads one or more LC-3 object images and runs them.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/bassosimone/lc3/internal/console"
	"github.com/bassosimone/lc3/internal/term"
	"github.com/bassosimone/lc3/pkg/lc3"
)

func main() {
	log.SetFlags(0)
	verbose := flag.Bool("v", false, "trace each instruction before it executes")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		log.Fatal("usage: lc3 [-v] <image> [image ...]")
	}

	con := console.New()
	machine := lc3.NewMachine(con)

	for _, path := range paths {
		if err := loadImage(machine, path); err != nil {
			log.Fatal(err)
		}
	}

	raw, err := term.Acquire()
	if err != nil {
		log.Fatal(err)
	}
	defer raw.Restore()

	// Restore the terminal on SIGINT too; there is no graceful guest
	// shutdown, only terminal-state cleanup before the process exits.
	// Raw mode turns off the terminal's own signal keys, so a Ctrl-C
	// typed at a raw terminal reaches the guest as byte 0x03 and does
	// not trigger this handler; only a SIGINT sent to the process does.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt)
	go func() {
		<-sigs
		raw.Restore()
		os.Exit(1)
	}()

	if err := run(machine, *verbose); err != nil {
		raw.Restore()
		log.Fatal(err)
	}
}

func loadImage(machine *lc3.Machine, path string) error {
	fp, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fp.Close()
	_, err = machine.LoadImage(fp)
	return err
}

func run(machine *lc3.Machine, verbose bool) error {
	for machine.State() == lc3.Running {
		if verbose {
			pc := machine.Reg.PC
			word, err := machine.Mem.Read(pc)
			if err == nil {
				log.Printf("lc3: PC=0x%04X word=0x%04X %s", pc, word, lc3.Disassemble(word))
			}
		}
		if err := machine.Step(); err != nil {
			if errors.Is(err, lc3.ErrHalted) {
				return nil
			}
			return fmt.Errorf("lc3: %w", err)
		}
	}
	return nil
}
