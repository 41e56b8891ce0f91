// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"golang.org/x/term"

	"github.com/ezrec/q16/emulator"
)

const ctrlC = 0x03

// crlfWriter expands LF to CR LF for a terminal in raw mode.
type crlfWriter struct {
	io.Writer
}

func (w crlfWriter) Write(data []byte) (n int, err error) {
	for _, b := range data {
		if b == '\n' {
			_, err = w.Writer.Write([]byte{'\r', '\n'})
		} else {
			_, err = w.Writer.Write([]byte{b})
		}
		if err != nil {
			return
		}
		n++
	}
	return
}

// feedSerial copies input to the serial console until EOF.
func feedSerial(emu *emulator.Emulator, input io.Reader, raw bool, cancel context.CancelFunc) {
	buf := make([]byte, 64)
	for {
		n, err := input.Read(buf)
		for _, b := range buf[:n] {
			if raw {
				switch b {
				case ctrlC:
					cancel()
					return
				case '\r':
					b = '\n'
				}
			}
			emu.Push(b)
		}
		if err != nil {
			return
		}
	}
}

func run(emu *emulator.Emulator, hz int) (err error) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	raw := false
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		var state *term.State
		state, err = term.MakeRaw(fd)
		if err != nil {
			return
		}
		defer term.Restore(fd, state)
		raw = true
		emu.Serial.Output = crlfWriter{Writer: os.Stdout}
	} else {
		emu.Serial.Output = os.Stdout
	}

	go feedSerial(emu, os.Stdin, raw, cancel)

	err = emu.Run(ctx, hz)
	if errors.Is(err, context.Canceled) {
		err = nil
	}

	return
}

func main() {
	var hz int
	var steps int
	var verbose bool
	var display string
	var scale int
	var state string
	var save string

	flag.IntVar(&hz, "hz", emulator.DEFAULT_HZ, "Instructions per second, or 0 for unpaced")
	flag.IntVar(&steps, "steps", 0, "Maximum instructions to execute, or 0 for no limit")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.StringVar(&display, "display", "", "Write the final display to a PNG file")
	flag.IntVar(&scale, "scale", 4, "Display PNG pixel scale")
	flag.StringVar(&state, "state", "", "Restore a state snapshot instead of loading an image")
	flag.StringVar(&save, "save", "", "Save a state snapshot on exit")

	flag.Parse()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose
	emu.StepLimit = steps

	switch {
	case len(state) != 0:
		if flag.NArg() != 0 {
			log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
		}
		data, err := os.ReadFile(state)
		if err != nil {
			log.Fatalf("%v: %v", state, err)
		}
		err = emu.Restore(data)
		if err != nil {
			log.Fatalf("%v: %v", state, err)
		}
		emu.Cpu.SetRun(true)
	case flag.NArg() == 1:
		image, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			log.Fatalf("%v: %v", flag.Arg(0), err)
		}
		err = emu.Load(image)
		if err != nil {
			log.Fatalf("%v: %v", flag.Arg(0), err)
		}
	default:
		log.Fatalf("%v: Expected a single image file, got: %v", os.Args[0], flag.Args())
	}

	err := run(emu, hz)
	if err != nil && !errors.Is(err, emulator.ErrStepLimit) {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	if verbose {
		fmt.Fprint(os.Stderr, emu.Cpu.Registers.String())
	}

	if len(display) != 0 {
		ouf, err := os.Create(display)
		if err != nil {
			log.Fatalf("%v: %v", display, err)
		}
		defer ouf.Close()
		err = emu.Display.WritePNG(ouf, emu.Cpu.Memory[:], scale)
		if err != nil {
			log.Fatalf("%v: %v", display, err)
		}
	}

	if len(save) != 0 {
		data, err := emu.Cpu.MarshalBinary()
		if err != nil {
			log.Fatalf("%v: %v", save, err)
		}
		err = os.WriteFile(save, data, 0o644)
		if err != nil {
			log.Fatalf("%v: %v", save, err)
		}
	}
}
