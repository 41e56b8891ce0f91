// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"context"
	"fmt"
	"iter"
	"log"
	"maps"

	"github.com/ezrec/q16/cpu"
	"github.com/ezrec/q16/internal"
	"github.com/ezrec/q16/io"
	"github.com/ezrec/q16/isa"
)

const (
	DEFAULT_HZ = 1_000_000 // Default instruction rate of Run.
)

var _emulator_defines = map[string]string{
	"MEMORY_SIZE": fmt.Sprintf("0x%x", isa.MEMORY_SIZE),
}

// Emulator state. CPU + memory mapped devices.
type Emulator struct {
	Verbose   bool // If set, enables verbose logging.
	StepLimit int  // If non-zero, the most steps Run will perform.
	Steps     int  // Steps performed since the last reset.

	*cpu.Cpu // Reference to the CPU simulation.

	Serial  io.Serial  // Serial console.
	Display io.Display // Framebuffer.

	devices []io.Device
}

// NewEmulator creates a new emulator.
func NewEmulator() (emu *Emulator) {
	emu = &Emulator{
		Cpu: cpu.NewCpu(),
	}

	emu.devices = []io.Device{&emu.Serial, &emu.Display}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	seqs := []iter.Seq2[string, string]{
		maps.All(_emulator_defines),
		isa.Defines(),
	}
	for _, dev := range emu.devices {
		seqs = append(seqs, dev.Defines())
	}

	return internal.IterSeq2Concat(seqs...)
}

// Reset clears the processor, memory, and device state.
func (emu *Emulator) Reset() {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
	emu.Serial.Reset()
	emu.Display.Dirty = false
	emu.Steps = 0
}

// Load resets the emulator, copies a binary image to address 0, and sets
// RUN. Memory is left exactly as in the image until the next step.
func (emu *Emulator) Load(image []byte) (err error) {
	emu.Reset()

	err = emu.Cpu.Load(image)
	if err != nil {
		return
	}

	emu.Cpu.SetRun(true)

	return
}

// Restore replaces the processor state with a snapshot, and discards any
// queued serial input. Memory is left exactly as in the snapshot until the
// next step.
func (emu *Emulator) Restore(state []byte) (err error) {
	err = emu.Cpu.UnmarshalBinary(state)
	if err != nil {
		return
	}

	emu.Serial.Reset()
	emu.Steps = 0
	emu.Display.Dirty = true

	return
}

// Push queues serial input for the program. Safe for concurrent use.
func (emu *Emulator) Push(data ...byte) {
	emu.Serial.Push(data...)
}

// sync refreshes the device registers in memory. Device registers are
// owned by the host, and are only refreshed before a step.
func (emu *Emulator) sync() {
	for _, dev := range emu.devices {
		dev.Sync(emu.Cpu.Memory[:])
	}
}

// Tick performs a single step of the emulator, and services any device
// touched by the step.
func (emu *Emulator) Tick() (out cpu.Outcome, err error) {
	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	pc := emu.Cpu.Registers.Pc
	defer func() {
		if err != nil {
			err = &ErrRuntime{Pc: pc, Err: err}
		}
	}()

	// Pick up input pushed since the last step.
	emu.sync()

	out = emu.Cpu.Step()
	emu.Steps++

	if !out.Valid {
		if emu.Verbose {
			log.Printf("%04x: soft reset", pc)
		}
		return
	}

	if out.Access == cpu.ACCESS_NONE {
		return
	}

	memory := emu.Cpu.Memory[:]
	for _, dev := range emu.devices {
		if !dev.Contains(out.Address) {
			continue
		}
		switch out.Access {
		case cpu.ACCESS_READ:
			err = dev.Read(memory, out.Address)
		case cpu.ACCESS_WRITE:
			err = dev.Write(memory, out.Address)
		}
		if err != nil {
			return
		}
	}

	return
}

// Run steps the emulator while RUN is set, at up to hz steps per second.
// A rate of zero or less runs unpaced.
func (emu *Emulator) Run(ctx context.Context, hz int) (err error) {
	pacer := NewPacer(hz)
	warned := false

	for emu.Cpu.Running() {
		err = ctx.Err()
		if err != nil {
			return
		}

		if emu.StepLimit > 0 && emu.Steps >= emu.StepLimit {
			err = ErrStepLimit
			return
		}

		_, err = emu.Tick()
		if err != nil {
			return
		}

		pacer.Pace()
		if emu.Verbose && pacer.Late() != warned {
			warned = pacer.Late()
			if warned {
				log.Printf("emulator: unable to sustain %v Hz", hz)
			}
		}
	}

	return
}
