// Package io provides the memory-mapped devices of the q16 emulator.
// Devices observe the memory accesses reported by each processor step,
// and maintain their registers directly in processor memory.
package io

import (
	"iter"
)

// Device is a memory-mapped peripheral.
type Device interface {
	// Contains returns true if the address is mapped by the device.
	Contains(addr uint16) bool
	// Read is called after the processor has read from a mapped address.
	Read(memory []byte, addr uint16) error
	// Write is called after the processor has written to a mapped address.
	Write(memory []byte, addr uint16) error
	// Sync refreshes the device registers held in memory.
	Sync(memory []byte)
	// Defines returns the device constants as assembler equates.
	Defines() iter.Seq2[string, string]
}
