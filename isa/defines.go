package isa

import (
	"fmt"
	"iter"
	"maps"
)

// Bit indices in the sts register.
const (
	STS_ZERO = 0 // Last ALU result was zero.
	STS_NEG  = 1 // Bit 15 of the last ALU result was set.
	STS_RUN  = 8 // Execution enabled.
)

// Fixed physical addresses of the memory-mapped devices.
const (
	ADDR_VRAM         = 0xc000 // Display framebuffer, one R3G3B2 byte per pixel.
	ADDR_SERIAL_IO    = 0xf000 // Serial device base.
	ADDR_SERIAL_COUNT = 0xf000 // Halfword: pending input byte count.
	ADDR_SERIAL_DATA  = 0xf002 // Byte: serial data port.

	DISPLAY_WIDTH  = 128
	DISPLAY_HEIGHT = 96
)

// MEMORY_SIZE is the size of the flat address space, in bytes.
const MEMORY_SIZE = 0x10000

var _isa_defines = map[string]string{
	"STS_ZERO":       fmt.Sprintf("%d", STS_ZERO),
	"STS_NEG":        fmt.Sprintf("%d", STS_NEG),
	"STS_RUN":        fmt.Sprintf("%d", STS_RUN),
	"VRAM":           fmt.Sprintf("0x%04x", ADDR_VRAM),
	"SERIAL_IO":      fmt.Sprintf("0x%04x", ADDR_SERIAL_IO),
	"SERIAL_COUNT":   fmt.Sprintf("0x%04x", ADDR_SERIAL_COUNT),
	"SERIAL_DATA":    fmt.Sprintf("0x%04x", ADDR_SERIAL_DATA),
	"DISPLAY_WIDTH":  fmt.Sprintf("%d", DISPLAY_WIDTH),
	"DISPLAY_HEIGHT": fmt.Sprintf("%d", DISPLAY_HEIGHT),
}

// Defines returns the architecture constants as assembler equates.
func Defines() iter.Seq2[string, string] {
	return maps.All(_isa_defines)
}
