// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package io

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"sync"

	"github.com/ezrec/q16/isa"
)

const (
	SERIAL_SIZE      = 3      // Bytes mapped by the serial device.
	SERIAL_COUNT_MAX = 0xffff // Largest reportable pending count.
)

var _serial_defines = map[string]string{
	"SERIAL_SIZE": fmt.Sprintf("%d", SERIAL_SIZE),
}

// Serial is a byte-oriented console.
//
// The halfword at SERIAL_COUNT holds the number of pending input bytes,
// and the byte at SERIAL_DATA holds the next input byte. A program write
// to SERIAL_DATA sends the byte to Output; a program read of SERIAL_DATA
// consumes the pending input byte.
type Serial struct {
	Output io.Writer // Destination of program output. Discarded if nil.

	mutex sync.Mutex
	queue []byte
}

var _ Device = (*Serial)(nil)

// Push queues input bytes for the program. Safe for concurrent use.
func (ser *Serial) Push(data ...byte) {
	ser.mutex.Lock()
	defer ser.mutex.Unlock()

	ser.queue = append(ser.queue, data...)
}

// Pending returns the number of queued input bytes.
func (ser *Serial) Pending() int {
	ser.mutex.Lock()
	defer ser.mutex.Unlock()

	return len(ser.queue)
}

// Reset discards all queued input.
func (ser *Serial) Reset() {
	ser.mutex.Lock()
	defer ser.mutex.Unlock()

	ser.queue = nil
}

// Contains implements Device.
func (ser *Serial) Contains(addr uint16) bool {
	return addr >= isa.ADDR_SERIAL_IO && addr < isa.ADDR_SERIAL_IO+SERIAL_SIZE
}

// Read implements Device. Reading the data port consumes one input byte.
func (ser *Serial) Read(memory []byte, addr uint16) (err error) {
	if addr != isa.ADDR_SERIAL_DATA {
		return
	}

	ser.mutex.Lock()
	if len(ser.queue) > 0 {
		ser.queue = ser.queue[1:]
	}
	ser.mutex.Unlock()

	ser.Sync(memory)

	return
}

// Write implements Device. Writing the data port emits one output byte.
func (ser *Serial) Write(memory []byte, addr uint16) (err error) {
	if addr != isa.ADDR_SERIAL_DATA {
		return
	}

	if ser.Output != nil {
		_, err = ser.Output.Write(memory[addr : addr+1])
	}

	ser.Sync(memory)

	return
}

// Sync implements Device.
func (ser *Serial) Sync(memory []byte) {
	ser.mutex.Lock()
	defer ser.mutex.Unlock()

	count := min(len(ser.queue), SERIAL_COUNT_MAX)
	memory[isa.ADDR_SERIAL_COUNT] = byte(count)
	memory[isa.ADDR_SERIAL_COUNT+1] = byte(count >> 8)

	var front byte
	if len(ser.queue) > 0 {
		front = ser.queue[0]
	}
	memory[isa.ADDR_SERIAL_DATA] = front
}

// Defines implements Device.
func (ser *Serial) Defines() iter.Seq2[string, string] {
	return maps.All(_serial_defines)
}
