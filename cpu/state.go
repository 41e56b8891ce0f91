package cpu

import (
	"encoding/binary"

	"github.com/ezrec/q16/isa"
)

// STATE_SIZE is the size of a state snapshot: memory, then every stored
// register as a little-endian halfword.
const STATE_SIZE = isa.MEMORY_SIZE + 2*12

// MarshalBinary returns a snapshot of memory and registers.
func (cpu *Cpu) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 0, STATE_SIZE)
	data = append(data, cpu.Memory[:]...)
	for _, reg := range isa.Registers {
		data = binary.LittleEndian.AppendUint16(data, cpu.Registers.Read(reg))
	}

	return
}

// UnmarshalBinary restores a snapshot. A short snapshot is rejected, and
// leaves the processor unchanged.
func (cpu *Cpu) UnmarshalBinary(data []byte) (err error) {
	if len(data) < STATE_SIZE {
		err = ErrStateShort
		return
	}

	copy(cpu.Memory[:], data[:isa.MEMORY_SIZE])
	data = data[isa.MEMORY_SIZE:]
	for n, reg := range isa.Registers {
		cpu.Registers.Write(reg, binary.LittleEndian.Uint16(data[2*n:]))
	}

	return
}
