// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"log"

	"github.com/ezrec/q16/isa"
)

// Access is the kind of memory access performed by a step.
type Access int

const (
	ACCESS_NONE  = Access(0) // No memory operand.
	ACCESS_READ  = Access(1) // Load from Address.
	ACCESS_WRITE = Access(2) // Store to Address.
)

// Outcome reports the result of a single step.
type Outcome struct {
	Valid       bool            // False if the fetched word did not decode.
	Instruction isa.Instruction // Decoded instruction, if Valid.
	Access      Access          // Memory access performed, if any.
	Address     uint16          // Address of the memory access.
}

// Cpu is the simulation context for the q16 processor.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Memory    [isa.MEMORY_SIZE]byte // Flat memory.
	Registers Registers             // Register file.
}

// NewCpu creates a zeroed processor.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}

	return
}

// Reset clears memory and registers.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Memory[:])
	cpu.Registers = Registers{}
}

// Load copies a binary image into memory at address 0.
func (cpu *Cpu) Load(image []byte) (err error) {
	if len(image) > len(cpu.Memory) {
		err = ErrImageTooLarge
		return
	}

	copy(cpu.Memory[:], image)

	return
}

// Running returns true if the RUN status bit is set.
func (cpu *Cpu) Running() bool {
	return cpu.Registers.Flag(isa.STS_RUN)
}

// SetRun sets or clears the RUN status bit.
func (cpu *Cpu) SetRun(run bool) {
	cpu.Registers.SetFlag(isa.STS_RUN, run)
}

// LoadByte reads a byte of memory.
func (cpu *Cpu) LoadByte(addr uint16) byte {
	return cpu.Memory[addr]
}

// StoreByte writes a byte of memory.
func (cpu *Cpu) StoreByte(addr uint16, value byte) {
	cpu.Memory[addr] = value
}

// LoadWord reads a little-endian halfword. At 0xffff only the low byte
// exists, and the high byte reads as zero.
func (cpu *Cpu) LoadWord(addr uint16) (value uint16) {
	value = uint16(cpu.Memory[addr])
	if int(addr)+1 < len(cpu.Memory) {
		value |= uint16(cpu.Memory[addr+1]) << 8
	}

	return
}

// StoreWord writes a little-endian halfword. At 0xffff only the low byte
// is written.
func (cpu *Cpu) StoreWord(addr uint16, value uint16) {
	cpu.Memory[addr] = byte(value)
	if int(addr)+1 < len(cpu.Memory) {
		cpu.Memory[addr+1] = byte(value >> 8)
	}
}

// Fetch returns the instruction word at pc.
func (cpu *Cpu) Fetch() uint32 {
	pc := cpu.Registers.Pc
	return uint32(cpu.LoadWord(pc)) | (uint32(cpu.LoadWord(pc+2)) << 16)
}

// Step executes a single instruction.
//
// An undecodable instruction clears every register, including RUN, and
// leaves memory untouched.
func (cpu *Cpu) Step() (out Outcome) {
	regs := &cpu.Registers

	in, ok := isa.Decode(cpu.Fetch())
	if !ok {
		if cpu.Verbose {
			log.Printf("%04x: illegal instruction 0x%08x", regs.Pc, cpu.Fetch())
		}
		*regs = Registers{}
		return
	}

	if cpu.Verbose {
		log.Printf("%04x: %v", regs.Pc, in)
	}

	out.Valid = true
	out.Instruction = in

	regs.Pc += isa.INSTRUCTION_SIZE

	op := in.Opcode
	switch {
	case op.IsAlu():
		a := regs.Read(in.R1)
		b := in.Immediate
		if in.Form == isa.FORM_REGISTER {
			b = regs.Read(in.R2)
		}
		result := doAlu(op, a, b)
		regs.SetFlag(isa.STS_ZERO, result == 0)
		regs.SetFlag(isa.STS_NEG, (result&0x8000) != 0)
		regs.Write(in.Rd, result)
	case op.IsLoad():
		addr := cpu.effectiveAddress(in)
		out.Access = ACCESS_READ
		out.Address = addr
		var value uint16
		switch op {
		case isa.OP_LB:
			value = uint16(int16(int8(cpu.LoadByte(addr))))
		case isa.OP_LBU:
			value = uint16(cpu.LoadByte(addr))
		case isa.OP_LW:
			value = cpu.LoadWord(addr)
		}
		regs.Write(in.Rd, value)
	case op.IsStore():
		addr := cpu.effectiveAddress(in)
		out.Access = ACCESS_WRITE
		out.Address = addr
		value := regs.Read(in.Rd)
		switch op {
		case isa.OP_SB:
			cpu.StoreByte(addr, byte(value))
		case isa.OP_SW:
			cpu.StoreWord(addr, value)
		}
	case op.IsBranch():
		zero := regs.Flag(isa.STS_ZERO)
		neg := regs.Flag(isa.STS_NEG)
		var taken bool
		switch op {
		case isa.OP_JEQ:
			taken = zero
		case isa.OP_JNE:
			taken = !zero
		case isa.OP_JGT:
			taken = !zero && neg
		case isa.OP_JLT:
			taken = !zero && !neg
		}
		if taken {
			regs.Pc = cpu.effectiveAddress(in)
		}
	}

	return
}

// effectiveAddress is r1 plus the immediate, wrapped to 16 bits.
func (cpu *Cpu) effectiveAddress(in isa.Instruction) uint16 {
	return cpu.Registers.Read(in.R1) + in.Immediate
}

// doAlu performs the requested ALU action, and returns the output value.
func doAlu(op isa.Opcode, a, b uint16) (output uint16) {
	switch op {
	case isa.OP_ADD:
		output = a + b
	case isa.OP_SUB:
		output = a - b
	case isa.OP_MUL:
		output = a * b
	case isa.OP_DIV:
		if b == 0 {
			output = 0xffff
		} else {
			output = uint16(int16(a) / int16(b))
		}
	case isa.OP_REM:
		if b == 0 {
			output = 0xffff
		} else {
			output = uint16(int16(a) % int16(b))
		}
	case isa.OP_AND:
		output = a & b
	case isa.OP_OR:
		output = a | b
	case isa.OP_XOR:
		output = a ^ b
	}

	return
}
