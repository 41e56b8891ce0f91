// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

import (
	"fmt"
)

// Form selects the kind of operand 2 of an instruction.
type Form int

const (
	FORM_REGISTER  = Form(0) // Operand 2 is a register.
	FORM_IMMEDIATE = Form(1) // Operand 2 is a 16-bit literal.
)

// Instruction bit field layout.
const (
	WORD_OPCODE_MASK = 0x7f // bits 0-6
	WORD_FORM_BIT    = 0x80 // bit 7
	WORD_RD_SHIFT    = 8    // bits 8-11
	WORD_R1_SHIFT    = 12   // bits 12-15
	WORD_OP2_SHIFT   = 16   // bits 16-31
	WORD_REG_MASK    = 0xf
)

// INSTRUCTION_SIZE is the size, in bytes, of an encoded instruction.
const INSTRUCTION_SIZE = 4

// Instruction is a decoded q16 instruction.
//
// For FORM_REGISTER, operand 2 is R2 and Immediate is zero.
// For FORM_IMMEDIATE, operand 2 is Immediate and R2 is r0.
type Instruction struct {
	Opcode    Opcode
	Form      Form
	Rd        Register
	R1        Register
	R2        Register
	Immediate uint16
}

// MakeR creates a register form instruction.
func MakeR(op Opcode, rd, r1, r2 Register) Instruction {
	return Instruction{Opcode: op, Form: FORM_REGISTER, Rd: rd, R1: r1, R2: r2}
}

// MakeI creates an immediate form instruction.
func MakeI(op Opcode, rd, r1 Register, imm uint16) Instruction {
	return Instruction{Opcode: op, Form: FORM_IMMEDIATE, Rd: rd, R1: r1, Immediate: imm}
}

// Validate checks that the opcode, form and registers may be encoded.
func (in Instruction) Validate() (err error) {
	if !in.Opcode.Valid() {
		err = ErrOpcodeInvalid
		return
	}

	if !in.Rd.Valid() || !in.R1.Valid() {
		err = ErrRegisterInvalid
		return
	}

	switch in.Form {
	case FORM_REGISTER:
		if !in.Opcode.HasRegisterForm() {
			err = ErrFormRegister(in.Opcode)
			return
		}
		if !in.R2.Valid() {
			err = ErrRegisterInvalid
			return
		}
	case FORM_IMMEDIATE:
		if !in.Opcode.HasImmediateForm() {
			err = ErrFormImmediate(in.Opcode)
			return
		}
	default:
		err = ErrFormInvalid
	}

	return
}

// Encode returns the 32-bit machine word for the instruction.
func (in Instruction) Encode() (word uint32, err error) {
	err = in.Validate()
	if err != nil {
		return
	}

	word = uint32(in.Opcode) |
		(uint32(in.Rd) << WORD_RD_SHIFT) |
		(uint32(in.R1) << WORD_R1_SHIFT)

	switch in.Form {
	case FORM_REGISTER:
		word |= uint32(in.R2) << WORD_OP2_SHIFT
	case FORM_IMMEDIATE:
		word |= WORD_FORM_BIT
		word |= uint32(in.Immediate) << WORD_OP2_SHIFT
	}

	return
}

// Bytes returns the instruction as its four little-endian memory bytes.
func (in Instruction) Bytes() (data [INSTRUCTION_SIZE]byte, err error) {
	word, err := in.Encode()
	if err != nil {
		return
	}

	data[0] = byte(word >> 0)
	data[1] = byte(word >> 8)
	data[2] = byte(word >> 16)
	data[3] = byte(word >> 24)

	return
}

// Decode decodes a 32-bit machine word.
// The result is not ok for unknown opcodes, forms an opcode does not
// support, or register fields naming no register.
func Decode(word uint32) (in Instruction, ok bool) {
	op := Opcode(word & WORD_OPCODE_MASK)
	if !op.Valid() {
		return
	}

	rd := Register((word >> WORD_RD_SHIFT) & WORD_REG_MASK)
	r1 := Register((word >> WORD_R1_SHIFT) & WORD_REG_MASK)
	if !rd.Valid() || !r1.Valid() {
		return
	}

	if (word & WORD_FORM_BIT) != 0 {
		if !op.HasImmediateForm() {
			return
		}
		in = MakeI(op, rd, r1, uint16(word>>WORD_OP2_SHIFT))
	} else {
		if !op.HasRegisterForm() {
			return
		}
		r2 := Register((word >> WORD_OP2_SHIFT) & WORD_REG_MASK)
		if !r2.Valid() {
			return
		}
		in = MakeR(op, rd, r1, r2)
	}

	ok = true
	return
}

// String returns the assembly language representation of this instruction.
func (in Instruction) String() string {
	if in.Form == FORM_IMMEDIATE {
		return fmt.Sprintf("%v %%%v, %%%v, 0x%x", in.Opcode, in.Rd, in.R1, in.Immediate)
	}
	return fmt.Sprintf("%v %%%v, %%%v, %%%v", in.Opcode, in.Rd, in.R1, in.R2)
}
