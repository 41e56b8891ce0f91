package asm

import (
	"slices"

	"github.com/ezrec/q16/isa"
)

// pseudoFunc assembles a pseudo instruction or data directive.
type pseudoFunc func(asm *Assembler, mnemonic string, operands []operand) error

// pseudoMap maps pseudo instruction and directive names.
var pseudoMap = map[string]pseudoFunc{
	"nop":   pseudoNop,
	"hlt":   pseudoHlt,
	"mov":   pseudoMov,
	"neg":   pseudoNeg,
	"not":   pseudoNot,
	"cmp":   pseudoCmp,
	"jmp":   pseudoJmp,
	"inc":   pseudoInc,
	".db":   directiveDb,
	".dw":   directiveDw,
	".skip": directiveSkip,
}

// nop => add %r0, %r0, %r0
func pseudoNop(asm *Assembler, mnemonic string, operands []operand) (err error) {
	err = expectCount(mnemonic, operands, 0)
	if err != nil {
		return
	}

	r0 := register(isa.REG_R0)
	return asm.assemble3(mnemonic, isa.OP_ADD, r0, r0, r0)
}

// hlt => and %sts, %sts, ~(1 << STS_RUN)
func pseudoHlt(asm *Assembler, mnemonic string, operands []operand) (err error) {
	err = expectCount(mnemonic, operands, 0)
	if err != nil {
		return
	}

	sts := register(isa.REG_STS)
	return asm.assemble3(mnemonic, isa.OP_AND, sts, sts, literal(^uint16(1<<isa.STS_RUN)))
}

// mov rd, src => add rd, src, 0
func pseudoMov(asm *Assembler, mnemonic string, operands []operand) (err error) {
	err = expectCount(mnemonic, operands, 2)
	if err != nil {
		return
	}

	return asm.assemble2(mnemonic, isa.OP_ADD, operands[0], operands[1])
}

// neg rd, src => sub rd, %r0, src
func pseudoNeg(asm *Assembler, mnemonic string, operands []operand) (err error) {
	err = expectCount(mnemonic, operands, 2)
	if err != nil {
		return
	}

	return asm.assemble3(mnemonic, isa.OP_SUB, operands[0], register(isa.REG_R0), operands[1])
}

// not rd, src => xor rd, src, 0xffff
func pseudoNot(asm *Assembler, mnemonic string, operands []operand) (err error) {
	err = expectCount(mnemonic, operands, 2)
	if err != nil {
		return
	}

	return asm.assemble3(mnemonic, isa.OP_XOR, operands[0], operands[1], literal(0xffff))
}

// cmp a, b => sub %r0, a, b
//
// A literal b is emitted as add %r0, a, -b.
func pseudoCmp(asm *Assembler, mnemonic string, operands []operand) (err error) {
	err = expectCount(mnemonic, operands, 2)
	if err != nil {
		return
	}

	return asm.assemble3(mnemonic, isa.OP_SUB, register(isa.REG_R0), operands[0], operands[1])
}

// jmp tgt => add %pc, tgt, 0
// jmp tgt, off => add %pc, tgt, off
func pseudoJmp(asm *Assembler, mnemonic string, operands []operand) (err error) {
	pc := register(isa.REG_PC)

	switch len(operands) {
	case 2:
		err = asm.assemble3(mnemonic, isa.OP_ADD, pc, operands[0], operands[1])
	case 1:
		err = asm.assemble2(mnemonic, isa.OP_ADD, pc, operands[0])
	default:
		err = ErrOperandCount{Mnemonic: mnemonic, Expect: "1 or 2", Found: len(operands)}
	}

	return
}

// inc rd => add rd, rd, 1
func pseudoInc(asm *Assembler, mnemonic string, operands []operand) (err error) {
	err = expectCount(mnemonic, operands, 1)
	if err != nil {
		return
	}

	return asm.assemble3(mnemonic, isa.OP_ADD, operands[0], operands[0], literal(1))
}

// .db literal appends the low byte of the literal.
func directiveDb(asm *Assembler, mnemonic string, operands []operand) (err error) {
	err = expectCount(mnemonic, operands, 1)
	if err != nil {
		return
	}

	if operands[0].Kind != OPERAND_LITERAL {
		err = ErrOperandInvalid(mnemonic)
		return
	}

	return asm.Object.Emit(byte(operands[0].Value))
}

// .dw literal|label appends a little-endian word.
func directiveDw(asm *Assembler, mnemonic string, operands []operand) (err error) {
	err = expectCount(mnemonic, operands, 1)
	if err != nil {
		return
	}

	switch operands[0].Kind {
	case OPERAND_LITERAL:
		err = asm.Object.EmitWord(operands[0].Value)
	case OPERAND_LABEL:
		err = asm.Object.InsertUse(operands[0].Label, 0)
		if err != nil {
			return
		}
		err = asm.Object.EmitWord(0)
	default:
		err = ErrOperandInvalid(mnemonic)
	}

	return
}

// .skip n appends n zero bytes.
func directiveSkip(asm *Assembler, mnemonic string, operands []operand) (err error) {
	err = expectCount(mnemonic, operands, 1)
	if err != nil {
		return
	}

	if operands[0].Kind != OPERAND_LITERAL {
		err = ErrOperandInvalid(mnemonic)
		return
	}

	return asm.Object.Emit(slices.Repeat([]byte{0}, int(operands[0].Value))...)
}
