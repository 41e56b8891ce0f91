// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package isa

// Opcode is an instruction operation code.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_ADD = Opcode(1)  // add
	OP_SUB = Opcode(2)  // sub
	OP_MUL = Opcode(3)  // mul
	OP_DIV = Opcode(4)  // div
	OP_REM = Opcode(5)  // rem
	OP_AND = Opcode(6)  // and
	OP_OR  = Opcode(7)  // or
	OP_XOR = Opcode(8)  // xor
	OP_LB  = Opcode(9)  // lb
	OP_LBU = Opcode(10) // lbu
	OP_LW  = Opcode(11) // lw
	OP_SB  = Opcode(12) // sb
	OP_SW  = Opcode(13) // sw
	OP_JEQ = Opcode(14) // jeq
	OP_JNE = Opcode(15) // jne
	OP_JGT = Opcode(16) // jgt
	OP_JLT = Opcode(17) // jlt
)

// Opcodes lists every defined opcode in encoding order.
var Opcodes = []Opcode{
	OP_ADD, OP_SUB, OP_MUL, OP_DIV, OP_REM, OP_AND, OP_OR, OP_XOR,
	OP_LB, OP_LBU, OP_LW, OP_SB, OP_SW,
	OP_JEQ, OP_JNE, OP_JGT, OP_JLT,
}

// Valid returns true if the opcode is defined.
func (op Opcode) Valid() bool {
	return op >= OP_ADD && op <= OP_JLT
}

// IsAlu returns true for the arithmetic and logic opcodes.
func (op Opcode) IsAlu() bool {
	return op >= OP_ADD && op <= OP_XOR
}

// IsLoad returns true for the memory read opcodes.
func (op Opcode) IsLoad() bool {
	return op == OP_LB || op == OP_LBU || op == OP_LW
}

// IsStore returns true for the memory write opcodes.
func (op Opcode) IsStore() bool {
	return op == OP_SB || op == OP_SW
}

// IsBranch returns true for the conditional jump opcodes.
func (op Opcode) IsBranch() bool {
	return op >= OP_JEQ && op <= OP_JLT
}

// HasRegisterForm returns true if the opcode may take a register as operand 2.
func (op Opcode) HasRegisterForm() bool {
	return op.IsAlu()
}

// HasImmediateForm returns true if the opcode may take an immediate as operand 2.
// Subtraction of a literal is expressed as addition of its negation.
func (op Opcode) HasImmediateForm() bool {
	return op.Valid() && op != OP_SUB
}

// Register is a register selector.
type Register int

//go:generate go tool stringer -linecomment -type=Register
const (
	REG_R0  = Register(0)  // r0
	REG_R1  = Register(1)  // r1
	REG_R2  = Register(2)  // r2
	REG_R3  = Register(3)  // r3
	REG_R4  = Register(4)  // r4
	REG_R5  = Register(5)  // r5
	REG_R6  = Register(6)  // r6
	REG_R7  = Register(7)  // r7
	REG_R8  = Register(8)  // r8
	REG_PC  = Register(9)  // pc
	REG_SP  = Register(10) // sp
	REG_RA  = Register(11) // ra
	REG_STS = Register(12) // sts
)

// REG_COUNT is the number of register selectors, including r0.
const REG_COUNT = 13

// Registers lists the stored registers, in snapshot order. r0 is not stored.
var Registers = []Register{
	REG_R1, REG_R2, REG_R3, REG_R4, REG_R5, REG_R6, REG_R7, REG_R8,
	REG_PC, REG_SP, REG_RA, REG_STS,
}

// Valid returns true if the register selector is defined.
func (reg Register) Valid() bool {
	return reg >= REG_R0 && reg <= REG_STS
}

var registerNames = map[string]Register{}

func init() {
	for reg := REG_R0; reg <= REG_STS; reg++ {
		registerNames[reg.String()] = reg
	}
}

// RegisterByName looks up a register by its lower-case name.
func RegisterByName(name string) (reg Register, ok bool) {
	reg, ok = registerNames[name]
	return
}

var opcodeNames = map[string]Opcode{}

func init() {
	for _, op := range Opcodes {
		opcodeNames[op.String()] = op
	}
}

// OpcodeByName looks up an opcode by its lower-case mnemonic.
func OpcodeByName(name string) (op Opcode, ok bool) {
	op, ok = opcodeNames[name]
	return
}
