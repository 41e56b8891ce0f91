package isa

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeForms(t *testing.T) {
	assert := assert.New(t)

	for _, op := range Opcodes {
		assert.True(op.Valid(), op.String())
		assert.Equal(op.IsAlu(), op.HasRegisterForm(), op.String())
		assert.Equal(op != OP_SUB, op.HasImmediateForm(), op.String())
	}

	assert.False(Opcode(0).Valid())
	assert.False(Opcode(18).Valid())
	assert.Equal("Opcode(0)", Opcode(0).String())
	assert.Equal("lbu", OP_LBU.String())
	assert.Equal("sts", REG_STS.String())
}

func TestLookup(t *testing.T) {
	assert := assert.New(t)

	op, ok := OpcodeByName("jgt")
	assert.True(ok)
	assert.Equal(OP_JGT, op)

	_, ok = OpcodeByName("jge")
	assert.False(ok)

	reg, ok := RegisterByName("ra")
	assert.True(ok)
	assert.Equal(REG_RA, reg)

	reg, ok = RegisterByName("r0")
	assert.True(ok)
	assert.Equal(REG_R0, reg)

	_, ok = RegisterByName("it")
	assert.False(ok)

	assert.Equal(12, len(Registers))
	assert.NotContains(Registers, REG_R0)
}

func TestEncode(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name  string
		instr Instruction
		word  uint32
	}){
		{"nop", MakeR(OP_ADD, REG_R0, REG_R0, REG_R0), 0x0000_0001},
		{"add_r", MakeR(OP_ADD, REG_R1, REG_R2, REG_R3), 0x0003_2101},
		{"sub_r", MakeR(OP_SUB, REG_PC, REG_SP, REG_STS), 0x000c_a902},
		{"hlt", MakeI(OP_AND, REG_STS, REG_STS, 0xfeff), 0xfeff_cc86},
		{"lw", MakeI(OP_LW, REG_R4, REG_R5, 0x1234), 0x1234_548b},
		{"jlt", MakeI(OP_JLT, REG_R0, REG_R0, 0xc000), 0xc000_0091},
	}

	for _, entry := range table {
		word, err := entry.instr.Encode()
		assert.NoError(err, entry.name)
		assert.Equal(entry.word, word, entry.name)

		decoded, ok := Decode(word)
		assert.True(ok, entry.name)
		assert.Equal(entry.instr, decoded, entry.name)
	}

	data, err := MakeI(OP_LW, REG_R4, REG_R5, 0x1234).Bytes()
	assert.NoError(err)
	assert.Equal([INSTRUCTION_SIZE]byte{0x8b, 0x54, 0x34, 0x12}, data)
}

func TestEncodeInvalid(t *testing.T) {
	assert := assert.New(t)

	_, err := MakeI(OP_SUB, REG_R1, REG_R1, 1).Encode()
	assert.True(errors.Is(err, ErrFormInvalid))
	assert.Equal(ErrFormImmediate(OP_SUB), err)

	_, err = MakeR(OP_SW, REG_R1, REG_R1, REG_R2).Encode()
	assert.True(errors.Is(err, ErrFormInvalid))
	assert.Equal(ErrFormRegister(OP_SW), err)

	_, err = MakeR(Opcode(0), REG_R1, REG_R1, REG_R2).Encode()
	assert.ErrorIs(err, ErrOpcodeInvalid)

	_, err = MakeR(OP_ADD, Register(13), REG_R1, REG_R2).Encode()
	assert.ErrorIs(err, ErrRegisterInvalid)

	_, err = MakeR(OP_ADD, REG_R1, REG_R1, Register(15)).Encode()
	assert.ErrorIs(err, ErrRegisterInvalid)
}

func TestRoundTrip(t *testing.T) {
	assert := assert.New(t)

	for _, op := range Opcodes {
		for rd := REG_R0; rd <= REG_STS; rd++ {
			for r1 := REG_R0; r1 <= REG_STS; r1++ {
				var instrs []Instruction
				if op.HasRegisterForm() {
					for r2 := REG_R0; r2 <= REG_STS; r2++ {
						instrs = append(instrs, MakeR(op, rd, r1, r2))
					}
				}
				if op.HasImmediateForm() {
					for _, imm := range []uint16{0, 1, 0x7fff, 0x8000, 0xffff} {
						instrs = append(instrs, MakeI(op, rd, r1, imm))
					}
				}
				for _, in := range instrs {
					word, err := in.Encode()
					assert.NoError(err, in.String())
					decoded, ok := Decode(word)
					assert.True(ok, in.String())
					assert.Equal(in, decoded, in.String())
				}
			}
		}
	}
}

func TestDecodeInvalid(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name string
		word uint32
	}){
		{"zero", 0x0000_0000},
		{"opcode_18", 0x0000_0012},
		{"opcode_7f", 0x0000_007f},
		{"sub_imm", 0x0001_1182},
		{"lb_reg", 0x0001_1109},
		{"jeq_reg", 0x0000_000e},
		{"rd_13", 0x0000_0d01},
		{"r1_15", 0x0000_f001},
		{"r2_14", 0x000e_0001},
	}

	for _, entry := range table {
		_, ok := Decode(entry.word)
		assert.False(ok, entry.name)
	}
}

func TestInstructionString(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("add %r1, %r2, %r3", MakeR(OP_ADD, REG_R1, REG_R2, REG_R3).String())
	assert.Equal("and %sts, %sts, 0xfeff", MakeI(OP_AND, REG_STS, REG_STS, 0xfeff).String())
}

func TestDefines(t *testing.T) {
	assert := assert.New(t)

	defines := map[string]string{}
	for key, value := range Defines() {
		defines[key] = value
	}

	assert.Equal("0xc000", defines["VRAM"])
	assert.Equal("0xf002", defines["SERIAL_DATA"])
	assert.Equal("8", defines["STS_RUN"])
}

func FuzzDecode(f *testing.F) {
	f.Add(uint32(0))
	f.Add(uint32(0xffffffff))
	f.Add(uint32(0xfeff_cc86))
	f.Add(uint32(0x0003_2101))

	f.Fuzz(func(t *testing.T, word uint32) {
		assert := assert.New(t)

		in, ok := Decode(word)
		if !ok {
			return
		}

		encoded, err := in.Encode()
		assert.NoError(err)

		if in.Form == FORM_REGISTER {
			// Only bits 16-19 carry operand 2.
			word &= 0x000f_ffff
		}
		assert.Equal(word, encoded)
	})
}
