package cpu

import (
	"testing"

	"github.com/ezrec/q16/isa"
	"github.com/stretchr/testify/assert"
)

func loadProgram(t *testing.T, cpu *Cpu, program ...isa.Instruction) {
	for n, in := range program {
		data, err := in.Bytes()
		if err != nil {
			t.Fatalf("%v: %v", in, err)
		}
		copy(cpu.Memory[n*isa.INSTRUCTION_SIZE:], data[:])
	}
}

func TestCpuRegisterZero(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	loadProgram(t, cpu,
		isa.MakeI(isa.OP_ADD, isa.REG_R0, isa.REG_R0, 0x1234),
		isa.MakeI(isa.OP_ADD, isa.REG_R1, isa.REG_R0, 0),
	)

	out := cpu.Step()
	assert.True(out.Valid)
	assert.Equal(uint16(0), cpu.Registers.Read(isa.REG_R0))
	assert.False(cpu.Registers.Flag(isa.STS_ZERO))

	cpu.Step()
	assert.Equal(uint16(0), cpu.Registers.Read(isa.REG_R1))
	assert.True(cpu.Registers.Flag(isa.STS_ZERO))
	assert.Equal(uint16(8), cpu.Registers.Pc)
}

func TestCpuAlu(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op     isa.Opcode
		a, b   uint16
		result uint16
		zero   bool
		neg    bool
	}){
		{isa.OP_ADD, 0xffff, 1, 0, true, false},
		{isa.OP_ADD, 0x7fff, 1, 0x8000, false, true},
		{isa.OP_SUB, 0, 1, 0xffff, false, true},
		{isa.OP_MUL, 0x100, 0x100, 0, true, false},
		{isa.OP_MUL, 7, 6, 42, false, false},
		{isa.OP_DIV, 42, 6, 7, false, false},
		{isa.OP_DIV, 0xfff9, 2, 0xfffd, false, true},
		{isa.OP_DIV, 0x8000, 0xffff, 0x8000, false, true},
		{isa.OP_DIV, 5, 0, 0xffff, false, true},
		{isa.OP_REM, 43, 6, 1, false, false},
		{isa.OP_REM, 0xfff9, 2, 0xffff, false, true},
		{isa.OP_REM, 5, 0, 0xffff, false, true},
		{isa.OP_AND, 0xf0f0, 0x0ff0, 0x00f0, false, false},
		{isa.OP_OR, 0xf000, 0x000f, 0xf00f, false, true},
		{isa.OP_XOR, 0x5555, 0x5555, 0, true, false},
	}

	for _, entry := range table {
		cpu := NewCpu()
		cpu.Registers.Write(isa.REG_R1, entry.a)
		cpu.Registers.Write(isa.REG_R2, entry.b)
		loadProgram(t, cpu, isa.MakeR(entry.op, isa.REG_R3, isa.REG_R1, isa.REG_R2))

		out := cpu.Step()
		assert.True(out.Valid, entry.op.String())
		assert.Equal(ACCESS_NONE, out.Access)
		assert.Equal(entry.result, cpu.Registers.Read(isa.REG_R3), entry.op.String())
		assert.Equal(entry.zero, cpu.Registers.Flag(isa.STS_ZERO), entry.op.String())
		assert.Equal(entry.neg, cpu.Registers.Flag(isa.STS_NEG), entry.op.String())
	}
}

func TestCpuAluStatusDestination(t *testing.T) {
	assert := assert.New(t)

	// Writing sts directly overrides the flags computed by the operation.
	cpu := NewCpu()
	loadProgram(t, cpu, isa.MakeI(isa.OP_AND, isa.REG_STS, isa.REG_STS, 0xfeff))
	cpu.SetRun(true)
	assert.True(cpu.Running())

	cpu.Step()
	assert.False(cpu.Running())
	assert.Equal(uint16(0), cpu.Registers.Sts)
}

func TestCpuMemory(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Registers.Write(isa.REG_R1, 0x1000)
	cpu.Registers.Write(isa.REG_R2, 0x1280)
	cpu.Memory[0x1004] = 0x80
	loadProgram(t, cpu,
		isa.MakeI(isa.OP_LB, isa.REG_R3, isa.REG_R1, 4),
		isa.MakeI(isa.OP_LBU, isa.REG_R4, isa.REG_R1, 4),
		isa.MakeI(isa.OP_SW, isa.REG_R2, isa.REG_R1, 0x10),
		isa.MakeI(isa.OP_LW, isa.REG_R5, isa.REG_R1, 0x10),
		isa.MakeI(isa.OP_SB, isa.REG_R2, isa.REG_R1, 0x20),
	)

	out := cpu.Step()
	assert.Equal(ACCESS_READ, out.Access)
	assert.Equal(uint16(0x1004), out.Address)
	assert.Equal(uint16(0xff80), cpu.Registers.Read(isa.REG_R3))

	cpu.Step()
	assert.Equal(uint16(0x0080), cpu.Registers.Read(isa.REG_R4))

	out = cpu.Step()
	assert.Equal(ACCESS_WRITE, out.Access)
	assert.Equal(uint16(0x1010), out.Address)
	assert.Equal(byte(0x80), cpu.Memory[0x1010])
	assert.Equal(byte(0x12), cpu.Memory[0x1011])

	cpu.Step()
	assert.Equal(uint16(0x1280), cpu.Registers.Read(isa.REG_R5))

	cpu.Step()
	assert.Equal(byte(0x80), cpu.Memory[0x1020])
	assert.Equal(byte(0x00), cpu.Memory[0x1021])
}

func TestCpuMemoryWrap(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Registers.Write(isa.REG_R1, 0xffff)
	cpu.Registers.Write(isa.REG_R2, 0xabcd)
	loadProgram(t, cpu,
		isa.MakeI(isa.OP_SB, isa.REG_R2, isa.REG_R1, 2),
		isa.MakeI(isa.OP_SW, isa.REG_R2, isa.REG_R1, 0),
		isa.MakeI(isa.OP_LW, isa.REG_R3, isa.REG_R1, 0),
	)

	out := cpu.Step()
	assert.Equal(uint16(1), out.Address)
	assert.Equal(byte(0xcd), cpu.Memory[1])

	out = cpu.Step()
	assert.Equal(uint16(0xffff), out.Address)
	assert.Equal(byte(0xcd), cpu.Memory[0xffff])

	cpu.Step()
	assert.Equal(uint16(0x00cd), cpu.Registers.Read(isa.REG_R3))
}

func TestCpuBranch(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		op    isa.Opcode
		sts   uint16
		taken bool
	}){
		{isa.OP_JEQ, 0, false},
		{isa.OP_JEQ, 1 << isa.STS_ZERO, true},
		{isa.OP_JNE, 0, true},
		{isa.OP_JNE, 1 << isa.STS_ZERO, false},
		{isa.OP_JGT, 1 << isa.STS_NEG, true},
		{isa.OP_JGT, 0, false},
		{isa.OP_JGT, (1 << isa.STS_NEG) | (1 << isa.STS_ZERO), false},
		{isa.OP_JLT, 0, true},
		{isa.OP_JLT, 1 << isa.STS_NEG, false},
		{isa.OP_JLT, 1 << isa.STS_ZERO, false},
	}

	for n, entry := range table {
		cpu := NewCpu()
		cpu.Registers.Sts = entry.sts
		cpu.Registers.Write(isa.REG_R1, 0x100)
		loadProgram(t, cpu, isa.MakeI(entry.op, isa.REG_R0, isa.REG_R1, 0x20))

		out := cpu.Step()
		assert.True(out.Valid, n)
		assert.Equal(ACCESS_NONE, out.Access, n)
		if entry.taken {
			assert.Equal(uint16(0x120), cpu.Registers.Pc, n)
		} else {
			assert.Equal(uint16(4), cpu.Registers.Pc, n)
		}
		assert.Equal(entry.sts, cpu.Registers.Sts, n)
	}
}

func TestCpuBranchRelative(t *testing.T) {
	assert := assert.New(t)

	// pc as the base register is the address of the next instruction.
	cpu := NewCpu()
	cpu.Registers.Sts = 1 << isa.STS_ZERO
	loadProgram(t, cpu, isa.MakeI(isa.OP_JEQ, isa.REG_R0, isa.REG_PC, 0xfffc))

	cpu.Step()
	assert.Equal(uint16(0), cpu.Registers.Pc)
}

func TestCpuIllegal(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Registers.Write(isa.REG_R1, 0x1234)
	cpu.Registers.Pc = 0x100
	cpu.Registers.Sp = 0x200
	cpu.SetRun(true)
	cpu.Memory[0x100] = 0x7f
	cpu.Memory[0x200] = 0x55

	out := cpu.Step()
	assert.False(out.Valid)
	assert.Equal(Registers{}, cpu.Registers)
	assert.False(cpu.Running())
	assert.Equal(byte(0x7f), cpu.Memory[0x100])
	assert.Equal(byte(0x55), cpu.Memory[0x200])
}

func TestCpuFetchWrap(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	in := isa.MakeI(isa.OP_ADD, isa.REG_R1, isa.REG_R0, 0x5a5a)
	data, err := in.Bytes()
	assert.NoError(err)
	copy(cpu.Memory[0xfffe:], data[:2])
	copy(cpu.Memory[0:], data[2:])
	cpu.Registers.Pc = 0xfffe

	out := cpu.Step()
	assert.True(out.Valid)
	assert.Equal(in, out.Instruction)
	assert.Equal(uint16(0x5a5a), cpu.Registers.Read(isa.REG_R1))
	assert.Equal(uint16(2), cpu.Registers.Pc)
}

func TestCpuLoad(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	err := cpu.Load([]byte{1, 2, 3})
	assert.NoError(err)
	assert.Equal([]byte{1, 2, 3, 0}, cpu.Memory[:4])

	err = cpu.Load(make([]byte, isa.MEMORY_SIZE+1))
	assert.ErrorIs(err, ErrImageTooLarge)

	cpu.Registers.Sp = 5
	cpu.Reset()
	assert.Equal(byte(0), cpu.Memory[0])
	assert.Equal(uint16(0), cpu.Registers.Sp)
}

func TestCpuState(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Memory[0x10] = 0xaa
	cpu.Memory[0xffff] = 0xbb
	cpu.Registers.Write(isa.REG_R1, 0x0102)
	cpu.Registers.Write(isa.REG_R8, 0x0807)
	cpu.Registers.Pc = 0x1234
	cpu.Registers.Sts = 0x0101

	data, err := cpu.MarshalBinary()
	assert.NoError(err)
	assert.Equal(STATE_SIZE, len(data))
	assert.Equal([]byte{0x02, 0x01}, data[isa.MEMORY_SIZE:isa.MEMORY_SIZE+2])
	assert.Equal([]byte{0x34, 0x12}, data[isa.MEMORY_SIZE+16:isa.MEMORY_SIZE+18])
	assert.Equal([]byte{0x01, 0x01}, data[STATE_SIZE-2:])

	other := NewCpu()
	err = other.UnmarshalBinary(data)
	assert.NoError(err)
	assert.Equal(cpu.Memory, other.Memory)
	assert.Equal(cpu.Registers, other.Registers)

	// Trailing data is ignored.
	err = other.UnmarshalBinary(append(data, 0xff))
	assert.NoError(err)
	assert.Equal(cpu.Registers, other.Registers)

	fresh := NewCpu()
	err = fresh.UnmarshalBinary(data[:STATE_SIZE-1])
	assert.ErrorIs(err, ErrStateShort)
	assert.Equal(Registers{}, fresh.Registers)
	assert.Equal(byte(0), fresh.Memory[0x10])
}
