package cpu

import (
	"fmt"

	"github.com/ezrec/q16/isa"
)

// Registers is the stored register file. r0 has no storage.
type Registers struct {
	R   [8]uint16 // r1-r8
	Pc  uint16
	Sp  uint16
	Ra  uint16
	Sts uint16
}

// Slot returns the storage of a register, or nil for r0 and unknown selectors.
func (regs *Registers) Slot(reg isa.Register) *uint16 {
	switch reg {
	case isa.REG_R1, isa.REG_R2, isa.REG_R3, isa.REG_R4,
		isa.REG_R5, isa.REG_R6, isa.REG_R7, isa.REG_R8:
		return &regs.R[reg-isa.REG_R1]
	case isa.REG_PC:
		return &regs.Pc
	case isa.REG_SP:
		return &regs.Sp
	case isa.REG_RA:
		return &regs.Ra
	case isa.REG_STS:
		return &regs.Sts
	}

	return nil
}

// Read returns the value of a register. r0 always reads as zero.
func (regs *Registers) Read(reg isa.Register) uint16 {
	slot := regs.Slot(reg)
	if slot == nil {
		return 0
	}

	return *slot
}

// Write sets the value of a register. Writes to r0 are discarded.
func (regs *Registers) Write(reg isa.Register, value uint16) {
	slot := regs.Slot(reg)
	if slot != nil {
		*slot = value
	}
}

// Flag returns a status bit.
func (regs *Registers) Flag(bit int) bool {
	return (regs.Sts & (1 << bit)) != 0
}

// SetFlag sets or clears a status bit.
func (regs *Registers) SetFlag(bit int, on bool) {
	if on {
		regs.Sts |= 1 << bit
	} else {
		regs.Sts &^= 1 << bit
	}
}

// String returns the register file as text.
func (regs *Registers) String() (text string) {
	for _, reg := range isa.Registers {
		text += fmt.Sprintf("% 4s: %04x\n", reg.String(), regs.Read(reg))
	}

	return
}
