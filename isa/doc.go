// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package isa defines the q16 instruction set architecture.
//
// The q16 processor has eight 16-bit general-purpose registers (r1-r8), a
// program counter (pc), a stack pointer (sp), a return-address scratch
// register (ra), a status register (sts), and the hardwired zero register r0.
// Every instruction is 32 bits wide, stored as two little-endian halfwords, and
// takes either a register or a 16-bit immediate as its second operand.
package isa
