// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package asm implements the q16 assembler.
//
// Source is assembled one line at a time into a relocatable obj.Object.
// Label addresses are never resolved here: every label operand is recorded
// as a relocation use and patched by the linker.
package asm

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"strings"
	"unicode"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/q16/isa"
	"github.com/ezrec/q16/obj"
)

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO": "0",
}

// Assembler is a single pass assembler for the q16 system.
type Assembler struct {
	Verbose bool        // If set, verbosely logs the assembler actions.
	Object  *obj.Object // Object being assembled.

	predefine map[string]string // Predefines
	Equate    map[string]string // Map of equates.
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// Assemble assembles an input stream into an object.
// Assembly stops at the first error, which is returned as an *ErrSyntax.
func (asm *Assembler) Assemble(input io.Reader) (o *obj.Object, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
			o = nil
		}
	}()

	asm.Object = obj.New()
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1
		line = strings.TrimSpace(text)

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		err = asm.assembleLine(text, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	o = asm.Object
	return
}

// stripComment removes a trailing comment. An escaped semicolon (\;) does
// not start a comment, and is replaced by a plain semicolon.
func stripComment(text string) string {
	for n := 0; n < len(text); n++ {
		if text[n] == ';' && (n == 0 || text[n-1] != '\\') {
			text = text[:n]
			break
		}
	}

	return strings.TrimSpace(strings.ReplaceAll(text, `\;`, ";"))
}

var reCharacter = regexp.MustCompile(`'\\?[^']'`)
var reExpression = regexp.MustCompile(`\$\([^\$]*\)`)

// expandLine performs character literal and $(...) expression substitution.
func (asm *Assembler) expandLine(line string) (expanded string, err error) {
	// Do 'x' evaluations
	line = reCharacter.ReplaceAllStringFunc(line, func(word string) string {
		str := word[1 : len(word)-1]
		if str[0] == '\\' {
			switch str[1:] {
			case "\\":
				str = "\\"
			case "0":
				str = "\000"
			case "t":
				str = "\t"
			case "n":
				str = "\n"
			case "r":
				str = "\r"
			case "e":
				str = "\033"
			default:
				return word
			}
		} else if len(str) != 1 {
			return word
		}
		return fmt.Sprintf("%v", str[0])
	})

	// Do $() evaluations
	line = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("0x%x", value)
	})

	expanded = line
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value uint16, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var value16 uint16
		value16, err = parseNumber(str)
		if err != nil {
			// Ignore non-integer equates. They may be registers
			// or labels.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(int(value16))
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = uint16(st_int64)
	return
}

// assembleLine assembles a single line of source text.
func (asm *Assembler) assembleLine(text string, lineno int) (err error) {
	// Set line number.
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	line := stripComment(text)
	if len(line) == 0 {
		return
	}

	line, err = asm.expandLine(line)
	if err != nil {
		return
	}

	if label, ok := strings.CutSuffix(line, ":"); ok {
		// Interior whitespace is part of the name, as for operands.
		label = strings.TrimSpace(label)
		if len(label) == 0 {
			err = ErrLabelInvalid
			return
		}
		return asm.Object.InsertLabel(label)
	}

	mnemonic, rest := line, ""
	if n := strings.IndexFunc(line, unicode.IsSpace); n >= 0 {
		mnemonic, rest = line[:n], line[n+1:]
	}
	mnemonic = strings.ToLower(mnemonic)

	words := splitOperands(rest)

	// .equ NAME, VALUE
	if mnemonic == ".equ" {
		if len(words) != 2 || len(words[0]) == 0 || len(words[1]) == 0 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[0]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[0]] = words[1]
		return
	}

	operands := make([]operand, len(words))
	for n, word := range words {
		// Check for equate first
		equate, ok := asm.Equate[word]
		if ok {
			word = equate
		}
		operands[n], err = parseOperand(word)
		if err != nil {
			return
		}
	}

	return asm.assembleInstr(mnemonic, operands)
}

// splitOperands splits comma separated operands. A trailing comma
// does not introduce an operand.
func splitOperands(rest string) (words []string) {
	rest = strings.TrimSpace(rest)
	if len(rest) == 0 {
		return
	}

	words = strings.Split(rest, ",")
	if len(words[len(words)-1]) == 0 {
		words = words[:len(words)-1]
	}
	for n := range words {
		words[n] = strings.TrimSpace(words[n])
	}

	return
}

// assembleInstr assembles a real or pseudo instruction.
func (asm *Assembler) assembleInstr(mnemonic string, operands []operand) (err error) {
	op, ok := isa.OpcodeByName(mnemonic)
	if !ok {
		pseudo, ok := pseudoMap[mnemonic]
		if !ok {
			err = ErrMnemonicUnknown(mnemonic)
			return
		}
		return pseudo(asm, mnemonic, operands)
	}

	switch {
	case op.IsAlu():
		err = expectCount(mnemonic, operands, 3)
		if err != nil {
			return
		}
		err = asm.assemble3(mnemonic, op, operands[0], operands[1], operands[2])
	case op.IsLoad(), op.IsStore():
		switch len(operands) {
		case 3:
			err = asm.assemble3(mnemonic, op, operands[0], operands[1], operands[2])
		case 2:
			err = asm.assemble2(mnemonic, op, operands[0], operands[1])
		default:
			err = ErrOperandCount{Mnemonic: mnemonic, Expect: "2 or 3", Found: len(operands)}
		}
	case op.IsBranch():
		switch len(operands) {
		case 2:
			err = asm.assemble3(mnemonic, op, register(isa.REG_R0), operands[0], operands[1])
		case 1:
			err = asm.assemble2(mnemonic, op, register(isa.REG_R0), operands[0])
		default:
			err = ErrOperandCount{Mnemonic: mnemonic, Expect: "1 or 2", Found: len(operands)}
		}
	}

	return
}

// expectCount checks for an exact operand count.
func expectCount(mnemonic string, operands []operand, count int) (err error) {
	if len(operands) != count {
		err = ErrOperandCount{Mnemonic: mnemonic, Expect: fmt.Sprintf("%d", count), Found: len(operands)}
	}

	return
}

// assemble3 assembles rd, r1, and a register, literal, or label operand 2.
// A literal subtraction is emitted as addition of the negated literal.
func (asm *Assembler) assemble3(mnemonic string, op isa.Opcode, rd, r1, op2 operand) (err error) {
	if rd.Kind != OPERAND_REGISTER || r1.Kind != OPERAND_REGISTER {
		err = ErrOperandInvalid(mnemonic)
		return
	}

	var instr isa.Instruction
	switch op2.Kind {
	case OPERAND_REGISTER:
		if !op.HasRegisterForm() {
			err = ErrOperandInvalid(mnemonic)
			return
		}
		instr = isa.MakeR(op, rd.Register, r1.Register, op2.Register)
	case OPERAND_LITERAL:
		value := op2.Value
		if op == isa.OP_SUB {
			op = isa.OP_ADD
			value = -value
		}
		if !op.HasImmediateForm() {
			err = ErrOperandInvalid(mnemonic)
			return
		}
		instr = isa.MakeI(op, rd.Register, r1.Register, value)
	case OPERAND_LABEL:
		if !op.HasImmediateForm() {
			err = ErrOperandInvalid(mnemonic)
			return
		}
		err = asm.Object.InsertUse(op2.Label, 2)
		if err != nil {
			return
		}
		instr = isa.MakeI(op, rd.Register, r1.Register, 0)
	}

	return asm.Object.EmitInstruction(instr)
}

// assemble2 assembles rd and a register, literal or label source.
// A register source is used as r1 with an immediate of zero; a literal or
// label source is used as the immediate with r1 as r0.
func (asm *Assembler) assemble2(mnemonic string, op isa.Opcode, rd, src operand) (err error) {
	switch src.Kind {
	case OPERAND_REGISTER:
		return asm.assemble3(mnemonic, op, rd, src, literal(0))
	default:
		return asm.assemble3(mnemonic, op, rd, register(isa.REG_R0), src)
	}
}
