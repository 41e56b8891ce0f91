package asm

import (
	"strconv"
	"strings"

	"github.com/ezrec/q16/isa"
)

// operandKind is the syntactic kind of an operand.
type operandKind int

const (
	OPERAND_REGISTER = operandKind(0) // %name
	OPERAND_LITERAL  = operandKind(1) // numeric literal
	OPERAND_LABEL    = operandKind(2) // label reference
)

// operand is a parsed instruction operand.
type operand struct {
	Kind     operandKind
	Register isa.Register
	Value    uint16
	Label    string
}

func register(reg isa.Register) operand {
	return operand{Kind: OPERAND_REGISTER, Register: reg}
}

func literal(value uint16) operand {
	return operand{Kind: OPERAND_LITERAL, Value: value}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// parseOperand parses a single trimmed operand word.
func parseOperand(word string) (op operand, err error) {
	if len(word) == 0 {
		err = ErrOperandEmpty
		return
	}

	switch {
	case word[0] == '%':
		reg, ok := isa.RegisterByName(strings.ToLower(word[1:]))
		if !ok {
			err = ErrRegisterUnknown(word)
			return
		}
		op = register(reg)
	case isDigit(word[0]):
		var value uint16
		value, err = parseNumber(word)
		if err != nil {
			return
		}
		op = literal(value)
	default:
		op = operand{Kind: OPERAND_LABEL, Label: word}
	}

	return
}

// parseNumber parses a 16-bit unsigned literal. Decimal by default, or
// hexadecimal, octal, or binary with a 0x, 0o, or 0b prefix.
func parseNumber(word string) (value uint16, err error) {
	base := 10
	digits := word

	if len(word) > 1 && word[0] == '0' && !isDigit(word[1]) {
		switch word[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		default:
			err = ErrParseNumber(word)
			return
		}
		digits = word[2:]
	}

	v64, err := strconv.ParseUint(digits, base, 16)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = uint16(v64)
	return
}
