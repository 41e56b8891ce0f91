package emulator

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ezrec/q16/asm"
	"github.com/ezrec/q16/isa"
	"github.com/ezrec/q16/obj"
)

const (
	ASSERT_STEP_LIMIT = 1_000_000 // Default step limit per assertion.
)

var (
	_assert_comment = regexp.MustCompile(`;assert.*`)
	_assert_check   = regexp.MustCompile(`(\w+)=(\d+)`)
)

// Assertion is a set of expected register values.
type Assertion struct {
	LineNo int
	Checks []Check
}

// Check is a single expected register value.
type Check struct {
	Register isa.Register
	Value    uint16
}

// ParseAssertions finds every ';assert reg=value ...' comment in a
// program. Register names are given without the '%' prefix, and values
// are decimal.
func ParseAssertions(source string) (asserts []Assertion, err error) {
	for n, line := range strings.Split(source, "\n") {
		comment := _assert_comment.FindString(line)
		if len(comment) == 0 {
			continue
		}

		assert := Assertion{LineNo: n + 1}
		for _, match := range _assert_check.FindAllStringSubmatch(comment, -1) {
			reg, ok := isa.RegisterByName(strings.ToLower(match[1]))
			if !ok {
				err = ErrAssertRegister(match[1])
				return
			}
			var value uint64
			value, err = strconv.ParseUint(match[2], 10, 16)
			if err != nil {
				err = ErrAssertMalformed
				return
			}
			assert.Checks = append(assert.Checks, Check{Register: reg, Value: uint16(value)})
		}
		asserts = append(asserts, assert)
	}

	return
}

// Build assembles and links a single source program, with the emulator
// defines available as equates.
func (emu *Emulator) Build(source string) (image []byte, err error) {
	as := &asm.Assembler{Verbose: emu.Verbose}
	for name, value := range emu.Defines() {
		as.Predefine(name, value)
	}

	o, err := as.Assemble(strings.NewReader(source))
	if err != nil {
		return
	}

	image, err = obj.Link(o)

	return
}

// RunAsserts builds and loads a program, then checks each assertion in
// order. Before each check, RUN is set and the program runs until RUN
// clears.
func (emu *Emulator) RunAsserts(source string) (err error) {
	asserts, err := ParseAssertions(source)
	if err != nil {
		return
	}

	if len(asserts) == 0 {
		err = ErrAssertNone
		return
	}

	image, err := emu.Build(source)
	if err != nil {
		return
	}

	err = emu.Load(image)
	if err != nil {
		return
	}

	limit := emu.StepLimit
	if limit == 0 {
		limit = ASSERT_STEP_LIMIT
	}

	for n, assert := range asserts {
		emu.Cpu.SetRun(true)
		for steps := 0; emu.Cpu.Running(); steps++ {
			if steps >= limit {
				err = &ErrRuntime{Pc: emu.Cpu.Registers.Pc, Err: ErrStepLimit}
				return
			}
			_, err = emu.Tick()
			if err != nil {
				return
			}
		}

		for _, check := range assert.Checks {
			found := emu.Cpu.Registers.Read(check.Register)
			if found != check.Value {
				err = &ErrAssert{
					Index:    n + 1,
					Register: check.Register,
					Expect:   check.Value,
					Found:    found,
				}
				return
			}
		}
	}

	return
}

