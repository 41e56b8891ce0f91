// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/ezrec/q16/asm"
	"github.com/ezrec/q16/emulator"
)

// defineFlags collects repeated -D NAME=VALUE options.
type defineFlags map[string]string

func (defs defineFlags) String() string {
	var list []string
	for name, value := range defs {
		list = append(list, name+"="+value)
	}
	return strings.Join(list, ",")
}

func (defs defineFlags) Set(text string) error {
	name, value, ok := strings.Cut(text, "=")
	if !ok {
		value = "1"
	}
	defs[name] = value
	return nil
}

func main() {
	var output string
	var verbose bool
	defines := defineFlags{}

	flag.StringVar(&output, "o", "", "Object file output")
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Var(defines, "D", "Predefine an equate, as NAME=VALUE")

	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("%v: Expected a single source file, got: %v", os.Args[0], flag.Args())
	}

	source := flag.Arg(0)
	if len(output) == 0 {
		output = strings.TrimSuffix(source, ".s") + ".o"
	}

	inf, err := os.Open(source)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}
	defer inf.Close()

	as := &asm.Assembler{Verbose: verbose}
	for name, value := range emulator.NewEmulator().Defines() {
		as.Predefine(name, value)
	}
	for name, value := range defines {
		as.Predefine(name, value)
	}

	o, err := as.Assemble(inf)
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	data, err := o.MarshalBinary()
	if err != nil {
		log.Fatalf("%v: %v", source, err)
	}

	err = os.WriteFile(output, data, 0o644)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}
}
