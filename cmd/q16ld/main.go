// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"flag"
	"log"
	"os"

	"github.com/ezrec/q16/obj"
)

func main() {
	var output string

	flag.StringVar(&output, "o", "a.bin", "Binary image output")

	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatalf("%v: No object files given", os.Args[0])
	}

	var objects []*obj.Object
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}

		o, err := obj.Load(data)
		if err != nil {
			log.Fatalf("%v: %v", path, err)
		}

		objects = append(objects, o)
	}

	image, err := obj.Link(objects...)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}

	err = os.WriteFile(output, image, 0o644)
	if err != nil {
		log.Fatalf("%v: %v", output, err)
	}
}
