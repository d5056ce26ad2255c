package main

import (
	"bufio"
	_ "embed"
	"fmt"
	"strings"

	"github.com/sarchlab/akita/v4/sim"
	"github.com/tebeka/atexit"

	"github.com/sarchlab/wirelogic/config"
	"github.com/sarchlab/wirelogic/core"
)

//go:embed circuit.txt
var circuit string

func main() {
	prog, err := core.LoadProgram(
		bufio.NewScanner(strings.NewReader(circuit)), core.StopOnError)
	if err != nil {
		panic(err)
	}

	core.PrintProgram(prog)

	engine := sim.NewSerialEngine()

	platform := config.PlatformBuilder{}.
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		Build("Device")

	values, err := platform.Run(prog, nil)
	if err != nil {
		panic(err)
	}

	fmt.Println(core.RenderValues(values))
	fmt.Printf("settled after %d cycles\n", platform.Core.Cycles())

	atexit.Exit(0)
}
