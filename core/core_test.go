package core_test

import (
	"bufio"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/wirelogic/core"
	"github.com/sarchlab/wirelogic/instr"
)

func mustLoad(text string) core.Program {
	prog, err := core.LoadProgram(
		bufio.NewScanner(strings.NewReader(text)), core.StopOnError)
	Expect(err).NotTo(HaveOccurred())
	return prog
}

var _ = Describe("Core", func() {
	var (
		engine sim.Engine
		c      *core.Core
	)

	BeforeEach(func() {
		engine = sim.NewSerialEngine()
		c = core.NewBuilder().
			WithEngine(engine).
			WithFreq(1 * sim.GHz).
			Build("Circuit")
	})

	It("should resolve the sample circuit", func() {
		c.MapProgram(mustLoad(sampleCircuit), nil)

		Expect(engine.Run()).To(Succeed())

		Expect(c.Values()).To(Equal(map[instr.Wire]instr.Value{
			"d": 72, "e": 507, "f": 492, "g": 114,
			"h": 65412, "i": 65079, "x": 123, "y": 456,
		}))
		Expect(c.Unresolved()).To(BeEmpty())
		Expect(c.Cycles()).To(Equal(2))
	})

	It("should resolve one dependency level per cycle", func() {
		// Listed in reverse so every level waits for the one below it.
		c.MapProgram(mustLoad("c -> d\nb -> c\na -> b\n1 -> a\n"), nil)

		Expect(engine.Run()).To(Succeed())

		v, ok := c.Value("d")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(instr.Value(1)))
		Expect(c.Cycles()).To(Equal(4))
	})

	It("should honour overrides", func() {
		c.MapProgram(mustLoad("1 -> b\nb OR c -> a\n"), map[instr.Wire]instr.Value{
			"b": 8,
			"c": 3,
		})

		Expect(engine.Run()).To(Succeed())

		v, _ := c.Value("a")
		Expect(v).To(Equal(instr.Value(11)))
	})

	It("should let the last driver win", func() {
		c.MapProgram(mustLoad("1 -> a\n2 -> a\n"), nil)

		Expect(engine.Run()).To(Succeed())

		v, _ := c.Value("a")
		Expect(v).To(Equal(instr.Value(2)))
	})

	It("should leave undriven wires and cycles unresolved", func() {
		c.MapProgram(mustLoad("q -> a\nNOT c -> b\nb -> c\n5 -> e\n"), nil)

		Expect(engine.Run()).To(Succeed())

		Expect(c.Unresolved()).To(Equal([]instr.Wire{"a", "b", "c"}))
		v, ok := c.Value("e")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(instr.Value(5)))
	})
})
