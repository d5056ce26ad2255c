package core

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/wirelogic/instr"
)

var _ = Describe("InstEmulator", func() {
	var (
		ie     instEmulator
		values map[instr.Wire]instr.Value
		read   wireReader
	)

	BeforeEach(func() {
		ie = instEmulator{}
		values = map[instr.Wire]instr.Value{
			"x": 123,
			"y": 456,
		}
		read = func(w instr.Wire) (instr.Value, bool) {
			v, ok := values[w]
			return v, ok
		}
	})

	DescribeTable("bitwise operations",
		func(line string, expected instr.Value) {
			inst := MustParseInstruction(line)

			v, ok := ie.RunInst(inst.Op, read)

			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(expected))
		},
		Entry("literal", "7 -> a", instr.Value(7)),
		Entry("copy", "x -> a", instr.Value(123)),
		Entry("and", "x AND y -> d", instr.Value(72)),
		Entry("and with literal", "1 AND x -> d", instr.Value(1)),
		Entry("or", "x OR y -> e", instr.Value(507)),
		Entry("lshift", "x LSHIFT 2 -> f", instr.Value(492)),
		Entry("rshift", "y RSHIFT 2 -> g", instr.Value(114)),
		Entry("not x", "NOT x -> h", instr.Value(65412)),
		Entry("not y", "NOT y -> i", instr.Value(65079)),
		Entry("lshift truncates", "y LSHIFT 10 -> j", instr.Value(456<<10&0xffff)),
		Entry("lshift past width", "x LSHIFT 16 -> k", instr.Value(0)),
		Entry("rshift past width", "y RSHIFT 40 -> l", instr.Value(0)),
	)

	It("should wait for unresolved inputs", func() {
		for _, line := range []string{
			"z -> a", "NOT z -> a", "z AND x -> a", "x AND z -> a",
			"x OR z -> a", "z OR x -> a", "z LSHIFT 1 -> a", "z RSHIFT 1 -> a",
		} {
			_, ok := ie.RunInst(MustParseInstruction(line).Op, read)
			Expect(ok).To(BeFalse(), line)
		}
	})

	It("should evaluate against a value map", func() {
		v, ok := Eval(instr.Or{Lhs: "x", Rhs: "y"}, values)
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(instr.Value(507)))
	})
})
