package core_test

import (
	"errors"
	"fmt"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/wirelogic/core"
	"github.com/sarchlab/wirelogic/instr"
)

func expectParseError(line string, kind core.ErrorKind, pos int) *core.ParseError {
	_, err := core.ParseInstruction(line)
	Expect(err).To(HaveOccurred())

	var perr *core.ParseError
	Expect(errors.As(err, &perr)).To(BeTrue())
	Expect(perr.Kind).To(Equal(kind), perr.Error())
	Expect(perr.Position).To(Equal(pos), perr.Error())
	Expect(perr.Input).To(Equal(line))

	return perr
}

var _ = Describe("ParseInstruction", func() {
	DescribeTable("valid lines",
		func(line string, expected instr.Instruction) {
			inst, err := core.ParseInstruction(line)
			Expect(err).NotTo(HaveOccurred())
			Expect(inst).To(Equal(expected))
		},
		Entry("literal", "1 -> a",
			instr.Instruction{Op: instr.AssignSignal{Src: instr.Value(1)}, Target: "a"}),
		Entry("wire copy", "lx -> a",
			instr.Instruction{Op: instr.AssignSignal{Src: instr.Wire("lx")}, Target: "a"}),
		Entry("not", "NOT a -> b",
			instr.Instruction{Op: instr.Not{Src: "a"}, Target: "b"}),
		Entry("and of wires", "a AND b -> d",
			instr.Instruction{Op: instr.And{Lhs: instr.Wire("a"), Rhs: "b"}, Target: "d"}),
		Entry("and with literal", "1 AND cx -> cy",
			instr.Instruction{Op: instr.And{Lhs: instr.Value(1), Rhs: "cx"}, Target: "cy"}),
		Entry("or", "x OR y -> e",
			instr.Instruction{Op: instr.Or{Lhs: "x", Rhs: "y"}, Target: "e"}),
		Entry("lshift", "x LSHIFT 2 -> f",
			instr.Instruction{Op: instr.LShift{Src: "x", Amount: 2}, Target: "f"}),
		Entry("rshift", "p RSHIFT 3 -> q",
			instr.Instruction{Op: instr.RShift{Src: "p", Amount: 3}, Target: "q"}),
		Entry("largest value", "65535 -> a",
			instr.Instruction{Op: instr.AssignSignal{Src: instr.Value(65535)}, Target: "a"}),
		Entry("leading zeros", "007 -> a",
			instr.Instruction{Op: instr.AssignSignal{Src: instr.Value(7)}, Target: "a"}),
		Entry("self reference", "a OR a -> a",
			instr.Instruction{Op: instr.Or{Lhs: "a", Rhs: "a"}, Target: "a"}),
	)

	It("should assign every value to every wire", func() {
		wires := []instr.Wire{"a", "zz", "abcdefghijklmnopqrstuvwxyz"}
		values := []instr.Value{0, 1, 9, 10, 255, 256, 32768, 65534, 65535}

		for _, w := range wires {
			for _, v := range values {
				line := fmt.Sprintf("%d -> %s", v, w)

				inst, err := core.ParseInstruction(line)

				Expect(err).NotTo(HaveOccurred(), line)
				Expect(inst).To(Equal(instr.Instruction{
					Op:     instr.AssignSignal{Src: v},
					Target: w,
				}))
			}
		}
	})

	It("should parse AND with a wire or a literal on the left", func() {
		for _, a := range []instr.Wire{"a", "lf", "xyz"} {
			for _, b := range []instr.Wire{"b", "lq"} {
				inst, err := core.ParseInstruction(fmt.Sprintf("%s AND %s -> w", a, b))
				Expect(err).NotTo(HaveOccurred())
				Expect(inst.Op).To(Equal(instr.And{Lhs: a, Rhs: b}))

				inst, err = core.ParseInstruction(fmt.Sprintf("42 AND %s -> w", b))
				Expect(err).NotTo(HaveOccurred())
				Expect(inst.Op).To(Equal(instr.And{Lhs: instr.Value(42), Rhs: b}))
			}
		}
	})

	It("should not take a shift for a bare assignment", func() {
		inst, err := core.ParseInstruction("x LSHIFT 2 -> y")

		Expect(err).NotTo(HaveOccurred())
		Expect(inst.Op).To(Equal(instr.LShift{Src: "x", Amount: 2}))
		Expect(inst.Target).To(Equal(instr.Wire("y")))
	})

	It("should round trip the text form", func() {
		insts := []instr.Instruction{
			{Op: instr.AssignSignal{Src: instr.Value(44430)}, Target: "b"},
			{Op: instr.AssignSignal{Src: instr.Wire("lx")}, Target: "a"},
			{Op: instr.Not{Src: "dq"}, Target: "dr"},
			{Op: instr.And{Lhs: instr.Value(1), Rhs: "io"}, Target: "ip"},
			{Op: instr.And{Lhs: instr.Wire("ke"), Rhs: "kg"}, Target: "kh"},
			{Op: instr.Or{Lhs: "kk", Rhs: "kl"}, Target: "km"},
			{Op: instr.LShift{Src: "he", Amount: 15}, Target: "hi"},
			{Op: instr.RShift{Src: "hb", Amount: 5}, Target: "he"},
		}

		for _, inst := range insts {
			Expect(core.ParseInstruction(inst.String())).To(Equal(inst))
		}
	})

	Context("when the line is malformed", func() {
		It("should report the furthest unexpected token", func() {
			perr := expectParseError("turn on 1", core.UnexpectedToken, 4)

			Expect(perr.Expected).To(ConsistOf(
				`" AND "`, `" OR "`, `" LSHIFT "`, `" RSHIFT "`, `" -> "`))
			Expect(errors.Is(perr, core.ErrUnexpectedToken)).To(BeTrue())
			Expect(perr.Error()).To(ContainSubstring("unexpected ' ' at offset 4"))
		})

		It("should report an empty line", func() {
			perr := expectParseError("", core.UnexpectedToken, 0)

			Expect(perr.Expected).To(ConsistOf(`"NOT "`, "value", "wire"))
			Expect(perr.Error()).To(ContainSubstring("end of line"))
		})

		It("should require a wire after NOT", func() {
			perr := expectParseError("NOT 1 -> a", core.UnexpectedToken, 4)
			Expect(perr.Expected).To(ConsistOf("wire"))
		})

		It("should require a value as shift amount", func() {
			perr := expectParseError("a LSHIFT b -> c", core.UnexpectedToken, 9)
			Expect(perr.Expected).To(ConsistOf("value"))
		})

		It("should not accept a literal on either side of OR", func() {
			expectParseError("1 OR a -> b", core.UnexpectedToken, 1)
		})

		It("should not accept a literal on the right of AND", func() {
			perr := expectParseError("a AND 1 -> b", core.UnexpectedToken, 6)
			Expect(perr.Expected).To(ConsistOf("wire"))
		})

		It("should require an arrow", func() {
			perr := expectParseError("a AND b", core.UnexpectedToken, 7)
			Expect(perr.Expected).To(ConsistOf(`" -> "`))
		})

		It("should require a lowercase target", func() {
			perr := expectParseError("1 -> B", core.UnexpectedToken, 5)
			Expect(perr.Expected).To(ConsistOf("wire"))
			Expect(perr.Pointer()).To(Equal("     ^"))
		})

		It("should not tolerate extra spaces", func() {
			expectParseError("a  AND b -> c", core.UnexpectedToken, 1)
			expectParseError(" 1 -> a", core.UnexpectedToken, 0)
			expectParseError("1 ->  a", core.UnexpectedToken, 5)
		})
	})

	Context("when a number is too large", func() {
		It("should report overflow instead of wrapping", func() {
			perr := expectParseError("70000 -> a", core.NumericOverflow, 0)

			Expect(errors.Is(perr, core.ErrNumericOverflow)).To(BeTrue())
			Expect(perr.Error()).To(ContainSubstring("70000"))
		})

		It("should report overflow of 65536", func() {
			expectParseError("65536 -> a", core.NumericOverflow, 0)
		})

		It("should report overflow inside an AND", func() {
			expectParseError("99999 AND a -> b", core.NumericOverflow, 0)
		})

		It("should report overflow of a shift amount", func() {
			expectParseError("a LSHIFT 70000 -> b", core.NumericOverflow, 9)
		})
	})

	Context("when input remains after the instruction", func() {
		It("should reject the trailing text", func() {
			perr := expectParseError("1 -> a extra", core.TrailingInput, 6)

			Expect(errors.Is(perr, core.ErrTrailingInput)).To(BeTrue())
			Expect(perr.Error()).To(ContainSubstring(`" extra"`))
		})

		It("should reject a trailing newline", func() {
			expectParseError("a OR b -> c\n", core.TrailingInput, 11)
		})

		It("should reject digits glued to the target", func() {
			expectParseError("NOT a -> b1", core.TrailingInput, 10)
		})
	})

	It("should panic in the Must form", func() {
		Expect(func() { core.MustParseInstruction("nope") }).To(Panic())
		Expect(core.MustParseInstruction("NOT a -> b").Target).
			To(Equal(instr.Wire("b")))
	})
})
