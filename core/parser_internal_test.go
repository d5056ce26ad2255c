package core

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("operationParsers", func() {
	It("should try the bare signal last", func() {
		names := make([]string, 0, len(operationParsers))
		for _, p := range operationParsers {
			names = append(names, p.name)
		}

		Expect(names).To(Equal([]string{
			"NOT", "AND", "OR", "LSHIFT", "RSHIFT", "ASSIGN",
		}))
	})

	It("should restore the position after a failed alternative", func() {
		s := &scanner{src: "x LSHIFT 2 -> y"}

		_, ok := s.opAnd()
		Expect(ok).To(BeFalse())

		s.pos = 0
		op, ok := s.operation()
		Expect(ok).To(BeTrue())
		Expect(op.String()).To(Equal("x LSHIFT 2"))
		Expect(s.pos).To(Equal(len("x LSHIFT 2")))
	})

	It("should merge expectations at the same offset", func() {
		s := &scanner{src: "ab"}
		s.pos = 2
		s.fail("wire")
		s.fail("wire")
		s.fail(`" -> "`)
		s.pos = 1
		s.fail("value")

		Expect(s.failPos).To(Equal(2))
		Expect(s.expected).To(Equal([]string{"wire", `" -> "`}))
	})
})
