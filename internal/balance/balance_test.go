package balance_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/budget-ledger/internal/balance"
)

func TestBalance(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Balance Suite")
}

var _ = Describe("Kind", func() {
	It("accepts DEBIT and CREDIT only", func() {
		Expect(balance.KindDebit.Valid()).To(BeTrue())
		Expect(balance.KindCredit.Valid()).To(BeTrue())
		Expect(balance.Kind("TRANSFER").Valid()).To(BeFalse())
		Expect(balance.Kind("debit").Valid()).To(BeFalse())
		Expect(balance.Kind("").Valid()).To(BeFalse())
	})

	It("signs amounts by kind", func() {
		Expect(balance.KindCredit.Signed(500)).To(Equal(int64(500)))
		Expect(balance.KindDebit.Signed(500)).To(Equal(int64(-500)))
	})
})

var _ = Describe("Delta", func() {
	It("adds on credit forward", func() {
		delta, err := balance.Delta(balance.KindCredit, balance.Forward, 500)
		Expect(err).NotTo(HaveOccurred())
		Expect(delta).To(Equal(int64(500)))
	})

	It("subtracts on debit forward", func() {
		delta, err := balance.Delta(balance.KindDebit, balance.Forward, 500)
		Expect(err).NotTo(HaveOccurred())
		Expect(delta).To(Equal(int64(-500)))
	})

	It("subtracts on credit reverse", func() {
		delta, err := balance.Delta(balance.KindCredit, balance.Reverse, 500)
		Expect(err).NotTo(HaveOccurred())
		Expect(delta).To(Equal(int64(-500)))
	})

	It("adds on debit reverse", func() {
		delta, err := balance.Delta(balance.KindDebit, balance.Reverse, 500)
		Expect(err).NotTo(HaveOccurred())
		Expect(delta).To(Equal(int64(500)))
	})

	It("rejects unknown kinds", func() {
		_, err := balance.Delta(balance.Kind("TRANSFER"), balance.Forward, 500)
		Expect(err).To(MatchError(balance.ErrUnknownKind))
	})
})
