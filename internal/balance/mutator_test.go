package balance_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/budget-ledger/internal/balance"
	"github.com/frahmantamala/budget-ledger/internal/category"
	"github.com/frahmantamala/budget-ledger/internal/user"
)

var _ = Describe("Mutator", func() {
	var (
		db      *gorm.DB
		mutator balance.Mutator
	)

	userBalance := func(id int64) int64 {
		var u user.User
		Expect(db.First(&u, id).Error).NotTo(HaveOccurred())
		return u.Balance
	}

	categoryBalance := func(id int64) int64 {
		var c category.Category
		Expect(db.First(&c, id).Error).NotTo(HaveOccurred())
		return c.Balance
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&user.User{}, &category.Category{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&user.User{
			ID:           1,
			Email:        "owner@mail.com",
			PasswordHash: "x",
			FirstName:    "Owner",
			LastName:     "One",
			Balance:      500,
		}).Error).NotTo(HaveOccurred())

		Expect(db.Create(&category.Category{
			ID:      1,
			UserID:  1,
			Name:    "Groceries",
			Balance: 500,
		}).Error).NotTo(HaveOccurred())

		mutator = balance.NewMutator()
	})

	It("moves user and category balances together on credit forward", func() {
		err := mutator.Apply(db, 1, 1, balance.KindCredit, 200, balance.Forward)
		Expect(err).NotTo(HaveOccurred())

		Expect(userBalance(1)).To(Equal(int64(700)))
		Expect(categoryBalance(1)).To(Equal(int64(700)))
	})

	It("drains both balances on debit forward", func() {
		err := mutator.Apply(db, 1, 1, balance.KindDebit, 500, balance.Forward)
		Expect(err).NotTo(HaveOccurred())

		Expect(userBalance(1)).To(Equal(int64(0)))
		Expect(categoryBalance(1)).To(Equal(int64(0)))
	})

	It("rejects a debit that would overdraw, leaving balances unchanged", func() {
		err := mutator.Apply(db, 1, 1, balance.KindDebit, 600, balance.Forward)
		Expect(err).To(MatchError(balance.ErrInsufficientFunds))

		Expect(userBalance(1)).To(Equal(int64(500)))
		Expect(categoryBalance(1)).To(Equal(int64(500)))
	})

	It("checks the prospective balance, not the raw amount, on credit reverse", func() {
		// Category holds only 500; reversing a credit of 600 would
		// leave it negative even though the user could absorb it.
		Expect(db.Model(&user.User{}).Where("id = ?", 1).Update("balance", 1000).Error).NotTo(HaveOccurred())

		err := mutator.Apply(db, 1, 1, balance.KindCredit, 600, balance.Reverse)
		Expect(err).To(MatchError(balance.ErrInsufficientFunds))

		Expect(userBalance(1)).To(Equal(int64(1000)))
		Expect(categoryBalance(1)).To(Equal(int64(500)))
	})

	It("reinstates funds on debit reverse without a funds check", func() {
		err := mutator.Apply(db, 1, 1, balance.KindDebit, 500, balance.Reverse)
		Expect(err).NotTo(HaveOccurred())

		Expect(userBalance(1)).To(Equal(int64(1000)))
		Expect(categoryBalance(1)).To(Equal(int64(1000)))
	})

	It("rejects an unknown kind before touching state", func() {
		err := mutator.Apply(db, 1, 1, balance.Kind("TRANSFER"), 100, balance.Forward)
		Expect(err).To(MatchError(balance.ErrUnknownKind))

		Expect(userBalance(1)).To(Equal(int64(500)))
	})

	It("reports a missing user", func() {
		err := mutator.Apply(db, 99, 1, balance.KindCredit, 100, balance.Forward)
		Expect(err).To(MatchError(balance.ErrUserNotFound))
	})

	It("treats another owner's category as missing", func() {
		Expect(db.Create(&user.User{
			ID:           2,
			Email:        "other@mail.com",
			PasswordHash: "x",
			FirstName:    "Other",
			LastName:     "Two",
		}).Error).NotTo(HaveOccurred())

		err := mutator.Apply(db, 2, 1, balance.KindCredit, 100, balance.Forward)
		Expect(err).To(MatchError(balance.ErrCategoryNotFound))
	})
})
