package postgres_test

import (
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/budget-ledger/internal/balance"
	"github.com/frahmantamala/budget-ledger/internal/category"
	"github.com/frahmantamala/budget-ledger/internal/transaction"
	transactionPostgres "github.com/frahmantamala/budget-ledger/internal/transaction/postgres"
	"github.com/frahmantamala/budget-ledger/internal/user"
)

func TestTransactionPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Transaction Postgres Suite")
}

var _ = Describe("Transaction Repository", func() {
	var (
		db   *gorm.DB
		repo transaction.Repository
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

	transactionCount := func() int64 {
		var n int64
		Expect(db.Model(&transaction.Transaction{}).Count(&n).Error).NotTo(HaveOccurred())
		return n
	}

	// signedSum recomputes a balance from scratch; the stored
	// aggregates must always match it.
	signedSum := func(where string, arg int64) int64 {
		var txns []*transaction.Transaction
		Expect(db.Where(where, arg).Find(&txns).Error).NotTo(HaveOccurred())
		var sum int64
		for _, txn := range txns {
			sum += txn.Kind.Signed(txn.Amount)
		}
		return sum
	}

	newTxn := func(userID, categoryID int64, kind balance.Kind, amount int64) *transaction.Transaction {
		now := time.Now()
		return &transaction.Transaction{
			UserID:     userID,
			CategoryID: categoryID,
			Kind:       kind,
			Amount:     amount,
			Memo:       "test",
			CreatedAt:  now,
			UpdatedAt:  now,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&user.User{}, &category.Category{}, &transaction.Transaction{})
		Expect(err).NotTo(HaveOccurred())

		Expect(db.Create(&user.User{
			ID: 1, Email: "owner@mail.com", PasswordHash: "x",
			FirstName: "Owner", LastName: "One",
		}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&category.Category{ID: 1, UserID: 1, Name: "Groceries"}).Error).NotTo(HaveOccurred())

		repo = transactionPostgres.NewTransactionRepository(db)
	})

	Describe("Create", func() {
		It("credits both balances from zero", func() {
			err := repo.Create(newTxn(1, 1, balance.KindCredit, 500))
			Expect(err).NotTo(HaveOccurred())

			Expect(userBalance(1)).To(Equal(int64(500)))
			Expect(categoryBalance(1)).To(Equal(int64(500)))
		})

		It("rejects a debit exceeding the balance and writes nothing", func() {
			Expect(repo.Create(newTxn(1, 1, balance.KindCredit, 500))).To(Succeed())

			err := repo.Create(newTxn(1, 1, balance.KindDebit, 600))
			Expect(err).To(MatchError(balance.ErrInsufficientFunds))

			Expect(userBalance(1)).To(Equal(int64(500)))
			Expect(categoryBalance(1)).To(Equal(int64(500)))
			Expect(transactionCount()).To(Equal(int64(1)))
		})

		It("allows a debit down to exactly zero", func() {
			Expect(repo.Create(newTxn(1, 1, balance.KindCredit, 500))).To(Succeed())
			Expect(repo.Create(newTxn(1, 1, balance.KindDebit, 500))).To(Succeed())

			Expect(userBalance(1)).To(Equal(int64(0)))
			Expect(categoryBalance(1)).To(Equal(int64(0)))
		})

		It("rolls back the balance write when the row insert fails", func() {
			// The trigger fires after the balance step has already
			// run inside the same unit.
			Expect(db.Exec("CREATE TRIGGER reject_insert BEFORE INSERT ON transactions BEGIN SELECT RAISE(ABORT, 'boom'); END").Error).NotTo(HaveOccurred())

			err := repo.Create(newTxn(1, 1, balance.KindCredit, 500))
			Expect(err).To(HaveOccurred())

			Expect(userBalance(1)).To(Equal(int64(0)))
			Expect(categoryBalance(1)).To(Equal(int64(0)))
			Expect(transactionCount()).To(Equal(int64(0)))
		})

		It("rejects a category owned by another user", func() {
			Expect(db.Create(&user.User{
				ID: 2, Email: "other@mail.com", PasswordHash: "x",
				FirstName: "Other", LastName: "Two",
			}).Error).NotTo(HaveOccurred())

			err := repo.Create(newTxn(2, 1, balance.KindCredit, 100))
			Expect(err).To(MatchError(balance.ErrCategoryNotFound))
			Expect(transactionCount()).To(Equal(int64(0)))
		})

		It("draws a category debit from the user's whole balance", func() {
			Expect(db.Create(&category.Category{ID: 2, UserID: 1, Name: "Rent"}).Error).NotTo(HaveOccurred())

			Expect(repo.Create(newTxn(1, 1, balance.KindCredit, 300))).To(Succeed())
			Expect(repo.Create(newTxn(1, 2, balance.KindCredit, 300))).To(Succeed())
			Expect(repo.Create(newTxn(1, 1, balance.KindDebit, 300))).To(Succeed())

			Expect(userBalance(1)).To(Equal(int64(300)))
			Expect(categoryBalance(1)).To(Equal(int64(0)))
			Expect(categoryBalance(2)).To(Equal(int64(300)))
		})
	})

	Describe("Delete", func() {
		It("blocks reversing a credit whose funds were already spent", func() {
			txn := newTxn(1, 1, balance.KindCredit, 500)
			Expect(repo.Create(txn)).To(Succeed())
			Expect(repo.Create(newTxn(1, 1, balance.KindDebit, 500))).To(Succeed())

			loaded, err := repo.GetByID(txn.ID, 1)
			Expect(err).NotTo(HaveOccurred())

			// Reversing the credit would overdraw: the debit already
			// spent it.
			Expect(repo.Delete(loaded)).To(MatchError(balance.ErrInsufficientFunds))

			Expect(userBalance(1)).To(Equal(int64(0)))
			Expect(transactionCount()).To(Equal(int64(2)))
		})

		It("round-trips create then delete back to the starting state", func() {
			Expect(repo.Create(newTxn(1, 1, balance.KindCredit, 500))).To(Succeed())

			txn := newTxn(1, 1, balance.KindDebit, 500)
			Expect(repo.Create(txn)).To(Succeed())
			Expect(userBalance(1)).To(Equal(int64(0)))
			Expect(categoryBalance(1)).To(Equal(int64(0)))

			Expect(repo.Delete(txn)).To(Succeed())
			Expect(userBalance(1)).To(Equal(int64(500)))
			Expect(categoryBalance(1)).To(Equal(int64(500)))
		})

		It("does not reverse balances twice when the row is already gone", func() {
			txn := newTxn(1, 1, balance.KindCredit, 500)
			Expect(repo.Create(txn)).To(Succeed())

			Expect(repo.Delete(txn)).To(Succeed())
			Expect(repo.Delete(txn)).To(MatchError(transaction.ErrTransactionNotFound))

			Expect(userBalance(1)).To(Equal(int64(0)))
			Expect(categoryBalance(1)).To(Equal(int64(0)))
		})
	})

	Describe("invariants", func() {
		It("keeps stored balances equal to the signed sum of transactions", func() {
			Expect(db.Create(&category.Category{ID: 2, UserID: 1, Name: "Rent"}).Error).NotTo(HaveOccurred())

			Expect(repo.Create(newTxn(1, 1, balance.KindCredit, 1000))).To(Succeed())
			Expect(repo.Create(newTxn(1, 2, balance.KindCredit, 700))).To(Succeed())
			Expect(repo.Create(newTxn(1, 1, balance.KindDebit, 400))).To(Succeed())

			debit := newTxn(1, 2, balance.KindDebit, 200)
			Expect(repo.Create(debit)).To(Succeed())
			Expect(repo.Delete(debit)).To(Succeed())

			Expect(userBalance(1)).To(Equal(signedSum("user_id = ?", 1)))
			Expect(categoryBalance(1)).To(Equal(signedSum("category_id = ?", 1)))
			Expect(categoryBalance(2)).To(Equal(signedSum("category_id = ?", 2)))
		})
	})

	Describe("GetByID", func() {
		It("answers identically for a missing id and another owner's id", func() {
			Expect(db.Create(&user.User{
				ID: 2, Email: "other@mail.com", PasswordHash: "x",
				FirstName: "Other", LastName: "Two",
			}).Error).NotTo(HaveOccurred())

			txn := newTxn(1, 1, balance.KindCredit, 100)
			Expect(repo.Create(txn)).To(Succeed())

			_, missingErr := repo.GetByID(9999, 1)
			_, foreignErr := repo.GetByID(txn.ID, 2)

			Expect(missingErr).To(MatchError(transaction.ErrTransactionNotFound))
			Expect(foreignErr).To(MatchError(transaction.ErrTransactionNotFound))
		})
	})

	Describe("UpdateEditable", func() {
		It("writes memo and description without touching balances", func() {
			txn := newTxn(1, 1, balance.KindCredit, 500)
			Expect(repo.Create(txn)).To(Succeed())

			desc := "weekly shop"
			txn.Memo = "edited"
			txn.Description = &desc
			Expect(repo.UpdateEditable(txn)).To(Succeed())

			loaded, err := repo.GetByID(txn.ID, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Memo).To(Equal("edited"))
			Expect(loaded.Description).NotTo(BeNil())
			Expect(*loaded.Description).To(Equal("weekly shop"))
			Expect(loaded.Amount).To(Equal(int64(500)))

			Expect(userBalance(1)).To(Equal(int64(500)))
		})

		It("rejects an edit scoped to the wrong owner", func() {
			txn := newTxn(1, 1, balance.KindCredit, 500)
			Expect(repo.Create(txn)).To(Succeed())

			foreign := *txn
			foreign.UserID = 2
			Expect(repo.UpdateEditable(&foreign)).To(MatchError(transaction.ErrTransactionNotFound))
		})
	})
})
