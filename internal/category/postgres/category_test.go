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
	categoryPostgres "github.com/frahmantamala/budget-ledger/internal/category/postgres"
	"github.com/frahmantamala/budget-ledger/internal/transaction"
	"github.com/frahmantamala/budget-ledger/internal/user"
)

func TestCategoryPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Category Postgres Suite")
}

var _ = Describe("Category Repository", func() {
	var (
		db   *gorm.DB
		repo category.RepositoryAPI
	)

	newCategory := func(userID int64, name string) *category.Category {
		now := time.Now()
		return &category.Category{
			UserID:    userID,
			Name:      name,
			Balance:   0,
			CreatedAt: now,
			UpdatedAt: now,
		}
	}

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&user.User{}, &category.Category{}, &transaction.Transaction{})).To(Succeed())

		Expect(db.Create(&user.User{ID: 1, Email: "one@mail.com", PasswordHash: "x"}).Error).NotTo(HaveOccurred())
		Expect(db.Create(&user.User{ID: 2, Email: "two@mail.com", PasswordHash: "x"}).Error).NotTo(HaveOccurred())

		repo = categoryPostgres.NewCategoryRepository(db)
	})

	Describe("Create and GetByID", func() {
		It("persists a category with balance zero", func() {
			cat := newCategory(1, "Groceries")
			Expect(repo.Create(cat)).To(Succeed())
			Expect(cat.ID).NotTo(BeZero())

			loaded, err := repo.GetByID(cat.ID, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Name).To(Equal("Groceries"))
			Expect(loaded.Balance).To(BeZero())
		})

		It("does not surface another user's category", func() {
			cat := newCategory(1, "Groceries")
			Expect(repo.Create(cat)).To(Succeed())

			_, err := repo.GetByID(cat.ID, 2)
			Expect(err).To(MatchError(category.ErrCategoryNotFound))
		})

		It("reports a missing id the same way as a foreign one", func() {
			_, err := repo.GetByID(999, 1)
			Expect(err).To(MatchError(category.ErrCategoryNotFound))
		})
	})

	Describe("GetByUserID", func() {
		It("lists only the owner's categories, sorted by name", func() {
			Expect(repo.Create(newCategory(1, "Rent"))).To(Succeed())
			Expect(repo.Create(newCategory(1, "Groceries"))).To(Succeed())
			Expect(repo.Create(newCategory(2, "Savings"))).To(Succeed())

			categories, err := repo.GetByUserID(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(categories).To(HaveLen(2))
			Expect(categories[0].Name).To(Equal("Groceries"))
			Expect(categories[1].Name).To(Equal("Rent"))
		})
	})

	Describe("Update", func() {
		It("changes name and description but never the balance", func() {
			cat := newCategory(1, "Groceries")
			Expect(repo.Create(cat)).To(Succeed())
			Expect(db.Model(cat).Update("balance", int64(500)).Error).NotTo(HaveOccurred())

			desc := "weekly shop"
			cat.Name = "Food"
			cat.Description = &desc
			cat.Balance = 0 // stale in-memory value must not be written back
			cat.UpdatedAt = time.Now()
			Expect(repo.Update(cat)).To(Succeed())

			loaded, err := repo.GetByID(cat.ID, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Name).To(Equal("Food"))
			Expect(loaded.Description).NotTo(BeNil())
			Expect(*loaded.Description).To(Equal("weekly shop"))
			Expect(loaded.Balance).To(Equal(int64(500)))
		})

		It("rejects an update against another user's category", func() {
			cat := newCategory(1, "Groceries")
			Expect(repo.Create(cat)).To(Succeed())

			foreign := *cat
			foreign.UserID = 2
			foreign.Name = "Hijacked"
			Expect(repo.Update(&foreign)).To(MatchError(category.ErrCategoryNotFound))

			loaded, err := repo.GetByID(cat.ID, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded.Name).To(Equal("Groceries"))
		})
	})

	Describe("Delete", func() {
		It("removes the owner's category", func() {
			cat := newCategory(1, "Groceries")
			Expect(repo.Create(cat)).To(Succeed())

			Expect(repo.Delete(cat.ID, 1)).To(Succeed())

			_, err := repo.GetByID(cat.ID, 1)
			Expect(err).To(MatchError(category.ErrCategoryNotFound))
		})

		It("refuses to delete a category owned by someone else", func() {
			cat := newCategory(1, "Groceries")
			Expect(repo.Create(cat)).To(Succeed())

			Expect(repo.Delete(cat.ID, 2)).To(MatchError(category.ErrCategoryNotFound))

			_, err := repo.GetByID(cat.ID, 1)
			Expect(err).NotTo(HaveOccurred())
		})
	})

	Describe("GetTransactions", func() {
		It("returns the category's transactions newest first", func() {
			cat := newCategory(1, "Groceries")
			other := newCategory(1, "Rent")
			Expect(repo.Create(cat)).To(Succeed())
			Expect(repo.Create(other)).To(Succeed())

			older := &transaction.Transaction{
				UserID: 1, CategoryID: cat.ID,
				Kind: balance.KindCredit, Amount: 100, Memo: "older",
				CreatedAt: time.Now().Add(-time.Hour), UpdatedAt: time.Now().Add(-time.Hour),
			}
			newer := &transaction.Transaction{
				UserID: 1, CategoryID: cat.ID,
				Kind: balance.KindDebit, Amount: 40, Memo: "newer",
				CreatedAt: time.Now(), UpdatedAt: time.Now(),
			}
			elsewhere := &transaction.Transaction{
				UserID: 1, CategoryID: other.ID,
				Kind: balance.KindCredit, Amount: 900, Memo: "elsewhere",
				CreatedAt: time.Now(), UpdatedAt: time.Now(),
			}
			for _, txn := range []*transaction.Transaction{older, newer, elsewhere} {
				Expect(db.Create(txn).Error).NotTo(HaveOccurred())
			}

			txns, err := repo.GetTransactions(cat.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(txns).To(HaveLen(2))
			Expect(txns[0].Memo).To(Equal("newer"))
			Expect(txns[1].Memo).To(Equal("older"))
		})
	})
})
