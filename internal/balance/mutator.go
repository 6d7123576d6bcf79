package balance

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// userRow and categoryRow map only the columns the mutator is allowed
// to touch. Balance columns are written by this package and nowhere
// else.
type userRow struct {
	ID      int64
	Balance int64
}

func (userRow) TableName() string { return "users" }

type categoryRow struct {
	ID      int64
	UserID  int64
	Balance int64
}

func (categoryRow) TableName() string { return "categories" }

// Mutator applies the balance effect of a transaction to the owning
// user and category inside the caller's database transaction.
type Mutator struct{}

func NewMutator() Mutator { return Mutator{} }

// Apply loads both balances under row locks, checks the prospective
// balances and writes the new values. Locks are always taken user row
// first, then category row, so concurrent units on the same owner
// cannot deadlock. The category load is scoped to the owner: a
// category belonging to another user is indistinguishable from a
// missing one.
//
// The non-negativity check runs whenever the delta drains funds
// (DEBIT forward, CREDIT reverse) and compares the prospective
// balances, not the raw amount, so state that is already at zero is
// handled correctly.
func (Mutator) Apply(tx *gorm.DB, userID, categoryID int64, kind Kind, amount int64, direction Direction) error {
	delta, err := Delta(kind, direction, amount)
	if err != nil {
		return err
	}

	var user userRow
	if err := forUpdate(tx).Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	var category categoryRow
	if err := forUpdate(tx).Where("id = ? AND user_id = ?", categoryID, userID).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	newUserBalance := user.Balance + delta
	newCategoryBalance := category.Balance + delta

	if delta < 0 && (newUserBalance < 0 || newCategoryBalance < 0) {
		return ErrInsufficientFunds
	}

	if err := tx.Model(&userRow{}).Where("id = ?", userID).Update("balance", newUserBalance).Error; err != nil {
		return err
	}
	if err := tx.Model(&categoryRow{}).Where("id = ?", categoryID).Update("balance", newCategoryBalance).Error; err != nil {
		return err
	}

	return nil
}

// forUpdate adds a row lock on dialects that support it. The sqlite
// databases used in tests have no FOR UPDATE syntax; their
// transactions take a database-wide write lock instead.
func forUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
