package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/budget-ledger/internal/balance"
	"github.com/frahmantamala/budget-ledger/internal/transaction"
	"gorm.io/gorm"
)

// TransactionRepository implements transaction.Repository using GORM.
// Create and Delete run as single database transactions spanning the
// balance mutation and the row write, so a failure in either step
// leaves no partial effect.
type TransactionRepository struct {
	db      *gorm.DB
	mutator balance.Mutator
}

func NewTransactionRepository(db *gorm.DB) transaction.Repository {
	return &TransactionRepository{db: db, mutator: balance.NewMutator()}
}

func (r *TransactionRepository) Create(txn *transaction.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := r.mutator.Apply(tx, txn.UserID, txn.CategoryID, txn.Kind, txn.Amount, balance.Forward); err != nil {
			return err
		}
		return tx.Create(txn).Error
	})
}

func (r *TransactionRepository) GetByID(id, userID int64) (*transaction.Transaction, error) {
	var txn transaction.Transaction
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&txn).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, transaction.ErrTransactionNotFound
		}
		return nil, err
	}
	return &txn, nil
}

func (r *TransactionRepository) GetByUserID(userID int64) ([]*transaction.Transaction, error) {
	var txns []*transaction.Transaction
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&txns).Error
	return txns, err
}

// UpdateEditable writes only memo, description and updated_at. Amount,
// kind and category columns are never part of the update.
func (r *TransactionRepository) UpdateEditable(txn *transaction.Transaction) error {
	res := r.db.Model(&transaction.Transaction{}).
		Where("id = ? AND user_id = ?", txn.ID, txn.UserID).
		Updates(map[string]interface{}{
			"memo":        txn.Memo,
			"description": txn.Description,
			"updated_at":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return transaction.ErrTransactionNotFound
	}
	return nil
}

func (r *TransactionRepository) Delete(txn *transaction.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", txn.ID, txn.UserID).
			Delete(&transaction.Transaction{})
		if res.Error != nil {
			return res.Error
		}
		// A concurrent delete may have removed the row after the
		// caller loaded it; aborting here keeps the reversal from
		// being applied twice.
		if res.RowsAffected == 0 {
			return transaction.ErrTransactionNotFound
		}

		return r.mutator.Apply(tx, txn.UserID, txn.CategoryID, txn.Kind, txn.Amount, balance.Reverse)
	})
}
