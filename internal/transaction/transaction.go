package transaction

import (
	"errors"
	"time"

	"github.com/frahmantamala/budget-ledger/internal/balance"
)

// Transaction is a single debit or credit against one of the owner's
// categories. Amount is a positive magnitude; the sign lives in Kind.
// Amount, kind and category are immutable after creation, only memo
// and description can be edited.
type Transaction struct {
	ID          int64        `json:"id" gorm:"primaryKey"`
	UserID      int64        `json:"user_id" gorm:"column:user_id;not null"`
	CategoryID  int64        `json:"category_id" gorm:"column:category_id;not null"`
	Kind        balance.Kind `json:"type" gorm:"column:type;not null"`
	Amount      int64        `json:"amount" gorm:"not null"`
	Memo        string       `json:"memo" gorm:"not null"`
	Description *string      `json:"description,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func (Transaction) TableName() string {
	return "transactions"
}

var (
	// ErrTransactionNotFound covers both a missing id and an id owned
	// by another user; callers cannot tell the two apart.
	ErrTransactionNotFound = errors.New("transaction not found or unauthorized")
)

func NewTransaction(userID int64, dto CreateTransactionDTO) *Transaction {
	now := time.Now()
	return &Transaction{
		UserID:      userID,
		CategoryID:  dto.CategoryID,
		Kind:        balance.Kind(dto.Kind),
		Amount:      dto.Amount,
		Memo:        dto.Memo,
		Description: dto.Description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
