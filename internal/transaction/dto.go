package transaction

import (
	"github.com/frahmantamala/budget-ledger/internal"
	"github.com/frahmantamala/budget-ledger/internal/balance"
)

// CreateTransactionDTO is the request payload for recording a
// transaction. The wire field is "type" to match the stored column.
type CreateTransactionDTO struct {
	CategoryID  int64   `json:"category_id"`
	Kind        string  `json:"type"`
	Amount      int64   `json:"amount"`
	Memo        string  `json:"memo"`
	Description *string `json:"description,omitempty"`
}

func (dto CreateTransactionDTO) Validate() error {
	if dto.CategoryID <= 0 {
		return internal.NewValidationError("category_id is required", internal.ErrCodeValidationFailed)
	}
	if !balance.Kind(dto.Kind).Valid() {
		return internal.NewValidationError("type must be DEBIT or CREDIT", internal.ErrCodeInvalidKind)
	}
	if dto.Amount <= 0 {
		return internal.NewValidationError("amount must be greater than 0", internal.ErrCodeInvalidAmount)
	}
	if dto.Memo == "" {
		return internal.NewValidationError("memo is required", internal.ErrCodeInvalidMemo)
	}
	return nil
}

// UpdateTransactionDTO carries the only editable fields. Changing
// amount, kind or category after creation is not supported.
type UpdateTransactionDTO struct {
	Memo        string  `json:"memo"`
	Description *string `json:"description,omitempty"`
}

func (dto UpdateTransactionDTO) Validate() error {
	if dto.Memo == "" {
		return internal.NewValidationError("memo is required", internal.ErrCodeInvalidMemo)
	}
	return nil
}
