package category

import (
	"errors"
	"time"

	"github.com/frahmantamala/budget-ledger/internal/transaction"
)

// Category is a budget envelope owned by exactly one user. Its
// balance is derived state: it starts at zero and is only ever moved
// by the balance mutator alongside the owning user's balance.
type Category struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      int64     `json:"user_id" gorm:"column:user_id;not null"`
	Name        string    `json:"name" gorm:"not null"`
	Description *string   `json:"description,omitempty"`
	Balance     int64     `json:"balance" gorm:"not null;default:0"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Category) TableName() string {
	return "categories"
}

var (
	// ErrCategoryNotFound covers both a missing id and an id owned by
	// another user.
	ErrCategoryNotFound = errors.New("category not found or unauthorized")
)

// RepositoryAPI is the data access contract for categories.
type RepositoryAPI interface {
	Create(cat *Category) error
	GetByID(id, userID int64) (*Category, error)
	GetByUserID(userID int64) ([]*Category, error)
	Update(cat *Category) error
	Delete(id, userID int64) error
	GetTransactions(categoryID int64) ([]*transaction.Transaction, error)
}

func NewCategory(userID int64, dto CreateCategoryDTO) *Category {
	now := time.Now()
	return &Category{
		UserID:      userID,
		Name:        dto.Name,
		Description: dto.Description,
		Balance:     0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}
