package postgres

import (
	"errors"

	"github.com/frahmantamala/budget-ledger/internal/auth"
	"github.com/frahmantamala/budget-ledger/internal/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) auth.UserRepository {
	return &Repository{db: db}
}

// GetByEmail returns nil, nil when no account exists for the email.
func (r *Repository) GetByEmail(email string) (*user.User, error) {
	var u user.User
	err := r.db.Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) Create(u *user.User) error {
	return r.db.Create(u).Error
}
