package user

import (
	"errors"
	"time"
)

// User owns the ledger: its balance is the rollup of every
// transaction the user has recorded, maintained incrementally by the
// balance mutator. Users are created at sign-up with balance 0 and
// never deleted here.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null"`
	FirstName    string    `json:"first_name" gorm:"column:first_name;not null"`
	LastName     string    `json:"last_name" gorm:"column:last_name;not null"`
	Balance      int64     `json:"balance" gorm:"not null;default:0"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

var ErrUserNotFound = errors.New("user not found")

type RepositoryAPI interface {
	GetByID(id int64) (*User, error)
}
