package auth

import (
	"strings"

	"github.com/frahmantamala/budget-ledger/internal"
)

type SignUpDTO struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

func (dto SignUpDTO) Validate() error {
	if dto.Email == "" || !strings.Contains(dto.Email, "@") {
		return internal.NewValidationError("a valid email is required", internal.ErrCodeValidationFailed)
	}
	if len(dto.Password) < 8 {
		return internal.NewValidationError("password must be at least 8 characters", internal.ErrCodeValidationFailed)
	}
	if dto.FirstName == "" || dto.LastName == "" {
		return internal.NewValidationError("firstname and lastname are required", internal.ErrCodeValidationFailed)
	}
	return nil
}

type LoginDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (dto LoginDTO) Validate() error {
	if dto.Email == "" || dto.Password == "" {
		return internal.NewValidationError("email and password are required", internal.ErrCodeValidationFailed)
	}
	return nil
}
