package auth

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/budget-ledger/internal"
	"github.com/frahmantamala/budget-ledger/internal/user"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository is the account storage the auth service needs.
type UserRepository interface {
	GetByEmail(email string) (*user.User, error)
	Create(u *user.User) error
}

type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// SignUp creates an account. The user row starts with balance 0; from
// then on the balance column belongs to the balance mutator.
func (s *Service) SignUp(dto SignUpDTO) (*user.User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("sign-up email lookup failed", "error", err)
		return nil, err
	}
	if existing != nil {
		return nil, internal.NewConflictError("email already exists", internal.ErrCodeEmailTaken)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &user.User{
		Email:        dto.Email,
		PasswordHash: string(hash),
		FirstName:    dto.FirstName,
		LastName:     dto.LastName,
		Balance:      0,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(u); err != nil {
		s.logger.Error("failed to create user", "error", err)
		return nil, err
	}

	s.logger.Info("user signed up", "user_id", u.ID)
	return u, nil
}

// Authenticate validates credentials and returns an access token.
func (s *Service) Authenticate(dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	u, err := s.userRepo.GetByEmail(dto.Email)
	if err != nil {
		s.logger.Error("sign-in email lookup failed", "error", err)
		return AuthTokens{}, err
	}
	if u == nil {
		return AuthTokens{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, ErrInvalidCredentials
	}

	token, err := s.tokenGenerator.GenerateAccessToken(u.ID)
	if err != nil {
		s.logger.Error("failed to generate token", "error", err, "user_id", u.ID)
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken: token,
		TokenType:   "Bearer",
	}, nil
}

// ValidateAccessToken verifies the token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateToken(tokenString)
}
