package category

import (
	"log/slog"
	"time"

	"github.com/frahmantamala/budget-ledger/internal/transaction"
)

type Service struct {
	repo   RepositoryAPI
	logger *slog.Logger
}

func NewService(repo RepositoryAPI, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) GetCategories(userID int64) ([]*Category, error) {
	categories, err := s.repo.GetByUserID(userID)
	if err != nil {
		s.logger.Error("failed to list categories", "error", err, "user_id", userID)
		return nil, err
	}
	return categories, nil
}

func (s *Service) CreateCategory(userID int64, dto CreateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("category validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	cat := NewCategory(userID, dto)
	if err := s.repo.Create(cat); err != nil {
		s.logger.Error("failed to create category", "error", err, "user_id", userID)
		return nil, err
	}

	s.logger.Info("category created", "category_id", cat.ID, "user_id", userID, "name", cat.Name)
	return cat, nil
}

func (s *Service) GetCategory(userID, categoryID int64) (*Category, error) {
	cat, err := s.repo.GetByID(categoryID, userID)
	if err != nil {
		return nil, err
	}
	return cat, nil
}

// UpdateCategory edits name and description; the balance column is
// never written here.
func (s *Service) UpdateCategory(userID, categoryID int64, dto UpdateCategoryDTO) (*Category, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("category update validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	cat, err := s.repo.GetByID(categoryID, userID)
	if err != nil {
		return nil, err
	}

	cat.Name = dto.Name
	cat.Description = dto.Description
	cat.UpdatedAt = time.Now()

	if err := s.repo.Update(cat); err != nil {
		s.logger.Error("failed to update category", "error", err, "category_id", categoryID)
		return nil, err
	}

	return cat, nil
}

// DeleteCategory removes the category row; the schema cascades the
// delete to the category's transactions.
func (s *Service) DeleteCategory(userID, categoryID int64) error {
	if _, err := s.repo.GetByID(categoryID, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(categoryID, userID); err != nil {
		s.logger.Error("failed to delete category", "error", err, "category_id", categoryID)
		return err
	}

	s.logger.Info("category deleted", "category_id", categoryID, "user_id", userID)
	return nil
}

// GetCategoryTransactions lists the category's transactions after
// verifying the category belongs to the caller.
func (s *Service) GetCategoryTransactions(userID, categoryID int64) ([]*transaction.Transaction, error) {
	if _, err := s.repo.GetByID(categoryID, userID); err != nil {
		return nil, err
	}

	txns, err := s.repo.GetTransactions(categoryID)
	if err != nil {
		s.logger.Error("failed to list category transactions", "error", err, "category_id", categoryID)
		return nil, err
	}
	return txns, nil
}
