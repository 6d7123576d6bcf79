package transaction

import (
	"log/slog"
	"time"
)

// Repository is the data access contract for transactions. Create and
// Delete are atomic units: the balance mutation and the row write
// both commit or neither does.
type Repository interface {
	Create(txn *Transaction) error
	GetByID(id, userID int64) (*Transaction, error)
	GetByUserID(userID int64) ([]*Transaction, error)
	UpdateEditable(txn *Transaction) error
	Delete(txn *Transaction) error
}

// Service orchestrates the transaction lifecycle: validation,
// ownership scoping and the paired balance effect.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateTransaction records a transaction and applies its balance
// effect in one atomic unit. A DEBIT that would push the user or
// category balance below zero is rejected with no state change.
func (s *Service) CreateTransaction(userID int64, dto CreateTransactionDTO) (*Transaction, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("transaction validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	txn := NewTransaction(userID, dto)
	if err := s.repo.Create(txn); err != nil {
		s.logger.Error("failed to create transaction",
			"error", err,
			"user_id", userID,
			"category_id", dto.CategoryID,
			"type", dto.Kind,
			"amount", dto.Amount)
		return nil, err
	}

	s.logger.Info("transaction created",
		"transaction_id", txn.ID,
		"user_id", userID,
		"category_id", txn.CategoryID,
		"type", txn.Kind,
		"amount", txn.Amount)

	return txn, nil
}

// GetTransaction returns the transaction scoped to its owner.
func (s *Service) GetTransaction(userID, transactionID int64) (*Transaction, error) {
	txn, err := s.repo.GetByID(transactionID, userID)
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// GetUserTransactions lists all of the owner's transactions.
func (s *Service) GetUserTransactions(userID int64) ([]*Transaction, error) {
	txns, err := s.repo.GetByUserID(userID)
	if err != nil {
		s.logger.Error("failed to list transactions", "error", err, "user_id", userID)
		return nil, err
	}
	return txns, nil
}

// UpdateTransaction edits memo and description only; it has no
// balance effect.
func (s *Service) UpdateTransaction(userID, transactionID int64, dto UpdateTransactionDTO) (*Transaction, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("transaction update validation failed", "error", err, "user_id", userID)
		return nil, err
	}

	txn, err := s.repo.GetByID(transactionID, userID)
	if err != nil {
		return nil, err
	}

	txn.Memo = dto.Memo
	txn.Description = dto.Description
	txn.UpdatedAt = time.Now()

	if err := s.repo.UpdateEditable(txn); err != nil {
		s.logger.Error("failed to update transaction", "error", err, "transaction_id", transactionID)
		return nil, err
	}

	return txn, nil
}

// DeleteTransaction removes a transaction and reverses its balance
// effect in one atomic unit. Reversing a CREDIT subtracts funds, so
// it runs through the same prospective-balance check as a debit.
func (s *Service) DeleteTransaction(userID, transactionID int64) error {
	txn, err := s.repo.GetByID(transactionID, userID)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(txn); err != nil {
		s.logger.Error("failed to delete transaction",
			"error", err,
			"transaction_id", transactionID,
			"user_id", userID)
		return err
	}

	s.logger.Info("transaction deleted",
		"transaction_id", transactionID,
		"user_id", userID,
		"type", txn.Kind,
		"amount", txn.Amount)

	return nil
}
