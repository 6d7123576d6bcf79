package transaction

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/frahmantamala/budget-ledger/internal"
	"github.com/frahmantamala/budget-ledger/internal/balance"
	"github.com/frahmantamala/budget-ledger/internal/transport"
	"github.com/frahmantamala/budget-ledger/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	CreateTransaction(userID int64, dto CreateTransactionDTO) (*Transaction, error)
	GetTransaction(userID, transactionID int64) (*Transaction, error)
	GetUserTransactions(userID int64) ([]*Transaction, error)
	UpdateTransaction(userID, transactionID int64, dto UpdateTransactionDTO) (*Transaction, error)
	DeleteTransaction(userID, transactionID int64) error
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

func (h *Handler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := internal.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	txns, err := h.Service.GetUserTransactions(userID)
	if err != nil {
		h.Logger.Error("ListTransactions: service error", "error", err, "user_id", userID)
		h.writeDomainError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, txns)
}

func (h *Handler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := internal.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateTransaction: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txn, err := h.Service.CreateTransaction(userID, dto)
	if err != nil {
		h.Logger.Error("CreateTransaction: service error", "error", err, "user_id", userID)
		h.writeDomainError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, txn)
}

func (h *Handler) GetTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := internal.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	transactionID, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid transaction ID")
		return
	}

	txn, err := h.Service.GetTransaction(userID, transactionID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, txn)
}

func (h *Handler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := internal.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	transactionID, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid transaction ID")
		return
	}

	var dto UpdateTransactionDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateTransaction: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	txn, err := h.Service.UpdateTransaction(userID, transactionID, dto)
	if err != nil {
		h.Logger.Error("UpdateTransaction: service error", "error", err, "transaction_id", transactionID, "user_id", userID)
		h.writeDomainError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, txn)
}

func (h *Handler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	userID, ok := internal.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	transactionID, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid transaction ID")
		return
	}

	if err := h.Service.DeleteTransaction(userID, transactionID); err != nil {
		h.Logger.Error("DeleteTransaction: service error", "error", err, "transaction_id", transactionID, "user_id", userID)
		h.writeDomainError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *Handler) pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, balance.ErrInsufficientFunds):
		h.WriteError(w, http.StatusBadRequest, "insufficient balance")
	case errors.Is(err, balance.ErrCategoryNotFound):
		h.WriteError(w, http.StatusNotFound, "category not found or unauthorized")
	case errors.Is(err, balance.ErrUserNotFound):
		h.WriteError(w, http.StatusNotFound, "user not found")
	case errors.Is(err, ErrTransactionNotFound):
		h.WriteError(w, http.StatusNotFound, "transaction not found or unauthorized")
	default:
		h.HandleServiceError(w, err)
	}
}
