package category

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/frahmantamala/budget-ledger/internal"
	"github.com/frahmantamala/budget-ledger/internal/transaction"
	"github.com/frahmantamala/budget-ledger/internal/transport"
	"github.com/frahmantamala/budget-ledger/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	GetCategories(userID int64) ([]*Category, error)
	CreateCategory(userID int64, dto CreateCategoryDTO) (*Category, error)
	GetCategory(userID, categoryID int64) (*Category, error)
	UpdateCategory(userID, categoryID int64, dto UpdateCategoryDTO) (*Category, error)
	DeleteCategory(userID, categoryID int64) error
	GetCategoryTransactions(userID, categoryID int64) ([]*transaction.Transaction, error)
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

func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	userID, ok := internal.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	categories, err := h.Service.GetCategories(userID)
	if err != nil {
		h.Logger.Error("ListCategories: service error", "error", err, "user_id", userID)
		h.writeDomainError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, categories)
}

func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := internal.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateCategory: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cat, err := h.Service.CreateCategory(userID, dto)
	if err != nil {
		h.Logger.Error("CreateCategory: service error", "error", err, "user_id", userID)
		h.writeDomainError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, cat)
}

func (h *Handler) GetCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := internal.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	categoryID, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	cat, err := h.Service.GetCategory(userID, categoryID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, cat)
}

func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := internal.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	categoryID, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	var dto UpdateCategoryDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateCategory: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	cat, err := h.Service.UpdateCategory(userID, categoryID, dto)
	if err != nil {
		h.Logger.Error("UpdateCategory: service error", "error", err, "category_id", categoryID, "user_id", userID)
		h.writeDomainError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, cat)
}

func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	userID, ok := internal.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	categoryID, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	if err := h.Service.DeleteCategory(userID, categoryID); err != nil {
		h.Logger.Error("DeleteCategory: service error", "error", err, "category_id", categoryID, "user_id", userID)
		h.writeDomainError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (h *Handler) GetCategoryTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := internal.UserIDFromContext(r.Context())
	if !ok {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	categoryID, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid category ID")
		return
	}

	txns, err := h.Service.GetCategoryTransactions(userID, categoryID)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, txns)
}

func (h *Handler) pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) writeDomainError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrCategoryNotFound) {
		h.WriteError(w, http.StatusNotFound, "category not found or unauthorized")
		return
	}
	h.HandleServiceError(w, err)
}
