package postgres

import (
	"errors"

	"github.com/frahmantamala/budget-ledger/internal/category"
	"github.com/frahmantamala/budget-ledger/internal/transaction"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) category.RepositoryAPI {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(cat *category.Category) error {
	return r.db.Create(cat).Error
}

func (r *CategoryRepository) GetByID(id, userID int64) (*category.Category, error) {
	var cat category.Category
	err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&cat).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, category.ErrCategoryNotFound
		}
		return nil, err
	}
	return &cat, nil
}

func (r *CategoryRepository) GetByUserID(userID int64) ([]*category.Category, error) {
	var categories []*category.Category
	err := r.db.Where("user_id = ?", userID).
		Order("name ASC").
		Find(&categories).Error
	return categories, err
}

// Update writes only the editable columns; balance stays with the
// balance mutator.
func (r *CategoryRepository) Update(cat *category.Category) error {
	res := r.db.Model(&category.Category{}).
		Where("id = ? AND user_id = ?", cat.ID, cat.UserID).
		Updates(map[string]interface{}{
			"name":        cat.Name,
			"description": cat.Description,
			"updated_at":  cat.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) Delete(id, userID int64) error {
	res := r.db.Where("id = ? AND user_id = ?", id, userID).
		Delete(&category.Category{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}

func (r *CategoryRepository) GetTransactions(categoryID int64) ([]*transaction.Transaction, error) {
	var txns []*transaction.Transaction
	err := r.db.Where("category_id = ?", categoryID).
		Order("created_at DESC").
		Find(&txns).Error
	return txns, err
}
