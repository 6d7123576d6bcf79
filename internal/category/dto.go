package category

import "github.com/frahmantamala/budget-ledger/internal"

type CreateCategoryDTO struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (dto CreateCategoryDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeInvalidName)
	}
	if len(dto.Name) > 255 {
		return internal.NewValidationError("name must be less than 255 characters", internal.ErrCodeInvalidName)
	}
	return nil
}

// UpdateCategoryDTO carries the editable fields. Balance is derived
// state and cannot be set through the API.
type UpdateCategoryDTO struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (dto UpdateCategoryDTO) Validate() error {
	if dto.Name == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeInvalidName)
	}
	if len(dto.Name) > 255 {
		return internal.NewValidationError("name must be less than 255 characters", internal.ErrCodeInvalidName)
	}
	return nil
}
