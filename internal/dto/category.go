package dto

import (
	"strings"

	"fintrack/internal/models"
)

type CategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Validate checks the payload and fills in the default type. An omitted
// type means the category accepts both transaction types.
func (r *CategoryRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return &ValidationError{"name is required"}
	}
	if r.Type == "" {
		r.Type = string(models.CategoryTypeAny)
	}
	if !models.CategoryType(r.Type).Valid() {
		return &ValidationError{"type must be one of income, expense, any"}
	}
	return nil
}

type CategoryResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func NewCategoryResponse(category *models.Category) CategoryResponse {
	return CategoryResponse{
		ID:        category.ID.String(),
		UserID:    category.UserID.String(),
		Name:      category.Name,
		Type:      string(category.Type),
		CreatedAt: category.CreatedAt.Format(timeLayout),
		UpdatedAt: category.UpdatedAt.Format(timeLayout),
	}
}

type MessageResponse struct {
	Message string `json:"message"`
}
