package http

import (
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/google/uuid"
)

// CreateCategoryRequest: тело запроса на создание категории.
// Если is_active не передан, категория создаётся активной.
type CreateCategoryRequest struct {
	Name        string  `json:"name" example:"Filmes"`
	Description *string `json:"description" example:"Categoria de filmes"`
	IsActive    *bool   `json:"is_active,omitempty" example:"true"`
}

// UpdateCategoryRequest: тело запроса на изменение категории.
// Отсутствующие description и is_active не меняются.
type UpdateCategoryRequest struct {
	Name        string  `json:"name" example:"Séries"`
	Description *string `json:"description,omitempty"`
	IsActive    *bool   `json:"is_active,omitempty"`
}

type CategoryResponse struct {
	ID          uuid.UUID `json:"id" example:"6f1c1f9a-3a54-4d8b-9b5b-3d2f0c8f6a11"`
	Name        string    `json:"name" example:"Filmes"`
	Description string    `json:"description" example:"Categoria de filmes"`
	IsActive    bool      `json:"is_active" example:"true"`
	CreatedAt   time.Time `json:"created_at"`
}

type ListMeta struct {
	Page    int   `json:"page" example:"1"`
	PerPage int   `json:"per_page" example:"15"`
	Total   int64 `json:"total" example:"42"`
}

type ListCategoriesResponse struct {
	Data []CategoryResponse `json:"data"`
	Meta ListMeta           `json:"meta"`
}

func (r *CreateCategoryRequest) toInput() *usecase.CreateCategoryInput {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}

	return &usecase.CreateCategoryInput{
		Name:        r.Name,
		Description: r.Description,
		IsActive:    isActive,
	}
}

func (r *UpdateCategoryRequest) toInput(id uuid.UUID) *usecase.UpdateCategoryInput {
	return &usecase.UpdateCategoryInput{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		IsActive:    r.IsActive,
	}
}

func newCategoryResponse(out *usecase.CategoryOutput) CategoryResponse {
	return CategoryResponse{
		ID:          out.ID,
		Name:        out.Name,
		Description: out.Description,
		IsActive:    out.IsActive,
		CreatedAt:   out.CreatedAt,
	}
}

func newListCategoriesResponse(out *usecase.ListCategoriesOutput) *ListCategoriesResponse {
	data := make([]CategoryResponse, 0, len(out.Items))
	for i := range out.Items {
		data = append(data, newCategoryResponse(&out.Items[i]))
	}

	return &ListCategoriesResponse{
		Data: data,
		Meta: ListMeta{Page: out.Page, PerPage: out.PerPage, Total: out.Total},
	}
}
