package usecase

import "context"

type CategoryUC interface {
	CreateCategory(ctx context.Context, input *CreateCategoryInput) (*CategoryOutput, error)
	GetCategory(ctx context.Context, input *GetCategoryInput) (*CategoryOutput, error)
	UpdateCategory(ctx context.Context, input *UpdateCategoryInput) (*CategoryOutput, error)
	DeleteCategory(ctx context.Context, input *DeleteCategoryInput) error
	ListCategories(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error)
}
