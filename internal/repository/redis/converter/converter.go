package converter

import "github.com/DRSN-tech/catalog-backend/internal/usecase"

// CategoryConverter преобразует CategoryOutput в модель кэша и обратно.
type CategoryConverter interface {
	ToRedisModel(entity *usecase.CategoryOutput) *CategoryRedisModel
	ToUseCase(model *CategoryRedisModel) *usecase.CategoryOutput
}

type categoryConverter struct{}

func NewCategoryConverter() CategoryConverter {
	return categoryConverter{}
}

func (categoryConverter) ToRedisModel(entity *usecase.CategoryOutput) *CategoryRedisModel {
	if entity == nil {
		return nil
	}

	return &CategoryRedisModel{
		ID:          entity.ID,
		Name:        entity.Name,
		Description: entity.Description,
		IsActive:    entity.IsActive,
		CreatedAt:   entity.CreatedAt,
	}
}

func (categoryConverter) ToUseCase(model *CategoryRedisModel) *usecase.CategoryOutput {
	if model == nil {
		return nil
	}

	return &usecase.CategoryOutput{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		IsActive:    model.IsActive,
		CreatedAt:   model.CreatedAt,
	}
}
