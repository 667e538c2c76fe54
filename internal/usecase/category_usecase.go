package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
)

const (
	defaultPage    = 1
	defaultPerPage = 15
	defaultSort    = "name"
)

// CategoryUseCase реализует бизнес-логику управления категориями каталога.
// Ошибки репозитория и UnitOfWork пробрасываются без обёртки.
type CategoryUseCase struct {
	categoryRepo  CategoryRepository
	uow           UnitOfWork
	cacheRepo     CacheRepository
	logger        logger.Logger
	getValidator  *GetCategoryInputValidator
	listValidator *ListCategoriesInputValidator
	idValidator   *inputValidator
}

func NewCategoryUC(
	categoryRepo CategoryRepository,
	uow UnitOfWork,
	cacheRepo CacheRepository,
	logger logger.Logger,
) *CategoryUseCase {
	return &CategoryUseCase{
		categoryRepo:  categoryRepo,
		uow:           uow,
		cacheRepo:     cacheRepo,
		logger:        logger,
		getValidator:  NewGetCategoryInputValidator(),
		listValidator: NewListCategoriesInputValidator(),
		idValidator:   newInputValidator(),
	}
}

// CreateCategory создаёт категорию, сохраняет её и фиксирует транзакцию.
// Ошибка валидации агрегата возвращается как есть, до обращения к хранилищу.
func (c *CategoryUseCase) CreateCategory(ctx context.Context, input *CreateCategoryInput) (_ *CategoryOutput, err error) {
	const op = "CategoryUseCase.CreateCategory"

	category, err := domain.NewCategory(input.Name, input.Description, domain.WithIsActive(input.IsActive))
	if err != nil {
		return nil, err
	}

	ctx, err = c.uow.Begin(ctx)
	if err != nil {
		c.logger.Errorf(err, "%s: failed to begin transaction", op)
		return nil, err
	}
	defer c.rollbackOnError(ctx, op, &err)

	if err = c.categoryRepo.Insert(ctx, category); err != nil {
		c.logger.Errorf(err, "%s: failed to insert category %s", op, category.ID())
		return nil, err
	}

	if err = c.uow.Commit(ctx); err != nil {
		c.logger.Errorf(err, "%s: failed to commit category %s", op, category.ID())
		return nil, err
	}

	c.logger.Infof("%s: category %s created", op, category.ID())
	return NewCategoryOutput(category), nil
}

// GetCategory возвращает категорию по идентификатору, сначала заглядывая в кэш.
func (c *CategoryUseCase) GetCategory(ctx context.Context, input *GetCategoryInput) (*CategoryOutput, error) {
	const op = "CategoryUseCase.GetCategory"

	if result := c.getValidator.Validate(input); !result.IsValid {
		return nil, NewInputValidationError(result.Errors)
	}

	cached, err := c.cacheRepo.GetCategory(ctx, input.ID)
	if err != nil {
		c.logger.Warnf("%s: cache lookup failed: %v", op, err)
	}
	if cached != nil {
		return cached, nil
	}

	category, err := c.categoryRepo.Get(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	output := NewCategoryOutput(category)
	if err := c.cacheRepo.SetCategory(ctx, output); err != nil {
		c.logger.Warnf("%s: failed to cache category %s: %v", op, input.ID, err)
	}

	return output, nil
}

// UpdateCategory меняет имя, описание и активность категории.
func (c *CategoryUseCase) UpdateCategory(ctx context.Context, input *UpdateCategoryInput) (_ *CategoryOutput, err error) {
	const op = "CategoryUseCase.UpdateCategory"

	if result := c.idValidator.validateStruct(input); !result.IsValid {
		return nil, NewInputValidationError(result.Errors)
	}

	ctx, err = c.uow.Begin(ctx)
	if err != nil {
		c.logger.Errorf(err, "%s: failed to begin transaction", op)
		return nil, err
	}
	defer c.rollbackOnError(ctx, op, &err)

	category, err := c.categoryRepo.GetForUpdate(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err = category.Update(input.Name, input.Description); err != nil {
		return nil, err
	}

	if input.IsActive != nil {
		if *input.IsActive {
			category.Activate()
		} else {
			category.Deactivate()
		}
	}

	if err = c.categoryRepo.Update(ctx, category); err != nil {
		c.logger.Errorf(err, "%s: failed to update category %s", op, category.ID())
		return nil, err
	}

	// Кэш сбрасывается до коммита и ещё раз после него
	c.invalidate(ctx, op, category)

	if err = c.uow.Commit(ctx); err != nil {
		c.logger.Errorf(err, "%s: failed to commit category %s", op, category.ID())
		return nil, err
	}

	c.invalidate(ctx, op, category)
	c.logger.Infof("%s: category %s updated", op, category.ID())

	return NewCategoryOutput(category), nil
}

// DeleteCategory удаляет категорию. Для несуществующей категории возвращает e.ErrNotFound.
func (c *CategoryUseCase) DeleteCategory(ctx context.Context, input *DeleteCategoryInput) (err error) {
	const op = "CategoryUseCase.DeleteCategory"

	if result := c.idValidator.validateStruct(input); !result.IsValid {
		return NewInputValidationError(result.Errors)
	}

	ctx, err = c.uow.Begin(ctx)
	if err != nil {
		c.logger.Errorf(err, "%s: failed to begin transaction", op)
		return err
	}
	defer c.rollbackOnError(ctx, op, &err)

	category, err := c.categoryRepo.GetForUpdate(ctx, input.ID)
	if err != nil {
		return err
	}

	if err = c.categoryRepo.Delete(ctx, category); err != nil {
		c.logger.Errorf(err, "%s: failed to delete category %s", op, category.ID())
		return err
	}

	c.invalidate(ctx, op, category)

	if err = c.uow.Commit(ctx); err != nil {
		c.logger.Errorf(err, "%s: failed to commit category %s", op, category.ID())
		return err
	}

	c.invalidate(ctx, op, category)
	c.logger.Infof("%s: category %s deleted", op, category.ID())

	return nil
}

// ListCategories возвращает страницу категорий с фильтром по имени.
func (c *CategoryUseCase) ListCategories(ctx context.Context, input *ListCategoriesInput) (*ListCategoriesOutput, error) {
	normalized := withListDefaults(input)
	if result := c.listValidator.Validate(normalized); !result.IsValid {
		return nil, NewInputValidationError(result.Errors)
	}

	found, err := c.categoryRepo.Search(ctx, NewSearchInput(normalized))
	if err != nil {
		return nil, err
	}

	return NewListCategoriesOutput(normalized.Page, normalized.PerPage, found.Total, found.Items), nil
}

// rollbackOnError откатывает транзакцию, если use case завершился с ошибкой.
func (c *CategoryUseCase) rollbackOnError(ctx context.Context, op string, err *error) {
	if *err == nil {
		return
	}

	if rbErr := c.uow.Rollback(ctx); rbErr != nil {
		c.logger.Warnf("%s: rollback failed: %v", op, rbErr)
	}
}

// invalidate удаляет устаревшую запись из кэша. Ошибки кэша не влияют на результат.
func (c *CategoryUseCase) invalidate(ctx context.Context, op string, category *domain.Category) {
	if err := c.cacheRepo.DeleteCategory(ctx, category.ID()); err != nil {
		c.logger.Warnf("%s: failed to delete category %s from cache: %v", op, category.ID(), err)
	}
}

// withListDefaults подставляет значения по умолчанию для незаданных параметров.
func withListDefaults(input *ListCategoriesInput) *ListCategoriesInput {
	normalized := ListCategoriesInput{}
	if input != nil {
		normalized = *input
	}

	if normalized.Page == 0 {
		normalized.Page = defaultPage
	}
	if normalized.PerPage == 0 {
		normalized.PerPage = defaultPerPage
	}
	if normalized.Sort == "" {
		normalized.Sort = defaultSort
	}
	if normalized.Dir == "" {
		normalized.Dir = SortAsc
	}

	return &normalized
}
