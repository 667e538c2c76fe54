package usecase

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type txCtxKey struct{}

type fixture struct {
	repo  *mockCategoryRepository
	uow   *mockUnitOfWork
	cache *mockCacheRepository
	uc    *CategoryUseCase
	txCtx context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:  &mockCategoryRepository{},
		uow:   &mockUnitOfWork{},
		cache: &mockCacheRepository{},
		txCtx: context.WithValue(context.Background(), txCtxKey{}, "tx"),
	}
	f.uc = NewCategoryUC(f.repo, f.uow, f.cache, logger.NewNopLogger())

	t.Cleanup(func() {
		f.repo.AssertExpectations(t)
		f.uow.AssertExpectations(t)
		f.cache.AssertExpectations(t)
	})

	return f
}

func strPtr(s string) *string {
	return &s
}

func boolPtr(b bool) *bool {
	return &b
}

func existingCategory(t *testing.T) *domain.Category {
	t.Helper()

	category, err := domain.NewCategory("Category name", strPtr("category description"))
	require.NoError(t, err)

	return category
}

func TestCreateCategory(t *testing.T) {
	f := newFixture(t)
	var calls []string

	f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
	f.repo.On("Insert", f.txCtx, mock.MatchedBy(func(c *domain.Category) bool {
		return c.Name() == "category Name" && c.Description() == "category description" && c.IsActive()
	})).Return(nil).Once().Run(func(mock.Arguments) { calls = append(calls, "insert") })
	f.uow.On("Commit", f.txCtx).Return(nil).Once().Run(func(mock.Arguments) { calls = append(calls, "commit") })

	before := time.Now()
	output, err := f.uc.CreateCategory(context.Background(), &CreateCategoryInput{
		Name:        "category Name",
		Description: strPtr("category description"),
		IsActive:    true,
	})

	require.NoError(t, err)
	require.NotNil(t, output)
	assert.Equal(t, []string{"insert", "commit"}, calls)
	assert.Equal(t, "category Name", output.Name)
	assert.Equal(t, "category description", output.Description)
	assert.True(t, output.IsActive)
	assert.NotEqual(t, uuid.Nil, output.ID)
	assert.False(t, output.CreatedAt.IsZero())
	assert.False(t, output.CreatedAt.Before(before))
}

func TestCreateCategoryInactive(t *testing.T) {
	f := newFixture(t)

	f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
	f.repo.On("Insert", f.txCtx, mock.MatchedBy(func(c *domain.Category) bool { return !c.IsActive() })).Return(nil).Once()
	f.uow.On("Commit", f.txCtx).Return(nil).Once()

	output, err := f.uc.CreateCategory(context.Background(), &CreateCategoryInput{
		Name:        "Documentaries",
		Description: strPtr(""),
		IsActive:    false,
	})

	require.NoError(t, err)
	assert.False(t, output.IsActive)
}

func TestCreateCategoryValidationErrorSkipsPersistence(t *testing.T) {
	tests := []struct {
		name    string
		input   *CreateCategoryInput
		message string
	}{
		{"empty name", &CreateCategoryInput{Name: "", Description: strPtr("d")}, "Name should not be empty or null"},
		{"nil description", &CreateCategoryInput{Name: "Name"}, "Description should not be null"},
		{"short name", &CreateCategoryInput{Name: "ab", Description: strPtr("d")}, "Name should be at least 3 characters long"},
		{"long name", &CreateCategoryInput{Name: strings.Repeat("a", 256), Description: strPtr("d")}, "Name should be less or equal 255 characters long"},
		{"long description", &CreateCategoryInput{Name: "Name", Description: strPtr(strings.Repeat("a", 10_001))}, "Description should be less or equal 10.000 characters long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			output, err := f.uc.CreateCategory(context.Background(), tt.input)

			assert.Nil(t, output)
			var validationErr *domain.EntityValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.message, err.Error())
			f.repo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
			f.uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}

func TestCreateCategoryInsertFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	insertErr := errors.New("insert failed")

	f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
	f.repo.On("Insert", f.txCtx, mock.Anything).Return(insertErr).Once()
	f.uow.On("Rollback", f.txCtx).Return(nil).Once()

	output, err := f.uc.CreateCategory(context.Background(), &CreateCategoryInput{Name: "Movies", Description: strPtr("")})

	assert.Nil(t, output)
	assert.Same(t, insertErr, err)
	f.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateCategoryCommitFailure(t *testing.T) {
	f := newFixture(t)
	commitErr := errors.New("commit failed")

	f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
	f.repo.On("Insert", f.txCtx, mock.Anything).Return(nil).Once()
	f.uow.On("Commit", f.txCtx).Return(commitErr).Once()
	f.uow.On("Rollback", f.txCtx).Return(nil).Once()

	output, err := f.uc.CreateCategory(context.Background(), &CreateCategoryInput{Name: "Movies", Description: strPtr("")})

	assert.Nil(t, output)
	assert.Same(t, commitErr, err)
}

func TestCreateCategoryPassesCancellation(t *testing.T) {
	f := newFixture(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	canceled := mock.MatchedBy(func(ctx context.Context) bool { return errors.Is(ctx.Err(), context.Canceled) })
	f.uow.On("Begin", canceled).Return(ctx, nil).Once()
	f.repo.On("Insert", canceled, mock.Anything).Return(context.Canceled).Once()
	f.uow.On("Rollback", canceled).Return(nil).Once()

	_, err := f.uc.CreateCategory(ctx, &CreateCategoryInput{Name: "Movies", Description: strPtr("")})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetCategoryFromRepository(t *testing.T) {
	f := newFixture(t)
	category := existingCategory(t)

	f.cache.On("GetCategory", mock.Anything, category.ID()).Return(nil, nil).Once()
	f.repo.On("Get", mock.Anything, category.ID()).Return(category, nil).Once()
	f.cache.On("SetCategory", mock.Anything, NewCategoryOutput(category)).Return(nil).Once()

	output, err := f.uc.GetCategory(context.Background(), &GetCategoryInput{ID: category.ID()})

	require.NoError(t, err)
	assert.Equal(t, NewCategoryOutput(category), output)
}

func TestGetCategoryFromCache(t *testing.T) {
	f := newFixture(t)
	cached := &CategoryOutput{ID: uuid.New(), Name: "Cached", IsActive: true, CreatedAt: time.Now()}

	f.cache.On("GetCategory", mock.Anything, cached.ID).Return(cached, nil).Once()

	output, err := f.uc.GetCategory(context.Background(), &GetCategoryInput{ID: cached.ID})

	require.NoError(t, err)
	assert.Same(t, cached, output)
	f.repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGetCategoryCacheFailureFallsBackToRepository(t *testing.T) {
	f := newFixture(t)
	category := existingCategory(t)

	f.cache.On("GetCategory", mock.Anything, category.ID()).Return(nil, errors.New("redis down")).Once()
	f.repo.On("Get", mock.Anything, category.ID()).Return(category, nil).Once()
	f.cache.On("SetCategory", mock.Anything, mock.Anything).Return(errors.New("redis down")).Once()

	output, err := f.uc.GetCategory(context.Background(), &GetCategoryInput{ID: category.ID()})

	require.NoError(t, err)
	assert.Equal(t, category.ID(), output.ID)
}

func TestGetCategoryEmptyID(t *testing.T) {
	f := newFixture(t)

	output, err := f.uc.GetCategory(context.Background(), &GetCategoryInput{ID: uuid.Nil})

	assert.Nil(t, output)
	assert.ErrorIs(t, err, e.ErrInvalidInput)
	assert.Equal(t, "'Id' deve ser informado.", err.Error())
}

func TestGetCategoryNotFound(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.cache.On("GetCategory", mock.Anything, id).Return(nil, nil).Once()
	f.repo.On("Get", mock.Anything, id).Return(nil, e.ErrNotFound).Once()

	_, err := f.uc.GetCategory(context.Background(), &GetCategoryInput{ID: id})

	assert.ErrorIs(t, err, e.ErrNotFound)
}

func TestUpdateCategory(t *testing.T) {
	f := newFixture(t)
	category := existingCategory(t)

	f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
	f.repo.On("GetForUpdate", f.txCtx, category.ID()).Return(category, nil).Once()
	f.repo.On("Update", f.txCtx, category).Return(nil).Once()
	f.uow.On("Commit", f.txCtx).Return(nil).Once()
	f.cache.On("DeleteCategory", f.txCtx, category.ID()).Return(nil).Twice()

	output, err := f.uc.UpdateCategory(context.Background(), &UpdateCategoryInput{
		ID:          category.ID(),
		Name:        "New name",
		Description: strPtr("New description"),
		IsActive:    boolPtr(false),
	})

	require.NoError(t, err)
	assert.Equal(t, "New name", output.Name)
	assert.Equal(t, "New description", output.Description)
	assert.False(t, output.IsActive)
}

func TestUpdateCategoryInvalidatesCacheAroundCommit(t *testing.T) {
	f := newFixture(t)
	category := existingCategory(t)
	var calls []string

	f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
	f.repo.On("GetForUpdate", f.txCtx, category.ID()).Return(category, nil).Once()
	f.repo.On("Update", f.txCtx, category).Return(nil).Once()
	f.uow.On("Commit", f.txCtx).Return(nil).Once().
		Run(func(mock.Arguments) { calls = append(calls, "commit") })
	f.cache.On("DeleteCategory", f.txCtx, category.ID()).Return(nil).Twice().
		Run(func(mock.Arguments) { calls = append(calls, "invalidate") })

	_, err := f.uc.UpdateCategory(context.Background(), &UpdateCategoryInput{ID: category.ID(), Name: "New name"})

	require.NoError(t, err)
	assert.Equal(t, []string{"invalidate", "commit", "invalidate"}, calls)
	f.repo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestUpdateCategoryKeepsDescriptionAndActivity(t *testing.T) {
	f := newFixture(t)
	category := existingCategory(t)

	f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
	f.repo.On("GetForUpdate", f.txCtx, category.ID()).Return(category, nil).Once()
	f.repo.On("Update", f.txCtx, category).Return(nil).Once()
	f.uow.On("Commit", f.txCtx).Return(nil).Once()
	f.cache.On("DeleteCategory", f.txCtx, category.ID()).Return(nil).Twice()

	output, err := f.uc.UpdateCategory(context.Background(), &UpdateCategoryInput{ID: category.ID(), Name: "New name"})

	require.NoError(t, err)
	assert.Equal(t, "category description", output.Description)
	assert.True(t, output.IsActive)
}

func TestUpdateCategoryActivates(t *testing.T) {
	f := newFixture(t)
	category, err := domain.NewCategory("Category name", strPtr(""), domain.WithIsActive(false))
	require.NoError(t, err)

	f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
	f.repo.On("GetForUpdate", f.txCtx, category.ID()).Return(category, nil).Once()
	f.repo.On("Update", f.txCtx, category).Return(nil).Once()
	f.uow.On("Commit", f.txCtx).Return(nil).Once()
	f.cache.On("DeleteCategory", f.txCtx, category.ID()).Return(nil).Twice()

	output, err := f.uc.UpdateCategory(context.Background(), &UpdateCategoryInput{
		ID:       category.ID(),
		Name:     category.Name(),
		IsActive: boolPtr(true),
	})

	require.NoError(t, err)
	assert.True(t, output.IsActive)
}

func TestUpdateCategoryValidationErrorRollsBack(t *testing.T) {
	f := newFixture(t)
	category := existingCategory(t)

	f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
	f.repo.On("GetForUpdate", f.txCtx, category.ID()).Return(category, nil).Once()
	f.uow.On("Rollback", f.txCtx).Return(nil).Once()

	_, err := f.uc.UpdateCategory(context.Background(), &UpdateCategoryInput{ID: category.ID(), Name: "ab"})

	var validationErr *domain.EntityValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, "Name should be at least 3 characters long", validationErr.Message)
	f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdateCategoryEmptyID(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.UpdateCategory(context.Background(), &UpdateCategoryInput{Name: "Movies"})

	assert.ErrorIs(t, err, e.ErrInvalidInput)
	f.uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestDeleteCategory(t *testing.T) {
	f := newFixture(t)
	category := existingCategory(t)

	f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
	f.repo.On("GetForUpdate", f.txCtx, category.ID()).Return(category, nil).Once()
	f.repo.On("Delete", f.txCtx, category).Return(nil).Once()
	f.uow.On("Commit", f.txCtx).Return(nil).Once()
	f.cache.On("DeleteCategory", f.txCtx, category.ID()).Return(nil).Twice()

	err := f.uc.DeleteCategory(context.Background(), &DeleteCategoryInput{ID: category.ID()})

	require.NoError(t, err)
}

func TestDeleteCategoryNotFound(t *testing.T) {
	f := newFixture(t)
	id := uuid.New()

	f.uow.On("Begin", mock.Anything).Return(f.txCtx, nil).Once()
	f.repo.On("GetForUpdate", f.txCtx, id).Return(nil, e.ErrNotFound).Once()
	f.uow.On("Rollback", f.txCtx).Return(nil).Once()

	err := f.uc.DeleteCategory(context.Background(), &DeleteCategoryInput{ID: id})

	assert.ErrorIs(t, err, e.ErrNotFound)
	f.repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestListCategoriesDefaults(t *testing.T) {
	f := newFixture(t)
	category := existingCategory(t)

	f.repo.On("Search", mock.Anything, &SearchInput{
		Page:    1,
		PerPage: 15,
		OrderBy: "name",
		Order:   SortAsc,
	}).Return(&SearchOutput{Items: []*domain.Category{category}, Total: 1}, nil).Once()

	output, err := f.uc.ListCategories(context.Background(), &ListCategoriesInput{})

	require.NoError(t, err)
	assert.Equal(t, 1, output.Page)
	assert.Equal(t, 15, output.PerPage)
	assert.EqualValues(t, 1, output.Total)
	require.Len(t, output.Items, 1)
	assert.Equal(t, category.ID(), output.Items[0].ID)
}

func TestListCategoriesInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input *ListCategoriesInput
	}{
		{"negative page", &ListCategoriesInput{Page: -1}},
		{"page too large", &ListCategoriesInput{Page: math.MaxInt, PerPage: 100}},
		{"per page too large", &ListCategoriesInput{PerPage: 101}},
		{"unknown sort", &ListCategoriesInput{Sort: "id"}},
		{"unknown direction", &ListCategoriesInput{Dir: "up"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.uc.ListCategories(context.Background(), tt.input)

			assert.ErrorIs(t, err, e.ErrInvalidInput)
			f.repo.AssertNotCalled(t, "Search", mock.Anything, mock.Anything)
		})
	}
}
