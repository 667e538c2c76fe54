package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type mockCategoryRepository struct {
	mock.Mock
}

func (m *mockCategoryRepository) Insert(ctx context.Context, category *domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockCategoryRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*domain.Category)
	return category, args.Error(1)
}

func (m *mockCategoryRepository) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	args := m.Called(ctx, id)
	category, _ := args.Get(0).(*domain.Category)
	return category, args.Error(1)
}

func (m *mockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockCategoryRepository) Delete(ctx context.Context, category *domain.Category) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockCategoryRepository) Search(ctx context.Context, req *SearchInput) (*SearchOutput, error) {
	args := m.Called(ctx, req)
	out, _ := args.Get(0).(*SearchOutput)
	return out, args.Error(1)
}

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	txCtx, _ := args.Get(0).(context.Context)
	return txCtx, args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

type mockCacheRepository struct {
	mock.Mock
}

func (m *mockCacheRepository) GetCategory(ctx context.Context, id uuid.UUID) (*CategoryOutput, error) {
	args := m.Called(ctx, id)
	out, _ := args.Get(0).(*CategoryOutput)
	return out, args.Error(1)
}

func (m *mockCacheRepository) SetCategory(ctx context.Context, category *CategoryOutput) error {
	return m.Called(ctx, category).Error(0)
}

func (m *mockCacheRepository) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
