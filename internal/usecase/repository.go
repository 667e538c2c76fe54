package usecase

import (
	"context"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/google/uuid"
)

// Repository: общий контракт хранилища агрегата.
// Get возвращает e.ErrNotFound, если агрегат не найден.
type Repository[T any] interface {
	Insert(ctx context.Context, aggregate *T) error
	Get(ctx context.Context, id uuid.UUID) (*T, error)
	Update(ctx context.Context, aggregate *T) error
	Delete(ctx context.Context, aggregate *T) error
}

// CategoryRepository: хранилище категорий.
// GetForUpdate блокирует строку до конца транзакции и требует транзакцию в контексте.
type CategoryRepository interface {
	Repository[domain.Category]
	GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	Search(ctx context.Context, req *SearchInput) (*SearchOutput, error)
}

// UnitOfWork управляет границами транзакции.
// Begin возвращает контекст с открытой транзакцией, который нужно передавать в репозитории и в Commit/Rollback.
type UnitOfWork interface {
	Begin(ctx context.Context) (context.Context, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// OutboxRepository хранит события, ожидающие публикации.
// Create требует транзакцию в контексте, остальные методы работают вне её.
type OutboxRepository interface {
	Create(ctx context.Context, event *OutboxEvent) (*OutboxEvent, error)
	GetAndMarkAsProcessing(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkAsProcessed(ctx context.Context, id int64) error
	ReturnToPending(ctx context.Context, id int64) error
	MarkAsFailed(ctx context.Context, id int64) error
}

// CacheRepository: кэш категорий. GetCategory возвращает (nil, nil) при промахе.
type CacheRepository interface {
	GetCategory(ctx context.Context, id uuid.UUID) (*CategoryOutput, error)
	SetCategory(ctx context.Context, category *CategoryOutput) error
	DeleteCategory(ctx context.Context, id uuid.UUID) error
}
