package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/repository/redis/converter"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
	goredis "github.com/redis/go-redis/v9"
)

type CacheRepo struct {
	client goredis.Cmdable
	conv   converter.CategoryConverter
	ttl    time.Duration
	logger logger.Logger
}

func NewCacheRepo(client goredis.Cmdable, conv converter.CategoryConverter,
	ttl time.Duration, logger logger.Logger) *CacheRepo {
	return &CacheRepo{
		client: client,
		conv:   conv,
		ttl:    ttl,
		logger: logger,
	}
}

// GetCategory возвращает закэшированную категорию или (nil, nil) при промахе.
// Повреждённая запись удаляется и считается промахом.
func (r *CacheRepo) GetCategory(ctx context.Context, id uuid.UUID) (*usecase.CategoryOutput, error) {
	key := categoryKey(id)

	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	var model converter.CategoryRedisModel
	if err := json.Unmarshal(data, &model); err != nil || model.ID != id {
		r.logger.Warnf("Dropping broken cache entry %s: %v", key, err)
		if err := r.client.Del(ctx, key).Err(); err != nil {
			r.logger.Warnf("Redis DEL failed: %v", e.Wrap(whereami.WhereAmI(), err))
		}

		return nil, nil
	}

	return r.conv.ToUseCase(&model), nil
}

// SetCategory кэширует категорию на заданный TTL.
func (r *CacheRepo) SetCategory(ctx context.Context, category *usecase.CategoryOutput) error {
	data, err := json.Marshal(r.conv.ToRedisModel(category))
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if err := r.client.Set(ctx, categoryKey(category.ID), data, r.ttl).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func (r *CacheRepo) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	if err := r.client.Del(ctx, categoryKey(id)).Err(); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}

func categoryKey(id uuid.UUID) string {
	return fmt.Sprintf("category:%s", id)
}
