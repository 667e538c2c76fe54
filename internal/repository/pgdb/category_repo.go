package pgdb

import (
	"context"
	"errors"
	"fmt"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/repository/pgdb/converter"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/DRSN-tech/catalog-backend/pkg/tr"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

// orderColumns: допустимые поля сортировки и соответствующие им колонки.
var orderColumns = map[string]string{
	"name":      "name",
	"createdAt": "created_at",
}

// CategoryRepo реализует репозиторий категорий поверх PostgreSQL.
// Каждое изменение записывает событие в outbox в той же транзакции.
type CategoryRepo struct {
	pool   *pgxpool.Pool
	conv   converter.CategoryConverter
	outbox usecase.OutboxRepository
}

func NewCategoryRepo(pool *pgxpool.Pool, conv converter.CategoryConverter, outbox usecase.OutboxRepository) *CategoryRepo {
	return &CategoryRepo{pool: pool, conv: conv, outbox: outbox}
}

// Insert сохраняет новую категорию. Требует транзакцию в контексте.
func (c *CategoryRepo) Insert(ctx context.Context, category *domain.Category) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	model := c.conv.ToModel(category)
	query := `
		INSERT INTO categories (id, name, description, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`

	if _, err := tx.Exec(ctx, query,
		model.ID, model.Name, model.Description, model.IsActive, model.CreatedAt,
	); err != nil {
		if postgresDuplicate(err) {
			return fmt.Errorf("%s: category with id %s already exists", whereami.WhereAmI(), model.ID)
		}

		return e.Wrap(whereami.WhereAmI(), err)
	}

	return c.writeEvent(ctx, usecase.CategoryCreated, category)
}

// Get возвращает категорию по идентификатору или e.ErrNotFound.
func (c *CategoryRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM categories
		WHERE id = $1;
	`

	return c.getOne(ctx, txOrPool(ctx, c.pool), query, id)
}

// GetForUpdate читает категорию с блокировкой строки до конца транзакции.
// Требует транзакцию в контексте.
func (c *CategoryRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := `
		SELECT id, name, description, is_active, created_at, updated_at
		FROM categories
		WHERE id = $1
		FOR UPDATE;
	`

	return c.getOne(ctx, tx, query, id)
}

func (c *CategoryRepo) getOne(ctx context.Context, db querier, query string, id uuid.UUID) (*domain.Category, error) {
	var model converter.CategoryModel
	if err := db.QueryRow(ctx, query, id).
		Scan(
			&model.ID, &model.Name, &model.Description, &model.IsActive, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
		}

		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return c.conv.ToEntity(&model), nil
}

// Update сохраняет изменённые поля категории. Требует транзакцию в контексте.
func (c *CategoryRepo) Update(ctx context.Context, category *domain.Category) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	model := c.conv.ToModel(category)
	query := `
		UPDATE categories
		SET name = $2, description = $3, is_active = $4, updated_at = NOW()
		WHERE id = $1;
	`

	tag, err := tx.Exec(ctx, query, model.ID, model.Name, model.Description, model.IsActive)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
	}

	return c.writeEvent(ctx, usecase.CategoryUpdated, category)
}

// Delete удаляет категорию. Требует транзакцию в контексте.
func (c *CategoryRepo) Delete(ctx context.Context, category *domain.Category) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1;`, category.ID())
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if tag.RowsAffected() == 0 {
		return e.Wrap(whereami.WhereAmI(), e.ErrNotFound)
	}

	return c.writeEvent(ctx, usecase.CategoryDeleted, category)
}

// Search возвращает страницу категорий, имя которых содержит строку поиска.
func (c *CategoryRepo) Search(ctx context.Context, req *usecase.SearchInput) (*usecase.SearchOutput, error) {
	column, ok := orderColumns[req.OrderBy]
	if !ok {
		column = orderColumns["name"]
	}

	direction := "ASC"
	if req.Order == usecase.SortDesc {
		direction = "DESC"
	}

	offset, err := pageOffset(req.Page, req.PerPage)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	db := txOrPool(ctx, c.pool)

	// Подстрока ищется буквально: % и _ в запросе не считаются шаблоном
	const filter = `WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' ESCAPE '\')`
	pattern := escapeLike(req.Search)

	var total int64
	if err := db.QueryRow(ctx, `SELECT COUNT(*) FROM categories `+filter, pattern).Scan(&total); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	query := fmt.Sprintf(`
		SELECT id, name, description, is_active, created_at, updated_at
		FROM categories
		%s
		ORDER BY %s %s, id
		LIMIT $2 OFFSET $3;
	`, filter, column, direction)

	rows, err := db.Query(ctx, query, pattern, req.PerPage, offset)
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	defer rows.Close()

	models := make([]*converter.CategoryModel, 0, req.PerPage)
	for rows.Next() {
		var model converter.CategoryModel
		if err := rows.Scan(
			&model.ID, &model.Name, &model.Description, &model.IsActive, &model.CreatedAt, &model.UpdatedAt,
		); err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}

		models = append(models, &model)
	}

	if err := rows.Err(); err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return &usecase.SearchOutput{Items: c.conv.ToArrEntity(models), Total: total}, nil
}

// writeEvent записывает событие об изменении категории в outbox.
func (c *CategoryRepo) writeEvent(ctx context.Context, eventType usecase.OutboxEventType, category *domain.Category) error {
	event, err := usecase.NewCategoryEvent(eventType, category)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := c.outbox.Create(ctx, event); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	return nil
}
