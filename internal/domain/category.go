package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	nameMinLength        = 3
	nameMaxLength        = 255
	descriptionMaxLength = 10_000
)

// Category описывает категорию каталога.
// Инварианты имени и описания соблюдаются после создания и после каждого Update.
type Category struct {
	id          uuid.UUID
	name        string
	description string
	isActive    bool
	createdAt   time.Time
}

// CategoryOption настраивает категорию при создании.
type CategoryOption func(*Category)

// WithIsActive задаёт начальный флаг активности (по умолчанию категория активна).
func WithIsActive(isActive bool) CategoryOption {
	return func(c *Category) {
		c.isActive = isActive
	}
}

// NewCategory создаёт новую категорию со свежим идентификатором и текущим временем создания.
// description == nil означает, что описание не передано.
func NewCategory(name string, description *string, opts ...CategoryOption) (*Category, error) {
	if err := validate(name, description); err != nil {
		return nil, err
	}

	category := &Category{
		id:          uuid.New(),
		name:        name,
		description: *description,
		isActive:    true,
		createdAt:   time.Now(),
	}

	for _, opt := range opts {
		opt(category)
	}

	return category, nil
}

// RestoreCategory восстанавливает категорию из хранилища без валидации.
func RestoreCategory(id uuid.UUID, name, description string, isActive bool, createdAt time.Time) *Category {
	return &Category{
		id:          id,
		name:        name,
		description: description,
		isActive:    isActive,
		createdAt:   createdAt,
	}
}

func (c *Category) ID() uuid.UUID        { return c.id }
func (c *Category) Name() string         { return c.name }
func (c *Category) Description() string  { return c.description }
func (c *Category) IsActive() bool       { return c.isActive }
func (c *Category) CreatedAt() time.Time { return c.createdAt }

// Activate делает категорию активной.
func (c *Category) Activate() {
	c.isActive = true
}

// Deactivate делает категорию неактивной.
func (c *Category) Deactivate() {
	c.isActive = false
}

// Update меняет имя и описание. Если description == nil, описание остаётся прежним.
// При ошибке валидации категория не изменяется.
func (c *Category) Update(name string, description *string) error {
	if description == nil {
		description = &c.description
	}

	if err := validate(name, description); err != nil {
		return err
	}

	c.name = name
	c.description = *description

	return nil
}

// validate проверяет имя и описание в фиксированном порядке.
func validate(name string, description *string) error {
	if strings.TrimSpace(name) == "" {
		return NewEntityValidationError("Name should not be empty or null")
	}

	if description == nil {
		return NewEntityValidationError("Description should not be null")
	}

	nameLength := utf8.RuneCountInString(name)
	if nameLength < nameMinLength {
		return NewEntityValidationError("Name should be at least 3 characters long")
	}

	if nameLength > nameMaxLength {
		return NewEntityValidationError("Name should be less or equal 255 characters long")
	}

	if utf8.RuneCountInString(*description) > descriptionMaxLength {
		return NewEntityValidationError("Description should be less or equal 10.000 characters long")
	}

	return nil
}
