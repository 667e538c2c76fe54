package usecase

import (
	"encoding/json"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/google/uuid"
)

// CATEGORY USECASE

// CreateCategoryInput: запрос на создание категории.
// Description == nil означает, что описание не передано.
type CreateCategoryInput struct {
	Name        string
	Description *string
	IsActive    bool
}

// GetCategoryInput: запрос категории по идентификатору.
type GetCategoryInput struct {
	ID uuid.UUID `validate:"required" label:"Id"`
}

// UpdateCategoryInput: запрос на изменение категории.
// Nil-поля остаются без изменений.
type UpdateCategoryInput struct {
	ID          uuid.UUID `validate:"required" label:"Id"`
	Name        string
	Description *string
	IsActive    *bool
}

type DeleteCategoryInput struct {
	ID uuid.UUID `validate:"required" label:"Id"`
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ListCategoriesInput: постраничный поиск категорий.
type ListCategoriesInput struct {
	Page    int           `validate:"min=1,max=100000" label:"Page"`
	PerPage int           `validate:"min=1,max=100" label:"PerPage"`
	Search  string        `validate:"max=255" label:"Search"`
	Sort    string        `validate:"oneof=name createdAt" label:"Sort"`
	Dir     SortDirection `validate:"oneof=asc desc" label:"Dir"`
}

// CategoryOutput: DTO категории для внешнего использования.
type CategoryOutput struct {
	ID          uuid.UUID
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}

type ListCategoriesOutput struct {
	Page    int
	PerPage int
	Total   int64
	Items   []CategoryOutput
}

// REPOSITORIES

type SearchInput struct {
	Page    int
	PerPage int
	Search  string
	OrderBy string
	Order   SortDirection
}

type SearchOutput struct {
	Items []*domain.Category
	Total int64
}

// OUTBOX

type OutboxStatus string

const (
	Pending    OutboxStatus = "pending"
	Processing OutboxStatus = "processing"
	Processed  OutboxStatus = "processed"
	Failed     OutboxStatus = "failed"
)

// OutboxNotifyChannel: канал LISTEN/NOTIFY, в который сообщается о новых событиях outbox.
const OutboxNotifyChannel = "outbox_pending"

type OutboxEventType string

const (
	CategoryCreated OutboxEventType = "category.created"
	CategoryUpdated OutboxEventType = "category.updated"
	CategoryDeleted OutboxEventType = "category.deleted"
)

// OutboxEvent: событие изменения категории, ожидающее публикации в Kafka.
type OutboxEvent struct {
	ID          int64
	EventID     uuid.UUID
	EventType   OutboxEventType
	AggregateID uuid.UUID
	Payload     []byte
	Status      OutboxStatus
	CreatedAt   time.Time
	ProcessedAt *time.Time
}

// CategoryEventPayload: тело сообщения о категории.
type CategoryEventPayload struct {
	EventID    uuid.UUID           `json:"event_id"`
	EventType  OutboxEventType     `json:"event_type"`
	OccurredAt time.Time           `json:"occurred_at"`
	Category   CategoryEventRecord `json:"category"`
}

type CategoryEventRecord struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

// INFRASTRUCTURE

type WriteRawMessageReq struct {
	Key       string
	EventType string
	Payload   []byte
}

// MAPPERS

func NewCategoryOutput(category *domain.Category) *CategoryOutput {
	return &CategoryOutput{
		ID:          category.ID(),
		Name:        category.Name(),
		Description: category.Description(),
		IsActive:    category.IsActive(),
		CreatedAt:   category.CreatedAt(),
	}
}

func NewListCategoriesOutput(page, perPage int, total int64, categories []*domain.Category) *ListCategoriesOutput {
	items := make([]CategoryOutput, 0, len(categories))
	for _, category := range categories {
		items = append(items, *NewCategoryOutput(category))
	}

	return &ListCategoriesOutput{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Items:   items,
	}
}

func NewSearchInput(input *ListCategoriesInput) *SearchInput {
	return &SearchInput{
		Page:    input.Page,
		PerPage: input.PerPage,
		Search:  input.Search,
		OrderBy: input.Sort,
		Order:   input.Dir,
	}
}

// NewWriteRawMessageReq формирует сообщение из outbox-события. Ключом служит идентификатор агрегата,
// чтобы события одной категории попадали в одну партицию.
func NewWriteRawMessageReq(event *OutboxEvent) *WriteRawMessageReq {
	return &WriteRawMessageReq{
		Key:       event.AggregateID.String(),
		EventType: string(event.EventType),
		Payload:   event.Payload,
	}
}

// NewCategoryEvent формирует outbox-событие со снимком состояния категории.
func NewCategoryEvent(eventType OutboxEventType, category *domain.Category) (*OutboxEvent, error) {
	now := time.Now().UTC()
	payload := CategoryEventPayload{
		EventID:    uuid.New(),
		EventType:  eventType,
		OccurredAt: now,
		Category: CategoryEventRecord{
			ID:          category.ID(),
			Name:        category.Name(),
			Description: category.Description(),
			IsActive:    category.IsActive(),
			CreatedAt:   category.CreatedAt(),
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &OutboxEvent{
		EventID:     payload.EventID,
		EventType:   eventType,
		AggregateID: category.ID(),
		Payload:     data,
		Status:      Pending,
		CreatedAt:   now,
	}, nil
}
