package grpc

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
)

// GRPCErrorResponse сопоставляет ошибку use case'а статусу gRPC.
func GRPCErrorResponse(err error) error {
	var (
		entityErr *domain.EntityValidationError
		inputErr  *usecase.InputValidationError
	)

	switch {
	case errors.As(err, &entityErr):
		return status.Error(codes.InvalidArgument, entityErr.Message)
	case errors.As(err, &inputErr):
		return status.Error(codes.InvalidArgument, inputErr.Error())
	case errors.Is(err, e.ErrInvalidID), errors.Is(err, e.ErrInvalidInput), errors.Is(err, e.ErrStatusBadRequest):
		return status.Error(codes.InvalidArgument, e.ErrInvalidInput.Error())
	case errors.Is(err, e.ErrNotFound):
		return status.Error(codes.NotFound, e.ErrNotFound.Error())
	default:
		return status.Error(codes.Internal, e.ErrInternalServerError.Error())
	}
}

func toGRPCCategory(out *usecase.CategoryOutput) (*structpb.Struct, error) {
	return structpb.NewStruct(categoryFields(out))
}

func categoryFields(out *usecase.CategoryOutput) map[string]any {
	return map[string]any{
		"id":          out.ID.String(),
		"name":        out.Name,
		"description": out.Description,
		"is_active":   out.IsActive,
		"created_at":  out.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toGRPCCategoryList(out *usecase.ListCategoriesOutput) (*structpb.Struct, error) {
	items := make([]any, 0, len(out.Items))
	for i := range out.Items {
		items = append(items, categoryFields(&out.Items[i]))
	}

	return structpb.NewStruct(map[string]any{
		"items":    items,
		"page":     out.Page,
		"per_page": out.PerPage,
		"total":    out.Total,
	})
}

// parseID разбирает идентификатор категории. Пустая строка даёт uuid.Nil,
// чтобы отсутствие идентификатора отклонил валидатор use case'а.
func parseID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, e.ErrInvalidID
	}

	return id, nil
}

// toCreateCategoryInput разбирает запрос на создание.
// Отсутствующий или null description передаётся как nil, отсутствующий is_active означает true.
func toCreateCategoryInput(req *structpb.Struct) (*usecase.CreateCategoryInput, error) {
	fields := req.GetFields()
	input := &usecase.CreateCategoryInput{IsActive: true}

	name, _, err := stringField(fields, "name")
	if err != nil {
		return nil, err
	}
	input.Name = name

	if input.Description, err = nullableStringField(fields, "description"); err != nil {
		return nil, err
	}

	isActive, ok, err := boolField(fields, "is_active")
	if err != nil {
		return nil, err
	}
	if ok {
		input.IsActive = isActive
	}

	return input, nil
}

// toUpdateCategoryInput разбирает запрос на изменение.
// Отсутствующие description и is_active не меняются.
func toUpdateCategoryInput(req *structpb.Struct) (*usecase.UpdateCategoryInput, error) {
	fields := req.GetFields()

	rawID, _, err := stringField(fields, "id")
	if err != nil {
		return nil, err
	}

	id, err := parseID(rawID)
	if err != nil {
		return nil, err
	}

	name, _, err := stringField(fields, "name")
	if err != nil {
		return nil, err
	}

	input := &usecase.UpdateCategoryInput{ID: id, Name: name}

	if input.Description, err = nullableStringField(fields, "description"); err != nil {
		return nil, err
	}

	isActive, ok, err := boolField(fields, "is_active")
	if err != nil {
		return nil, err
	}
	if ok {
		input.IsActive = &isActive
	}

	return input, nil
}

// toListCategoriesInput разбирает параметры списка. Незаданные поля получают значения по умолчанию в use case'е.
func toListCategoriesInput(req *structpb.Struct) (*usecase.ListCategoriesInput, error) {
	fields := req.GetFields()

	page, err := intField(fields, "page")
	if err != nil {
		return nil, err
	}

	perPage, err := intField(fields, "per_page")
	if err != nil {
		return nil, err
	}

	search, _, err := stringField(fields, "search")
	if err != nil {
		return nil, err
	}

	sort, _, err := stringField(fields, "sort")
	if err != nil {
		return nil, err
	}

	dir, _, err := stringField(fields, "dir")
	if err != nil {
		return nil, err
	}

	return &usecase.ListCategoriesInput{
		Page:    page,
		PerPage: perPage,
		Search:  search,
		Sort:    sort,
		Dir:     usecase.SortDirection(dir),
	}, nil
}

func stringField(fields map[string]*structpb.Value, name string) (string, bool, error) {
	v, ok := fields[name]
	if !ok {
		return "", false, nil
	}

	str, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", false, e.Wrap(name, fmt.Errorf("%w: expected string", e.ErrInvalidInput))
	}

	return str.StringValue, true, nil
}

func nullableStringField(fields map[string]*structpb.Value, name string) (*string, error) {
	v, ok := fields[name]
	if !ok {
		return nil, nil
	}

	switch kind := v.GetKind().(type) {
	case *structpb.Value_StringValue:
		str := kind.StringValue
		return &str, nil
	case *structpb.Value_NullValue:
		return nil, nil
	default:
		return nil, e.Wrap(name, fmt.Errorf("%w: expected string or null", e.ErrInvalidInput))
	}
}

func boolField(fields map[string]*structpb.Value, name string) (bool, bool, error) {
	v, ok := fields[name]
	if !ok {
		return false, false, nil
	}

	b, ok := v.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		return false, false, e.Wrap(name, fmt.Errorf("%w: expected bool", e.ErrInvalidInput))
	}

	return b.BoolValue, true, nil
}

// intField читает целое число. В Struct числа хранятся как double, дробные и слишком большие значения отклоняются.
func intField(fields map[string]*structpb.Value, name string) (int, error) {
	v, ok := fields[name]
	if !ok {
		return 0, nil
	}

	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok || n.NumberValue != math.Trunc(n.NumberValue) || math.Abs(n.NumberValue) > math.MaxInt32 {
		return 0, e.Wrap(name, fmt.Errorf("%w: expected integer", e.ErrInvalidInput))
	}

	return int(n.NumberValue), nil
}
