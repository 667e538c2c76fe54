package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/DRSN-tech/catalog-backend/internal/domain"
	"github.com/DRSN-tech/catalog-backend/internal/usecase"
	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jimlawless/whereami"
)

const maxBodySize = 1 << 20

type ErrorResponse struct {
	Code    int      `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func NewErrorResponse(code int, message string, details ...string) *ErrorResponse {
	return &ErrorResponse{
		Code:    code,
		Message: message,
		Errors:  details,
	}
}

// ToHTTPResponse сопоставляет ошибку статусу и телу ответа.
// Текст внутренних ошибок наружу не отдаётся.
func ToHTTPResponse(err error) *ErrorResponse {
	var (
		entityErr *domain.EntityValidationError
		inputErr  *usecase.InputValidationError
	)

	switch {
	case errors.As(err, &entityErr):
		return NewErrorResponse(http.StatusUnprocessableEntity, entityErr.Message)
	case errors.As(err, &inputErr):
		details := make([]string, 0, len(inputErr.Errors))
		for _, failure := range inputErr.Errors {
			details = append(details, failure.ErrorMessage)
		}
		return NewErrorResponse(http.StatusBadRequest, e.ErrInvalidInput.Error(), details...)
	case errors.Is(err, e.ErrInvalidID):
		return NewErrorResponse(http.StatusBadRequest, e.ErrInvalidID.Error())
	case errors.Is(err, e.ErrInvalidInput), errors.Is(err, e.ErrStatusBadRequest):
		return NewErrorResponse(http.StatusBadRequest, e.ErrStatusBadRequest.Error())
	case errors.Is(err, e.ErrNotFound):
		return NewErrorResponse(http.StatusNotFound, e.ErrNotFound.Error())
	default:
		return NewErrorResponse(http.StatusInternalServerError, e.ErrInternalServerError.Error())
	}
}

func WriteError(w http.ResponseWriter, err error) int {
	resp := ToHTTPResponse(err)
	WriteSuccess(w, resp.Code, resp)
	return resp.Code
}

func WriteSuccess(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// decodeJSON читает тело запроса, отбрасывая неизвестные поля и лишние данные после объекта.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		return e.Wrap(fmt.Sprintf("%s: %v", whereami.WhereAmI(), err), e.ErrStatusBadRequest)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return e.Wrap(whereami.WhereAmI(), e.ErrStatusBadRequest)
	}

	return nil
}

// parseID разбирает {id} из пути. Пустой идентификатор отдаётся use case'у как uuid.Nil,
// чтобы сообщение об ошибке формировал валидатор.
func parseID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		return uuid.Nil, nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, e.Wrap(raw, e.ErrInvalidID)
	}

	return id, nil
}

// parseListQuery разбирает параметры пагинации. Отсутствующие параметры остаются нулевыми
// и заполняются значениями по умолчанию в use case'е.
func parseListQuery(r *http.Request) (*usecase.ListCategoriesInput, error) {
	q := r.URL.Query()

	page, err := parseIntParam(q.Get("page"))
	if err != nil {
		return nil, e.Wrap("page", err)
	}

	perPage, err := parseIntParam(q.Get("per_page"))
	if err != nil {
		return nil, e.Wrap("per_page", err)
	}

	return &usecase.ListCategoriesInput{
		Page:    page,
		PerPage: perPage,
		Search:  q.Get("search"),
		Sort:    q.Get("sort"),
		Dir:     usecase.SortDirection(q.Get("dir")),
	}, nil
}

func parseIntParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, e.ErrStatusBadRequest
	}

	return v, nil
}
