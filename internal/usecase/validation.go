package usecase

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/DRSN-tech/catalog-backend/pkg/e"
	"github.com/go-playground/validator/v10"
)

// Сообщения об ошибках валидации входных данных (pt-BR).
var validationMessages = map[string]string{
	"required": "'%s' deve ser informado.",
	"min":      "'%s' deve ser superior ou igual a '%s'.",
	"max":      "'%s' deve ser inferior ou igual a '%s'.",
	"oneof":    "'%s' deve ser um dos valores: %s.",
}

// ValidationFailure: ошибка валидации одного поля.
type ValidationFailure struct {
	PropertyName string
	ErrorMessage string
}

// ValidationResult: результат валидации входных данных. Валидаторы не возвращают ошибок,
// вызывающий код сам решает, что делать с результатом.
type ValidationResult struct {
	IsValid bool
	Errors  []ValidationFailure
}

// InputValidationError возвращается use case'ами, когда входные данные не прошли валидацию.
type InputValidationError struct {
	Errors []ValidationFailure
}

func NewInputValidationError(failures []ValidationFailure) *InputValidationError {
	return &InputValidationError{Errors: failures}
}

func (ie *InputValidationError) Error() string {
	messages := make([]string, 0, len(ie.Errors))
	for _, failure := range ie.Errors {
		messages = append(messages, failure.ErrorMessage)
	}

	return strings.Join(messages, " ")
}

func (ie *InputValidationError) Unwrap() error {
	return e.ErrInvalidInput
}

type inputValidator struct {
	validate *validator.Validate
}

func newInputValidator() *inputValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	// В сообщениях используется имя из тега label, иначе имя поля
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		if label := field.Tag.Get("label"); label != "" {
			return label
		}

		return field.Name
	})

	return &inputValidator{validate: v}
}

func (v *inputValidator) validateStruct(input any) *ValidationResult {
	err := v.validate.Struct(input)
	if err == nil {
		return &ValidationResult{IsValid: true, Errors: []ValidationFailure{}}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationResult{
			IsValid: false,
			Errors:  []ValidationFailure{{PropertyName: "", ErrorMessage: err.Error()}},
		}
	}

	failures := make([]ValidationFailure, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		failures = append(failures, ValidationFailure{
			PropertyName: fieldErr.Field(),
			ErrorMessage: failureMessage(fieldErr),
		})
	}

	return &ValidationResult{IsValid: false, Errors: failures}
}

func failureMessage(fieldErr validator.FieldError) string {
	template, ok := validationMessages[fieldErr.Tag()]
	if !ok {
		return fmt.Sprintf("'%s' é inválido.", fieldErr.Field())
	}

	if fieldErr.Param() == "" {
		return fmt.Sprintf(template, fieldErr.Field())
	}

	return fmt.Sprintf(template, fieldErr.Field(), fieldErr.Param())
}

// GetCategoryInputValidator проверяет, что идентификатор категории передан.
type GetCategoryInputValidator struct {
	v *inputValidator
}

func NewGetCategoryInputValidator() *GetCategoryInputValidator {
	return &GetCategoryInputValidator{v: newInputValidator()}
}

func (g *GetCategoryInputValidator) Validate(input *GetCategoryInput) *ValidationResult {
	if input == nil {
		input = &GetCategoryInput{}
	}

	return g.v.validateStruct(input)
}

// ListCategoriesInputValidator проверяет параметры пагинации и сортировки.
type ListCategoriesInputValidator struct {
	v *inputValidator
}

func NewListCategoriesInputValidator() *ListCategoriesInputValidator {
	return &ListCategoriesInputValidator{v: newInputValidator()}
}

func (l *ListCategoriesInputValidator) Validate(input *ListCategoriesInput) *ValidationResult {
	return l.v.validateStruct(input)
}
