package dto

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hrms-api/internal/domain"
)

// FieldError описывает нарушение ограничения одного поля
type FieldError struct {
	Field   string
	Rule    string
	Message string
}

// ValidationError собирает все нарушения одного запроса.
// errors.Is(err, domain.ErrValidation) для него истинно.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return domain.ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error {
	return domain.ErrValidation
}

// Response переводит ошибку в тело ответа
func (e *ValidationError) Response() ErrorResponse {
	fields := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		fields[f.Field] = f.Message
	}
	return ErrorResponse{Detail: domain.ErrValidation.Error(), Fields: fields}
}

// Validator проверяет запросы до любого обращения к хранилищу
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// NewValidator создаёт валидатор с системными часами
func NewValidator() *Validator {
	return NewValidatorWithClock(time.Now)
}

// NewValidatorWithClock создаёт валидатор с заданными часами
func NewValidatorWithClock(now func() time.Time) *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validate: v, now: now}
}

// ValidateCreate проверяет запрос на создание и подставляет
// текущую дату в date_of_joining, если она не передана.
func (v *Validator) ValidateCreate(req *CreateEmployeeRequest) error {
	if err := v.check(req); err != nil {
		return err
	}

	if req.DateOfJoining == nil {
		today := v.now().Format(DateLayout)
		req.DateOfJoining = &today
	}
	return nil
}

// ValidateUpdate проверяет запрос на обновление
func (v *Validator) ValidateUpdate(req *UpdateEmployeeRequest) error {
	return v.check(req)
}

func (v *Validator) check(req any) error {
	err := v.validate.Struct(req)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	fields := make([]FieldError, len(verrs))
	for i, fe := range verrs {
		fields[i] = FieldError{
			Field:   fe.Field(),
			Rule:    fe.Tag(),
			Message: message(fe),
		}
	}
	return &ValidationError{Fields: fields}
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field is required"
	case "min":
		return fmt.Sprintf("must be at least %s characters", fe.Param())
	case "max":
		return fmt.Sprintf("must be at most %s characters", fe.Param())
	case "email":
		return "must be a valid email address"
	case "datetime":
		return "must be a date in YYYY-MM-DD format"
	default:
		return "failed on " + fe.Tag()
	}
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// Decode читает JSON-тело запроса. Неизвестные поля игнорируются.
func Decode[T any](r io.Reader) (*T, error) {
	var req T
	if err := json.NewDecoder(r).Decode(&req); err != nil {
		return nil, fmt.Errorf("%w: invalid request body: %v", domain.ErrValidation, err)
	}
	return &req, nil
}
