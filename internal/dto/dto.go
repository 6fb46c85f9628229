package dto

import (
	"github.com/hrms-api/internal/domain"
)

// DateLayout - формат даты во входных и выходных данных
const DateLayout = "2006-01-02"

// CreateEmployeeRequest - запрос на создание сотрудника.
// Если date_of_joining не передан, ValidateCreate подставляет текущую дату.
type CreateEmployeeRequest struct {
	EmployeeID    string  `json:"employee_id" validate:"required,min=1,max=50"`
	FullName      string  `json:"full_name" validate:"required,min=1,max=200"`
	Email         string  `json:"email" validate:"required,email"`
	Department    string  `json:"department" validate:"required,min=1,max=100"`
	DateOfJoining *string `json:"date_of_joining" validate:"omitnil,datetime=2006-01-02"`
}

// UpdateEmployeeRequest - запрос на обновление сотрудника.
// employee_id не входит в запрос и не меняется.
type UpdateEmployeeRequest struct {
	FullName      string `json:"full_name" validate:"required,min=1,max=200"`
	Email         string `json:"email" validate:"required,email"`
	Department    string `json:"department" validate:"required,min=1,max=100"`
	DateOfJoining string `json:"date_of_joining" validate:"required,datetime=2006-01-02"`
}

// EmployeeResponse - ответ с данными сотрудника
type EmployeeResponse struct {
	ID            int64  `json:"id"`
	EmployeeID    string `json:"employee_id"`
	FullName      string `json:"full_name"`
	Email         string `json:"email"`
	Department    string `json:"department"`
	DateOfJoining string `json:"date_of_joining"`
}

// NewEmployeeResponse строит ответ из сохранённой записи
func NewEmployeeResponse(emp *domain.Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:            emp.ID,
		EmployeeID:    emp.EmployeeID,
		FullName:      emp.FullName,
		Email:         emp.Email,
		Department:    emp.Department,
		DateOfJoining: emp.DateOfJoining.Format(DateLayout),
	}
}

// NewEmployeeResponses строит ответы для списка записей
func NewEmployeeResponses(employees []domain.Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(employees))
	for i := range employees {
		resp[i] = NewEmployeeResponse(&employees[i])
	}
	return resp
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}
