package domain

import "errors"

// Определение бизнес-ошибок
var (
	ErrValidation          = errors.New("validation error")
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrDuplicateEmployeeID = errors.New("employee with this employee_id already exists")
)
