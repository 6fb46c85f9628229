package service

import (
	"context"
	"fmt"

	"github.com/hrms-api/internal/database"
	"github.com/hrms-api/internal/domain"
	"github.com/hrms-api/internal/dto"
	"github.com/hrms-api/internal/repository"
	"gorm.io/gorm"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type employeeService struct {
	sessions  database.SessionProvider
	validator *dto.Validator
}

// NewEmployeeService создаёт новый экземпляр сервиса.
// Каждый вызов работает в собственной сессии.
func NewEmployeeService(sessions database.SessionProvider, validator *dto.Validator) EmployeeService {
	return &employeeService{
		sessions:  sessions,
		validator: validator,
	}
}

func (s *employeeService) Create(ctx context.Context, req *dto.CreateEmployeeRequest) (*domain.Employee, error) {
	// Проверка до обращения к хранилищу
	if err := s.validator.ValidateCreate(req); err != nil {
		return nil, err
	}

	joined, err := dto.ParseDate(*req.DateOfJoining)
	if err != nil {
		return nil, fmt.Errorf("%w: date_of_joining: %v", domain.ErrValidation, err)
	}

	emp := &domain.Employee{
		EmployeeID:    req.EmployeeID,
		FullName:      req.FullName,
		Email:         req.Email,
		Department:    req.Department,
		DateOfJoining: joined,
	}

	err = s.sessions.WithSession(ctx, func(sess *database.Session) error {
		return sess.Transaction(ctx, func(tx *gorm.DB) error {
			repo := repository.NewEmployeeRepository(tx)

			// Проверяем уникальность внешнего идентификатора
			exists, err := repo.ExistsByEmployeeID(ctx, emp.EmployeeID)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrDuplicateEmployeeID
			}

			return repo.Create(ctx, emp)
		})
	})
	if err != nil {
		return nil, err
	}

	return emp, nil
}

func (s *employeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var emp *domain.Employee
	err := s.sessions.WithSession(ctx, func(sess *database.Session) error {
		var err error
		emp, err = repository.NewEmployeeRepository(sess.DB()).GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return emp, nil
}

func (s *employeeService) List(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := s.sessions.WithSession(ctx, func(sess *database.Session) error {
		var err error
		employees, err = repository.NewEmployeeRepository(sess.DB()).List(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (s *employeeService) Update(ctx context.Context, id int64, req *dto.UpdateEmployeeRequest) (*domain.Employee, error) {
	if err := s.validator.ValidateUpdate(req); err != nil {
		return nil, err
	}

	joined, err := dto.ParseDate(req.DateOfJoining)
	if err != nil {
		return nil, fmt.Errorf("%w: date_of_joining: %v", domain.ErrValidation, err)
	}

	var emp *domain.Employee
	err = s.sessions.WithSession(ctx, func(sess *database.Session) error {
		return sess.Transaction(ctx, func(tx *gorm.DB) error {
			repo := repository.NewEmployeeRepository(tx)

			var err error
			emp, err = repo.GetByID(ctx, id)
			if err != nil {
				return err
			}

			emp.FullName = req.FullName
			emp.Email = req.Email
			emp.Department = req.Department
			emp.DateOfJoining = joined

			return repo.Update(ctx, emp)
		})
	})
	if err != nil {
		return nil, err
	}

	return emp, nil
}

func (s *employeeService) Delete(ctx context.Context, id int64) error {
	return s.sessions.WithSession(ctx, func(sess *database.Session) error {
		return sess.Transaction(ctx, func(tx *gorm.DB) error {
			return repository.NewEmployeeRepository(tx).Delete(ctx, id)
		})
	})
}
