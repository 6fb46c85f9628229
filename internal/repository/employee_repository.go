package repository

import (
	"context"
	"errors"

	"github.com/hrms-api/internal/domain"
	"gorm.io/gorm"
)

// EmployeeRepository определяет интерфейс для работы с сотрудниками
type EmployeeRepository interface {
	Create(ctx context.Context, emp *domain.Employee) error
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error)
	List(ctx context.Context) ([]domain.Employee, error)
	Update(ctx context.Context, emp *domain.Employee) error
	Delete(ctx context.Context, id int64) error
	ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error)
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository создаёт репозиторий поверх сессии или транзакции.
// Репозиторий живёт не дольше единицы работы, которой принадлежит db.
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, emp *domain.Employee) error {
	return translate(r.db.WithContext(ctx).Create(emp).Error)
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).First(&emp, id).Error
	if err != nil {
		return nil, translate(err)
	}
	return &emp, nil
}

func (r *employeeRepository) GetByEmployeeID(ctx context.Context, employeeID string) (*domain.Employee, error) {
	var emp domain.Employee
	err := r.db.WithContext(ctx).Where("employee_id = ?", employeeID).First(&emp).Error
	if err != nil {
		return nil, translate(err)
	}
	return &emp, nil
}

func (r *employeeRepository) List(ctx context.Context) ([]domain.Employee, error) {
	var employees []domain.Employee
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&employees).Error
	return employees, err
}

// Update сохраняет изменяемые поля. employee_id не обновляется никогда.
func (r *employeeRepository) Update(ctx context.Context, emp *domain.Employee) error {
	result := r.db.WithContext(ctx).
		Model(emp).
		Select("full_name", "email", "department", "date_of_joining", "updated_at").
		Updates(emp)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&domain.Employee{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *employeeRepository) ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("employee_id = ?", employeeID).
		Count(&count).Error
	return count > 0, err
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrEmployeeNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrDuplicateEmployeeID
	default:
		return err
	}
}
