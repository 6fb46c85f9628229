package domain

import (
	"time"
)

// Employee представляет сотрудника
type Employee struct {
	ID            int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	EmployeeID    string    `json:"employee_id" gorm:"type:varchar(50);not null;uniqueIndex"`
	FullName      string    `json:"full_name" gorm:"type:varchar(200);not null"`
	Email         string    `json:"email" gorm:"type:varchar(254);not null"`
	Department    string    `json:"department" gorm:"type:varchar(100);not null"`
	DateOfJoining time.Time `json:"date_of_joining" gorm:"type:date;not null"`
	CreatedAt     time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName задаёт имя таблицы для GORM
func (Employee) TableName() string {
	return "employees"
}
