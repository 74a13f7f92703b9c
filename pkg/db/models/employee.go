package models

import "time"

// Employee is a staff directory entry. The slug is the stable URL handle for
// an employee's sales session.
type Employee struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Name      string    `gorm:"column:name;not null" json:"name"`
	Slug      string    `gorm:"column:slug;not null;uniqueIndex" json:"slug"`
	IsActive  bool      `gorm:"column:is_active;not null;default:true" json:"-"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"-"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"-"`
}

func (Employee) TableName() string {
	return "employees"
}
