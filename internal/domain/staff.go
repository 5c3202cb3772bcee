package domain

import (
	"time"

	"gorm.io/gorm"
)

// StaffMember represents an employee with an access level
type StaffMember struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"not null"`
	Email       string `gorm:"not null;uniqueIndex"`
	Designation string
	Department  string
	Rights      Rights `gorm:"type:varchar(20);not null"`
	PhoneNumber string
	Status      Status    `gorm:"type:varchar(20);not null"`
	CreatedAt   time.Time `gorm:"column:created_date;not null;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"column:updated_date;autoUpdateTime:false"`
}

func (StaffMember) TableName() string {
	return "staff"
}

func (s *StaffMember) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now
	s.Status = s.Status.OrDefault()
	return nil
}

func (s *StaffMember) BeforeUpdate(tx *gorm.DB) error {
	s.UpdatedAt = time.Now()
	return nil
}
