package model

import (
	"time"

	"gorm.io/datatypes"
)

const RoleAdmin = "admin"

// Employee is owned by the user directory; the attendance core only reads it.
type Employee struct {
	ID          string `gorm:"primaryKey;column:id" json:"id"`
	DisplayName string `gorm:"column:display_name" json:"display_name"`
	Role        string `gorm:"column:role;not null" json:"role"`
	Password    string `gorm:"column:password" json:"-"`
	Email       *string
	StartDate   *time.Time
	EndDate     *time.Time
	Attributes  datatypes.JSON `json:"attributes,omitempty"`
}

func (Employee) TableName() string {
	return "employees"
}

func (e *Employee) Active() bool {
	return e.EndDate == nil || e.EndDate.After(time.Now())
}
