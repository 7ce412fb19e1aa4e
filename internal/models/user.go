package models

import "time"

// User represents a registered account. Rows are immutable after registration.
type User struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Username  string     `json:"username" gorm:"uniqueIndex;type:varchar(150);not null" validate:"required,min=3,max=150"`
	FirstName string     `json:"first_name" gorm:"type:varchar(100)" validate:"required,max=100"`
	LastName  string     `json:"last_name" gorm:"type:varchar(100)" validate:"required,max=100"`
	Email     string     `json:"email" gorm:"uniqueIndex;type:varchar(255);not null" validate:"required,email"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Password  string     `json:"-" gorm:"type:varchar(255);not null"` // bcrypt hash, never plaintext
	CreatedAt time.Time  `json:"created_at"`
}
