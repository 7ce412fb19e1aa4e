package models

import "time"

// Session maps an opaque token ID to a user. A row existing (and not
// being past ExpiresAt) is what makes a token valid; revocation deletes it.
type Session struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `gorm:"index;type:varchar(36);not null"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time
	ExpiresAt time.Time
}
