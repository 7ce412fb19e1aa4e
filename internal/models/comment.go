package models

import "time"

// Comment is attached to one image by one user and is never mutated
// after creation. Deleting the user or the image cascades here.
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"index;type:varchar(36);not null"`
	User      User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ImageID   string    `json:"image_id" gorm:"index;type:varchar(36);not null"`
	Image     Image     `json:"-" gorm:"foreignKey:ImageID;constraint:OnDelete:CASCADE"`
	Content   string    `json:"content" gorm:"type:varchar(500);not null"`
	CreatedAt time.Time `json:"created_at"`
}
