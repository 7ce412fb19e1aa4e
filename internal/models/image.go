package models

import "time"

// Image is an uploaded picture. The binary lives on disk at ImagePath;
// the row only carries metadata. Deleting the owning user cascades here.
type Image struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID      string    `json:"user_id" gorm:"index;type:varchar(36);not null"`
	User        User      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	ImagePath   string    `json:"image_path" gorm:"type:varchar(300);not null"`
	Title       string    `json:"title,omitempty" gorm:"type:varchar(150)"`
	Description string    `json:"description,omitempty" gorm:"type:varchar(500)"`
	CreatedAt   time.Time `json:"created_at"`
}
