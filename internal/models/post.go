package models

import "time"

// Post is a single blog entry. IDs are store-generated.
type Post struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	Title      string    `json:"title" gorm:"type:varchar(100);not null"`
	DatePosted time.Time `json:"date_posted" gorm:"not null;index"`
	Content    string    `json:"content" gorm:"type:text;not null"`
	UserID     string    `json:"user_id" gorm:"type:varchar(36);not null;index"`
}
