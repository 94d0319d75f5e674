package domain

import "time"

// Admin Model
type Admin struct {
	ID        uint      `gorm:"primaryKey" json:"id"`            // Primary key
	Username  string    `gorm:"unique;not null" json:"username"` // Unique username
	Password  string    `gorm:"not null" json:"-"`               // Hashed password, never serialized
	Email     string    `json:"email"`                           // Contact email
	CreatedAt time.Time `json:"created_at"`                      // Timestamp of creation
	UpdatedAt time.Time `json:"updated_at"`                      // Timestamp of last update
}
