package domain

import "time"

// Category Model
type Category struct {
	ID          uint      `gorm:"primaryKey" json:"id"`            // Primary key
	Name        string    `gorm:"size:100;not null" json:"name"`   // Category name
	Description string    `json:"description"`                     // Category description
	CreatedByID uint      `json:"created_by_id"`                   // Foreign key to Admin
	CreatedBy   Admin     `gorm:"foreignKey:CreatedByID" json:"-"` // Admin who created the category
	CreatedAt   time.Time `json:"created_at"`                      // Timestamp of creation
	UpdatedAt   time.Time `json:"updated_at"`                      // Timestamp of last update
}
