package domain

import "time"

// Supplier Model
type Supplier struct {
	ID          uint      `gorm:"primaryKey" json:"id"`            // Primary key
	Name        string    `gorm:"size:100;not null" json:"name"`   // Supplier name
	ContactInfo string    `json:"contact_info"`                    // Supplier contact details
	CreatedByID uint      `json:"created_by_id"`                   // Foreign key to Admin
	CreatedBy   Admin     `gorm:"foreignKey:CreatedByID" json:"-"` // Admin who created the supplier
	CreatedAt   time.Time `json:"created_at"`                      // Timestamp of creation
	UpdatedAt   time.Time `json:"updated_at"`                      // Timestamp of last update
}
