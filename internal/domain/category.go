package domain

// Category Model
type Category struct {
	ID          uint    `gorm:"primaryKey" json:"id"`                      // Primary key
	Name        string  `gorm:"size:100;uniqueIndex;not null" json:"name"` // Unique name
	Description string  `gorm:"size:500" json:"description"`               // Optional description
	Events      []Event `gorm:"many2many:event_categories;" json:"-"`      // Back-reference, not owned
}
