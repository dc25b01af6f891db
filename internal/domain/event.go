package domain

import "time"

// Event Model
type Event struct {
	ID            uint           `gorm:"primaryKey" json:"id"`                                     // Primary key
	Name          string         `gorm:"size:255;not null" json:"name"`                            // Display name
	Description   string         `gorm:"size:1000" json:"description"`                             // Free text description
	StartDate     time.Time      `gorm:"not null;index" json:"startDate"`                          // Start timestamp
	EndDate       time.Time      `gorm:"not null" json:"endDate"`                                  // End timestamp
	Location      string         `gorm:"size:255" json:"location"`                                 // Venue
	ImageURL      string         `gorm:"size:512" json:"imageUrl"`                                 // Image reference
	Capacity      int            `gorm:"not null;default:0;check:capacity >= 0" json:"capacity"`   // 0 means unlimited
	OrganizerID   *uint          `gorm:"index" json:"organizerId"`                                 // Foreign key to User
	Organizer     *User          `gorm:"constraint:OnDelete:SET NULL;" json:"organizer,omitempty"` // Owning organizer
	Categories    []Category     `gorm:"many2many:event_categories;" json:"categories"`            // Unordered category set
	Registrations []Registration `gorm:"constraint:OnDelete:CASCADE;" json:"-"`                    // Owned by the event
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// Unlimited reports whether the event accepts any number of registrations
func (e *Event) Unlimited() bool {
	return e.Capacity == 0
}
