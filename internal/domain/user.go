package domain

import "time"

// Role is the access level of a user
type Role string

const (
	RoleUser      Role = "USER"      // Attendee
	RoleOrganizer Role = "ORGANIZER" // Creates and manages events
	RoleAdmin     Role = "ADMIN"     // Full access
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleOrganizer, RoleAdmin:
		return true
	}
	return false
}

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                       // Primary key
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"` // Unique email, used as login name
	Password  string    `gorm:"not null" json:"-"`                          // Hashed password, never serialized
	FirstName string    `gorm:"size:100" json:"firstName"`                  // First name
	LastName  string    `gorm:"size:100" json:"lastName"`                   // Last name
	Role      Role      `gorm:"size:20;not null;default:USER" json:"role"`  // USER, ORGANIZER or ADMIN
	CreatedAt time.Time `json:"createdAt"`                                  // Set by GORM on insert
	UpdatedAt time.Time `json:"updatedAt"`                                  // Set by GORM on save
}

// Principal is the authenticated caller of a request
type Principal struct {
	UserID uint   // Authenticated user ID
	Email  string // Login name
	Role   Role   // Role at the time of authentication
}

// Authorities returns the role names in the ROLE_ form clients expect
func (p Principal) Authorities() []string {
	return []string{"ROLE_" + string(p.Role)}
}
