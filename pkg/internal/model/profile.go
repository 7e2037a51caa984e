package model

import "time"

// UserProfile maps an authenticated username (injected by the auth proxy)
// to its department. A profile with an empty Department exists but may not
// upload; downstream code treats that as a normal state, not an error.
type UserProfile struct {
	ID         uint       `gorm:"primaryKey"           json:"id"`
	Username   string     `gorm:"size:255;uniqueIndex" json:"username"`
	Department Department `gorm:"size:32;index"        json:"department,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// HasDepartment reports whether the profile carries a department assignment.
func (p *UserProfile) HasDepartment() bool {
	return p.Department != ""
}
