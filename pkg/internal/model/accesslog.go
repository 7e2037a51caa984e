package model

import "time"

// AccessLog is an immutable record of one serve of a document's content.
// UserProfileID is nil for anonymous/public access. Rows are created by the
// access recorder and never updated or deleted.
type AccessLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DocumentID uint     `gorm:"index:idx_access_doc_time,priority:1" json:"document_id"`
	Document   Document `gorm:"foreignKey:DocumentID" json:"-"`

	UserProfileID *uint  `gorm:"index"      json:"user_profile_id,omitempty"`
	IPAddress     string `gorm:"size:45"    json:"ip_address,omitempty"`
	IsPublic      bool   `gorm:"index"      json:"is_public"`
	UserAgent     string `gorm:"type:text"  json:"user_agent,omitempty"`

	CreatedAt time.Time `gorm:"index:idx_access_doc_time,priority:2;index" json:"created_at"`
}
