package model

import (
	"fmt"
	"time"
)

// PeriodType is the reporting cadence of a classification key.
type PeriodType string

const (
	PeriodAnnual     PeriodType = "annual"
	PeriodQuarterly  PeriodType = "quarterly"
	PeriodSemiannual PeriodType = "semiannual"
)

// Document is one uploaded file version under a classification key
// (fraction, year, period). At most one document per key is current;
// versions are strictly increasing. Rows are never edited in place apart
// from the is_current flip when a newer version supersedes them, and never
// deleted (retained for audit).
type Document struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FractionID uint     `gorm:"index:idx_doc_key,priority:1;index:idx_doc_version,unique,priority:1" json:"fraction_id"`
	Fraction   Fraction `gorm:"foreignKey:FractionID" json:"fraction,omitempty"`

	UserProfileID uint        `gorm:"index" json:"user_profile_id"`
	UserProfile   UserProfile `gorm:"foreignKey:UserProfileID" json:"-"`

	PeriodType PeriodType `gorm:"size:15" json:"period_type"`
	Year       int        `gorm:"index:idx_doc_key,priority:2;index:idx_doc_version,unique,priority:2" json:"year"`
	// PeriodCode is stored uppercased (T1..T4, Q1..Q4, S1, S2, A, ANUAL).
	PeriodCode string `gorm:"size:20;index:idx_doc_key,priority:3;index:idx_doc_version,unique,priority:3" json:"period_code"`

	// ObjectKey is the blob reference: documents/{fraction}/{year}/{slug}{ext}.
	ObjectKey    string `gorm:"size:500"           json:"object_key"`
	OriginalName string `gorm:"size:255"           json:"original_name"`
	Size         int64  `gorm:"index"              json:"size"`
	Bundle       bool   `gorm:"default:false"      json:"bundle"`

	IsCurrent bool `gorm:"index"                                          json:"is_current"`
	Version   int  `gorm:"index:idx_doc_version,unique,priority:4"        json:"version"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HumanSize renders the byte size in a human-readable unit.
func (d *Document) HumanSize() string {
	if d.Size <= 0 {
		return "0 B"
	}

	size := float64(d.Size)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024.0 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}

		size /= 1024.0
	}

	return fmt.Sprintf("%.1f TB", size)
}
