package model

import "time"

// Department identifies the unit that owns a fraction and uploads to it.
type Department string

const (
	DepartmentTransparency Department = "transparencia"
	DepartmentFinance      Department = "recursos_financieros"
)

// Fraction is one numbered disclosure category of Artículo 65. The catalog
// is seeded by tooling and read-only for the service.
type Fraction struct {
	ID uint `gorm:"primaryKey" json:"id"`
	// Roman numeral as published in the law (I, II, III...).
	Number      string     `gorm:"size:10;uniqueIndex" json:"number"`
	Name        string     `gorm:"size:200"            json:"name"`
	Description string     `gorm:"type:text"           json:"description,omitempty"`
	Department  Department `gorm:"size:32;index"       json:"department"`
	Active      bool       `gorm:"default:true;index"  json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
}
