package types

import (
	"time"

	"github.com/teczamora/repositorio65/pkg/internal/model"
)

// ListState filters a document listing by versioning state.
type ListState string

const (
	StateCurrent    ListState = "current"
	StateHistorical ListState = "historical"
	StateAll        ListState = "all"
)

// ListRequest carries the listing filters. State defaults to current.
type ListRequest struct {
	FractionID uint      `form:"fraction"`
	Year       int       `form:"year"`
	State      ListState `form:"state" binding:"omitempty,oneof=current historical all"`
	Query      string    `form:"q"     binding:"omitempty,max=200"`
	Page       int       `form:"page"      binding:"omitempty,min=1"`
	PageSize   int       `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// DocumentResponse is the wire shape of one document version.
type DocumentResponse struct {
	ID             uint      `json:"id"`
	FractionID     uint      `json:"fraction_id"`
	FractionNumber string    `json:"fraction_number"`
	FractionName   string    `json:"fraction_name"`
	PeriodType     string    `json:"period_type"`
	Year           int       `json:"year"`
	PeriodCode     string    `json:"period_code"`
	OriginalName   string    `json:"original_name"`
	Size           int64     `json:"size"`
	HumanSize      string    `json:"human_size"`
	Version        int       `json:"version"`
	IsCurrent      bool      `json:"is_current"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewDocumentResponse converts a model row (with Fraction preloaded).
func NewDocumentResponse(d *model.Document) DocumentResponse {
	return DocumentResponse{
		ID:             d.ID,
		FractionID:     d.FractionID,
		FractionNumber: d.Fraction.Number,
		FractionName:   d.Fraction.Name,
		PeriodType:     string(d.PeriodType),
		Year:           d.Year,
		PeriodCode:     d.PeriodCode,
		OriginalName:   d.OriginalName,
		Size:           d.Size,
		HumanSize:      d.HumanSize(),
		Version:        d.Version,
		IsCurrent:      d.IsCurrent,
		CreatedAt:      d.CreatedAt,
	}
}

// ListResponse is a paginated listing.
type ListResponse struct {
	Documents []DocumentResponse `json:"documents"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	PageSize  int                `json:"page_size"`
}

// FractionResponse is the wire shape of a catalog entry.
type FractionResponse struct {
	ID         uint   `json:"id"`
	Number     string `json:"number"`
	Name       string `json:"name"`
	Department string `json:"department"`
}
