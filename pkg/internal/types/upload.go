package types

import "io"

// UploadRequest is the classification part of a multipart upload submission.
// The file parts arrive separately as Payloads.
type UploadRequest struct {
	FractionID uint   `form:"fraction_id" binding:"required"`
	PeriodType string `form:"period_type" binding:"required,oneof=annual quarterly semiannual"`
	Year       int    `form:"year"        binding:"required"`
	PeriodCode string `form:"period_code" binding:"required,max=20"`
	// Bundle switches to the compressed-archive policy (zip/rar/7z, 500 MiB).
	Bundle bool `form:"bundle"`
}

// Payload is one incoming file of a batch.
type Payload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

// UploadResponse acknowledges a committed batch: every file shares the same
// newly assigned version.
type UploadResponse struct {
	Version   int                `json:"version"`
	Committed int                `json:"committed"`
	Documents []DocumentResponse `json:"documents"`
}

// UploadErrorResponse is the structured rejection of a batch.
type UploadErrorResponse struct {
	Error    string         `json:"error"`
	Payloads []PayloadError `json:"payloads,omitempty"`
}
