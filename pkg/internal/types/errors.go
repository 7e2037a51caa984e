package types

import (
	"errors"
	"fmt"
)

// Sentinel errors of the upload and serve pipelines. Handlers map these to
// HTTP statuses; services wrap them with context via %w.
var (
	// ErrUnauthorized: requester has no profile, no department, or the
	// fraction belongs to another department. Reported as a blanket denial.
	ErrUnauthorized = errors.New("not permitted")

	// ErrInvalidClassification: period code/type outside the vocabulary,
	// unknown or inactive fraction, or year out of range.
	ErrInvalidClassification = errors.New("invalid classification")

	// ErrNotFound: document record missing, or its backing blob is gone.
	ErrNotFound = errors.New("document not found")

	// ErrStorageFailure: blob write or read failed. On write this aborts
	// the whole batch.
	ErrStorageFailure = errors.New("storage failure")

	// ErrConflict indicates a versioning collision that the row lock should
	// make impossible. Observing it means the locking discipline is broken;
	// it is logged as an error and never silently retried.
	ErrConflict = errors.New("version conflict")
)

// PayloadError reports one rejected file of a batch. The batch is
// all-or-nothing: a single PayloadError fails every file in it.
type PayloadError struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("payload %s rejected: %s", e.Filename, e.Reason)
}

// BatchRejectedError aggregates the per-file reasons of a failed batch.
type BatchRejectedError struct {
	Payloads []PayloadError `json:"payloads"`
}

func (e *BatchRejectedError) Error() string {
	if len(e.Payloads) == 1 {
		return e.Payloads[0].Error()
	}

	return fmt.Sprintf("%d payloads rejected", len(e.Payloads))
}
