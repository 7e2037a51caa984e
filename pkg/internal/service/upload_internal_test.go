package service

import (
	"errors"
	"testing"

	"gorm.io/gorm"

	"github.com/teczamora/repositorio65/pkg/internal/types"
)

func TestDocumentInsertErrorClassification(t *testing.T) {
	key := Key{FractionID: 3, Year: 2024, PeriodCode: "T1"}

	err := documentInsertError(key, 2, gorm.ErrDuplicatedKey)
	if !errors.Is(err, types.ErrConflict) {
		t.Fatalf("duplicated key classified as %v, want ErrConflict", err)
	}

	plain := documentInsertError(key, 2, errors.New("disk full"))
	if errors.Is(plain, types.ErrConflict) {
		t.Fatalf("unrelated insert failure misclassified as conflict: %v", plain)
	}
}

func TestPayloadViolation(t *testing.T) {
	allowed := []string{"pdf", "xlsx"}

	const maxBytes = 10

	cases := []struct {
		name    string
		payload types.Payload
		reject  bool
	}{
		{"permitted", types.Payload{Filename: "acta.pdf", Size: 10}, false},
		{"uppercase extension", types.Payload{Filename: "ACTA.PDF", Size: 3}, false},
		{"forbidden extension", types.Payload{Filename: "acta.exe", Size: 3}, true},
		{"no extension", types.Payload{Filename: "acta", Size: 3}, true},
		{"empty", types.Payload{Filename: "acta.pdf", Size: 0}, true},
		{"over limit", types.Payload{Filename: "acta.pdf", Size: 11}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := payloadViolation(tc.payload, allowed, maxBytes)
			if (v != nil) != tc.reject {
				t.Errorf("violation = %v, want reject=%v", v, tc.reject)
			}
		})
	}
}
