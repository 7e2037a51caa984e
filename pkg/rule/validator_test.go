package rule_test

import (
	"testing"

	"github.com/teczamora/repositorio65/pkg/rule"
)

type policy struct {
	MaxBytes int64  `rule:"min=1"`
	Kind     string `rule:"oneof=document bundle"`
}

func TestValidateStruct(t *testing.T) {
	if err := rule.ValidateStruct(&policy{MaxBytes: 100, Kind: "document"}); err != nil {
		t.Errorf("valid struct rejected: %v", err)
	}

	if err := rule.ValidateStruct(&policy{MaxBytes: 0, Kind: "document"}); err == nil {
		t.Error("zero max bytes accepted")
	}

	if err := rule.ValidateStruct(&policy{MaxBytes: 1, Kind: "archive"}); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestValidateVar(t *testing.T) {
	if err := rule.ValidateVar("T1", "required,max=20"); err != nil {
		t.Errorf("valid var rejected: %v", err)
	}

	if err := rule.ValidateVar("", "required"); err == nil {
		t.Error("empty required var accepted")
	}
}
