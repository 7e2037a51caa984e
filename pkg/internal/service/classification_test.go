package service_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/teczamora/repositorio65/pkg/internal/model"
	"github.com/teczamora/repositorio65/pkg/internal/service"
	"github.com/teczamora/repositorio65/pkg/internal/types"
)

func TestNormalizePeriod(t *testing.T) {
	cases := []struct {
		periodType model.PeriodType
		in         string
		want       string
	}{
		{model.PeriodQuarterly, "t1", "T1"},
		{model.PeriodQuarterly, " q2 ", "Q2"},
		{model.PeriodQuarterly, "T4", "T4"},
		{model.PeriodSemiannual, "s1", "S1"},
		{model.PeriodSemiannual, "S2", "S2"},
		{model.PeriodAnnual, "a", "A"},
		{model.PeriodAnnual, "anual", "ANUAL"},
		{model.PeriodAnnual, "ANNUAL", "ANNUAL"},
	}

	for _, tc := range cases {
		got, err := service.NormalizePeriod(tc.periodType, tc.in)
		if err != nil {
			t.Errorf("NormalizePeriod(%s, %q) error: %v", tc.periodType, tc.in, err)
			continue
		}

		if got != tc.want {
			t.Errorf("NormalizePeriod(%s, %q) = %q, want %q", tc.periodType, tc.in, got, tc.want)
		}
	}
}

func TestNormalizePeriodRejects(t *testing.T) {
	cases := []struct {
		name       string
		periodType model.PeriodType
		in         string
	}{
		{"empty", model.PeriodQuarterly, ""},
		{"blank", model.PeriodQuarterly, "   "},
		{"oversized", model.PeriodQuarterly, strings.Repeat("Q", 30)},
		{"unknown code", model.PeriodQuarterly, "Q5"},
		{"semiannual code on quarterly", model.PeriodQuarterly, "S1"},
		{"quarterly code on annual", model.PeriodAnnual, "Q1"},
		{"unknown period type", model.PeriodType("monthly"), "M1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.NormalizePeriod(tc.periodType, tc.in)
			if !errors.Is(err, types.ErrInvalidClassification) {
				t.Errorf("err = %v, want ErrInvalidClassification", err)
			}
		})
	}
}

func TestPermittedFractions(t *testing.T) {
	env := newTestEnv(t)

	fractions, err := env.svc.PermittedFractions(env.ctx, &env.uploader)
	if err != nil {
		t.Fatalf("permitted fractions: %v", err)
	}

	if len(fractions) != 1 || fractions[0].Number != "III" {
		t.Fatalf("fractions = %+v, want only III", fractions)
	}

	// No department means an empty catalog, not an error.
	fractions, err = env.svc.PermittedFractions(env.ctx, &env.noDept)
	if err != nil {
		t.Fatalf("permitted fractions without department: %v", err)
	}

	if len(fractions) != 0 {
		t.Errorf("fractions = %+v, want empty", fractions)
	}

	fractions, err = env.svc.PermittedFractions(env.ctx, nil)
	if err != nil || len(fractions) != 0 {
		t.Errorf("anonymous fractions = %+v, %v; want empty, nil", fractions, err)
	}
}
