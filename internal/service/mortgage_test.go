package service

import (
	"context"
	"math"
	"strings"
	"testing"
)

func TestCalculateEMI(t *testing.T) {
	tests := []struct {
		name           string
		loan           float64
		rate           float64
		years          int
		wantEMI        float64
		wantMinMonthly float64
	}{
		{
			// 12L @ 12% for 10 years is the textbook example: ₹17,216.51/month.
			// The salary floor is quoted off the rounded installment.
			name:           "Textbook case",
			loan:           12_00_000,
			rate:           12.0,
			years:          10,
			wantEMI:        17216.51,
			wantMinMonthly: 34433.02,
		},
		{
			name:    "Default profile",
			loan:    80_00_000,
			rate:    8.0,
			years:   25,
			wantEMI: 61745,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateEMI(tt.loan, tt.rate, tt.years)

			if math.Abs(got.EMI-tt.wantEMI) > 5.0 {
				t.Errorf("EMI = %.2f, want %.2f", got.EMI, tt.wantEMI)
			}
			if math.Abs(got.MinMonthlySalary-got.EMI/maxEMIRatio) > 0.01 {
				t.Errorf("MinMonthlySalary = %.2f, want EMI/%.1f", got.MinMonthlySalary, maxEMIRatio)
			}
			if tt.wantMinMonthly != 0 && math.Abs(got.MinMonthlySalary-tt.wantMinMonthly) > 0.005 {
				t.Errorf("MinMonthlySalary = %.2f, want %.2f", got.MinMonthlySalary, tt.wantMinMonthly)
			}
			if math.Abs(got.MinAnnualSalary-got.MinMonthlySalary*12) > 0.5 {
				t.Errorf("MinAnnualSalary = %.2f, want 12×monthly", got.MinAnnualSalary)
			}
			if got.TenureYears != tt.years || got.InterestRate != tt.rate {
				t.Errorf("echoed terms = %d years @ %.1f%%, want %d @ %.1f%%",
					got.TenureYears, got.InterestRate, tt.years, tt.rate)
			}
		})
	}
}

func TestMortgageRecommender_DefaultsWithoutLLM(t *testing.T) {
	rec := NewMortgageRecommender(nil)

	text, err := rec.Recommend(context.Background(), MortgageProfile{}, nil, "")
	if err != nil {
		t.Fatalf("Recommend failed: %v", err)
	}
	if text == "" {
		t.Fatal("expected a recommendation")
	}
	// Defaults: credit 750 sits in the middle rate band.
	if !strings.Contains(text, "750") {
		t.Errorf("expected default credit score in output, got: %s", text)
	}
	if !strings.Contains(text, "EMI") {
		t.Errorf("expected EMI figures in output, got: %s", text)
	}
}

func TestMortgageRecommender_RateBands(t *testing.T) {
	rec := NewMortgageRecommender(nil)
	ctx := context.Background()

	tests := []struct {
		name   string
		credit int
		want   string
	}{
		{name: "Excellent credit", credit: 800, want: "8.0% – 8.5%"},
		{name: "Average credit", credit: 740, want: "8.3% – 8.9%"},
		{name: "Weak credit", credit: 650, want: "8.9% – 9.8%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := rec.Recommend(ctx, MortgageProfile{CreditScore: tt.credit}, nil, "")
			if err != nil {
				t.Fatalf("Recommend failed: %v", err)
			}
			if !strings.Contains(text, tt.want) {
				t.Errorf("credit %d: expected rate band %q in output", tt.credit, tt.want)
			}
		})
	}
}
