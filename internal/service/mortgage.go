package service

import (
	"context"
	"fmt"
	"math"

	"homeadvisor/internal/model"
)

// Defaults applied when the caller omits financial figures.
const (
	defaultIncome       = 12_00_000
	defaultCreditScore  = 750
	defaultDownPayment  = 20_00_000
	defaultLoanAmount   = 80_00_000
	defaultInterestRate = 8.0
	defaultTenureYears  = 25

	// Banks typically allow 40-50% of salary toward EMI.
	maxEMIRatio = 0.5
)

// MortgageProfile is the buyer's financial picture used for a recommendation.
type MortgageProfile struct {
	Income       float64
	CreditScore  int
	DownPayment  float64
	LoanAmount   float64
	PropertyType string
}

// LoanFinancials are the derived numbers for a loan.
type LoanFinancials struct {
	EMI              float64
	MinMonthlySalary float64
	MinAnnualSalary  float64
	InterestRate     float64
	TenureYears      int
}

// CalculateEMI computes the monthly installment and the minimum salary a
// bank would expect for the loan, using the standard EMI formula.
func CalculateEMI(loanAmount, annualInterestRate float64, tenureYears int) LoanFinancials {
	monthlyRate := annualInterestRate / (12 * 100)
	numMonths := float64(tenureYears * 12)

	factor := math.Pow(1+monthlyRate, numMonths)
	emi := loanAmount * monthlyRate * factor / (factor - 1)
	emi = math.Round(emi*100) / 100

	// Salary floors are quoted off the rounded installment the buyer sees.
	minMonthly := emi / maxEMIRatio

	return LoanFinancials{
		EMI:              emi,
		MinMonthlySalary: math.Round(minMonthly*100) / 100,
		MinAnnualSalary:  math.Round(minMonthly*12*100) / 100,
		InterestRate:     annualInterestRate,
		TenureYears:      tenureYears,
	}
}

// MortgageRecommender turns a buyer's financial profile into mortgage advice.
type MortgageRecommender struct {
	llm LLM
}

// NewMortgageRecommender creates a new mortgage recommender.
func NewMortgageRecommender(llm LLM) *MortgageRecommender {
	return &MortgageRecommender{llm: llm}
}

// Recommend produces mortgage advice for the profile, filling in defaults
// for missing figures and computing EMI/salary requirements first.
func (m *MortgageRecommender) Recommend(ctx context.Context, profile MortgageProfile, history []model.ChatMessage, userContext string) (string, error) {
	if profile.Income <= 0 {
		profile.Income = defaultIncome
	}
	if profile.CreditScore <= 0 {
		profile.CreditScore = defaultCreditScore
	}
	if profile.DownPayment <= 0 {
		profile.DownPayment = defaultDownPayment
	}
	if profile.LoanAmount <= 0 {
		profile.LoanAmount = defaultLoanAmount
	}
	if profile.PropertyType == "" {
		profile.PropertyType = "apartment"
	}

	financials := CalculateEMI(profile.LoanAmount, defaultInterestRate, defaultTenureYears)

	if m.llm == nil || !m.llm.IsEnabled() {
		return m.cannedRecommendation(profile, financials), nil
	}

	system := `You are an expert mortgage advisor helping homebuyers in India.

Instructions:
- Read the buyer's financial details and compute logical next steps.
- Use chat history context if available.
- Structure advice clearly in numbered sections.
- Make recommendations practical, especially for first-time buyers.`

	userMessage := fmt.Sprintf(`Evaluate the following buyer's mortgage profile:

• Property Type: %s
• Annual Income: ₹%.2f
• Credit Score: %d
• Down Payment Available: ₹%.2f
• Desired Loan Amount: ₹%.2f
• Estimated EMI: ₹%.2f / month
• Minimum Monthly Salary Required: ₹%.2f
• Minimum Annual Salary Required: ₹%.2f
• Tenure Assumed: %d years @ %.1f%%
• Additional Context: %s

Provide:
1. Best-suited mortgage type (Fixed/Floating/Hybrid) and rationale.
2. Interest rate range based on profile and current Indian market.
3. Recommended loan tenure for balanced EMI and interest.
4. EMI estimate with assumptions.
5. Tips to improve mortgage approval chances.
6. Key advice for first-time applicants dealing with Indian banks or NBFCs.`,
		profile.PropertyType, profile.Income, profile.CreditScore,
		profile.DownPayment, profile.LoanAmount,
		financials.EMI, financials.MinMonthlySalary, financials.MinAnnualSalary,
		financials.TenureYears, financials.InterestRate,
		orDefault(userContext, "No extra context provided"))

	return m.llm.Complete(ctx, system, userMessage, history)
}

func (m *MortgageRecommender) cannedRecommendation(profile MortgageProfile, f LoanFinancials) string {
	rateNote := "8.3% – 8.9%"
	if profile.CreditScore >= 780 {
		rateNote = "8.0% – 8.5%"
	} else if profile.CreditScore < 700 {
		rateNote = "8.9% – 9.8%"
	}

	affordability := "Your income comfortably covers the EMI."
	if profile.Income/12 < f.MinMonthlySalary {
		affordability = "Your income is below what most banks expect for this EMI; consider a smaller loan or longer tenure."
	}

	return fmt.Sprintf(`1. Mortgage type: a floating-rate home loan suits a %s purchase at current rates; switch-to-fixed options exist if rates spike.
2. Expected interest rate range for a credit score of %d: %s.
3. Recommended tenure: %d years balances EMI size against total interest paid.
4. EMI estimate: ₹%.0f per month on a loan of ₹%.0f (%.1f%% for %d years). Minimum monthly salary banks will look for: ₹%.0f. %s
5. Approval tips: keep your credit utilization under 30%%, avoid new unsecured loans before applying, and pre-close small EMIs.
6. First-time buyers: compare at least three banks/NBFCs on processing fee and prepayment terms, and get a pre-approval letter before negotiating.`,
		profile.PropertyType, profile.CreditScore, rateNote,
		f.TenureYears, f.EMI, profile.LoanAmount, f.InterestRate, f.TenureYears,
		f.MinMonthlySalary, affordability)
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
