package planner

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/fin-planner-api/internal/models"
	"github.com/user/fin-planner-api/internal/services/ai"
	"github.com/user/fin-planner-api/internal/services/eligibility"
	"go.uber.org/zap/zaptest"
)

// fakeGenerator записывает промпты и отдаёт заранее заданный ответ
type fakeGenerator struct {
	response string
	err      error
	prompts  []string
	schemas  []*ai.Schema
	deadline bool
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, prompt string, schema *ai.Schema) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.schemas = append(f.schemas, schema)
	_, f.deadline = ctx.Deadline()
	return f.response, f.err
}

const debtPlanJSON = `{
  "aggressive": {
    "title": "🔥 Monk Mode (Aggressive)", "desc": "Live lean, kill debt fast.",
    "allocation": {"extra_debt": 45000, "invest": 5000},
    "steps": ["Cut dining out", "Prepay the loan", "Keep an emergency fund", "Review monthly"]
  },
  "balanced": {
    "title": "🌱 Smart Balance (Growth)", "desc": "Invest while you pay.",
    "allocation": {"extra_debt": 25000, "invest": 25000},
    "steps": ["Start an SIP", "Prepay quarterly", "Build liquid fund", "Review yearly"]
  }
}`

const wealthPlanJSON = `{
  "aggressive": {
    "title": "🚀 Wealth Accelerator", "desc": "Aggressive compounding.",
    "allocation": {"extra_debt": 0, "invest": 27000},
    "steps": ["Small cap SIP", "Direct equity", "Rebalance"]
  },
  "balanced": {
    "title": "🛡️ Wealth Fortress", "desc": "Steady growth.",
    "allocation": {"extra_debt": 0, "invest": 18000},
    "steps": ["Large cap fund", "Gold ETF", "Liquid fund"]
  }
}`

func newTestService(t *testing.T, gen ai.Generator, configured bool) *Service {
	t.Helper()
	return NewService(gen, Options{CredentialConfigured: configured}, zaptest.NewLogger(t))
}

func profileRequest(t *testing.T, body string) models.ProfileRequest {
	t.Helper()
	var req models.ProfileRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	return req
}

func TestGetPlan_DebtReductionBranch(t *testing.T) {
	gen := &fakeGenerator{response: debtPlanJSON}
	svc := newTestService(t, gen, true)

	plan, err := svc.GetPlan(context.Background(), profileRequest(t,
		`{"income": 100000, "expenses": 30000, "total_debt": 500000, "monthly_emi": 20000, "savings": 10000}`))
	require.NoError(t, err)

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "CLEAR THE DEBT")
	assert.Contains(t, prompt, "Surplus after expenses and EMI: ₹50000")
	assert.Contains(t, prompt, "Financial health: Stable (EMI is 20% of income)")
	assert.Contains(t, prompt, `"extra_debt" ≈ 45000, "invest" ≈ 5000`)
	assert.Contains(t, prompt, `"extra_debt" ≈ 25000, "invest" ≈ 25000`)
	assert.Same(t, PlanSchema, gen.schemas[0])
	assert.False(t, gen.deadline)

	assert.Equal(t, models.Amount(45000), plan.Aggressive.Allocation.ExtraDebt)
	assert.Len(t, plan.Aggressive.Steps, 4)
	assert.Equal(t, "Invest while you pay.", plan.Balanced.Desc)
}

func TestGetPlan_WealthBuildingBranch(t *testing.T) {
	gen := &fakeGenerator{response: wealthPlanJSON}
	svc := newTestService(t, gen, true)

	plan, err := svc.GetPlan(context.Background(), profileRequest(t,
		`{"income": 50000, "expenses": 20000, "total_debt": 0, "monthly_emi": 0, "savings": 5000}`))
	require.NoError(t, err)

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, "DEBT FREE")
	assert.Contains(t, prompt, `set "extra_debt" to 0`)
	assert.Contains(t, prompt, "Surplus: ₹30000")
	assert.Contains(t, prompt, "(≈ 27000)")
	assert.Contains(t, prompt, "(≈ 18000)")
	assert.NotContains(t, prompt, "CLEAR THE DEBT")

	assert.Zero(t, plan.Aggressive.Allocation.ExtraDebt)
	assert.Zero(t, plan.Balanced.Allocation.ExtraDebt)
}

func TestGetPlan_WealthBuildingClearsExtraDebt(t *testing.T) {
	gen := &fakeGenerator{response: strings.Replace(wealthPlanJSON, `"extra_debt": 0`, `"extra_debt": 5000`, 2)}
	svc := newTestService(t, gen, true)

	plan, err := svc.GetPlan(context.Background(), profileRequest(t,
		`{"income": 50000, "expenses": 20000, "total_debt": 0}`))
	require.NoError(t, err)

	assert.Zero(t, plan.Aggressive.Allocation.ExtraDebt)
	assert.Zero(t, plan.Balanced.Allocation.ExtraDebt)
	assert.Equal(t, models.Amount(27000), plan.Aggressive.Allocation.Invest)
	assert.Equal(t, models.Amount(18000), plan.Balanced.Allocation.Invest)
}

func TestGetPlan_DebtReductionKeepsExtraDebt(t *testing.T) {
	gen := &fakeGenerator{response: debtPlanJSON}
	svc := newTestService(t, gen, true)

	plan, err := svc.GetPlan(context.Background(), profileRequest(t,
		`{"income": 100000, "expenses": 30000, "total_debt": 500000, "monthly_emi": 20000}`))
	require.NoError(t, err)

	assert.Equal(t, models.Amount(45000), plan.Aggressive.Allocation.ExtraDebt)
	assert.Equal(t, models.Amount(25000), plan.Balanced.Allocation.ExtraDebt)
}

func TestGetPlan_OverflowingOutflowIsDeficit(t *testing.T) {
	gen := &fakeGenerator{response: debtPlanJSON}
	svc := newTestService(t, gen, true)

	_, err := svc.GetPlan(context.Background(), profileRequest(t,
		`{"income": 100, "expenses": 5000000000000000000, "monthly_emi": 5000000000000000000}`))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, gen.prompts)
}

func TestGetPlan_MissingFieldsDefaultToZero(t *testing.T) {
	gen := &fakeGenerator{response: wealthPlanJSON}
	svc := newTestService(t, gen, true)

	_, err := svc.GetPlan(context.Background(), profileRequest(t, `{"income": 50000, "expenses": 20000}`))
	require.NoError(t, err)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "DEBT FREE")
}

func TestGetPlan_InvalidInputSkipsGenerator(t *testing.T) {
	bodies := []string{
		`{"income": "lots", "expenses": 20000}`,
		`{"income": 50000, "savings": null}`,
		`{"income": 50000, "total_debt": [1, 2]}`,
		`{"income": 50000, "monthly_emi": "12.5"}`,
	}

	for _, body := range bodies {
		gen := &fakeGenerator{response: wealthPlanJSON}
		svc := newTestService(t, gen, true)

		_, err := svc.GetPlan(context.Background(), profileRequest(t, body))
		assert.ErrorIs(t, err, ErrInvalidInput, body)
		assert.Empty(t, gen.prompts, body)
	}
}

func TestGetPlan_DeficitSkipsGenerator(t *testing.T) {
	gen := &fakeGenerator{response: debtPlanJSON}
	svc := newTestService(t, gen, true)

	_, err := svc.GetPlan(context.Background(), profileRequest(t,
		`{"income": 30000, "expenses": 25000, "total_debt": 100000, "monthly_emi": 10000}`))
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, gen.prompts)
}

func TestGetPlan_HighDebtStressStillGenerates(t *testing.T) {
	gen := &fakeGenerator{response: debtPlanJSON}
	svc := newTestService(t, gen, true)

	_, err := svc.GetPlan(context.Background(), profileRequest(t,
		`{"income": 100000, "expenses": 10000, "total_debt": 900000, "monthly_emi": 50000}`))
	require.NoError(t, err)
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "Financial health: High Debt Stress (EMI is 50% of income)")
}

func TestGetPlan_MissingCredential(t *testing.T) {
	gen := &fakeGenerator{response: debtPlanJSON}
	svc := newTestService(t, gen, false)

	_, err := svc.GetPlan(context.Background(), profileRequest(t, `{"income": 50000, "expenses": 20000}`))
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Empty(t, gen.prompts)
}

func TestGetPlan_GenerationFailures(t *testing.T) {
	cases := map[string]*fakeGenerator{
		"network error":    {err: errors.New("connection reset")},
		"not json":         {response: "I am unable to answer"},
		"schema mismatch":  {response: `{"aggressive": {"title": "x"}}`},
		"fractional money": {response: strings.Replace(debtPlanJSON, "45000", "45000.5", 1)},
	}

	for name, gen := range cases {
		t.Run(name, func(t *testing.T) {
			svc := newTestService(t, gen, true)

			plan, err := svc.GetPlan(context.Background(), profileRequest(t,
				`{"income": 100000, "expenses": 30000, "total_debt": 500000, "monthly_emi": 20000}`))
			assert.Nil(t, plan)
			assert.ErrorIs(t, err, ErrGenerationFailed)
			assert.Len(t, gen.prompts, 1)
		})
	}
}

func TestGetPlan_AcceptsFencedJSON(t *testing.T) {
	gen := &fakeGenerator{response: "```json\n" + wealthPlanJSON + "\n```"}
	svc := newTestService(t, gen, true)

	plan, err := svc.GetPlan(context.Background(), profileRequest(t, `{"income": 50000, "expenses": 20000}`))
	require.NoError(t, err)
	assert.Equal(t, "🚀 Wealth Accelerator", plan.Aggressive.Title)
}

func TestGetPlan_RequestTimeoutApplied(t *testing.T) {
	gen := &fakeGenerator{response: wealthPlanJSON}
	svc := NewService(gen, Options{CredentialConfigured: true, RequestTimeout: time.Minute}, zaptest.NewLogger(t))

	_, err := svc.GetPlan(context.Background(), profileRequest(t, `{"income": 50000, "expenses": 20000}`))
	require.NoError(t, err)
	assert.True(t, gen.deadline)
}

func TestBuildPlanPrompt_UsesClassifierSurplus(t *testing.T) {
	p := models.FinancialProfile{Income: 80000, Expenses: 20000, TotalDebt: 1, MonthlyEMI: 40000}
	a := eligibility.Assess(p)

	prompt, branch := BuildPlanPrompt(p, a)
	assert.Equal(t, BranchDebtReduction, branch)
	assert.Equal(t, eligibility.HighDebtStress, a.Status)
	assert.Contains(t, prompt, "Surplus after expenses and EMI: ₹20000")
}

func TestBuildPlanPrompt_LargeSurplusDoesNotOverflow(t *testing.T) {
	p := models.FinancialProfile{Income: math.MaxInt64, TotalDebt: 1}

	prompt, branch := BuildPlanPrompt(p, eligibility.Assess(p))
	assert.Equal(t, BranchDebtReduction, branch)
	assert.Contains(t, prompt, `"extra_debt" ≈ 8301034833169298226, "invest" ≈ 922337203685477581`)
}

func samplePlan(t *testing.T) models.PlanPair {
	t.Helper()
	var plan models.PlanPair
	require.NoError(t, json.Unmarshal([]byte(debtPlanJSON), &plan))
	return plan
}

func TestTranslatePlan_ForwardsStructuralConstraint(t *testing.T) {
	translated := strings.NewReplacer(
		"Live lean, kill debt fast.", "Kam kharcha, karza khatam.",
		"Invest while you pay.", "EMI bhi, SIP bhi.",
	).Replace(debtPlanJSON)
	gen := &fakeGenerator{response: translated}
	svc := newTestService(t, gen, true)

	result, err := svc.TranslatePlan(context.Background(), samplePlan(t), "")
	require.NoError(t, err)

	require.Len(t, gen.prompts, 1)
	prompt := gen.prompts[0]
	assert.Contains(t, prompt, `into "Hinglish"`)
	assert.Contains(t, prompt, "Do NOT change any number")
	assert.Contains(t, prompt, `"extra_debt": 45000`)
	assert.Contains(t, prompt, "Live lean, kill debt fast.")

	assert.Equal(t, "Kam kharcha, karza khatam.", result.Aggressive.Desc)
	assert.Equal(t, "EMI bhi, SIP bhi.", result.Balanced.Desc)
}

func TestTranslatePlan_PreservesAllocations(t *testing.T) {
	tampered := strings.Replace(strings.Replace(debtPlanJSON, "45000", "46000", 1), `"invest": 25000`, `"invest": 1`, 1)
	gen := &fakeGenerator{response: tampered}
	svc := newTestService(t, gen, true)

	original := samplePlan(t)
	result, err := svc.TranslatePlan(context.Background(), original, "Tamil")
	require.NoError(t, err)

	assert.Equal(t, original.Aggressive.Allocation, result.Aggressive.Allocation)
	assert.Equal(t, original.Balanced.Allocation, result.Balanced.Allocation)
	assert.Contains(t, gen.prompts[0], `into "Tamil"`)
}

func TestTranslatePlan_EmptyPlanRejectedRegardlessOfCredential(t *testing.T) {
	for _, configured := range []bool{true, false} {
		gen := &fakeGenerator{response: debtPlanJSON}
		svc := newTestService(t, gen, configured)

		_, err := svc.TranslatePlan(context.Background(), models.PlanPair{}, "Hinglish")
		assert.ErrorIs(t, err, ErrInvalidInput)
		assert.Empty(t, gen.prompts)
	}
}

func TestTranslatePlan_MissingCredential(t *testing.T) {
	gen := &fakeGenerator{response: debtPlanJSON}
	svc := newTestService(t, gen, false)

	_, err := svc.TranslatePlan(context.Background(), samplePlan(t), "Hinglish")
	assert.ErrorIs(t, err, ErrServiceUnavailable)
	assert.Empty(t, gen.prompts)
}

func TestTranslatePlan_Failure(t *testing.T) {
	gen := &fakeGenerator{response: "not json at all"}
	svc := newTestService(t, gen, true)

	_, err := svc.TranslatePlan(context.Background(), samplePlan(t), "Hinglish")
	assert.ErrorIs(t, err, ErrTranslationFailed)
}

func TestPlanSchema_RejectsMissingScenario(t *testing.T) {
	assert.NoError(t, PlanSchema.Validate([]byte(debtPlanJSON)))
	assert.Error(t, PlanSchema.Validate([]byte(`{"aggressive": {}}`)))
}
