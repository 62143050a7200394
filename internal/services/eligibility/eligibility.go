// Package eligibility классифицирует финансовое состояние пользователя
// по доходу, расходам и долговой нагрузке.
package eligibility

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/user/fin-planner-api/internal/models"
)

// Status - категория финансового состояния
type Status string

const (
	Stable         Status = "Stable"
	Deficit        Status = "Deficit"
	HighDebtStress Status = "High Debt Stress"
	InvalidData    Status = "Invalid Data"
)

// MaxDebtToIncome - порог DTI, выше которого нагрузка считается стрессовой
const MaxDebtToIncome = 0.40

// Assessment - результат классификации с промежуточными величинами
type Assessment struct {
	Status            Status  `json:"status"`
	MonthlySurplus    int64   `json:"monthly_surplus"`
	DebtToIncomeRatio float64 `json:"debt_to_income_ratio"`
}

// Classify приводит все пять значений к целым и классифицирует профиль.
// Если хотя бы одно значение не приводится, возвращает InvalidData.
func Classify(income, expenses, totalDebt, monthlyEMI, savings any) Status {
	profile, ok := Coerce(income, expenses, totalDebt, monthlyEMI, savings)
	if !ok {
		return InvalidData
	}
	return Assess(profile).Status
}

// Coerce приводит пять значений к FinancialProfile
func Coerce(income, expenses, totalDebt, monthlyEMI, savings any) (models.FinancialProfile, bool) {
	var fields [5]int64
	for i, v := range []any{income, expenses, totalDebt, monthlyEMI, savings} {
		n, ok := ToInt(v)
		if !ok {
			return models.FinancialProfile{}, false
		}
		fields[i] = n
	}
	return models.FinancialProfile{
		Income:     fields[0],
		Expenses:   fields[1],
		TotalDebt:  fields[2],
		MonthlyEMI: fields[3],
		Savings:    fields[4],
	}, true
}

// Assess классифицирует уже приведённый профиль
func Assess(p models.FinancialProfile) Assessment {
	a := Assessment{
		MonthlySurplus:    Surplus(p),
		DebtToIncomeRatio: DebtToIncome(p),
	}

	switch {
	case a.MonthlySurplus <= 0:
		a.Status = Deficit
	case a.DebtToIncomeRatio > MaxDebtToIncome:
		a.Status = HighDebtStress
	default:
		a.Status = Stable
	}
	return a
}

// Surplus - доход минус (расходы + EMI).
// При выходе за пределы int64 результат насыщается, знак остатка сохраняется.
func Surplus(p models.FinancialProfile) int64 {
	return subSat(p.Income, addSat(p.Expenses, p.MonthlyEMI))
}

// Share - pct процентов от суммы с округлением вниз, без переполнения
func Share(amount, pct int64) int64 {
	return amount/100*pct + amount%100*pct/100
}

func addSat(a, b int64) int64 {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return math.MaxInt64
	case b < 0 && a < math.MinInt64-b:
		return math.MinInt64
	}
	return a + b
}

func subSat(a, b int64) int64 {
	switch {
	case b < 0 && a > math.MaxInt64+b:
		return math.MaxInt64
	case b > 0 && a < math.MinInt64+b:
		return math.MinInt64
	}
	return a - b
}

// DebtToIncome - EMI / доход; при нулевом или отрицательном доходе 0
func DebtToIncome(p models.FinancialProfile) float64 {
	if p.Income <= 0 {
		return 0
	}
	return float64(p.MonthlyEMI) / float64(p.Income)
}

// ToInt приводит значение к целому по правилам int():
// целые числа как есть, дробные отбрасывают дробную часть,
// строки - только десятичное целое (пробелы по краям допустимы),
// bool - 1 или 0. Остальное (nil, массивы, объекты) не приводится,
// как и целые вне диапазона int64.
func ToInt(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	case float64:
		return truncFloat(n)
	case float32:
		return truncFloat(float64(n))
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, true
		}
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return truncFloat(f)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(n), 10, 64)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func truncFloat(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	t := math.Trunc(f)
	if t >= math.MaxInt64 || t < math.MinInt64 {
		return 0, false
	}
	return int64(t), true
}
