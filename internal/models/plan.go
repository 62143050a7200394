package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// DefaultLanguage - язык перевода по умолчанию
const DefaultLanguage = "Hinglish"

// FinancialProfile - приведённые к целым числам данные пользователя (в рупиях в месяц)
type FinancialProfile struct {
	Income     int64 `json:"income"`
	Expenses   int64 `json:"expenses"`
	TotalDebt  int64 `json:"total_debt"`
	MonthlyEMI int64 `json:"monthly_emi"`
	Savings    int64 `json:"savings"`
}

// ProfileRequest - тело запроса /api/get-plan.
// Поля хранятся как сырой JSON: отсутствующее поле считается нулём,
// а null, строки и прочее приводятся классификатором.
type ProfileRequest struct {
	Income     json.RawMessage `json:"income"`
	Expenses   json.RawMessage `json:"expenses"`
	TotalDebt  json.RawMessage `json:"total_debt"`
	MonthlyEMI json.RawMessage `json:"monthly_emi"`
	Savings    json.RawMessage `json:"savings"`
}

// Values возвращает значения полей в порядке income, expenses, total_debt, monthly_emi, savings
func (r ProfileRequest) Values() []any {
	raws := []json.RawMessage{r.Income, r.Expenses, r.TotalDebt, r.MonthlyEMI, r.Savings}
	values := make([]any, len(raws))
	for i, raw := range raws {
		values[i] = decodeRaw(raw)
	}
	return values
}

// decodeRaw разбирает значение, сохраняя числа как json.Number
func decodeRaw(raw json.RawMessage) any {
	if len(raw) == 0 {
		return json.Number("0")
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return raw
	}
	return v
}

// Amount - целая сумма в рупиях. Принимает и дробную запись числа (45000.0),
// которую иногда возвращает модель.
type Amount int64

// UnmarshalJSON разбирает число с округлением до целого
func (a *Amount) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" {
		return nil
	}
	s = strings.Trim(s, `"`)
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*a = Amount(n)
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid amount %q", s)
	}
	*a = Amount(math.Round(f))
	return nil
}

// Allocation - распределение свободных денег
type Allocation struct {
	ExtraDebt Amount `json:"extra_debt"` // досрочное погашение долга
	Invest    Amount `json:"invest"`     // инвестиции
}

// PlanScenario - один из двух сценариев плана
type PlanScenario struct {
	Title      string     `json:"title"`
	Desc       string     `json:"desc"`
	Allocation Allocation `json:"allocation"`
	Steps      []string   `json:"steps"`
}

// IsEmpty - сценарий без текста, сумм и шагов
func (s PlanScenario) IsEmpty() bool {
	return s.Title == "" && s.Desc == "" && s.Allocation == (Allocation{}) && len(s.Steps) == 0
}

// PlanPair - пара сценариев: агрессивный и сбалансированный
type PlanPair struct {
	Aggressive PlanScenario `json:"aggressive"`
	Balanced   PlanScenario `json:"balanced"`
}

// IsEmpty - план без содержимого (например, пришёл {} от клиента)
func (p PlanPair) IsEmpty() bool {
	return p.Aggressive.IsEmpty() && p.Balanced.IsEmpty()
}

// TranslationRequest - тело запроса /api/translate-plan
type TranslationRequest struct {
	Plan     json.RawMessage `json:"plan"`
	Language string          `json:"language"`
}

// TargetLanguage возвращает язык перевода с учётом значения по умолчанию
func (r TranslationRequest) TargetLanguage() string {
	if lang := strings.TrimSpace(r.Language); lang != "" {
		return lang
	}
	return DefaultLanguage
}

// ReportRequest - тело запроса /api/plan-report
type ReportRequest struct {
	Plan    PlanPair          `json:"plan"`
	Profile *FinancialProfile `json:"profile,omitempty"`
}
