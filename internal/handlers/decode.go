package handlers

import (
	"bytes"
	"encoding/json"
	"math"

	"github.com/user/fin-planner-api/internal/models"
)

// decodePlan разбирает план из запроса перевода; пустой или отсутствующий план - не ok.
// Суммы должны быть целыми числами JSON, иначе перевод вернул бы их в другом виде.
func decodePlan(req models.TranslationRequest) (models.PlanPair, bool) {
	raw := bytes.TrimSpace(req.Plan)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return models.PlanPair{}, false
	}

	var plan models.PlanPair
	if err := json.Unmarshal(raw, &plan); err != nil {
		return models.PlanPair{}, false
	}
	if plan.IsEmpty() || !integralAmounts(raw) {
		return models.PlanPair{}, false
	}
	return plan, true
}

// rawAllocations - суммы сценариев в исходном виде
type rawAllocations struct {
	Aggressive struct {
		Allocation map[string]json.RawMessage `json:"allocation"`
	} `json:"aggressive"`
	Balanced struct {
		Allocation map[string]json.RawMessage `json:"allocation"`
	} `json:"balanced"`
}

// integralAmounts проверяет, что каждая сумма распределения - число без дробной части
func integralAmounts(raw []byte) bool {
	var plan rawAllocations
	if err := json.Unmarshal(raw, &plan); err != nil {
		return false
	}

	for _, alloc := range []map[string]json.RawMessage{plan.Aggressive.Allocation, plan.Balanced.Allocation} {
		for _, key := range []string{"extra_debt", "invest"} {
			v, ok := alloc[key]
			if !ok {
				continue
			}
			if !isIntegral(v) {
				return false
			}
		}
	}
	return true
}

func isIntegral(v json.RawMessage) bool {
	dec := json.NewDecoder(bytes.NewReader(v))
	dec.UseNumber()
	var n any
	if err := dec.Decode(&n); err != nil {
		return false
	}
	num, ok := n.(json.Number)
	if !ok {
		return false
	}
	if _, err := num.Int64(); err == nil {
		return true
	}
	f, err := num.Float64()
	return err == nil && f == math.Trunc(f) && f > math.MinInt64 && f < math.MaxInt64
}
