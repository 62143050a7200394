package planner

import "github.com/user/fin-planner-api/internal/services/ai"

func scenarioSchema(description string) *ai.Schema {
	return &ai.Schema{
		Type:        ai.TypeObject,
		Description: description,
		Properties: map[string]*ai.Schema{
			"title": {Type: ai.TypeString},
			"desc":  {Type: ai.TypeString},
			"allocation": {
				Type: ai.TypeObject,
				Properties: map[string]*ai.Schema{
					"extra_debt": {Type: ai.TypeInteger, Description: "monthly rupees for extra debt payoff"},
					"invest":     {Type: ai.TypeInteger, Description: "monthly rupees to invest"},
				},
				Required: []string{"extra_debt", "invest"},
			},
			"steps": {Type: ai.TypeArray, Items: &ai.Schema{Type: ai.TypeString}},
		},
		Required: []string{"title", "desc", "allocation", "steps"},
	}
}

// PlanSchema - схема ответа модели для пары планов
var PlanSchema = &ai.Schema{
	Type: ai.TypeObject,
	Properties: map[string]*ai.Schema{
		"aggressive": scenarioSchema("high-intensity plan"),
		"balanced":   scenarioSchema("moderate plan"),
	},
	Required: []string{"aggressive", "balanced"},
}
