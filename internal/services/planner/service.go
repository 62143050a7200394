// Package planner строит промпты по профилю пользователя, вызывает внешнюю модель
// и возвращает пару планов или их перевод.
package planner

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/user/fin-planner-api/internal/metrics"
	"github.com/user/fin-planner-api/internal/models"
	"github.com/user/fin-planner-api/internal/services/ai"
	"github.com/user/fin-planner-api/internal/services/eligibility"
	"go.uber.org/zap"
)

var (
	// ErrInvalidInput - некорректные данные клиента; внешний вызов не выполняется
	ErrInvalidInput = errors.New("invalid input")
	// ErrServiceUnavailable - ключ внешнего сервиса не задан
	ErrServiceUnavailable = errors.New("AI service is not configured")
	// ErrGenerationFailed - ошибка генерации плана (сеть, сервис, невалидный JSON)
	ErrGenerationFailed = errors.New("AI generation failed")
	// ErrTranslationFailed - ошибка перевода плана
	ErrTranslationFailed = errors.New("translation failed")
)

// Branch - ветка промпта
type Branch string

const (
	BranchDebtReduction  Branch = "debt_reduction"
	BranchWealthBuilding Branch = "wealth_building"
)

// Options - параметры сервиса, передаваемые из конфигурации
type Options struct {
	// CredentialConfigured - задан ли ключ внешнего сервиса
	CredentialConfigured bool
	// RequestTimeout ограничивает вызов модели; 0 - без ограничения
	RequestTimeout time.Duration
}

// Service - оркестратор генерации и перевода планов
type Service struct {
	generator ai.Generator
	opts      Options
	logger    *zap.Logger
}

// NewService создаёт новый сервис планов
func NewService(generator ai.Generator, opts Options, logger *zap.Logger) *Service {
	return &Service{
		generator: generator,
		opts:      opts,
		logger:    logger.Named("planner"),
	}
}

// IsEnabled - задан ли ключ внешнего сервиса
func (s *Service) IsEnabled() bool {
	return s.opts.CredentialConfigured
}

// GetPlan классифицирует профиль и генерирует два плана.
// Невалидные данные и дефицит бюджета отклоняются без обращения к модели.
func (s *Service) GetPlan(ctx context.Context, req models.ProfileRequest) (*models.PlanPair, error) {
	v := req.Values()
	profile, ok := eligibility.Coerce(v[0], v[1], v[2], v[3], v[4])
	if !ok {
		metrics.EligibilityStatuses.WithLabelValues(string(eligibility.InvalidData)).Inc()
		return nil, fmt.Errorf("%w: поля профиля не приводятся к целым", ErrInvalidInput)
	}

	assessment := eligibility.Assess(profile)
	metrics.EligibilityStatuses.WithLabelValues(string(assessment.Status)).Inc()

	if assessment.Status == eligibility.Deficit {
		return nil, fmt.Errorf("%w: нет свободных денег (остаток %d)", ErrInvalidInput, assessment.MonthlySurplus)
	}

	if !s.opts.CredentialConfigured {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, ErrServiceUnavailable)
	}

	prompt, branch := BuildPlanPrompt(profile, assessment)
	metrics.PlanBranches.WithLabelValues(string(branch)).Inc()

	s.logger.Info("Генерация плана",
		zap.String("status", string(assessment.Status)),
		zap.String("branch", string(branch)),
		zap.Int64("surplus", assessment.MonthlySurplus))

	plan, err := s.generate(ctx, "get_plan", prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	// Без долга досрочное погашение всегда 0, что бы ни вернула модель
	if branch == BranchWealthBuilding && clearExtraDebt(plan) {
		s.logger.Warn("Модель назначила погашение долга пользователю без долга, обнулено")
	}
	return plan, nil
}

// BuildPlanPrompt выбирает ветку по наличию долга и подставляет данные в шаблон
func BuildPlanPrompt(p models.FinancialProfile, a eligibility.Assessment) (string, Branch) {
	// Остаток пересчитывается той же формулой, что и в классификаторе
	surplus := eligibility.Surplus(p)

	if p.TotalDebt > 0 {
		aggressiveDebt := eligibility.Share(surplus, 90)
		balancedDebt := eligibility.Share(surplus, 50)
		return fmt.Sprintf(DebtReductionPromptTemplate,
			p.Income, p.Expenses, p.MonthlyEMI, surplus, p.TotalDebt, p.Savings,
			a.Status, a.DebtToIncomeRatio*100,
			aggressiveDebt, surplus-aggressiveDebt,
			balancedDebt, surplus-balancedDebt,
		), BranchDebtReduction
	}

	return fmt.Sprintf(WealthBuildingPromptTemplate,
		p.Income, p.Expenses, surplus, p.Savings,
		a.Status,
		eligibility.Share(surplus, 90),
		eligibility.Share(surplus, 60),
	), BranchWealthBuilding
}

// TranslatePlan переписывает текстовые поля плана на целевом языке.
// Суммы распределения в результате всегда равны исходным.
func (s *Service) TranslatePlan(ctx context.Context, plan models.PlanPair, language string) (*models.PlanPair, error) {
	if plan.IsEmpty() {
		return nil, fmt.Errorf("%w: пустой план", ErrInvalidInput)
	}
	if !s.opts.CredentialConfigured {
		return nil, ErrServiceUnavailable
	}
	if language == "" {
		language = models.DefaultLanguage
	}

	prompt, err := BuildTranslatePrompt(plan, language)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTranslationFailed, err)
	}

	s.logger.Info("Перевод плана", zap.String("language", language))

	translated, err := s.generate(ctx, "translate_plan", prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTranslationFailed, err)
	}

	if restoreAllocations(&plan, translated) {
		s.logger.Warn("Модель изменила суммы при переводе, восстановлены исходные",
			zap.String("language", language))
	}
	return translated, nil
}

// BuildTranslatePrompt подставляет план и язык в шаблон перевода
func BuildTranslatePrompt(plan models.PlanPair, language string) (string, error) {
	planJSON, err := json.MarshalIndent(plan, "", "  ")
	if err != nil {
		return "", fmt.Errorf("ошибка сериализации плана: %w", err)
	}
	return fmt.Sprintf(TranslatePromptTemplate, language, planJSON), nil
}

// restoreAllocations переносит суммы из исходного плана; true - если модель их меняла
func restoreAllocations(src *models.PlanPair, dst *models.PlanPair) bool {
	changed := dst.Aggressive.Allocation != src.Aggressive.Allocation ||
		dst.Balanced.Allocation != src.Balanced.Allocation
	dst.Aggressive.Allocation = src.Aggressive.Allocation
	dst.Balanced.Allocation = src.Balanced.Allocation
	return changed
}

// clearExtraDebt обнуляет extra_debt в обоих сценариях; true - если было не 0
func clearExtraDebt(plan *models.PlanPair) bool {
	changed := plan.Aggressive.Allocation.ExtraDebt != 0 || plan.Balanced.Allocation.ExtraDebt != 0
	plan.Aggressive.Allocation.ExtraDebt = 0
	plan.Balanced.Allocation.ExtraDebt = 0
	return changed
}

// generate - один вызов модели: запрос, извлечение JSON, проверка схемы, разбор
func (s *Service) generate(ctx context.Context, operation, prompt string) (*models.PlanPair, error) {
	if s.opts.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.opts.RequestTimeout)
		defer cancel()
	}

	start := time.Now()
	text, err := s.generator.GenerateJSON(ctx, prompt, PlanSchema)
	metrics.GenerationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	doc, err := ai.ExtractJSON(text)
	if err != nil {
		return nil, err
	}
	if err := PlanSchema.Validate(doc); err != nil {
		return nil, err
	}

	var plan models.PlanPair
	if err := json.Unmarshal(doc, &plan); err != nil {
		return nil, fmt.Errorf("ошибка разбора плана: %w", err)
	}
	return &plan, nil
}
