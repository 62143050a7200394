package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/fin-planner-api/internal/metrics"
	"github.com/user/fin-planner-api/internal/middleware"
	"github.com/user/fin-planner-api/internal/models"
	"github.com/user/fin-planner-api/internal/services/planner"
	"go.uber.org/zap"
)

// Сообщения об ошибках для клиента; причина пишется только в лог
const (
	msgInvalidInput      = "Invalid input"
	msgGenerationFailed  = "AI generation failed"
	msgInvalidTranslate  = "Invalid data or missing API Key"
	msgTranslationFailed = "Translation failed"
)

// PlanHandler - обработчики генерации и перевода планов
type PlanHandler struct {
	planner *planner.Service
	logger  *zap.Logger
}

// NewPlanHandler создаёт новый обработчик планов
func NewPlanHandler(svc *planner.Service, logger *zap.Logger) *PlanHandler {
	return &PlanHandler{
		planner: svc,
		logger:  logger,
	}
}

// GetPlan генерирует два плана по финансовому профилю
func (h *PlanHandler) GetPlan(c *gin.Context) {
	var req models.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.PlanRequests.WithLabelValues("get_plan", "invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidInput})
		return
	}

	plan, err := h.planner.GetPlan(c.Request.Context(), req)
	if err != nil {
		log := h.logger.With(zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
		if errors.Is(err, planner.ErrInvalidInput) {
			log.Info("Отклонён профиль")
			metrics.PlanRequests.WithLabelValues("get_plan", "invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidInput})
			return
		}
		log.Error("Ошибка генерации плана")
		metrics.PlanRequests.WithLabelValues("get_plan", "failed").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgGenerationFailed})
		return
	}

	metrics.PlanRequests.WithLabelValues("get_plan", "ok").Inc()
	c.JSON(http.StatusOK, plan)
}

// TranslatePlan переводит готовый план на другой язык
func (h *PlanHandler) TranslatePlan(c *gin.Context) {
	var req models.TranslationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.PlanRequests.WithLabelValues("translate_plan", "invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidTranslate})
		return
	}

	plan, ok := decodePlan(req)
	if !ok {
		metrics.PlanRequests.WithLabelValues("translate_plan", "invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidTranslate})
		return
	}

	translated, err := h.planner.TranslatePlan(c.Request.Context(), plan, req.TargetLanguage())
	if err != nil {
		log := h.logger.With(zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
		if errors.Is(err, planner.ErrInvalidInput) || errors.Is(err, planner.ErrServiceUnavailable) {
			log.Info("Перевод отклонён")
			metrics.PlanRequests.WithLabelValues("translate_plan", "invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidTranslate})
			return
		}
		log.Error("Ошибка перевода плана")
		metrics.PlanRequests.WithLabelValues("translate_plan", "failed").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": msgTranslationFailed})
		return
	}

	metrics.PlanRequests.WithLabelValues("translate_plan", "ok").Inc()
	c.JSON(http.StatusOK, translated)
}

// Health сообщает о готовности сервиса
func (h *PlanHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"ai_configured": h.planner.IsEnabled(),
	})
}
