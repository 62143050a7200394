package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/fin-planner-api/internal/metrics"
	"github.com/user/fin-planner-api/internal/middleware"
	"github.com/user/fin-planner-api/internal/models"
	"github.com/user/fin-planner-api/internal/services/report"
	"go.uber.org/zap"
)

// ReportHandler - выгрузка плана в PDF
type ReportHandler struct {
	pdf    *report.PDFGenerator
	logger *zap.Logger
}

// NewReportHandler создаёт новый обработчик отчётов
func NewReportHandler(pdf *report.PDFGenerator, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{pdf: pdf, logger: logger}
}

// PlanReport возвращает PDF с планом
func (h *ReportHandler) PlanReport(c *gin.Context) {
	var req models.ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Plan.IsEmpty() {
		metrics.PlanRequests.WithLabelValues("plan_report", "invalid").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data"})
		return
	}

	data, err := h.pdf.GeneratePlanPDF(req.Plan, req.Profile)
	if err != nil {
		h.logger.Error("Ошибка генерации PDF",
			zap.String("request_id", middleware.GetRequestID(c)), zap.Error(err))
		metrics.PlanRequests.WithLabelValues("plan_report", "failed").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Report generation failed"})
		return
	}

	metrics.PlanRequests.WithLabelValues("plan_report", "ok").Inc()
	c.Header("Content-Disposition", `attachment; filename="financial-plan.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
