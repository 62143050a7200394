package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/fin-planner-api/internal/config"
	"github.com/user/fin-planner-api/internal/handlers"
	"github.com/user/fin-planner-api/internal/services/ai"
	"github.com/user/fin-planner-api/internal/services/planner"
	"github.com/user/fin-planner-api/internal/services/report"
	"go.uber.org/zap/zaptest"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<h1>planner</h1>"), 0o644))

	logger := zaptest.NewLogger(t)
	gen, err := ai.NewGenerator(context.Background(), config.AIConfig{}, logger)
	require.NoError(t, err)

	svc := planner.NewService(gen, planner.Options{}, logger)
	return newRouter(config.ServerConfig{StaticDir: dir},
		handlers.NewPlanHandler(svc, logger),
		handlers.NewReportHandler(report.NewPDFGenerator(""), logger),
		logger,
	)
}

func TestRouter_Routes(t *testing.T) {
	r := setupRouter(t)

	cases := []struct {
		method string
		path   string
		body   string
		code   int
	}{
		{http.MethodGet, "/", "", http.StatusOK},
		{http.MethodGet, "/report.html", "", http.StatusNotFound},
		{http.MethodGet, "/api/health", "", http.StatusOK},
		{http.MethodGet, "/metrics", "", http.StatusOK},
		{http.MethodPost, "/api/get-plan", `{"income": 50000, "expenses": 20000}`, http.StatusInternalServerError},
		{http.MethodPost, "/api/translate-plan", `{}`, http.StatusBadRequest},
		{http.MethodPost, "/api/plan-report", `{}`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		req := httptest.NewRequest(tc.method, tc.path, strings.NewReader(tc.body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, tc.code, w.Code, "%s %s", tc.method, tc.path)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"), "%s %s", tc.method, tc.path)
	}
}

func TestRouter_IndexPage(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "planner")
}

func TestRouter_Health(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok", "ai_configured": false}`, w.Body.String())
}
