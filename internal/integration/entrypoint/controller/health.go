// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// HealthController handles health check endpoints.
type HealthController struct {
	dbHealthChecker    func() bool
	cacheHealthChecker func() bool // nil when running without Redis
}

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status    string `json:"status"`
	Database  string `json:"database"`
	Cache     string `json:"cache"`
	Timestamp string `json:"timestamp"`
}

// NewHealthController creates a new health controller instance.
func NewHealthController(dbHealthChecker, cacheHealthChecker func() bool) *HealthController {
	return &HealthController{
		dbHealthChecker:    dbHealthChecker,
		cacheHealthChecker: cacheHealthChecker,
	}
}

// Check handles GET /health requests.
// It returns the current health status of the API and its dependencies.
func (h *HealthController) Check(c *gin.Context) {
	dbStatus := "disconnected"
	if h.dbHealthChecker != nil && h.dbHealthChecker() {
		dbStatus = "connected"
	}

	cacheStatus := "disabled"
	if h.cacheHealthChecker != nil {
		cacheStatus = "disconnected"
		if h.cacheHealthChecker() {
			cacheStatus = "connected"
		}
	}

	status := "ok"
	if dbStatus != "connected" {
		status = "degraded"
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:    status,
		Database:  dbStatus,
		Cache:     cacheStatus,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
