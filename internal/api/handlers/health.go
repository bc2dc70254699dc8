package handlers

import (
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/sandlotio/ballflight/internal/services"
)

var startTime = time.Now()

// HealthHandler reports process liveness plus the host resources the
// simulation loop cares about.
type HealthHandler struct {
	engine *services.Engine
}

type HealthResponse struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	Version      string    `json:"version"`
	Uptime       string    `json:"uptime"`
	BallMaterial string    `json:"ball_material"`
	Goroutines   int       `json:"goroutines"`
	MemoryUsedPc float64   `json:"memory_used_percent"`
}

func NewHealthHandler(engine *services.Engine) *HealthHandler {
	return &HealthHandler{engine: engine}
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:       "ok",
		Timestamp:    time.Now(),
		Version:      os.Getenv("APP_VERSION"),
		Uptime:       time.Since(startTime).String(),
		BallMaterial: h.engine.Ball().Material,
		Goroutines:   runtime.NumGoroutine(),
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		response.MemoryUsedPc = vm.UsedPercent
	}

	c.JSON(http.StatusOK, response)
}
