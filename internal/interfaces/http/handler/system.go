package handler

import (
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// StatusReporter exposes the state of a background component
type StatusReporter interface {
	GetStatus() map[string]any
}

// SystemHandler handles health and system information endpoints
type SystemHandler struct {
	BaseHandler
	name      string
	version   string
	env       string
	startTime time.Time
	scheduler StatusReporter
}

// NewSystemHandler creates a new SystemHandler. scheduler may be nil when
// scheduled backups are disabled.
func NewSystemHandler(name, version, env string, scheduler StatusReporter) *SystemHandler {
	return &SystemHandler{
		name:      name,
		version:   version,
		env:       env,
		startTime: time.Now(),
		scheduler: scheduler,
	}
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name         string         `json:"name"`
	Version      string         `json:"version"`
	Env          string         `json:"env"`
	GoVersion    string         `json:"go_version"`
	Uptime       string         `json:"uptime"`
	BackupStatus map[string]any `json:"backup_schedule,omitempty"`
}

// Health godoc
// @Summary      Liveness probe
// @Tags         system
// @Router       /health [get]
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, gin.H{"status": "ok"})
}

// GetSystemInfo godoc
// @Summary      System information
// @Description  Version, uptime and backup scheduler status.
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response{data=SystemInfoResponse}
// @Router       /system/info [get]
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      h.name,
		Version:   h.version,
		Env:       h.env,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}
	if h.scheduler != nil {
		info.BackupStatus = h.scheduler.GetStatus()
	}
	h.Success(c, info)
}

// Ping godoc
// @Summary      Ping
// @Tags         system
// @Produce      json
// @Success      200 {object} dto.Response
// @Router       /ping [get]
func (h *SystemHandler) Ping(c *gin.Context) {
	h.Success(c, gin.H{
		"message":   "pong",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
