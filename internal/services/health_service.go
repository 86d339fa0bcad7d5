package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"dashpulse/internal/config"
	ws "dashpulse/internal/websocket"
)

// HealthService reports process liveness and dataset readiness.
type HealthService struct {
	version        string
	buildTime      string
	paths          config.PathsConfig
	catalogService *CatalogService
	outageService  *OutageService
	webSocketHub   *ws.Hub
	startTime      time.Time
	logger         *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Rows    int    `json:"rows,omitempty"`
}

// NewHealthService creates a new health service with injected dependencies
func NewHealthService(version, buildTime string, paths config.PathsConfig, catalogService *CatalogService, outageService *OutageService, webSocketHub *ws.Hub, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}

	return &HealthService{
		version:        version,
		buildTime:      buildTime,
		paths:          paths,
		catalogService: catalogService,
		outageService:  outageService,
		webSocketHub:   webSocketHub,
		startTime:      time.Now(),
		logger:         logger.With(slog.String("component", "health_service")),
	}
}

// HealthCheck returns overall health status
func (hs *HealthService) HealthCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "ok",
		Timestamp: time.Now(),
		Version:   hs.version,
	}
}

// ReadinessCheck reports whether both dashboard datasets are loaded.
func (hs *HealthService) ReadinessCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "ready",
		Timestamp: time.Now(),
		Version:   hs.version,
		Services:  make(map[string]interface{}),
	}

	status.Services["catalog"] = hs.checkCatalogHealth(ctx)
	status.Services["outages"] = hs.checkOutageHealth(ctx)
	status.Services["data"] = hs.checkDataHealth()

	allReady := true
	for _, service := range status.Services {
		if sh, ok := service.(ServiceHealth); ok && sh.Status != "ready" {
			allReady = false
			break
		}
	}

	if !allReady {
		status.Status = "not_ready"
	}

	return status
}

// LivenessCheck returns liveness status
func (hs *HealthService) LivenessCheck(ctx context.Context) HealthStatus {
	return HealthStatus{
		Status:    "alive",
		Timestamp: time.Now(),
		Version:   hs.version,
		Runtime: map[string]interface{}{
			"uptime":     time.Since(hs.startTime).Seconds(),
			"go_version": runtime.Version(),
			"goroutines": runtime.NumGoroutine(),
		},
	}
}

// Version returns version information
func (hs *HealthService) Version() map[string]interface{} {
	result := map[string]interface{}{
		"version":      hs.version,
		"go_version":   runtime.Version(),
		"os":           runtime.GOOS,
		"arch":         runtime.GOARCH,
		"uptime":       time.Since(hs.startTime).Seconds(),
		"start_time":   hs.startTime.Format(time.RFC3339),
		"current_time": time.Now().Format(time.RFC3339),
	}

	if hs.buildTime != "" {
		result["build_time"] = hs.buildTime
	}
	if hs.webSocketHub != nil {
		result["websocket_clients"] = hs.webSocketHub.ClientCount()
	}

	return result
}

func (hs *HealthService) checkCatalogHealth(ctx context.Context) ServiceHealth {
	if hs.catalogService == nil {
		return ServiceHealth{Status: "not_ready", Message: "catalog dataset not loaded"}
	}
	meta, err := hs.catalogService.Meta(ctx)
	if err != nil {
		return ServiceHealth{Status: "not_ready", Message: err.Error()}
	}
	return ServiceHealth{Status: "ready", Rows: meta.RowCount}
}

func (hs *HealthService) checkOutageHealth(ctx context.Context) ServiceHealth {
	if hs.outageService == nil {
		return ServiceHealth{Status: "not_ready", Message: "outage dataset not loaded"}
	}
	meta, err := hs.outageService.Meta(ctx)
	if err != nil {
		return ServiceHealth{Status: "not_ready", Message: err.Error()}
	}
	return ServiceHealth{Status: "ready", Rows: meta.RowCount}
}

func (hs *HealthService) checkDataHealth() ServiceHealth {
	if _, err := os.Stat(hs.paths.DataDir); os.IsNotExist(err) {
		return ServiceHealth{
			Status:  "not_ready",
			Message: fmt.Sprintf("Data directory not found: %s", hs.paths.DataDir),
		}
	}
	return ServiceHealth{Status: "ready"}
}
