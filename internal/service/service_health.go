package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/ddanilova/organizer-sync/internal/config"
	"github.com/ddanilova/organizer-sync/internal/logger"
	"github.com/ddanilova/organizer-sync/models"
)

type healthService struct {
	serverName string
	appVersion string
	startedAt  time.Time

	// now returns the current time; replaced in tests.
	now func() time.Time

	logger *logger.Logger
}

// NewHealthService constructs a HealthService. The uptime clock starts at
// construction time.
func NewHealthService(cfg config.App, log *logger.Logger) (HealthService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &healthService{
		serverName: cfg.ServerName,
		appVersion: cfg.Version,
		startedAt:  time.Now(),
		now:        time.Now,
		logger:     log,
	}, nil
}

// Health reports liveness details: server name, uptime since process start
// and the host the process runs on.
func (s *healthService) Health(_ context.Context) models.HealthStatus {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return models.HealthStatus{
		Server:   s.serverName,
		Status:   "running",
		Uptime:   formatUptime(s.now().Sub(s.startedAt)),
		Hostname: hostname,
		Version:  s.appVersion,
	}
}

// formatUptime renders a duration as "Xh Ym Zs" with whole seconds.
func formatUptime(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	return fmt.Sprintf("%dh %dm %ds", h, m, d/time.Second)
}
