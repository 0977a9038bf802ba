package daemon

import (
	"time"

	"git.home.luguber.info/inful/filesync/internal/version"
)

// HealthStatus represents the overall health of the process
type HealthStatus string

const (
	HealthStatusHealthy  HealthStatus = "healthy"
	HealthStatusDegraded HealthStatus = "degraded"
)

// HealthResponse is served on /healthz.
type HealthResponse struct {
	Status    HealthStatus `json:"status"`
	Timestamp time.Time    `json:"timestamp"`
	Uptime    string       `json:"uptime"`
	Version   string       `json:"version"`
	Message   string       `json:"message,omitempty"`
}

// Health reports degraded when the last pass had failed copies.
func (c *Coordinator) Health(startedAt time.Time) HealthResponse {
	now := c.clock.Now()
	resp := HealthResponse{
		Status:    HealthStatusHealthy,
		Timestamp: now,
		Uptime:    now.Sub(startedAt).Round(time.Second).String(),
		Version:   version.Version,
	}
	if last, ok := c.LastSummary(); ok && last.Failed() > 0 {
		resp.Status = HealthStatusDegraded
		resp.Message = last.String()
	}
	return resp
}
