package postgres

import (
	"context"
	"fmt"
	"time"
)

// HealthStatus represents database health status
type HealthStatus struct {
	Status       string    `json:"status"` // "healthy", "degraded", "unhealthy"
	ResponseTime string    `json:"response_time"`
	ActiveConns  int32     `json:"active_conns"`
	IdleConns    int32     `json:"idle_conns"`
	TotalConns   int32     `json:"total_conns"`
	MaxConns     int32     `json:"max_conns"`
	CheckedAt    time.Time `json:"checked_at"`
	Error        string    `json:"error,omitempty"`
}

// Health checks the health of the database connection
func (p *Pool) Health(ctx context.Context) *HealthStatus {
	start := time.Now()

	status := &HealthStatus{
		CheckedAt: start,
		Status:    "healthy",
	}

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := p.Ping(pingCtx); err != nil {
		status.Status = "unhealthy"
		status.Error = fmt.Sprintf("ping failed: %v", err)
		status.ResponseTime = time.Since(start).String()
		return status
	}

	stats := p.Stat()
	status.ActiveConns = stats.AcquiredConns()
	status.IdleConns = stats.IdleConns()
	status.TotalConns = stats.TotalConns()
	status.MaxConns = stats.MaxConns()
	status.ResponseTime = time.Since(start).String()

	if stats.AcquiredConns() >= stats.MaxConns()-2 {
		status.Status = "degraded"
		status.Error = "connection pool nearly exhausted"
	}

	return status
}

// IsHealthy returns true if the database is healthy
func (p *Pool) IsHealthy(ctx context.Context) bool {
	status := p.Health(ctx)
	return status.Status == "healthy"
}
