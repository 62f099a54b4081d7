package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"
)

var startTime = time.Now()

// HealthChecker tracks run outcomes for the health endpoint
type HealthChecker struct {
	mu          sync.RWMutex
	lastRun     time.Time
	lastStatus  string
	failedRuns  int
	totalRuns   int
	recentError string
}

type HealthStatus struct {
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	LastRun    time.Time `json:"last_run"`
	LastStatus string    `json:"last_run_status"`
	TotalRuns  int       `json:"total_runs"`
	FailedRuns int       `json:"failed_runs"`
	Uptime     string    `json:"uptime"`
	Error      string    `json:"error,omitempty"`
}

func NewHealthChecker() *HealthChecker {
	return &HealthChecker{}
}

// ObserveRun records the outcome of a simulation run
func (h *HealthChecker) ObserveRun(status string, errMessage string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.lastRun = time.Now()
	h.lastStatus = status
	h.totalRuns++
	if status != "completed" {
		h.failedRuns++
		h.recentError = errMessage
	} else {
		h.recentError = ""
	}
}

// Status returns a snapshot of the current health state
func (h *HealthChecker) Status() HealthStatus {
	h.mu.RLock()
	defer h.mu.RUnlock()

	status := "healthy"
	if h.recentError != "" {
		status = "degraded"
	}

	return HealthStatus{
		Status:     status,
		Timestamp:  time.Now(),
		LastRun:    h.lastRun,
		LastStatus: h.lastStatus,
		TotalRuns:  h.totalRuns,
		FailedRuns: h.failedRuns,
		Uptime:     time.Since(startTime).String(),
		Error:      h.recentError,
	}
}

func (h *HealthChecker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	health := h.Status()

	w.Header().Set("Content-Type", "application/json")
	if health.Status != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(health)
}
