package health

import (
	"context"

	"go.uber.org/zap"
)

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates partial failure.
	Degraded Status = "degraded"
	// Unhealthy indicates the backend could not be reached at all.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status       Status
	Checks       map[string]CheckResult
	TotalHadiths int
	Error        string
}

// Service coordinates health checks.
type Service struct {
	api    Prober
	logger *zap.Logger
}

// New creates a Service. logger can be nil.
func New(api Prober, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: api, logger: logger}
}

// Check asks the backend for its health and folds the answer into a Report.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	h, err := s.api.Health(ctx)
	if err != nil {
		s.logger.Warn("backend health check failed", zap.Error(err))
		checks["api"] = CheckError
		return Report{Status: Unhealthy, Checks: checks, Error: err.Error()}
	}
	checks["api"] = CheckOK

	if h.Database == "connected" {
		checks["database"] = CheckOK
	} else {
		checks["database"] = CheckError
	}

	status := Healthy
	for _, v := range checks {
		if v == CheckError {
			status = Degraded
			break
		}
	}

	return Report{Status: status, Checks: checks, TotalHadiths: h.TotalHadiths, Error: h.Error}
}
