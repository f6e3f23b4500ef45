package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates a model provider failure; search is broken but the
	// store still answers.
	Degraded Status = "degraded"
	// Unhealthy indicates the vector store is down.
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
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	store    StorePinger
	encoder  ModelChecker
	reranker ModelChecker
}

// New creates a Service. encoder and reranker can be nil.
func New(store StorePinger, encoder, reranker ModelChecker) *Service {
	return &Service{store: store, encoder: encoder, reranker: reranker}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult)

	storeOK := true
	if err := s.store.Ping(ctx); err != nil {
		checks["store"] = CheckError
		storeOK = false
	} else {
		checks["store"] = CheckOK
	}

	modelsOK := true
	for name, checker := range map[string]ModelChecker{
		"encoder":  s.encoder,
		"reranker": s.reranker,
	} {
		if checker == nil {
			continue
		}
		if err := checker.HealthCheck(ctx); err != nil {
			checks[name] = CheckError
			modelsOK = false
		} else {
			checks[name] = CheckOK
		}
	}

	status := Healthy
	switch {
	case !storeOK:
		status = Unhealthy
	case !modelsOK:
		status = Degraded
	}

	return Report{Status: status, Checks: checks}
}
