// Package health evaluates liveness and readiness probes for the HTTP health endpoints.
package health

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// Status encodes the outcome of a probe.
type Status string

const (
	StatusUp       Status = "up"
	StatusDown     Status = "down"
	StatusDegraded Status = "degraded"
)

// Result captures a single probe outcome.
type Result struct {
	Component  string `json:"component"`
	Status     Status `json:"status"`
	Details    string `json:"details,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// Report aggregates probe results. A degraded report still counts as successful.
type Report struct {
	Success bool     `json:"success"`
	Status  Status   `json:"status"`
	Checks  []Result `json:"checks"`
}

// ProbeFunc performs a probe. Component and duration are filled in by the registry.
type ProbeFunc func(ctx context.Context) Result

// Probe is a named dependency check.
type Probe struct {
	Name string
	Run  ProbeFunc
}

// Registry holds the liveness and readiness probes of the process.
type Registry struct {
	mu        sync.RWMutex
	liveness  []Probe
	readiness []Probe
}

// NewRegistry returns an empty registry. With no probes every evaluation reports up.
func NewRegistry() *Registry {
	return &Registry{}
}

// Live registers a liveness probe. Probes without a name or function are ignored.
func (r *Registry) Live(probe Probe) {
	if !probe.valid() {
		return
	}
	r.mu.Lock()
	r.liveness = append(r.liveness, probe)
	r.mu.Unlock()
}

// Ready registers a readiness probe. Probes without a name or function are ignored.
func (r *Registry) Ready(probe Probe) {
	if !probe.valid() {
		return
	}
	r.mu.Lock()
	r.readiness = append(r.readiness, probe)
	r.mu.Unlock()
}

// Liveness runs every liveness probe.
func (r *Registry) Liveness(ctx context.Context) Report {
	r.mu.RLock()
	probes := append([]Probe(nil), r.liveness...)
	r.mu.RUnlock()
	return evaluate(ctx, probes)
}

// Readiness runs every readiness probe.
func (r *Registry) Readiness(ctx context.Context) Report {
	r.mu.RLock()
	probes := append([]Probe(nil), r.readiness...)
	r.mu.RUnlock()
	return evaluate(ctx, probes)
}

func (p Probe) valid() bool {
	return p.Name != "" && p.Run != nil
}

func evaluate(ctx context.Context, probes []Probe) Report {
	report := Report{Success: true, Status: StatusUp, Checks: make([]Result, 0, len(probes))}

	for _, probe := range probes {
		result := run(ctx, probe)
		report.Checks = append(report.Checks, result)
		report.Status = worst(report.Status, result.Status)
	}

	report.Success = report.Status != StatusDown
	return report
}

func worst(current, next Status) Status {
	switch {
	case current == StatusDown || next == StatusDown:
		return StatusDown
	case current == StatusDegraded || next == StatusDegraded:
		return StatusDegraded
	default:
		return StatusUp
	}
}

func run(ctx context.Context, probe Probe) (result Result) {
	if ctx == nil {
		ctx = context.Background()
	}
	start := time.Now()

	defer func() {
		if rec := recover(); rec != nil {
			result = Result{Status: StatusDown, Details: fmt.Sprint(rec)}
		}
		if result.Status == "" {
			result.Status = StatusDown
		}
		result.Component = probe.Name
		result.DurationMS = time.Since(start).Milliseconds()
	}()

	return probe.Run(ctx)
}

// FromError maps an error to a result. Timeouts and cancellations count as degraded.
func FromError(err error) Result {
	if err == nil {
		return Result{Status: StatusUp}
	}
	status := StatusDown
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		status = StatusDegraded
	}
	return Result{Status: status, Details: err.Error()}
}
