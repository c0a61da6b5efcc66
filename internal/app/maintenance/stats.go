package maintenance

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/charlesng35/companydesk/pkg/logger"
	"github.com/charlesng35/companydesk/pkg/metrics"
)

const defaultStatsSpec = "@every 5m"

// CompanyCounter reports how many companies are stored.
type CompanyCounter interface {
	Count(ctx context.Context) (int64, error)
}

// Runner refreshes directory statistics on a cron schedule.
type Runner struct {
	companies CompanyCounter
	cron      *cron.Cron
	schedule  string
	log       *zap.Logger

	mu      sync.Mutex
	started bool

	stateMu     sync.RWMutex
	lastSuccess time.Time
	lastErr     error
}

// Option customises the Runner.
type Option func(*Runner)

// WithCron injects a preconfigured cron instance, primarily for testing.
func WithCron(c *cron.Cron) Option {
	return func(r *Runner) {
		if c != nil {
			r.cron = c
		}
	}
}

// WithSchedule overrides the cron specification for the statistics refresh.
func WithSchedule(spec string) Option {
	return func(r *Runner) {
		if spec != "" {
			r.schedule = spec
		}
	}
}

// WithLogger overrides the runner logger.
func WithLogger(log *zap.Logger) Option {
	return func(r *Runner) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRunner constructs a Runner. A nil counter disables the statistics job.
func NewRunner(companies CompanyCounter, opts ...Option) *Runner {
	runner := &Runner{
		companies: companies,
		schedule:  defaultStatsSpec,
		log:       logger.WithModule("maintenance"),
	}

	for _, opt := range opts {
		opt(runner)
	}

	if runner.cron == nil {
		runner.cron = cron.New(cron.WithLogger(cron.DiscardLogger))
	}

	return runner
}

// Start refreshes statistics once, registers the scheduled job and launches the scheduler.
// A failed initial refresh is logged; the schedule still starts.
func (r *Runner) Start(ctx context.Context) error {
	if r.companies == nil {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return errors.New("maintenance: runner already started")
	}

	if err := r.RunOnce(ctx); err != nil {
		r.log.Warn("initial statistics refresh failed", zap.Error(err))
	}

	if _, err := r.cron.AddFunc(r.schedule, func() {
		if err := r.RunOnce(context.Background()); err != nil {
			r.log.Warn("statistics refresh failed", zap.Error(err))
		}
	}); err != nil {
		return err
	}

	r.cron.Start()
	r.started = true
	return nil
}

// Stop halts the underlying scheduler. The returned context is done once running jobs
// complete, and is already done when the runner was never started.
func (r *Runner) Stop() context.Context {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cron == nil || !r.started {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		return ctx
	}
	r.started = false
	return r.cron.Stop()
}

// RunOnce executes every configured job sequentially and aggregates their failures.
func (r *Runner) RunOnce(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var errs error

	if r.companies != nil {
		errs = multierr.Append(errs, RefreshCompanyStats(ctx, r.companies))
	}

	r.stateMu.Lock()
	r.lastErr = errs
	if errs == nil {
		r.lastSuccess = time.Now()
	}
	r.stateMu.Unlock()

	return errs
}

// LastSuccess returns when RunOnce last completed without errors.
func (r *Runner) LastSuccess() time.Time {
	r.stateMu.RLock()
	defer r.stateMu.RUnlock()
	return r.lastSuccess
}

// LastError returns the error of the most recent run, nil when it succeeded.
func (r *Runner) LastError() error {
	r.stateMu.RLock()
	defer r.stateMu.RUnlock()
	return r.lastErr
}

// RefreshCompanyStats publishes the stored company count to the companies gauge.
func RefreshCompanyStats(ctx context.Context, companies CompanyCounter) error {
	if companies == nil {
		return errors.New("refresh company stats: counter is required")
	}

	total, err := companies.Count(ctx)
	if err != nil {
		return err
	}

	metrics.CompaniesTotal.Set(float64(total))
	return nil
}
