package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/charlesng35/companydesk/internal/database"
)

const defaultPingTimeout = 2 * time.Second

// Database pings the database handle within timeout.
func Database(db *gorm.DB, timeout time.Duration) Probe {
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	return Probe{Name: "database", Run: func(ctx context.Context) Result {
		if db == nil {
			return Result{Status: StatusDown, Details: "database not configured"}
		}
		pingCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return FromError(database.Ping(pingCtx, db))
	}}
}

// JobTracker reports the outcome of a background job's most recent runs.
type JobTracker interface {
	LastSuccess() time.Time
	LastError() error
}

// Job reports degraded when the tracked job last failed, has never succeeded,
// or has not succeeded within maxAge. A zero maxAge disables the staleness check.
func Job(name string, tracker JobTracker, maxAge time.Duration) Probe {
	return Probe{Name: name, Run: func(context.Context) Result {
		if tracker == nil {
			return Result{Status: StatusDown, Details: "job not configured"}
		}
		if err := tracker.LastError(); err != nil {
			return Result{Status: StatusDegraded, Details: err.Error()}
		}
		last := tracker.LastSuccess()
		if last.IsZero() {
			return Result{Status: StatusDegraded, Details: errNeverRun.Error()}
		}
		if maxAge > 0 {
			if age := time.Since(last); age > maxAge {
				return Result{Status: StatusDegraded, Details: fmt.Sprintf("last success %s ago", age.Truncate(time.Second))}
			}
		}
		return Result{Status: StatusUp}
	}}
}

var errNeverRun = errors.New("job has not completed yet")
