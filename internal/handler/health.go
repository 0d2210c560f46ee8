package handler

import (
	"context"
	"fmt"
	"time"

	"trivia-harvester/internal/domain"

	health "github.com/hellofresh/health-go/v5"
)

// Pinger is satisfied by the Redis cache adapter and *sqlx.DB.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to Pinger.
type PingerFunc func(ctx context.Context) error

func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// HealthDependencies lists the optional backends checked by /healthz. Nil entries are skipped.
type HealthDependencies struct {
	Redis    Pinger
	Database Pinger
	// MaxRunAge fails the last-run check when no run succeeded within this window. 0 disables it.
	MaxRunAge time.Duration
}

// NewHealth builds the health checker served on /healthz.
func NewHealth(version string, status domain.HarvestStatus, deps HealthDependencies) (*health.Health, error) {
	checks := []health.Config{}

	if deps.Redis != nil {
		checks = append(checks, health.Config{
			Name:      "redis",
			Timeout:   5 * time.Second,
			SkipOnErr: true,
			Check:     deps.Redis.Ping,
		})
	}
	if deps.Database != nil {
		checks = append(checks, health.Config{
			Name:      "oracle",
			Timeout:   5 * time.Second,
			SkipOnErr: true,
			Check:     deps.Database.Ping,
		})
	}
	if deps.MaxRunAge > 0 {
		checks = append(checks, health.Config{
			Name: "last-successful-run",
			Check: func(ctx context.Context) error {
				return checkLastRun(status, deps.MaxRunAge, time.Now())
			},
		})
	}

	return health.New(
		health.WithComponent(health.Component{
			Name:    "trivia-harvester",
			Version: version,
		}),
		health.WithChecks(checks...),
	)
}

// checkLastRun fails when a run has already finished and none succeeded within maxAge.
func checkLastRun(status domain.HarvestStatus, maxAge time.Duration, now time.Time) error {
	report, ok := status.LastReport()
	if !ok || report.FinishedAt == nil {
		return nil
	}
	at, ok := status.LastSuccessAt()
	if !ok {
		return fmt.Errorf("no successful harvest run yet, last error: %s", report.Error)
	}
	if age := now.Sub(at); age > maxAge {
		return fmt.Errorf("last successful harvest run was %s ago", age.Round(time.Second))
	}
	return nil
}
