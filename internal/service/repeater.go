package service

import (
	"context"
	"time"

	"trivia-harvester/internal/domain"

	"go.uber.org/zap"
)

// Repeater runs the harvest once, or forever with a pause between runs.
type Repeater struct {
	service  domain.HarvestService
	interval time.Duration
	sleep    Sleeper
	logger   *zap.Logger
}

// NewRepeater creates a Repeater. An interval of zero or less means a single run.
func NewRepeater(service domain.HarvestService, interval time.Duration, logger *zap.Logger) *Repeater {
	return &Repeater{
		service:  service,
		interval: interval,
		sleep:    TimerSleep,
		logger:   logger,
	}
}

// Run returns the error of the single run in once mode. In daemon mode failed runs are
// logged and the loop continues until ctx is cancelled, at which point Run returns nil.
func (r *Repeater) Run(ctx context.Context) error {
	if r.interval <= 0 {
		_, err := r.service.RunOnce(ctx)
		return err
	}

	r.logger.Info("Starting harvest daemon", zap.Duration("interval", r.interval))
	for {
		report, err := r.service.RunOnce(ctx)
		if ctx.Err() != nil {
			r.logger.Info("Harvest daemon stopped")
			return nil
		}
		if err != nil {
			r.logger.Error("Harvest run failed, will retry after interval",
				zap.String("code", string(domain.CodeOf(err))),
				zap.Error(err),
			)
		} else {
			r.logger.Info("Harvest run succeeded",
				zap.String("run_id", report.RunID),
				zap.Int("persisted", report.Persisted),
			)
		}

		r.logger.Info("Sleeping until next run", zap.Duration("interval", r.interval))
		if err := r.sleep(ctx, r.interval); err != nil {
			r.logger.Info("Harvest daemon stopped")
			return nil
		}
	}
}
