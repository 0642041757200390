package venuestatus

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Refresher re-derives watched venue snapshots on a fixed schedule, the
// server-side counterpart of the old per-widget polling timer.
type Refresher struct {
	logger   *slog.Logger
	service  Service
	interval time.Duration
	cron     *cron.Cron
}

func NewRefresher(service Service, interval time.Duration, logger *slog.Logger) *Refresher {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Refresher{
		logger:   logger,
		service:  service,
		interval: interval,
		cron:     cron.New(),
	}
}

// Start schedules the periodic refresh. The context bounds each refresh
// run; Stop cancels the schedule.
func (r *Refresher) Start(ctx context.Context) error {
	spec := fmt.Sprintf("@every %s", r.interval)
	_, err := r.cron.AddFunc(spec, func() {
		r.service.RefreshWatched(ctx)
	})
	if err != nil {
		return fmt.Errorf("failed to schedule venue refresh: %w", err)
	}
	r.cron.Start()
	r.logger.Info("Venue status refresher started", slog.Duration("interval", r.interval))
	return nil
}

// Stop halts the schedule and waits for any in-flight run to finish.
func (r *Refresher) Stop() {
	stopCtx := r.cron.Stop()
	<-stopCtx.Done()
	r.logger.Info("Venue status refresher stopped")
}
