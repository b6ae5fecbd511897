package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"weather-history/pkg/logger"
)

const (
	defaultInterval = 6 * time.Hour
	jobTimeout      = 5 * time.Minute
)

type SnapshotRefresher interface {
	RefreshRecent(ctx context.Context, limit int) (int, error)
}

// Refresher periodically appends fresh snapshots to the newest searches.
type Refresher struct {
	scheduler *gocron.Scheduler
	service   SnapshotRefresher
	interval  time.Duration
	limit     int
	l         *logger.Logger
}

func New(service SnapshotRefresher, interval time.Duration, limit int, l *logger.Logger) *Refresher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Refresher{
		scheduler: gocron.NewScheduler(time.UTC),
		service:   service,
		interval:  interval,
		limit:     limit,
		l:         l,
	}
}

// Start schedules the job and returns immediately. The first run happens
// one interval after Start; overlapping runs are skipped.
func (r *Refresher) Start() error {
	_, err := r.scheduler.
		Every(r.interval).
		WaitForSchedule().
		SingletonMode().
		Do(r.RunOnce)
	if err != nil {
		return err
	}

	r.scheduler.StartAsync()

	r.l.Info("snapshot refresher started", map[string]any{
		"interval": r.interval.String(),
		"limit":    r.limit,
	})
	return nil
}

// RunOnce refreshes the newest searches a single time.
func (r *Refresher) RunOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	started := time.Now()
	n, err := r.service.RefreshRecent(ctx, r.limit)
	if err != nil {
		r.l.Error(err, map[string]any{
			"job":       "refresh",
			"refreshed": n,
		})
		return
	}

	r.l.Info("snapshot refresh completed", map[string]any{
		"refreshed": n,
		"took":      time.Since(started).String(),
	})
}

func (r *Refresher) Stop() {
	if r.scheduler != nil {
		r.scheduler.Stop()
	}
}
