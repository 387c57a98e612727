// services/scheduler.go
package services

import (
	"context"
	"time"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// StartExpiryScheduler closes overdue bounties every interval. The caller
// shuts the returned scheduler down.
func (s *BountyService) StartExpiryScheduler(ctx context.Context, interval time.Duration, log *zap.Logger) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			closed, err := s.CloseExpired(ctx)
			if err != nil {
				log.Error("Failed to close expired bounties", zap.Error(err))
				return
			}
			if closed > 0 {
				log.Info("Closed expired bounties", zap.Int64("count", closed))
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return nil, err
	}

	sched.Start()
	return sched, nil
}
