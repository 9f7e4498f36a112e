package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

const backupTimeout = 2 * time.Minute

// StartBackupScheduler exports every tournament to object storage once per
// interval. The caller shuts the returned scheduler down.
func StartBackupScheduler(svc TournamentService, interval time.Duration, logger *slog.Logger) (gocron.Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}

	_, err = sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), backupTimeout)
			defer cancel()

			count, err := svc.BackupTournaments(ctx)
			if err != nil {
				logger.Error("Scheduler: tournament backup failed", slog.Int("exported", count), slog.Any("error", err))
				return
			}
			logger.Info("Scheduler: tournaments backed up", slog.Int("exported", count))
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
