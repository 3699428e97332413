// Package cron runs the background maintenance jobs.
package cron

import (
	"context"
	"log"
	"time"

	"clinio/config"
	appointmentRepo "clinio/database/repository/appointment"
	"clinio/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeAppointmentSweep = "appointments:sweep"

// sweepGrace is how long after an appointment's end we wait before assuming
// it took place.
const sweepGrace = time.Hour

// InitSweepWorker starts the async worker that periodically flips past
// scheduled appointments to completed, so stale rows never linger on a
// dentist's calendar.
func InitSweepWorker(appts appointmentRepo.AppointmentRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisJobsDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAppointmentSweep, handleSweepTask(appts))

	scheduler := asynq.NewScheduler(redisOpts, nil)
	if _, err := scheduler.Register("@every 15m", asynq.NewTask(TypeAppointmentSweep, nil)); err != nil {
		log.Fatalf("[SweepWorker] failed to register sweep schedule: %v", err)
	}

	go func() {
		utils.GetLogger().Info("starting appointment sweep worker")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				utils.GetLogger().Error("sweep worker failed to start",
					zap.Int("attempt", attempts), zap.Error(err))
				if attempts == maxAttempts {
					log.Fatal("[SweepWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()

	go func() {
		if err := scheduler.Run(); err != nil {
			utils.GetLogger().Error("sweep scheduler stopped", zap.Error(err))
		}
	}()
}

func handleSweepTask(appts appointmentRepo.AppointmentRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		cutoff := time.Now().Add(-sweepGrace)
		updated, err := appts.MarkCompletedBefore(ctx, cutoff)
		if err != nil {
			utils.GetLogger().Error("appointment sweep failed", zap.Error(err))
			return err
		}
		if updated > 0 {
			utils.GetLogger().Info("appointment sweep finished",
				zap.Int64("completed", updated), zap.Time("cutoff", cutoff))
		}
		return nil
	}
}
