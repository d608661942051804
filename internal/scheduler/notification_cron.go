package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/Dias221467/Habit_Tracker/internal/jobs"
	"github.com/Dias221467/Habit_Tracker/internal/metrics"
	"github.com/Dias221467/Habit_Tracker/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const jobTimeout = 50 * time.Second

type job struct {
	spec string
	name string
	run  func(ctx context.Context) error
}

// StartNotificationCronJobs schedules reminder dispatch every minute,
// notification expiry hourly and the inactivity nudge at midnight. Stop the
// returned scheduler on shutdown.
func StartNotificationCronJobs(dispatcher *jobs.ReminderDispatcher, notificationService *services.NotificationService) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(
		cron.Recover(cron.PrintfLogger(logrus.StandardLogger())),
		cron.SkipIfStillRunning(cron.DiscardLogger),
	))

	schedule := []job{
		{spec: "@every 1m", name: "habit_reminders", run: func(ctx context.Context) error {
			_, err := dispatcher.RunScan(ctx)
			return err
		}},
		{spec: "@hourly", name: "expire_notifications", run: func(ctx context.Context) error {
			n, err := notificationService.DeleteExpiredNotifications(ctx)
			if err == nil && n > 0 {
				logrus.WithField("deleted", n).Info("Expired notifications removed")
			}
			return err
		}},
		{spec: "0 0 * * *", name: "inactive_users", run: func(ctx context.Context) error {
			_, err := notificationService.CheckInactiveUsers(ctx)
			return err
		}},
	}

	for _, j := range schedule {
		if _, err := c.AddFunc(j.spec, runJob(j.name, j.run)); err != nil {
			return nil, fmt.Errorf("failed to schedule %s: %w", j.name, err)
		}
	}

	c.Start()
	logrus.WithField("jobs", len(schedule)).Info("Cron jobs started")
	return c, nil
}

func runJob(name string, fn func(ctx context.Context) error) func() {
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
		defer cancel()

		if err := fn(ctx); err != nil {
			logrus.WithError(err).WithField("job", name).Error("Scheduled job failed")
			metrics.JobRuns.WithLabelValues(name, "error").Inc()
			return
		}
		metrics.JobRuns.WithLabelValues(name, "ok").Inc()
	}
}
