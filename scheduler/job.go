package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ReminderJob owns the periodic schedule around a Dispatcher. A tick that is
// still running when the next one fires makes the next one get skipped, not
// queued.
type ReminderJob struct {
	cron      *cron.Cron
	run       func(ctx context.Context) error
	log       *zap.Logger
	onSuccess func()
	onFailure func(error)
}

// NewReminderJob wires the dispatcher to the application database and SMTP
// transport with configuration from the environment.
func NewReminderJob(db *gorm.DB, log *zap.Logger) *ReminderJob {
	dispatcher := NewDispatcher(NewGormStore(db), NewSMTPMailer(), log, ConfigFromEnv())
	return NewReminderJobWith(dispatcher.Run, log, nil, nil)
}

// NewReminderJobWith builds a job around an arbitrary tick function. The
// callbacks relay the two completion outcomes to alerting; either may be nil.
func NewReminderJobWith(run func(ctx context.Context) error, log *zap.Logger, onSuccess func(), onFailure func(error)) *ReminderJob {
	return &ReminderJob{
		run:       run,
		log:       log,
		onSuccess: onSuccess,
		onFailure: onFailure,
	}
}

// Start schedules the job every minute
func (j *ReminderJob) Start() {
	logger := cronLogger{log: j.log}
	j.cron = cron.New(cron.WithChain(
		cron.Recover(logger),
		cron.SkipIfStillRunning(logger),
	))
	if _, err := j.cron.AddFunc("@every 1m", j.Tick); err != nil {
		j.log.Error("scheduling reminder job failed", zap.Error(err))
		return
	}
	j.cron.Start()
}

// Stop halts the schedule and waits for an in-flight tick to finish
func (j *ReminderJob) Stop() {
	if j.cron != nil {
		<-j.cron.Stop().Done()
	}
}

// Tick runs one invocation and signals exactly one of the two outcomes
func (j *ReminderJob) Tick() {
	if err := j.run(context.Background()); err != nil {
		if j.onFailure != nil {
			j.onFailure(err)
		}
		return
	}
	if j.onSuccess != nil {
		j.onSuccess()
	}
}

// cronLogger adapts zap to the cron logging interface
type cronLogger struct {
	log *zap.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Infow(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Sugar().Errorw(msg, append(keysAndValues, "error", err)...)
}
