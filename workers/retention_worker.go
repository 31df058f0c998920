// workers/retention_worker.go
package workers

import (
	"log"
	"time"

	"class-quest-system/models"

	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// RetentionWorker prunes old XP transaction log rows once a day. It runs
// outside the request path; grants themselves never touch it.
type RetentionWorker struct {
	DB    *gorm.DB
	Days  int
	sched gocron.Scheduler
}

func NewRetentionWorker(db *gorm.DB, days int) *RetentionWorker {
	return &RetentionWorker{DB: db, Days: days}
}

// Start schedules the daily prune. Retention of 0 disables the worker.
func (w *RetentionWorker) Start() error {
	if w.Days <= 0 {
		log.Println("[Retention] disabled (XP_LOG_RETENTION_DAYS unset)")
		return nil
	}

	sched, err := gocron.NewScheduler()
	if err != nil {
		return err
	}
	w.sched = sched

	_, err = sched.NewJob(
		gocron.DurationJob(24*time.Hour),
		gocron.NewTask(w.prune),
	)
	if err != nil {
		return err
	}

	sched.Start()
	log.Printf("[Retention] pruning XP log entries older than %d days", w.Days)
	return nil
}

func (w *RetentionWorker) prune() {
	cutoff := time.Now().AddDate(0, 0, -w.Days)
	res := w.DB.Where("created_at < ?", cutoff).
		Delete(&models.XPTransaction{})
	if res.Error != nil {
		log.Printf("[Retention] prune failed: %v", res.Error)
		return
	}
	if res.RowsAffected > 0 {
		log.Printf("[Retention] pruned %d XP log entries", res.RowsAffected)
	}
}

// Stop shuts the scheduler down. Safe to call when never started.
func (w *RetentionWorker) Stop() {
	if w.sched != nil {
		_ = w.sched.Shutdown()
	}
}
