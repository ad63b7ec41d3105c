package jobs

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"wordpath/internal/service"
)

const recalcTimeout = 10 * time.Minute

// Recalculator recomputes crowd-sourced word difficulty.
type Recalculator interface {
	RecalculateAll(ctx context.Context) (*service.AggregationSummary, error)
}

// ReminderSender delivers a review-due reminder to one address.
type ReminderSender interface {
	IsEnabled() bool
	SendDueReminder(ctx context.Context, toEmail string, dueCount int) error
}

// Scheduler runs the recurring background jobs: the nightly difficulty
// recalculation and the daily reminder sweep.
type Scheduler struct {
	scheduler  *gocron.Scheduler
	difficulty Recalculator
	reminders  ReminderSender
	users      service.UserStore
	progress   service.ProgressStore
	now        func() time.Time
}

// New creates a scheduler for the background jobs. Jobs run in UTC.
func New(difficulty Recalculator, reminders ReminderSender, users service.UserStore, progress service.ProgressStore) *Scheduler {
	return &Scheduler{
		scheduler:  gocron.NewScheduler(time.UTC),
		difficulty: difficulty,
		reminders:  reminders,
		users:      users,
		progress:   progress,
		now:        time.Now,
	}
}

// Start registers the jobs and begins running them asynchronously.
// recalcAt and remindAt are "HH:MM" clock times in UTC.
func (s *Scheduler) Start(recalcAt, remindAt string) error {
	if _, err := s.scheduler.Every(1).Day().At(recalcAt).Do(s.runRecalculation); err != nil {
		return err
	}
	if _, err := s.scheduler.Every(1).Day().At(remindAt).Do(s.runReminderSweep); err != nil {
		return err
	}

	s.scheduler.StartAsync()
	log.Printf("Background jobs started: recalc at %s UTC, reminders at %s UTC", recalcAt, remindAt)
	return nil
}

// Stop terminates all scheduled jobs.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

func (s *Scheduler) runRecalculation() {
	ctx, cancel := context.WithTimeout(context.Background(), recalcTimeout)
	defer cancel()

	summary, err := s.difficulty.RecalculateAll(ctx)
	if err != nil {
		log.Printf("Difficulty recalculation failed: %v", err)
		return
	}
	log.Printf("Difficulty recalculation done: %d/%d words updated, %d without data",
		summary.UpdatedCount, summary.TotalWords, summary.NoDataCount)
}

func (s *Scheduler) runReminderSweep() {
	if !s.reminders.IsEnabled() {
		log.Println("Reminder sweep skipped: emails disabled")
		return
	}

	users, err := s.users.ListWithEmail()
	if err != nil {
		log.Printf("Reminder sweep failed to list users: %v", err)
		return
	}

	now := s.now()
	sent := 0
	for _, user := range users {
		stats, err := s.progress.ReviewStats(user.ID, now)
		if err != nil {
			log.Printf("Reminder sweep failed for user %d: %v", user.ID, err)
			continue
		}
		if stats.DueCount == 0 {
			continue
		}
		if err := s.reminders.SendDueReminder(context.Background(), user.Email, stats.DueCount); err != nil {
			log.Printf("Failed to remind user %d: %v", user.ID, err)
			continue
		}
		sent++
	}
	log.Printf("Reminder sweep done: %d of %d users notified", sent, len(users))
}
