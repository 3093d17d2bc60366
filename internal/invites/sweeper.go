package invites

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/swoop-build/swoop-backend/internal/projects/repository"
)

// Sweeper flips collaborator invites that have sat pending past the
// reminder age to reminded, nightly.
type Sweeper struct {
	repo        *repository.ProjectRepository
	reminderAge time.Duration
	log         *logrus.Logger
	cron        *cron.Cron
}

func NewSweeper(repo *repository.ProjectRepository, reminderAge time.Duration, log *logrus.Logger) *Sweeper {
	return &Sweeper{repo: repo, reminderAge: reminderAge, log: log}
}

// Start schedules the nightly sweep (12:00 AM).
func (s *Sweeper) Start() error {
	s.cron = cron.New(cron.WithSeconds())
	if _, err := s.cron.AddFunc("0 0 0 * * *", func() {
		s.RunOnce(context.Background())
	}); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("invite sweeper started (running nightly at 12:00AM)")
	return nil
}

// Stop halts the schedule and waits for a running sweep to finish.
func (s *Sweeper) Stop() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}

// RunOnce performs a single sweep. Exposed for manual runs.
func (s *Sweeper) RunOnce(ctx context.Context) {
	n, err := s.repo.SweepPendingInvites(ctx, intervalString(s.reminderAge))
	if err != nil {
		s.log.WithError(err).Error("invite sweep failed")
		return
	}
	if n > 0 {
		s.log.WithField("reminded", n).Info("invite sweep flipped stale invites")
	}
}

// intervalString renders a duration as a postgres interval literal.
func intervalString(d time.Duration) string {
	return fmt.Sprintf("%d seconds", int64(d.Seconds()))
}
