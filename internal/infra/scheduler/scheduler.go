package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"

	"github.com/reluam/pokrok/internal/app"
	"github.com/reluam/pokrok/internal/domain/instance"
	"github.com/reluam/pokrok/internal/domain/user"
)

// GenerationScheduler runs the generation sweep on a cron spec for
// deployments without an external trigger. Users are processed one at a
// time, steps then events, matching the sequential model of the
// request-triggered path.
type GenerationScheduler struct {
	cronEngine *cron.Cron
	generator  app.Generator
	userRepo   user.Repository
	logger     logrus.FieldLogger
	cronSpec   string
}

func NewGenerationScheduler(
	generator app.Generator,
	userRepo user.Repository,
	logger logrus.FieldLogger,
	cronSpec string, // e.g. "5 0 * * *" (00:05 daily)
) *GenerationScheduler {
	return &GenerationScheduler{
		cronEngine: cron.New(cron.WithLocation(time.Local)), // day boundaries follow server local time
		generator:  generator,
		userRepo:   userRepo,
		logger:     logger,
		cronSpec:   cronSpec,
	}
}

func (s *GenerationScheduler) Start() error {
	_, err := s.cronEngine.AddFunc(s.cronSpec, s.runSweep)
	if err != nil {
		return err
	}
	s.cronEngine.Start()
	s.logger.WithField("spec", s.cronSpec).Info("Generation scheduler started")
	return nil
}

func (s *GenerationScheduler) runSweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	users, err := s.userRepo.ListActive(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Sweep aborted: could not list active users")
		return
	}
	s.logger.WithField("users", len(users)).Info("Generation sweep triggered")

	for _, u := range users {
		for _, kind := range []instance.Kind{instance.KindStep, instance.KindEvent} {
			created, err := s.generator.GenerateForUser(ctx, u.AuthID, kind)
			if err != nil {
				// One user's failure must not stop the sweep for the rest.
				s.logger.WithError(err).WithFields(logrus.Fields{"user_id": u.ID, "kind": kind}).Error("Generation failed for user")
				continue
			}
			if len(created) > 0 {
				s.logger.WithFields(logrus.Fields{"user_id": u.ID, "kind": kind, "count": len(created)}).Info("Sweep created instances")
			}
		}
	}
}

func (s *GenerationScheduler) Stop() {
	ctx := s.cronEngine.Stop() // waits for a running sweep to finish
	<-ctx.Done()
	s.logger.Info("Generation scheduler stopped")
}
