package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/reluam/pokrok/internal/domain/automation"
	"github.com/reluam/pokrok/internal/domain/instance"
	"github.com/reluam/pokrok/internal/domain/user"
	idb "github.com/reluam/pokrok/internal/infra/database"
)

// Custom application-level errors for the generation service
var ErrUnauthorized = fmt.Errorf("no caller identity")
var ErrUserNotFound = fmt.Errorf("caller identity does not resolve to a user")

// Generator runs automation-driven instance generation for one user.
type Generator interface {
	// GenerateForUser evaluates the user's active automations against today
	// and materializes the missing instances of the given kind. Returns the
	// newly created instances; an empty list is a successful result.
	GenerateForUser(ctx context.Context, authID string, kind instance.Kind) ([]*instance.Instance, error)
}

// GenerationService implements Generator against the domain repositories.
type GenerationService struct {
	userRepo user.Repository
	autoRepo automation.Repository
	instRepo instance.Repository
	logger   logrus.FieldLogger
	now      func() time.Time
}

func NewGenerationService(
	ur user.Repository,
	ar automation.Repository,
	ir instance.Repository,
	logger logrus.FieldLogger,
) *GenerationService {
	return &GenerationService{
		userRepo: ur,
		autoRepo: ar,
		instRepo: ir,
		logger:   logger,
		now:      time.Now,
	}
}

// WithClock overrides the service's clock. Intended for tests.
func (s *GenerationService) WithClock(now func() time.Time) *GenerationService {
	s.now = now
	return s
}

func (s *GenerationService) GenerateForUser(ctx context.Context, authID string, kind instance.Kind) ([]*instance.Instance, error) {
	if authID == "" {
		return nil, ErrUnauthorized
	}

	u, err := s.userRepo.GetByAuthID(ctx, authID)
	if err != nil {
		if errors.Is(err, idb.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	automations, err := s.autoRepo.ListActiveWithTarget(ctx, u.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active automations: %w", err)
	}

	// One day boundary for the whole batch, so all instances created by this
	// invocation land on the same calendar day.
	today, dayKey := automation.Today(s.now())

	log := s.logger.WithFields(logrus.Fields{"user_id": u.ID, "kind": kind, "day": dayKey})
	log.Debugf("Evaluating %d active automations", len(automations))

	created := make([]*instance.Instance, 0)
	for _, a := range automations {
		// The repository only returns active rows; keep the invariant even
		// if an implementation slips an inactive automation through.
		if !a.IsActive {
			continue
		}
		if !automation.IsDue(a, today) {
			continue
		}

		// Idempotency fast path: skip when an instance for this automation
		// and day already exists. A failure here only skips this automation;
		// the rest of the batch still runs.
		existing, err := s.instRepo.FindForDay(ctx, kind, u.ID, a.ID, a.Target.GoalID, a.Target.Title, dayKey)
		if err == nil && existing != nil {
			log.WithField("automation_id", a.ID).Debug("Instance already exists, skipping")
			continue
		}
		if err != nil && !errors.Is(err, idb.ErrInstanceNotFound) {
			log.WithField("automation_id", a.ID).WithError(err).Error("Existence check failed, skipping automation")
			continue
		}

		inst := buildInstance(a, kind, today)
		if err := s.instRepo.Insert(ctx, kind, inst); err != nil {
			if errors.Is(err, idb.ErrDuplicateInstance) {
				// The storage backstop caught a concurrent insert for the
				// same (user, automation, day). Treat as already existing.
				log.WithField("automation_id", a.ID).Info("Duplicate instance rejected by store, skipping")
				continue
			}
			log.WithField("automation_id", a.ID).WithError(err).Error("Insert failed, skipping automation")
			continue
		}

		log.WithFields(logrus.Fields{"automation_id": a.ID, "instance_id": inst.ID}).Info("Instance created")
		created = append(created, inst)
	}

	return created, nil
}

// buildInstance materializes one incomplete instance from an automation and
// its joined target for the given day.
func buildInstance(a *automation.Automation, kind instance.Kind, day time.Time) *instance.Instance {
	description := a.Target.Description
	if !description.Valid {
		description = a.Description
	}

	inst := &instance.Instance{
		ID:          uuid.NewString(),
		UserID:      a.UserID,
		GoalID:      a.Target.GoalID,
		Title:       a.Target.Title,
		Description: description,
		Completed:   false,
		Date:        day,
		IsImportant: false,
		IsUrgent:    false,
		Type:        "automation",
	}

	if a.Target.StepType.Valid {
		inst.Type = a.Target.StepType.String
	}

	if kind == instance.KindEvent {
		inst.AutomationID = sql.NullString{String: a.ID, Valid: true}
		inst.Unit = a.Target.Unit
		switch a.TargetType {
		case automation.TargetTypeMetric:
			inst.TargetMetricID = sql.NullString{String: a.TargetID, Valid: true}
		case automation.TargetTypeStep:
			inst.TargetStepID = sql.NullString{String: a.TargetID, Valid: true}
		}
	}

	return inst
}
