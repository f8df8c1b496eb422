package services

import (
	"context"
	"strings"
	"time"

	apperrors "github.com/Anirban2958/clapgrow/internal/errors"
	"github.com/Anirban2958/clapgrow/internal/followup"
	repository "github.com/Anirban2958/clapgrow/internal/repositories"
	"github.com/Anirban2958/clapgrow/pkg/constants"
	model "github.com/Anirban2958/clapgrow/pkg/models"
)

// Trigger requests an on-demand automation cycle. Implemented by Scheduler;
// nil disables on-demand triggering (the cycle command, tests).
type Trigger interface {
	Kick()
}

// FollowUpService owns follow-up CRUD. Status changes go through the
// transition rules; creating or updating an open follow-up kicks the
// automation trigger so reminders are evaluated without waiting for the next
// tick.
type FollowUpService struct {
	repo    *repository.FollowUpRepository
	clock   followup.Clock
	trigger Trigger
}

func NewFollowUpService(repo *repository.FollowUpRepository, clock followup.Clock, trigger Trigger) *FollowUpService {
	return &FollowUpService{
		repo:    repo,
		clock:   clock,
		trigger: trigger,
	}
}

func (s *FollowUpService) Create(ctx context.Context, in followup.CreateInput) (*model.FollowUp, error) {
	f, err := followup.New(in, s.clock.Today(), s.clock.Now())
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, err
	}

	s.kickIfOpen(f.Status)
	return f, nil
}

func (s *FollowUpService) Get(ctx context.Context, id string) (*model.FollowUp, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns follow-ups ordered by due date, optionally filtered by status.
func (s *FollowUpService) List(ctx context.Context, statusFilter string) ([]model.FollowUp, error) {
	var status constants.Status
	if statusFilter != "" {
		parsed, err := constants.ParseStatus(statusFilter)
		if err != nil {
			return nil, apperrors.ErrInvalidStatus
		}
		status = parsed
	}
	return s.repo.List(ctx, status)
}

// UpdateInput carries a partial update; nil fields are left unchanged. A
// status change, when present, is applied last through the transition rules.
type UpdateInput struct {
	Source       *string
	Contact      *string
	Description  *string
	DueDate      *time.Time
	Priority     *constants.Priority
	NotifyEmail  *string
	Status       *constants.Status
	SnoozedUntil *time.Time
}

func (s *FollowUpService) Update(ctx context.Context, id string, in UpdateInput) (*model.FollowUp, error) {
	f, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Source != nil {
		trimmed := strings.TrimSpace(*in.Source)
		if trimmed == "" {
			return nil, apperrors.NewValidation("source is required")
		}
		f.Source = trimmed
	}
	if in.Contact != nil {
		trimmed := strings.TrimSpace(*in.Contact)
		if trimmed == "" {
			return nil, apperrors.NewValidation("contact is required")
		}
		f.Contact = trimmed
	}
	if in.Description != nil {
		trimmed := strings.TrimSpace(*in.Description)
		if trimmed == "" {
			return nil, apperrors.NewValidation("description is required")
		}
		f.Description = trimmed
	}
	if in.Priority != nil {
		f.Priority = *in.Priority
	}
	if in.NotifyEmail != nil {
		f.NotifyEmail = strings.TrimSpace(*in.NotifyEmail)
	}

	switch {
	case in.Status != nil:
		change := followup.StatusChange{
			Status:       *in.Status,
			DueDate:      in.DueDate,
			SnoozedUntil: in.SnoozedUntil,
		}
		if err := followup.Transition(f, change, s.clock.Today(), s.clock.Now()); err != nil {
			return nil, err
		}
	case in.DueDate != nil:
		// A due-date edit outside a status change still restarts the
		// reminder cadence.
		followup.SetDueDate(f, *in.DueDate)
	}

	f.UpdatedAt = s.clock.Now()
	if err := s.repo.Save(ctx, f); err != nil {
		return nil, err
	}

	s.kickIfOpen(f.Status)
	return f, nil
}

// Delete removes a follow-up and its notification log entries. This is the
// external administrative path; the automation cycle never deletes.
func (s *FollowUpService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *FollowUpService) Counts(ctx context.Context) (total, pending int64, err error) {
	return s.repo.Counts(ctx)
}

func (s *FollowUpService) kickIfOpen(status constants.Status) {
	if s.trigger == nil {
		return
	}
	if status == constants.StatusPending || status == constants.StatusSnoozed {
		s.trigger.Kick()
	}
}
