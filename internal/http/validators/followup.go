package validators

import (
	"time"

	dto "github.com/Anirban2958/clapgrow/internal/data_models"
	apperrors "github.com/Anirban2958/clapgrow/internal/errors"
	"github.com/Anirban2958/clapgrow/internal/followup"
	"github.com/Anirban2958/clapgrow/internal/services"
	"github.com/Anirban2958/clapgrow/pkg/constants"
)

const dateLayout = "2006-01-02"

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, apperrors.ErrInvalidDate
	}
	return &t, nil
}

// ParseCreate converts a create request into core input, validating dates and
// enum values. Required-field checks live in the followup package.
func ParseCreate(req *dto.CreateFollowUpRequest) (followup.CreateInput, error) {
	in := followup.CreateInput{
		Source:      req.Source,
		Contact:     req.Contact,
		Description: req.Description,
		NotifyEmail: req.NotifyEmail,
	}

	due, err := parseDate(req.DueDate)
	if err != nil {
		return in, err
	}
	in.DueDate = due

	snooze, err := parseDate(req.SnoozedUntil)
	if err != nil {
		return in, err
	}
	in.SnoozedUntil = snooze

	if req.Priority != "" {
		priority, err := constants.ParsePriority(req.Priority)
		if err != nil {
			return in, apperrors.NewValidation(err.Error())
		}
		in.Priority = priority
	}
	if req.Status != "" {
		status, err := constants.ParseStatus(req.Status)
		if err != nil {
			return in, apperrors.ErrInvalidStatus
		}
		in.Status = status
	}

	return in, nil
}

// ParseUpdate converts a partial update request into service input.
func ParseUpdate(req *dto.UpdateFollowUpRequest) (services.UpdateInput, error) {
	in := services.UpdateInput{
		Source:      req.Source,
		Contact:     req.Contact,
		Description: req.Description,
		NotifyEmail: req.NotifyEmail,
	}

	if req.DueDate != nil {
		due, err := parseDate(*req.DueDate)
		if err != nil {
			return in, err
		}
		if due == nil {
			return in, apperrors.NewValidation("due date is required")
		}
		in.DueDate = due
	}
	if req.SnoozedUntil != nil {
		snooze, err := parseDate(*req.SnoozedUntil)
		if err != nil {
			return in, err
		}
		in.SnoozedUntil = snooze
	}
	if req.Priority != nil {
		priority, err := constants.ParsePriority(*req.Priority)
		if err != nil {
			return in, apperrors.NewValidation(err.Error())
		}
		in.Priority = &priority
	}
	if req.Status != nil {
		status, err := constants.ParseStatus(*req.Status)
		if err != nil {
			return in, apperrors.ErrInvalidStatus
		}
		in.Status = &status
	}

	return in, nil
}
