package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/Anirban2958/clapgrow/internal/errors"
	"github.com/Anirban2958/clapgrow/pkg/constants"
	model "github.com/Anirban2958/clapgrow/pkg/models"
)

type FollowUpRepository struct {
	db *gorm.DB
}

func NewFollowUpRepository(db *gorm.DB) *FollowUpRepository {
	return &FollowUpRepository{db: db}
}

// Transaction runs fn against a repository bound to a single database
// transaction. The automation cycle commits all of its writes through this so
// a failed cycle rolls back instead of partially committing.
func (r *FollowUpRepository) Transaction(ctx context.Context, fn func(tx *FollowUpRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&FollowUpRepository{db: tx})
	})
}

func (r *FollowUpRepository) Create(ctx context.Context, f *model.FollowUp) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(f).Error
}

func (r *FollowUpRepository) FindByID(ctx context.Context, id string) (*model.FollowUp, error) {
	var f model.FollowUp
	err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFollowUpNotFound
		}
		return nil, err
	}
	return &f, nil
}

// List returns follow-ups ordered by due date, optionally filtered by status.
func (r *FollowUpRepository) List(ctx context.Context, status constants.Status) ([]model.FollowUp, error) {
	query := r.db.WithContext(ctx).Order("due_date asc")
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var items []model.FollowUp
	err := query.Find(&items).Error
	return items, err
}

// ListPendingDueBetween returns pending follow-ups whose due date falls inside
// [from, to], both inclusive.
func (r *FollowUpRepository) ListPendingDueBetween(ctx context.Context, from, to time.Time) ([]model.FollowUp, error) {
	var items []model.FollowUp
	err := r.db.WithContext(ctx).
		Where("status = ? AND due_date >= ? AND due_date <= ?", constants.StatusPending, from, to).
		Order("due_date asc").
		Find(&items).Error
	return items, err
}

// ListSnoozedDueBy returns snoozed follow-ups whose snooze date has arrived.
func (r *FollowUpRepository) ListSnoozedDueBy(ctx context.Context, date time.Time) ([]model.FollowUp, error) {
	var items []model.FollowUp
	err := r.db.WithContext(ctx).
		Where("status = ? AND snoozed_until IS NOT NULL AND snoozed_until <= ?", constants.StatusSnoozed, date).
		Order("snoozed_until asc").
		Find(&items).Error
	return items, err
}

// Save writes every mutable field of f. Callers hold the full entity, so nil
// pointers clear their columns.
func (r *FollowUpRepository) Save(ctx context.Context, f *model.FollowUp) error {
	res := r.db.WithContext(ctx).Model(&model.FollowUp{}).
		Where("id = ?", f.ID).
		Updates(map[string]interface{}{
			"source":                   f.Source,
			"contact":                  f.Contact,
			"description":              f.Description,
			"due_date":                 f.DueDate,
			"priority":                 f.Priority,
			"status":                   f.Status,
			"snoozed_until":            f.SnoozedUntil,
			"notify_email":             f.NotifyEmail,
			"due_notification_sent":    f.DueNotificationSent,
			"snooze_notification_sent": f.SnoozeNotificationSent,
			"last_notification_at":     f.LastNotificationAt,
			"completed_at":             f.CompletedAt,
			"updated_at":               f.UpdatedAt,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrFollowUpNotFound
	}
	return nil
}

// AppendLog records a dispatch attempt. Log entries are append-only.
func (r *FollowUpRepository) AppendLog(ctx context.Context, entry *model.NotificationLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *FollowUpRepository) ListLogs(ctx context.Context, followupID string) ([]model.NotificationLog, error) {
	var entries []model.NotificationLog
	err := r.db.WithContext(ctx).
		Where("follow_up_id = ?", followupID).
		Order("created_at asc").
		Find(&entries).Error
	return entries, err
}

// Delete removes a follow-up together with its notification log entries.
func (r *FollowUpRepository) Delete(ctx context.Context, id string) error {
	return r.Transaction(ctx, func(tx *FollowUpRepository) error {
		if err := tx.db.Where("follow_up_id = ?", id).Delete(&model.NotificationLog{}).Error; err != nil {
			return err
		}

		res := tx.db.Delete(&model.FollowUp{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperrors.ErrFollowUpNotFound
		}
		return nil
	})
}

// Counts reports totals for the health endpoint.
func (r *FollowUpRepository) Counts(ctx context.Context) (total, pending int64, err error) {
	if err = r.db.WithContext(ctx).Model(&model.FollowUp{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = r.db.WithContext(ctx).Model(&model.FollowUp{}).
		Where("status = ?", constants.StatusPending).
		Count(&pending).Error
	return total, pending, err
}
