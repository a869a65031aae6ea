package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/GregMSThompson/schedule-assistant/internal/dto"
	"github.com/GregMSThompson/schedule-assistant/internal/errs"
	"github.com/GregMSThompson/schedule-assistant/internal/models"
	"github.com/GregMSThompson/schedule-assistant/pkg/helpers"
	"github.com/GregMSThompson/schedule-assistant/pkg/logger"
)

const (
	DefaultScheduleStatus = "시작 전"
	scheduleDateLayout    = "2006-01-02"
	notFoundReason        = "no schedule with that exact title"
)

// recordStore is the document database holding schedules. SearchRecords
// returns the backend's first page of free-text hits for query; an empty
// query lists whatever the backend returns first.
type recordStore interface {
	CreateRecord(ctx context.Context, rec models.Schedule) (string, error)
	SearchRecords(ctx context.Context, query string) ([]models.Schedule, error)
	UpdateRecord(ctx context.Context, id string, patch dto.SchedulePatch) error
	ArchiveRecord(ctx context.Context, id string) error
}

type scheduleService struct {
	store         recordStore
	defaultStatus string
	clockNow      func() time.Time
}

func NewScheduleService(store recordStore, defaultStatus string) *scheduleService {
	if defaultStatus == "" {
		defaultStatus = DefaultScheduleStatus
	}
	return &scheduleService{
		store:         store,
		defaultStatus: defaultStatus,
		clockNow:      time.Now,
	}
}

// Create inserts unconditionally; duplicate titles are allowed.
func (s *scheduleService) Create(ctx context.Context, title, date, status string) (dto.CreateScheduleResult, error) {
	log := logger.FromContext(ctx)

	title = strings.TrimSpace(title)
	if title == "" {
		return dto.CreateScheduleResult{}, errs.NewValidationError("title is required")
	}
	if err := validateDate(date); err != nil {
		return dto.CreateScheduleResult{}, err
	}
	if strings.TrimSpace(status) == "" {
		status = s.defaultStatus
	}

	now := s.clockNow()
	rec := models.Schedule{
		Title:     title,
		Date:      date,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}
	id, err := s.store.CreateRecord(ctx, rec)
	if err != nil {
		return dto.CreateScheduleResult{}, err
	}

	log.Info("schedule created", "schedule_id", id, "title", title, "date", date)
	return dto.CreateScheduleResult{
		Created: true,
		Title:   title,
		Date:    date,
		Status:  status,
	}, nil
}

// Remove archives the first record whose title equals title exactly.
func (s *scheduleService) Remove(ctx context.Context, title string) (dto.RemoveScheduleResult, error) {
	log := logger.FromContext(ctx)

	rec, err := s.findExact(ctx, title)
	if err != nil {
		return dto.RemoveScheduleResult{}, err
	}
	if rec == nil {
		log.Info("schedule to remove not found", "title", title)
		return dto.RemoveScheduleResult{Deleted: false, Reason: notFoundReason}, nil
	}

	err = s.store.ArchiveRecord(ctx, rec.ID)
	if isNotFound(err) {
		log.Info("schedule vanished before archive", "schedule_id", rec.ID, "title", title)
		return dto.RemoveScheduleResult{Deleted: false, Reason: notFoundReason}, nil
	}
	if err != nil {
		return dto.RemoveScheduleResult{}, err
	}

	log.Info("schedule archived", "schedule_id", rec.ID, "title", rec.Title)
	return dto.RemoveScheduleResult{Deleted: true, Title: rec.Title}, nil
}

// Modify overwrites only the fields set in patch on the first exact title
// match.
func (s *scheduleService) Modify(ctx context.Context, title string, patch dto.SchedulePatch) (dto.ModifyScheduleResult, error) {
	log := logger.FromContext(ctx)

	patch = dto.SchedulePatch{
		Title:  helpers.NonBlank(patch.Title),
		Date:   helpers.NonBlank(patch.Date),
		Status: helpers.NonBlank(patch.Status),
	}
	if patch.Date != nil {
		if err := validateDate(*patch.Date); err != nil {
			return dto.ModifyScheduleResult{}, err
		}
	}

	rec, err := s.findExact(ctx, title)
	if err != nil {
		return dto.ModifyScheduleResult{}, err
	}
	if rec == nil {
		log.Info("schedule to modify not found", "title", title)
		return dto.ModifyScheduleResult{Modified: false, Reason: notFoundReason}, nil
	}

	if !patch.IsEmpty() {
		err := s.store.UpdateRecord(ctx, rec.ID, patch)
		if isNotFound(err) {
			log.Info("schedule vanished before update", "schedule_id", rec.ID, "title", title)
			return dto.ModifyScheduleResult{Modified: false, Reason: notFoundReason}, nil
		}
		if err != nil {
			return dto.ModifyScheduleResult{}, err
		}
	}

	log.Info("schedule modified", "schedule_id", rec.ID, "title", rec.Title)
	return dto.ModifyScheduleResult{
		Modified: true,
		Title:    helpers.ValueOr(patch.Title, rec.Title),
		Updated:  &patch,
	}, nil
}

// Get returns every search hit for title without exact-match filtering.
func (s *scheduleService) Get(ctx context.Context, title string) (dto.GetScheduleResult, error) {
	title = strings.TrimSpace(title)

	recs, err := s.store.SearchRecords(ctx, title)
	if err != nil {
		return dto.GetScheduleResult{}, err
	}
	if len(recs) == 0 {
		msg := "no schedules found"
		if title != "" {
			msg = fmt.Sprintf("no schedules found for %q", title)
		}
		return dto.GetScheduleResult{Found: false, Message: msg}, nil
	}

	views := make([]dto.ScheduleView, 0, len(recs))
	for _, rec := range recs {
		views = append(views, dto.ScheduleView{
			Title:  rec.Title,
			Date:   rec.Date,
			Status: rec.Status,
		})
	}
	return dto.GetScheduleResult{Found: true, Schedules: views}, nil
}

// findExact scans the first page of search hits for an exact title match.
// A nil record with a nil error means not found.
func (s *scheduleService) findExact(ctx context.Context, title string) (*models.Schedule, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, nil
	}

	recs, err := s.store.SearchRecords(ctx, title)
	if err != nil {
		return nil, err
	}
	for i := range recs {
		if recs[i].Title == title {
			return &recs[i], nil
		}
	}
	return nil, nil
}

// isNotFound reports a record that was archived or deleted between the search
// and the write.
func isNotFound(err error) bool {
	var nf *errs.NotFoundError
	return errors.As(err, &nf)
}

func validateDate(date string) error {
	if _, err := time.Parse(scheduleDateLayout, date); err != nil {
		return errs.NewValidationError(fmt.Sprintf("date must be YYYY-MM-DD, got %q", date))
	}
	return nil
}
