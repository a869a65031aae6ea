package store

import (
	"context"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/GregMSThompson/schedule-assistant/internal/dto"
	"github.com/GregMSThompson/schedule-assistant/internal/errs"
	"github.com/GregMSThompson/schedule-assistant/internal/models"
)

// searchPageSize caps the matches a search returns, like one page of a title
// "contains" query.
const searchPageSize = 100

type scheduleStore struct {
	client     *firestore.Client
	collection string
	clockNow   func() time.Time
}

func NewScheduleStore(client *firestore.Client, collection string) *scheduleStore {
	if collection == "" {
		collection = "schedules"
	}
	return &scheduleStore{
		client:     client,
		collection: collection,
		clockNow:   time.Now,
	}
}

func (s *scheduleStore) schedules() *firestore.CollectionRef {
	return s.client.Collection(s.collection)
}

func (s *scheduleStore) CreateRecord(ctx context.Context, rec models.Schedule) (string, error) {
	now := s.clockNow()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = now
	}
	rec.Archived = false

	ref, _, err := s.schedules().Add(ctx, rec)
	if err != nil {
		return "", errs.NewDatabaseError("create", "failed to create schedule", err)
	}
	return ref.ID, nil
}

func (s *scheduleStore) SearchRecords(ctx context.Context, query string) ([]models.Schedule, error) {
	// Firestore has no substring operator. Titles are matched while streaming
	// live schedules oldest first, stopping once a page of matches is found.
	q := s.schedules().
		Where("archived", "==", false).
		OrderBy("createdAt", firestore.Asc)

	iter := q.Documents(ctx)
	defer iter.Stop()

	var out []models.Schedule
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, errs.NewDatabaseError("read", "failed to search schedules", err)
		}
		var rec models.Schedule
		if err := doc.DataTo(&rec); err != nil {
			return nil, errs.NewDatabaseError("read", "failed to parse schedule data", err)
		}
		rec.ID = doc.Ref.ID
		if query != "" && !strings.Contains(rec.Title, query) {
			continue
		}
		out = append(out, rec)
		if len(out) == searchPageSize {
			break
		}
	}
	return out, nil
}

func (s *scheduleStore) UpdateRecord(ctx context.Context, id string, patch dto.SchedulePatch) error {
	updates := []firestore.Update{
		{Path: "updatedAt", Value: s.clockNow()},
	}
	if patch.Title != nil {
		updates = append(updates, firestore.Update{Path: "title", Value: *patch.Title})
	}
	if patch.Date != nil {
		updates = append(updates, firestore.Update{Path: "date", Value: *patch.Date})
	}
	if patch.Status != nil {
		updates = append(updates, firestore.Update{Path: "status", Value: *patch.Status})
	}

	_, err := s.schedules().Doc(id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return errs.NewNotFoundError("schedule not found")
	}
	if err != nil {
		return errs.NewDatabaseError("update", "failed to update schedule", err)
	}
	return nil
}

func (s *scheduleStore) ArchiveRecord(ctx context.Context, id string) error {
	_, err := s.schedules().Doc(id).Update(ctx, []firestore.Update{
		{Path: "archived", Value: true},
		{Path: "updatedAt", Value: s.clockNow()},
	})
	if status.Code(err) == codes.NotFound {
		return errs.NewNotFoundError("schedule not found")
	}
	if err != nil {
		return errs.NewDatabaseError("update", "failed to archive schedule", err)
	}
	return nil
}
