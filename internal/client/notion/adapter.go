package notionclient

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/jomei/notionapi"

	"github.com/GregMSThompson/schedule-assistant/internal/dto"
	"github.com/GregMSThompson/schedule-assistant/internal/errs"
	"github.com/GregMSThompson/schedule-assistant/internal/models"
)

const (
	serviceName = "notion"
	dateLayout  = "2006-01-02"
	// Only the first page of search results is ever inspected.
	searchPageSize = 100
)

// PropertyNames are the column names of the schedule database.
type PropertyNames struct {
	Title  string
	Date   string
	Status string
}

func DefaultPropertyNames() PropertyNames {
	return PropertyNames{Title: "Name", Date: "Date", Status: "Status"}
}

type pageService interface {
	Create(ctx context.Context, req *notionapi.PageCreateRequest) (*notionapi.Page, error)
	Update(ctx context.Context, id notionapi.PageID, req *notionapi.PageUpdateRequest) (*notionapi.Page, error)
}

type databaseService interface {
	Get(ctx context.Context, id notionapi.DatabaseID) (*notionapi.Database, error)
	Query(ctx context.Context, id notionapi.DatabaseID, req *notionapi.DatabaseQueryRequest) (*notionapi.DatabaseQueryResponse, error)
}

// Status columns come in three shapes; writes must match the column type.
const (
	statusKindStatus   = "status"
	statusKindSelect   = "select"
	statusKindRichText = "rich_text"
)

// Adapter stores schedules as pages of a single Notion database.
type Adapter struct {
	pages      pageService
	databases  databaseService
	databaseID notionapi.DatabaseID
	props      PropertyNames
	statusKind string
	log        *slog.Logger
}

func NewAdapter(log *slog.Logger, token, databaseID string, props PropertyNames) *Adapter {
	client := notionapi.NewClient(notionapi.Token(token))
	return &Adapter{
		pages:      client.Page,
		databases:  client.Database,
		databaseID: notionapi.DatabaseID(databaseID),
		props:      props,
		statusKind: statusKindStatus,
		log:        log,
	}
}

// Ping retrieves the database and returns its title, failing fast on a bad
// token or database id. It also records the status column type so writes use
// the matching property shape; call it before serving.
func (a *Adapter) Ping(ctx context.Context) (string, error) {
	db, err := a.databases.Get(ctx, a.databaseID)
	if err != nil {
		return "", toServiceError("retrieve database failed", err)
	}

	switch db.Properties[a.props.Status].(type) {
	case *notionapi.StatusPropertyConfig:
		a.statusKind = statusKindStatus
	case *notionapi.SelectPropertyConfig:
		a.statusKind = statusKindSelect
	case *notionapi.RichTextPropertyConfig:
		a.statusKind = statusKindRichText
	default:
		if a.log != nil {
			a.log.Warn("status column missing or of unsupported type, writing as status",
				"property", a.props.Status)
		}
		a.statusKind = statusKindStatus
	}
	return plainText(db.Title), nil
}

func (a *Adapter) CreateRecord(ctx context.Context, rec models.Schedule) (string, error) {
	props := notionapi.Properties{
		a.props.Title: titleProperty(rec.Title),
	}
	if rec.Date != "" {
		date, err := dateProperty(rec.Date)
		if err != nil {
			return "", err
		}
		props[a.props.Date] = date
	}
	if rec.Status != "" {
		props[a.props.Status] = a.statusProperty(rec.Status)
	}

	page, err := a.pages.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: a.databaseID,
		},
		Properties: props,
	})
	if err != nil {
		return "", toServiceError("create page failed", err)
	}
	return string(page.ID), nil
}

// SearchRecords runs a title "contains" query; an empty query lists the
// first page of the database.
func (a *Adapter) SearchRecords(ctx context.Context, query string) ([]models.Schedule, error) {
	req := &notionapi.DatabaseQueryRequest{PageSize: searchPageSize}
	if query != "" {
		req.Filter = &notionapi.PropertyFilter{
			Property: a.props.Title,
			RichText: &notionapi.TextFilterCondition{Contains: query},
		}
	}

	resp, err := a.databases.Query(ctx, a.databaseID, req)
	if err != nil {
		return nil, toServiceError("query database failed", err)
	}

	out := make([]models.Schedule, 0, len(resp.Results))
	for _, page := range resp.Results {
		if page.Archived {
			continue
		}
		out = append(out, a.toSchedule(page))
	}
	if resp.HasMore && a.log != nil {
		a.log.Debug("notion query has more pages; only the first is used", "query", query)
	}
	return out, nil
}

func (a *Adapter) UpdateRecord(ctx context.Context, id string, patch dto.SchedulePatch) error {
	props := notionapi.Properties{}
	if patch.Title != nil {
		props[a.props.Title] = titleProperty(*patch.Title)
	}
	if patch.Date != nil {
		date, err := dateProperty(*patch.Date)
		if err != nil {
			return err
		}
		props[a.props.Date] = date
	}
	if patch.Status != nil {
		props[a.props.Status] = a.statusProperty(*patch.Status)
	}

	_, err := a.pages.Update(ctx, notionapi.PageID(id), &notionapi.PageUpdateRequest{Properties: props})
	if err != nil {
		return toServiceError("update page failed", err)
	}
	return nil
}

// ArchiveRecord soft-deletes the page; Notion keeps it in the trash.
func (a *Adapter) ArchiveRecord(ctx context.Context, id string) error {
	_, err := a.pages.Update(ctx, notionapi.PageID(id), &notionapi.PageUpdateRequest{
		Properties: notionapi.Properties{},
		Archived:   true,
	})
	if err != nil {
		return toServiceError("archive page failed", err)
	}
	return nil
}

func (a *Adapter) toSchedule(page notionapi.Page) models.Schedule {
	rec := models.Schedule{
		ID:        string(page.ID),
		Archived:  page.Archived,
		CreatedAt: page.CreatedTime,
		UpdatedAt: page.LastEditedTime,
	}

	switch p := page.Properties[a.props.Title].(type) {
	case *notionapi.TitleProperty:
		rec.Title = plainText(p.Title)
	}

	switch p := page.Properties[a.props.Date].(type) {
	case *notionapi.DateProperty:
		if p.Date != nil && p.Date.Start != nil {
			rec.Date = time.Time(*p.Date.Start).Format(dateLayout)
		}
	}

	// Older databases use a select or text column for status.
	switch p := page.Properties[a.props.Status].(type) {
	case *notionapi.StatusProperty:
		rec.Status = p.Status.Name
	case *notionapi.SelectProperty:
		rec.Status = p.Select.Name
	case *notionapi.RichTextProperty:
		rec.Status = plainText(p.RichText)
	}

	return rec
}

func titleProperty(title string) notionapi.TitleProperty {
	return notionapi.TitleProperty{
		Title: []notionapi.RichText{
			{Text: &notionapi.Text{Content: title}},
		},
	}
}

func dateProperty(date string) (notionapi.DateProperty, error) {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return notionapi.DateProperty{}, errs.NewValidationError(fmt.Sprintf("date must be YYYY-MM-DD, got %q", date))
	}
	start := notionapi.Date(t)
	return notionapi.DateProperty{
		Date: &notionapi.DateObject{Start: &start},
	}, nil
}

func (a *Adapter) statusProperty(status string) notionapi.Property {
	switch a.statusKind {
	case statusKindSelect:
		return notionapi.SelectProperty{Select: notionapi.Option{Name: status}}
	case statusKindRichText:
		return notionapi.RichTextProperty{
			RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: status}}},
		}
	default:
		return notionapi.StatusProperty{Status: notionapi.Status{Name: status}}
	}
}

func plainText(parts []notionapi.RichText) string {
	var b strings.Builder
	for _, part := range parts {
		if part.PlainText != "" {
			b.WriteString(part.PlainText)
		} else if part.Text != nil {
			b.WriteString(part.Text.Content)
		}
	}
	return b.String()
}

// toServiceError marks rate limits and Notion 5xx responses as transient.
func toServiceError(message string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var apiErr *notionapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Status == http.StatusNotFound {
			return errs.NewNotFoundError(fmt.Sprintf("%s: %v", message, err))
		}
		transient := apiErr.Status == http.StatusTooManyRequests || apiErr.Status >= http.StatusInternalServerError
		return errs.NewExternalServiceError(serviceName, message, transient, err)
	}
	return errs.NewExternalServiceError(serviceName, message, true, err)
}
