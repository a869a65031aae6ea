package bootstrap

import (
	"context"
	"errors"
	"log/slog"

	"cloud.google.com/go/firestore"
	"firebase.google.com/go/v4/auth"

	"github.com/GregMSThompson/schedule-assistant/internal/config"
	"github.com/GregMSThompson/schedule-assistant/internal/dto"
	"github.com/GregMSThompson/schedule-assistant/internal/models"
	"github.com/GregMSThompson/schedule-assistant/pkg/logger"
)

type LLMClient interface {
	GenerateContent(ctx context.Context, req dto.LLMGenerateRequest) (dto.LLMGenerateResponse, error)
}

type RecordStore interface {
	CreateRecord(ctx context.Context, rec models.Schedule) (string, error)
	SearchRecords(ctx context.Context, query string) ([]models.Schedule, error)
	UpdateRecord(ctx context.Context, id string, patch dto.SchedulePatch) error
	ArchiveRecord(ctx context.Context, id string) error
}

// Bootstrap holds the long-lived clients built once at startup.
type Bootstrap struct {
	Log       *slog.Logger
	Firestore *firestore.Client
	Firebase  *auth.Client
	LLM       LLMClient
	Records   RecordStore

	closers []func() error
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	var err error
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewCloudRunHandler)
	slog.SetDefault(bs.Log)

	if cfg.RecordStore == config.StoreFirestore {
		bs.Firestore, err = InitFirestore(applicationCtx, cfg.ProjectID)
		if err != nil {
			return bs, err
		}
		bs.closers = append(bs.closers, bs.Firestore.Close)
	}
	if cfg.AuthRequired {
		bs.Firebase, err = InitFirebase(applicationCtx, cfg.ProjectID)
		if err != nil {
			return bs, err
		}
	}

	bs.LLM, err = bs.initLLM(applicationCtx, cfg)
	if err != nil {
		return bs, err
	}
	bs.Records, err = bs.initRecordStore(applicationCtx, cfg)
	if err != nil {
		return bs, err
	}

	bs.Log.Info("bootstrap complete",
		"llm_provider", cfg.LLMProvider,
		"record_store", cfg.RecordStore,
		"auth_required", cfg.AuthRequired)
	return bs, nil
}

// Close releases clients in reverse construction order.
func (bs *Bootstrap) Close() error {
	var errs []error
	for i := len(bs.closers) - 1; i >= 0; i-- {
		if err := bs.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
