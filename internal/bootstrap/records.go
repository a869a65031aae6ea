package bootstrap

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"

	notionclient "github.com/GregMSThompson/schedule-assistant/internal/client/notion"
	"github.com/GregMSThompson/schedule-assistant/internal/config"
	"github.com/GregMSThompson/schedule-assistant/internal/store"
)

func (bs *Bootstrap) initRecordStore(ctx context.Context, cfg *config.Config) (RecordStore, error) {
	switch cfg.RecordStore {
	case config.StoreNotion:
		token, err := resolveNotionToken(ctx, cfg.NotionToken)
		if err != nil {
			return nil, err
		}
		adapter := notionclient.NewAdapter(bs.Log, token, cfg.NotionScheduleDBID, notionclient.PropertyNames{
			Title:  cfg.NotionTitleProperty,
			Date:   cfg.NotionDateProperty,
			Status: cfg.NotionStatusProperty,
		})
		title, err := adapter.Ping(ctx)
		if err != nil {
			return nil, fmt.Errorf("connect notion database: %w", err)
		}
		bs.Log.Info("notion database connected", "database", title)
		return adapter, nil
	case config.StoreFirestore:
		return store.NewScheduleStore(bs.Firestore, cfg.FirestoreCollection), nil
	default:
		return nil, fmt.Errorf("unsupported record store %q", cfg.RecordStore)
	}
}

// resolveNotionToken lets NOTIONTOKEN hold a Secret Manager reference instead
// of the token itself.
func resolveNotionToken(ctx context.Context, value string) (string, error) {
	if !store.IsSecretRef(value) {
		return value, nil
	}
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("init secret manager: %w", err)
	}
	defer client.Close()

	return store.NewSecretsStore(client).Resolve(ctx, value)
}
