package bootstrap

import (
	"context"
	"fmt"

	"github.com/GregMSThompson/schedule-assistant/internal/config"
	openaiclient "github.com/GregMSThompson/schedule-assistant/internal/client/openai"
	vertexclient "github.com/GregMSThompson/schedule-assistant/internal/client/vertex"
)

func (bs *Bootstrap) initLLM(ctx context.Context, cfg *config.Config) (LLMClient, error) {
	switch cfg.LLMProvider {
	case config.ProviderOpenAI:
		return openaiclient.NewAdapter(bs.Log, cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, cfg.OpenAIModel), nil
	case config.ProviderVertex:
		adapter, err := vertexclient.NewAdapter(ctx, bs.Log, cfg.ProjectID, cfg.Region, cfg.VertexModel)
		if err != nil {
			return nil, fmt.Errorf("init vertex: %w", err)
		}
		bs.closers = append(bs.closers, adapter.Close)
		return adapter, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider %q", cfg.LLMProvider)
	}
}
