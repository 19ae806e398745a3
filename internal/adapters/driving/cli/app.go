package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/beenthere-labs/beenthere/internal/adapters/driven/config/file"
	"github.com/beenthere-labs/beenthere/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/beenthere-labs/beenthere/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/beenthere-labs/beenthere/internal/adapters/driven/llm/ollama"
	"github.com/beenthere-labs/beenthere/internal/adapters/driven/llm/openrouter"
	"github.com/beenthere-labs/beenthere/internal/adapters/driven/snapshot"
	"github.com/beenthere-labs/beenthere/internal/adapters/driven/storage/sqlite"
	"github.com/beenthere-labs/beenthere/internal/core/domain"
	"github.com/beenthere-labs/beenthere/internal/core/ports/driven"
	"github.com/beenthere-labs/beenthere/internal/core/services"
	"github.com/beenthere-labs/beenthere/internal/riskmodel"
)

// newEmbedder builds the configured embedding service.
func newEmbedder() (driven.EmbeddingService, error) {
	switch cfg.Embedding.Provider {
	case "", "openai":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:  os.Getenv("OPENAI_API_KEY"),
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
		})
	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{
			BaseURL: cfg.Embedding.BaseURL,
			Model:   cfg.Embedding.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", cfg.Embedding.Provider)
	}
}

// newReplyService builds the configured chat reply service.
func newReplyService() (driven.ReplyService, error) {
	switch cfg.Chat.Provider {
	case "", "openrouter":
		return openrouter.NewReplyService(openrouter.Config{
			APIKey:  os.Getenv("OPENROUTER_API_KEY"),
			BaseURL: cfg.Chat.BaseURL,
			Model:   cfg.Chat.Model,
		})
	case "ollama":
		return ollamallm.NewReplyService(ollamallm.Config{
			BaseURL: cfg.Chat.BaseURL,
			Model:   cfg.Chat.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown chat provider %q", cfg.Chat.Provider)
	}
}

// newStoryStore opens the SQLite corpus store.
func newStoryStore() (*sqlite.Store, error) {
	dataDir, err := cfg.DataDir()
	if err != nil {
		return nil, err
	}
	return sqlite.NewStore(dataDir)
}

// newSnapshotStore opens the index snapshot store.
func newSnapshotStore() (*snapshot.Store, error) {
	path, err := cfg.SnapshotPath()
	if err != nil {
		return nil, err
	}
	return snapshot.NewStore(path)
}

// loadRiskModel loads the trained risk model. A missing model file
// degrades to the untrained fail-safe model rather than failing.
func loadRiskModel() *riskmodel.Model {
	path, err := cfg.RiskModelPath()
	if err != nil {
		log.Warn().Err(err).Msg("resolving risk model path failed; moderation degraded")
		return &riskmodel.Model{}
	}

	model, err := riskmodel.Load(path)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Warn().Str("path", path).Msg("no risk model found; moderation degraded to all-safe verdicts")
		} else {
			log.Warn().Err(err).Str("path", path).Msg("loading risk model failed; moderation degraded")
		}
		return &riskmodel.Model{}
	}
	return model
}

// newMatcher builds a matcher and attaches the persisted index if one
// exists. Without a snapshot the matcher reports not ready.
func newMatcher(ctx context.Context, embedder driven.EmbeddingService) (*services.Matcher, error) {
	matcher := services.NewMatcher(embedder, log)

	store, err := newSnapshotStore()
	if err != nil {
		return nil, err
	}
	snap, err := store.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			log.Warn().Msg("no index snapshot found; run 'beenthere index build' first")
			return matcher, nil
		}
		return nil, fmt.Errorf("loading index snapshot: %w", err)
	}

	ix, err := services.IndexFromSnapshot(snap)
	if err != nil {
		return nil, fmt.Errorf("reconstructing index: %w", err)
	}
	if embedder != nil && ix.Model() != embedder.ModelName() {
		log.Warn().
			Str("index_model", ix.Model()).
			Str("configured_model", embedder.ModelName()).
			Msg("index was built with a different embedding model; similarity scores will be meaningless")
	}
	matcher.UseIndex(ix)
	log.Info().Int("stories", ix.Len()).Str("model", ix.Model()).Msg("index snapshot loaded")
	return matcher, nil
}

// intakePrompts returns the chat prompts, honouring user override
// files under the config directory.
func intakePrompts() (systemPrompt, greeting string) {
	systemPrompt = services.IntakeSystemPrompt
	greeting = services.IntakeGreeting

	dir, err := file.ConfigDir(configDir)
	if err != nil {
		return systemPrompt, greeting
	}
	store, err := file.NewPromptStore(filepath.Join(dir, "prompts"), map[string]string{
		file.PromptIntakeSystem: services.IntakeSystemPrompt,
		file.PromptGreeting:     services.IntakeGreeting,
	})
	if err != nil {
		return systemPrompt, greeting
	}

	if p, err := store.Load(file.PromptIntakeSystem); err == nil {
		systemPrompt = p
	}
	if p, err := store.Load(file.PromptGreeting); err == nil {
		greeting = p
	}
	return systemPrompt, greeting
}
