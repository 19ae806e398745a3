package cli

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/beenthere-labs/beenthere/internal/adapters/driven/storage/memory"
	"github.com/beenthere-labs/beenthere/internal/adapters/driving/httpapi"
	"github.com/beenthere-labs/beenthere/internal/core/services"
	"github.com/beenthere-labs/beenthere/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Serve the matching, moderation and chat APIs over HTTP.

Requires a built index (see "beenthere index build") for story matching
and an OPENROUTER_API_KEY for chat replies. Missing pieces degrade
gracefully: endpoints that depend on them return 503.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	embedder, err := newEmbedder()
	if err != nil {
		return err
	}
	matcher, err := newMatcher(ctx, embedder)
	if err != nil {
		return err
	}

	moderation := services.NewModeration(loadRiskModel(), log)
	gate := services.NewGate(moderation, log)

	replies, err := newReplyService()
	if err != nil {
		log.Warn().Err(err).Msg("chat replies unavailable; /api/chat will return 503")
		replies = nil
	}

	systemPrompt, greeting := intakePrompts()
	sessions := memory.NewSessionStore()
	chat := services.NewChat(sessions, replies, matcher, gate, services.ChatConfig{
		SystemPrompt: systemPrompt,
		Greeting:     greeting,
	}, log)

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	m.IndexedStories.Set(float64(matcher.Size()))

	handler := httpapi.NewHandler(matcher, gate, moderation, chat, sessions, m, version, log)
	router := httpapi.NewRouter(handler, registry)
	server := httpapi.NewServer(cfg.Addr(), router, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()
	log.Info().Str("addr", cfg.Addr()).Msg("server started")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
