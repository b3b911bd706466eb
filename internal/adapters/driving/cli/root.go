// Package cli provides the cobra command tree.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	configfile "github.com/coursechat-labs/coursechat-cli/internal/adapters/driven/config/file"
	"github.com/coursechat-labs/coursechat-cli/internal/adapters/driven/embedding/ollama"
	"github.com/coursechat-labs/coursechat-cli/internal/adapters/driven/embedding/openai"
	"github.com/coursechat-labs/coursechat-cli/internal/adapters/driven/llm/anthropic"
	storagemem "github.com/coursechat-labs/coursechat-cli/internal/adapters/driven/storage/memory"
	"github.com/coursechat-labs/coursechat-cli/internal/adapters/driven/storage/sqlite"
	vectormem "github.com/coursechat-labs/coursechat-cli/internal/adapters/driven/vectorstore/memory"
	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driven"
	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driving"
	"github.com/coursechat-labs/coursechat-cli/internal/core/services"
	"github.com/coursechat-labs/coursechat-cli/internal/logger"
	"github.com/coursechat-labs/coursechat-cli/internal/normalisers/coursedoc"
	"github.com/coursechat-labs/coursechat-cli/internal/postprocessors/chunker"
)

// version is set at build time via -ldflags.
var version = "dev"

var errServicesUnavailable = errors.New("no embedding backend configured (set OPENAI_API_KEY or configure ollama)")

var (
	flagVerbose   bool
	flagConfigDir string
)

// Wired services, populated by initServices. Optional backends leave
// their service nil; commands report what is missing.
var (
	servicesWired bool

	settings      domain.Settings
	settingsStore *configfile.SettingsStore
	courseStore   *sqlite.Store
	searchService driving.SearchService
	ingestService driving.IngestService
	askService    driving.AskService
)

var rootCmd = &cobra.Command{
	Use:   "coursechat",
	Short: "Chat with your course materials",
	Long: `Coursechat ingests course documents, indexes them for semantic
search, and answers questions about them through a tool-calling AI
assistant.

Set ANTHROPIC_API_KEY to enable question answering, and OPENAI_API_KEY
(or run a local Ollama) for embeddings.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		logger.SetVerbose(flagVerbose)
		return initServices(cmd)
	},
	PersistentPostRun: func(_ *cobra.Command, _ []string) {
		if courseStore != nil {
			courseStore.Close() //nolint:errcheck
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "config directory (default ~/.coursechat)")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// initServices wires the application. Everything durable lives in the
// config directory; the vector indexes are rebuilt from the store.
// Wiring happens once per process.
func initServices(cmd *cobra.Command) error {
	if servicesWired {
		return nil
	}
	servicesWired = true

	var err error
	settingsStore, err = configfile.NewSettingsStore(flagConfigDir)
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}
	settings, err = settingsStore.Load()
	if err != nil {
		return err
	}

	dataDir := ""
	if flagConfigDir != "" {
		dataDir = filepath.Join(flagConfigDir, "data")
	}
	courseStore, err = sqlite.NewStore(dataDir)
	if err != nil {
		return fmt.Errorf("opening course store: %w", err)
	}

	catalogIndex := vectormem.NewIndex()
	contentIndex := vectormem.NewIndex()
	if err := services.RebuildIndexes(cmd.Context(), courseStore, catalogIndex, contentIndex); err != nil {
		return fmt.Errorf("rebuilding indexes: %w", err)
	}

	embedder := buildEmbedder()
	if embedder == nil {
		logger.Debug("No embedding backend configured")
		return nil
	}

	searchService = services.NewSearchService(courseStore, catalogIndex, contentIndex, embedder, settings)
	ingestService = services.NewIngestService(
		coursedoc.New(chunker.New(
			chunker.WithChunkSize(settings.ChunkSize),
			chunker.WithOverlap(settings.ChunkOverlap),
		)),
		embedder, courseStore, catalogIndex, contentIndex,
	)

	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		logger.Debug("ANTHROPIC_API_KEY not set; question answering disabled")
		return nil
	}
	llm, err := anthropic.NewLLMService(anthropic.Config{
		APIKey:  apiKey,
		Model:   settings.AnthropicModel,
		Timeout: settings.RequestTimeout,
	})
	if err != nil {
		return err
	}

	registry := services.NewToolRegistry()
	registry.Register(services.NewSearchTool(searchService))
	registry.Register(services.NewOutlineTool(searchService))

	sessions := storagemem.NewSessionStore(settings.MaxHistory)
	askService = services.NewAskService(llm, registry, sessions)
	return nil
}

// buildEmbedder picks the embedding backend from settings.
// Returns nil when none is usable.
func buildEmbedder() driven.EmbeddingService {
	switch settings.EmbeddingProvider {
	case "ollama":
		return ollama.NewEmbeddingService(ollama.Config{Model: settings.EmbeddingModel})
	default:
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil
		}
		svc, err := openai.NewEmbeddingService(openai.Config{
			APIKey: apiKey,
			Model:  settings.EmbeddingModel,
		})
		if err != nil {
			logger.Warn("OpenAI embedder unavailable: %v", err)
			return nil
		}
		return svc
	}
}
