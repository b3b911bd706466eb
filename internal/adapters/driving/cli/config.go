package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application settings",
	Long: `View and change settings stored in the config file.

API keys are never stored in the file; set ANTHROPIC_API_KEY and
OPENAI_API_KEY in the environment instead.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Change one setting",
	Long: `Change one setting and save the config file.

Settable keys:
  chunk_size          characters per content chunk
  chunk_overlap       characters shared between adjacent chunks
  max_results         default search result count
  max_history         conversation exchanges remembered per session
  min_similarity      course name match floor (0..1)
  anthropic_model     model used for answers
  embedding_provider  "openai" or "ollama"
  embedding_model     embedding model name
  docs_dir            default folder for ingest`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cmd.Printf("Config file: %s\n\n", settingsStore.Path())
	cmd.Println("[Chunking]")
	cmd.Printf("  chunk_size:    %d\n", settings.ChunkSize)
	cmd.Printf("  chunk_overlap: %d\n", settings.ChunkOverlap)
	cmd.Println()
	cmd.Println("[Search]")
	cmd.Printf("  max_results:    %d\n", settings.MaxResults)
	cmd.Printf("  min_similarity: %.2f\n", settings.MinSimilarity)
	cmd.Println()
	cmd.Println("[Assistant]")
	cmd.Printf("  anthropic_model: %s\n", settings.AnthropicModel)
	cmd.Printf("  max_history:     %d\n", settings.MaxHistory)
	cmd.Println()
	cmd.Println("[Embedding]")
	cmd.Printf("  embedding_provider: %s\n", settings.EmbeddingProvider)
	cmd.Printf("  embedding_model:    %s\n", settings.EmbeddingModel)
	cmd.Println()
	cmd.Println("[Ingest]")
	cmd.Printf("  docs_dir: %s\n", settings.DocsDir)
	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if err := applySetting(key, value); err != nil {
		return err
	}
	if err := settingsStore.Save(settings); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}
	cmd.Printf("Set %s = %s\n", key, value)
	return nil
}

func applySetting(key, value string) error {
	switch key {
	case "chunk_size":
		return setPositiveInt(&settings.ChunkSize, value)
	case "chunk_overlap":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("invalid value %q for %s", value, key)
		}
		settings.ChunkOverlap = n
		return nil
	case "max_results":
		return setPositiveInt(&settings.MaxResults, value)
	case "max_history":
		return setPositiveInt(&settings.MaxHistory, value)
	case "min_similarity":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f < 0 || f > 1 {
			return fmt.Errorf("invalid value %q for %s (want 0..1)", value, key)
		}
		settings.MinSimilarity = f
		return nil
	case "anthropic_model":
		settings.AnthropicModel = value
	case "embedding_provider":
		if value != "openai" && value != "ollama" {
			return fmt.Errorf("unknown embedding provider %q (want openai or ollama)", value)
		}
		settings.EmbeddingProvider = value
	case "embedding_model":
		settings.EmbeddingModel = value
	case "docs_dir":
		settings.DocsDir = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}

func setPositiveInt(dst *int, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return fmt.Errorf("invalid value %q (want a positive integer)", value)
	}
	*dst = n
	return nil
}
