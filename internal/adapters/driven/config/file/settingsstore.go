// Package file provides a TOML-backed settings store.
package file

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driven"
)

// Ensure SettingsStore implements the interface.
var _ driven.SettingsStore = (*SettingsStore)(nil)

// fileSettings is the on-disk TOML shape. API keys are deliberately
// not part of it; they come from the environment.
type fileSettings struct {
	ChunkSize          int     `toml:"chunk_size"`
	ChunkOverlap       int     `toml:"chunk_overlap"`
	MaxResults         int     `toml:"max_results"`
	MaxHistory         int     `toml:"max_history"`
	MinSimilarity      float64 `toml:"min_similarity"`
	AnthropicModel     string  `toml:"anthropic_model"`
	EmbeddingProvider  string  `toml:"embedding_provider"`
	EmbeddingModel     string  `toml:"embedding_model"`
	DocsDir            string  `toml:"docs_dir"`
	RequestTimeoutSecs int     `toml:"request_timeout_secs"`
}

// SettingsStore is a file-based implementation of driven.SettingsStore
// using TOML. Settings live in the coursechat config directory.
type SettingsStore struct {
	mu       sync.RWMutex
	filePath string
}

// NewSettingsStore creates a TOML settings store.
// If configDir is empty, defaults to ~/.coursechat/config.toml.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".coursechat")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Path returns the config file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// Load reads the settings file, filling missing values with defaults.
// A missing file yields the defaults.
func (s *SettingsStore) Load() (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings := domain.DefaultSettings()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("reading config: %w", err)
	}

	var fs fileSettings
	if err := toml.Unmarshal(data, &fs); err != nil {
		return settings, fmt.Errorf("parsing config: %w", err)
	}

	if fs.ChunkSize > 0 {
		settings.ChunkSize = fs.ChunkSize
	}
	if fs.ChunkOverlap >= 0 && fs.ChunkOverlap < settings.ChunkSize {
		settings.ChunkOverlap = fs.ChunkOverlap
	}
	if fs.MaxResults > 0 {
		settings.MaxResults = fs.MaxResults
	}
	if fs.MaxHistory > 0 {
		settings.MaxHistory = fs.MaxHistory
	}
	if fs.MinSimilarity > 0 {
		settings.MinSimilarity = fs.MinSimilarity
	}
	if fs.AnthropicModel != "" {
		settings.AnthropicModel = fs.AnthropicModel
	}
	if fs.EmbeddingProvider != "" {
		settings.EmbeddingProvider = fs.EmbeddingProvider
	}
	if fs.EmbeddingModel != "" {
		settings.EmbeddingModel = fs.EmbeddingModel
	}
	if fs.DocsDir != "" {
		settings.DocsDir = fs.DocsDir
	}
	if fs.RequestTimeoutSecs > 0 {
		settings.RequestTimeout = time.Duration(fs.RequestTimeoutSecs) * time.Second
	}

	return settings, nil
}

// Save writes the settings to the config file.
func (s *SettingsStore) Save(settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	fs := fileSettings{
		ChunkSize:          settings.ChunkSize,
		ChunkOverlap:       settings.ChunkOverlap,
		MaxResults:         settings.MaxResults,
		MaxHistory:         settings.MaxHistory,
		MinSimilarity:      settings.MinSimilarity,
		AnthropicModel:     settings.AnthropicModel,
		EmbeddingProvider:  settings.EmbeddingProvider,
		EmbeddingModel:     settings.EmbeddingModel,
		DocsDir:            settings.DocsDir,
		RequestTimeoutSecs: int(settings.RequestTimeout / time.Second),
	}

	data, err := toml.Marshal(fs)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
