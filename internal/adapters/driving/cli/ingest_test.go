package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driving"
)

func TestIngestCmd_Use(t *testing.T) {
	assert.Equal(t, "ingest [path]", ingestCmd.Use)
}

func TestIngestCmd_HasFlags(t *testing.T) {
	force := ingestCmd.Flags().Lookup("force")
	require.NotNil(t, force)
	assert.Equal(t, "f", force.Shorthand)

	watch := ingestCmd.Flags().Lookup("watch")
	require.NotNil(t, watch)
	assert.Equal(t, "w", watch.Shorthand)
}

func TestIngestCmd_SingleFile(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := &mockIngestService{chunks: 12}
	ingestService = mock

	path := filepath.Join(t.TempDir(), "course.txt")
	require.NoError(t, os.WriteFile(path, []byte("Course Title: X\n"), 0o600))

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", path})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, path, mock.gotPath)
	assert.Contains(t, buf.String(), "Ingested \"Building RAG Systems\"")
	assert.Contains(t, buf.String(), "12 chunks")
}

func TestIngestCmd_Folder(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := &mockIngestService{
		report: &driving.IngestReport{
			CoursesAdded: 2,
			ChunksAdded:  17,
			Skipped:      1,
			Failed:       map[string]string{"/docs/broken.txt": "missing course title"},
		},
	}
	ingestService = mock

	dir := t.TempDir()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", dir})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, dir, mock.gotPath)
	out := buf.String()
	assert.Contains(t, out, "Courses added:  2")
	assert.Contains(t, out, "Chunks added:   17")
	assert.Contains(t, out, "Skipped:        1")
	assert.Contains(t, out, "broken.txt: missing course title")
}

func TestIngestCmd_ForceFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := &mockIngestService{}
	ingestService = mock

	dir := t.TempDir()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ingest", "--force", dir})
	defer func() {
		rootCmd.SetArgs(nil)
		ingestForce = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.True(t, mock.gotForce)
}

func TestIngestCmd_MissingPath(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ingest", filepath.Join(t.TempDir(), "nope")})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot ingest")
}

func TestIngestCmd_WithoutEmbedder(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	ingestService = nil

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ingest", t.TempDir()})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding backend")
}
