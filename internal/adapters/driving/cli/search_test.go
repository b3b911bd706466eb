package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
)

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_Short(t *testing.T) {
	assert.Equal(t, "Search course content directly", searchCmd.Short)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasFilterFlags(t *testing.T) {
	course := searchCmd.Flags().Lookup("course")
	require.NotNil(t, course)
	assert.Equal(t, "c", course.Shorthand)

	lesson := searchCmd.Flags().Lookup("lesson")
	require.NotNil(t, lesson)
	assert.Equal(t, "l", lesson.Shorthand)

	limit := searchCmd.Flags().Lookup("limit")
	require.NotNil(t, limit)
	assert.Equal(t, "n", limit.Shorthand)
}

func TestSearchCmd_PrintsResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "what is RAG"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Building RAG Systems - Lesson 1")
	assert.Contains(t, buf.String(), "Retrieval augmented generation")
	assert.Contains(t, buf.String(), "https://example.com/rag/lesson-1")
}

func TestSearchCmd_PassesFilters(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := &mockSearchService{}
	searchService = mock

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--course", "RAG", "--lesson", "2", "-n", "3", "embeddings"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchCourse = ""
		searchLesson = 0
		searchLimit = 0
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "embeddings", mock.gotQuery)
	assert.Equal(t, "RAG", mock.gotOpts.CourseName)
	require.NotNil(t, mock.gotOpts.LessonNumber)
	assert.Equal(t, 2, *mock.gotOpts.LessonNumber)
	assert.Equal(t, 3, mock.gotOpts.Limit)
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--json", "what is RAG"})
	defer func() {
		rootCmd.SetArgs(nil)
		searchJSON = false
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\"CourseTitle\"")
	assert.Contains(t, buf.String(), "\"Building RAG Systems\"")
}

func TestSearchCmd_NoResults(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	searchService = &mockSearchService{results: []domain.SearchResult{}}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "quantum knitting"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Contains(t, buf.String(), "No results found.")
}

func TestSearchCmd_WithoutEmbedder(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	searchService = nil

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"search", "anything"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "embedding backend")
}
