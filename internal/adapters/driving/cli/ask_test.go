package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
)

func TestAskCmd_Use(t *testing.T) {
	assert.Equal(t, "ask [question]", askCmd.Use)
}

func TestAskCmd_RequiresExactlyOneArg(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetErr(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ask"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestAskCmd_PrintsAnswerAndSources(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	askService = &mockAskService{
		answer: &domain.Answer{
			Text: "RAG combines retrieval with generation.",
			Sources: []domain.SourceCitation{
				{CourseTitle: "Building RAG Systems", LessonNumber: intPtr(1), Link: "https://example.com/l1"},
				{CourseTitle: "Building RAG Systems", LessonNumber: intPtr(1), Link: "https://example.com/l1"},
			},
			SessionID: "session-1",
		},
	}

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ask", "What is RAG?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "RAG combines retrieval with generation.")
	assert.Contains(t, out, "Sources:")
	assert.Contains(t, out, "Session: session-1")
	// Duplicate citations collapse to one line.
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("Building RAG Systems - Lesson 1")))
}

func TestAskCmd_PassesSessionFlag(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	mock := &mockAskService{}
	askService = mock

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ask", "--session", "session-7", "And lesson two?"})
	defer func() {
		rootCmd.SetArgs(nil)
		askSession = ""
	}()

	err := rootCmd.Execute()

	require.NoError(t, err)
	assert.Equal(t, "And lesson two?", mock.gotQuery)
	assert.Equal(t, "session-7", mock.gotSession)
}

func TestAskCmd_WithoutLLM(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	askService = nil

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"ask", "What is RAG?"})
	defer func() {
		rootCmd.SetArgs(nil)
	}()

	err := rootCmd.Execute()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}
