package coursedoc

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
	"github.com/coursechat-labs/coursechat-cli/internal/postprocessors/chunker"
)

const sampleDoc = `Course Title: Intro to Go
Course Link: https://example.com/go
Course Instructor: Rob Example

Lesson 0: Welcome
Lesson Link: https://example.com/go/lesson-0
Welcome to the course. This lesson introduces the tooling.

Lesson 1: Basics
Variables are declared with var. Constants use const. Functions return values.
`

func newParser() *Parser {
	return New(chunker.New(chunker.WithChunkSize(200), chunker.WithOverlap(0)))
}

func TestParse_Header(t *testing.T) {
	course, _, err := newParser().Parse(sampleDoc)
	require.NoError(t, err)

	assert.Equal(t, "Intro to Go", course.Title)
	assert.Equal(t, "https://example.com/go", course.Link)
	assert.Equal(t, "Rob Example", course.Instructor)
	require.Len(t, course.Lessons, 2)

	require.NotNil(t, course.Lessons[0].Number)
	assert.Equal(t, 0, *course.Lessons[0].Number)
	assert.Equal(t, "Welcome", course.Lessons[0].Title)
	assert.Equal(t, "https://example.com/go/lesson-0", course.Lessons[0].Link)

	require.NotNil(t, course.Lessons[1].Number)
	assert.Equal(t, 1, *course.Lessons[1].Number)
	assert.Equal(t, "Basics", course.Lessons[1].Title)
	assert.Empty(t, course.Lessons[1].Link)
}

func TestParse_ChunksCarryContextLabel(t *testing.T) {
	_, chunks, err := newParser().Parse(sampleDoc)
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for _, c := range chunks {
		assert.Equal(t, "Intro to Go", c.CourseTitle)
		require.NotNil(t, c.LessonNumber)
		assert.True(t, strings.HasPrefix(c.Content,
			"Course Intro to Go Lesson "), "content %q lacks context label", c.Content)
	}
}

func TestParse_ChunkIndicesSequential(t *testing.T) {
	_, chunks, err := newParser().Parse(sampleDoc)
	require.NoError(t, err)

	seen := make(map[string]struct{}, len(chunks))
	for i, c := range chunks {
		assert.Equal(t, i, c.Index)
		_, dup := seen[c.ID()]
		assert.False(t, dup, "duplicate chunk ID %s", c.ID())
		seen[c.ID()] = struct{}{}
	}
}

func TestParse_MissingTitle(t *testing.T) {
	_, _, err := newParser().Parse("Just some text without any header.\nMore text.")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMalformedDocument)
}

func TestParse_NoLessonMarkers(t *testing.T) {
	doc := "Course Title: Plain Notes\n\nThis document has a body. It has no lesson markers at all."

	course, chunks, err := newParser().Parse(doc)
	require.NoError(t, err)

	require.Len(t, course.Lessons, 1)
	assert.Nil(t, course.Lessons[0].Number)

	require.NotEmpty(t, chunks)
	assert.Nil(t, chunks[0].LessonNumber)
	assert.True(t, strings.HasPrefix(chunks[0].Content, "Course Plain Notes content: "))
}

func TestParse_Deterministic(t *testing.T) {
	p := newParser()
	_, first, err := p.Parse(sampleDoc)
	require.NoError(t, err)
	_, second, err := p.Parse(sampleDoc)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID(), second[i].ID())
		assert.Equal(t, first[i].Content, second[i].Content)
	}
}
