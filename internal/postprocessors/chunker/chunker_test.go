package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	s := New()
	assert.Equal(t, DefaultChunkSize, s.chunkSize)
	assert.Equal(t, DefaultChunkOverlap, s.overlap)
}

func TestNew_OverlapClampedBelowChunkSize(t *testing.T) {
	s := New(WithChunkSize(100), WithOverlap(200))
	assert.Less(t, s.overlap, s.chunkSize)
}

func TestSplit_EmptyInput(t *testing.T) {
	s := New()
	assert.Nil(t, s.Split(""))
	assert.Nil(t, s.Split("   \n\t  "))
}

func TestSplit_SingleSentence(t *testing.T) {
	s := New()
	chunks := s.Split("Go is a statically typed language.")
	require.Len(t, chunks, 1)
	assert.Equal(t, "Go is a statically typed language.", chunks[0])
}

func TestSplit_OversizedSentenceEmittedWhole(t *testing.T) {
	s := New(WithChunkSize(20), WithOverlap(0))
	long := "This single sentence is far longer than the twenty character target size."

	chunks := s.Split(long)

	require.Len(t, chunks, 1)
	// Never truncated, never broken mid-sentence.
	assert.Equal(t, long, chunks[0])
}

func TestSplit_RespectsTargetSize(t *testing.T) {
	s := New(WithChunkSize(60), WithOverlap(0))
	text := "First sentence here. Second sentence here. Third sentence here. Fourth sentence here."

	chunks := s.Split(text)

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 60)
	}
}

func TestSplit_OverlapCarriesTrailingSentences(t *testing.T) {
	s := New(WithChunkSize(50), WithOverlap(20))
	text := "Alpha sentence one. Beta sentence two. Gamma sentence three. Delta sentence four."

	chunks := s.Split(text)
	require.Greater(t, len(chunks), 1)

	// Each window after the first begins with the tail of its predecessor.
	for i := 1; i < len(chunks); i++ {
		first := strings.SplitAfter(chunks[i], ". ")[0]
		first = strings.TrimSpace(first)
		assert.Contains(t, chunks[i-1], first,
			"chunk %d should start with a sentence carried over from chunk %d", i, i-1)
	}
}

func TestSplit_PreservesSentenceOrder(t *testing.T) {
	s := New(WithChunkSize(40), WithOverlap(10))
	sentences := []string{
		"One starts it.",
		"Two follows on.",
		"Three keeps going.",
		"Four wraps up.",
	}
	text := strings.Join(sentences, " ")

	chunks := s.Split(text)
	joined := strings.Join(chunks, " ")

	// Every sentence appears, and first occurrences are in input order.
	last := -1
	for _, sentence := range sentences {
		idx := strings.Index(joined, sentence)
		require.GreaterOrEqual(t, idx, 0, "missing sentence %q", sentence)
		assert.Greater(t, idx, last, "sentence %q out of order", sentence)
		last = idx
	}
}

func TestSplit_Deterministic(t *testing.T) {
	s := New(WithChunkSize(50), WithOverlap(15))
	text := "Repeatable input one. Repeatable input two. Repeatable input three."

	assert.Equal(t, s.Split(text), s.Split(text))
}

func TestSplitSentences_Abbreviations(t *testing.T) {
	tests := []struct {
		name string
		text string
		want int
	}{
		{
			name: "honorific does not end sentence",
			text: "Dr. Smith teaches the course. It covers Go.",
			want: 2,
		},
		{
			name: "e.g. does not end sentence",
			text: "Use concurrency primitives, e.g. channels and goroutines. They compose well.",
			want: 2,
		},
		{
			name: "single letter initial",
			text: "The course by J. Doe is popular. Enrol early.",
			want: 2,
		},
		{
			name: "question and exclamation",
			text: "What is a channel? It moves values! Simple.",
			want: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitSentences(tt.text)
			assert.Len(t, got, tt.want, "sentences: %q", got)
		})
	}
}
