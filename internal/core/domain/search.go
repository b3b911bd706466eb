package domain

import "fmt"

// DefaultMaxResults is the default maximum number of search hits.
const DefaultMaxResults = 5

// SearchOptions configures a retrieval query.
type SearchOptions struct {
	// CourseName optionally restricts the search to one course.
	// It is a fuzzy hint resolved against the catalog before searching;
	// failed resolution is an error, never a silent unfiltered search.
	CourseName string

	// LessonNumber optionally restricts the search to one lesson.
	LessonNumber *int

	// Limit is the maximum number of results (default 5).
	Limit int
}

// SearchResult represents a single retrieval hit.
type SearchResult struct {
	// Chunk is the matched content unit.
	Chunk CourseChunk

	// Distance is the embedding-space distance to the query.
	// Results are ordered by non-decreasing distance.
	Distance float64

	// CourseLink is the owning course's URL, when known.
	CourseLink string

	// LessonLink is the matched lesson's URL, when known.
	LessonLink string
}

// SourceCitation is a transient provenance record for one retrieval hit,
// surfaced to the end user alongside the answer. Citations are produced
// fresh on every search invocation and never accumulated across queries.
type SourceCitation struct {
	// CourseTitle is the cited course.
	CourseTitle string

	// LessonNumber is the cited lesson, when known.
	LessonNumber *int

	// Link is the course or lesson URL, when known.
	Link string
}

// Label returns the display label for the citation,
// e.g. "Intro to Go - Lesson 2" or just the course title.
func (s SourceCitation) Label() string {
	if s.LessonNumber != nil {
		return fmt.Sprintf("%s - Lesson %d", s.CourseTitle, *s.LessonNumber)
	}
	return s.CourseTitle
}

// Answer is the outcome of one orchestrated query.
type Answer struct {
	// Text is the final answer produced by the model.
	Text string

	// Sources are the citations from tool executions during this
	// query, in ranked order. Empty when no tool was called.
	Sources []SourceCitation

	// SessionID identifies the conversation the exchange was
	// appended to. Set even when the caller supplied no session.
	SessionID string
}
