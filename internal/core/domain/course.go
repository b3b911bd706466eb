package domain

import (
	"fmt"
	"time"
)

// Course represents one ingested course document.
// The title is the unique key across the corpus: re-ingesting a document
// with the same title replaces the previous version wholesale.
type Course struct {
	// Title is the human-readable course title and the unique corpus key.
	Title string

	// Link is the optional course URL from the source document.
	Link string

	// Instructor is the optional course instructor name.
	Instructor string

	// Lessons are the ordered lessons parsed from the document.
	Lessons []Lesson

	// Embedding is the vector representation of the title, used for
	// fuzzy course-name resolution. Set during ingestion.
	Embedding []float32

	// CreatedAt is when the course was first ingested.
	CreatedAt time.Time

	// UpdatedAt is when the course was last re-ingested.
	UpdatedAt time.Time
}

// Lesson is one titled section of a course document.
type Lesson struct {
	// Number is the lesson number from the document marker.
	// It is nil for the implicit preamble lesson of documents
	// without recognisable lesson markers.
	Number *int

	// Title is the lesson title. Empty for implicit lessons.
	Title string

	// Link is the optional lesson URL.
	Link string
}

// LessonCount returns the number of lessons in the course.
func (c *Course) LessonCount() int {
	return len(c.Lessons)
}

// FindLesson returns the lesson with the given number, or nil.
func (c *Course) FindLesson(number int) *Lesson {
	for i := range c.Lessons {
		if c.Lessons[i].Number != nil && *c.Lessons[i].Number == number {
			return &c.Lessons[i]
		}
	}
	return nil
}

// CourseChunk is the atomic retrievable unit of course content.
// Chunks are immutable once created; re-ingesting a course replaces
// its chunks rather than mutating them.
type CourseChunk struct {
	// CourseTitle is the owning course's title.
	CourseTitle string

	// LessonNumber is the lesson the chunk was cut from.
	// Nil for content outside any numbered lesson.
	LessonNumber *int

	// Index is the sequential chunk position within the course.
	Index int

	// Content is the chunk text, prefixed with its context label
	// so retrieval results are self-describing out of context.
	Content string

	// Embedding is the vector representation for semantic search.
	Embedding []float32
}

// ID returns the stable composite identifier of the chunk, derived from
// (course title, lesson number, sequential index). Identifiers are unique
// within a course and survive re-embedding unchanged.
func (c *CourseChunk) ID() string {
	return ChunkID(c.CourseTitle, c.LessonNumber, c.Index)
}

// ChunkID builds a chunk identifier from its components.
// A nil lesson number is encoded as "-" so preamble chunks cannot
// collide with lesson 0.
func ChunkID(courseTitle string, lessonNumber *int, index int) string {
	lesson := "-"
	if lessonNumber != nil {
		lesson = fmt.Sprintf("%d", *lessonNumber)
	}
	return fmt.Sprintf("%s::%s::%d", courseTitle, lesson, index)
}

// CourseAnalytics summarises the ingested corpus for display.
type CourseAnalytics struct {
	// TotalCourses is the number of distinct course titles.
	TotalCourses int

	// CourseTitles lists every ingested title.
	CourseTitles []string
}
