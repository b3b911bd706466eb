package coursedoc

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
	"github.com/coursechat-labs/coursechat-cli/internal/postprocessors/chunker"
)

// Header prefixes recognised in the first lines of a document.
const (
	titlePrefix      = "Course Title:"
	linkPrefix       = "Course Link:"
	instructorPrefix = "Course Instructor:"
	lessonLinkPrefix = "Lesson Link:"
)

// lessonMarker matches lines like "Lesson 3: Advanced Topics".
var lessonMarker = regexp.MustCompile(`^Lesson\s+(\d+)\s*:\s*(.*)$`)

// Parser turns raw course text into a Course and its content chunks.
type Parser struct {
	splitter *chunker.Splitter
}

// New creates a parser that chunks lesson bodies with the given splitter.
func New(splitter *chunker.Splitter) *Parser {
	return &Parser{splitter: splitter}
}

// Parse extracts the course structure and content chunks from raw text.
// The error wraps domain.ErrMalformedDocument when the title header is
// missing.
func (p *Parser) Parse(raw string) (*domain.Course, []domain.CourseChunk, error) {
	lines := strings.Split(raw, "\n")

	course, bodyStart, err := parseHeader(lines)
	if err != nil {
		return nil, nil, err
	}

	sections := splitLessons(lines[bodyStart:])

	var chunks []domain.CourseChunk
	index := 0
	for _, section := range sections {
		course.Lessons = append(course.Lessons, section.lesson)

		for _, piece := range p.splitter.Split(section.body) {
			chunks = append(chunks, domain.CourseChunk{
				CourseTitle:  course.Title,
				LessonNumber: section.lesson.Number,
				Index:        index,
				Content:      contextLabel(course.Title, section.lesson) + piece,
			})
			index++
		}
	}

	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now

	return course, chunks, nil
}

// contextLabel prefixes chunk text so retrieval results stay
// self-describing out of context.
func contextLabel(courseTitle string, lesson domain.Lesson) string {
	if lesson.Number != nil {
		return fmt.Sprintf("Course %s Lesson %d content: ", courseTitle, *lesson.Number)
	}
	return fmt.Sprintf("Course %s content: ", courseTitle)
}

// parseHeader reads the title, link and instructor lines and returns
// the index of the first body line.
func parseHeader(lines []string) (*domain.Course, int, error) {
	course := &domain.Course{}
	i := 0

	for ; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		switch {
		case line == "" && course.Title == "":
			continue
		case strings.HasPrefix(line, titlePrefix):
			course.Title = strings.TrimSpace(strings.TrimPrefix(line, titlePrefix))
		case strings.HasPrefix(line, linkPrefix):
			course.Link = strings.TrimSpace(strings.TrimPrefix(line, linkPrefix))
		case strings.HasPrefix(line, instructorPrefix):
			course.Instructor = strings.TrimSpace(strings.TrimPrefix(line, instructorPrefix))
		default:
			// First non-header line starts the body.
			if course.Title == "" {
				return nil, 0, fmt.Errorf("missing %q header: %w", titlePrefix, domain.ErrMalformedDocument)
			}
			return course, i, nil
		}
	}

	if course.Title == "" {
		return nil, 0, fmt.Errorf("missing %q header: %w", titlePrefix, domain.ErrMalformedDocument)
	}
	return course, i, nil
}

// section is one lesson marker with its accumulated body text.
type section struct {
	lesson domain.Lesson
	body   string
}

// splitLessons groups body lines into lesson sections. Lines before the
// first marker, or an entire body without markers, form one implicit
// unnumbered lesson.
func splitLessons(lines []string) []section {
	var (
		sections []section
		current  *section
		body     []string
	)

	flush := func() {
		if current == nil {
			return
		}
		current.body = strings.TrimSpace(strings.Join(body, "\n"))
		if current.body != "" || current.lesson.Number != nil {
			sections = append(sections, *current)
		}
		body = nil
	}

	for _, rawLine := range lines {
		line := strings.TrimSpace(rawLine)

		if m := lessonMarker.FindStringSubmatch(line); m != nil {
			flush()
			number, _ := strconv.Atoi(m[1])
			current = &section{lesson: domain.Lesson{Number: &number, Title: strings.TrimSpace(m[2])}}
			continue
		}

		if current != nil && current.lesson.Link == "" && len(body) == 0 &&
			strings.HasPrefix(line, lessonLinkPrefix) {
			current.lesson.Link = strings.TrimSpace(strings.TrimPrefix(line, lessonLinkPrefix))
			continue
		}

		if current == nil {
			if line == "" {
				continue
			}
			// Body content before any marker: implicit lesson.
			current = &section{}
		}
		body = append(body, rawLine)
	}
	flush()

	return sections
}
