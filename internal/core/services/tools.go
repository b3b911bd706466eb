package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driven"
	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driving"
	"github.com/coursechat-labs/coursechat-cli/internal/logger"
)

// Tool names offered to the model.
const (
	ToolSearchCourseContent = "search_course_content"
	ToolGetCourseOutline    = "get_course_outline"
)

// Tool is one capability the model can invoke while answering.
// Execute returns the textual result for the model plus the source
// citations the result was built from. Citations are return values,
// never shared state, so concurrent queries cannot see each other's
// sources.
type Tool interface {
	// Definition describes the tool to the model.
	Definition() driven.ToolDefinition

	// Execute runs the tool with the model-supplied arguments.
	Execute(ctx context.Context, args map[string]any) (string, []domain.SourceCitation, error)
}

// ToolRegistry holds the tools offered to the model, in registration
// order.
type ToolRegistry struct {
	tools map[string]Tool
	order []string
}

// NewToolRegistry creates an empty registry.
func NewToolRegistry() *ToolRegistry {
	return &ToolRegistry{tools: make(map[string]Tool)}
}

// Register adds a tool. Registering the same name twice replaces the
// earlier tool.
func (r *ToolRegistry) Register(tool Tool) {
	name := tool.Definition().Name
	if _, exists := r.tools[name]; !exists {
		r.order = append(r.order, name)
	}
	r.tools[name] = tool
}

// Definitions returns the registered tool definitions in registration
// order.
func (r *ToolRegistry) Definitions() []driven.ToolDefinition {
	defs := make([]driven.ToolDefinition, 0, len(r.order))
	for _, name := range r.order {
		defs = append(defs, r.tools[name].Definition())
	}
	return defs
}

// Execute dispatches to the named tool. An unregistered name yields
// domain.ErrUnknownTool.
func (r *ToolRegistry) Execute(ctx context.Context, name string, args map[string]any) (string, []domain.SourceCitation, error) {
	tool, ok := r.tools[name]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", domain.ErrUnknownTool, name)
	}
	return tool.Execute(ctx, args)
}

// Ensure tools implement the interface.
var (
	_ Tool = (*SearchTool)(nil)
	_ Tool = (*OutlineTool)(nil)
)

// SearchTool exposes filtered content retrieval to the model.
type SearchTool struct {
	search driving.SearchService
}

// NewSearchTool creates the content search tool.
func NewSearchTool(search driving.SearchService) *SearchTool {
	return &SearchTool{search: search}
}

// Definition describes the tool to the model.
func (t *SearchTool) Definition() driven.ToolDefinition {
	return driven.ToolDefinition{
		Name:        ToolSearchCourseContent,
		Description: "Search course materials with smart course name matching and lesson filtering",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "What to search for in course content",
				},
				"course_name": map[string]any{
					"type":        "string",
					"description": "Course title (partial matches work, e.g. 'MCP', 'Introduction')",
				},
				"lesson_number": map[string]any{
					"type":        "integer",
					"description": "Specific lesson number to search within (e.g. 1, 2, 3)",
				},
			},
			"required": []string{"query"},
		},
	}
}

// Execute runs a filtered search and formats the hits for the model.
func (t *SearchTool) Execute(ctx context.Context, args map[string]any) (string, []domain.SourceCitation, error) {
	query, _ := args["query"].(string)
	if strings.TrimSpace(query) == "" {
		return "", nil, fmt.Errorf("search tool: query is required")
	}

	opts := domain.SearchOptions{}
	if name, ok := args["course_name"].(string); ok {
		opts.CourseName = name
	}
	if n, ok := toolArgInt(args["lesson_number"]); ok {
		opts.LessonNumber = &n
	}

	results, err := t.search.Search(ctx, query, opts)
	if err != nil {
		// A failed course-name match is an answer for the model, not a
		// failure of the tool call.
		if errors.Is(err, domain.ErrCourseNotFound) {
			return fmt.Sprintf("No course found matching '%s'", opts.CourseName), nil, nil
		}
		return "", nil, err
	}

	if len(results) == 0 {
		return emptySearchMessage(opts), nil, nil
	}

	blocks := make([]string, 0, len(results))
	citations := make([]domain.SourceCitation, 0, len(results))
	for _, res := range results {
		citation := domain.SourceCitation{
			CourseTitle:  res.Chunk.CourseTitle,
			LessonNumber: res.Chunk.LessonNumber,
			Link:         res.LessonLink,
		}
		if citation.Link == "" {
			citation.Link = res.CourseLink
		}
		citations = append(citations, citation)
		blocks = append(blocks, fmt.Sprintf("[%s]\n%s", citation.Label(), res.Chunk.Content))
	}
	return strings.Join(blocks, "\n\n"), citations, nil
}

// emptySearchMessage names the filters so the model can tell the user
// what was searched.
func emptySearchMessage(opts domain.SearchOptions) string {
	var b strings.Builder
	b.WriteString("No relevant content found")
	if opts.CourseName != "" {
		fmt.Fprintf(&b, " in course '%s'", opts.CourseName)
	}
	if opts.LessonNumber != nil {
		fmt.Fprintf(&b, " in lesson %d", *opts.LessonNumber)
	}
	b.WriteString(".")
	return b.String()
}

// OutlineTool exposes course outlines to the model.
type OutlineTool struct {
	search driving.SearchService
}

// NewOutlineTool creates the course outline tool.
func NewOutlineTool(search driving.SearchService) *OutlineTool {
	return &OutlineTool{search: search}
}

// Definition describes the tool to the model.
func (t *OutlineTool) Definition() driven.ToolDefinition {
	return driven.ToolDefinition{
		Name:        ToolGetCourseOutline,
		Description: "Get the full outline of a course: title, link and complete lesson list",
		InputSchema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"course_name": map[string]any{
					"type":        "string",
					"description": "Course title (partial matches work)",
				},
			},
			"required": []string{"course_name"},
		},
	}
}

// Execute resolves the course and formats its outline.
func (t *OutlineTool) Execute(ctx context.Context, args map[string]any) (string, []domain.SourceCitation, error) {
	name, _ := args["course_name"].(string)
	if strings.TrimSpace(name) == "" {
		return "", nil, fmt.Errorf("outline tool: course_name is required")
	}

	course, err := t.search.Outline(ctx, name)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			return fmt.Sprintf("No course found matching '%s'", name), nil, nil
		}
		return "", nil, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s\n", course.Title)
	if course.Link != "" {
		fmt.Fprintf(&b, "Link: %s\n", course.Link)
	}
	if course.Instructor != "" {
		fmt.Fprintf(&b, "Instructor: %s\n", course.Instructor)
	}
	fmt.Fprintf(&b, "Lessons (%d):\n", course.LessonCount())
	for _, lesson := range course.Lessons {
		if lesson.Number != nil {
			fmt.Fprintf(&b, "  %d. %s\n", *lesson.Number, lesson.Title)
		} else if lesson.Title != "" {
			fmt.Fprintf(&b, "  - %s\n", lesson.Title)
		}
	}

	citation := domain.SourceCitation{CourseTitle: course.Title, Link: course.Link}
	return strings.TrimRight(b.String(), "\n"), []domain.SourceCitation{citation}, nil
}

// toolArgInt coerces a JSON-decoded tool argument into an int.
// Numbers arrive as float64 from JSON decoding.
func toolArgInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	default:
		return 0, false
	}
}

// logToolCall records one tool invocation when verbose logging is on.
func logToolCall(name string, args map[string]any) {
	logger.Debug("Tool call: %s args=%v", name, args)
}
