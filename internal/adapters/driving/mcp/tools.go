package mcp

import (
	"context"
	"errors"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
)

// SearchInput is the input schema for the content search tool.
type SearchInput struct {
	Query        string `json:"query" jsonschema:"what to search for in course content"`
	CourseName   string `json:"course_name,omitempty" jsonschema:"course title to search within (partial matches work)"`
	LessonNumber *int   `json:"lesson_number,omitempty" jsonschema:"specific lesson number to search within"`
	Limit        int    `json:"limit,omitempty" jsonschema:"maximum number of results to return (default 5)"`
}

// SearchOutput is the output schema for the content search tool.
type SearchOutput struct {
	Results []SearchResultOutput `json:"results"`
	Count   int                  `json:"count"`
}

// SearchResultOutput represents a single search result.
type SearchResultOutput struct {
	CourseTitle  string  `json:"course_title"`
	LessonNumber *int    `json:"lesson_number,omitempty"`
	Content      string  `json:"content"`
	Distance     float64 `json:"distance"`
	CourseLink   string  `json:"course_link,omitempty"`
	LessonLink   string  `json:"lesson_link,omitempty"`
}

// OutlineInput is the input schema for the course outline tool.
type OutlineInput struct {
	CourseName string `json:"course_name" jsonschema:"course title to look up (partial matches work)"`
}

// OutlineOutput is the output schema for the course outline tool.
type OutlineOutput struct {
	Title      string         `json:"title"`
	Link       string         `json:"link,omitempty"`
	Instructor string         `json:"instructor,omitempty"`
	Lessons    []LessonOutput `json:"lessons"`
}

// LessonOutput represents one lesson in an outline.
type LessonOutput struct {
	Number *int   `json:"number,omitempty"`
	Title  string `json:"title"`
	Link   string `json:"link,omitempty"`
}

// AskInput is the input schema for the question answering tool.
type AskInput struct {
	Query     string `json:"query" jsonschema:"the question to answer from course materials"`
	SessionID string `json:"session_id,omitempty" jsonschema:"session identifier for follow-up questions"`
}

// AskOutput is the output schema for the question answering tool.
type AskOutput struct {
	Answer    string   `json:"answer"`
	Sources   []string `json:"sources,omitempty"`
	SessionID string   `json:"session_id"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "search_course_content",
		Description: "Search course materials with smart course name matching and lesson filtering",
	}, s.handleSearch)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_course_outline",
		Description: "Get the full outline of a course: title, link and complete lesson list",
	}, s.handleOutline)

	if s.ports.Ask != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "ask_course_question",
			Description: "Answer a question from the course materials with source citations",
		}, s.handleAsk)
	}
}

// handleSearch handles the content search tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.SearchOptions{
		CourseName:   input.CourseName,
		LessonNumber: input.LessonNumber,
		Limit:        input.Limit,
	}

	results, err := s.ports.Search.Search(ctx, input.Query, opts)
	if err != nil {
		if errors.Is(err, domain.ErrCourseNotFound) {
			// An empty result set is more useful to the assistant than
			// a protocol error.
			return nil, SearchOutput{Results: []SearchResultOutput{}}, nil
		}
		return nil, SearchOutput{}, err
	}

	output := SearchOutput{
		Results: make([]SearchResultOutput, len(results)),
		Count:   len(results),
	}
	for i := range results {
		output.Results[i] = SearchResultOutput{
			CourseTitle:  results[i].Chunk.CourseTitle,
			LessonNumber: results[i].Chunk.LessonNumber,
			Content:      results[i].Chunk.Content,
			Distance:     results[i].Distance,
			CourseLink:   results[i].CourseLink,
			LessonLink:   results[i].LessonLink,
		}
	}
	return nil, output, nil
}

// handleOutline handles the course outline tool invocation.
func (s *Server) handleOutline(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input OutlineInput,
) (*mcp.CallToolResult, OutlineOutput, error) {
	course, err := s.ports.Search.Outline(ctx, input.CourseName)
	if err != nil {
		return nil, OutlineOutput{}, err
	}

	output := OutlineOutput{
		Title:      course.Title,
		Link:       course.Link,
		Instructor: course.Instructor,
		Lessons:    make([]LessonOutput, len(course.Lessons)),
	}
	for i, lesson := range course.Lessons {
		output.Lessons[i] = LessonOutput{
			Number: lesson.Number,
			Title:  lesson.Title,
			Link:   lesson.Link,
		}
	}
	return nil, output, nil
}

// handleAsk handles the question answering tool invocation.
func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	answer, err := s.ports.Ask.Ask(ctx, input.Query, input.SessionID)
	if err != nil {
		return nil, AskOutput{}, err
	}

	output := AskOutput{
		Answer:    answer.Text,
		SessionID: answer.SessionID,
	}
	for _, src := range answer.Sources {
		output.Sources = append(output.Sources, src.Label())
	}
	return nil, output, nil
}
