package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
)

var (
	searchCourse string
	searchLesson int
	searchLimit  int
	searchJSON   bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search course content directly",
	Long: `Performs semantic search over the ingested course content without
going through the assistant.

The --course filter accepts partial titles; it is resolved against the
course catalog before searching.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringVarP(&searchCourse, "course", "c", "", "restrict to one course (partial title)")
	searchCmd.Flags().IntVarP(&searchLesson, "lesson", "l", 0, "restrict to one lesson number")
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 0, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errServicesUnavailable
	}

	opts := domain.SearchOptions{
		CourseName: searchCourse,
		Limit:      searchLimit,
	}
	if searchLesson > 0 {
		opts.LessonNumber = &searchLesson
	}

	results, err := searchService.Search(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal results: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	for i, res := range results {
		label := res.Chunk.CourseTitle
		if res.Chunk.LessonNumber != nil {
			label = fmt.Sprintf("%s - Lesson %d", label, *res.Chunk.LessonNumber)
		}
		cmd.Printf("[%d] %s (%.3f)\n", i+1, label, res.Distance)
		if res.LessonLink != "" {
			cmd.Printf("    %s\n", res.LessonLink)
		}
		cmd.Printf("    %s\n", res.Chunk.Content)
		cmd.Println()
	}
	return nil
}
