package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics about the ingested courses",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	if searchService == nil {
		return errServicesUnavailable
	}

	analytics, err := searchService.Analytics(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to load course analytics: %w", err)
	}

	cmd.Printf("Courses: %d\n", analytics.TotalCourses)
	for _, title := range analytics.CourseTitles {
		cmd.Printf("  - %s\n", title)
	}
	return nil
}
