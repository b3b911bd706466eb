package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/coursechat-labs/coursechat-cli/internal/adapters/driving/watcher"
)

var (
	ingestForce bool
	ingestWatch bool
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Ingest course documents",
	Long: `Ingest a course document or a folder of documents.

Without a path, the configured docs folder is ingested. Documents whose
course title is already indexed are skipped unless --force is given.
With --watch, the folder is monitored and changed documents are
re-ingested until interrupted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestForce, "force", "f", false, "re-ingest already-indexed courses")
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "keep watching the folder for changes")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingestion requires an embedding backend (set OPENAI_API_KEY or configure ollama)")
	}

	path := settings.DocsDir
	if len(args) > 0 {
		path = args[0]
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot ingest %s: %w", path, err)
	}

	if !info.IsDir() {
		course, chunks, err := ingestService.IngestFile(cmd.Context(), path)
		if err != nil {
			return err
		}
		cmd.Printf("Ingested %q: %d lessons, %d chunks\n", course.Title, course.LessonCount(), chunks)
		return nil
	}

	report, err := ingestService.IngestFolder(cmd.Context(), path, ingestForce)
	if err != nil {
		return err
	}

	cmd.Printf("Courses added:  %d\n", report.CoursesAdded)
	cmd.Printf("Chunks added:   %d\n", report.ChunksAdded)
	cmd.Printf("Skipped:        %d\n", report.Skipped)
	if len(report.Failed) > 0 {
		cmd.Printf("Failed:         %d\n", len(report.Failed))
		paths := make([]string, 0, len(report.Failed))
		for p := range report.Failed {
			paths = append(paths, p)
		}
		sort.Strings(paths)
		for _, p := range paths {
			cmd.Printf("  %s: %s\n", filepath.Base(p), report.Failed[p])
		}
	}

	if !ingestWatch {
		return nil
	}

	w, err := watcher.New(ingestService, path, 0)
	if err != nil {
		return err
	}
	cmd.Printf("Watching %s (ctrl-c to stop)\n", path)
	err = w.Run(cmd.Context())
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
