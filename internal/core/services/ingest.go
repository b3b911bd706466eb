package services

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driven"
	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driving"
	"github.com/coursechat-labs/coursechat-cli/internal/logger"
	"github.com/coursechat-labs/coursechat-cli/internal/normalisers/coursedoc"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// ingestExtensions are the document types scanned during folder ingest.
var ingestExtensions = map[string]bool{
	".txt": true,
	".md":  true,
}

// IngestService parses course documents and indexes their chunks.
// Re-ingesting a title replaces the previous version wholesale; the
// old version stays searchable until the replacement is fully indexed.
type IngestService struct {
	parser       *coursedoc.Parser
	embedder     driven.EmbeddingService
	courseStore  driven.CourseStore
	catalogIndex driven.VectorIndex
	contentIndex driven.VectorIndex

	// mu serialises upserts per course title so concurrent re-ingests
	// of the same course cannot interleave delete and add.
	mu     sync.Mutex
	titles map[string]*sync.Mutex
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	parser *coursedoc.Parser,
	embedder driven.EmbeddingService,
	courseStore driven.CourseStore,
	catalogIndex driven.VectorIndex,
	contentIndex driven.VectorIndex,
) *IngestService {
	return &IngestService{
		parser:       parser,
		embedder:     embedder,
		courseStore:  courseStore,
		catalogIndex: catalogIndex,
		contentIndex: contentIndex,
		titles:       make(map[string]*sync.Mutex),
	}
}

// IngestFile parses and indexes one course document.
func (s *IngestService) IngestFile(ctx context.Context, path string) (*domain.Course, int, error) {
	logger.Section("Ingest File")
	logger.Debug("Path: %s", path)

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read document: %w", err)
	}

	course, chunks, err := s.parser.Parse(string(raw))
	if err != nil {
		return nil, 0, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}
	logger.Info("Parsed %q: %d lessons, %d chunks", course.Title, len(course.Lessons), len(chunks))

	if err := s.upsert(ctx, course, chunks); err != nil {
		return nil, 0, err
	}
	return course, len(chunks), nil
}

// upsert embeds and indexes a parsed course, replacing any previous
// version of the same title. Embedding happens before any deletion so
// an embedding failure leaves the old version intact.
func (s *IngestService) upsert(ctx context.Context, course *domain.Course, chunks []domain.CourseChunk) error {
	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].Content
	}
	embeddings, err := s.embedder.EmbedBatch(ctx, texts)
	if err != nil {
		return fmt.Errorf("embed chunks: %w", err)
	}
	if len(embeddings) != len(chunks) {
		return fmt.Errorf("embed chunks: expected %d embeddings, got %d", len(chunks), len(embeddings))
	}
	for i := range chunks {
		chunks[i].Embedding = embeddings[i]
	}

	titleVec, err := s.embedder.Embed(ctx, course.Title)
	if err != nil {
		return fmt.Errorf("embed course title: %w", err)
	}
	course.Embedding = titleVec

	unlock := s.lockTitle(course.Title)
	defer unlock()

	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now
	if existing, err := s.courseStore.GetCourse(ctx, course.Title); err == nil {
		course.CreatedAt = existing.CreatedAt
	}

	// From here on a failure can leave the store and index disagreeing,
	// so it is reported as an inconsistency. Re-running the ingest
	// repairs it: every step is an idempotent replace.
	if err := s.courseStore.SaveCourse(ctx, course); err != nil {
		return fmt.Errorf("save course: %w", err)
	}
	if err := s.courseStore.SaveChunks(ctx, chunks); err != nil {
		return fmt.Errorf("save chunks: %w", err)
	}

	entries := make([]driven.VectorEntry, len(chunks))
	for i := range chunks {
		entries[i] = driven.VectorEntry{
			ID:           chunks[i].ID(),
			Embedding:    chunks[i].Embedding,
			CourseTitle:  chunks[i].CourseTitle,
			LessonNumber: chunks[i].LessonNumber,
		}
	}
	// Atomic swap: a concurrent search never sees the course with
	// zero chunks mid-replace.
	if err := s.contentIndex.Replace(ctx, course.Title, entries); err != nil {
		return fmt.Errorf("%w: index chunk vectors for %q: %v", domain.ErrIndexInconsistency, course.Title, err)
	}

	catalogEntry := driven.VectorEntry{
		ID:          course.Title,
		Embedding:   course.Embedding,
		CourseTitle: course.Title,
	}
	if err := s.catalogIndex.Add(ctx, []driven.VectorEntry{catalogEntry}); err != nil {
		return fmt.Errorf("%w: index catalog entry for %q: %v", domain.ErrIndexInconsistency, course.Title, err)
	}

	logger.Info("Indexed %q (%d chunks)", course.Title, len(chunks))
	return nil
}

// IngestFolder ingests every recognised document in the folder.
func (s *IngestService) IngestFolder(ctx context.Context, dir string, force bool) (*driving.IngestReport, error) {
	logger.Section("Ingest Folder")
	logger.Debug("Dir: %s force=%t", dir, force)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read folder: %w", err)
	}

	existing := make(map[string]bool)
	if !force {
		titles, err := s.courseStore.ListCourseTitles(ctx)
		if err != nil {
			return nil, fmt.Errorf("list ingested titles: %w", err)
		}
		for _, t := range titles {
			existing[t] = true
		}
	}

	report := &driving.IngestReport{Failed: make(map[string]string)}

	for _, entry := range entries {
		if entry.IsDir() || !ingestExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		path := filepath.Join(dir, entry.Name())

		if err := ctx.Err(); err != nil {
			return report, err
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			report.Failed[path] = err.Error()
			continue
		}
		course, chunks, err := s.parser.Parse(string(raw))
		if err != nil {
			logger.Warn("Skipping %s: %v", entry.Name(), err)
			report.Failed[path] = err.Error()
			continue
		}

		if !force && existing[course.Title] {
			logger.Debug("Skipping already-ingested %q", course.Title)
			report.Skipped++
			continue
		}

		if err := s.upsert(ctx, course, chunks); err != nil {
			// Ingestion failures are recorded per document; one bad
			// document never aborts the batch.
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return report, err
			}
			logger.Warn("Failed to ingest %s: %v", entry.Name(), err)
			report.Failed[path] = err.Error()
			continue
		}

		existing[course.Title] = true
		report.CoursesAdded++
		report.ChunksAdded += len(chunks)
	}

	logger.Info("Folder ingest done: %d courses, %d chunks, %d skipped, %d failed",
		report.CoursesAdded, report.ChunksAdded, report.Skipped, len(report.Failed))
	return report, nil
}

func (s *IngestService) lockTitle(title string) func() {
	s.mu.Lock()
	m, ok := s.titles[title]
	if !ok {
		m = &sync.Mutex{}
		s.titles[title] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}
