// Package sqlite provides a SQLite-backed course store.
//
// The stored set of course titles is the restart-safe record of what
// has been ingested, which makes folder re-ingestion idempotent across
// process restarts.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"sort"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/coursechat-labs/coursechat-cli/internal/adapters/driven/storage/sqlite/migrations"
	"github.com/coursechat-labs/coursechat-cli/internal/core/domain"
	"github.com/coursechat-labs/coursechat-cli/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.CourseStore = (*Store)(nil)

// Store is a SQLite-based implementation of driven.CourseStore.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore creates a SQLite store in the given data directory.
// If dataDir is empty, defaults to ~/.coursechat/data/courses.db.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".coursechat", "data")
	}

	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "courses.db")

	// WAL mode for better concurrency between ingest and search.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &Store{db: db, path: dbPath}

	if err := s.migrate(migrations.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// migrate applies every embedded migration in filename order.
func (s *Store) migrate(fsys fs.FS) error {
	entries, err := fs.Glob(fsys, "*.sql")
	if err != nil {
		return fmt.Errorf("listing migrations: %w", err)
	}
	sort.Strings(entries)

	for _, name := range entries {
		script, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading migration %s: %w", name, err)
		}
		if _, err := s.db.Exec(string(script)); err != nil {
			return fmt.Errorf("applying migration %s: %w", name, err)
		}
	}
	return nil
}

// SaveCourse stores or updates a course and its lesson list.
func (s *Store) SaveCourse(ctx context.Context, course *domain.Course) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx, `
		INSERT INTO courses (title, link, instructor, embedding, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			link = excluded.link,
			instructor = excluded.instructor,
			embedding = excluded.embedding,
			updated_at = excluded.updated_at
	`, course.Title, course.Link, course.Instructor,
		float32SliceToBytes(course.Embedding), course.CreatedAt, course.UpdatedAt)
	if err != nil {
		return fmt.Errorf("saving course: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM lessons WHERE course_title = ?", course.Title); err != nil {
		return fmt.Errorf("clearing lessons: %w", err)
	}

	for i, lesson := range course.Lessons {
		var number sql.NullInt64
		if lesson.Number != nil {
			number = sql.NullInt64{Int64: int64(*lesson.Number), Valid: true}
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO lessons (course_title, position, number, title, link)
			VALUES (?, ?, ?, ?, ?)
		`, course.Title, i, number, lesson.Title, lesson.Link); err != nil {
			return fmt.Errorf("saving lesson: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// SaveChunks stores chunks for a course, replacing the course's
// previous chunks. Replacement happens in one transaction so a shorter
// re-ingested version leaves no rows from the old version behind.
func (s *Store) SaveChunks(ctx context.Context, chunks []domain.CourseChunk) error {
	if len(chunks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM chunks WHERE course_title = ?", chunks[0].CourseTitle); err != nil {
		return fmt.Errorf("clearing chunks: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO chunks (id, course_title, lesson_number, position, content, embedding)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer stmt.Close()

	for _, chunk := range chunks {
		var lesson sql.NullInt64
		if chunk.LessonNumber != nil {
			lesson = sql.NullInt64{Int64: int64(*chunk.LessonNumber), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, chunk.ID(), chunk.CourseTitle,
			lesson, chunk.Index, chunk.Content, float32SliceToBytes(chunk.Embedding)); err != nil {
			return fmt.Errorf("saving chunk: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetCourse retrieves a course by exact title.
func (s *Store) GetCourse(ctx context.Context, title string) (*domain.Course, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT title, link, instructor, embedding, created_at, updated_at
		FROM courses WHERE title = ?
	`, title)

	var (
		course domain.Course
		blob   []byte
	)
	if err := row.Scan(&course.Title, &course.Link, &course.Instructor,
		&blob, &course.CreatedAt, &course.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning course: %w", err)
	}
	course.Embedding = bytesToFloat32Slice(blob)

	rows, err := s.db.QueryContext(ctx, `
		SELECT number, title, link FROM lessons
		WHERE course_title = ? ORDER BY position
	`, title)
	if err != nil {
		return nil, fmt.Errorf("querying lessons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			number sql.NullInt64
			lesson domain.Lesson
		)
		if err := rows.Scan(&number, &lesson.Title, &lesson.Link); err != nil {
			return nil, fmt.Errorf("scanning lesson: %w", err)
		}
		if number.Valid {
			n := int(number.Int64)
			lesson.Number = &n
		}
		course.Lessons = append(course.Lessons, lesson)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating lessons: %w", err)
	}

	return &course, nil
}

// GetChunk retrieves a specific chunk by ID.
func (s *Store) GetChunk(ctx context.Context, id string) (*domain.CourseChunk, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT course_title, lesson_number, position, content, embedding
		FROM chunks WHERE id = ?
	`, id)

	chunk, err := scanChunk(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return chunk, nil
}

// GetChunks retrieves all chunks for a course in index order.
func (s *Store) GetChunks(ctx context.Context, courseTitle string) ([]domain.CourseChunk, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT course_title, lesson_number, position, content, embedding
		FROM chunks WHERE course_title = ? ORDER BY position
	`, courseTitle)
	if err != nil {
		return nil, fmt.Errorf("querying chunks: %w", err)
	}
	defer rows.Close()

	var chunks []domain.CourseChunk //nolint:prealloc // size unknown from query
	for rows.Next() {
		chunk, err := scanChunk(rows)
		if err != nil {
			return nil, err
		}
		chunks = append(chunks, *chunk)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating chunks: %w", err)
	}

	return chunks, nil
}

// DeleteCourse removes a course; lessons and chunks cascade.
func (s *Store) DeleteCourse(ctx context.Context, title string) error {
	if _, err := s.db.ExecContext(ctx,
		"DELETE FROM courses WHERE title = ?", title); err != nil {
		return fmt.Errorf("deleting course: %w", err)
	}
	return nil
}

// ListCourseTitles returns every ingested course title.
func (s *Store) ListCourseTitles(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT title FROM courses ORDER BY title")
	if err != nil {
		return nil, fmt.Errorf("querying titles: %w", err)
	}
	defer rows.Close()

	var titles []string //nolint:prealloc // size unknown from query
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("scanning title: %w", err)
		}
		titles = append(titles, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating titles: %w", err)
	}

	return titles, nil
}

// CountCourses returns the number of ingested courses.
func (s *Store) CountCourses(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM courses").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting courses: %w", err)
	}
	return count, nil
}

// scanner abstracts *sql.Row and *sql.Rows for chunk scanning.
type scanner interface {
	Scan(dest ...any) error
}

func scanChunk(row scanner) (*domain.CourseChunk, error) {
	var (
		chunk  domain.CourseChunk
		lesson sql.NullInt64
		blob   []byte
	)
	if err := row.Scan(&chunk.CourseTitle, &lesson, &chunk.Index,
		&chunk.Content, &blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning chunk: %w", err)
	}
	if lesson.Valid {
		n := int(lesson.Int64)
		chunk.LessonNumber = &n
	}
	chunk.Embedding = bytesToFloat32Slice(blob)
	return &chunk, nil
}

// float32SliceToBytes encodes an embedding as little-endian bytes.
func float32SliceToBytes(vec []float32) []byte {
	if len(vec) == 0 {
		return nil
	}
	out := make([]byte, len(vec)*4)
	for i, v := range vec {
		binary.LittleEndian.PutUint32(out[i*4:], math.Float32bits(v))
	}
	return out
}

// bytesToFloat32Slice decodes a little-endian embedding blob.
func bytesToFloat32Slice(data []byte) []float32 {
	if len(data) < 4 {
		return nil
	}
	out := make([]float32, len(data)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return out
}
