package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/edutube/internal/app/models"
	"github.com/yigit/edutube/internal/pkg/apperrors"
	"github.com/yigit/edutube/internal/pkg/dberrors"
	"github.com/yigit/edutube/internal/pkg/logger"
)

var noteColumns = []string{
	"id", "title", "description", "filename", "original_filename", "file_url",
	"file_size", "content_type", "uploader_id", "downloads", "uploaded_at", "is_active",
}

// PostgresNoteRepository is the PostgreSQL-backed NoteRepository
type PostgresNoteRepository struct {
	db *pgxpool.Pool
}

var _ NoteRepository = (*PostgresNoteRepository)(nil)

// NewPostgresNoteRepository creates a new PostgresNoteRepository
func NewPostgresNoteRepository(db *pgxpool.Pool) *PostgresNoteRepository {
	return &PostgresNoteRepository{db: db}
}

func scanNote(row pgx.Row) (*models.Note, error) {
	n := &models.Note{}
	var name *string
	err := row.Scan(
		&n.ID, &n.Title, &n.Description, &n.Filename, &n.OriginalFilename, &n.FileURL,
		&n.FileSize, &n.ContentType, &n.UploaderID, &n.Downloads, &n.UploadedAt, &n.IsActive,
		&name,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrNoteNotFound
		}
		logger.Error().Err(err).Msg("Error scanning note")
		return nil, err
	}
	n.UploaderName = uploaderName(name)
	return n, nil
}

// Create inserts a new note
func (r *PostgresNoteRepository) Create(ctx context.Context, note *models.Note) error {
	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.UploadedAt.IsZero() {
		note.UploadedAt = time.Now().UTC()
	}
	note.IsActive = true

	sql, args, err := squirrel.Insert("notes").
		Columns(noteColumns...).
		Values(note.ID, note.Title, note.Description, note.Filename, note.OriginalFilename, note.FileURL,
			note.FileSize, note.ContentType, note.UploaderID, note.Downloads, note.UploadedAt, note.IsActive).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create note SQL")
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing create note query")
		return fmt.Errorf("error creating note: %w", err)
	}
	return nil
}

// List returns active notes, newest first
func (r *PostgresNoteRepository) List(ctx context.Context) ([]*models.Note, error) {
	sql, args, err := squirrel.Select(append(prefixColumns("n", noteColumns), "u.name")...).
		From("notes n").
		LeftJoin("users u ON u.id = n.uploader_id").
		Where(squirrel.Eq{"n.is_active": true}).
		OrderBy("n.uploaded_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing notes")
		return nil, err
	}
	defer rows.Close()

	notes := make([]*models.Note, 0)
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// IncrementDownloads bumps the download counter atomically and returns the updated row
func (r *PostgresNoteRepository) IncrementDownloads(ctx context.Context, id string) (*models.Note, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrNoteNotFound
	}

	query := `
		WITH n AS (
			UPDATE notes SET downloads = downloads + 1
			WHERE id = $1 AND is_active
			RETURNING ` + joinColumns(noteColumns) + `
		)
		SELECT ` + joinColumns(prefixColumns("n", noteColumns)) + `, u.name
		FROM n LEFT JOIN users u ON u.id = n.uploader_id`

	return scanNote(r.db.QueryRow(ctx, query, id))
}
