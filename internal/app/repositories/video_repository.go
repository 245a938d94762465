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

var videoColumns = []string{
	"id", "title", "description", "filename", "original_filename", "file_url",
	"file_size", "content_type", "uploader_id", "views", "uploaded_at", "is_active",
}

// PostgresVideoRepository is the PostgreSQL-backed VideoRepository
type PostgresVideoRepository struct {
	db *pgxpool.Pool
}

var _ VideoRepository = (*PostgresVideoRepository)(nil)

// NewPostgresVideoRepository creates a new PostgresVideoRepository
func NewPostgresVideoRepository(db *pgxpool.Pool) *PostgresVideoRepository {
	return &PostgresVideoRepository{db: db}
}

func scanVideo(row pgx.Row) (*models.Video, error) {
	v := &models.Video{}
	var name *string
	err := row.Scan(
		&v.ID, &v.Title, &v.Description, &v.Filename, &v.OriginalFilename, &v.FileURL,
		&v.FileSize, &v.ContentType, &v.UploaderID, &v.Views, &v.UploadedAt, &v.IsActive,
		&name,
	)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrVideoNotFound
		}
		logger.Error().Err(err).Msg("Error scanning video")
		return nil, err
	}
	v.UploaderName = uploaderName(name)
	return v, nil
}

// Create inserts a new video
func (r *PostgresVideoRepository) Create(ctx context.Context, video *models.Video) error {
	if video.ID == "" {
		video.ID = uuid.New().String()
	}
	if video.UploadedAt.IsZero() {
		video.UploadedAt = time.Now().UTC()
	}
	video.IsActive = true

	sql, args, err := squirrel.Insert("videos").
		Columns(videoColumns...).
		Values(video.ID, video.Title, video.Description, video.Filename, video.OriginalFilename, video.FileURL,
			video.FileSize, video.ContentType, video.UploaderID, video.Views, video.UploadedAt, video.IsActive).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create video SQL")
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing create video query")
		return fmt.Errorf("error creating video: %w", err)
	}
	return nil
}

// List returns active videos, newest first
func (r *PostgresVideoRepository) List(ctx context.Context) ([]*models.Video, error) {
	sql, args, err := squirrel.Select(append(prefixColumns("v", videoColumns), "u.name")...).
		From("videos v").
		LeftJoin("users u ON u.id = v.uploader_id").
		Where(squirrel.Eq{"v.is_active": true}).
		OrderBy("v.uploaded_at DESC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing videos")
		return nil, err
	}
	defer rows.Close()

	videos := make([]*models.Video, 0)
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

// IncrementViews bumps the view counter atomically and returns the updated row
func (r *PostgresVideoRepository) IncrementViews(ctx context.Context, id string) (*models.Video, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrVideoNotFound
	}

	query := `
		WITH v AS (
			UPDATE videos SET views = views + 1
			WHERE id = $1 AND is_active
			RETURNING ` + joinColumns(videoColumns) + `
		)
		SELECT ` + joinColumns(prefixColumns("v", videoColumns)) + `, u.name
		FROM v LEFT JOIN users u ON u.id = v.uploader_id`

	return scanVideo(r.db.QueryRow(ctx, query, id))
}
