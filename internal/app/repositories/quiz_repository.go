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

var quizColumns = []string{"id", "title", "description", "questions", "time_limit", "creator_id", "created_at", "is_active"}

// PostgresQuizRepository is the PostgreSQL-backed QuizRepository.
// Questions are stored as a JSONB array.
type PostgresQuizRepository struct {
	db *pgxpool.Pool
}

var _ QuizRepository = (*PostgresQuizRepository)(nil)

// NewPostgresQuizRepository creates a new PostgresQuizRepository
func NewPostgresQuizRepository(db *pgxpool.Pool) *PostgresQuizRepository {
	return &PostgresQuizRepository{db: db}
}

func (r *PostgresQuizRepository) selectQuery() squirrel.SelectBuilder {
	return squirrel.Select(append(prefixColumns("q", quizColumns), "u.name")...).
		From("quizzes q").
		LeftJoin("users u ON u.id = q.creator_id").
		Where(squirrel.Eq{"q.is_active": true}).
		PlaceholderFormat(squirrel.Dollar)
}

func scanQuiz(row pgx.Row) (*models.Quiz, error) {
	q := &models.Quiz{}
	var name *string
	err := row.Scan(&q.ID, &q.Title, &q.Description, &q.Questions, &q.TimeLimit, &q.CreatorID, &q.CreatedAt, &q.IsActive, &name)
	if err != nil {
		if dberrors.IsNoRows(err) {
			return nil, apperrors.ErrQuizNotFound
		}
		logger.Error().Err(err).Msg("Error scanning quiz")
		return nil, err
	}
	if q.Questions == nil {
		q.Questions = []models.Question{}
	}
	q.CreatorName = uploaderName(name)
	return q, nil
}

// Create inserts a new quiz
func (r *PostgresQuizRepository) Create(ctx context.Context, quiz *models.Quiz) error {
	if quiz.ID == "" {
		quiz.ID = uuid.New().String()
	}
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = time.Now().UTC()
	}
	quiz.IsActive = true

	sql, args, err := squirrel.Insert("quizzes").
		Columns(quizColumns...).
		Values(quiz.ID, quiz.Title, quiz.Description, quiz.Questions, quiz.TimeLimit, quiz.CreatorID, quiz.CreatedAt, quiz.IsActive).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create quiz SQL")
		return err
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Msg("Error executing create quiz query")
		return fmt.Errorf("error creating quiz: %w", err)
	}
	return nil
}

// List returns active quizzes, newest first
func (r *PostgresQuizRepository) List(ctx context.Context) ([]*models.Quiz, error) {
	sql, args, err := r.selectQuery().OrderBy("q.created_at DESC").ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error listing quizzes")
		return nil, err
	}
	defer rows.Close()

	quizzes := make([]*models.Quiz, 0)
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, rows.Err()
}

// GetByID retrieves an active quiz
func (r *PostgresQuizRepository) GetByID(ctx context.Context, id string) (*models.Quiz, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperrors.ErrQuizNotFound
	}

	sql, args, err := r.selectQuery().Where(squirrel.Eq{"q.id": id}).ToSql()
	if err != nil {
		return nil, err
	}
	return scanQuiz(r.db.QueryRow(ctx, sql, args...))
}
