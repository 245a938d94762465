package repositories

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/edutube/internal/app/models"
)

// UserRepository persists accounts
type UserRepository interface {
	// Create assigns ID and timestamps; a taken email yields apperrors.ErrEmailAlreadyExists
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	// List returns every user, newest first
	List(ctx context.Context) ([]*models.User, error)
	// UpdateStatus sets the status and returns the updated user
	UpdateStatus(ctx context.Context, id string, status models.UserStatus) (*models.User, error)
}

// VideoRepository persists videos
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	// List returns active videos, newest first, with uploader names resolved
	List(ctx context.Context) ([]*models.Video, error)
	// IncrementViews adds one view and returns the post-increment record
	IncrementViews(ctx context.Context, id string) (*models.Video, error)
}

// NoteRepository persists notes
type NoteRepository interface {
	Create(ctx context.Context, note *models.Note) error
	List(ctx context.Context) ([]*models.Note, error)
	// IncrementDownloads adds one download and returns the post-increment record
	IncrementDownloads(ctx context.Context, id string) (*models.Note, error)
}

// QuizRepository persists quizzes
type QuizRepository interface {
	Create(ctx context.Context, quiz *models.Quiz) error
	List(ctx context.Context) ([]*models.Quiz, error)
	GetByID(ctx context.Context, id string) (*models.Quiz, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository  UserRepository
	VideoRepository VideoRepository
	NoteRepository  NoteRepository
	QuizRepository  QuizRepository
}

// NewRepositories initializes the PostgreSQL repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:  NewPostgresUserRepository(db),
		VideoRepository: NewPostgresVideoRepository(db),
		NoteRepository:  NewPostgresNoteRepository(db),
		QuizRepository:  NewPostgresQuizRepository(db),
	}
}

func uploaderName(name *string) string {
	if name == nil || *name == "" {
		return models.UnknownName
	}
	return *name
}

func joinColumns(cols []string) string {
	return strings.Join(cols, ", ")
}

func prefixColumns(alias string, cols []string) []string {
	out := make([]string, len(cols))
	for i, c := range cols {
		out[i] = alias + "." + c
	}
	return out
}
