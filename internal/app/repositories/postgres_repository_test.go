package repositories

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/edutube/internal/app/migrations"
	"github.com/yigit/edutube/internal/app/models"
	"github.com/yigit/edutube/internal/pkg/apperrors"
)

// newTestPool connects to DATABASE_URL, applies the migrations and empties
// every table. Tests are skipped when no database is configured.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, migrations.NewMigrator(pool, zerolog.Nop()).Migrate(ctx))
	_, err = pool.Exec(ctx, `TRUNCATE users, videos, notes, quizzes CASCADE`)
	require.NoError(t, err)
	return pool
}

func createTestUser(t *testing.T, repo *PostgresUserRepository, email string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{Email: email, PasswordHash: "hash", Name: "Ada " + string(role), Role: role, Status: models.StatusActive}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestPostgresUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewPostgresUserRepository(newTestPool(t))

	u := createTestUser(t, repo, "ada@school.edu", models.RoleStudent)
	assert.NotEmpty(t, u.ID)

	err := repo.Create(ctx, &models.User{Email: "ada@school.edu", PasswordHash: "x", Name: "Other", Role: models.RoleFaculty, Status: models.StatusActive})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	got, err := repo.GetByEmail(ctx, "ada@school.edu")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, models.RoleStudent, got.Role)

	exists, err := repo.EmailExists(ctx, "nobody@school.edu")
	require.NoError(t, err)
	assert.False(t, exists)

	for i := 0; i < 2; i++ {
		updated, err := repo.UpdateStatus(ctx, u.ID, models.StatusSuspended)
		require.NoError(t, err)
		assert.Equal(t, models.StatusSuspended, updated.Status)
	}

	_, err = repo.UpdateStatus(ctx, uuid.NewString(), models.StatusActive)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
	_, err = repo.GetByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	second := createTestUser(t, repo, "grace@school.edu", models.RoleFaculty)
	users, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, second.ID, users[0].ID)
}

func TestPostgresVideoRepository_IncrementViews(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	users := NewPostgresUserRepository(pool)
	repo := NewPostgresVideoRepository(pool)

	faculty := createTestUser(t, users, "prof@school.edu", models.RoleFaculty)
	v := &models.Video{
		Title: "Lecture 1", Filename: "a.mp4", OriginalFilename: "lecture.mp4", FileURL: "/uploads/videos/a.mp4",
		FileSize: 3, ContentType: "video/mp4", UploaderID: faculty.ID,
	}
	require.NoError(t, repo.Create(ctx, v))

	for want := int64(1); want <= 2; want++ {
		got, err := repo.IncrementViews(ctx, v.ID)
		require.NoError(t, err)
		assert.Equal(t, want, got.Views)
		assert.Equal(t, faculty.Name, got.UploaderName)
	}

	_, err := repo.IncrementViews(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrVideoNotFound)
	_, err = repo.IncrementViews(ctx, "42")
	assert.ErrorIs(t, err, apperrors.ErrVideoNotFound)

	_, err = pool.Exec(ctx, `UPDATE users SET name = '' WHERE id = $1`, faculty.ID)
	require.NoError(t, err)
	videos, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	assert.Equal(t, models.UnknownName, videos[0].UploaderName)
	assert.Equal(t, int64(2), videos[0].Views)
}

func TestPostgresNoteRepository_IncrementDownloads(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	users := NewPostgresUserRepository(pool)
	repo := NewPostgresNoteRepository(pool)

	faculty := createTestUser(t, users, "prof@school.edu", models.RoleFaculty)
	n := &models.Note{
		Title: "Week 1", Filename: "a.pdf", OriginalFilename: "week1.pdf", FileURL: "/uploads/notes/a.pdf",
		FileSize: 3, ContentType: "application/pdf", UploaderID: faculty.ID,
	}
	require.NoError(t, repo.Create(ctx, n))

	got, err := repo.IncrementDownloads(ctx, n.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Downloads)
	assert.Equal(t, faculty.Name, got.UploaderName)

	_, err = repo.IncrementDownloads(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrNoteNotFound)
}

func TestPostgresQuizRepository_QuestionsRoundTrip(t *testing.T) {
	ctx := context.Background()
	pool := newTestPool(t)
	users := NewPostgresUserRepository(pool)
	repo := NewPostgresQuizRepository(pool)

	faculty := createTestUser(t, users, "prof@school.edu", models.RoleFaculty)
	limit := 15
	q := &models.Quiz{
		Title:     "Midterm",
		TimeLimit: &limit,
		CreatorID: faculty.ID,
		Questions: []models.Question{
			{Text: "2+2?", Choices: []string{"3", "4"}, CorrectIndex: 1},
			{Text: "Capital of France?", Choices: []string{"Paris", "Rome", "Oslo"}, CorrectIndex: 0},
		},
	}
	require.NoError(t, repo.Create(ctx, q))
	empty := &models.Quiz{Title: "Draft", CreatorID: faculty.ID, Questions: []models.Question{}}
	require.NoError(t, repo.Create(ctx, empty))

	got, err := repo.GetByID(ctx, q.ID)
	require.NoError(t, err)
	assert.Equal(t, q.Questions, got.Questions)
	require.NotNil(t, got.TimeLimit)
	assert.Equal(t, 15, *got.TimeLimit)
	assert.Equal(t, faculty.Name, got.CreatorName)

	got, err = repo.GetByID(ctx, empty.ID)
	require.NoError(t, err)
	assert.NotNil(t, got.Questions)
	assert.Empty(t, got.Questions)
	assert.Nil(t, got.TimeLimit)

	_, err = repo.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, apperrors.ErrQuizNotFound)

	quizzes, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, quizzes, 2)
}
