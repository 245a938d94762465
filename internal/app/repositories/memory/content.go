package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/yigit/edutube/internal/app/models"
	"github.com/yigit/edutube/internal/pkg/apperrors"
)

type videoRepository struct {
	s *Store
}

func (r *videoRepository) Create(_ context.Context, video *models.Video) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if video.ID == "" {
		video.ID = uuid.New().String()
	}
	if video.UploadedAt.IsZero() {
		video.UploadedAt = r.s.stamp()
	}
	video.IsActive = true
	video.UploaderName = r.s.userName(video.UploaderID)

	stored := *video
	r.s.videos[video.ID] = &stored
	return nil
}

func (r *videoRepository) List(_ context.Context) ([]*models.Video, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Video, 0, len(r.s.videos))
	for _, v := range r.s.videos {
		if !v.IsActive {
			continue
		}
		cp := *v
		cp.UploaderName = r.s.userName(v.UploaderID)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (r *videoRepository) IncrementViews(_ context.Context, id string) (*models.Video, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	v, ok := r.s.videos[id]
	if !ok || !v.IsActive {
		return nil, apperrors.ErrVideoNotFound
	}
	v.Views++

	cp := *v
	cp.UploaderName = r.s.userName(v.UploaderID)
	return &cp, nil
}

type noteRepository struct {
	s *Store
}

func (r *noteRepository) Create(_ context.Context, note *models.Note) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	if note.UploadedAt.IsZero() {
		note.UploadedAt = r.s.stamp()
	}
	note.IsActive = true
	note.UploaderName = r.s.userName(note.UploaderID)

	stored := *note
	r.s.notes[note.ID] = &stored
	return nil
}

func (r *noteRepository) List(_ context.Context) ([]*models.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Note, 0, len(r.s.notes))
	for _, n := range r.s.notes {
		if !n.IsActive {
			continue
		}
		cp := *n
		cp.UploaderName = r.s.userName(n.UploaderID)
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UploadedAt.After(out[j].UploadedAt) })
	return out, nil
}

func (r *noteRepository) IncrementDownloads(_ context.Context, id string) (*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	n, ok := r.s.notes[id]
	if !ok || !n.IsActive {
		return nil, apperrors.ErrNoteNotFound
	}
	n.Downloads++

	cp := *n
	cp.UploaderName = r.s.userName(n.UploaderID)
	return &cp, nil
}

type quizRepository struct {
	s *Store
}

func cloneQuiz(q *models.Quiz) *models.Quiz {
	cp := *q
	cp.Questions = make([]models.Question, len(q.Questions))
	for i, question := range q.Questions {
		question.Choices = append([]string(nil), question.Choices...)
		cp.Questions[i] = question
	}
	if q.TimeLimit != nil {
		limit := *q.TimeLimit
		cp.TimeLimit = &limit
	}
	return &cp
}

func (r *quizRepository) Create(_ context.Context, quiz *models.Quiz) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if quiz.ID == "" {
		quiz.ID = uuid.New().String()
	}
	if quiz.CreatedAt.IsZero() {
		quiz.CreatedAt = r.s.stamp()
	}
	quiz.IsActive = true
	quiz.CreatorName = r.s.userName(quiz.CreatorID)

	r.s.quizzes[quiz.ID] = cloneQuiz(quiz)
	return nil
}

func (r *quizRepository) List(_ context.Context) ([]*models.Quiz, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]*models.Quiz, 0, len(r.s.quizzes))
	for _, q := range r.s.quizzes {
		if !q.IsActive {
			continue
		}
		cp := cloneQuiz(q)
		cp.CreatorName = r.s.userName(q.CreatorID)
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *quizRepository) GetByID(_ context.Context, id string) (*models.Quiz, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	q, ok := r.s.quizzes[id]
	if !ok || !q.IsActive {
		return nil, apperrors.ErrQuizNotFound
	}
	cp := cloneQuiz(q)
	cp.CreatorName = r.s.userName(q.CreatorID)
	return cp, nil
}
