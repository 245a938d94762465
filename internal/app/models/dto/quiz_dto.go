package dto

import (
	"time"

	"github.com/yigit/edutube/internal/app/models"
)

// QuestionRequest is one question of a quiz being created
type QuestionRequest struct {
	Text         string   `json:"text" validate:"notblank" example:"What is 2 + 2?"`
	Choices      []string `json:"choices" validate:"min=2,dive,notblank" example:"3,4,5"`
	CorrectIndex *int     `json:"correct_index" validate:"required,gte=0" example:"1"`
}

// CreateQuizRequest is the body of the quiz creation endpoint
type CreateQuizRequest struct {
	Title       string            `json:"title" validate:"notblank,max=200" example:"Week 1 check"`
	Description string            `json:"description" validate:"max=2000"`
	Questions   []QuestionRequest `json:"questions" validate:"dive"`
	TimeLimit   *int              `json:"time_limit" validate:"omitempty,gt=0" example:"15"`
}

// QuestionResponse is one question as returned to clients. CorrectIndex is
// omitted for callers who may not see the answer key.
type QuestionResponse struct {
	Text         string   `json:"text"`
	Choices      []string `json:"choices"`
	CorrectIndex *int     `json:"correct_index,omitempty"`
}

// QuizResponse is the public view of a quiz
type QuizResponse struct {
	ID          string             `json:"id"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Questions   []QuestionResponse `json:"questions"`
	TimeLimit   *int               `json:"time_limit,omitempty"`
	CreatorID   string             `json:"creatorId"`
	CreatorName string             `json:"creatorName"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// NewQuizResponse converts a quiz model. withAnswers controls whether the
// answer key is included.
func NewQuizResponse(q *models.Quiz, withAnswers bool) *QuizResponse {
	questions := make([]QuestionResponse, 0, len(q.Questions))
	for _, item := range q.Questions {
		qr := QuestionResponse{
			Text:    item.Text,
			Choices: append([]string(nil), item.Choices...),
		}
		if withAnswers {
			idx := item.CorrectIndex
			qr.CorrectIndex = &idx
		}
		questions = append(questions, qr)
	}

	return &QuizResponse{
		ID:          q.ID,
		Title:       q.Title,
		Description: q.Description,
		Questions:   questions,
		TimeLimit:   q.TimeLimit,
		CreatorID:   q.CreatorID,
		CreatorName: q.CreatorName,
		CreatedAt:   q.CreatedAt,
	}
}

// NewQuizResponses converts a slice of quiz models
func NewQuizResponses(quizzes []*models.Quiz, withAnswers bool) []*QuizResponse {
	out := make([]*QuizResponse, 0, len(quizzes))
	for _, q := range quizzes {
		out = append(out, NewQuizResponse(q, withAnswers))
	}
	return out
}
