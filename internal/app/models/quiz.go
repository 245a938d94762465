package models

import "time"

// Question is a single multiple-choice item
type Question struct {
	Text         string   `json:"text"`
	Choices      []string `json:"choices"`
	CorrectIndex int      `json:"correctIndex"`
}

// Quiz is an ordered list of questions with an optional time limit in minutes
type Quiz struct {
	ID          string     `json:"id" db:"id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Questions   []Question `json:"questions" db:"questions"`
	TimeLimit   *int       `json:"timeLimit,omitempty" db:"time_limit"`
	CreatorID   string     `json:"creatorId" db:"creator_id"`
	CreatorName string     `json:"creatorName" db:"-"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
	IsActive    bool       `json:"isActive" db:"is_active"`
}
