package models

import (
	"time"

	"gorm.io/datatypes"
)

// AssignedQuiz is the read view returned by the assigned-quizzes
// listing: the assignment row joined with the quiz title/description.
type AssignedQuiz struct {
	ID          uint             `json:"id"`
	QuizID      uint             `json:"quiz_id"`
	Status      AssignmentStatus `json:"status"`
	AnswersJSON datatypes.JSON   `json:"answers_json,omitempty"`
	CompletedAt *time.Time       `json:"completed_at"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
}
