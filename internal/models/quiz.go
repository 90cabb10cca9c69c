package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Quiz struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description"`
	CreatedBy   uuid.UUID `json:"created_by" gorm:"type:uuid;not null"`
	Creator     *User     `json:"-" gorm:"foreignKey:CreatedBy;references:ID"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

// QuizObject holds the question payload for a quiz. A quiz row and its
// object row are written in the same transaction; one never exists
// without the other.
type QuizObject struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	QuizID        uint           `json:"quiz_id" gorm:"uniqueIndex;not null"`
	Quiz          *Quiz          `json:"-" gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID"`
	QuestionsJSON datatypes.JSON `json:"questions_json" gorm:"column:questions_json"`
}

func (QuizObject) TableName() string {
	return "quiz_objects"
}

type AssignmentStatus string

const (
	StatusPending   AssignmentStatus = "pending"
	StatusCompleted AssignmentStatus = "completed"
)

// QuizAssignment links a user to a quiz. Status only moves from
// pending to completed; completed is terminal. The (auth_user_id,
// quiz_id) pair is unique, so assigning twice leaves a single row, and
// the store rejects assignments to users or quizzes that do not exist.
type QuizAssignment struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	AuthUserID  uuid.UUID        `json:"auth_user_id" gorm:"type:uuid;not null;uniqueIndex:idx_user_quiz"`
	User        *User            `json:"-" gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthUserID;references:ID"`
	QuizID      uint             `json:"quiz_id" gorm:"not null;uniqueIndex:idx_user_quiz"`
	Quiz        *Quiz            `json:"-" gorm:"constraint:OnDelete:CASCADE;foreignKey:QuizID;references:ID"`
	Status      AssignmentStatus `json:"status" gorm:"type:varchar(16);not null;default:pending"`
	AnswersJSON datatypes.JSON   `json:"answers_json" gorm:"column:answers_json"`
	CompletedAt *time.Time       `json:"completed_at"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

func (QuizAssignment) TableName() string {
	return "quizzes_hub"
}
