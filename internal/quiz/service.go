package quiz

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"quizhub/internal/models"
)

var (
	ErrMissingFields    = errors.New("missing required fields")
	ErrNotAssigned      = errors.New("no assignment for quiz")
	ErrAlreadyCompleted = errors.New("quiz already completed")
)

type Service struct {
	repo *Repository
}

func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// CreateQuiz stores a quiz and its question payload atomically and
// returns the new quiz id.
func (s *Service) CreateQuiz(ctx context.Context, createdBy uuid.UUID, title, description string, questions datatypes.JSON) (uint, error) {
	title = strings.TrimSpace(title)
	if title == "" || emptyJSON(questions) {
		return 0, ErrMissingFields
	}

	quiz := &models.Quiz{
		Title:       title,
		Description: description,
		CreatedBy:   createdBy,
	}
	if err := s.repo.CreateQuizWithQuestions(ctx, quiz, questions); err != nil {
		return 0, err
	}
	return quiz.ID, nil
}

func (s *Service) AssignQuiz(ctx context.Context, userID uuid.UUID, quizID uint) error {
	if userID == uuid.Nil || quizID == 0 {
		return ErrMissingFields
	}
	return s.repo.AssignQuiz(ctx, userID, quizID)
}

func (s *Service) AssignedQuizzes(ctx context.Context, userID uuid.UUID) ([]models.AssignedQuiz, error) {
	return s.repo.GetAssignedQuizzes(ctx, userID)
}

// SubmitAnswers completes the caller's pending assignment for the
// quiz. A completed assignment is terminal: re-submission never
// re-applies.
func (s *Service) SubmitAnswers(ctx context.Context, userID uuid.UUID, quizID uint, answers datatypes.JSON) error {
	if emptyJSON(answers) {
		return ErrMissingFields
	}

	affected, err := s.repo.CompleteAssignment(ctx, userID, quizID, answers)
	if err != nil {
		return err
	}
	if affected > 0 {
		return nil
	}

	// Zero rows: either never assigned or already completed.
	assignment, err := s.repo.GetAssignment(ctx, userID, quizID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotAssigned
		}
		return err
	}
	if assignment.Status == models.StatusCompleted {
		return ErrAlreadyCompleted
	}
	return ErrNotAssigned
}

func emptyJSON(payload datatypes.JSON) bool {
	trimmed := bytes.TrimSpace(payload)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
