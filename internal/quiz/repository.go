package quiz

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"quizhub/internal/models"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateQuizWithQuestions inserts the quiz row and its question payload
// in one transaction. Either both rows land or neither does.
func (r *Repository) CreateQuizWithQuestions(ctx context.Context, quiz *models.Quiz, questions datatypes.JSON) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return err
		}
		object := &models.QuizObject{
			QuizID:        quiz.ID,
			QuestionsJSON: questions,
		}
		return tx.Create(object).Error
	})
}

// AssignQuiz creates a pending assignment. The unique (user, quiz)
// index plus DO NOTHING makes repeated assignment idempotent.
func (r *Repository) AssignQuiz(ctx context.Context, userID uuid.UUID, quizID uint) error {
	assignment := &models.QuizAssignment{
		AuthUserID: userID,
		QuizID:     quizID,
		Status:     models.StatusPending,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "auth_user_id"}, {Name: "quiz_id"}},
			DoNothing: true,
		}).
		Create(assignment).Error
}

func (r *Repository) GetAssignedQuizzes(ctx context.Context, userID uuid.UUID) ([]models.AssignedQuiz, error) {
	assigned := make([]models.AssignedQuiz, 0)
	err := r.db.WithContext(ctx).
		Table("quizzes_hub AS qh").
		Select("qh.id, qh.quiz_id, qh.status, qh.answers_json, qh.completed_at, q.title, q.description").
		Joins("JOIN quizzes q ON qh.quiz_id = q.id").
		Where("qh.auth_user_id = ?", userID).
		Scan(&assigned).Error
	return assigned, err
}

// CompleteAssignment moves the caller's pending assignment to
// completed, storing the answers and the completion time in the same
// statement. Returns the number of rows touched; zero means there was
// no pending assignment to complete.
func (r *Repository) CompleteAssignment(ctx context.Context, userID uuid.UUID, quizID uint, answers datatypes.JSON) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.QuizAssignment{}).
		Where("quiz_id = ? AND auth_user_id = ? AND status = ?", quizID, userID, models.StatusPending).
		Updates(map[string]interface{}{
			"status":       models.StatusCompleted,
			"answers_json": answers,
			"completed_at": time.Now(),
		})
	return result.RowsAffected, result.Error
}

func (r *Repository) GetAssignment(ctx context.Context, userID uuid.UUID, quizID uint) (*models.QuizAssignment, error) {
	var assignment models.QuizAssignment
	err := r.db.WithContext(ctx).
		Where("auth_user_id = ? AND quiz_id = ?", userID, quizID).
		First(&assignment).Error
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}
