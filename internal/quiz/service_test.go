package quiz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"quizhub/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Quiz{},
		&models.QuizObject{},
		&models.QuizAssignment{},
	))
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewService(NewRepository(db)), db
}

func newTestUser(t *testing.T, db *gorm.DB) uuid.UUID {
	t.Helper()
	suffix := uuid.NewString()[:8]
	user := &models.User{
		ID:       uuid.New(),
		Username: "user-" + suffix,
		Email:    suffix + "@x.com",
		Password: "hash",
		Role:     models.RoleUser,
	}
	require.NoError(t, db.Create(user).Error)
	return user.ID
}

var questions = datatypes.JSON(`[{"q":"2+2","a":"4"}]`)

func TestCreateQuiz_CreatesBothRows(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	quizID, err := svc.CreateQuiz(ctx, newTestUser(t, db), "T", "D", questions)
	require.NoError(t, err)
	require.NotZero(t, quizID)

	var quiz models.Quiz
	require.NoError(t, db.First(&quiz, quizID).Error)
	assert.Equal(t, "T", quiz.Title)

	var object models.QuizObject
	require.NoError(t, db.Where("quiz_id = ?", quizID).First(&object).Error)
	assert.JSONEq(t, string(questions), string(object.QuestionsJSON))
}

func TestCreateQuiz_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateQuiz(ctx, uuid.New(), "", "D", questions)
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.CreateQuiz(ctx, uuid.New(), "T", "D", nil)
	assert.ErrorIs(t, err, ErrMissingFields)

	_, err = svc.CreateQuiz(ctx, uuid.New(), "T", "D", datatypes.JSON(`null`))
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestCreateQuiz_RollsBackWhenPayloadInsertFails(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	creator := newTestUser(t, db)

	// Fail the second insert of the transaction.
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("fail_payload", func(tx *gorm.DB) {
		if tx.Statement.Table == "quiz_objects" {
			tx.AddError(errors.New("payload insert failed"))
		}
	}))

	_, err := svc.CreateQuiz(ctx, creator, "T", "D", questions)
	require.Error(t, err)

	var quizzes, objects int64
	require.NoError(t, db.Model(&models.Quiz{}).Count(&quizzes).Error)
	require.NoError(t, db.Model(&models.QuizObject{}).Count(&objects).Error)
	assert.Zero(t, quizzes, "quiz row must not survive a failed payload insert")
	assert.Zero(t, objects)
}

func TestAssignQuiz_Idempotent(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := newTestUser(t, db)

	quizID, err := svc.CreateQuiz(ctx, newTestUser(t, db), "T", "D", questions)
	require.NoError(t, err)

	require.NoError(t, svc.AssignQuiz(ctx, userID, quizID))
	require.NoError(t, svc.AssignQuiz(ctx, userID, quizID))

	var count int64
	require.NoError(t, db.Model(&models.QuizAssignment{}).
		Where("auth_user_id = ? AND quiz_id = ?", userID, quizID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var assignment models.QuizAssignment
	require.NoError(t, db.Where("auth_user_id = ?", userID).First(&assignment).Error)
	assert.Equal(t, models.StatusPending, assignment.Status)
	assert.Nil(t, assignment.CompletedAt)
}

func TestAssignQuiz_UnknownQuizRejected(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := newTestUser(t, db)

	err := svc.AssignQuiz(ctx, userID, 999)
	require.Error(t, err, "assignment to a quiz that was never created must be rejected")

	var count int64
	require.NoError(t, db.Model(&models.QuizAssignment{}).Count(&count).Error)
	assert.Zero(t, count, "no orphan assignment row may be left behind")
}

func TestAssignQuiz_UnknownUserRejected(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	quizID, err := svc.CreateQuiz(ctx, newTestUser(t, db), "T", "D", questions)
	require.NoError(t, err)

	err = svc.AssignQuiz(ctx, uuid.New(), quizID)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.QuizAssignment{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAssignQuiz_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	assert.ErrorIs(t, svc.AssignQuiz(ctx, uuid.Nil, 1), ErrMissingFields)
	assert.ErrorIs(t, svc.AssignQuiz(ctx, uuid.New(), 0), ErrMissingFields)
}

func TestAssignedQuizzes_JoinsQuizFields(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := newTestUser(t, db)

	quizID, err := svc.CreateQuiz(ctx, newTestUser(t, db), "T", "D", questions)
	require.NoError(t, err)
	require.NoError(t, svc.AssignQuiz(ctx, userID, quizID))

	assigned, err := svc.AssignedQuizzes(ctx, userID)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, quizID, assigned[0].QuizID)
	assert.Equal(t, "T", assigned[0].Title)
	assert.Equal(t, "D", assigned[0].Description)
	assert.Equal(t, models.StatusPending, assigned[0].Status)

	// Other users see nothing.
	other, err := svc.AssignedQuizzes(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestSubmitAnswers_CompletesAssignment(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := newTestUser(t, db)

	quizID, err := svc.CreateQuiz(ctx, newTestUser(t, db), "T", "D", questions)
	require.NoError(t, err)
	require.NoError(t, svc.AssignQuiz(ctx, userID, quizID))

	answers := datatypes.JSON(`{"1":"4"}`)
	require.NoError(t, svc.SubmitAnswers(ctx, userID, quizID, answers))

	var assignment models.QuizAssignment
	require.NoError(t, db.Where("auth_user_id = ? AND quiz_id = ?", userID, quizID).First(&assignment).Error)
	assert.Equal(t, models.StatusCompleted, assignment.Status)
	assert.JSONEq(t, string(answers), string(assignment.AnswersJSON))
	require.NotNil(t, assignment.CompletedAt)
}

func TestSubmitAnswers_CompletedIsTerminal(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()
	userID := newTestUser(t, db)

	quizID, err := svc.CreateQuiz(ctx, newTestUser(t, db), "T", "D", questions)
	require.NoError(t, err)
	require.NoError(t, svc.AssignQuiz(ctx, userID, quizID))

	first := datatypes.JSON(`{"1":"4"}`)
	require.NoError(t, svc.SubmitAnswers(ctx, userID, quizID, first))

	err = svc.SubmitAnswers(ctx, userID, quizID, datatypes.JSON(`{"1":"5"}`))
	assert.ErrorIs(t, err, ErrAlreadyCompleted)

	// Stored answers are untouched by the rejected re-submission.
	var assignment models.QuizAssignment
	require.NoError(t, db.Where("auth_user_id = ? AND quiz_id = ?", userID, quizID).First(&assignment).Error)
	assert.JSONEq(t, string(first), string(assignment.AnswersJSON))
}

func TestSubmitAnswers_NotAssigned(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	quizID, err := svc.CreateQuiz(ctx, newTestUser(t, db), "T", "D", questions)
	require.NoError(t, err)

	err = svc.SubmitAnswers(ctx, newTestUser(t, db), quizID, datatypes.JSON(`{"1":"4"}`))
	assert.ErrorIs(t, err, ErrNotAssigned)
}

func TestSubmitAnswers_MissingAnswers(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.SubmitAnswers(context.Background(), uuid.New(), 1, nil)
	assert.ErrorIs(t, err, ErrMissingFields)
}
