package quiz

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"quizhub/internal/api"
	"quizhub/internal/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type CreateQuizRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Questions   json.RawMessage `json:"questions"`
}

type AssignQuizRequest struct {
	UserID string `json:"userId"`
	QuizID uint   `json:"quizId"`
}

type SubmitAnswersRequest struct {
	Answers json.RawMessage `json:"answers"`
}

func (h *Handler) CreateQuiz(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}

	quizID, err := h.service.CreateQuiz(r.Context(), identity.UserID, req.Title, req.Description, datatypes.JSON(req.Questions))
	switch {
	case errors.Is(err, ErrMissingFields):
		api.Error(w, http.StatusBadRequest, "Missing required fields")
		return
	case err != nil:
		logrus.WithError(err).Error("quiz creation failed")
		api.Error(w, http.StatusInternalServerError, "Error creating quiz")
		return
	}

	api.JSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Quiz created",
		"quizId":  quizID,
	})
}

func (h *Handler) AssignQuiz(w http.ResponseWriter, r *http.Request) {
	var req AssignQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	err = h.service.AssignQuiz(r.Context(), userID, req.QuizID)
	switch {
	case errors.Is(err, ErrMissingFields):
		api.Error(w, http.StatusBadRequest, "Missing required fields")
		return
	case err != nil:
		logrus.WithError(err).Error("quiz assignment failed")
		api.Error(w, http.StatusInternalServerError, "Error assigning quiz")
		return
	}

	api.JSON(w, http.StatusCreated, map[string]string{"message": "Quiz assigned successfully"})
}

func (h *Handler) GetAssigned(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	assigned, err := h.service.AssignedQuizzes(r.Context(), identity.UserID)
	if err != nil {
		logrus.WithError(err).Error("assigned quizzes fetch failed")
		api.Error(w, http.StatusInternalServerError, "Error fetching assigned quizzes")
		return
	}

	api.JSON(w, http.StatusOK, assigned)
}

func (h *Handler) SubmitAnswers(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	quizID, err := strconv.ParseUint(mux.Vars(r)["quizId"], 10, 32)
	if err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid quiz ID")
		return
	}

	var req SubmitAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}

	err = h.service.SubmitAnswers(r.Context(), identity.UserID, uint(quizID), datatypes.JSON(req.Answers))
	switch {
	case errors.Is(err, ErrMissingFields):
		api.Error(w, http.StatusBadRequest, "Missing answers")
		return
	case errors.Is(err, ErrNotAssigned):
		api.Error(w, http.StatusNotFound, "No assignment for this quiz")
		return
	case errors.Is(err, ErrAlreadyCompleted):
		api.Error(w, http.StatusConflict, "Quiz already completed")
		return
	case err != nil:
		logrus.WithError(err).Error("quiz submission failed")
		api.Error(w, http.StatusInternalServerError, "Error submitting quiz")
		return
	}

	api.JSON(w, http.StatusOK, map[string]string{"message": "Quiz submitted successfully"})
}
