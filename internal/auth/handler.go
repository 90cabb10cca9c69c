package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"quizhub/internal/api"
	"quizhub/internal/models"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}

type AuthResponse struct {
	Message string       `json:"message"`
	User    *models.User `json:"user"`
	Token   string       `json:"token"`
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}

	user, tok, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password, models.Role(req.Role))
	switch {
	case errors.Is(err, ErrMissingFields):
		api.Error(w, http.StatusBadRequest, "Missing required fields")
		return
	case errors.Is(err, ErrInvalidRole):
		api.Error(w, http.StatusBadRequest, "Invalid role")
		return
	case errors.Is(err, ErrUserExists):
		api.Error(w, http.StatusBadRequest, "User already exists")
		return
	case err != nil:
		logrus.WithError(err).Error("registration failed")
		api.Error(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	api.JSON(w, http.StatusCreated, AuthResponse{
		Message: "User created successfully",
		User:    user,
		Token:   tok,
	})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}

	user, tok, err := h.service.Login(r.Context(), req.Email, req.Password)
	switch {
	case errors.Is(err, ErrMissingFields):
		api.Error(w, http.StatusBadRequest, "Missing credentials")
		return
	case errors.Is(err, ErrInvalidCredentials):
		api.Error(w, http.StatusUnauthorized, "Invalid credentials")
		return
	case err != nil:
		logrus.WithError(err).Error("login failed")
		api.Error(w, http.StatusInternalServerError, "Error logging in")
		return
	}

	api.JSON(w, http.StatusOK, AuthResponse{
		Message: "Logged in successfully",
		User:    user,
		Token:   tok,
	})
}

func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := h.service.Profile(r.Context(), identity.UserID)
	switch {
	case errors.Is(err, ErrUserNotFound):
		api.Error(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		logrus.WithError(err).Error("profile fetch failed")
		api.Error(w, http.StatusInternalServerError, "Error fetching profile")
		return
	}

	api.JSON(w, http.StatusOK, user)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	identity, ok := IdentityFromContext(r.Context())
	if !ok {
		api.Error(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "Invalid request")
		return
	}

	user, err := h.service.UpdateProfile(r.Context(), identity.UserID, ProfileUpdate{
		Username: req.Username,
		Email:    req.Email,
	})
	switch {
	case errors.Is(err, ErrNoFields):
		api.Error(w, http.StatusBadRequest, "No fields to update")
		return
	case errors.Is(err, ErrUserExists):
		api.Error(w, http.StatusBadRequest, "Username or email already exists")
		return
	case err != nil:
		logrus.WithError(err).Error("profile update failed")
		api.Error(w, http.StatusInternalServerError, "Error updating profile")
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    user,
	})
}
