package rest

import (
	"context"
	"net/http"

	"github.com/heartmarshall/kanban-backend/internal/domain"
	"github.com/heartmarshall/kanban-backend/internal/service/auth"
	"github.com/heartmarshall/kanban-backend/internal/service/user"
)

// authService defines the minimal interface needed by AuthHandler.
type authService interface {
	Register(ctx context.Context, input auth.RegisterInput) (*auth.AuthResult, error)
	Login(ctx context.Context, input auth.LoginInput) (*auth.AuthResult, error)
	ChangePassword(ctx context.Context, input auth.ChangePasswordInput) error
}

// profileService defines the profile operations needed by AuthHandler.
type profileService interface {
	GetProfile(ctx context.Context) (*domain.UserProfile, error)
	UpdateProfile(ctx context.Context, input user.UpdateProfileInput) (*domain.User, error)
}

// AuthHandler serves the /auth endpoints.
type AuthHandler struct {
	svc   authService
	users profileService
	re    *Responder
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(svc authService, users profileService, re *Responder) *AuthHandler {
	return &AuthHandler{svc: svc, users: users, re: re}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updateProfileRequest struct {
	Name   *string          `json:"name"`
	Avatar Nullable[string] `json:"avatar"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type authResponse struct {
	User  userResponse `json:"user"`
	Token string       `json:"token"`
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Register(r.Context(), auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
	})
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAuthResponse(result))
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.Login(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(result))
}

// Profile handles GET /api/auth/profile.
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.users.GetProfile(r.Context())
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, profileResponse{
		userResponse: toUserResponse(&profile.User),
		OwnedBoards:  profile.OwnedBoards,
		MemberBoards: profile.MemberBoards,
	})
}

// UpdateProfile handles PUT /api/auth/profile. An avatar of null or ""
// removes the current one.
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	input := user.UpdateProfileInput{Name: req.Name}
	switch {
	case req.Avatar.Cleared(), req.Avatar.Value != nil && *req.Avatar.Value == "":
		input.ClearAvatar = true
	case req.Avatar.Value != nil:
		input.AvatarURL = req.Avatar.Value
	}

	u, err := h.users.UpdateProfile(r.Context(), input)
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, toUserResponse(u))
}

// ChangePassword handles PUT /api/auth/password.
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.svc.ChangePassword(r.Context(), auth.ChangePasswordInput{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		h.re.Error(w, r, err)
		return
	}

	writeMessage(w, http.StatusOK, "password updated")
}

func toAuthResponse(result *auth.AuthResult) authResponse {
	return authResponse{
		User:  toUserResponse(result.User),
		Token: result.Token,
	}
}
