package service

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hearthhq/hearth/internal/auth"
	"github.com/hearthhq/hearth/internal/middleware"
)

// AuthService exposes registration, login, and session restore.
type AuthService struct {
	authenticator auth.Authenticator
	tokens        *auth.JWTManager
}

// NewAuthService creates an AuthService using the given authenticator and
// token manager.
func NewAuthService(authenticator auth.Authenticator, tokens *auth.JWTManager) *AuthService {
	return &AuthService{authenticator: authenticator, tokens: tokens}
}

// RegisterPublic mounts the routes reachable without a session.
func (s *AuthService) RegisterPublic(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/register", s.register)
	mux.HandleFunc("POST /api/auth/login", s.login)
}

// RegisterProtected mounts the session-restore route, which relies on the
// auth middleware having populated the context.
func (s *AuthService) RegisterProtected(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/auth/session", s.session)
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

type authResponse struct {
	Token string `json:"token"`
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

func (s *AuthService) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" {
		writeError(w, http.StatusBadRequest, errors.New("email is required"))
		return
	}

	user, err := s.authenticator.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrEmailExists):
			writeError(w, http.StatusConflict, err)
		case errors.Is(err, auth.ErrWeakPassword):
			writeError(w, http.StatusBadRequest, err)
		default:
			slog.Error("registration failed", "error", err)
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		slog.Error("failed to sign token", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Token: token,
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	})
}

func (s *AuthService) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	user, err := s.authenticator.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, err)
			return
		}
		slog.Error("login failed", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		slog.Error("failed to sign token", "error", err)
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, authResponse{
		Token: token,
		ID:    user.ID,
		Email: user.Email,
		Name:  user.Name,
	})
}

// session restores the signed-in identity from a still-valid token.
func (s *AuthService) session(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeError(w, http.StatusUnauthorized, errors.New("no active session"))
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"id":    userID,
		"email": middleware.GetEmail(r.Context()),
	})
}
