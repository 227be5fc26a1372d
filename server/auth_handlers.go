package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/finwallet/wallet-server/internal/errors"
	"github.com/finwallet/wallet-server/token"
)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler creates a Regular account.
func (s *Server) RegisterHandler() http.HandlerFunc {
	return s.registerWithRole(token.RoleRegular)
}

// RegisterAdminHandler creates an Admin account.
func (s *Server) RegisterAdminHandler() http.HandlerFunc {
	return s.registerWithRole(token.RoleAdmin)
}

func (s *Server) registerWithRole(role token.RoleType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		user, err := s.auth.Register(req.Username, req.Email, req.Password, role)
		if err != nil {
			if errors.Is(err, errors.ErrUserAlreadyExists) {
				writeError(w, http.StatusBadRequest, "you are already registered")
				return
			}
			log.Error().Err(err).Str("username", req.Username).Msg("registration failed")
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"message": "user added successfully", "id": user.ID})
	}
}

// LoginHandler verifies credentials, mints the token pair and sets both
// session cookies.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Email == "" || req.Password == "" {
			writeError(w, http.StatusBadRequest, "email and password are required")
			return
		}

		user, pair, err := s.auth.Login(req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, errors.ErrUserNotFound):
				writeError(w, http.StatusBadRequest, "please you need to register")
			case errors.Is(err, errors.ErrInvalidCredentials):
				writeError(w, http.StatusBadRequest, "wrong credentials")
			default:
				log.Error().Err(err).Str("email", req.Email).Msg("login failed")
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
			return
		}

		s.setAccessTokenCookie(w, pair.AccessToken)
		s.setRefreshTokenCookie(w, pair.RefreshToken)
		writeJSON(w, http.StatusOK, map[string]string{
			"message":  "logged in",
			"username": user.Username,
			"role":     string(user.Role),
		})
	}
}

// LogoutHandler nulls the stored refresh token and clears both cookies.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		refreshToken := cookieValue(r, refreshTokenCookie)
		if refreshToken == "" {
			writeError(w, http.StatusBadRequest, "user not found")
			return
		}

		if err := s.auth.Logout(refreshToken); err != nil {
			if errors.Is(err, errors.ErrUserNotFound) {
				writeError(w, http.StatusBadRequest, "user not found")
				return
			}
			log.Error().Err(err).Msg("logout failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		s.clearSessionCookies(w)
		writeJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
	}
}
