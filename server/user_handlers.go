package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/finwallet/wallet-server/auth"
	"github.com/finwallet/wallet-server/internal/errors"
)

// ListUsersHandler returns every account. Admin only.
func (s *Server) ListUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ok, cause := s.authorize(w, r, auth.Admin()); !ok {
			deny(w, cause)
			return
		}

		list, err := s.repos.Users.List()
		if err != nil {
			log.Error().Err(err).Msg("listing users failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// GetUserHandler returns one account, for the named user itself or an
// Admin.
func (s *Server) GetUserHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := r.PathValue("username")
		if username == "" {
			writeError(w, http.StatusNotFound, "username missing")
			return
		}

		if ok, cause := s.authorize(w, r, auth.UserOrAdmin(username)); !ok {
			deny(w, cause)
			return
		}

		user, err := s.repos.Users.GetByUsername(username)
		if err != nil {
			if errors.Is(err, errors.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "user not found")
				return
			}
			log.Error().Err(err).Str("username", username).Msg("fetching user failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, user)
	}
}
