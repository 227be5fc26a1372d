package server

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/finwallet/wallet-server/auth"
	"github.com/finwallet/wallet-server/categories"
	"github.com/finwallet/wallet-server/internal/errors"
)

type categoryRequest struct {
	Type  string `json:"type"`
	Color string `json:"color"`
}

// CreateCategoryHandler creates a category. Admin only.
func (s *Server) CreateCategoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ok, cause := s.authorize(w, r, auth.Admin()); !ok {
			deny(w, cause)
			return
		}

		var req categoryRequest
		if err := decodeBody(r, &req); err != nil || req.Type == "" || req.Color == "" {
			writeError(w, http.StatusBadRequest, "type and color are required")
			return
		}

		if _, err := s.repos.Categories.Get(req.Type); err == nil {
			writeError(w, http.StatusBadRequest, "category already exists")
			return
		}

		category := &categories.Category{Type: req.Type, Color: req.Color}
		if err := s.repos.Categories.Upsert(category); err != nil {
			log.Error().Err(err).Str("category", req.Type).Msg("creating category failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, category)
	}
}

// ListCategoriesHandler returns every category to any valid session.
func (s *Server) ListCategoriesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ok, cause := s.authorize(w, r, auth.Simple()); !ok {
			deny(w, cause)
			return
		}

		list, err := s.repos.Categories.List()
		if err != nil {
			log.Error().Err(err).Msg("listing categories failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, list)
	}
}

// UpdateCategoryHandler changes a category's color. Admin only. The
// type string is the key and cannot be changed in place.
func (s *Server) UpdateCategoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ok, cause := s.authorize(w, r, auth.Admin()); !ok {
			deny(w, cause)
			return
		}

		categoryType := r.PathValue("type")
		category, err := s.repos.Categories.Get(categoryType)
		if err != nil {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}

		var req categoryRequest
		if err := decodeBody(r, &req); err != nil || req.Color == "" {
			writeError(w, http.StatusBadRequest, "color is required")
			return
		}

		category.Color = req.Color
		if err := s.repos.Categories.Upsert(category); err != nil {
			log.Error().Err(err).Str("category", categoryType).Msg("updating category failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, category)
	}
}

// DeleteCategoryHandler removes a category. Admin only. Existing
// transactions keep their type string.
func (s *Server) DeleteCategoryHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if ok, cause := s.authorize(w, r, auth.Admin()); !ok {
			deny(w, cause)
			return
		}

		categoryType := r.PathValue("type")
		if err := s.repos.Categories.Delete(categoryType); err != nil {
			if errors.Is(err, errors.ErrCategoryNotFound) {
				writeError(w, http.StatusNotFound, "category not found")
				return
			}
			log.Error().Err(err).Str("category", categoryType).Msg("deleting category failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"message": "category deleted"})
	}
}
