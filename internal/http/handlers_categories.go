package http

import (
	"net/http"

	"pocketbook/internal/storage"
)

type categoryRequest struct {
	Name       string `json:"name"`
	Icon       string `json:"icon"`
	ColorToken string `json:"color_token"`
	SortOrder  *int   `json:"sort_order"`
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "Malformed request body.")
		return
	}

	cat, err := s.categories.Create(r.Context(), storage.CategoryCreate{
		Name:       req.Name,
		Icon:       req.Icon,
		ColorToken: req.ColorToken,
		SortOrder:  req.SortOrder,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusCreated, toCategoryJSON(*cat))
}

type updateCategoryRequest struct {
	Name       *string `json:"name"`
	Icon       *string `json:"icon"`
	ColorToken *string `json:"color_token"`
	SortOrder  *int    `json:"sort_order"`
	IsArchived *bool   `json:"is_archived"`
}

func (s *Server) handleUpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req updateCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "Malformed request body.")
		return
	}

	cat, err := s.categories.Update(r.Context(), r.PathValue("id"), storage.CategoryUpdate{
		Name:       req.Name,
		Icon:       req.Icon,
		ColorToken: req.ColorToken,
		SortOrder:  req.SortOrder,
		IsArchived: req.IsArchived,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toCategoryJSON(*cat))
}

// handleListCategories serves active categories by default; include_archived
// switches to the full live set for settings screens.
func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	var err error
	var cats []categoryJSON

	if r.URL.Query().Get("include_archived") == "true" {
		all, listErr := s.categories.ListAll(r.Context())
		err = listErr
		cats = toCategoryListJSON(all)
	} else {
		active, listErr := s.categories.ListActive(r.Context())
		err = listErr
		cats = toCategoryListJSON(active)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, cats)
}

func (s *Server) handleArchiveCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.categories.Archive(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRestoreCategory(w http.ResponseWriter, r *http.Request) {
	if err := s.categories.Restore(r.Context(), r.PathValue("id")); err != nil {
		respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type reorderRequest struct {
	IDs []string `json:"ids"`
}

func (s *Server) handleReorderCategories(w http.ResponseWriter, r *http.Request) {
	var req reorderRequest
	if err := decodeJSON(r, &req); err != nil {
		respondBadRequest(w, "Malformed request body.")
		return
	}
	if len(req.IDs) == 0 {
		respondBadRequest(w, "ids must not be empty.")
		return
	}

	if err := s.categories.Reorder(r.Context(), req.IDs); err != nil {
		respondError(w, r, err)
		return
	}

	cats, err := s.categories.ListAll(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCategoryListJSON(cats))
}
