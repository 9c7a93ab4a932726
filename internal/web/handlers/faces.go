package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/kozaktomas/face-index/internal/face"
	"github.com/kozaktomas/face-index/internal/index"
	"github.com/kozaktomas/face-index/internal/resolver"
)

// FacesHandler serves the resolve, flush, rebuild and stats endpoints.
type FacesHandler struct {
	resolver *resolver.Resolver
}

// NewFacesHandler creates a faces handler over the given resolver.
func NewFacesHandler(res *resolver.Resolver) *FacesHandler {
	return &FacesHandler{resolver: res}
}

// ResolveRequest is the JSON body of POST /faces/resolve.
type ResolveRequest struct {
	Race    int `json:"race"`
	Emotion int `json:"emotion"`
	Oldness int `json:"oldness"`
}

// ResolveResponse carries the registered query and its matches,
// closest first.
type ResolveResponse struct {
	Query   face.Face     `json:"query"`
	Matches []index.Match `json:"matches"`
}

// Resolve handles POST /faces/resolve.
func (h *FacesHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req ResolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, errInvalidRequestBody)
		return
	}

	query, err := face.New(req.Race, req.Emotion, req.Oldness)
	if err != nil {
		if errors.Is(err, face.ErrOutOfRange) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	matches, err := h.resolver.Resolve(r.Context(), query)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, ResolveResponse{
		Query:   matches[0].Face,
		Matches: matches,
	})
}

// Flush handles DELETE /faces.
func (h *FacesHandler) Flush(w http.ResponseWriter, r *http.Request) {
	if err := h.resolver.Flush(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "flushed"})
}

// RebuildResponse reports the outcome of an index rebuild.
type RebuildResponse struct {
	OperationID string `json:"operation_id"`
	Faces       int    `json:"faces"`
	TreeBuilt   bool   `json:"tree_built"`
}

// Rebuild handles POST /index/rebuild: reload the dataset from the
// store and rebuild the tree.
func (h *FacesHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	count, err := h.resolver.Rebuild(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, RebuildResponse{
		OperationID: uuid.New().String(),
		Faces:       count,
		TreeBuilt:   h.resolver.HasTree(),
	})
}

// StatsResponse summarises the index state.
type StatsResponse struct {
	StoredFaces int  `json:"stored_faces"`
	CachedFaces int  `json:"cached_faces"`
	TreeBuilt   bool `json:"tree_built"`
}

// Stats handles GET /stats.
func (h *FacesHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stored, err := h.resolver.StoredCount(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, StatsResponse{
		StoredFaces: stored,
		CachedFaces: h.resolver.CachedCount(),
		TreeBuilt:   h.resolver.HasTree(),
	})
}
