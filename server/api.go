package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/alexraskin/showcase/internal/content"
	"github.com/alexraskin/showcase/internal/models"

	"github.com/go-chi/chi/v5"
)

// ProjectResponse is the JSON shape of a project in the API.
type ProjectResponse struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Authors     []string  `json:"authors"`
	Category    *string   `json:"category"`
	Tags        []string  `json:"tags"`
	Images      []string  `json:"images"`
	Files       []string  `json:"files"`
	Status      *string   `json:"status"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewProjectResponse(p models.Project) ProjectResponse {
	resp := ProjectResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Authors:     make([]string, 0, len(p.Authors)),
		Tags:        make([]string, 0, len(p.Tags)),
		Images:      make([]string, 0, len(p.Images)),
		Files:       make([]string, 0, len(p.Files)),
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	resp.Authors = append(resp.Authors, p.Authors...)
	resp.Images = append(resp.Images, p.Images...)
	resp.Files = append(resp.Files, p.Files...)
	for _, t := range p.Tags {
		resp.Tags = append(resp.Tags, t.Name)
	}
	if p.Category != nil {
		resp.Category = &p.Category.Name
	}
	if p.Status != nil {
		resp.Status = &p.Status.Name
	}
	return resp
}

func (s *Server) HandleAPI(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "OK", "method": r.Method})
}

func (s *Server) HandleProjectList(w http.ResponseWriter, r *http.Request) {
	projects, err := s.store.Projects(r.Context())
	if err != nil {
		slog.Error("Failed to load projects", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	resp := make([]ProjectResponse, 0, len(projects))
	for _, p := range projects {
		resp = append(resp, NewProjectResponse(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) HandleProjectDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(chi.URLParam(r, "id"))
	if !ok {
		s.apiNotFound(w, r)
		return
	}

	project, err := s.store.Project(r.Context(), id)
	if errors.Is(err, content.ErrNotFound) {
		s.apiNotFound(w, r)
		return
	}
	if err != nil {
		slog.Error("Failed to load project", "id", id, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, NewProjectResponse(project))
}

func (s *Server) apiNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (s *Server) apiMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	if allowed := allowedMethods(r); len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"detail": fmt.Sprintf("Method %q not allowed.", r.Method),
	})
}

// allowedMethods lists the methods the router would accept for the request path.
func allowedMethods(r *http.Request) []string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || rctx.Routes == nil {
		return nil
	}
	var allowed []string
	for _, method := range []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete} {
		if rctx.Routes.Match(chi.NewRouteContext(), method, r.URL.Path) {
			allowed = append(allowed, method)
		}
	}
	return allowed
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
