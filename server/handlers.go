package server

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/alexraskin/showcase/internal/content"
	"github.com/alexraskin/showcase/internal/models"
	"github.com/alexraskin/showcase/internal/nav"
	"github.com/alexraskin/showcase/internal/pagination"

	"github.com/angelofallars/htmx-go"
	"github.com/go-chi/chi/v5"
)

const galleryHeading = "Projects"

func (s *Server) layout(ctx context.Context, currentPath, title string) (models.LayoutData, error) {
	site, err := s.store.Site(ctx)
	if err != nil {
		return models.LayoutData{}, fmt.Errorf("load site: %w", err)
	}
	user, err := s.store.User(ctx)
	if err != nil {
		return models.LayoutData{}, fmt.Errorf("load user: %w", err)
	}
	items, err := s.store.Navigation(ctx)
	if err != nil {
		return models.LayoutData{}, fmt.Errorf("load navigation: %w", err)
	}
	menu, err := s.store.UserMenu(ctx)
	if err != nil {
		return models.LayoutData{}, fmt.Errorf("load user menu: %w", err)
	}

	if title == "" {
		title = site.Name
	} else if site.Name != "" {
		title = title + " | " + site.Name
	}

	return models.LayoutData{
		Title:      title,
		Site:       site,
		User:       user,
		Initials:   nav.Initials(user),
		Navigation: nav.Build(items, currentPath),
		UserMenu:   menu,
		Version:    s.version,
	}, nil
}

func (s *Server) renderError(w http.ResponseWriter, r *http.Request, status int) {
	data := models.ErrorPageData{
		Status:  status,
		Message: http.StatusText(status),
	}
	// the error page still renders when the layout itself failed to load
	if layout, err := s.layout(r.Context(), r.URL.Path, http.StatusText(status)); err == nil {
		data.Layout = layout
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.tmplFunc(w, "error.html", data); err != nil {
		slog.Error("Failed to render error template", "error", err)
	}
}

func (s *Server) HandleIndex(w http.ResponseWriter, r *http.Request) {
	layout, err := s.layout(r.Context(), r.URL.Path, "")
	if err != nil {
		slog.Error("Failed to load layout", "error", err)
		s.renderError(w, r, http.StatusInternalServerError)
		return
	}

	callouts, err := s.store.Callouts(r.Context())
	if err != nil {
		slog.Error("Failed to load callouts", "error", err)
		s.renderError(w, r, http.StatusInternalServerError)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	items, info := pagination.Page(callouts, page, s.opts.GalleryPageSize)

	data := models.IndexPageData{
		Layout:   layout,
		Heading:  galleryHeading,
		Callouts: items,
		Pagination: pagination.Build(info, func(n int) string {
			return "/?page=" + strconv.Itoa(n)
		}),
	}

	name := "index.html"
	// history restores after a cache miss replace the whole body
	if htmx.IsHTMX(r) && !htmx.IsHistoryRestoreRequest(r) {
		name = "gallery"
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Add("Vary", "HX-Request, HX-History-Restore-Request")
	if err := s.tmplFunc(w, name, data); err != nil {
		slog.Error("Failed to render index template", "template", name, "error", err)
	}
}

func (s *Server) HandleProject(w http.ResponseWriter, r *http.Request) {
	layout, err := s.layout(r.Context(), r.URL.Path, "")
	if err != nil {
		slog.Error("Failed to load layout", "error", err)
		s.renderError(w, r, http.StatusInternalServerError)
		return
	}

	id := layout.Site.FeaturedProject
	if raw := r.URL.Query().Get("id"); raw != "" {
		var ok bool
		if id, ok = parseID(raw); !ok {
			s.renderError(w, r, http.StatusNotFound)
			return
		}
	}

	project, err := s.store.Project(r.Context(), id)
	if errors.Is(err, content.ErrNotFound) {
		s.renderError(w, r, http.StatusNotFound)
		return
	}
	if err != nil {
		slog.Error("Failed to load project", "id", id, "error", err)
		s.renderError(w, r, http.StatusInternalServerError)
		return
	}

	description, err := s.store.DescriptionHTML(r.Context(), id)
	if err != nil {
		slog.Error("Failed to render project description", "id", id, "error", err)
		s.renderError(w, r, http.StatusInternalServerError)
		return
	}

	heading := fmt.Sprintf("Project #%d", project.ID)
	layout.Title = heading + " | " + layout.Site.Name

	data := models.ProjectPageData{
		Layout:  layout,
		Heading: heading,
		Project: project,
		// sanitised by the content store
		DescriptionHTML: template.HTML(description),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.tmplFunc(w, "project.html", data); err != nil {
		slog.Error("Failed to render project template", "error", err)
	}
}

// parseID accepts only unsigned decimal ids.
func parseID(raw string) (int, bool) {
	if raw == "" || strings.TrimLeft(raw, "0123456789") != "" {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	return id, err == nil
}

func (s *Server) handleFallback(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		s.renderError(w, r, http.StatusNotFound)
		return
	}
	s.HandleIndex(w, r)
}

func (s *Server) serveFile(name, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		file, err := s.assets.Open(name)
		if err != nil {
			http.Error(w, "File not found", http.StatusNotFound)
			return
		}
		defer func() { _ = file.Close() }()
		w.Header().Set("Content-Type", contentType)
		_, _ = io.Copy(w, file)
	}
}

func (s *Server) serveMedia(w http.ResponseWriter, r *http.Request) {
	name := path.Clean("/" + chi.URLParam(r, "*"))
	if name == "/" {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}

	file, err := s.assets.Open("static/media" + name)
	if err != nil {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	defer func() { _ = file.Close() }()

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		http.Error(w, "File not found", http.StatusNotFound)
		return
	}
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		w.Header().Set("Content-Type", ct)
	}
	http.ServeContent(w, r, info.Name(), info.ModTime(), file)
}

func (s *Server) cacheControl(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/static/") || strings.HasPrefix(r.URL.Path, "/media/") {
			w.Header().Set("Cache-Control", "public, max-age=86400")
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
		next.ServeHTTP(w, r)
	})
}
