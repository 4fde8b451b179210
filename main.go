package main

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path"
	"path/filepath"
	"syscall"

	"github.com/alexraskin/showcase/internal/config"
	"github.com/alexraskin/showcase/internal/content"
	"github.com/alexraskin/showcase/server"
)

var (
	version = "dev"
)

//go:embed templates/*.html
var templatesFiles embed.FS

//go:embed static/*
var staticFiles embed.FS

//go:embed content/site.yaml
var contentFiles embed.FS

func parseTemplates(fsys fs.FS) (*template.Template, error) {
	return template.New("").Funcs(template.FuncMap{
		"base": path.Base,
	}).ParseFS(fsys, "templates/*.html")
}

func loadStore(cfg config.Config) (content.Store, error) {
	opts := []content.Option{
		content.WithMediaURL(cfg.MediaURL),
		content.WithCacheTTL(cfg.CacheTTL),
	}
	if cfg.ContentFile != "" {
		return content.Open(os.DirFS(filepath.Dir(cfg.ContentFile)), filepath.Base(cfg.ContentFile), opts...)
	}
	return content.Open(contentFiles, "content/site.yaml", opts...)
}

func main() {

	var (
		tmplFunc server.ExecuteTemplateFunc
		assets   http.FileSystem
	)

	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Errorf("failed to load config: %w", err))
	}
	slog.SetDefault(cfg.NewLogger())

	tmpl, err := parseTemplates(templatesFiles)
	if err != nil {
		panic(fmt.Errorf("failed to parse templates: %w", err))
	}
	tmplFunc = tmpl.ExecuteTemplate
	assets = http.FS(staticFiles)

	store, err := loadStore(cfg)
	if err != nil {
		panic(fmt.Errorf("failed to load content: %w", err))
	}

	srv := server.NewServer(version, cfg.Port, assets, tmplFunc, store, server.Options{
		GalleryPageSize:    cfg.GalleryPageSize,
		RateLimit:          cfg.RateLimit,
		CORSAllowAll:       cfg.CORSAllowAll,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	go srv.Start()
	defer srv.Close()

	slog.Info("Started server", slog.String("listen_addr", ":"+cfg.Port), slog.String("version", version))
	slog.Debug(server.FormatBuildVersion(version))
	si := make(chan os.Signal, 1)
	signal.Notify(si, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-si
	slog.Info("Shutting down server")
}
