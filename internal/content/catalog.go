package content

import (
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/url"
	"path"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/alexraskin/showcase/internal/cache"
	"github.com/alexraskin/showcase/internal/models"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDescription = "No description"
	DefaultMediaURL    = "/media/"
	DefaultCacheTTL    = 60 * time.Minute
)

var ErrNotFound = errors.New("content: not found")

var (
	imageExtensions = []string{".jpg", ".png", ".jpeg"}
	fileExtensions  = []string{".pdf", ".doc", ".docx", ".xls", ".xlsx"}
)

type Store interface {
	Site(ctx context.Context) (models.Site, error)
	User(ctx context.Context) (models.User, error)
	Navigation(ctx context.Context) ([]models.NavItem, error)
	UserMenu(ctx context.Context) ([]models.NavItem, error)
	Callouts(ctx context.Context) ([]models.Callout, error)
	Projects(ctx context.Context) ([]models.Project, error)
	Project(ctx context.Context, id int) (models.Project, error)
	DescriptionHTML(ctx context.Context, id int) (string, error)
}

type catalogFile struct {
	Site struct {
		Name            string `yaml:"name"`
		Copyright       string `yaml:"copyright"`
		FeaturedProject int    `yaml:"featured_project"`
	} `yaml:"site"`
	User struct {
		FirstName string `yaml:"first_name"`
		LastName  string `yaml:"last_name"`
		Avatar    string `yaml:"avatar"`
	} `yaml:"user"`
	Navigation []linkFile    `yaml:"navigation"`
	UserMenu   []linkFile    `yaml:"user_menu"`
	Callouts   []calloutFile `yaml:"callouts"`
	Categories []string      `yaml:"categories"`
	Tags       []string      `yaml:"tags"`
	Statuses   []string      `yaml:"statuses"`
	Projects   []projectFile `yaml:"projects"`
}

type linkFile struct {
	Name string `yaml:"name"`
	Href string `yaml:"href"`
}

type calloutFile struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Image       string `yaml:"image"`
	ImageAlt    string `yaml:"image_alt"`
	Href        string `yaml:"href"`
}

type projectFile struct {
	ID          int       `yaml:"id"`
	Title       string    `yaml:"title"`
	Description *string   `yaml:"description"`
	Authors     []string  `yaml:"authors"`
	Category    string    `yaml:"category"`
	Tags        []string  `yaml:"tags"`
	Images      []string  `yaml:"images"`
	Files       []string  `yaml:"files"`
	Status      string    `yaml:"status"`
	IsActive    bool      `yaml:"is_active"`
	CreatedAt   time.Time `yaml:"created_at"`
	UpdatedAt   time.Time `yaml:"updated_at"`
}

type Option func(*options)

type options struct {
	mediaURL string
	cacheTTL time.Duration
}

// WithMediaURL sets the prefix joined onto relative image and file paths.
func WithMediaURL(mediaURL string) Option {
	return func(o *options) {
		if mediaURL != "" {
			o.mediaURL = mediaURL
		}
	}
}

func WithCacheTTL(ttl time.Duration) Option {
	return func(o *options) {
		if ttl > 0 {
			o.cacheTTL = ttl
		}
	}
}

type catalog struct {
	site       models.Site
	user       models.User
	navigation []models.NavItem
	userMenu   []models.NavItem
	callouts   []models.Callout
	projects   []models.Project
	byID       map[int]int
	rendered   *cache.Cache[int, string]
}

// Open reads a catalog file from fsys and loads it.
func Open(fsys fs.FS, name string, opts ...Option) (Store, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("content: read catalog %s: %w", name, err)
	}
	return Load(data, opts...)
}

// Load decodes and validates a YAML catalog. Every problem found is reported in a
// single *ValidationError.
func Load(data []byte, opts ...Option) (Store, error) {
	o := options{mediaURL: DefaultMediaURL, cacheTTL: DefaultCacheTTL}
	for _, opt := range opts {
		opt(&o)
	}

	var f catalogFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("content: empty catalog")
		}
		return nil, fmt.Errorf("content: decode catalog: %w", err)
	}

	v := &validator{}
	c := &catalog{
		site: models.Site{
			Name:      strings.TrimSpace(f.Site.Name),
			Copyright: strings.TrimSpace(f.Site.Copyright),
		},
		user: models.User{
			FirstName: strings.TrimSpace(f.User.FirstName),
			LastName:  strings.TrimSpace(f.User.LastName),
			Avatar:    strings.TrimSpace(f.User.Avatar),
		},
		navigation: buildLinks(v, "navigation", f.Navigation),
		userMenu:   buildLinks(v, "user_menu", f.UserMenu),
		byID:       make(map[int]int),
		rendered:   cache.NewCache[int, string](o.cacheTTL),
	}

	for i, cf := range f.Callouts {
		field := fmt.Sprintf("callouts[%d]", i)
		callout := models.Callout{
			Name:        strings.TrimSpace(cf.Name),
			Description: strings.TrimSpace(cf.Description),
			Image:       strings.TrimSpace(cf.Image),
			ImageAlt:    strings.TrimSpace(cf.ImageAlt),
			Href:        defaultHref(cf.Href),
		}
		if callout.Name == "" {
			v.add(field+".name", "is required")
		}
		if callout.Image == "" {
			v.add(field+".image", "is required")
		}
		c.callouts = append(c.callouts, callout)
	}

	categories := buildNamed(v, "categories", f.Categories, 100)
	tags := buildNamed(v, "tags", f.Tags, 100)
	statuses := buildNamed(v, "statuses", f.Statuses, 50)

	for i, pf := range f.Projects {
		field := fmt.Sprintf("projects[%d]", i)
		p, ok := buildProject(v, field, pf, categories, tags, statuses, o.mediaURL)
		if !ok {
			continue
		}
		if _, dup := c.byID[p.ID]; dup {
			v.add(field+".id", fmt.Sprintf("duplicate id %d", p.ID))
			continue
		}
		c.byID[p.ID] = len(c.projects)
		c.projects = append(c.projects, p)
	}

	slices.SortStableFunc(c.projects, func(a, b models.Project) int {
		if n := b.CreatedAt.Compare(a.CreatedAt); n != 0 {
			return n
		}
		return cmp.Compare(b.ID, a.ID)
	})
	for i, p := range c.projects {
		c.byID[p.ID] = i
	}

	c.site.FeaturedProject = f.Site.FeaturedProject
	if c.site.FeaturedProject == 0 {
		for _, p := range c.projects {
			if p.IsActive {
				c.site.FeaturedProject = p.ID
				break
			}
		}
	} else if idx, ok := c.byID[c.site.FeaturedProject]; !ok || !c.projects[idx].IsActive {
		v.add("site.featured_project", fmt.Sprintf("project %d does not exist or is not active", c.site.FeaturedProject))
	}

	if err := v.err(); err != nil {
		return nil, err
	}
	return c, nil
}

func buildLinks(v *validator, field string, in []linkFile) []models.NavItem {
	out := make([]models.NavItem, 0, len(in))
	for i, l := range in {
		name := strings.TrimSpace(l.Name)
		if name == "" {
			v.add(fmt.Sprintf("%s[%d].name", field, i), "is required")
		}
		out = append(out, models.NavItem{Name: name, Href: defaultHref(l.Href)})
	}
	return out
}

func buildNamed(v *validator, field string, names []string, maxLen int) map[string]models.Named {
	out := make(map[string]models.Named, len(names))
	seen := make(map[string]string, len(names))
	for i, raw := range names {
		name := strings.TrimSpace(raw)
		f := fmt.Sprintf("%s[%d]", field, i)
		if n := utf8.RuneCountInString(name); n < 1 || n > maxLen {
			v.add(f, fmt.Sprintf("must be from 1 to %d characters", maxLen))
			continue
		}
		slug := Slugify(name)
		if slug == "" {
			v.add(f, fmt.Sprintf("%q has an empty slug", name))
			continue
		}
		if prev, dup := seen[slug]; dup {
			v.add(f, fmt.Sprintf("%q has the same slug as %q", name, prev))
			continue
		}
		seen[slug] = name
		out[name] = models.Named{Name: name, Slug: slug}
	}
	return out
}

func buildProject(v *validator, field string, pf projectFile, categories, tags, statuses map[string]models.Named, mediaURL string) (models.Project, bool) {
	before := len(v.problems)

	p := models.Project{
		ID:        pf.ID,
		Title:     strings.TrimSpace(pf.Title),
		Authors:   []string{},
		Tags:      []models.Named{},
		Images:    []string{},
		Files:     []string{},
		IsActive:  pf.IsActive,
		CreatedAt: pf.CreatedAt.UTC(),
		UpdatedAt: pf.UpdatedAt.UTC(),
	}

	if p.ID <= 0 {
		v.add(field+".id", "must be a positive integer")
	}
	if n := utf8.RuneCountInString(p.Title); n < 1 || n > 150 {
		v.add(field+".title", "must be from 1 to 150 characters")
	}

	p.Description = DefaultDescription
	if pf.Description != nil && strings.TrimSpace(*pf.Description) != "" {
		p.Description = strings.TrimSpace(*pf.Description)
	}

	for _, a := range pf.Authors {
		if a = strings.TrimSpace(a); a != "" {
			p.Authors = append(p.Authors, a)
		}
	}

	if name := strings.TrimSpace(pf.Category); name != "" {
		if cat, ok := categories[name]; ok {
			p.Category = &cat
		} else {
			v.add(field+".category", fmt.Sprintf("unknown category %q", name))
		}
	}
	if name := strings.TrimSpace(pf.Status); name != "" {
		if st, ok := statuses[name]; ok {
			p.Status = &st
		} else {
			v.add(field+".status", fmt.Sprintf("unknown status %q", name))
		}
	}
	for _, raw := range pf.Tags {
		name := strings.TrimSpace(raw)
		tag, ok := tags[name]
		if !ok {
			v.add(field+".tags", fmt.Sprintf("unknown tag %q", name))
			continue
		}
		p.Tags = append(p.Tags, tag)
	}
	slices.SortFunc(p.Tags, func(a, b models.Named) int { return cmp.Compare(a.Name, b.Name) })

	for i, img := range pf.Images {
		f := fmt.Sprintf("%s.images[%d]", field, i)
		if u, ok := mediaPath(v, f, img, imageExtensions, mediaURL); ok {
			p.Images = append(p.Images, u)
		}
	}
	for i, file := range pf.Files {
		f := fmt.Sprintf("%s.files[%d]", field, i)
		if u, ok := mediaPath(v, f, file, fileExtensions, mediaURL); ok {
			p.Files = append(p.Files, u)
		}
	}

	if p.CreatedAt.IsZero() {
		v.add(field+".created_at", "is required")
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	if p.UpdatedAt.Before(p.CreatedAt) {
		v.add(field+".updated_at", "must not be before created_at")
	}

	return p, len(v.problems) == before
}

func mediaPath(v *validator, field, raw string, allowed []string, mediaURL string) (string, bool) {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if raw == "" || err != nil {
		v.add(field, "is not a valid path or URL")
		return "", false
	}
	ext := strings.ToLower(path.Ext(u.Path))
	if !slices.Contains(allowed, ext) {
		v.add(field, fmt.Sprintf("extension %q is not one of %s", ext, strings.Join(allowed, ", ")))
		return "", false
	}
	if u.IsAbs() || strings.HasPrefix(raw, "/") {
		return raw, true
	}
	return strings.TrimSuffix(mediaURL, "/") + "/" + raw, true
}

func defaultHref(href string) string {
	if href = strings.TrimSpace(href); href == "" {
		return "#"
	}
	return href
}

func (c *catalog) Site(ctx context.Context) (models.Site, error) {
	if err := ctx.Err(); err != nil {
		return models.Site{}, err
	}
	return c.site, nil
}

func (c *catalog) User(ctx context.Context) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}
	return c.user, nil
}

func (c *catalog) Navigation(ctx context.Context) ([]models.NavItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(c.navigation), nil
}

func (c *catalog) UserMenu(ctx context.Context) ([]models.NavItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(c.userMenu), nil
}

func (c *catalog) Callouts(ctx context.Context) ([]models.Callout, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return slices.Clone(c.callouts), nil
}

func (c *catalog) Projects(ctx context.Context) ([]models.Project, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]models.Project, 0, len(c.projects))
	for _, p := range c.projects {
		if p.IsActive {
			out = append(out, cloneProject(p))
		}
	}
	return out, nil
}

func (c *catalog) Project(ctx context.Context, id int) (models.Project, error) {
	if err := ctx.Err(); err != nil {
		return models.Project{}, err
	}
	idx, ok := c.byID[id]
	if !ok || !c.projects[idx].IsActive {
		return models.Project{}, ErrNotFound
	}
	return cloneProject(c.projects[idx]), nil
}

func (c *catalog) DescriptionHTML(ctx context.Context, id int) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if html, ok := c.rendered.Get(id); ok {
		return html, nil
	}

	p, err := c.Project(ctx, id)
	if err != nil {
		return "", err
	}

	html, err := RenderMarkdown(p.Description)
	if err != nil {
		return "", fmt.Errorf("project %d: %w", id, err)
	}

	c.rendered.Set(id, html)
	slog.Debug("Cached project description", "id", id, "entries", c.rendered.Len())
	return html, nil
}

func cloneProject(p models.Project) models.Project {
	p.Authors = slices.Clone(p.Authors)
	p.Tags = slices.Clone(p.Tags)
	p.Images = slices.Clone(p.Images)
	p.Files = slices.Clone(p.Files)
	if p.Category != nil {
		cat := *p.Category
		p.Category = &cat
	}
	if p.Status != nil {
		st := *p.Status
		p.Status = &st
	}
	return p
}
