package nav

import (
	"strings"

	"github.com/alexraskin/showcase/internal/models"
)

// Build renders navigation items with active state given the current path.
func Build(items []models.NavItem, currentPath string) []models.RenderedNavItem {
	if currentPath == "" {
		currentPath = "/"
	}
	rendered := make([]models.RenderedNavItem, 0, len(items))
	for _, it := range items {
		rendered = append(rendered, models.RenderedNavItem{
			Name:   it.Name,
			Href:   it.Href,
			Active: isActive(it.Href, currentPath),
		})
	}
	return rendered
}

func isActive(href, currentPath string) bool {
	// placeholder anchors never point at a page
	if href == "" || strings.HasPrefix(href, "#") {
		return false
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	if href == "/" {
		return currentPath == "/"
	}
	if currentPath == href {
		return true
	}
	return strings.HasPrefix(currentPath, href+"/")
}

// Initials returns the upper-cased first letters of the user's names, used as avatar alt text.
func Initials(u models.User) string {
	var b strings.Builder
	for _, name := range []string{u.FirstName, u.LastName} {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		r := []rune(name)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}
