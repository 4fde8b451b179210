package nav

import (
	"testing"

	"github.com/alexraskin/showcase/internal/models"
)

func TestBuildPlaceholderLinksNeverActive(t *testing.T) {
	items := []models.NavItem{
		{Name: "Dashboard", Href: "#"},
		{Name: "Team", Href: "#"},
		{Name: "Projects", Href: "#"},
		{Name: "Calendar", Href: "#"},
		{Name: "Reports", Href: "#"},
	}

	got := Build(items, "/")
	if len(got) != 5 {
		t.Fatalf("expected 5 items, got %d", len(got))
	}
	for _, it := range got {
		if it.Active {
			t.Errorf("expected %q to be inactive", it.Name)
		}
	}
	if got[0].Name != "Dashboard" || got[4].Name != "Reports" {
		t.Errorf("expected order to be preserved, got %+v", got)
	}
}

func TestBuildActive(t *testing.T) {
	items := []models.NavItem{
		{Name: "Home", Href: "/"},
		{Name: "Project", Href: "/project"},
		{Name: "Relative", Href: "project"},
	}

	tests := []struct {
		path   string
		active []bool
	}{
		{"", []bool{true, false, false}},
		{"/", []bool{true, false, false}},
		{"/project", []bool{false, true, true}},
		{"/project/124", []bool{false, true, true}},
		{"/projects", []bool{false, false, false}},
	}

	for _, tt := range tests {
		got := Build(items, tt.path)
		for i, want := range tt.active {
			if got[i].Active != want {
				t.Errorf("path %q item %q: expected active=%v, got %v", tt.path, got[i].Name, want, got[i].Active)
			}
		}
	}
}

func TestInitials(t *testing.T) {
	tests := []struct {
		user models.User
		want string
	}{
		{models.User{FirstName: "John", LastName: "Doe"}, "JD"},
		{models.User{FirstName: "john"}, "J"},
		{models.User{LastName: " éclair "}, "É"},
		{models.User{}, ""},
	}
	for _, tt := range tests {
		if got := Initials(tt.user); got != tt.want {
			t.Errorf("Initials(%+v) = %q, want %q", tt.user, got, tt.want)
		}
	}
}
