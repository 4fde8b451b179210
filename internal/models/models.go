package models

import (
	"html/template"
	"strings"
	"time"
)

type NavItem struct {
	Name string
	Href string
}

type RenderedNavItem struct {
	Name   string
	Href   string
	Active bool
}

type User struct {
	FirstName string
	LastName  string
	Avatar    string
}

func (u User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}

type Callout struct {
	Name        string
	Description string
	Image       string
	ImageAlt    string
	Href        string
}

// Named is a category, tag or status: a display name plus its URL slug.
type Named struct {
	Name string
	Slug string
}

type Project struct {
	ID          int
	Title       string
	Description string
	Authors     []string
	Category    *Named
	Tags        []Named
	Images      []string
	Files       []string
	Status      *Named
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Site struct {
	Name            string
	Copyright       string
	FeaturedProject int
}

type PageLink struct {
	Number   int
	Href     string
	Current  bool
	Disabled bool
}

type Pagination struct {
	Previous PageLink
	Next     PageLink
	Pages    []PageLink
	// 1-based range of the items shown, zero when there are none
	First int
	Last  int
	Total int
}

type LayoutData struct {
	Title      string
	Site       Site
	User       User
	Initials   string
	Navigation []RenderedNavItem
	UserMenu   []NavItem
	Version    string
}

type IndexPageData struct {
	Layout     LayoutData
	Heading    string
	Callouts   []Callout
	Pagination Pagination
}

type ProjectPageData struct {
	Layout          LayoutData
	Heading         string
	Project         Project
	DescriptionHTML template.HTML
}

type ErrorPageData struct {
	Layout  LayoutData
	Status  int
	Message string
}
