package library

import (
	"time"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

// CreateCategoryRequest - DTO for an admin adding a category
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	SortOrder   int    `json:"sort_order,omitempty"`
}

// CreateResourceRequest - DTO for an admin publishing a resource
type CreateResourceRequest struct {
	CategoryID kernel.CategoryID `json:"category_id" validate:"required"`

	Title       string       `json:"title" validate:"required"`
	Type        ResourceType `json:"resource_type" validate:"required"`
	Description string       `json:"description" validate:"required"`
	Content     string       `json:"content,omitempty"`
	ExternalURL string       `json:"external_url,omitempty"`

	Author          string     `json:"author,omitempty"`
	PublicationDate *time.Time `json:"publication_date,omitempty"`
	Tags            string     `json:"tags,omitempty"`

	IsFeatured         bool   `json:"is_featured,omitempty"`
	IsAccessible       bool   `json:"is_accessible,omitempty"`
	AccessibilityNotes string `json:"accessibility_notes,omitempty"`
}

// UpdateResourceRequest - DTO for editing a resource; nil fields stay
type UpdateResourceRequest struct {
	CategoryID  *kernel.CategoryID `json:"category_id,omitempty"`
	Title       *string            `json:"title,omitempty"`
	Description *string            `json:"description,omitempty"`
	Content     *string            `json:"content,omitempty"`
	ExternalURL *string            `json:"external_url,omitempty"`
	Tags        *string            `json:"tags,omitempty"`
	IsPublished *bool              `json:"is_published,omitempty"`
	IsFeatured  *bool              `json:"is_featured,omitempty"`
}

// BookmarkRequest - DTO for saving a resource with optional notes
type BookmarkRequest struct {
	Notes string `json:"notes,omitempty"`
}

// ListFilters narrow the resource listing
type ListFilters struct {
	CategorySlug string
	Type         *ResourceType
	Search       string
	Sort         string // recent, popular, title
}

// HomeResponse is the library landing payload
type HomeResponse struct {
	Categories    []CategoryWithCount `json:"categories"`
	Featured      []Resource          `json:"featured"`
	Popular       []Resource          `json:"popular"`
	Recent        []Resource          `json:"recent"`
	BookmarkCount int                 `json:"bookmark_count"`
}

// ResourceDetail is one resource with its reader context
type ResourceDetail struct {
	Resource     Resource   `json:"resource"`
	Tags         []string   `json:"tags"`
	IsBookmarked bool       `json:"is_bookmarked"`
	Related      []Resource `json:"related"`
}

// ToggleBookmarkResponse reports the state after a bookmark toggle
type ToggleBookmarkResponse struct {
	Bookmarked bool   `json:"bookmarked"`
	Message    string `json:"message"`
}

// Stats is the admin usage summary of the library
type Stats struct {
	TotalResources     int `db:"total_resources" json:"total_resources"`
	PublishedResources int `db:"published_resources" json:"published_resources"`
	TotalCategories    int `db:"total_categories" json:"total_categories"`
	TotalViews         int `db:"total_views" json:"total_views"`
	TotalDownloads     int `db:"total_downloads" json:"total_downloads"`
	TotalBookmarks     int `db:"total_bookmarks" json:"total_bookmarks"`
}
