package library

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

// ResourceType classifies a best-practice resource
type ResourceType string

const (
	TypeDocument    ResourceType = "DOCUMENT"
	TypeGuide       ResourceType = "GUIDE"
	TypeChecklist   ResourceType = "CHECKLIST"
	TypeTemplate    ResourceType = "TEMPLATE"
	TypeCaseStudy   ResourceType = "CASE_STUDY"
	TypeArticle     ResourceType = "ARTICLE"
	TypeVideo       ResourceType = "VIDEO"
	TypeInfographic ResourceType = "INFOGRAPHIC"
)

// IsValid checks the resource type enum
func (t ResourceType) IsValid() bool {
	switch t {
	case TypeDocument, TypeGuide, TypeChecklist, TypeTemplate,
		TypeCaseStudy, TypeArticle, TypeVideo, TypeInfographic:
		return true
	}
	return false
}

// Category groups resources in the best-practices library
type Category struct {
	ID          kernel.CategoryID `db:"id" json:"id"`
	Name        string            `db:"name" json:"name"`
	Slug        string            `db:"slug" json:"slug"`
	Description string            `db:"description" json:"description,omitempty"`
	Icon        string            `db:"icon" json:"icon"`
	SortOrder   int               `db:"sort_order" json:"sort_order"`
	IsActive    bool              `db:"is_active" json:"is_active"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// CategoryWithCount carries the published-resource count for listings
type CategoryWithCount struct {
	Category
	ResourceCount int `db:"resource_count" json:"resource_count"`
}

// Validate checks the category fields before persistence
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalidCategory().WithDetail("field", "name")
	}
	return nil
}

// Resource is a published best-practice document for companies hiring
// people with disabilities. Its content lives in the text body, an
// attached file, an external link, or any mix of the three.
type Resource struct {
	ID         kernel.ResourceID `db:"id" json:"id"`
	CategoryID kernel.CategoryID `db:"category_id" json:"category_id"`

	Title       string       `db:"title" json:"title"`
	Slug        string       `db:"slug" json:"slug"`
	Type        ResourceType `db:"resource_type" json:"resource_type"`
	Description string       `db:"description" json:"description"`
	Content     string       `db:"content" json:"content,omitempty"`

	FilePath    string `db:"file_path" json:"-"`
	FileSize    int64  `db:"file_size" json:"file_size,omitempty"`
	ExternalURL string `db:"external_url" json:"external_url,omitempty"`

	Author          string     `db:"author" json:"author,omitempty"`
	PublicationDate *time.Time `db:"publication_date" json:"publication_date,omitempty"`
	Tags            string     `db:"tags" json:"tags,omitempty"`

	IsPublished bool `db:"is_published" json:"is_published"`
	IsFeatured  bool `db:"is_featured" json:"is_featured"`

	// Screen-reader compatibility of the attached material
	IsAccessible       bool   `db:"is_accessible" json:"is_accessible"`
	AccessibilityNotes string `db:"accessibility_notes" json:"accessibility_notes,omitempty"`

	ViewCount     int `db:"view_count" json:"view_count"`
	DownloadCount int `db:"download_count" json:"download_count"`

	CreatedBy *kernel.UserID `db:"created_by" json:"created_by,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// HasFile checks whether the resource carries a downloadable file
func (r *Resource) HasFile() bool {
	return strings.TrimSpace(r.FilePath) != ""
}

// TagsList returns the comma-separated tags as a trimmed slice
func (r *Resource) TagsList() []string {
	if strings.TrimSpace(r.Tags) == "" {
		return []string{}
	}
	parts := strings.Split(r.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// FileSizeDisplay renders the attached-file size in a readable unit
func (r *Resource) FileSizeDisplay() string {
	if r.FileSize <= 0 {
		return "N/A"
	}
	size := float64(r.FileSize)
	for _, unit := range []string{"B", "KB", "MB", "GB"} {
		if size < 1024 {
			return fmt.Sprintf("%.1f %s", size, unit)
		}
		size /= 1024
	}
	return fmt.Sprintf("%.1f TB", size)
}

// Validate checks the resource fields before persistence
func (r *Resource) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrInvalidResource().WithDetail("field", "title")
	}
	if r.CategoryID.IsEmpty() {
		return ErrInvalidResource().WithDetail("field", "category_id")
	}
	if !r.Type.IsValid() {
		return ErrInvalidResource().WithDetail("field", "resource_type")
	}
	if strings.TrimSpace(r.Description) == "" {
		return ErrInvalidResource().WithDetail("field", "description")
	}
	if strings.TrimSpace(r.Content) == "" && !r.HasFile() && strings.TrimSpace(r.ExternalURL) == "" {
		return ErrInvalidResource().
			WithDetail("field", "content").
			WithDetail("reason", "a resource needs text content, an attached file or an external link")
	}
	return nil
}

// Bookmark is a resource a user saved for later, with private notes
type Bookmark struct {
	ID         kernel.BookmarkID `db:"id" json:"id"`
	UserID     kernel.UserID     `db:"user_id" json:"user_id"`
	ResourceID kernel.ResourceID `db:"resource_id" json:"resource_id"`
	Notes      string            `db:"notes" json:"notes,omitempty"`
	CreatedAt  time.Time         `db:"created_at" json:"created_at"`
}

// BookmarkedResource joins a bookmark with its resource for listings
type BookmarkedResource struct {
	Bookmark Bookmark `json:"bookmark"`
	Resource Resource `json:"resource"`
}

// Slugify lowers a title to a URL slug: diacritics folded, runs of
// non-alphanumerics collapsed into single hyphens.
func Slugify(s string) string {
	folded := strings.Map(foldRune, strings.ToLower(strings.TrimSpace(s)))

	var b strings.Builder
	lastHyphen := true
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

func foldRune(r rune) rune {
	switch r {
	case 'á', 'à', 'ä', 'â':
		return 'a'
	case 'é', 'è', 'ë', 'ê':
		return 'e'
	case 'í', 'ì', 'ï', 'î':
		return 'i'
	case 'ó', 'ò', 'ö', 'ô':
		return 'o'
	case 'ú', 'ù', 'ü', 'û':
		return 'u'
	case 'ñ':
		return 'n'
	}
	return r
}
