package library

import (
	"context"

	"github.com/incluempleo/vinculo/pkg/kernel"
)

type CategoryRepository interface {
	// Create persists a new category
	Create(ctx context.Context, category *Category) error

	// GetBySlug retrieves an active category by slug
	GetBySlug(ctx context.Context, slug string) (*Category, error)

	// ListActive retrieves active categories with their published-resource
	// counts, by sort order then name
	ListActive(ctx context.Context) ([]CategoryWithCount, error)
}

type ResourceRepository interface {
	// Create persists a new resource
	Create(ctx context.Context, resource *Resource) error

	// Update persists changes to an existing resource
	Update(ctx context.Context, id kernel.ResourceID, resource *Resource) error

	// GetBySlug retrieves a published resource by slug
	GetBySlug(ctx context.Context, slug string) (*Resource, error)

	// GetBySlugAny retrieves a resource by slug regardless of its
	// publication state, for administration
	GetBySlugAny(ctx context.Context, slug string) (*Resource, error)

	// List retrieves published resources matching the filters
	List(ctx context.Context, filters ListFilters, pagination kernel.PaginationOptions) (*kernel.Paginated[Resource], error)

	// Featured retrieves published featured resources, newest first
	Featured(ctx context.Context, limit int) ([]Resource, error)

	// Popular retrieves published resources by view count
	Popular(ctx context.Context, limit int) ([]Resource, error)

	// Recent retrieves published resources, newest first
	Recent(ctx context.Context, limit int) ([]Resource, error)

	// Related retrieves other published resources of the same category
	Related(ctx context.Context, categoryID kernel.CategoryID, exclude kernel.ResourceID, limit int) ([]Resource, error)

	// IncrementViewCount bumps the view counter in place
	IncrementViewCount(ctx context.Context, id kernel.ResourceID) error

	// IncrementDownloadCount bumps the download counter in place
	IncrementDownloadCount(ctx context.Context, id kernel.ResourceID) error

	// Stats aggregates the usage counters for the admin panel
	Stats(ctx context.Context) (*Stats, error)
}

type BookmarkRepository interface {
	// Create persists a new bookmark
	Create(ctx context.Context, bookmark *Bookmark) error

	// Delete removes a bookmark
	Delete(ctx context.Context, id kernel.BookmarkID) error

	// GetByUserAndResource retrieves the caller's bookmark of a resource,
	// or nil when the resource is not bookmarked
	GetByUserAndResource(ctx context.Context, userID kernel.UserID, resourceID kernel.ResourceID) (*Bookmark, error)

	// ListByUser retrieves the caller's bookmarks with their resources,
	// newest first
	ListByUser(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[BookmarkedResource], error)

	// CountByUser counts the caller's bookmarks
	CountByUser(ctx context.Context, userID kernel.UserID) (int, error)
}
