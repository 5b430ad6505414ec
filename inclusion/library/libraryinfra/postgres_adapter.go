package libraryinfra

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/incluempleo/vinculo/inclusion/library"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

// ============================================================================
// Category Repository
// ============================================================================

// PostgresCategoryRepository implements library.CategoryRepository using PostgreSQL
type PostgresCategoryRepository struct {
	db *sqlx.DB
}

// NewPostgresCategoryRepository creates a new PostgreSQL category repository
func NewPostgresCategoryRepository(db *sqlx.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{
		db: db,
	}
}

type categoryModel struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	Slug        string    `db:"slug"`
	Description string    `db:"description"`
	Icon        string    `db:"icon"`
	SortOrder   int       `db:"sort_order"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (m *categoryModel) toEntity() *library.Category {
	return &library.Category{
		ID:          kernel.CategoryID(m.ID),
		Name:        m.Name,
		Slug:        m.Slug,
		Description: m.Description,
		Icon:        m.Icon,
		SortOrder:   m.SortOrder,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// Create persists a new category
func (r *PostgresCategoryRepository) Create(ctx context.Context, c *library.Category) error {
	query := `
		INSERT INTO resource_categories (
			id, name, slug, description, icon, sort_order, is_active,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.db.ExecContext(ctx, query,
		c.ID.String(), c.Name, c.Slug, c.Description, c.Icon,
		c.SortOrder, c.IsActive, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// GetBySlug retrieves an active category by slug
func (r *PostgresCategoryRepository) GetBySlug(ctx context.Context, slug string) (*library.Category, error) {
	query := `
		SELECT id, name, slug, description, icon, sort_order, is_active,
		       created_at, updated_at
		FROM resource_categories
		WHERE slug = $1 AND is_active = true
	`

	var model categoryModel
	err := r.db.GetContext(ctx, &model, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, library.ErrCategoryNotFound()
		}
		return nil, fmt.Errorf("failed to get category by slug: %w", err)
	}

	return model.toEntity(), nil
}

// ListActive retrieves active categories with published-resource counts
func (r *PostgresCategoryRepository) ListActive(ctx context.Context) ([]library.CategoryWithCount, error) {
	query := `
		SELECT c.id, c.name, c.slug, c.description, c.icon, c.sort_order,
		       c.is_active, c.created_at, c.updated_at,
		       COUNT(res.id) FILTER (WHERE res.is_published) AS resource_count
		FROM resource_categories c
		LEFT JOIN library_resources res ON res.category_id = c.id
		WHERE c.is_active = true
		GROUP BY c.id, c.name, c.slug, c.description, c.icon, c.sort_order,
		         c.is_active, c.created_at, c.updated_at
		ORDER BY c.sort_order ASC, c.name ASC
	`

	var models []struct {
		categoryModel
		ResourceCount int `db:"resource_count"`
	}
	if err := r.db.SelectContext(ctx, &models, query); err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]library.CategoryWithCount, 0, len(models))
	for _, model := range models {
		categories = append(categories, library.CategoryWithCount{
			Category:      *model.toEntity(),
			ResourceCount: model.ResourceCount,
		})
	}
	return categories, nil
}

// ============================================================================
// Resource Repository
// ============================================================================

// PostgresResourceRepository implements library.ResourceRepository using PostgreSQL
type PostgresResourceRepository struct {
	db *sqlx.DB
}

// NewPostgresResourceRepository creates a new PostgreSQL resource repository
func NewPostgresResourceRepository(db *sqlx.DB) *PostgresResourceRepository {
	return &PostgresResourceRepository{
		db: db,
	}
}

type resourceModel struct {
	ID         string `db:"id"`
	CategoryID string `db:"category_id"`

	Title       string `db:"title"`
	Slug        string `db:"slug"`
	Type        string `db:"resource_type"`
	Description string `db:"description"`
	Content     string `db:"content"`

	FilePath    string `db:"file_path"`
	FileSize    int64  `db:"file_size"`
	ExternalURL string `db:"external_url"`

	Author          string     `db:"author"`
	PublicationDate *time.Time `db:"publication_date"`
	Tags            string     `db:"tags"`

	IsPublished bool `db:"is_published"`
	IsFeatured  bool `db:"is_featured"`

	IsAccessible       bool   `db:"is_accessible"`
	AccessibilityNotes string `db:"accessibility_notes"`

	ViewCount     int `db:"view_count"`
	DownloadCount int `db:"download_count"`

	CreatedBy *string   `db:"created_by"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

const resourceColumns = `
	id, category_id, title, slug, resource_type, description, content,
	file_path, file_size, external_url, author, publication_date, tags,
	is_published, is_featured, is_accessible, accessibility_notes,
	view_count, download_count, created_by, created_at, updated_at
`

func (m *resourceModel) toEntity() *library.Resource {
	var createdBy *kernel.UserID
	if m.CreatedBy != nil {
		id := kernel.UserID(*m.CreatedBy)
		createdBy = &id
	}

	return &library.Resource{
		ID:                 kernel.ResourceID(m.ID),
		CategoryID:         kernel.CategoryID(m.CategoryID),
		Title:              m.Title,
		Slug:               m.Slug,
		Type:               library.ResourceType(m.Type),
		Description:        m.Description,
		Content:            m.Content,
		FilePath:           m.FilePath,
		FileSize:           m.FileSize,
		ExternalURL:        m.ExternalURL,
		Author:             m.Author,
		PublicationDate:    m.PublicationDate,
		Tags:               m.Tags,
		IsPublished:        m.IsPublished,
		IsFeatured:         m.IsFeatured,
		IsAccessible:       m.IsAccessible,
		AccessibilityNotes: m.AccessibilityNotes,
		ViewCount:          m.ViewCount,
		DownloadCount:      m.DownloadCount,
		CreatedBy:          createdBy,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func fromEntity(res *library.Resource) *resourceModel {
	var createdBy *string
	if res.CreatedBy != nil {
		id := res.CreatedBy.String()
		createdBy = &id
	}

	return &resourceModel{
		ID:                 string(res.ID),
		CategoryID:         res.CategoryID.String(),
		Title:              res.Title,
		Slug:               res.Slug,
		Type:               string(res.Type),
		Description:        res.Description,
		Content:            res.Content,
		FilePath:           res.FilePath,
		FileSize:           res.FileSize,
		ExternalURL:        res.ExternalURL,
		Author:             res.Author,
		PublicationDate:    res.PublicationDate,
		Tags:               res.Tags,
		IsPublished:        res.IsPublished,
		IsFeatured:         res.IsFeatured,
		IsAccessible:       res.IsAccessible,
		AccessibilityNotes: res.AccessibilityNotes,
		ViewCount:          res.ViewCount,
		DownloadCount:      res.DownloadCount,
		CreatedBy:          createdBy,
		CreatedAt:          res.CreatedAt,
		UpdatedAt:          res.UpdatedAt,
	}
}

// Create persists a new resource
func (r *PostgresResourceRepository) Create(ctx context.Context, res *library.Resource) error {
	model := fromEntity(res)

	query := `
		INSERT INTO library_resources (
			id, category_id, title, slug, resource_type, description,
			content, file_path, file_size, external_url, author,
			publication_date, tags, is_published, is_featured,
			is_accessible, accessibility_notes, view_count, download_count,
			created_by, created_at, updated_at
		) VALUES (
			:id, :category_id, :title, :slug, :resource_type, :description,
			:content, :file_path, :file_size, :external_url, :author,
			:publication_date, :tags, :is_published, :is_featured,
			:is_accessible, :accessibility_notes, :view_count, :download_count,
			:created_by, :created_at, :updated_at
		)
	`

	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return library.ErrDuplicateSlug().WithDetail("slug", res.Slug)
		}
		return fmt.Errorf("failed to create resource: %w", err)
	}
	return nil
}

// Update persists changes to an existing resource
func (r *PostgresResourceRepository) Update(ctx context.Context, id kernel.ResourceID, res *library.Resource) error {
	model := fromEntity(res)
	model.ID = string(id)

	query := `
		UPDATE library_resources SET
			category_id = :category_id,
			title = :title,
			slug = :slug,
			description = :description,
			content = :content,
			file_path = :file_path,
			file_size = :file_size,
			external_url = :external_url,
			author = :author,
			publication_date = :publication_date,
			tags = :tags,
			is_published = :is_published,
			is_featured = :is_featured,
			is_accessible = :is_accessible,
			accessibility_notes = :accessibility_notes,
			updated_at = :updated_at
		WHERE id = :id
	`

	result, err := r.db.NamedExecContext(ctx, query, model)
	if err != nil {
		return fmt.Errorf("failed to update resource: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return library.ErrResourceNotFound()
	}
	return nil
}

// GetBySlug retrieves a published resource by slug
func (r *PostgresResourceRepository) GetBySlug(ctx context.Context, slug string) (*library.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM library_resources WHERE slug = $1 AND is_published = true`

	var model resourceModel
	err := r.db.GetContext(ctx, &model, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, library.ErrResourceNotFound()
		}
		return nil, fmt.Errorf("failed to get resource by slug: %w", err)
	}

	return model.toEntity(), nil
}

// GetBySlugAny retrieves a resource by slug regardless of publication state
func (r *PostgresResourceRepository) GetBySlugAny(ctx context.Context, slug string) (*library.Resource, error) {
	query := `SELECT ` + resourceColumns + ` FROM library_resources WHERE slug = $1`

	var model resourceModel
	err := r.db.GetContext(ctx, &model, query, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, library.ErrResourceNotFound()
		}
		return nil, fmt.Errorf("failed to get resource by slug: %w", err)
	}

	return model.toEntity(), nil
}

// List retrieves published resources matching the filters
func (r *PostgresResourceRepository) List(ctx context.Context, filters library.ListFilters, pagination kernel.PaginationOptions) (*kernel.Paginated[library.Resource], error) {
	conditions := []string{"res.is_published = true"}
	args := []any{}

	if filters.CategorySlug != "" {
		args = append(args, filters.CategorySlug)
		conditions = append(conditions, fmt.Sprintf("cat.slug = $%d", len(args)))
	}
	if filters.Type != nil {
		args = append(args, string(*filters.Type))
		conditions = append(conditions, fmt.Sprintf("res.resource_type = $%d", len(args)))
	}
	if filters.Search != "" {
		args = append(args, "%"+filters.Search+"%")
		n := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(res.title ILIKE $%d OR res.description ILIKE $%d OR res.tags ILIKE $%d OR res.author ILIKE $%d)",
			n, n, n, n,
		))
	}

	from := ` FROM library_resources res JOIN resource_categories cat ON cat.id = res.category_id`
	where := " WHERE " + strings.Join(conditions, " AND ")

	var total int
	countQuery := `SELECT COUNT(*)` + from + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count resources: %w", err)
	}

	orderBy := "res.created_at DESC"
	switch filters.Sort {
	case "popular":
		orderBy = "res.view_count DESC, res.download_count DESC"
	case "title":
		orderBy = "res.title ASC"
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	query := fmt.Sprintf(`
		SELECT res.id, res.category_id, res.title, res.slug, res.resource_type,
		       res.description, res.content, res.file_path, res.file_size,
		       res.external_url, res.author, res.publication_date, res.tags,
		       res.is_published, res.is_featured, res.is_accessible,
		       res.accessibility_notes, res.view_count, res.download_count,
		       res.created_by, res.created_at, res.updated_at
		%s%s
		ORDER BY %s
		LIMIT $%d OFFSET $%d
	`, from, where, orderBy, len(args)+1, len(args)+2)
	args = append(args, pagination.PageSize, offset)

	var models []resourceModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	entities := make([]library.Resource, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}

	return &kernel.Paginated[library.Resource]{
		Items: entities,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  totalPages,
		},
		Empty: len(entities) == 0,
	}, nil
}

// Featured retrieves published featured resources, newest first
func (r *PostgresResourceRepository) Featured(ctx context.Context, limit int) ([]library.Resource, error) {
	query := `
		SELECT ` + resourceColumns + `
		FROM library_resources
		WHERE is_published = true AND is_featured = true
		ORDER BY created_at DESC
		LIMIT $1
	`
	return r.selectResources(ctx, query, limit)
}

// Popular retrieves published resources by view count
func (r *PostgresResourceRepository) Popular(ctx context.Context, limit int) ([]library.Resource, error) {
	query := `
		SELECT ` + resourceColumns + `
		FROM library_resources
		WHERE is_published = true
		ORDER BY view_count DESC, download_count DESC
		LIMIT $1
	`
	return r.selectResources(ctx, query, limit)
}

// Recent retrieves published resources, newest first
func (r *PostgresResourceRepository) Recent(ctx context.Context, limit int) ([]library.Resource, error) {
	query := `
		SELECT ` + resourceColumns + `
		FROM library_resources
		WHERE is_published = true
		ORDER BY created_at DESC
		LIMIT $1
	`
	return r.selectResources(ctx, query, limit)
}

// Related retrieves other published resources of the same category
func (r *PostgresResourceRepository) Related(ctx context.Context, categoryID kernel.CategoryID, exclude kernel.ResourceID, limit int) ([]library.Resource, error) {
	query := `
		SELECT ` + resourceColumns + `
		FROM library_resources
		WHERE is_published = true AND category_id = $1 AND id != $2
		ORDER BY created_at DESC
		LIMIT $3
	`
	return r.selectResources(ctx, query, categoryID.String(), exclude.String(), limit)
}

func (r *PostgresResourceRepository) selectResources(ctx context.Context, query string, args ...any) ([]library.Resource, error) {
	var models []resourceModel
	if err := r.db.SelectContext(ctx, &models, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select resources: %w", err)
	}

	entities := make([]library.Resource, 0, len(models))
	for _, model := range models {
		entities = append(entities, *model.toEntity())
	}
	return entities, nil
}

// IncrementViewCount bumps the view counter in place
func (r *PostgresResourceRepository) IncrementViewCount(ctx context.Context, id kernel.ResourceID) error {
	query := `UPDATE library_resources SET view_count = view_count + 1 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id.String()); err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}

// IncrementDownloadCount bumps the download counter in place
func (r *PostgresResourceRepository) IncrementDownloadCount(ctx context.Context, id kernel.ResourceID) error {
	query := `UPDATE library_resources SET download_count = download_count + 1 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id.String()); err != nil {
		return fmt.Errorf("failed to increment download count: %w", err)
	}
	return nil
}

// Stats aggregates the usage counters for the admin panel
func (r *PostgresResourceRepository) Stats(ctx context.Context) (*library.Stats, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM library_resources)                          AS total_resources,
			(SELECT COUNT(*) FROM library_resources WHERE is_published)       AS published_resources,
			(SELECT COUNT(*) FROM resource_categories WHERE is_active = true) AS total_categories,
			COALESCE((SELECT SUM(view_count) FROM library_resources), 0)      AS total_views,
			COALESCE((SELECT SUM(download_count) FROM library_resources), 0)  AS total_downloads,
			(SELECT COUNT(*) FROM resource_bookmarks)                         AS total_bookmarks
	`

	var stats library.Stats
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("failed to aggregate library stats: %w", err)
	}
	return &stats, nil
}

// ============================================================================
// Bookmark Repository
// ============================================================================

// PostgresBookmarkRepository implements library.BookmarkRepository using PostgreSQL
type PostgresBookmarkRepository struct {
	db *sqlx.DB
}

// NewPostgresBookmarkRepository creates a new PostgreSQL bookmark repository
func NewPostgresBookmarkRepository(db *sqlx.DB) *PostgresBookmarkRepository {
	return &PostgresBookmarkRepository{
		db: db,
	}
}

type bookmarkModel struct {
	ID         string    `db:"id"`
	UserID     string    `db:"user_id"`
	ResourceID string    `db:"resource_id"`
	Notes      string    `db:"notes"`
	CreatedAt  time.Time `db:"created_at"`
}

func (m *bookmarkModel) toEntity() *library.Bookmark {
	return &library.Bookmark{
		ID:         kernel.BookmarkID(m.ID),
		UserID:     kernel.UserID(m.UserID),
		ResourceID: kernel.ResourceID(m.ResourceID),
		Notes:      m.Notes,
		CreatedAt:  m.CreatedAt,
	}
}

// Create persists a new bookmark
func (r *PostgresBookmarkRepository) Create(ctx context.Context, b *library.Bookmark) error {
	query := `
		INSERT INTO resource_bookmarks (id, user_id, resource_id, notes, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		b.ID.String(), b.UserID.String(), b.ResourceID.String(), b.Notes, b.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create bookmark: %w", err)
	}
	return nil
}

// Delete removes a bookmark
func (r *PostgresBookmarkRepository) Delete(ctx context.Context, id kernel.BookmarkID) error {
	query := `DELETE FROM resource_bookmarks WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id.String()); err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return nil
}

// GetByUserAndResource retrieves the caller's bookmark of a resource
func (r *PostgresBookmarkRepository) GetByUserAndResource(ctx context.Context, userID kernel.UserID, resourceID kernel.ResourceID) (*library.Bookmark, error) {
	query := `
		SELECT id, user_id, resource_id, notes, created_at
		FROM resource_bookmarks
		WHERE user_id = $1 AND resource_id = $2
	`

	var model bookmarkModel
	err := r.db.GetContext(ctx, &model, query, userID.String(), resourceID.String())
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bookmark: %w", err)
	}

	return model.toEntity(), nil
}

// ListByUser retrieves the caller's bookmarks with their resources
func (r *PostgresBookmarkRepository) ListByUser(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[library.BookmarkedResource], error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM resource_bookmarks WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &total, countQuery, userID.String()); err != nil {
		return nil, fmt.Errorf("failed to count bookmarks: %w", err)
	}

	offset := (pagination.Page - 1) * pagination.PageSize
	totalPages := (total + pagination.PageSize - 1) / pagination.PageSize

	query := `
		SELECT b.id AS bookmark_id, b.notes, b.created_at AS bookmarked_at,
		       res.id, res.category_id, res.title, res.slug, res.resource_type,
		       res.description, res.content, res.file_path, res.file_size,
		       res.external_url, res.author, res.publication_date, res.tags,
		       res.is_published, res.is_featured, res.is_accessible,
		       res.accessibility_notes, res.view_count, res.download_count,
		       res.created_by, res.created_at, res.updated_at
		FROM resource_bookmarks b
		JOIN library_resources res ON res.id = b.resource_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
		LIMIT $2 OFFSET $3
	`

	var models []struct {
		BookmarkID   string    `db:"bookmark_id"`
		Notes        string    `db:"notes"`
		BookmarkedAt time.Time `db:"bookmarked_at"`
		resourceModel
	}
	if err := r.db.SelectContext(ctx, &models, query, userID.String(), pagination.PageSize, offset); err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	entities := make([]library.BookmarkedResource, 0, len(models))
	for _, model := range models {
		entities = append(entities, library.BookmarkedResource{
			Bookmark: library.Bookmark{
				ID:         kernel.BookmarkID(model.BookmarkID),
				UserID:     userID,
				ResourceID: kernel.ResourceID(model.resourceModel.ID),
				Notes:      model.Notes,
				CreatedAt:  model.BookmarkedAt,
			},
			Resource: *model.resourceModel.toEntity(),
		})
	}

	return &kernel.Paginated[library.BookmarkedResource]{
		Items: entities,
		Page: kernel.Page{
			Number: pagination.Page,
			Size:   pagination.PageSize,
			Total:  total,
			Pages:  totalPages,
		},
		Empty: len(entities) == 0,
	}, nil
}

// CountByUser counts the caller's bookmarks
func (r *PostgresBookmarkRepository) CountByUser(ctx context.Context, userID kernel.UserID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM resource_bookmarks WHERE user_id = $1`
	if err := r.db.GetContext(ctx, &count, query, userID.String()); err != nil {
		return 0, fmt.Errorf("failed to count bookmarks: %w", err)
	}
	return count, nil
}
