package librarysrv

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/incluempleo/vinculo/inclusion/library"
	"github.com/incluempleo/vinculo/pkg/fsx"
	"github.com/incluempleo/vinculo/pkg/kernel"
	"github.com/incluempleo/vinculo/pkg/logx"
)

const (
	resourceDir = "library/resources"

	featuredLimit = 6
	popularLimit  = 5
	recentLimit   = 5
	relatedLimit  = 4
)

// ResourceFile is an uploaded attachment for a resource
type ResourceFile struct {
	Filename string
	Data     []byte
}

// Service handles the best-practices library for companies
type Service struct {
	categories library.CategoryRepository
	resources  library.ResourceRepository
	bookmarks  library.BookmarkRepository
	files      fsx.FileSystem
}

// NewService creates a new library service
func NewService(
	categories library.CategoryRepository,
	resources library.ResourceRepository,
	bookmarks library.BookmarkRepository,
	files fsx.FileSystem,
) *Service {
	return &Service{
		categories: categories,
		resources:  resources,
		bookmarks:  bookmarks,
		files:      files,
	}
}

// ============================================================================
// Reading
// ============================================================================

// Home builds the library landing payload for the caller
func (s *Service) Home(ctx context.Context, userID kernel.UserID) (*library.HomeResponse, error) {
	categories, err := s.categories.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	featured, err := s.resources.Featured(ctx, featuredLimit)
	if err != nil {
		return nil, err
	}

	popular, err := s.resources.Popular(ctx, popularLimit)
	if err != nil {
		return nil, err
	}

	recent, err := s.resources.Recent(ctx, recentLimit)
	if err != nil {
		return nil, err
	}

	bookmarkCount, err := s.bookmarks.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &library.HomeResponse{
		Categories:    categories,
		Featured:      featured,
		Popular:       popular,
		Recent:        recent,
		BookmarkCount: bookmarkCount,
	}, nil
}

// ListResources retrieves published resources matching the filters
func (s *Service) ListResources(ctx context.Context, filters library.ListFilters, pagination kernel.PaginationOptions) (*kernel.Paginated[library.Resource], error) {
	return s.resources.List(ctx, filters, pagination)
}

// GetResource retrieves one published resource, counts the view and
// resolves the caller's bookmark state plus related reading
func (s *Service) GetResource(ctx context.Context, slug string, userID kernel.UserID) (*library.ResourceDetail, error) {
	res, err := s.resources.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := s.resources.IncrementViewCount(ctx, res.ID); err != nil {
		logx.Warnf("Failed to count view of resource %s: %v", res.ID, err)
	} else {
		res.ViewCount++
	}

	bookmark, err := s.bookmarks.GetByUserAndResource(ctx, userID, res.ID)
	if err != nil {
		return nil, err
	}

	related, err := s.resources.Related(ctx, res.CategoryID, res.ID, relatedLimit)
	if err != nil {
		return nil, err
	}

	return &library.ResourceDetail{
		Resource:     *res,
		Tags:         res.TagsList(),
		IsBookmarked: bookmark != nil,
		Related:      related,
	}, nil
}

// DownloadResource streams the attached file of a published resource
// and counts the download
func (s *Service) DownloadResource(ctx context.Context, slug string) ([]byte, string, error) {
	res, err := s.resources.GetBySlug(ctx, slug)
	if err != nil {
		return nil, "", err
	}
	if !res.HasFile() {
		return nil, "", library.ErrNoFile().WithDetail("slug", slug)
	}

	data, err := s.files.ReadFile(ctx, res.FilePath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read resource file: %w", err)
	}

	if err := s.resources.IncrementDownloadCount(ctx, res.ID); err != nil {
		logx.Warnf("Failed to count download of resource %s: %v", res.ID, err)
	}

	filename := res.Slug + strings.ToLower(filepath.Ext(res.FilePath))
	return data, filename, nil
}

// ============================================================================
// Bookmarks
// ============================================================================

// ToggleBookmark saves the resource for the caller, or removes the
// existing bookmark when it was already saved
func (s *Service) ToggleBookmark(ctx context.Context, userID kernel.UserID, slug string, req library.BookmarkRequest) (*library.ToggleBookmarkResponse, error) {
	res, err := s.resources.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	existing, err := s.bookmarks.GetByUserAndResource(ctx, userID, res.ID)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		if err := s.bookmarks.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
		return &library.ToggleBookmarkResponse{
			Bookmarked: false,
			Message:    "Marcador eliminado",
		}, nil
	}

	bookmark := &library.Bookmark{
		ID:         kernel.NewBookmarkID(uuid.NewString()),
		UserID:     userID,
		ResourceID: res.ID,
		Notes:      req.Notes,
		CreatedAt:  time.Now(),
	}
	if err := s.bookmarks.Create(ctx, bookmark); err != nil {
		return nil, err
	}

	return &library.ToggleBookmarkResponse{
		Bookmarked: true,
		Message:    "Recurso guardado en marcadores",
	}, nil
}

// ListBookmarks retrieves the caller's saved resources, newest first
func (s *Service) ListBookmarks(ctx context.Context, userID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[library.BookmarkedResource], error) {
	return s.bookmarks.ListByUser(ctx, userID, pagination)
}

// ============================================================================
// Administration
// ============================================================================

// CreateCategory adds a category to the library
func (s *Service) CreateCategory(ctx context.Context, req library.CreateCategoryRequest) (*library.Category, error) {
	icon := req.Icon
	if icon == "" {
		icon = "bi-folder"
	}

	now := time.Now()
	category := &library.Category{
		ID:          kernel.NewCategoryID(uuid.NewString()),
		Name:        req.Name,
		Slug:        library.Slugify(req.Name),
		Description: req.Description,
		Icon:        icon,
		SortOrder:   req.SortOrder,
		IsActive:    true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := category.Validate(); err != nil {
		return nil, err
	}

	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}

	logx.Infof("Library category created: %s (%s)", category.Name, category.Slug)
	return category, nil
}

// CreateResource publishes a resource, storing the attached file when
// one is uploaded
func (s *Service) CreateResource(ctx context.Context, adminID kernel.UserID, req library.CreateResourceRequest, file *ResourceFile) (*library.Resource, error) {
	now := time.Now()
	res := &library.Resource{
		ID:                 kernel.NewResourceID(uuid.NewString()),
		CategoryID:         req.CategoryID,
		Title:              req.Title,
		Slug:               library.Slugify(req.Title),
		Type:               req.Type,
		Description:        req.Description,
		Content:            req.Content,
		ExternalURL:        req.ExternalURL,
		Author:             req.Author,
		PublicationDate:    req.PublicationDate,
		Tags:               req.Tags,
		IsPublished:        true,
		IsFeatured:         req.IsFeatured,
		IsAccessible:       req.IsAccessible,
		AccessibilityNotes: req.AccessibilityNotes,
		CreatedBy:          &adminID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if file != nil {
		ext, err := allowedExt(file.Filename)
		if err != nil {
			return nil, err
		}
		res.FilePath = s.files.Join(resourceDir, now.Format("2006"), now.Format("01"), res.Slug+ext)
		res.FileSize = int64(len(file.Data))
	}

	if err := res.Validate(); err != nil {
		return nil, err
	}

	if file != nil {
		if err := s.files.WriteFile(ctx, res.FilePath, file.Data); err != nil {
			return nil, fmt.Errorf("failed to store resource file: %w", err)
		}
	}

	if err := s.resources.Create(ctx, res); err != nil {
		return nil, err
	}

	logx.Infof("Library resource published: %s (%s)", res.Title, res.Slug)
	return res, nil
}

// UpdateResource edits a resource; nil request fields stay untouched
func (s *Service) UpdateResource(ctx context.Context, slug string, req library.UpdateResourceRequest) (*library.Resource, error) {
	res, err := s.resources.GetBySlugAny(ctx, slug)
	if err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		res.CategoryID = *req.CategoryID
	}
	if req.Title != nil {
		res.Title = *req.Title
	}
	if req.Description != nil {
		res.Description = *req.Description
	}
	if req.Content != nil {
		res.Content = *req.Content
	}
	if req.ExternalURL != nil {
		res.ExternalURL = *req.ExternalURL
	}
	if req.Tags != nil {
		res.Tags = *req.Tags
	}
	if req.IsPublished != nil {
		res.IsPublished = *req.IsPublished
	}
	if req.IsFeatured != nil {
		res.IsFeatured = *req.IsFeatured
	}
	res.UpdatedAt = time.Now()

	if err := res.Validate(); err != nil {
		return nil, err
	}

	if err := s.resources.Update(ctx, res.ID, res); err != nil {
		return nil, err
	}
	return res, nil
}

// GetStats aggregates the library usage counters for the admin panel
func (s *Service) GetStats(ctx context.Context) (*library.Stats, error) {
	return s.resources.Stats(ctx)
}

// allowedExt validates office-document uploads only
func allowedExt(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf", ".doc", ".docx", ".xls", ".xlsx", ".ppt", ".pptx":
		return ext, nil
	}
	return "", library.ErrFileNotAllowed().WithDetail("extension", ext)
}
