package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/Lixing-Zhang/menu-cms/internal/cache"
	"github.com/Lixing-Zhang/menu-cms/internal/models"
	"github.com/Lixing-Zhang/menu-cms/internal/repository"
)

// ImageStore persists uploaded images and returns their public path
type ImageStore interface {
	Save(filename string, r io.Reader) (string, error)
	Delete(publicPath string) error
}

// Upload is an image attached to a menu item request
type Upload struct {
	Filename string
	Content  io.Reader
}

// MenuService handles menu item business logic
type MenuService struct {
	repo   repository.MenuItemRepository
	images ImageStore
	logger *slog.Logger
	menuInvalidator
}

// NewMenuService creates a new menu service
func NewMenuService(repo repository.MenuItemRepository, images ImageStore, menuCache cache.MenuCache, logger *slog.Logger) *MenuService {
	return &MenuService{
		repo:            repo,
		images:          images,
		logger:          logger,
		menuInvalidator: menuInvalidator{cache: menuCache, logger: logger},
	}
}

// List returns all menu items, optionally with their translations
func (s *MenuService) List(ctx context.Context, withTranslations bool) ([]models.MenuItem, error) {
	return s.repo.List(ctx, withTranslations)
}

// Get returns a menu item with its translations
func (s *MenuService) Get(ctx context.Context, id int64) (*models.MenuItem, error) {
	return s.repo.GetByID(ctx, id, true)
}

// Create validates the input, stores the optional image and inserts the item.
// Items are available unless the input says otherwise.
func (s *MenuService) Create(ctx context.Context, in models.MenuItemInput, image *Upload) (*models.MenuItem, error) {
	if err := in.ValidateCreate(); err != nil {
		return nil, wrapValidationError(err)
	}

	item := &models.MenuItem{IsAvailable: true}
	in.Apply(item)

	if image != nil {
		path, err := s.images.Save(image.Filename, image.Content)
		if err != nil {
			return nil, fmt.Errorf("save image: %w", err)
		}
		item.ImagePath = &path
	}

	if err := s.repo.Create(ctx, item); err != nil {
		if item.ImagePath != nil {
			s.removeImage(*item.ImagePath)
		}
		return nil, err
	}

	s.invalidate(ctx)
	s.logger.Info("menu item created", "menu_item_id", item.ID, "name", item.NameHR)
	return item, nil
}

// Update applies the provided fields. A new image replaces the previous file.
func (s *MenuService) Update(ctx context.Context, id int64, in models.MenuItemInput, image *Upload) (*models.MenuItem, error) {
	if err := in.ValidateUpdate(); err != nil {
		return nil, wrapValidationError(err)
	}

	item, err := s.repo.GetByID(ctx, id, false)
	if err != nil {
		return nil, err
	}
	in.Apply(item)

	var oldImage *string
	if image != nil {
		path, err := s.images.Save(image.Filename, image.Content)
		if err != nil {
			return nil, fmt.Errorf("save image: %w", err)
		}
		oldImage = item.ImagePath
		item.ImagePath = &path
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if image != nil {
			s.removeImage(*item.ImagePath)
		}
		return nil, err
	}
	if oldImage != nil {
		s.removeImage(*oldImage)
	}

	s.invalidate(ctx)
	return item, nil
}

// Delete removes the item, its translations and its image
func (s *MenuService) Delete(ctx context.Context, id int64) error {
	item, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if item.ImagePath != nil {
		s.removeImage(*item.ImagePath)
	}

	s.invalidate(ctx)
	s.logger.Info("menu item deleted", "menu_item_id", id)
	return nil
}

func (s *MenuService) removeImage(path string) {
	if err := s.images.Delete(path); err != nil {
		s.logger.Warn("failed to delete image", "path", path, "error", err)
	}
}
