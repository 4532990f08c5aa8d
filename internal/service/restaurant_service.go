package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Lixing-Zhang/menu-cms/internal/cache"
	"github.com/Lixing-Zhang/menu-cms/internal/models"
	"github.com/Lixing-Zhang/menu-cms/internal/repository"
)

// RestaurantService manages the restaurant profile
type RestaurantService struct {
	repo repository.RestaurantRepository
	menuInvalidator
}

// NewRestaurantService creates a new restaurant service
func NewRestaurantService(repo repository.RestaurantRepository, menuCache cache.MenuCache, logger *slog.Logger) *RestaurantService {
	return &RestaurantService{
		repo:            repo,
		menuInvalidator: menuInvalidator{cache: menuCache, logger: logger},
	}
}

// Get returns the stored profile or the default one
func (s *RestaurantService) Get(ctx context.Context) (*models.RestaurantInfo, error) {
	info, err := s.repo.Get(ctx)
	if errors.Is(err, repository.ErrRestaurantInfoNotFound) {
		def := models.DefaultRestaurantInfo()
		return &def, nil
	}
	return info, err
}

// Save validates and stores the profile
func (s *RestaurantService) Save(ctx context.Context, in models.RestaurantInfoInput) (*models.RestaurantInfo, error) {
	if err := in.Validate(); err != nil {
		return nil, wrapValidationError(err)
	}
	info, err := s.repo.Save(ctx, in)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx)
	return info, nil
}
