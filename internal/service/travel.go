// Package service contains the business logic for the travel log.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here. Services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"

	"github.com/pkordes/travel-log/internal/domain"
	"github.com/pkordes/travel-log/internal/repo"
)

// TravelService implements business logic for Travel operations.
type TravelService struct {
	repo repo.TravelRepo
}

// NewTravelService constructs a TravelService backed by the provided TravelRepo.
func NewTravelService(r repo.TravelRepo) *TravelService {
	return &TravelService{repo: r}
}

// List returns all travels in the order described by p.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TravelService) List(ctx context.Context, p domain.ListParams) ([]domain.Travel, error) {
	travels, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("service.TravelService.List: %w", err)
	}
	if travels == nil {
		return []domain.Travel{}, nil
	}
	return travels, nil
}

// GetByID returns a single travel.
// Non-positive ids are reported as domain.ErrNotFound without a query.
func (s *TravelService) GetByID(ctx context.Context, id int64) (domain.Travel, error) {
	if id <= 0 {
		return domain.Travel{}, fmt.Errorf("service.TravelService.GetByID: %w", domain.ErrNotFound)
	}
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("service.TravelService.GetByID: %w", err)
	}
	return result, nil
}

// Create validates and persists a new travel.
// Returns a *domain.ValidationError listing every violated rule.
func (s *TravelService) Create(ctx context.Context, in domain.TravelInput) (domain.Travel, error) {
	travel, errs := ValidateTravel(in)
	if len(errs) > 0 {
		return domain.Travel{}, &domain.ValidationError{Fields: errs}
	}
	result, err := s.repo.Create(ctx, travel)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("service.TravelService.Create: %w", err)
	}
	return result, nil
}

// Update validates in and replaces every mutable field of travel id with it.
// Returns a *domain.ValidationError for invalid input and domain.ErrNotFound
// if the travel does not exist. Validation runs before the existence check.
func (s *TravelService) Update(ctx context.Context, id int64, in domain.TravelInput) (domain.Travel, error) {
	travel, errs := ValidateTravel(in)
	if len(errs) > 0 {
		return domain.Travel{}, &domain.ValidationError{Fields: errs}
	}
	if id <= 0 {
		return domain.Travel{}, fmt.Errorf("service.TravelService.Update: %w", domain.ErrNotFound)
	}
	travel.ID = id
	result, err := s.repo.Update(ctx, travel)
	if err != nil {
		return domain.Travel{}, fmt.Errorf("service.TravelService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a travel by ID.
// Returns domain.ErrNotFound if the travel does not exist.
func (s *TravelService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("service.TravelService.Delete: %w", domain.ErrNotFound)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TravelService.Delete: %w", err)
	}
	return nil
}

// MapTravels returns the travels that have coordinates, newest year first,
// then by city. Always returns a non-nil slice.
func (s *TravelService) MapTravels(ctx context.Context) ([]domain.Travel, error) {
	travels, err := s.repo.ListWithCoordinates(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TravelService.MapTravels: %w", err)
	}
	if travels == nil {
		return []domain.Travel{}, nil
	}
	return travels, nil
}

// Markers returns the map travels grouped into one marker per location.
func (s *TravelService) Markers(ctx context.Context) ([]domain.Marker, error) {
	travels, err := s.repo.ListWithCoordinates(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TravelService.Markers: %w", err)
	}
	return domain.GroupMarkers(travels), nil
}
