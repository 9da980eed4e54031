package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
	"github.com/yukikurage/trip-planner-api/internal/models"
	"github.com/yukikurage/trip-planner-api/internal/repository"
	"github.com/yukikurage/trip-planner-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrPointOfInterestNotFound       = apierrors.NotFound("point of interest not found", "Point of interest not found")
	ErrPointOfInterestFieldsRequired = apierrors.Validation("point of interest missing fields", "Name and location are required")
	ErrPointOfInterestFilterRequired = apierrors.BadRequest("point of interest list without filter", "itineraryId is required")
)

// PointOfInterestService handles point-of-interest business logic
type PointOfInterestService struct {
	pois        repository.PointOfInterestRepository
	itineraries repository.ItineraryRepository
}

// NewPointOfInterestService creates a new PointOfInterestService
func NewPointOfInterestService(pois repository.PointOfInterestRepository, itineraries repository.ItineraryRepository) *PointOfInterestService {
	return &PointOfInterestService{pois: pois, itineraries: itineraries}
}

type CreatePointOfInterestInput struct {
	ItineraryID string
	Name        string
	Location    string
	Description string
}

type UpdatePointOfInterestInput struct {
	Name        *string
	Location    *string
	Description *string
}

// Create adds a point of interest to an itinerary owned by actorID
func (s *PointOfInterestService) Create(ctx context.Context, actorID string, input CreatePointOfInterestInput) (*models.PointOfInterest, error) {
	if err := requireID(input.ItineraryID, "Itinerary"); err != nil {
		return nil, err
	}

	poi := &models.PointOfInterest{
		ItineraryID: input.ItineraryID,
		Name:        strings.TrimSpace(input.Name),
		Location:    strings.TrimSpace(input.Location),
		Description: strings.TrimSpace(input.Description),
	}
	if poi.Name == "" || poi.Location == "" {
		return nil, ErrPointOfInterestFieldsRequired
	}

	if err := ensureItineraryOwner(ctx, s.itineraries, actorID, input.ItineraryID); err != nil {
		return nil, err
	}

	if err := s.pois.Create(ctx, poi); err != nil {
		return nil, wrapStoreError("create point of interest", err)
	}
	return s.load(ctx, poi.ID)
}

func (s *PointOfInterestService) Get(ctx context.Context, actorID, id string) (*models.PointOfInterest, error) {
	if err := requireID(id, "Point of interest"); err != nil {
		return nil, err
	}
	poi, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if poi.Itinerary == nil || poi.Itinerary.OwnerID != actorID {
		return nil, ErrPointOfInterestNotFound
	}
	return poi, nil
}

func (s *PointOfInterestService) Update(ctx context.Context, actorID, id string, input UpdatePointOfInterestInput) (*models.PointOfInterest, error) {
	poi, err := s.Get(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		poi.Name = strings.TrimSpace(*input.Name)
	}
	if input.Location != nil {
		poi.Location = strings.TrimSpace(*input.Location)
	}
	if input.Description != nil {
		poi.Description = strings.TrimSpace(*input.Description)
	}
	if poi.Name == "" || poi.Location == "" {
		return nil, ErrPointOfInterestFieldsRequired
	}

	if err := s.pois.Update(ctx, poi); err != nil {
		return nil, wrapStoreError("update point of interest", err)
	}
	return s.load(ctx, poi.ID)
}

func (s *PointOfInterestService) Delete(ctx context.Context, actorID, id string) (*models.PointOfInterest, error) {
	poi, err := s.Get(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if err := s.pois.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPointOfInterestNotFound
		}
		return nil, fmt.Errorf("failed to delete point of interest: %w", err)
	}
	return poi, nil
}

// ListByItinerary returns one page of an itinerary's points of interest.
// An itinerary the caller cannot see yields an empty page.
func (s *PointOfInterestService) ListByItinerary(ctx context.Context, actorID, itineraryID string, params utils.PaginationParams) (Page[models.PointOfInterest], error) {
	if itineraryID == "" {
		return Page[models.PointOfInterest]{}, ErrPointOfInterestFilterRequired
	}
	if err := ensureItineraryOwner(ctx, s.itineraries, actorID, itineraryID); err != nil {
		if errors.Is(err, ErrItineraryNotFound) {
			return emptyPage[models.PointOfInterest](params), nil
		}
		return Page[models.PointOfInterest]{}, err
	}

	items, total, err := s.pois.ListByItinerary(ctx, itineraryID, params)
	if err != nil {
		return Page[models.PointOfInterest]{}, fmt.Errorf("failed to list points of interest: %w", err)
	}
	return newPage(items, params, total), nil
}

func (s *PointOfInterestService) load(ctx context.Context, id string) (*models.PointOfInterest, error) {
	poi, err := s.pois.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPointOfInterestNotFound
		}
		return nil, fmt.Errorf("failed to find point of interest: %w", err)
	}
	return poi, nil
}
