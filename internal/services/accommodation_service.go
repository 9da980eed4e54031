package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
	"github.com/yukikurage/trip-planner-api/internal/models"
	"github.com/yukikurage/trip-planner-api/internal/repository"
	"github.com/yukikurage/trip-planner-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrAccommodationNotFound       = apierrors.NotFound("accommodation not found", "Accommodation not found")
	ErrAccommodationFieldsRequired = apierrors.Validation("accommodation missing fields", "Type, name, address, location, check-in date and check-out date are required")
	ErrInvalidAccommodationType    = apierrors.Validation("unknown accommodation type", "Type must be one of Hotel, Airbnb, Hostel, Other")
	ErrCheckInAfterCheckOut        = apierrors.BadRequest("check-in after check-out", "Check-in date cannot be after check-out date")
	ErrAccommodationFilterRequired = apierrors.BadRequest("accommodation list without filter", "itineraryId or userId is required")
	ErrForeignAccommodations       = apierrors.Forbidden("listing another user's accommodations", "You can only list your own accommodations")
)

// AccommodationService handles accommodation business logic
type AccommodationService struct {
	accommodations repository.AccommodationRepository
	itineraries    repository.ItineraryRepository
}

// NewAccommodationService creates a new AccommodationService
func NewAccommodationService(accommodations repository.AccommodationRepository, itineraries repository.ItineraryRepository) *AccommodationService {
	return &AccommodationService{accommodations: accommodations, itineraries: itineraries}
}

// CreateAccommodationInput represents the input for creating an accommodation
type CreateAccommodationInput struct {
	ItineraryID        string
	Type               string
	Name               string
	Address            string
	ConfirmationNumber string
	CheckInDate        string
	CheckOutDate       string
	Location           string
}

// UpdateAccommodationInput carries the fields to change; nil means unchanged.
type UpdateAccommodationInput struct {
	Type               *string
	Name               *string
	Address            *string
	ConfirmationNumber *string
	CheckInDate        *string
	CheckOutDate       *string
	Location           *string
}

// AccommodationFilter selects a list by parent itinerary or by creator.
type AccommodationFilter struct {
	ItineraryID string
	UserID      string
}

// Create books an accommodation on an itinerary owned by actorID
func (s *AccommodationService) Create(ctx context.Context, actorID string, input CreateAccommodationInput) (*models.Accommodation, error) {
	if err := requireID(input.ItineraryID, "Itinerary"); err != nil {
		return nil, err
	}
	if err := requireID(actorID, "User"); err != nil {
		return nil, err
	}

	accommodation := &models.Accommodation{
		Type:               models.AccommodationType(strings.TrimSpace(input.Type)),
		Name:               strings.TrimSpace(input.Name),
		Address:            strings.TrimSpace(input.Address),
		ConfirmationNumber: strings.TrimSpace(input.ConfirmationNumber),
		Location:           strings.TrimSpace(input.Location),
		ItineraryID:        input.ItineraryID,
		CreatedByID:        actorID,
	}
	if accommodation.Type == "" || accommodation.Name == "" || accommodation.Address == "" ||
		accommodation.Location == "" || strings.TrimSpace(input.CheckInDate) == "" || strings.TrimSpace(input.CheckOutDate) == "" {
		return nil, ErrAccommodationFieldsRequired
	}
	if !accommodation.Type.Valid() {
		return nil, ErrInvalidAccommodationType
	}
	if err := applyStay(accommodation, &input.CheckInDate, &input.CheckOutDate); err != nil {
		return nil, err
	}

	if err := ensureItineraryOwner(ctx, s.itineraries, actorID, input.ItineraryID); err != nil {
		return nil, err
	}

	if err := s.accommodations.Create(ctx, accommodation); err != nil {
		return nil, wrapStoreError("create accommodation", err)
	}
	return s.load(ctx, accommodation.ID)
}

// Get returns an accommodation whose itinerary actorID owns
func (s *AccommodationService) Get(ctx context.Context, actorID, id string) (*models.Accommodation, error) {
	if err := requireID(id, "Accommodation"); err != nil {
		return nil, err
	}
	accommodation, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if accommodation.Itinerary == nil || accommodation.Itinerary.OwnerID != actorID {
		return nil, ErrAccommodationNotFound
	}
	return accommodation, nil
}

// Update merges the provided fields into an accommodation
func (s *AccommodationService) Update(ctx context.Context, actorID, id string, input UpdateAccommodationInput) (*models.Accommodation, error) {
	accommodation, err := s.Get(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	if input.Type != nil {
		t := models.AccommodationType(strings.TrimSpace(*input.Type))
		if !t.Valid() {
			return nil, ErrInvalidAccommodationType
		}
		accommodation.Type = t
	}
	if input.Name != nil {
		accommodation.Name = strings.TrimSpace(*input.Name)
	}
	if input.Address != nil {
		accommodation.Address = strings.TrimSpace(*input.Address)
	}
	if input.ConfirmationNumber != nil {
		accommodation.ConfirmationNumber = strings.TrimSpace(*input.ConfirmationNumber)
	}
	if input.Location != nil {
		accommodation.Location = strings.TrimSpace(*input.Location)
	}
	if err := applyStay(accommodation, input.CheckInDate, input.CheckOutDate); err != nil {
		return nil, err
	}

	if err := s.accommodations.Update(ctx, accommodation); err != nil {
		return nil, wrapStoreError("update accommodation", err)
	}
	return s.load(ctx, accommodation.ID)
}

// Delete removes an accommodation and returns it
func (s *AccommodationService) Delete(ctx context.Context, actorID, id string) (*models.Accommodation, error) {
	accommodation, err := s.Get(ctx, actorID, id)
	if err != nil {
		return nil, err
	}
	if err := s.accommodations.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccommodationNotFound
		}
		return nil, fmt.Errorf("failed to delete accommodation: %w", err)
	}
	return accommodation, nil
}

// List returns one page of accommodations for an itinerary or for the caller.
// An itinerary the caller cannot see yields an empty page.
func (s *AccommodationService) List(ctx context.Context, actorID string, filter AccommodationFilter, params utils.PaginationParams) (Page[models.Accommodation], error) {
	var (
		items []models.Accommodation
		total int64
		err   error
	)

	switch {
	case filter.ItineraryID != "":
		if err := ensureItineraryOwner(ctx, s.itineraries, actorID, filter.ItineraryID); err != nil {
			if errors.Is(err, ErrItineraryNotFound) {
				return emptyPage[models.Accommodation](params), nil
			}
			return Page[models.Accommodation]{}, err
		}
		items, total, err = s.accommodations.ListByItinerary(ctx, filter.ItineraryID, params)
	case filter.UserID != "":
		if err := requireID(filter.UserID, "User"); err != nil {
			return Page[models.Accommodation]{}, err
		}
		if filter.UserID != actorID {
			return Page[models.Accommodation]{}, ErrForeignAccommodations
		}
		items, total, err = s.accommodations.ListByCreator(ctx, filter.UserID, params)
	default:
		return Page[models.Accommodation]{}, ErrAccommodationFilterRequired
	}

	if err != nil {
		return Page[models.Accommodation]{}, fmt.Errorf("failed to list accommodations: %w", err)
	}
	return newPage(items, params, total), nil
}

func (s *AccommodationService) load(ctx context.Context, id string) (*models.Accommodation, error) {
	accommodation, err := s.accommodations.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccommodationNotFound
		}
		return nil, fmt.Errorf("failed to find accommodation: %w", err)
	}
	return accommodation, nil
}

// applyStay parses whichever of check-in and check-out are given and checks the merged order.
func applyStay(accommodation *models.Accommodation, checkIn, checkOut *string) error {
	var err error
	if checkIn != nil {
		if accommodation.CheckInDate, err = parseStayDate(*checkIn, "checkInDate"); err != nil {
			return err
		}
	}
	if checkOut != nil {
		if accommodation.CheckOutDate, err = parseStayDate(*checkOut, "checkOutDate"); err != nil {
			return err
		}
	}
	if accommodation.CheckInDate.After(accommodation.CheckOutDate) {
		return ErrCheckInAfterCheckOut
	}
	return nil
}

func parseStayDate(value, field string) (time.Time, error) {
	d, err := utils.ParseDate(value)
	if err != nil {
		return time.Time{}, invalidDate(field)
	}
	return d, nil
}
