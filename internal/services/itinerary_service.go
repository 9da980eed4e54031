package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/yukikurage/trip-planner-api/internal/constants"
	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
	"github.com/yukikurage/trip-planner-api/internal/models"
	"github.com/yukikurage/trip-planner-api/internal/repository"
	"github.com/yukikurage/trip-planner-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrItineraryNotFound      = apierrors.NotFound("itinerary not found", "Itinerary not found")
	ErrItineraryTitleRequired = apierrors.Validation("itinerary without title or destination", "Title or destination is required")
	ErrItineraryDatesRequired = apierrors.Validation("itinerary without dates", "Start date and end date are required")
	ErrItineraryDateOrder     = apierrors.Validation("itinerary end before start", "End date cannot be before start date")
	ErrDuplicateDay           = apierrors.Validation("duplicate itinerary day", "Each day may appear only once")
	ErrDayOutOfRange          = apierrors.Validation("itinerary day outside trip", "Days must fall between the start date and end date")
	ErrActivityFieldsRequired = apierrors.Validation("activity missing fields", "Activity time and description are required")
	ErrInvalidActivityTime    = apierrors.Validation("unparseable activity time", "Activity time must be HH:MM")
)

func invalidDate(field string) error {
	return apierrors.Validation(
		fmt.Sprintf("unparseable %s", field),
		fmt.Sprintf("%s must be a valid date (YYYY-MM-DD)", field),
	)
}

// ItineraryService handles itinerary business logic
type ItineraryService struct {
	itineraries repository.ItineraryRepository
}

// NewItineraryService creates a new ItineraryService
func NewItineraryService(itineraries repository.ItineraryRepository) *ItineraryService {
	return &ItineraryService{itineraries: itineraries}
}

// ActivityInput is one timed entry of a day plan
type ActivityInput struct {
	Time        string
	Description string
}

// DayInput is one dated plan with its activities
type DayInput struct {
	Date       string
	Activities []ActivityInput
}

// CreateItineraryInput represents the input for creating an itinerary
type CreateItineraryInput struct {
	Title       string
	Destination string
	StartDate   string
	EndDate     string
	Days        []DayInput
}

// UpdateItineraryInput carries the fields to change; nil means unchanged.
// A non-nil Days replaces the whole day list.
type UpdateItineraryInput struct {
	Title       *string
	Destination *string
	StartDate   *string
	EndDate     *string
	Days        *[]DayInput
}

// Create creates an itinerary owned by ownerID
func (s *ItineraryService) Create(ctx context.Context, ownerID string, input CreateItineraryInput) (*models.Itinerary, error) {
	if err := requireID(ownerID, "User"); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	destination := strings.TrimSpace(input.Destination)
	if title == "" {
		title = destination
	}
	if title == "" {
		return nil, ErrItineraryTitleRequired
	}
	if strings.TrimSpace(input.StartDate) == "" || strings.TrimSpace(input.EndDate) == "" {
		return nil, ErrItineraryDatesRequired
	}

	itinerary := &models.Itinerary{
		OwnerID:     ownerID,
		Title:       title,
		Destination: destination,
	}
	if err := applyDates(itinerary, &input.StartDate, &input.EndDate); err != nil {
		return nil, err
	}

	days, err := buildDays(input.Days)
	if err != nil {
		return nil, err
	}
	if err := checkDayRange(itinerary, days); err != nil {
		return nil, err
	}
	itinerary.Days = days

	if err := s.itineraries.Create(ctx, itinerary); err != nil {
		return nil, wrapStoreError("create itinerary", err)
	}

	return s.load(ctx, itinerary.ID)
}

// Get returns an itinerary visible to actorID
func (s *ItineraryService) Get(ctx context.Context, actorID, id string) (*models.Itinerary, error) {
	if err := requireID(id, "Itinerary"); err != nil {
		return nil, err
	}
	itinerary, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if itinerary.OwnerID != actorID {
		return nil, ErrItineraryNotFound
	}
	return itinerary, nil
}

// Update merges the provided fields into an itinerary
func (s *ItineraryService) Update(ctx context.Context, actorID, id string, input UpdateItineraryInput) (*models.Itinerary, error) {
	itinerary, err := s.Get(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, ErrItineraryTitleRequired
		}
		itinerary.Title = title
	}
	if input.Destination != nil {
		itinerary.Destination = strings.TrimSpace(*input.Destination)
	}
	if err := applyDates(itinerary, input.StartDate, input.EndDate); err != nil {
		return nil, err
	}

	replaceDays := input.Days != nil
	if replaceDays {
		days, err := buildDays(*input.Days)
		if err != nil {
			return nil, err
		}
		itinerary.Days = days
	}
	if err := checkDayRange(itinerary, itinerary.Days); err != nil {
		return nil, err
	}

	if err := s.itineraries.Update(ctx, itinerary, replaceDays); err != nil {
		return nil, wrapStoreError("update itinerary", err)
	}

	return s.load(ctx, itinerary.ID)
}

// Delete removes an itinerary with everything attached and returns it
func (s *ItineraryService) Delete(ctx context.Context, actorID, id string) (*models.Itinerary, error) {
	itinerary, err := s.Get(ctx, actorID, id)
	if err != nil {
		return nil, err
	}

	if err := s.itineraries.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItineraryNotFound
		}
		return nil, fmt.Errorf("failed to delete itinerary: %w", err)
	}
	return itinerary, nil
}

// ListByOwner returns one page of an owner's itineraries. An unknown owner yields an empty page.
func (s *ItineraryService) ListByOwner(ctx context.Context, ownerID string, params utils.PaginationParams) (Page[models.Itinerary], error) {
	if err := requireID(ownerID, "User"); err != nil {
		return Page[models.Itinerary]{}, err
	}

	itineraries, total, err := s.itineraries.ListByOwner(ctx, ownerID, params)
	if err != nil {
		return Page[models.Itinerary]{}, fmt.Errorf("failed to list itineraries: %w", err)
	}
	return newPage(itineraries, params, total), nil
}

// EnsureOwner fails with NotFound unless actorID owns the itinerary
func (s *ItineraryService) EnsureOwner(ctx context.Context, actorID, itineraryID string) error {
	return ensureItineraryOwner(ctx, s.itineraries, actorID, itineraryID)
}

func (s *ItineraryService) load(ctx context.Context, id string) (*models.Itinerary, error) {
	itinerary, err := s.itineraries.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItineraryNotFound
		}
		return nil, fmt.Errorf("failed to find itinerary: %w", err)
	}
	return itinerary, nil
}

func ensureItineraryOwner(ctx context.Context, itineraries repository.ItineraryRepository, actorID, itineraryID string) error {
	if err := requireID(itineraryID, "Itinerary"); err != nil {
		return err
	}
	ownerID, err := itineraries.FindOwnerID(ctx, itineraryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrItineraryNotFound
		}
		return fmt.Errorf("failed to find itinerary: %w", err)
	}
	if ownerID != actorID {
		return ErrItineraryNotFound
	}
	return nil
}

// applyDates parses whichever of start and end are given and checks the merged order.
func applyDates(itinerary *models.Itinerary, start, end *string) error {
	if start != nil {
		d, err := utils.ParseDay(*start)
		if err != nil {
			return invalidDate("startDate")
		}
		itinerary.StartDate = d
	}
	if end != nil {
		d, err := utils.ParseDay(*end)
		if err != nil {
			return invalidDate("endDate")
		}
		itinerary.EndDate = d
	}
	if itinerary.EndDate.Before(itinerary.StartDate) {
		return ErrItineraryDateOrder
	}
	return nil
}

// buildDays parses day inputs and orders days by date and activities by time.
func buildDays(inputs []DayInput) ([]models.ItineraryDay, error) {
	days := make([]models.ItineraryDay, 0, len(inputs))
	seen := make(map[string]struct{}, len(inputs))

	for _, in := range inputs {
		date, err := utils.ParseDay(in.Date)
		if err != nil {
			return nil, invalidDate("date")
		}
		key := utils.FormatDate(date)
		if _, dup := seen[key]; dup {
			return nil, ErrDuplicateDay.WithCause(fmt.Errorf("date %s", key))
		}
		seen[key] = struct{}{}

		activities := make([]models.Activity, 0, len(in.Activities))
		for _, a := range in.Activities {
			clock := strings.TrimSpace(a.Time)
			description := strings.TrimSpace(a.Description)
			if clock == "" || description == "" {
				return nil, ErrActivityFieldsRequired
			}
			at, err := time.Parse(constants.ClockLayout, clock)
			if err != nil {
				return nil, ErrInvalidActivityTime.WithCause(err)
			}
			// Stored zero-padded so "9:00" and "09:00" compare equal.
			activities = append(activities, models.Activity{Time: at.Format(constants.ClockLayout), Description: description})
		}
		sort.SliceStable(activities, func(i, j int) bool {
			return activities[i].Time < activities[j].Time
		})
		for i := range activities {
			activities[i].Position = i
		}

		days = append(days, models.ItineraryDay{Date: date, Activities: activities})
	}

	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date.Before(days[j].Date)
	})
	for i := range days {
		days[i].Position = i
	}
	return days, nil
}

func checkDayRange(itinerary *models.Itinerary, days []models.ItineraryDay) error {
	start := utils.TruncateDay(itinerary.StartDate)
	end := utils.TruncateDay(itinerary.EndDate)
	for _, day := range days {
		d := utils.TruncateDay(day.Date)
		if d.Before(start) || d.After(end) {
			return ErrDayOutOfRange.WithCause(fmt.Errorf("date %s", utils.FormatDate(d)))
		}
	}
	return nil
}

// wrapStoreError passes typed errors through and wraps everything else.
func wrapStoreError(op string, err error) error {
	if apierrors.KindOf(err) != apierrors.KindInternalServer {
		return err
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
