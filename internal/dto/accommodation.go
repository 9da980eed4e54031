package dto

import (
	"time"

	"github.com/yukikurage/trip-planner-api/internal/models"
	"github.com/yukikurage/trip-planner-api/internal/utils"
)

// AccommodationDTO represents an accommodation in API responses
type AccommodationDTO struct {
	ID                 string                   `json:"id"`
	Type               models.AccommodationType `json:"type"`
	Name               string                   `json:"name"`
	Address            string                   `json:"address"`
	ConfirmationNumber string                   `json:"confirmationNumber,omitempty"`
	CheckInDate        string                   `json:"checkInDate"`
	CheckOutDate       string                   `json:"checkOutDate"`
	DurationDays       int                      `json:"durationDays"`
	Location           string                   `json:"location"`
	BelongsTo          string                   `json:"belongsTo"`
	CreatedBy          string                   `json:"createdBy"`
	Itinerary          *ItinerarySummaryDTO     `json:"itinerary,omitempty"`
	CreatedAt          time.Time                `json:"created_at"`
	UpdatedAt          time.Time                `json:"updated_at"`
}

// PointOfInterestDTO represents a point of interest in API responses
type PointOfInterestDTO struct {
	ID          string               `json:"id"`
	Name        string               `json:"name"`
	Location    string               `json:"location"`
	Description string               `json:"description"`
	BelongsTo   string               `json:"belongsTo"`
	Itinerary   *ItinerarySummaryDTO `json:"itinerary,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ToAccommodationDTO converts an Accommodation model to AccommodationDTO
func ToAccommodationDTO(a models.Accommodation) AccommodationDTO {
	dto := AccommodationDTO{
		ID:                 a.ID,
		Type:               a.Type,
		Name:               a.Name,
		Address:            a.Address,
		ConfirmationNumber: a.ConfirmationNumber,
		CheckInDate:        utils.FormatDate(a.CheckInDate),
		CheckOutDate:       utils.FormatDate(a.CheckOutDate),
		DurationDays:       a.DurationDays(),
		Location:           a.Location,
		BelongsTo:          a.ItineraryID,
		CreatedBy:          a.CreatedByID,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}
	if a.Itinerary != nil {
		summary := toItinerarySummaryDTO(*a.Itinerary)
		dto.Itinerary = &summary
	}
	return dto
}

// ToPointOfInterestDTO converts a PointOfInterest model to PointOfInterestDTO
func ToPointOfInterestDTO(p models.PointOfInterest) PointOfInterestDTO {
	dto := PointOfInterestDTO{
		ID:          p.ID,
		Name:        p.Name,
		Location:    p.Location,
		Description: p.Description,
		BelongsTo:   p.ItineraryID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.Itinerary != nil {
		summary := toItinerarySummaryDTO(*p.Itinerary)
		dto.Itinerary = &summary
	}
	return dto
}
