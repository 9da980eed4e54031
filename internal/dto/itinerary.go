package dto

import (
	"time"

	"github.com/yukikurage/trip-planner-api/internal/models"
	"github.com/yukikurage/trip-planner-api/internal/utils"
)

// ActivityDTO represents an activity in API responses
type ActivityDTO struct {
	ID          string `json:"id"`
	Time        string `json:"time"`
	Description string `json:"description"`
}

// DayDTO represents one day plan
type DayDTO struct {
	ID         string        `json:"id"`
	Date       string        `json:"date"`
	Activities []ActivityDTO `json:"activities"`
}

// ItineraryDTO represents a fully populated itinerary
type ItineraryDTO struct {
	ID               string               `json:"id"`
	Title            string               `json:"title"`
	Destination      string               `json:"destination"`
	StartDate        string               `json:"startDate"`
	EndDate          string               `json:"endDate"`
	CreatedBy        string               `json:"createdBy"`
	Owner            *UserSummaryDTO      `json:"owner,omitempty"`
	Days             []DayDTO             `json:"days"`
	Accommodations   []AccommodationDTO   `json:"accommodations"`
	PointsOfInterest []PointOfInterestDTO `json:"pointsOfInterest"`
	CreatedAt        time.Time            `json:"created_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

// ItineraryListItemDTO represents an itinerary in list responses (minimal data)
type ItineraryListItemDTO struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Destination string    `json:"destination"`
	StartDate   string    `json:"startDate"`
	EndDate     string    `json:"endDate"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"created_at"`
}

// ItinerarySummaryDTO is the parent reference embedded in child resources
type ItinerarySummaryDTO struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

// ToItineraryDTO converts an Itinerary model to ItineraryDTO
func ToItineraryDTO(it models.Itinerary) ItineraryDTO {
	dto := ItineraryDTO{
		ID:               it.ID,
		Title:            it.Title,
		Destination:      it.Destination,
		StartDate:        utils.FormatDate(it.StartDate),
		EndDate:          utils.FormatDate(it.EndDate),
		CreatedBy:        it.OwnerID,
		Days:             make([]DayDTO, len(it.Days)),
		Accommodations:   make([]AccommodationDTO, len(it.Accommodations)),
		PointsOfInterest: make([]PointOfInterestDTO, len(it.PointsOfInterest)),
		CreatedAt:        it.CreatedAt,
		UpdatedAt:        it.UpdatedAt,
	}

	// Include owner if preloaded
	if it.Owner != nil {
		owner := ToUserSummaryDTO(*it.Owner)
		dto.Owner = &owner
	}

	for i, day := range it.Days {
		activities := make([]ActivityDTO, len(day.Activities))
		for j, a := range day.Activities {
			activities[j] = ActivityDTO{ID: a.ID, Time: a.Time, Description: a.Description}
		}
		dto.Days[i] = DayDTO{ID: day.ID, Date: utils.FormatDate(day.Date), Activities: activities}
	}
	for i, a := range it.Accommodations {
		dto.Accommodations[i] = ToAccommodationDTO(a)
	}
	for i, p := range it.PointsOfInterest {
		dto.PointsOfInterest[i] = ToPointOfInterestDTO(p)
	}

	return dto
}

// ToItineraryListItemDTO converts an Itinerary model to ItineraryListItemDTO
func ToItineraryListItemDTO(it models.Itinerary) ItineraryListItemDTO {
	return ItineraryListItemDTO{
		ID:          it.ID,
		Title:       it.Title,
		Destination: it.Destination,
		StartDate:   utils.FormatDate(it.StartDate),
		EndDate:     utils.FormatDate(it.EndDate),
		CreatedBy:   it.OwnerID,
		CreatedAt:   it.CreatedAt,
	}
}

func toItinerarySummaryDTO(it models.Itinerary) ItinerarySummaryDTO {
	return ItinerarySummaryDTO{
		ID:        it.ID,
		Title:     it.Title,
		StartDate: utils.FormatDate(it.StartDate),
		EndDate:   utils.FormatDate(it.EndDate),
	}
}
