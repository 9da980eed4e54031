package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/trip-planner-api/internal/dto"
	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
	"github.com/yukikurage/trip-planner-api/internal/services"
	"github.com/yukikurage/trip-planner-api/internal/utils"
)

type ItineraryHandler struct {
	itineraryService *services.ItineraryService
}

func NewItineraryHandler(itineraryService *services.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{itineraryService: itineraryService}
}

type activityRequest struct {
	Time        string `json:"time"`
	Description string `json:"description"`
}

type dayRequest struct {
	Date       string            `json:"date"`
	Activities []activityRequest `json:"activities"`
}

func toDayInputs(days []dayRequest) []services.DayInput {
	out := make([]services.DayInput, len(days))
	for i, d := range days {
		activities := make([]services.ActivityInput, len(d.Activities))
		for j, a := range d.Activities {
			activities[j] = services.ActivityInput{Time: a.Time, Description: a.Description}
		}
		out[i] = services.DayInput{Date: d.Date, Activities: activities}
	}
	return out
}

// CreateItinerary creates an itinerary owned by the caller
func (h *ItineraryHandler) CreateItinerary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	// Any owner field in the body is ignored; the caller is the owner.
	type CreateItineraryRequest struct {
		Title       string       `json:"title"`
		Destination string       `json:"destination"`
		StartDate   string       `json:"startDate"`
		EndDate     string       `json:"endDate"`
		Days        []dayRequest `json:"days"`
	}

	var req CreateItineraryRequest
	if !bindJSON(c, &req) {
		return
	}

	itinerary, err := h.itineraryService.Create(c.Request.Context(), userID, services.CreateItineraryInput{
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Days:        toDayInputs(req.Days),
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusCreated, "Itinerary created successfully", dto.ToItineraryDTO(*itinerary))
}

// ListMyItineraries returns a page of the caller's itineraries
func (h *ItineraryHandler) ListMyItineraries(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	page, err := h.itineraryService.ListByOwner(c.Request.Context(), userID, utils.GetPaginationParams(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusOK, "Itineraries retrieved successfully",
		dto.NewListResponse(page.Data, page.Page, page.Limit, page.Total, dto.ToItineraryListItemDTO))
}

// GetItinerary returns a populated itinerary
func (h *ItineraryHandler) GetItinerary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	itinerary, err := h.itineraryService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusOK, "Itinerary retrieved successfully", dto.ToItineraryDTO(*itinerary))
}

// UpdateItinerary merges the supplied fields; a days array replaces the whole plan
func (h *ItineraryHandler) UpdateItinerary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	type UpdateItineraryRequest struct {
		Title       *string       `json:"title"`
		Destination *string       `json:"destination"`
		StartDate   *string       `json:"startDate"`
		EndDate     *string       `json:"endDate"`
		Days        *[]dayRequest `json:"days"`
	}

	var req UpdateItineraryRequest
	if !bindJSON(c, &req) {
		return
	}

	input := services.UpdateItineraryInput{
		Title:       req.Title,
		Destination: req.Destination,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}
	if req.Days != nil {
		days := toDayInputs(*req.Days)
		input.Days = &days
	}

	itinerary, err := h.itineraryService.Update(c.Request.Context(), userID, c.Param("id"), input)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusOK, "Itinerary updated successfully", dto.ToItineraryDTO(*itinerary))
}

// DeleteItinerary removes an itinerary with its days, accommodations and points of interest
func (h *ItineraryHandler) DeleteItinerary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	itinerary, err := h.itineraryService.Delete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusOK, "Itinerary "+itinerary.Title+" deleted successfully", nil)
}
