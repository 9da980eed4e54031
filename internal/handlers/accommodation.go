package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/trip-planner-api/internal/dto"
	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
	"github.com/yukikurage/trip-planner-api/internal/services"
	"github.com/yukikurage/trip-planner-api/internal/utils"
)

type AccommodationHandler struct {
	accommodationService *services.AccommodationService
}

func NewAccommodationHandler(accommodationService *services.AccommodationService) *AccommodationHandler {
	return &AccommodationHandler{accommodationService: accommodationService}
}

// CreateAccommodation books an accommodation on one of the caller's itineraries
func (h *AccommodationHandler) CreateAccommodation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	// belongsTo is the itinerary; itineraryId is accepted as an alias.
	type CreateAccommodationRequest struct {
		BelongsTo          string `json:"belongsTo"`
		ItineraryID        string `json:"itineraryId"`
		Type               string `json:"type"`
		Name               string `json:"name"`
		Address            string `json:"address"`
		ConfirmationNumber string `json:"confirmationNumber"`
		CheckInDate        string `json:"checkInDate"`
		CheckOutDate       string `json:"checkOutDate"`
		Location           string `json:"location"`
	}

	var req CreateAccommodationRequest
	if !bindJSON(c, &req) {
		return
	}
	itineraryID := req.BelongsTo
	if itineraryID == "" {
		itineraryID = req.ItineraryID
	}

	accommodation, err := h.accommodationService.Create(c.Request.Context(), userID, services.CreateAccommodationInput{
		ItineraryID:        itineraryID,
		Type:               req.Type,
		Name:               req.Name,
		Address:            req.Address,
		ConfirmationNumber: req.ConfirmationNumber,
		CheckInDate:        req.CheckInDate,
		CheckOutDate:       req.CheckOutDate,
		Location:           req.Location,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusCreated, "Accommodation created successfully", dto.ToAccommodationDTO(*accommodation))
}

// ListAccommodations filters by itineraryId or userId
func (h *AccommodationHandler) ListAccommodations(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	filter := services.AccommodationFilter{
		ItineraryID: c.Query("itineraryId"),
		UserID:      c.Query("userId"),
	}
	page, err := h.accommodationService.List(c.Request.Context(), userID, filter, utils.GetPaginationParams(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusOK, "Accommodations retrieved successfully",
		dto.NewListResponse(page.Data, page.Page, page.Limit, page.Total, dto.ToAccommodationDTO))
}

func (h *AccommodationHandler) GetAccommodation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	accommodation, err := h.accommodationService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusOK, "Accommodation retrieved successfully", dto.ToAccommodationDTO(*accommodation))
}

func (h *AccommodationHandler) UpdateAccommodation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	type UpdateAccommodationRequest struct {
		Type               *string `json:"type"`
		Name               *string `json:"name"`
		Address            *string `json:"address"`
		ConfirmationNumber *string `json:"confirmationNumber"`
		CheckInDate        *string `json:"checkInDate"`
		CheckOutDate       *string `json:"checkOutDate"`
		Location           *string `json:"location"`
	}

	var req UpdateAccommodationRequest
	if !bindJSON(c, &req) {
		return
	}

	accommodation, err := h.accommodationService.Update(c.Request.Context(), userID, c.Param("id"), services.UpdateAccommodationInput{
		Type:               req.Type,
		Name:               req.Name,
		Address:            req.Address,
		ConfirmationNumber: req.ConfirmationNumber,
		CheckInDate:        req.CheckInDate,
		CheckOutDate:       req.CheckOutDate,
		Location:           req.Location,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusOK, "Accommodation updated successfully", dto.ToAccommodationDTO(*accommodation))
}

func (h *AccommodationHandler) DeleteAccommodation(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	accommodation, err := h.accommodationService.Delete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusOK, "Accommodation "+accommodation.Name+" deleted successfully", nil)
}
