package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/trip-planner-api/internal/dto"
	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
	"github.com/yukikurage/trip-planner-api/internal/services"
	"github.com/yukikurage/trip-planner-api/internal/utils"
)

type PointOfInterestHandler struct {
	poiService *services.PointOfInterestService
}

func NewPointOfInterestHandler(poiService *services.PointOfInterestService) *PointOfInterestHandler {
	return &PointOfInterestHandler{poiService: poiService}
}

func (h *PointOfInterestHandler) CreatePointOfInterest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	type CreatePointOfInterestRequest struct {
		BelongsTo   string `json:"belongsTo"`
		ItineraryID string `json:"itineraryId"`
		Name        string `json:"name"`
		Location    string `json:"location"`
		Description string `json:"description"`
	}

	var req CreatePointOfInterestRequest
	if !bindJSON(c, &req) {
		return
	}
	itineraryID := req.BelongsTo
	if itineraryID == "" {
		itineraryID = req.ItineraryID
	}

	poi, err := h.poiService.Create(c.Request.Context(), userID, services.CreatePointOfInterestInput{
		ItineraryID: itineraryID,
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusCreated, "Point of interest created successfully", dto.ToPointOfInterestDTO(*poi))
}

func (h *PointOfInterestHandler) ListPointsOfInterest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	page, err := h.poiService.ListByItinerary(c.Request.Context(), userID, c.Query("itineraryId"), utils.GetPaginationParams(c))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusOK, "Points of interest retrieved successfully",
		dto.NewListResponse(page.Data, page.Page, page.Limit, page.Total, dto.ToPointOfInterestDTO))
}

func (h *PointOfInterestHandler) GetPointOfInterest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	poi, err := h.poiService.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusOK, "Point of interest retrieved successfully", dto.ToPointOfInterestDTO(*poi))
}

func (h *PointOfInterestHandler) UpdatePointOfInterest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	type UpdatePointOfInterestRequest struct {
		Name        *string `json:"name"`
		Location    *string `json:"location"`
		Description *string `json:"description"`
	}

	var req UpdatePointOfInterestRequest
	if !bindJSON(c, &req) {
		return
	}

	poi, err := h.poiService.Update(c.Request.Context(), userID, c.Param("id"), services.UpdatePointOfInterestInput{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusOK, "Point of interest updated successfully", dto.ToPointOfInterestDTO(*poi))
}

func (h *PointOfInterestHandler) DeletePointOfInterest(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	poi, err := h.poiService.Delete(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusOK, "Point of interest "+poi.Name+" deleted successfully", nil)
}
