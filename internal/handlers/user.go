package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/trip-planner-api/internal/dto"
	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
	"github.com/yukikurage/trip-planner-api/internal/services"
	"github.com/yukikurage/trip-planner-api/internal/utils"
)

type UserHandler struct {
	userService      *services.UserService
	friendService    *services.FriendService
	itineraryService *services.ItineraryService
}

func NewUserHandler(userService *services.UserService, friendService *services.FriendService, itineraryService *services.ItineraryService) *UserHandler {
	return &UserHandler{
		userService:      userService,
		friendService:    friendService,
		itineraryService: itineraryService,
	}
}

// GetUser returns the public projection of any user
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userService.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusOK, "User retrieved successfully", dto.ToUserDTO(*user))
}

// UpdateUser changes the caller's own account
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	type UpdateUserRequest struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}

	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.userService.UpdateUser(c.Request.Context(), userID, c.Param("id"), services.UpdateUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusOK, "User updated successfully", dto.ToUserDTO(*user))
}

// DeleteUser removes the caller's own account
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	user, err := h.userService.DeleteUser(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusOK, "User "+user.Username+" deleted successfully", dto.ToUserDTO(*user))
}

// ListFriends returns a page of a user's friends
func (h *UserHandler) ListFriends(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	page, err := h.friendService.ListFriends(c.Request.Context(), c.Param("id"), params)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusOK, "Friends retrieved successfully",
		dto.NewListResponse(page.Data, page.Page, page.Limit, page.Total, dto.ToUserDTO))
}

type friendRequest struct {
	FriendID string `json:"friendId"`
}

// AddFriend adds a user to the caller's friend list
func (h *UserHandler) AddFriend(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req friendRequest
	if !bindJSON(c, &req) {
		return
	}

	friend, err := h.friendService.AddFriend(c.Request.Context(), userID, c.Param("id"), req.FriendID)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusCreated, "Friend added successfully", dto.ToUserDTO(*friend))
}

// RemoveFriend removes a user from the caller's friend list
func (h *UserHandler) RemoveFriend(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req friendRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.friendService.RemoveFriend(c.Request.Context(), userID, c.Param("id"), req.FriendID); err != nil {
		apierrors.Respond(c, err)
		return
	}
	apierrors.Success(c, http.StatusOK, "Friend removed successfully", nil)
}

// ListItineraries returns a page of the caller's itineraries by user path
func (h *UserHandler) ListItineraries(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	if c.Param("id") != userID {
		apierrors.Respond(c, services.ErrNotAccountOwner)
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
