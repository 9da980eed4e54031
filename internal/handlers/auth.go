package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/trip-planner-api/internal/auth"
	"github.com/yukikurage/trip-planner-api/internal/constants"
	"github.com/yukikurage/trip-planner-api/internal/dto"
	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
	"github.com/yukikurage/trip-planner-api/internal/logging"
	"github.com/yukikurage/trip-planner-api/internal/metrics"
	"github.com/yukikurage/trip-planner-api/internal/middleware"
	"github.com/yukikurage/trip-planner-api/internal/services"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	userService  *services.UserService
	tokens       *auth.TokenManager
	secureCookie bool
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(userService *services.UserService, tokens *auth.TokenManager, secureCookie bool) *AuthHandler {
	return &AuthHandler{
		userService:  userService,
		tokens:       tokens,
		secureCookie: secureCookie,
	}
}

// Register creates a user and starts a session.
func (h *AuthHandler) Register(c *gin.Context) {
	type RegisterRequest struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.userService.Register(c.Request.Context(), services.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	metrics.RecordAuth("register", err)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	h.setSessionCookie(c, token)
	apierrors.Success(c, http.StatusCreated, "User registered successfully", dto.AuthResponse{
		User:  dto.ToUserDTO(*user),
		Token: token,
	})
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.userService.Login(c.Request.Context(), services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	metrics.RecordAuth("login", err)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	h.setSessionCookie(c, token)
	apierrors.Success(c, http.StatusOK, "Logged in successfully", dto.LoginResponse{User: dto.ToUserDTO(*user)})
}

// Logout revokes the current token and clears the session cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	if claims := middleware.GetClaims(c); claims != nil {
		if err := h.tokens.Revoke(c.Request.Context(), claims); err != nil {
			// The cookie is cleared regardless; the token still expires on schedule.
			logging.Warn().Err(err).Str("user_id", claims.UserID()).Msg("failed to revoke session token")
		}
	}
	metrics.RecordAuth("logout", nil)

	h.clearSessionCookie(c)
	apierrors.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// RequestPasswordReset issues a reset token for the given email.
func (h *AuthHandler) RequestPasswordReset(c *gin.Context) {
	type ResetRequest struct {
		Email string `json:"email"`
	}

	var req ResetRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.userService.RequestPasswordReset(c.Request.Context(), req.Email)
	metrics.RecordAuth("reset_request", err)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.Success(c, http.StatusOK, "Password reset instructions sent", gin.H{
		"message": "Password reset instructions sent",
	})
}

// ConfirmPasswordReset applies a reset token.
func (h *AuthHandler) ConfirmPasswordReset(c *gin.Context) {
	type ConfirmRequest struct {
		Token       string `json:"token"`
		NewPassword string `json:"newPassword"`
	}

	var req ConfirmRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.userService.ResetPassword(c.Request.Context(), req.Token, req.NewPassword)
	metrics.RecordAuth("reset_apply", err)
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	apierrors.Success(c, http.StatusOK, "Password updated successfully", gin.H{
		"message": "Password updated successfully",
	})
}

// Me reports the session state and, when signed in, the current user.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Success(c, http.StatusOK, "Not logged in", dto.SessionResponse{IsLoggedIn: false})
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if errors.Is(err, services.ErrUserNotFound) {
		// A valid token for a deleted account is an anonymous session.
		apierrors.Success(c, http.StatusOK, "Not logged in", dto.SessionResponse{IsLoggedIn: false})
		return
	}
	if err != nil {
		apierrors.Respond(c, err)
		return
	}

	userDTO := dto.ToUserDTO(*user)
	apierrors.Success(c, http.StatusOK, "Logged in", dto.SessionResponse{IsLoggedIn: true, User: &userDTO})
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.SessionCookieName, token, int(h.tokens.SessionTTL().Seconds()), "/", "", h.secureCookie, true)
}

func (h *AuthHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(constants.SessionCookieName, "", -1, "/", "", h.secureCookie, true)
}
