package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/trip-planner-api/internal/auth"
	"github.com/yukikurage/trip-planner-api/internal/constants"
	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
	"github.com/yukikurage/trip-planner-api/internal/metrics"
	"github.com/yukikurage/trip-planner-api/internal/middleware"
)

// Router bundles what the HTTP surface needs.
type Router struct {
	Tokens           *auth.TokenManager
	Limiter          *middleware.RateLimiter
	Health           *HealthHandler
	Auth             *AuthHandler
	Users            *UserHandler
	Itineraries      *ItineraryHandler
	Accommodations   *AccommodationHandler
	PointsOfInterest *PointOfInterestHandler
}

var errRouteNotFound = apierrors.NotFound("no route", "Resource not found")

// Engine builds the gin engine with every route registered.
func (rt Router) Engine() *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(), middleware.RequestID(), middleware.RequestLogger(), metrics.Middleware())

	r.NoRoute(func(c *gin.Context) {
		apierrors.Respond(c, errRouteNotFound)
	})

	r.GET("/health", rt.Health.Health)
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Page routes
	pages := r.Group("")
	pages.Use(middleware.PageGuard(rt.Tokens))
	{
		pages.GET(constants.HomePath, Page("Home", "home"))
		pages.GET(constants.LoginPath, Page("Log in", "login"))
		pages.GET(constants.SignupPath, Page("Sign up", "signup"))
		pages.GET(constants.LandingPath, Page("Dashboard", "dashboard"))
		pages.GET("/itineraries/new", Page("New itinerary", "itinerary-new"))
		pages.GET("/itineraries/:id", Page("Itinerary", "itinerary"))
	}

	requireAuth := middleware.RequireAuth(rt.Tokens)
	optionalAuth := middleware.OptionalAuth(rt.Tokens)
	limit := rt.Limiter.Middleware()

	api := r.Group("/api")
	{
		api.GET("/auth/me", optionalAuth, rt.Auth.Me)

		// Account routes (public)
		users := api.Group("/users")
		{
			users.POST("", limit, rt.Auth.Register)
			users.POST("/login", limit, rt.Auth.Login)
			users.POST("/logout", optionalAuth, rt.Auth.Logout)
			users.POST("/reset", limit, rt.Auth.RequestPasswordReset)
			users.POST("/reset/confirm", limit, rt.Auth.ConfirmPasswordReset)

			users.GET("/:id", requireAuth, rt.Users.GetUser)
			users.PUT("/:id", requireAuth, rt.Users.UpdateUser)
			users.DELETE("/:id", requireAuth, rt.Users.DeleteUser)
			users.GET("/:id/friends", requireAuth, rt.Users.ListFriends)
			users.POST("/:id/friends", requireAuth, rt.Users.AddFriend)
			users.DELETE("/:id/friends", requireAuth, rt.Users.RemoveFriend)
			users.GET("/:id/itineraries", requireAuth, rt.Users.ListItineraries)
		}

		// Itinerary routes (protected)
		itineraries := api.Group("/itineraries")
		itineraries.Use(requireAuth)
		{
			itineraries.POST("", rt.Itineraries.CreateItinerary)
			itineraries.GET("/user", rt.Itineraries.ListMyItineraries)
			itineraries.GET("/:id", rt.Itineraries.GetItinerary)
			itineraries.PUT("/:id", rt.Itineraries.UpdateItinerary)
			itineraries.DELETE("/:id", rt.Itineraries.DeleteItinerary)
		}

		accommodations := api.Group("/accommodations")
		accommodations.Use(requireAuth)
		{
			accommodations.POST("", rt.Accommodations.CreateAccommodation)
			accommodations.GET("", rt.Accommodations.ListAccommodations)
			accommodations.GET("/:id", rt.Accommodations.GetAccommodation)
			accommodations.PUT("/:id", rt.Accommodations.UpdateAccommodation)
			accommodations.DELETE("/:id", rt.Accommodations.DeleteAccommodation)
		}

		pois := api.Group("/points-of-interest")
		pois.Use(requireAuth)
		{
			pois.POST("", rt.PointsOfInterest.CreatePointOfInterest)
			pois.GET("", rt.PointsOfInterest.ListPointsOfInterest)
			pois.GET("/:id", rt.PointsOfInterest.GetPointOfInterest)
			pois.PUT("/:id", rt.PointsOfInterest.UpdatePointOfInterest)
			pois.DELETE("/:id", rt.PointsOfInterest.DeletePointOfInterest)
		}
	}

	return r
}
