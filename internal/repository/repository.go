package repository

import (
	"context"
	"time"

	"github.com/yukikurage/trip-planner-api/internal/models"
	"github.com/yukikurage/trip-planner-api/internal/utils"
)

// Lookups return gorm.ErrRecordNotFound when nothing matches. Writes run the
// model validators first and return a Validation AppError on failure.

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create hashes user.Password and inserts the user
	Create(ctx context.Context, user *models.User) error

	// FindByID finds a user by ID
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail finds a user by normalized email
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(ctx context.Context, username string) (*models.User, error)

	// Update saves every column; the password is re-hashed only when user.Password is set
	Update(ctx context.Context, user *models.User) error

	// Delete removes the user, their itineraries with children, and friend edges in both directions
	Delete(ctx context.Context, id string) error

	// SetResetToken stores a password-reset token and its expiry
	SetResetToken(ctx context.Context, id, token string, expiresAt time.Time) error

	// ApplyPasswordReset swaps the password hash and clears the reset token in one
	// conditional update. It reports false when the token does not match or has expired.
	ApplyPasswordReset(ctx context.Context, id, token, passwordHash string, now time.Time) (bool, error)
}

// FriendRepository defines the interface for friend-list data access
type FriendRepository interface {
	// Add inserts the edge unless it exists; it reports whether a row was added
	Add(ctx context.Context, userID, friendID string) (bool, error)

	// Remove deletes the edge; it reports whether a row was removed
	Remove(ctx context.Context, userID, friendID string) (bool, error)

	// List returns one page of friends, most recently added first, and the total count
	List(ctx context.Context, userID string, params utils.PaginationParams) ([]models.User, int64, error)
}

// ItineraryRepository defines the interface for itinerary data access
type ItineraryRepository interface {
	// Create inserts the itinerary with its days and activities
	Create(ctx context.Context, itinerary *models.Itinerary) error

	// FindByID loads an itinerary with owner, days, activities, accommodations and points of interest
	FindByID(ctx context.Context, id string) (*models.Itinerary, error)

	// FindOwnerID returns only the owner of an itinerary
	FindOwnerID(ctx context.Context, id string) (string, error)

	// Update saves scalar fields and, when replaceDays is set, swaps the whole day list
	Update(ctx context.Context, itinerary *models.Itinerary, replaceDays bool) error

	// Delete removes the itinerary and everything that belongs to it
	Delete(ctx context.Context, id string) error

	// ListByOwner returns one page of an owner's itineraries, newest first
	ListByOwner(ctx context.Context, ownerID string, params utils.PaginationParams) ([]models.Itinerary, int64, error)
}

// AccommodationRepository defines the interface for accommodation data access
type AccommodationRepository interface {
	Create(ctx context.Context, accommodation *models.Accommodation) error
	FindByID(ctx context.Context, id string) (*models.Accommodation, error)
	Update(ctx context.Context, accommodation *models.Accommodation) error
	Delete(ctx context.Context, id string) error
	ListByItinerary(ctx context.Context, itineraryID string, params utils.PaginationParams) ([]models.Accommodation, int64, error)
	ListByCreator(ctx context.Context, userID string, params utils.PaginationParams) ([]models.Accommodation, int64, error)
}

// PointOfInterestRepository defines the interface for point-of-interest data access
type PointOfInterestRepository interface {
	Create(ctx context.Context, poi *models.PointOfInterest) error
	FindByID(ctx context.Context, id string) (*models.PointOfInterest, error)
	Update(ctx context.Context, poi *models.PointOfInterest) error
	Delete(ctx context.Context, id string) error
	ListByItinerary(ctx context.Context, itineraryID string, params utils.PaginationParams) ([]models.PointOfInterest, int64, error)
}
