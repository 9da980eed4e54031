package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/trip-planner-api/internal/auth"
	"github.com/yukikurage/trip-planner-api/internal/models"
	"github.com/yukikurage/trip-planner-api/internal/repository"
	"github.com/yukikurage/trip-planner-api/internal/testutil"
)

var ctx = context.Background()

const testPassword = "Secret1!"

type captureNotifier struct {
	mu     sync.Mutex
	tokens map[string]string
}

func (n *captureNotifier) SendPasswordReset(_ context.Context, user *models.User, token string, _ time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.tokens == nil {
		n.tokens = map[string]string{}
	}
	n.tokens[user.Email] = token
	return nil
}

func (n *captureNotifier) tokenFor(email string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.tokens[email]
}

type env struct {
	tokens         *auth.TokenManager
	notifier       *captureNotifier
	users          *UserService
	friends        *FriendService
	itineraries    *ItineraryService
	accommodations *AccommodationService
	pois           *PointOfInterestService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testutil.NewDB(t)

	tokens, err := auth.NewTokenManager("test-secret", auth.NewMemoryDenylist())
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(db)
	itineraryRepo := repository.NewItineraryRepository(db)
	notifier := &captureNotifier{}

	return &env{
		tokens:         tokens,
		notifier:       notifier,
		users:          NewUserService(userRepo, tokens, notifier),
		friends:        NewFriendService(userRepo, repository.NewFriendRepository(db)),
		itineraries:    NewItineraryService(itineraryRepo),
		accommodations: NewAccommodationService(repository.NewAccommodationRepository(db), itineraryRepo),
		pois:           NewPointOfInterestService(repository.NewPointOfInterestRepository(db), itineraryRepo),
	}
}

func (e *env) register(t *testing.T, name string) *models.User {
	t.Helper()
	user, _, err := e.users.Register(ctx, RegisterInput{
		Username: name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: testPassword,
	})
	require.NoError(t, err)
	return user
}

func (e *env) trip(t *testing.T, ownerID string) *models.Itinerary {
	t.Helper()
	itinerary, err := e.itineraries.Create(ctx, ownerID, CreateItineraryInput{
		Title:     "Trip",
		StartDate: "2025-06-01",
		EndDate:   "2025-06-15",
	})
	require.NoError(t, err)
	return itinerary
}

func strPtr(s string) *string { return &s }
