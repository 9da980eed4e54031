package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yukikurage/trip-planner-api/internal/models"
	"gorm.io/gorm"
)

var ctx = context.Background()

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func createUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		Username: name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "Secret1!",
	}
	require.NoError(t, NewUserRepository(db).Create(ctx, user))
	return user
}

func createItinerary(t *testing.T, db *gorm.DB, ownerID, title string) *models.Itinerary {
	t.Helper()
	itinerary := &models.Itinerary{
		OwnerID:   ownerID,
		Title:     title,
		StartDate: date("2025-06-01"),
		EndDate:   date("2025-06-15"),
		Days: []models.ItineraryDay{
			{Date: date("2025-06-01"), Position: 0, Activities: []models.Activity{
				{Time: "09:00", Description: "Breakfast", Position: 0},
				{Time: "14:00", Description: "Museum", Position: 1},
			}},
			{Date: date("2025-06-02"), Position: 1},
		},
	}
	require.NoError(t, NewItineraryRepository(db).Create(ctx, itinerary))
	return itinerary
}

func ids(users []models.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.ID
	}
	return out
}
