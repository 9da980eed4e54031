package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
	"github.com/yukikurage/trip-planner-api/internal/models"
	"github.com/yukikurage/trip-planner-api/internal/testutil"
	"github.com/yukikurage/trip-planner-api/internal/utils"
	"gorm.io/gorm"
)

func TestItineraryRepository_CreateAndFind(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewItineraryRepository(db)
	owner := createUser(t, db, "owner")
	created := createItinerary(t, db, owner.ID, "Trip")

	require.NoError(t, NewPointOfInterestRepository(db).Create(ctx, &models.PointOfInterest{
		Name: "Eiffel Tower", Location: "Paris", ItineraryID: created.ID,
	}))
	require.NoError(t, NewAccommodationRepository(db).Create(ctx, &models.Accommodation{
		Type: models.AccommodationHostel, Name: "Bunk", Address: "2 Rue", Location: "Paris",
		CheckInDate: date("2025-06-01"), CheckOutDate: date("2025-06-04"),
		ItineraryID: created.ID, CreatedByID: owner.ID,
	}))

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)

	assert.Equal(t, "Trip", got.Title)
	assert.True(t, got.StartDate.Equal(date("2025-06-01")))
	assert.True(t, got.EndDate.Equal(date("2025-06-15")))
	require.NotNil(t, got.Owner)
	assert.Equal(t, "owner", got.Owner.Username)
	require.Len(t, got.Days, 2)
	require.Len(t, got.Days[0].Activities, 2)
	assert.Equal(t, "Breakfast", got.Days[0].Activities[0].Description)
	assert.Empty(t, got.Days[1].Activities)
	assert.Len(t, got.Accommodations, 1)
	assert.Len(t, got.PointsOfInterest, 1)

	ownerID, err := repo.FindOwnerID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, owner.ID, ownerID)
}

func TestItineraryRepository_CreateRejectsEndBeforeStart(t *testing.T) {
	db := testutil.NewDB(t)
	owner := createUser(t, db, "owner")

	err := NewItineraryRepository(db).Create(ctx, &models.Itinerary{
		OwnerID: owner.ID, Title: "Backwards",
		StartDate: date("2025-06-15"), EndDate: date("2025-06-01"),
	})

	assert.Equal(t, apierrors.KindValidation, apierrors.KindOf(err))
}

func TestItineraryRepository_UpdateReplacesDays(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewItineraryRepository(db)
	owner := createUser(t, db, "owner")
	created := createItinerary(t, db, owner.ID, "Trip")

	itinerary, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	itinerary.Title = "Renamed"
	itinerary.Days = []models.ItineraryDay{
		{Date: date("2025-06-05"), Activities: []models.Activity{{Time: "18:00", Description: "Dinner"}}},
	}
	require.NoError(t, repo.Update(ctx, itinerary, true))

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", got.Title)
	require.Len(t, got.Days, 1)
	assert.True(t, got.Days[0].Date.Equal(date("2025-06-05")))
	require.Len(t, got.Days[0].Activities, 1)

	var activityCount int64
	require.NoError(t, db.Model(&models.Activity{}).Count(&activityCount).Error)
	assert.Equal(t, int64(1), activityCount, "old activities are removed")
}

func TestItineraryRepository_UpdateWithoutDaysKeepsThem(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewItineraryRepository(db)
	owner := createUser(t, db, "owner")
	created := createItinerary(t, db, owner.ID, "Trip")

	itinerary, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	itinerary.Destination = "Lisbon"
	require.NoError(t, repo.Update(ctx, itinerary, false))

	got, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", got.Destination)
	assert.Len(t, got.Days, 2)
}

func TestItineraryRepository_DeleteCascades(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewItineraryRepository(db)
	owner := createUser(t, db, "owner")
	created := createItinerary(t, db, owner.ID, "Trip")
	require.NoError(t, NewPointOfInterestRepository(db).Create(ctx, &models.PointOfInterest{
		Name: "Eiffel Tower", Location: "Paris", ItineraryID: created.ID,
	}))

	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err := repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	for _, model := range []interface{}{&models.ItineraryDay{}, &models.Activity{}, &models.PointOfInterest{}} {
		var count int64
		require.NoError(t, db.Model(model).Count(&count).Error)
		assert.Zero(t, count)
	}

	assert.ErrorIs(t, repo.Delete(ctx, created.ID), gorm.ErrRecordNotFound)
}

func TestItineraryRepository_ListByOwnerNewestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewItineraryRepository(db)
	owner := createUser(t, db, "owner")
	other := createUser(t, db, "other")

	first := createItinerary(t, db, owner.ID, "First")
	second := createItinerary(t, db, owner.ID, "Second")
	createItinerary(t, db, other.ID, "Not mine")
	// make creation order unambiguous
	require.NoError(t, db.Model(&models.Itinerary{}).Where("id = ?", first.ID).
		Update("created_at", time.Now().UTC().Add(-time.Hour)).Error)

	list, total, err := repo.ListByOwner(ctx, owner.ID, utils.NewPaginationParams(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	empty, total, err := repo.ListByOwner(ctx, "00000000-0000-0000-0000-000000000000", utils.NewPaginationParams(1, 10))
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, empty)
}
