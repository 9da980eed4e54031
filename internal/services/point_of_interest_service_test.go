package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/trip-planner-api/internal/utils"
)

func TestPointOfInterestLifecycle(t *testing.T) {
	e := newEnv(t)
	owner := e.register(t, "owner")
	stranger := e.register(t, "stranger")
	trip := e.trip(t, owner.ID)

	_, err := e.pois.Create(ctx, owner.ID, CreatePointOfInterestInput{ItineraryID: trip.ID, Name: "Castle"})
	assert.ErrorIs(t, err, ErrPointOfInterestFieldsRequired)

	_, err = e.pois.Create(ctx, stranger.ID, CreatePointOfInterestInput{ItineraryID: trip.ID, Name: "Castle", Location: "Lisbon"})
	assert.ErrorIs(t, err, ErrItineraryNotFound)

	poi, err := e.pois.Create(ctx, owner.ID, CreatePointOfInterestInput{
		ItineraryID: trip.ID, Name: "Castle", Location: "Lisbon", Description: "  views  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "views", poi.Description)

	updated, err := e.pois.Update(ctx, owner.ID, poi.ID, UpdatePointOfInterestInput{Name: strPtr("Sao Jorge Castle")})
	require.NoError(t, err)
	assert.Equal(t, "Sao Jorge Castle", updated.Name)
	assert.Equal(t, "Lisbon", updated.Location)

	_, err = e.pois.Update(ctx, owner.ID, poi.ID, UpdatePointOfInterestInput{Location: strPtr(" ")})
	assert.ErrorIs(t, err, ErrPointOfInterestFieldsRequired)

	_, err = e.pois.Get(ctx, stranger.ID, poi.ID)
	assert.ErrorIs(t, err, ErrPointOfInterestNotFound)

	page, err := e.pois.ListByItinerary(ctx, owner.ID, trip.ID, utils.NewPaginationParams(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	page, err = e.pois.ListByItinerary(ctx, stranger.ID, trip.ID, utils.NewPaginationParams(1, 10))
	require.NoError(t, err)
	assert.Empty(t, page.Data)

	_, err = e.pois.ListByItinerary(ctx, owner.ID, "", utils.NewPaginationParams(1, 10))
	assert.ErrorIs(t, err, ErrPointOfInterestFilterRequired)

	_, err = e.pois.Delete(ctx, owner.ID, poi.ID)
	require.NoError(t, err)
	_, err = e.pois.Get(ctx, owner.ID, poi.ID)
	assert.ErrorIs(t, err, ErrPointOfInterestNotFound)
}
