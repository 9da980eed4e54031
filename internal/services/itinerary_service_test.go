package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
	"github.com/yukikurage/trip-planner-api/internal/utils"
)

func TestItineraryCreate_SortsDaysAndActivities(t *testing.T) {
	e := newEnv(t)
	owner := e.register(t, "owner")

	itinerary, err := e.itineraries.Create(ctx, owner.ID, CreateItineraryInput{
		Destination: "Lisbon",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-15",
		Days: []DayInput{
			{Date: "2025-06-03", Activities: []ActivityInput{{Time: "10:00", Description: "Tram 28"}}},
			{Date: "2025-06-01", Activities: []ActivityInput{
				{Time: "18:30", Description: "Dinner"},
				{Time: "08:00", Description: "Coffee"},
			}},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Lisbon", itinerary.Title)
	assert.Equal(t, owner.ID, itinerary.OwnerID)
	assert.Equal(t, "2025-06-01", utils.FormatDate(itinerary.StartDate))
	assert.Equal(t, "2025-06-15", utils.FormatDate(itinerary.EndDate))
	require.Len(t, itinerary.Days, 2)
	assert.Equal(t, "2025-06-01", utils.FormatDate(itinerary.Days[0].Date))
	require.Len(t, itinerary.Days[0].Activities, 2)
	assert.Equal(t, "Coffee", itinerary.Days[0].Activities[0].Description)
	assert.Equal(t, "Dinner", itinerary.Days[0].Activities[1].Description)
	assert.Equal(t, "2025-06-03", utils.FormatDate(itinerary.Days[1].Date))
}

func TestItineraryCreate_OrdersUnpaddedTimes(t *testing.T) {
	e := newEnv(t)
	owner := e.register(t, "owner")

	itinerary, err := e.itineraries.Create(ctx, owner.ID, CreateItineraryInput{
		Destination: "Porto",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-02",
		Days: []DayInput{{Date: "2025-06-01", Activities: []ActivityInput{
			{Time: "10:00", Description: "Museum"},
			{Time: "9:00", Description: "Breakfast"},
		}}},
	})
	require.NoError(t, err)

	require.Len(t, itinerary.Days, 1)
	activities := itinerary.Days[0].Activities
	require.Len(t, activities, 2)
	assert.Equal(t, "Breakfast", activities[0].Description)
	assert.Equal(t, "09:00", activities[0].Time)
	assert.Equal(t, 0, activities[0].Position)
	assert.Equal(t, "Museum", activities[1].Description)
	assert.Equal(t, 1, activities[1].Position)
}

func TestItineraryCreate_Failures(t *testing.T) {
	e := newEnv(t)
	owner := e.register(t, "owner")

	cases := []struct {
		name  string
		input CreateItineraryInput
		want  error
	}{
		{"no title", CreateItineraryInput{StartDate: "2025-06-01", EndDate: "2025-06-02"}, ErrItineraryTitleRequired},
		{"no dates", CreateItineraryInput{Title: "Trip"}, ErrItineraryDatesRequired},
		{"end before start", CreateItineraryInput{Title: "Trip", StartDate: "2025-06-15", EndDate: "2025-06-01"}, ErrItineraryDateOrder},
		{"duplicate day", CreateItineraryInput{Title: "Trip", StartDate: "2025-06-01", EndDate: "2025-06-15",
			Days: []DayInput{{Date: "2025-06-02"}, {Date: "2025-06-02"}}}, ErrDuplicateDay},
		{"day outside trip", CreateItineraryInput{Title: "Trip", StartDate: "2025-06-01", EndDate: "2025-06-15",
			Days: []DayInput{{Date: "2025-07-01"}}}, ErrDayOutOfRange},
		{"activity without description", CreateItineraryInput{Title: "Trip", StartDate: "2025-06-01", EndDate: "2025-06-15",
			Days: []DayInput{{Date: "2025-06-01", Activities: []ActivityInput{{Time: "09:00"}}}}}, ErrActivityFieldsRequired},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.itineraries.Create(ctx, owner.ID, tc.input)
			assert.ErrorIs(t, err, tc.want)
			assert.Equal(t, apierrors.KindValidation, apierrors.KindOf(err))
		})
	}

	_, err := e.itineraries.Create(ctx, owner.ID, CreateItineraryInput{Title: "Trip", StartDate: "June 1", EndDate: "2025-06-02"})
	assert.Equal(t, apierrors.KindValidation, apierrors.KindOf(err))

	_, err = e.itineraries.Create(ctx, "bogus", CreateItineraryInput{Title: "Trip", StartDate: "2025-06-01", EndDate: "2025-06-02"})
	assert.Equal(t, apierrors.KindBadRequest, apierrors.KindOf(err))

	_, err = e.itineraries.Create(ctx, owner.ID, CreateItineraryInput{Title: "Trip", StartDate: "2025-06-01", EndDate: "2025-06-02",
		Days: []DayInput{{Date: "2025-06-01", Activities: []ActivityInput{{Time: "9am", Description: "Run"}}}}})
	assert.ErrorIs(t, err, ErrInvalidActivityTime)
	assert.Equal(t, apierrors.KindValidation, apierrors.KindOf(err))
}

func TestItineraryUpdate(t *testing.T) {
	e := newEnv(t)
	owner := e.register(t, "owner")
	created := e.trip(t, owner.ID)

	got, err := e.itineraries.Get(ctx, owner.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-01", utils.FormatDate(got.StartDate))
	assert.Equal(t, "2025-06-15", utils.FormatDate(got.EndDate))

	_, err = e.itineraries.Update(ctx, owner.ID, created.ID, UpdateItineraryInput{EndDate: strPtr("2025-05-01")})
	assert.ErrorIs(t, err, ErrItineraryDateOrder)

	days := []DayInput{{Date: "2025-06-05", Activities: []ActivityInput{{Time: "12:00", Description: "Lunch"}}}}
	updated, err := e.itineraries.Update(ctx, owner.ID, created.ID, UpdateItineraryInput{
		Title: strPtr("Renamed"),
		Days:  &days,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	require.Len(t, updated.Days, 1)
	assert.Equal(t, "Lunch", updated.Days[0].Activities[0].Description)

	// Shrinking the trip must keep the existing days in range.
	_, err = e.itineraries.Update(ctx, owner.ID, created.ID, UpdateItineraryInput{EndDate: strPtr("2025-06-03")})
	assert.ErrorIs(t, err, ErrDayOutOfRange)

	unchanged, err := e.itineraries.Get(ctx, owner.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "2025-06-15", utils.FormatDate(unchanged.EndDate))
	assert.Len(t, unchanged.Days, 1)
}

func TestItinerary_OwnerOnly(t *testing.T) {
	e := newEnv(t)
	owner := e.register(t, "owner")
	stranger := e.register(t, "stranger")
	created := e.trip(t, owner.ID)

	_, err := e.itineraries.Get(ctx, stranger.ID, created.ID)
	assert.ErrorIs(t, err, ErrItineraryNotFound)
	_, err = e.itineraries.Update(ctx, stranger.ID, created.ID, UpdateItineraryInput{Title: strPtr("Mine")})
	assert.ErrorIs(t, err, ErrItineraryNotFound)
	_, err = e.itineraries.Delete(ctx, stranger.ID, created.ID)
	assert.ErrorIs(t, err, ErrItineraryNotFound)

	_, err = e.itineraries.Get(ctx, owner.ID, "malformed")
	assert.Equal(t, apierrors.KindBadRequest, apierrors.KindOf(err))
	_, err = e.itineraries.Get(ctx, owner.ID, uuid.NewString())
	assert.ErrorIs(t, err, ErrItineraryNotFound)
}

func TestItineraryDelete_Cascades(t *testing.T) {
	e := newEnv(t)
	owner := e.register(t, "owner")
	created := e.trip(t, owner.ID)

	_, err := e.pois.Create(ctx, owner.ID, CreatePointOfInterestInput{ItineraryID: created.ID, Name: "Belem Tower", Location: "Lisbon"})
	require.NoError(t, err)

	deleted, err := e.itineraries.Delete(ctx, owner.ID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, deleted.ID)
	assert.Len(t, deleted.PointsOfInterest, 1)

	_, err = e.itineraries.Get(ctx, owner.ID, created.ID)
	assert.ErrorIs(t, err, ErrItineraryNotFound)

	page, err := e.accommodations.List(ctx, owner.ID, AccommodationFilter{UserID: owner.ID}, utils.NewPaginationParams(1, 10))
	require.NoError(t, err)
	assert.Empty(t, page.Data)
}

func TestItineraryListByOwner(t *testing.T) {
	e := newEnv(t)
	owner := e.register(t, "owner")
	other := e.register(t, "other")
	for i := 0; i < 3; i++ {
		e.trip(t, owner.ID)
	}
	e.trip(t, other.ID)

	page, err := e.itineraries.ListByOwner(ctx, owner.ID, utils.NewPaginationParams(1, 2))
	require.NoError(t, err)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, int64(3), page.Total)

	page, err = e.itineraries.ListByOwner(ctx, uuid.NewString(), utils.NewPaginationParams(1, 10))
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, int64(0), page.Total)
}
