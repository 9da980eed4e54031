package database

import (
	"fmt"

	"github.com/yukikurage/trip-planner-api/internal/logging"
	"github.com/yukikurage/trip-planner-api/internal/models"
	"gorm.io/gorm"
)

// indexSpec names an index declared in a model's gorm tags.
type indexSpec struct {
	model interface{}
	name  string
}

var indexes = []indexSpec{
	{&models.Itinerary{}, "idx_itineraries_owner_created"},
	{&models.ItineraryDay{}, "idx_itinerary_days_itinerary_id"},
	{&models.Activity{}, "idx_activities_day_id"},
	{&models.Accommodation{}, "idx_accommodations_itinerary_id"},
	{&models.Accommodation{}, "idx_accommodations_created_by_id"},
	{&models.PointOfInterest{}, "idx_points_of_interest_itinerary_id"},
	{&models.UserFriend{}, "idx_user_friends_friend_id"},
}

// AddIndexes creates any declared index that is missing, for databases whose
// tables predate the index tag.
func AddIndexes(db *gorm.DB) error {
	migrator := db.Migrator()
	for _, idx := range indexes {
		if migrator.HasIndex(idx.model, idx.name) {
			continue
		}
		if err := migrator.CreateIndex(idx.model, idx.name); err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		logging.Info().Str("index", idx.name).Msg("created index")
	}
	return nil
}

// MigrateDatabase runs table migrations followed by index creation.
func MigrateDatabase(db *gorm.DB) error {
	if err := Migrate(db); err != nil {
		return err
	}
	if err := AddIndexes(db); err != nil {
		return fmt.Errorf("failed to add indexes: %w", err)
	}
	return nil
}
