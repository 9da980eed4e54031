package repository

import (
	"context"

	"github.com/yukikurage/trip-planner-api/internal/database"
	"github.com/yukikurage/trip-planner-api/internal/models"
	"github.com/yukikurage/trip-planner-api/internal/utils"
	"github.com/yukikurage/trip-planner-api/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormItineraryRepository is a GORM implementation of ItineraryRepository
type GormItineraryRepository struct {
	db *gorm.DB
}

// NewItineraryRepository creates a new ItineraryRepository
func NewItineraryRepository(db *gorm.DB) ItineraryRepository {
	return &GormItineraryRepository{db: db}
}

// Create creates an itinerary together with its days and activities
func (r *GormItineraryRepository) Create(ctx context.Context, itinerary *models.Itinerary) error {
	if err := validation.Struct(itinerary); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Omit("Owner", "Accommodations", "PointsOfInterest").
		Create(itinerary).Error
}

// FindByID finds an itinerary with all related records populated
func (r *GormItineraryRepository) FindByID(ctx context.Context, id string) (*models.Itinerary, error) {
	var itinerary models.Itinerary
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("itinerary_days.position ASC").Order("itinerary_days.date ASC")
		}).
		Preload("Days.Activities", func(db *gorm.DB) *gorm.DB {
			return db.Order("activities.position ASC").Order("activities.time ASC")
		}).
		Preload("Accommodations", func(db *gorm.DB) *gorm.DB {
			return db.Order("accommodations.check_in_date ASC")
		}).
		Preload("PointsOfInterest", func(db *gorm.DB) *gorm.DB {
			return db.Order("points_of_interest.created_at ASC")
		}).
		First(&itinerary, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &itinerary, nil
}

// FindOwnerID returns the owner of an itinerary without loading relations
func (r *GormItineraryRepository) FindOwnerID(ctx context.Context, id string) (string, error) {
	var itinerary models.Itinerary
	if err := r.db.WithContext(ctx).Select("id", "owner_id").First(&itinerary, "id = ?", id).Error; err != nil {
		return "", err
	}
	return itinerary.OwnerID, nil
}

// Update saves the itinerary and optionally replaces its day list in one transaction
func (r *GormItineraryRepository) Update(ctx context.Context, itinerary *models.Itinerary, replaceDays bool) error {
	if err := validation.Struct(itinerary); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(itinerary).Error; err != nil {
			return err
		}
		if !replaceDays {
			return nil
		}

		if err := deleteDays(tx, []string{itinerary.ID}); err != nil {
			return err
		}

		if len(itinerary.Days) == 0 {
			return nil
		}
		for i := range itinerary.Days {
			day := &itinerary.Days[i]
			day.ID = ""
			day.ItineraryID = itinerary.ID
			for j := range day.Activities {
				day.Activities[j].ID = ""
				day.Activities[j].DayID = ""
			}
		}
		return tx.Create(&itinerary.Days).Error
	})
}

// Delete deletes an itinerary and its children in a transaction
func (r *GormItineraryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Itinerary{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return gorm.ErrRecordNotFound
		}
		return deleteItineraries(tx, []string{id})
	})
}

// ListByOwner lists an owner's itineraries, newest first
func (r *GormItineraryRepository) ListByOwner(ctx context.Context, ownerID string, params utils.PaginationParams) ([]models.Itinerary, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Itinerary{}).Where("owner_id = ?", ownerID).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	itineraries := []models.Itinerary{}
	if total == 0 {
		return itineraries, 0, nil
	}

	if err := query.
		Scopes(database.NewestFirst("itineraries"), database.Paginate(params)).
		Find(&itineraries).Error; err != nil {
		return nil, 0, err
	}
	return itineraries, total, nil
}

// deleteDays removes the days and activities of the given itineraries.
func deleteDays(tx *gorm.DB, itineraryIDs []string) error {
	var dayIDs []string
	if err := tx.Model(&models.ItineraryDay{}).Where("itinerary_id IN ?", itineraryIDs).Pluck("id", &dayIDs).Error; err != nil {
		return err
	}
	if len(dayIDs) > 0 {
		if err := tx.Where("day_id IN ?", dayIDs).Delete(&models.Activity{}).Error; err != nil {
			return err
		}
	}
	return tx.Where("itinerary_id IN ?", itineraryIDs).Delete(&models.ItineraryDay{}).Error
}

// deleteItineraries removes itineraries with their days, activities,
// accommodations and points of interest. Callers supply the transaction.
func deleteItineraries(tx *gorm.DB, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := deleteDays(tx, ids); err != nil {
		return err
	}
	if err := tx.Where("itinerary_id IN ?", ids).Delete(&models.Accommodation{}).Error; err != nil {
		return err
	}
	if err := tx.Where("itinerary_id IN ?", ids).Delete(&models.PointOfInterest{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&models.Itinerary{}).Error
}
