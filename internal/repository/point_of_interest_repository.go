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

// GormPointOfInterestRepository is a GORM implementation of PointOfInterestRepository
type GormPointOfInterestRepository struct {
	db *gorm.DB
}

// NewPointOfInterestRepository creates a new PointOfInterestRepository
func NewPointOfInterestRepository(db *gorm.DB) PointOfInterestRepository {
	return &GormPointOfInterestRepository{db: db}
}

func (r *GormPointOfInterestRepository) Create(ctx context.Context, poi *models.PointOfInterest) error {
	if err := validation.Struct(poi); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(poi).Error
}

func (r *GormPointOfInterestRepository) FindByID(ctx context.Context, id string) (*models.PointOfInterest, error) {
	var poi models.PointOfInterest
	if err := r.db.WithContext(ctx).Preload("Itinerary").First(&poi, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &poi, nil
}

func (r *GormPointOfInterestRepository) Update(ctx context.Context, poi *models.PointOfInterest) error {
	if err := validation.Struct(poi); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(poi).Error
}

func (r *GormPointOfInterestRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.PointOfInterest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormPointOfInterestRepository) ListByItinerary(ctx context.Context, itineraryID string, params utils.PaginationParams) ([]models.PointOfInterest, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.PointOfInterest{}).Where("itinerary_id = ?", itineraryID).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	pois := []models.PointOfInterest{}
	if total == 0 {
		return pois, 0, nil
	}

	if err := query.
		Scopes(database.NewestFirst("points_of_interest"), database.Paginate(params)).
		Find(&pois).Error; err != nil {
		return nil, 0, err
	}
	return pois, total, nil
}
