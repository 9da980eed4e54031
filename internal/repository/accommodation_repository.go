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

// GormAccommodationRepository is a GORM implementation of AccommodationRepository
type GormAccommodationRepository struct {
	db *gorm.DB
}

// NewAccommodationRepository creates a new AccommodationRepository
func NewAccommodationRepository(db *gorm.DB) AccommodationRepository {
	return &GormAccommodationRepository{db: db}
}

func (r *GormAccommodationRepository) Create(ctx context.Context, accommodation *models.Accommodation) error {
	if err := validation.Struct(accommodation); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(accommodation).Error
}

// FindByID loads an accommodation with its itinerary
func (r *GormAccommodationRepository) FindByID(ctx context.Context, id string) (*models.Accommodation, error) {
	var accommodation models.Accommodation
	if err := r.db.WithContext(ctx).Preload("Itinerary").First(&accommodation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &accommodation, nil
}

func (r *GormAccommodationRepository) Update(ctx context.Context, accommodation *models.Accommodation) error {
	if err := validation.Struct(accommodation); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(accommodation).Error
}

func (r *GormAccommodationRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Accommodation{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormAccommodationRepository) ListByItinerary(ctx context.Context, itineraryID string, params utils.PaginationParams) ([]models.Accommodation, int64, error) {
	return r.list(ctx, "itinerary_id = ?", itineraryID, params)
}

func (r *GormAccommodationRepository) ListByCreator(ctx context.Context, userID string, params utils.PaginationParams) ([]models.Accommodation, int64, error) {
	return r.list(ctx, "created_by_id = ?", userID, params)
}

func (r *GormAccommodationRepository) list(ctx context.Context, cond string, arg string, params utils.PaginationParams) ([]models.Accommodation, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.Accommodation{}).Where(cond, arg).Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	accommodations := []models.Accommodation{}
	if total == 0 {
		return accommodations, 0, nil
	}

	if err := query.
		Scopes(database.NewestFirst("accommodations"), database.Paginate(params)).
		Find(&accommodations).Error; err != nil {
		return nil, 0, err
	}
	return accommodations, total, nil
}
