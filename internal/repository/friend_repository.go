package repository

import (
	"context"

	"github.com/yukikurage/trip-planner-api/internal/database"
	"github.com/yukikurage/trip-planner-api/internal/models"
	"github.com/yukikurage/trip-planner-api/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFriendRepository is a GORM implementation of FriendRepository
type GormFriendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new FriendRepository
func NewFriendRepository(db *gorm.DB) FriendRepository {
	return &GormFriendRepository{db: db}
}

// Add inserts the friend edge; a concurrent duplicate is absorbed by the primary key
func (r *GormFriendRepository) Add(ctx context.Context, userID, friendID string) (bool, error) {
	edge := models.UserFriend{UserID: userID, FriendID: friendID}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&edge)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Remove deletes the friend edge
func (r *GormFriendRepository) Remove(ctx context.Context, userID, friendID string) (bool, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Delete(&models.UserFriend{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// List returns a page of friends and the total friend count
func (r *GormFriendRepository) List(ctx context.Context, userID string, params utils.PaginationParams) ([]models.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.UserFriend{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	friends := []models.User{}
	if total == 0 {
		return friends, 0, nil
	}

	if err := r.db.WithContext(ctx).
		Joins("JOIN user_friends ON user_friends.friend_id = users.id").
		Where("user_friends.user_id = ?", userID).
		Order("user_friends.created_at DESC").
		Order("users.id ASC").
		Scopes(database.Paginate(params)).
		Find(&friends).Error; err != nil {
		return nil, 0, err
	}

	return friends, total, nil
}
