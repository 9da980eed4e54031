package repository

import (
	"context"
	"errors"
	"time"

	apierrors "github.com/yukikurage/trip-planner-api/internal/errors"
	"github.com/yukikurage/trip-planner-api/internal/models"
	"github.com/yukikurage/trip-planner-api/internal/validation"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateUser is returned when a unique user column collides.
var ErrDuplicateUser = apierrors.Conflict("duplicate username or email", "Username or email already in use")

// GormUserRepository is a GORM implementation of UserRepository
type GormUserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &GormUserRepository{db: db}
}

func translateUserError(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateUser.WithCause(err)
	}
	return err
}

// Create creates a new user
func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	if user.Password == "" && user.PasswordHash == "" {
		return apierrors.Validation("user without password", "password is required")
	}
	user.Normalize()
	if err := validation.Struct(user); err != nil {
		return err
	}
	return translateUserError(r.db.WithContext(ctx).Omit(clause.Associations).Create(user).Error)
}

// FindByID finds a user by ID
func (r *GormUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByEmail finds a user by normalized email
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByUsername finds a user by username
func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates a user
func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	user.Normalize()
	if err := validation.Struct(user); err != nil {
		return err
	}
	return translateUserError(r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error)
}

// Delete removes a user and what they own in a transaction
func (r *GormUserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var itineraryIDs []string
		if err := tx.Model(&models.Itinerary{}).Where("owner_id = ?", id).Pluck("id", &itineraryIDs).Error; err != nil {
			return err
		}
		if err := deleteItineraries(tx, itineraryIDs); err != nil {
			return err
		}

		// Accommodations the user added to itineraries they did not own
		if err := tx.Where("created_by_id = ?", id).Delete(&models.Accommodation{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ? OR friend_id = ?", id, id).Delete(&models.UserFriend{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", id).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// SetResetToken stores a reset token on the user
func (r *GormUserRepository) SetResetToken(ctx context.Context, id, token string, expiresAt time.Time) error {
	res := r.db.WithContext(ctx).Session(&gorm.Session{SkipHooks: true}).
		Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"reset_token":         token,
			"reset_token_expires": expiresAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ApplyPasswordReset replaces the hash and clears both reset columns together
func (r *GormUserRepository) ApplyPasswordReset(ctx context.Context, id, token, passwordHash string, now time.Time) (bool, error) {
	res := r.db.WithContext(ctx).Session(&gorm.Session{SkipHooks: true}).
		Model(&models.User{}).
		Where("id = ? AND reset_token = ? AND reset_token_expires > ?", id, token, now).
		Updates(map[string]interface{}{
			"password_hash":       passwordHash,
			"reset_token":         nil,
			"reset_token_expires": nil,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
