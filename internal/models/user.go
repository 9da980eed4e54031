package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yukikurage/trip-planner-api/internal/auth"
	"gorm.io/gorm"
)

type User struct {
	ID                string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Username          string     `gorm:"type:varchar(30);uniqueIndex;not null" json:"username" validate:"required,min=3,max=30"`
	Email             string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email,max=255"`
	PasswordHash      string     `gorm:"type:varchar(255);not null" json:"-"`
	ResetToken        *string    `gorm:"type:varchar(512)" json:"-"`
	ResetTokenExpires *time.Time `json:"-"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Password is the plaintext to hash on the next save. It is never stored.
	Password string `gorm:"-" json:"-" validate:"omitempty,password"`

	// Relations
	Itineraries []Itinerary `gorm:"foreignKey:OwnerID" json:"-" validate:"-"`
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Normalize trims the username and normalizes the email in place.
func (u *User) Normalize() {
	u.Username = strings.TrimSpace(u.Username)
	u.Email = NormalizeEmail(u.Email)
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave hashes Password when one was supplied and leaves the stored hash
// alone otherwise.
func (u *User) BeforeSave(tx *gorm.DB) error {
	u.Normalize()

	if u.Password == "" {
		return nil
	}
	hash, err := auth.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	u.Password = ""
	return nil
}
