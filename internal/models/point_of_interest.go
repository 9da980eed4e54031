package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PointOfInterest struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Location    string    `gorm:"type:varchar(255);not null" json:"location" validate:"required,max=255"`
	Description string    `gorm:"type:text" json:"description" validate:"max=2000"`
	ItineraryID string    `gorm:"type:varchar(36);not null;index" json:"belongsTo" validate:"required,uuid"`
	CreatedAt   time.Time `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Itinerary *Itinerary `gorm:"foreignKey:ItineraryID" json:"-" validate:"-"`
}

// TableName keeps the plural readable.
func (PointOfInterest) TableName() string {
	return "points_of_interest"
}

func (p *PointOfInterest) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
