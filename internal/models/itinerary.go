package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Itinerary struct {
	ID          string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	OwnerID     string    `gorm:"type:varchar(36);not null;index:idx_itineraries_owner_created,priority:1" json:"owner_id" validate:"required,uuid"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title" validate:"required,max=255"`
	Destination string    `gorm:"type:varchar(255)" json:"destination" validate:"max=255"`
	StartDate   time.Time `gorm:"not null" json:"startDate" validate:"required"`
	EndDate     time.Time `gorm:"not null" json:"endDate" validate:"required,gtefield=StartDate"`
	CreatedAt   time.Time `gorm:"index:idx_itineraries_owner_created,priority:2" json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Owner            *User             `gorm:"foreignKey:OwnerID" json:"-" validate:"-"`
	Days             []ItineraryDay    `gorm:"foreignKey:ItineraryID" json:"days" validate:"dive"`
	Accommodations   []Accommodation   `gorm:"foreignKey:ItineraryID" json:"-" validate:"-"`
	PointsOfInterest []PointOfInterest `gorm:"foreignKey:ItineraryID" json:"-" validate:"-"`
}

func (i *Itinerary) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// ItineraryDay is one dated plan inside an itinerary.
type ItineraryDay struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	ItineraryID string     `gorm:"type:varchar(36);not null;index" json:"itinerary_id"`
	Date        time.Time  `gorm:"not null" json:"date" validate:"required"`
	Position    int        `gorm:"not null;default:0" json:"position"`
	Activities  []Activity `gorm:"foreignKey:DayID" json:"activities" validate:"dive"`
}

func (d *ItineraryDay) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

type Activity struct {
	ID          string `gorm:"type:varchar(36);primaryKey" json:"id"`
	DayID       string `gorm:"type:varchar(36);not null;index" json:"day_id"`
	Time        string `gorm:"type:varchar(5);not null" json:"time" validate:"required,clock"`
	Description string `gorm:"type:text;not null" json:"description" validate:"required,max=2000"`
	Position    int    `gorm:"not null;default:0" json:"position"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
