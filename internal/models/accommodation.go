package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AccommodationType string

const (
	AccommodationHotel  AccommodationType = "Hotel"
	AccommodationAirbnb AccommodationType = "Airbnb"
	AccommodationHostel AccommodationType = "Hostel"
	AccommodationOther  AccommodationType = "Other"
)

// Valid reports whether t is one of the known accommodation types.
func (t AccommodationType) Valid() bool {
	switch t {
	case AccommodationHotel, AccommodationAirbnb, AccommodationHostel, AccommodationOther:
		return true
	}
	return false
}

type Accommodation struct {
	ID                 string            `gorm:"type:varchar(36);primaryKey" json:"id"`
	Type               AccommodationType `gorm:"type:varchar(20);not null" json:"type" validate:"required,oneof=Hotel Airbnb Hostel Other"`
	Name               string            `gorm:"type:varchar(255);not null" json:"name" validate:"required,max=255"`
	Address            string            `gorm:"type:varchar(500);not null" json:"address" validate:"required,max=500"`
	ConfirmationNumber string            `gorm:"type:varchar(100)" json:"confirmationNumber" validate:"max=100"`
	CheckInDate        time.Time         `gorm:"not null" json:"checkInDate" validate:"required"`
	CheckOutDate       time.Time         `gorm:"not null" json:"checkOutDate" validate:"required,gtefield=CheckInDate"`
	Location           string            `gorm:"type:varchar(255);not null" json:"location" validate:"required,max=255"`
	ItineraryID        string            `gorm:"type:varchar(36);not null;index" json:"belongsTo" validate:"required,uuid"`
	CreatedByID        string            `gorm:"type:varchar(36);not null;index" json:"createdBy" validate:"required,uuid"`
	CreatedAt          time.Time         `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`

	// Relations
	Itinerary *Itinerary `gorm:"foreignKey:ItineraryID" json:"-" validate:"-"`
}

func (a *Accommodation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// DurationDays is the stay length in whole days, rounded up.
func (a *Accommodation) DurationDays() int {
	hours := a.CheckOutDate.Sub(a.CheckInDate).Hours()
	if hours <= 0 {
		return 0
	}
	return int(math.Ceil(hours / 24))
}
