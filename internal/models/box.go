package models

import (
	"time"

	"github.com/google/uuid"
)

type Exposure string

const (
	ExposureIndoor  Exposure = "indoor"
	ExposureOutdoor Exposure = "outdoor"
	ExposureMobile  Exposure = "mobile"
	ExposureUnknown Exposure = "unknown"
)

func (e Exposure) Valid() bool {
	switch e {
	case ExposureIndoor, ExposureOutdoor, ExposureMobile, ExposureUnknown:
		return true
	}
	return false
}

type BoxStatus string

const (
	BoxStatusActive   BoxStatus = "ACTIVE"
	BoxStatusInactive BoxStatus = "INACTIVE"
	BoxStatusOld      BoxStatus = "OLD"
)

func (s BoxStatus) Valid() bool {
	switch s {
	case BoxStatusActive, BoxStatusInactive, BoxStatusOld:
		return true
	}
	return false
}

// Location is the current position of a box in decimal degrees.
type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

func (l Location) Valid() bool {
	return l.Lat >= -90 && l.Lat <= 90 && l.Lng >= -180 && l.Lng <= 180
}

type Box struct {
	ID          string    `json:"_id"`
	OwnerID     uuid.UUID `json:"ownerId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	Exposure    Exposure  `json:"exposure"`
	Model       *string   `json:"model,omitempty"`
	Status      BoxStatus `json:"status"`
	UseAuth     bool      `json:"useAuth"`
	Public      bool      `json:"public"`
	GroupTag    *string   `json:"grouptag,omitempty"`
	Weblink     *string   `json:"weblink,omitempty"`
	Latitude    *float64  `json:"-"`
	Longitude   *float64  `json:"-"`
	Location    *Location `json:"currentLocation,omitempty"`
	Sensors     []Sensor  `json:"sensors"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SetLocationFromColumns fills Location when both coordinates are stored.
func (b *Box) SetLocationFromColumns() {
	if b.Latitude != nil && b.Longitude != nil {
		b.Location = &Location{Lat: *b.Latitude, Lng: *b.Longitude}
	}
}

// NewBox is everything needed to register a box and its initial sensors.
type NewBox struct {
	ID          string
	OwnerID     uuid.UUID
	Name        string
	Description *string
	Exposure    Exposure
	Model       *string
	Status      BoxStatus
	UseAuth     bool
	Public      bool
	GroupTag    *string
	Weblink     *string
	Location    *Location
	Sensors     []NewSensor
}

// BoxPatch holds the box columns a client may change. A nil field is left untouched.
type BoxPatch struct {
	Name        *string
	Description *string
	Exposure    *Exposure
	Model       *string
	Status      *BoxStatus
	UseAuth     *bool
	Public      *bool
	GroupTag    *string
	Weblink     *string
	Location    *Location
}
