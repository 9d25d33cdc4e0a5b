package models

import "time"

type Sensor struct {
	ID         string    `json:"_id"`
	BoxID      string    `json:"-"`
	Title      string    `json:"title"`
	Unit       string    `json:"unit"`
	SensorType string    `json:"sensorType"`
	Status     *string   `json:"status,omitempty"`
	Icon       *string   `json:"icon,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type NewSensor struct {
	ID         string
	Title      string
	Unit       string
	SensorType string
	Status     *string
	Icon       *string
}

type SensorPatch struct {
	Title      *string
	Unit       *string
	SensorType *string
	Status     *string
	Icon       *string
}
