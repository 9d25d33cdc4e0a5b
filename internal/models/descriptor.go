package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Flag is a truthy intent marker on a sensor descriptor. Clients send booleans,
// "true"/"false" strings or numbers; anything else is rejected at decode time.
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = false
		return nil
	}

	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = Flag(b)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "1":
			*f = true
		case "false", "0", "":
			*f = false
		default:
			return fmt.Errorf("invalid flag value %q", s)
		}
		return nil
	}

	n, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return fmt.Errorf("invalid flag value %s", data)
	}
	*f = n != 0
	return nil
}

// SensorDescriptor is the wire form of one sensor mutation intent inside a box
// update. The three flags are independent; the classifier decides what they mean.
type SensorDescriptor struct {
	ID         *string `json:"_id,omitempty"`
	Title      *string `json:"title,omitempty"`
	Unit       *string `json:"unit,omitempty"`
	SensorType *string `json:"sensorType,omitempty"`
	Status     *string `json:"status,omitempty"`
	Icon       *string `json:"icon,omitempty"`
	Deleted    Flag    `json:"deleted,omitempty"`
	Edited     Flag    `json:"edited,omitempty"`
	New        Flag    `json:"new,omitempty"`
}

type SensorOp int

const (
	SensorCreate SensorOp = iota + 1
	SensorUpdate
	SensorDelete
)

func (op SensorOp) String() string {
	switch op {
	case SensorCreate:
		return "create"
	case SensorUpdate:
		return "update"
	case SensorDelete:
		return "delete"
	}
	return "unknown"
}

// SensorChange is a classified descriptor. New is set for SensorCreate, Patch for
// SensorUpdate; SensorDelete only needs SensorID.
type SensorChange struct {
	Op       SensorOp
	SensorID string
	Patch    SensorPatch
	New      *NewSensor
}
