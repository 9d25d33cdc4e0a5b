package reconcile

import (
	"fmt"
	"strings"

	"github.com/prudhvinik1/boxfleet/internal/apperr"
	"github.com/prudhvinik1/boxfleet/internal/models"
)

// IDFunc produces identifiers for sensors created without a client supplied _id.
type IDFunc func() string

// Classify resolves one descriptor at position index into a SensorChange.
func Classify(index int, d models.SensorDescriptor, newID IDFunc) (models.SensorChange, error) {
	ref := descriptorRef(index, d)

	switch {
	case bool(d.Deleted):
		id, ok := present(d.ID)
		if !ok {
			return models.SensorChange{}, apperr.Validation(ref, "_id is required to delete a sensor")
		}
		return models.SensorChange{Op: models.SensorDelete, SensorID: id}, nil

	case bool(d.Edited && d.New):
		for _, req := range []struct {
			name  string
			value *string
		}{
			{"title", d.Title},
			{"unit", d.Unit},
			{"sensorType", d.SensorType},
		} {
			if _, ok := present(req.value); !ok {
				return models.SensorChange{}, apperr.Validation(ref, "%s is required for a new sensor", req.name)
			}
		}
		id, ok := present(d.ID)
		if !ok {
			id = newID()
		}
		return models.SensorChange{
			Op:       models.SensorCreate,
			SensorID: id,
			New: &models.NewSensor{
				ID:         id,
				Title:      *d.Title,
				Unit:       *d.Unit,
				SensorType: *d.SensorType,
				Status:     d.Status,
				Icon:       d.Icon,
			},
		}, nil

	case bool(d.Edited):
		id, ok := present(d.ID)
		if !ok {
			return models.SensorChange{}, apperr.Validation(ref, "_id is required to update a sensor")
		}
		return models.SensorChange{
			Op:       models.SensorUpdate,
			SensorID: id,
			Patch: models.SensorPatch{
				Title:      d.Title,
				Unit:       d.Unit,
				SensorType: d.SensorType,
				Status:     d.Status,
				Icon:       d.Icon,
			},
		}, nil
	}

	if d.New {
		return models.SensorChange{}, apperr.Validation(ref, "new sensor must also be marked edited")
	}
	return models.SensorChange{}, apperr.Validation(ref, "one of deleted, edited or new must be set")
}

// ClassifyAll classifies the batch in order and stops at the first rejected
// descriptor.
func ClassifyAll(descriptors []models.SensorDescriptor, newID IDFunc) ([]models.SensorChange, error) {
	changes := make([]models.SensorChange, 0, len(descriptors))
	for i, d := range descriptors {
		c, err := Classify(i, d, newID)
		if err != nil {
			return nil, err
		}
		changes = append(changes, c)
	}
	return changes, nil
}

// Count reports how many changes of each kind a batch holds.
func Count(changes []models.SensorChange) (created, updated, deleted int) {
	for _, c := range changes {
		switch c.Op {
		case models.SensorCreate:
			created++
		case models.SensorUpdate:
			updated++
		case models.SensorDelete:
			deleted++
		}
	}
	return created, updated, deleted
}

func descriptorRef(index int, d models.SensorDescriptor) string {
	if id, ok := present(d.ID); ok {
		return "sensor " + id
	}
	return fmt.Sprintf("sensors[%d]", index)
}

func present(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	v := strings.TrimSpace(*s)
	return v, v != ""
}
