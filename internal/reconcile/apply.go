package reconcile

import (
	"context"
	"errors"
	"fmt"

	"github.com/prudhvinik1/boxfleet/internal/models"
)

// SensorStore executes single sensor statements inside the caller's transaction.
// Each method must affect exactly one row and report apperr.ErrNotFound otherwise.
type SensorStore interface {
	InsertSensor(ctx context.Context, boxID string, s models.NewSensor) error
	UpdateSensor(ctx context.Context, boxID, sensorID string, p models.SensorPatch) error
	DeleteSensor(ctx context.Context, boxID, sensorID string) error
}

// Apply runs changes against store one at a time, in order. The first failure is
// returned and nothing after it is attempted.
func Apply(ctx context.Context, store SensorStore, boxID string, changes []models.SensorChange) error {
	for i, c := range changes {
		if err := ctx.Err(); err != nil {
			return err
		}

		var err error
		switch c.Op {
		case models.SensorCreate:
			if c.New == nil {
				err = errors.New("create without sensor definition")
				break
			}
			err = store.InsertSensor(ctx, boxID, *c.New)
		case models.SensorUpdate:
			err = store.UpdateSensor(ctx, boxID, c.SensorID, c.Patch)
		case models.SensorDelete:
			err = store.DeleteSensor(ctx, boxID, c.SensorID)
		default:
			err = fmt.Errorf("unknown sensor operation %d", c.Op)
		}
		if err != nil {
			return fmt.Errorf("sensors[%d] %s %s: %w", i, c.Op, c.SensorID, err)
		}
	}
	return nil
}
