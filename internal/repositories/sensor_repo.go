package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/prudhvinik1/boxfleet/internal/apperr"
	"github.com/prudhvinik1/boxfleet/internal/database"
	"github.com/prudhvinik1/boxfleet/internal/models"
	"github.com/prudhvinik1/boxfleet/internal/sqlbuild"
)

const sensorColumns = `id, box_id, title, unit, sensor_type, status, icon, updated_at`

// sensorStatements issues sensor writes on the transaction of the box mutation
// that owns them. Every statement is scoped by box_id so a sensor of another box
// is never touched.
type sensorStatements struct {
	q   database.Querier
	now func() time.Time
}

func (s sensorStatements) InsertSensor(ctx context.Context, boxID string, n models.NewSensor) error {
	var f sqlbuild.Fields
	f.Set("id", n.ID)
	f.Set("box_id", boxID)
	f.Set("title", n.Title)
	f.Set("unit", n.Unit)
	f.Set("sensor_type", n.SensorType)
	sqlbuild.Optional(&f, "status", n.Status)
	sqlbuild.Optional(&f, "icon", n.Icon)
	f.Set("updated_at", s.now())

	stmt, err := sqlbuild.Insert("sensors", &f)
	if err != nil {
		return fmt.Errorf("failed to build sensor insert: %w", err)
	}

	tag, err := s.q.Exec(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return apperr.Store("insert sensor "+n.ID, err)
	}
	if tag.RowsAffected() != 1 {
		return apperr.Store("insert sensor "+n.ID, fmt.Errorf("inserted %d rows", tag.RowsAffected()))
	}
	return nil
}

// UpdateSensor always stamps updated_at, so a patch without fields still proves
// the sensor exists.
func (s sensorStatements) UpdateSensor(ctx context.Context, boxID, sensorID string, p models.SensorPatch) error {
	var f sqlbuild.Fields
	sqlbuild.OptionalText(&f, "title", p.Title)
	sqlbuild.OptionalText(&f, "unit", p.Unit)
	sqlbuild.OptionalText(&f, "sensor_type", p.SensorType)
	sqlbuild.Optional(&f, "status", p.Status)
	sqlbuild.Optional(&f, "icon", p.Icon)
	f.Set("updated_at", s.now())

	stmt, err := sqlbuild.Update("sensors", &f, "id = $1 AND box_id = $2", sensorID, boxID)
	if err != nil {
		return fmt.Errorf("failed to build sensor update: %w", err)
	}

	tag, err := s.q.Exec(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return apperr.Store("update sensor "+sensorID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("sensor " + sensorID)
	}
	return nil
}

func (s sensorStatements) DeleteSensor(ctx context.Context, boxID, sensorID string) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM sensors WHERE id = $1 AND box_id = $2`, sensorID, boxID)
	if err != nil {
		return apperr.Store("delete sensor "+sensorID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("sensor " + sensorID)
	}
	return nil
}

func listSensors(ctx context.Context, q database.Querier, where string, arg any) ([]models.Sensor, error) {
	rows, err := q.Query(ctx, `SELECT `+sensorColumns+`
	          FROM sensors
	          WHERE `+where+`
	          ORDER BY created_at, id`, arg)
	if err != nil {
		return nil, apperr.Store("query sensors", err)
	}
	defer rows.Close()

	sensors := []models.Sensor{}
	for rows.Next() {
		var s models.Sensor
		err := rows.Scan(
			&s.ID,
			&s.BoxID,
			&s.Title,
			&s.Unit,
			&s.SensorType,
			&s.Status,
			&s.Icon,
			&s.UpdatedAt,
		)
		if err != nil {
			return nil, apperr.Store("scan sensor", err)
		}
		sensors = append(sensors, s)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Store("iterate sensors", err)
	}
	return sensors, nil
}
