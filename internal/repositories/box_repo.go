package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prudhvinik1/boxfleet/internal/apperr"
	"github.com/prudhvinik1/boxfleet/internal/database"
	"github.com/prudhvinik1/boxfleet/internal/models"
	"github.com/prudhvinik1/boxfleet/internal/reconcile"
	"github.com/prudhvinik1/boxfleet/internal/sqlbuild"
)

const boxColumns = `id, owner_id, name, description, exposure, model, status, use_auth, public,
	grouptag, weblink, latitude, longitude, created_at, updated_at`

type PostgresBoxRepository struct {
	db    database.Beginner
	now   func() time.Time
	newID func() string
}

func NewPostgresBoxRepository(db database.Beginner) *PostgresBoxRepository {
	return &PostgresBoxRepository{db: db, now: time.Now, newID: uuid.NewString}
}

// Create inserts the box row and then each sensor row in submission order. Either
// all rows are written or none are.
func (r *PostgresBoxRepository) Create(ctx context.Context, box *models.NewBox) (string, error) {
	id := strings.TrimSpace(box.ID)
	if id == "" {
		id = r.newID()
	}

	sensors := make([]models.NewSensor, len(box.Sensors))
	for i, s := range box.Sensors {
		if strings.TrimSpace(s.ID) == "" {
			s.ID = r.newID()
		}
		sensors[i] = s
	}

	stmt, err := sqlbuild.Insert("boxes", newBoxFields(id, box))
	if err != nil {
		return "", fmt.Errorf("failed to build box insert: %w", err)
	}

	err = database.WithTx(ctx, r.db, func(q database.Querier) error {
		if _, err := q.Exec(ctx, stmt.SQL, stmt.Args...); err != nil {
			return apperr.Store("insert box", err)
		}

		st := sensorStatements{q: q, now: r.now}
		for i, s := range sensors {
			if err := st.InsertSensor(ctx, id, s); err != nil {
				return fmt.Errorf("sensors[%d]: %w", i, err)
			}
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to create box: %w", err)
	}
	return id, nil
}

func newBoxFields(id string, box *models.NewBox) *sqlbuild.Fields {
	status := box.Status
	if status == "" {
		status = models.BoxStatusInactive
	}

	var lat, lng *float64
	if box.Location != nil {
		lat, lng = &box.Location.Lat, &box.Location.Lng
	}

	var f sqlbuild.Fields
	f.Set("id", id)
	f.Set("owner_id", box.OwnerID)
	f.Set("name", box.Name)
	f.Set("exposure", string(box.Exposure))
	f.Set("status", string(status))
	f.Set("use_auth", box.UseAuth)
	f.Set("public", box.Public)
	f.Set("latitude", lat)
	f.Set("longitude", lng)
	sqlbuild.Optional(&f, "description", box.Description)
	sqlbuild.Optional(&f, "model", box.Model)
	sqlbuild.Optional(&f, "grouptag", box.GroupTag)
	sqlbuild.Optional(&f, "weblink", box.Weblink)
	return &f
}

// Update writes the present fields of patch, applies the sensor changes in order
// and returns the box as stored after both, all inside one transaction. An empty
// patch issues no box write; the box is only checked for existence.
func (r *PostgresBoxRepository) Update(ctx context.Context, id string, patch models.BoxPatch, changes []models.SensorChange) (*models.Box, error) {
	fields := boxPatchFields(patch)

	var stmt sqlbuild.Statement
	writeBox := fields.Len() > 0
	if writeBox {
		fields.Set("updated_at", r.now())
		var err error
		if stmt, err = sqlbuild.Update("boxes", fields, "id = $1", id); err != nil {
			return nil, fmt.Errorf("failed to build box update: %w", err)
		}
	}

	var box *models.Box
	err := database.WithTx(ctx, r.db, func(q database.Querier) error {
		if writeBox {
			tag, err := q.Exec(ctx, stmt.SQL, stmt.Args...)
			if err != nil {
				return apperr.Store("update box", err)
			}
			if tag.RowsAffected() == 0 {
				return apperr.NotFound("box " + id)
			}
		} else if err := boxExists(ctx, q, id); err != nil {
			return err
		}

		if err := reconcile.Apply(ctx, sensorStatements{q: q, now: r.now}, id, changes); err != nil {
			return err
		}

		var err error
		box, err = getBox(ctx, q, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update box: %w", err)
	}
	return box, nil
}

func boxPatchFields(p models.BoxPatch) *sqlbuild.Fields {
	var f sqlbuild.Fields
	sqlbuild.OptionalText(&f, "name", p.Name)
	sqlbuild.Optional(&f, "description", p.Description)
	sqlbuild.OptionalText(&f, "exposure", p.Exposure)
	sqlbuild.Optional(&f, "model", p.Model)
	sqlbuild.OptionalText(&f, "status", p.Status)
	sqlbuild.Optional(&f, "use_auth", p.UseAuth)
	sqlbuild.Optional(&f, "public", p.Public)
	sqlbuild.Optional(&f, "grouptag", p.GroupTag)
	sqlbuild.Optional(&f, "weblink", p.Weblink)
	if p.Location != nil {
		f.Set("latitude", p.Location.Lat)
		f.Set("longitude", p.Location.Lng)
	}
	return &f
}

// Delete removes the box. Sensors and their measurements go with it through the
// foreign key cascade.
func (r *PostgresBoxRepository) Delete(ctx context.Context, id string) (string, error) {
	var name string
	err := database.WithTx(ctx, r.db, func(q database.Querier) error {
		err := q.QueryRow(ctx, `DELETE FROM boxes WHERE id = $1 RETURNING name`, id).Scan(&name)
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.NotFound("box " + id)
		}
		return apperr.Store("delete box", err)
	})
	if err != nil {
		return "", fmt.Errorf("failed to delete box: %w", err)
	}
	return name, nil
}

func (r *PostgresBoxRepository) GetByID(ctx context.Context, id string) (*models.Box, error) {
	var box *models.Box
	err := database.WithTx(ctx, r.db, func(q database.Querier) error {
		var err error
		box, err = getBox(ctx, q, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get box: %w", err)
	}
	return box, nil
}

func (r *PostgresBoxRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Box, error) {
	var boxes []*models.Box
	err := database.WithTx(ctx, r.db, func(q database.Querier) error {
		rows, err := q.Query(ctx, `SELECT `+boxColumns+`
		          FROM boxes
		          WHERE owner_id = $1
		          ORDER BY created_at DESC`, ownerID)
		if err != nil {
			return apperr.Store("query boxes", err)
		}
		defer rows.Close()

		byID := make(map[string]*models.Box)
		var ids []string
		for rows.Next() {
			box, err := scanBox(rows)
			if err != nil {
				return apperr.Store("scan box", err)
			}
			boxes = append(boxes, box)
			byID[box.ID] = box
			ids = append(ids, box.ID)
		}
		if err := rows.Err(); err != nil {
			return apperr.Store("iterate boxes", err)
		}
		rows.Close()

		if len(ids) == 0 {
			return nil
		}
		sensors, err := listSensors(ctx, q, `box_id = ANY($1)`, ids)
		if err != nil {
			return err
		}
		for _, s := range sensors {
			if box, ok := byID[s.BoxID]; ok {
				box.Sensors = append(box.Sensors, s)
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list boxes: %w", err)
	}
	return boxes, nil
}

func boxExists(ctx context.Context, q database.Querier, id string) error {
	var one int
	err := q.QueryRow(ctx, `SELECT 1 FROM boxes WHERE id = $1`, id).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("box " + id)
	}
	return apperr.Store("check box", err)
}

func getBox(ctx context.Context, q database.Querier, id string) (*models.Box, error) {
	box, err := scanBox(q.QueryRow(ctx, `SELECT `+boxColumns+` FROM boxes WHERE id = $1`, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperr.NotFound("box " + id)
	}
	if err != nil {
		return nil, apperr.Store("get box", err)
	}

	sensors, err := listSensors(ctx, q, `box_id = $1`, id)
	if err != nil {
		return nil, err
	}
	box.Sensors = sensors
	return box, nil
}

func scanBox(row pgx.Row) (*models.Box, error) {
	var box models.Box
	err := row.Scan(
		&box.ID,
		&box.OwnerID,
		&box.Name,
		&box.Description,
		&box.Exposure,
		&box.Model,
		&box.Status,
		&box.UseAuth,
		&box.Public,
		&box.GroupTag,
		&box.Weblink,
		&box.Latitude,
		&box.Longitude,
		&box.CreatedAt,
		&box.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	box.SetLocationFromColumns()
	box.Sensors = []models.Sensor{}
	return &box, nil
}
