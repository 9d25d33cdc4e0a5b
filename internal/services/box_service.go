package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/prudhvinik1/boxfleet/internal/apperr"
	"github.com/prudhvinik1/boxfleet/internal/models"
	"github.com/prudhvinik1/boxfleet/internal/reconcile"
	"github.com/prudhvinik1/boxfleet/internal/repositories"
)

var ErrForbidden = errors.New("box belongs to another user")

type BoxService struct {
	boxes repositories.BoxRepository
	cache repositories.BoxCache
	log   logrus.FieldLogger
	newID reconcile.IDFunc
}

func NewBoxService(boxes repositories.BoxRepository, cache repositories.BoxCache, log logrus.FieldLogger) *BoxService {
	return &BoxService{
		boxes: boxes,
		cache: cache,
		log:   log,
		newID: uuid.NewString,
	}
}

// UpdateBox applies patch and the sensor descriptors as one unit. The whole batch
// is classified first, so a malformed descriptor fails before anything is written.
func (s *BoxService) UpdateBox(ctx context.Context, boxID string, patch models.BoxPatch, descriptors []models.SensorDescriptor) (*models.Box, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	changes, err := reconcile.ClassifyAll(descriptors, s.newID)
	if err != nil {
		return nil, err
	}

	box, err := s.boxes.Update(ctx, boxID, patch, changes)
	if err != nil {
		return nil, err
	}
	s.Evict(ctx, boxID)

	created, updated, deleted := reconcile.Count(changes)
	s.log.WithFields(logrus.Fields{
		"box_id":          boxID,
		"sensors_created": created,
		"sensors_updated": updated,
		"sensors_deleted": deleted,
	}).Info("box updated")

	return box, nil
}

func (s *BoxService) CreateBox(ctx context.Context, box *models.NewBox) (string, error) {
	if err := validateNewBox(box); err != nil {
		return "", err
	}

	id, err := s.boxes.Create(ctx, box)
	if err != nil {
		return "", err
	}

	s.log.WithFields(logrus.Fields{
		"box_id":   id,
		"owner_id": box.OwnerID,
		"sensors":  len(box.Sensors),
	}).Info("box created")
	return id, nil
}

func (s *BoxService) DeleteBox(ctx context.Context, boxID string) (string, error) {
	name, err := s.boxes.Delete(ctx, boxID)
	if err != nil {
		return "", err
	}
	s.Evict(ctx, boxID)

	s.log.WithField("box_id", boxID).Info("box deleted")
	return name, nil
}

// GetBox reads through the cache. Cache failures are logged and never fail the read.
func (s *BoxService) GetBox(ctx context.Context, boxID string) (*models.Box, error) {
	box, err := s.cache.Get(ctx, boxID)
	if err == nil {
		return box, nil
	}
	if !errors.Is(err, repositories.ErrCacheMiss) {
		s.log.WithError(err).WithField("box_id", boxID).Warn("box cache read failed")
	}

	box, err = s.boxes.GetByID(ctx, boxID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, box); err != nil {
		s.log.WithError(err).WithField("box_id", boxID).Warn("box cache write failed")
	}
	return box, nil
}

func (s *BoxService) ListBoxes(ctx context.Context, ownerID uuid.UUID) ([]*models.Box, error) {
	return s.boxes.ListByOwner(ctx, ownerID)
}

// Authorize returns ErrForbidden unless userID owns the box.
func (s *BoxService) Authorize(ctx context.Context, userID uuid.UUID, boxID string) error {
	box, err := s.boxes.GetByID(ctx, boxID)
	if err != nil {
		return err
	}
	if box.OwnerID != userID {
		return ErrForbidden
	}
	return nil
}

// Evict drops the cached copy of a box. Failures are logged only.
func (s *BoxService) Evict(ctx context.Context, boxID string) {
	if err := s.cache.Invalidate(ctx, boxID); err != nil {
		s.log.WithError(err).WithField("box_id", boxID).Warn("box cache invalidation failed")
	}
}

// validatePatch checks the enum and range fields of a patch. A blank exposure or
// status means the field is absent and is not written.
func validatePatch(p models.BoxPatch) error {
	if present(p.Exposure) && !p.Exposure.Valid() {
		return apperr.Validation("exposure", "unknown exposure %q", *p.Exposure)
	}
	if present(p.Status) && !p.Status.Valid() {
		return apperr.Validation("status", "unknown status %q", *p.Status)
	}
	if p.Location != nil && !p.Location.Valid() {
		return apperr.Validation("location", "coordinates out of range")
	}
	return nil
}

func validateNewBox(b *models.NewBox) error {
	if strings.TrimSpace(b.Name) == "" {
		return apperr.Validation("name", "is required")
	}
	if b.OwnerID == uuid.Nil {
		return apperr.Validation("owner", "is required")
	}
	if !b.Exposure.Valid() {
		return apperr.Validation("exposure", "unknown exposure %q", b.Exposure)
	}
	if b.Status != "" && !b.Status.Valid() {
		return apperr.Validation("status", "unknown status %q", b.Status)
	}
	if b.Location == nil {
		return apperr.Validation("location", "is required")
	}
	if !b.Location.Valid() {
		return apperr.Validation("location", "coordinates out of range")
	}

	for i, sensor := range b.Sensors {
		for _, f := range []struct{ name, value string }{
			{"title", sensor.Title},
			{"unit", sensor.Unit},
			{"sensorType", sensor.SensorType},
		} {
			if strings.TrimSpace(f.value) == "" {
				return apperr.Validation(fmt.Sprintf("sensors[%d]", i), "%s is required", f.name)
			}
		}
	}
	return nil
}

func present[T ~string](v *T) bool {
	return v != nil && strings.TrimSpace(string(*v)) != ""
}
