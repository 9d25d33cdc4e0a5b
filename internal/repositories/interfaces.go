package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/prudhvinik1/boxfleet/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// BoxRepository persists boxes together with their sensors. Every mutating method
// runs in a single transaction.
type BoxRepository interface {
	Create(ctx context.Context, box *models.NewBox) (string, error)
	Update(ctx context.Context, id string, patch models.BoxPatch, changes []models.SensorChange) (*models.Box, error)
	Delete(ctx context.Context, id string) (string, error)
	GetByID(ctx context.Context, id string) (*models.Box, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Box, error)
}

type BoxCache interface {
	Get(ctx context.Context, id string) (*models.Box, error)
	Set(ctx context.Context, box *models.Box) error
	Invalidate(ctx context.Context, id string) error
}
