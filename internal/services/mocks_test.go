package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/prudhvinik1/boxfleet/internal/models"
)

type mockBoxRepo struct{ mock.Mock }

func (m *mockBoxRepo) Create(ctx context.Context, box *models.NewBox) (string, error) {
	args := m.Called(ctx, box)
	return args.String(0), args.Error(1)
}

func (m *mockBoxRepo) Update(ctx context.Context, id string, patch models.BoxPatch, changes []models.SensorChange) (*models.Box, error) {
	args := m.Called(ctx, id, patch, changes)
	box, _ := args.Get(0).(*models.Box)
	return box, args.Error(1)
}

func (m *mockBoxRepo) Delete(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

func (m *mockBoxRepo) GetByID(ctx context.Context, id string) (*models.Box, error) {
	args := m.Called(ctx, id)
	box, _ := args.Get(0).(*models.Box)
	return box, args.Error(1)
}

func (m *mockBoxRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*models.Box, error) {
	args := m.Called(ctx, ownerID)
	boxes, _ := args.Get(0).([]*models.Box)
	return boxes, args.Error(1)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context, id string) (*models.Box, error) {
	args := m.Called(ctx, id)
	box, _ := args.Get(0).(*models.Box)
	return box, args.Error(1)
}

func (m *mockCache) Set(ctx context.Context, box *models.Box) error {
	return m.Called(ctx, box).Error(0)
}

func (m *mockCache) Invalidate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, user *models.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}
