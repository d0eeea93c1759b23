package repository

import (
	"context"

	"github.com/spystrach/interimBot/internal/domain"
)

// MissionRepo is durable CRUD over recorded missions, keyed by date.
type MissionRepo interface {
	Create(ctx context.Context, m *domain.Mission) error
	Get(ctx context.Context, key string) (*domain.Mission, error)
	GetAll(ctx context.Context) ([]*domain.Mission, error)
	Exists(ctx context.Context, key string, prefix, suffix bool) (bool, error)
	Update(ctx context.Context, m *domain.Mission) error
	Delete(ctx context.Context, key string) error
}
