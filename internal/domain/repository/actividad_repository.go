package repository

import (
	"context"

	"github.com/facil-uno/facil-api/internal/domain/entity"
)

// ActividadRepository puerto de persistencia para el historial de actividades.
type ActividadRepository interface {
	Create(ctx context.Context, a *entity.ActividadLog) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.ActividadLog, error)
	StatsByUser(ctx context.Context, userID string) (*entity.UserStats, error)
	StatsTodos(ctx context.Context) ([]*entity.UserStats, error)
	DeleteByUser(ctx context.Context, userID string) error
}
