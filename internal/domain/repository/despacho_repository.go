package repository

import (
	"context"

	"github.com/facil-uno/facil-api/internal/domain/entity"
)

// DespachoRepository puerto de persistencia para productos despachados.
type DespachoRepository interface {
	CreateBatch(ctx context.Context, despachos []*entity.Despacho) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Despacho, error)
	DeleteByUser(ctx context.Context, userID string) error
}
