package usecase

import (
	"context"

	"github.com/facil-uno/facil-api/internal/application/dto"
	"github.com/facil-uno/facil-api/internal/domain/entity"
	"github.com/facil-uno/facil-api/internal/domain/repository"
)

// HistorialUseCase consulta del historial de actividades y despachos.
type HistorialUseCase struct {
	actividades repository.ActividadRepository
	despachos   repository.DespachoRepository
}

// NewHistorialUseCase construye el caso de uso de historial.
func NewHistorialUseCase(actividades repository.ActividadRepository, despachos repository.DespachoRepository) *HistorialUseCase {
	return &HistorialUseCase{actividades: actividades, despachos: despachos}
}

// Actividades lista el historial paginado de un usuario, más reciente primero.
func (uc *HistorialUseCase) Actividades(ctx context.Context, userID string, page dto.PageRequest) ([]dto.ActividadResponse, error) {
	page.DefaultPage()
	items, err := uc.actividades.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActividadResponse, 0, len(items))
	for _, a := range items {
		out = append(out, dto.ActividadResponse{
			ID:            a.ID,
			ActivityType:  a.ActivityType,
			Cantidad:      a.Cantidad,
			ArchivoNombre: a.ArchivoNombre,
			Metadata:      a.Metadata,
			CreatedAt:     a.CreatedAt,
		})
	}
	return out, nil
}

// Despachos lista los productos despachados de un usuario, paginados.
func (uc *HistorialUseCase) Despachos(ctx context.Context, userID string, page dto.PageRequest) ([]dto.DespachoResponse, error) {
	page.DefaultPage()
	items, err := uc.despachos.ListByUser(ctx, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.DespachoResponse, 0, len(items))
	for _, d := range items {
		out = append(out, dto.DespachoResponse{
			ID:             d.ID,
			SKU:            d.SKU,
			NombreProducto: d.NombreProducto,
			Cantidad:       d.Cantidad,
			NumeroPedido:   d.NumeroPedido,
			FechaDespacho:  d.FechaDespacho,
			ArchivoRotulo:  d.ArchivoRotulo,
		})
	}
	return out, nil
}

// Stats estadísticas de actividad del propio usuario.
func (uc *HistorialUseCase) Stats(ctx context.Context, userID string) (*entity.UserStats, error) {
	return uc.actividades.StatsByUser(ctx, userID)
}

// StatsTodos estadísticas de actividad de todos los usuarios (panel admin).
func (uc *HistorialUseCase) StatsTodos(ctx context.Context) ([]*entity.UserStats, error) {
	return uc.actividades.StatsTodos(ctx)
}
