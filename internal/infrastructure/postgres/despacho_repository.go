package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/facil-uno/facil-api/internal/domain/entity"
	"github.com/facil-uno/facil-api/internal/domain/repository"
)

var _ repository.DespachoRepository = (*DespachoRepo)(nil)

// DespachoRepo implementación de DespachoRepository sobre PostgreSQL (usable con pool o tx).
type DespachoRepo struct {
	q Querier
}

// NewDespachoRepository construye el adaptador de despachos. Pasar pool o tx (Querier).
func NewDespachoRepository(q Querier) *DespachoRepo {
	return &DespachoRepo{q: q}
}

// CreateBatch inserta todos los despachos de un rótulo en un solo batch.
func (r *DespachoRepo) CreateBatch(ctx context.Context, despachos []*entity.Despacho) error {
	if len(despachos) == 0 {
		return nil
	}
	query := `
		INSERT INTO despachos (user_id, username, sku, nombre_producto, cantidad, numero_pedido, fecha_despacho, archivo_rotulo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`
	batch := &pgx.Batch{}
	for _, d := range despachos {
		batch.Queue(query,
			d.UserID, d.Username, d.SKU, d.NombreProducto, d.Cantidad,
			d.NumeroPedido, d.FechaDespacho, d.ArchivoRotulo,
		)
	}
	results := r.q.SendBatch(ctx, batch)
	defer results.Close()
	for range despachos {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("insert despacho: %w", err)
		}
	}
	return nil
}

// ListByUser lista los despachos de un usuario, más recientes primero.
func (r *DespachoRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.Despacho, error) {
	query := `
		SELECT id, user_id, username, sku, nombre_producto, cantidad, numero_pedido, fecha_despacho, archivo_rotulo, created_at
		FROM despachos
		WHERE user_id = $1
		ORDER BY fecha_despacho DESC, id DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list despachos: %w", err)
	}
	defer rows.Close()

	var out []*entity.Despacho
	for rows.Next() {
		var d entity.Despacho
		if err := rows.Scan(
			&d.ID, &d.UserID, &d.Username, &d.SKU, &d.NombreProducto, &d.Cantidad,
			&d.NumeroPedido, &d.FechaDespacho, &d.ArchivoRotulo, &d.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan despacho: %w", err)
		}
		out = append(out, &d)
	}
	return out, rows.Err()
}

// DeleteByUser borra los despachos de un usuario (cascade del admin).
func (r *DespachoRepo) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM despachos WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete despachos: %w", err)
	}
	return nil
}
