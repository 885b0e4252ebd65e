package postgres

import (
	"context"
	"fmt"

	"github.com/facil-uno/facil-api/internal/domain/entity"
	"github.com/facil-uno/facil-api/internal/domain/repository"
)

var _ repository.ActividadRepository = (*ActividadRepo)(nil)

// ActividadRepo implementación de ActividadRepository sobre PostgreSQL (usable con pool o tx).
type ActividadRepo struct {
	q Querier
}

// NewActividadRepository construye el adaptador de historial. Pasar pool o tx (Querier).
func NewActividadRepository(q Querier) *ActividadRepo {
	return &ActividadRepo{q: q}
}

// Create persiste una actividad. El metadata se guarda como JSONB.
func (r *ActividadRepo) Create(ctx context.Context, a *entity.ActividadLog) error {
	query := `
		INSERT INTO actividad_logs (user_id, username, activity_type, cantidad, archivo_nombre, metadata, bloqueado, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		a.UserID, a.Username, a.ActivityType, a.Cantidad, a.ArchivoNombre, a.Metadata, a.Bloqueado, a.CreatedAt,
	).Scan(&a.ID)
	if err != nil {
		return fmt.Errorf("insert actividad: %w", err)
	}
	return nil
}

// ListByUser lista las actividades de un usuario, más recientes primero.
func (r *ActividadRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*entity.ActividadLog, error) {
	query := `
		SELECT id, user_id, username, activity_type, cantidad, archivo_nombre, metadata, bloqueado, created_at
		FROM actividad_logs
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list actividades: %w", err)
	}
	defer rows.Close()

	var out []*entity.ActividadLog
	for rows.Next() {
		var a entity.ActividadLog
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.Username, &a.ActivityType, &a.Cantidad,
			&a.ArchivoNombre, &a.Metadata, &a.Bloqueado, &a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan actividad: %w", err)
		}
		out = append(out, &a)
	}
	return out, rows.Err()
}

const statsQuery = `
	SELECT user_id,
		max(username) AS username,
		coalesce(sum(cantidad) FILTER (WHERE activity_type = 'archivo_procesado'), 0),
		coalesce(sum(cantidad) FILTER (WHERE activity_type = 'pedido_procesado'), 0),
		coalesce(sum(cantidad) FILTER (WHERE activity_type = 'sku_rotulo_agregado'), 0),
		max(created_at)
	FROM actividad_logs`

// StatsByUser agrega los totales de actividad de un usuario. Sin actividades
// devuelve un registro con todo en cero.
func (r *ActividadRepo) StatsByUser(ctx context.Context, userID string) (*entity.UserStats, error) {
	query := statsQuery + ` WHERE user_id = $1 GROUP BY user_id`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("stats actividad: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("stats actividad: %w", err)
		}
		return &entity.UserStats{UserID: userID}, nil
	}
	s, err := scanStats(rows)
	if err != nil {
		return nil, fmt.Errorf("scan stats: %w", err)
	}
	return s, nil
}

// StatsTodos agrega los totales de actividad de todos los usuarios (panel admin).
func (r *ActividadRepo) StatsTodos(ctx context.Context) ([]*entity.UserStats, error) {
	query := statsQuery + ` GROUP BY user_id ORDER BY max(created_at) DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("stats actividad: %w", err)
	}
	defer rows.Close()

	var out []*entity.UserStats
	for rows.Next() {
		s, err := scanStats(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// DeleteByUser borra el historial completo de un usuario (cascade del admin).
func (r *ActividadRepo) DeleteByUser(ctx context.Context, userID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM actividad_logs WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete actividades: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanStats(row scanner) (*entity.UserStats, error) {
	var s entity.UserStats
	err := row.Scan(
		&s.UserID, &s.Username,
		&s.TotalArchivosProcesados, &s.TotalPedidosProcesados, &s.TotalSKURotulos,
		&s.UltimaActividad,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
