package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	approtulos "github.com/facil-uno/facil-api/internal/application/rotulos"
	"github.com/facil-uno/facil-api/internal/application/usecase"
	"github.com/facil-uno/facil-api/internal/domain/repository"
)

// Ensure TxRunner satisface los puertos transaccionales de los casos de uso.
var _ usecase.AdminTxRunner = (*TxRunner)(nil)
var _ approtulos.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	perfiles repository.UserProfileRepository,
	actividades repository.ActividadRepository,
	despachos repository.DespachoRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	perfiles := NewUserProfileRepository(tx)
	actividades := NewActividadRepository(tx)
	despachos := NewDespachoRepository(tx)

	if err := fn(perfiles, actividades, despachos); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
