package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/facil-uno/facil-api/internal/domain"
	"github.com/facil-uno/facil-api/internal/domain/entity"
	"github.com/facil-uno/facil-api/internal/domain/repository"
)

var _ repository.UserProfileRepository = (*UserProfileRepo)(nil)

const userProfileColumns = `id, email, username, password_hash, nivel, plan, trial_expires_at,
	paid_until, is_paid, payment_status, pagos_empresa, cantidad_tiendas, created_at, updated_at`

// UserProfileRepo implementación del puerto UserProfileRepository sobre PostgreSQL (usable con pool o tx).
type UserProfileRepo struct {
	q Querier
}

// NewUserProfileRepository construye el adaptador de perfiles. Pasar pool o tx (Querier).
func NewUserProfileRepository(q Querier) *UserProfileRepo {
	return &UserProfileRepo{q: q}
}

// Create persiste un perfil nuevo.
func (r *UserProfileRepo) Create(ctx context.Context, p *entity.UserProfile) error {
	query := `
		INSERT INTO user_profiles (id, email, username, password_hash, nivel, plan, trial_expires_at,
			paid_until, is_paid, payment_status, pagos_empresa, cantidad_tiendas, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.Email, p.Username, p.PasswordHash, p.Nivel, p.Plan, p.TrialExpiresAt,
		p.PaidUntil, p.IsPaid, p.PaymentStatus, p.PagosEmpresa, p.CantidadTiendas,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user_profile: %w", err)
	}
	return nil
}

// GetByID obtiene un perfil por ID. Devuelve (nil, nil) si no existe.
func (r *UserProfileRepo) GetByID(ctx context.Context, id string) (*entity.UserProfile, error) {
	query := `SELECT ` + userProfileColumns + ` FROM user_profiles WHERE id = $1`
	return r.scanOne(r.q.QueryRow(ctx, query, id), "get user_profile by id")
}

// GetByEmail obtiene un perfil por email. Devuelve (nil, nil) si no existe.
func (r *UserProfileRepo) GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error) {
	query := `SELECT ` + userProfileColumns + ` FROM user_profiles WHERE lower(email) = lower($1) LIMIT 1`
	return r.scanOne(r.q.QueryRow(ctx, query, email), "get user_profile by email")
}

// UsernameExiste informa si el username ya está tomado.
func (r *UserProfileRepo) UsernameExiste(ctx context.Context, username string) (bool, error) {
	var existe bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_profiles WHERE lower(username) = lower($1))`, username,
	).Scan(&existe)
	if err != nil {
		return false, fmt.Errorf("check username: %w", err)
	}
	return existe, nil
}

// ListAll devuelve todos los perfiles, más recientes primero.
func (r *UserProfileRepo) ListAll(ctx context.Context) ([]*entity.UserProfile, error) {
	query := `SELECT ` + userProfileColumns + ` FROM user_profiles ORDER BY created_at DESC`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list user_profiles: %w", err)
	}
	defer rows.Close()

	var perfiles []*entity.UserProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user_profile: %w", err)
		}
		perfiles = append(perfiles, p)
	}
	return perfiles, rows.Err()
}

// Update persiste el perfil completo (los casos de uso hacen read-modify-write).
func (r *UserProfileRepo) Update(ctx context.Context, p *entity.UserProfile) error {
	query := `
		UPDATE user_profiles
		SET email = $2, username = $3, password_hash = $4, nivel = $5, plan = $6,
			trial_expires_at = $7, paid_until = $8, is_paid = $9, payment_status = $10,
			pagos_empresa = $11, cantidad_tiendas = $12, updated_at = $13
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		p.ID, p.Email, p.Username, p.PasswordHash, p.Nivel, p.Plan,
		p.TrialExpiresAt, p.PaidUntil, p.IsPaid, p.PaymentStatus,
		p.PagosEmpresa, p.CantidadTiendas, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update user_profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete elimina un perfil por ID.
func (r *UserProfileRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM user_profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user_profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserProfileRepo) scanOne(row pgx.Row, op string) (*entity.UserProfile, error) {
	p, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func scanProfile(row pgx.Row) (*entity.UserProfile, error) {
	var p entity.UserProfile
	err := row.Scan(
		&p.ID, &p.Email, &p.Username, &p.PasswordHash, &p.Nivel, &p.Plan, &p.TrialExpiresAt,
		&p.PaidUntil, &p.IsPaid, &p.PaymentStatus, &p.PagosEmpresa, &p.CantidadTiendas,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
