package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/facil-uno/facil-api/internal/application/auth"
	"github.com/facil-uno/facil-api/internal/application/dto"
	"github.com/facil-uno/facil-api/internal/domain"
	"github.com/facil-uno/facil-api/internal/domain/entity"
	"github.com/facil-uno/facil-api/internal/domain/repository"
	"github.com/facil-uno/facil-api/internal/domain/trial"
	"github.com/facil-uno/facil-api/pkg/logger"
)

// AdminTxRunner ejecuta un callback con repositorios atados a una transacción.
// Las mutaciones admin que tocan varios campos o varias tablas deben ser
// atómicas: o se aplica todo o no se aplica nada.
type AdminTxRunner interface {
	Run(ctx context.Context, fn func(
		perfiles repository.UserProfileRepository,
		actividades repository.ActividadRepository,
		despachos repository.DespachoRepository,
	) error) error
}

// AdminUseCase operaciones del panel de administración (solo nivel Dios; el
// gate lo aplica el middleware HTTP, acá se asume autorizado).
type AdminUseCase struct {
	perfiles repository.UserProfileRepository
	tx       AdminTxRunner
	log      *logger.Logger
}

// NewAdminUseCase construye el caso de uso de administración.
func NewAdminUseCase(perfiles repository.UserProfileRepository, tx AdminTxRunner, log *logger.Logger) *AdminUseCase {
	return &AdminUseCase{perfiles: perfiles, tx: tx, log: log}
}

// List devuelve todos los perfiles, opcionalmente filtrados por substring de
// username o email, sin distinguir mayúsculas ni acentos.
func (uc *AdminUseCase) List(ctx context.Context, filtro string) ([]dto.ProfileResponse, error) {
	perfiles, err := uc.perfiles.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	ahora := time.Now()
	q := normalizar(filtro)
	out := make([]dto.ProfileResponse, 0, len(perfiles))
	for _, p := range perfiles {
		if q != "" && !strings.Contains(normalizar(p.Username), q) && !strings.Contains(normalizar(p.Email), q) {
			continue
		}
		out = append(out, *auth.ToProfileResponse(p, ahora))
	}
	return out, nil
}

// Stats agrega los contadores del panel: totales, por nivel, recientes (30
// días), pagos, vencidos, activos y en trial.
func (uc *AdminUseCase) Stats(ctx context.Context) (*dto.UserStatsResponse, error) {
	perfiles, err := uc.perfiles.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	ahora := time.Now()
	hace30 := ahora.AddDate(0, 0, -30)
	stats := &dto.UserStatsResponse{
		TotalUsers:   len(perfiles),
		UsersByLevel: make(map[int]int),
	}
	for _, p := range perfiles {
		stats.UsersByLevel[p.Nivel]++
		if p.CreatedAt.After(hace30) {
			stats.RecentUsers++
		}
		if p.IsPaid != nil && *p.IsPaid {
			stats.PaidUsers++
		}
		if estaVencido(p, ahora) {
			stats.ExpiredUsers++
		}
		if enTrial(p, ahora) {
			stats.TrialUsers++
		}
	}
	stats.ActiveUsers = stats.TotalUsers - stats.ExpiredUsers
	return stats, nil
}

func estaVencido(p *entity.UserProfile, ahora time.Time) bool {
	if p.PaidUntil != nil {
		return ahora.After(*p.PaidUntil)
	}
	pago := p.IsPaid != nil && *p.IsPaid
	if p.TrialExpiresAt != nil && !pago {
		return ahora.After(*p.TrialExpiresAt) && p.Nivel > 0
	}
	return false
}

func enTrial(p *entity.UserProfile, ahora time.Time) bool {
	if p.IsPaid != nil && *p.IsPaid {
		return false
	}
	return p.TrialExpiresAt != nil && !p.TrialExpiresAt.Before(ahora)
}

// Create crea un usuario con el nivel elegido por el admin. Devuelve
// ErrEmailAlreadyExists o ErrNivelInvalido según corresponda.
func (uc *AdminUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.ProfileResponse, error) {
	if !entity.NivelValido(in.Nivel) {
		return nil, domain.ErrNivelInvalido
	}
	existing, err := uc.perfiles.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.UserProfile{
		ID:           uuid.New().String(),
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: string(hash),
		Nivel:        in.Nivel,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if in.ConTrial {
		vence := trial.VencimientoTrial(now)
		p.TrialExpiresAt = &vence
	}
	if err := uc.perfiles.Create(ctx, p); err != nil {
		return nil, err
	}
	return auth.ToProfileResponse(p, now), nil
}

// Update aplica una actualización parcial dentro de una transacción: se lee el
// perfil, se aplican solo los campos presentes y se persiste completo. La
// invariante del Plan Empresa (sin pagos_empresa no hay cantidad_tiendas) se
// aplica siempre, cualquiera sea el valor previo.
func (uc *AdminUseCase) Update(ctx context.Context, userID string, in dto.UpdateUserRequest) (*dto.ProfileResponse, error) {
	var actualizado *entity.UserProfile
	err := uc.tx.Run(ctx, func(
		perfiles repository.UserProfileRepository,
		_ repository.ActividadRepository,
		_ repository.DespachoRepository,
	) error {
		p, err := perfiles.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrUserNotFound
		}
		if err := aplicarCambios(p, in); err != nil {
			return err
		}
		p.NormalizarEmpresa()
		p.UpdatedAt = time.Now()
		if err := perfiles.Update(ctx, p); err != nil {
			return err
		}
		actualizado = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return auth.ToProfileResponse(actualizado, time.Now()), nil
}

func aplicarCambios(p *entity.UserProfile, in dto.UpdateUserRequest) error {
	if in.Username != nil {
		p.Username = *in.Username
	}
	if in.Nivel != nil {
		if !entity.NivelValido(*in.Nivel) {
			return domain.ErrNivelInvalido
		}
		p.Nivel = *in.Nivel
	}
	if in.IsPaid != nil {
		v := *in.IsPaid
		p.IsPaid = &v
	}
	if in.PaidUntil != nil {
		t, err := parseFechaOpcional(*in.PaidUntil)
		if err != nil {
			return err
		}
		p.PaidUntil = t
	}
	if in.TrialExpiresAt != nil {
		t, err := parseFechaOpcional(*in.TrialExpiresAt)
		if err != nil {
			return err
		}
		p.TrialExpiresAt = t
	}
	if in.PaymentStatus != nil {
		switch *in.PaymentStatus {
		case "", entity.PagoPendiente, entity.PagoAprobado, entity.PagoRechazado:
			p.PaymentStatus = *in.PaymentStatus
		default:
			return domain.ErrInvalidInput
		}
	}
	if in.PagosEmpresa != nil {
		p.PagosEmpresa = *in.PagosEmpresa
	}
	if in.CantidadTiendas != nil {
		if *in.CantidadTiendas <= 0 {
			return domain.ErrInvalidInput
		}
		v := *in.CantidadTiendas
		p.CantidadTiendas = &v
	}
	return nil
}

func parseFechaOpcional(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("%w: fecha inválida %q", domain.ErrInvalidInput, s)
	}
	return &t, nil
}

// Delete elimina el perfil y, en la misma transacción, su historial de
// actividades y despachos.
func (uc *AdminUseCase) Delete(ctx context.Context, userID string) error {
	return uc.tx.Run(ctx, func(
		perfiles repository.UserProfileRepository,
		actividades repository.ActividadRepository,
		despachos repository.DespachoRepository,
	) error {
		p, err := perfiles.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrUserNotFound
		}
		if err := actividades.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		if err := despachos.DeleteByUser(ctx, userID); err != nil {
			return err
		}
		return perfiles.Delete(ctx, userID)
	})
}

// ExtenderTrial corre el vencimiento del trial la cantidad de días indicada.
func (uc *AdminUseCase) ExtenderTrial(ctx context.Context, userID string, dias int) (*dto.ProfileResponse, error) {
	if dias <= 0 {
		return nil, domain.ErrInvalidInput
	}
	p, err := uc.perfiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUserNotFound
	}
	ahora := time.Now()
	trial.Extender(p, dias, ahora)
	p.UpdatedAt = ahora
	if err := uc.perfiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return auth.ToProfileResponse(p, ahora), nil
}

// ExpirarVencidos recorre todos los perfiles y degrada a 0 los que tienen el
// trial vencido sin pago. Secuencial y sin rollback: un fallo en un usuario se
// registra y no detiene el barrido ni deshace los anteriores. Idempotente por
// construcción (un perfil ya degradado no vuelve a cambiar).
func (uc *AdminUseCase) ExpirarVencidos(ctx context.Context) (*dto.ExpirarResponse, error) {
	perfiles, err := uc.perfiles.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	ahora := time.Now()
	out := &dto.ExpirarResponse{}
	for _, p := range perfiles {
		r := trial.AplicarVencimiento(p, ahora)
		if !r.Demovido {
			continue
		}
		p.UpdatedAt = ahora
		if err := uc.perfiles.Update(ctx, p); err != nil {
			out.Fallidos++
			uc.log.Warn().Err(err).Str("user_id", p.ID).Msg("no se pudo degradar el perfil vencido")
			continue
		}
		out.Expirados++
	}
	return out, nil
}

// normalizar baja a minúsculas y remueve diacríticos para la búsqueda del
// panel ("María" matchea "maria").
func normalizar(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	plano, _, err := transform.String(t, s)
	if err != nil {
		plano = s
	}
	return strings.ToLower(strings.TrimSpace(plano))
}
