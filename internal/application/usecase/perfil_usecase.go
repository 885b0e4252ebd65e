package usecase

import (
	"context"
	"time"

	"github.com/facil-uno/facil-api/internal/application/auth"
	"github.com/facil-uno/facil-api/internal/application/dto"
	"github.com/facil-uno/facil-api/internal/domain"
	"github.com/facil-uno/facil-api/internal/domain/entity"
	"github.com/facil-uno/facil-api/internal/domain/nivel"
	"github.com/facil-uno/facil-api/internal/domain/repository"
	"github.com/facil-uno/facil-api/internal/domain/trial"
)

// PerfilUseCase consultas del usuario autenticado: su perfil, su trial y el
// catálogo de secciones con el acceso evaluado. Nunca persiste el estado de
// vencimiento: la degradación real la ejecuta solo el barrido del admin.
type PerfilUseCase struct {
	perfiles repository.UserProfileRepository
}

// NewPerfilUseCase construye el caso de uso de perfil.
func NewPerfilUseCase(perfiles repository.UserProfileRepository) *PerfilUseCase {
	return &PerfilUseCase{perfiles: perfiles}
}

// Me devuelve el perfil del usuario con trial y secciones en una sola llamada.
func (uc *PerfilUseCase) Me(ctx context.Context, userID string) (*dto.MeResponse, error) {
	p, err := uc.perfiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUserNotFound
	}
	ahora := time.Now()
	return &dto.MeResponse{
		User:      *auth.ToProfileResponse(p, ahora),
		Trial:     trialResponse(p, ahora),
		Secciones: seccionesResponse(p),
	}, nil
}

// TrialInfo devuelve solo el estado del trial.
func (uc *PerfilUseCase) TrialInfo(ctx context.Context, userID string) (*dto.TrialInfoResponse, error) {
	p, err := uc.perfiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUserNotFound
	}
	r := trialResponse(p, time.Now())
	return &r, nil
}

// Secciones devuelve el catálogo con el acceso del usuario por sección.
func (uc *PerfilUseCase) Secciones(ctx context.Context, userID string) ([]dto.SeccionResponse, error) {
	p, err := uc.perfiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUserNotFound
	}
	return seccionesResponse(p), nil
}

func trialResponse(p *entity.UserProfile, ahora time.Time) dto.TrialInfoResponse {
	info := trial.InfoDe(p, ahora)
	return dto.TrialInfoResponse{
		Activo:        info.Activo,
		DiasRestantes: info.DiasRestantes,
		Vencido:       info.Vencido,
		ExpiresAt:     info.ExpiresAt,
	}
}

func seccionesResponse(p *entity.UserProfile) []dto.SeccionResponse {
	out := make([]dto.SeccionResponse, 0, len(nivel.Secciones))
	for _, s := range nivel.Secciones {
		acceso := nivel.TieneAccesoPerfil(p, s)
		if s.Clave == "admin" {
			// La pantalla de admin se gatea por igualdad con el centinela
			// Dios, nunca por orden numérico.
			acceso = nivel.EsAdmin(p.Nivel)
		}
		out = append(out, dto.SeccionResponse{
			Clave:          s.Clave,
			Nombre:         s.Nombre,
			Descripcion:    s.Descripcion,
			NivelRequerido: s.NivelRequerido,
			TieneAcceso:    acceso,
		})
	}
	return out
}
