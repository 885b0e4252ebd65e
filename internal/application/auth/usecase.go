package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/facil-uno/facil-api/internal/application/dto"
	"github.com/facil-uno/facil-api/internal/domain"
	"github.com/facil-uno/facil-api/internal/domain/entity"
	"github.com/facil-uno/facil-api/internal/domain/nivel"
	"github.com/facil-uno/facil-api/internal/domain/repository"
	apptrial "github.com/facil-uno/facil-api/internal/domain/trial"
	"github.com/facil-uno/facil-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	perfiles repository.UserProfileRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(perfiles repository.UserProfileRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{perfiles: perfiles, jwtCfg: jwtCfg}
}

// Register crea un perfil nuevo. El registro siempre otorga nivel Pro con 7
// días de trial, sin importar el plan elegido; is_paid queda sin marcar para
// que el predicado de pago nunca dependa de la heurística heredada en cuentas
// nuevas. Las colisiones de username se resuelven con sufijo numérico.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.ProfileResponse, error) {
	existing, err := uc.perfiles.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	username, err := uc.usernameLibre(ctx, in.Username)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	vence := apptrial.VencimientoTrial(now)
	p := &entity.UserProfile{
		ID:             uuid.New().String(),
		Email:          in.Email,
		Username:       username,
		PasswordHash:   string(hash),
		Nivel:          entity.NivelPro,
		Plan:           in.Plan,
		TrialExpiresAt: &vence,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uc.perfiles.Create(ctx, p); err != nil {
		return nil, err
	}
	return ToProfileResponse(p, now), nil
}

// Login verifica email/password, genera JWT y retorna token + perfil.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	p, err := uc.perfiles.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, p.ID, p.Username, p.Nivel, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToProfileResponse(p, time.Now()),
	}, nil
}

// usernameLibre devuelve el username deseado, o la primera variante con sufijo
// numérico que no esté tomada.
func (uc *AuthUseCase) usernameLibre(ctx context.Context, deseado string) (string, error) {
	candidato := deseado
	for i := 2; ; i++ {
		tomado, err := uc.perfiles.UsernameExiste(ctx, candidato)
		if err != nil {
			return "", err
		}
		if !tomado {
			return candidato, nil
		}
		candidato = fmt.Sprintf("%s-%d", deseado, i)
	}
}

// ToProfileResponse arma la respuesta de un perfil, incluyendo los estados
// derivados (es pago, vencido) evaluados al instante dado sin persistir nada.
func ToProfileResponse(p *entity.UserProfile, ahora time.Time) *dto.ProfileResponse {
	if p == nil {
		return nil
	}
	copia := *p
	vencimiento := apptrial.AplicarVencimiento(&copia, ahora)
	return &dto.ProfileResponse{
		ID:              p.ID,
		Email:           p.Email,
		Username:        p.Username,
		Nivel:           p.Nivel,
		NivelNombre:     nivel.Nombre(p.Nivel),
		NivelColor:      nivel.Color(p.Nivel),
		Plan:            p.Plan,
		TrialExpiresAt:  p.TrialExpiresAt,
		PaidUntil:       p.PaidUntil,
		IsPaid:          p.IsPaid,
		PaymentStatus:   p.PaymentStatus,
		PagosEmpresa:    p.PagosEmpresa,
		CantidadTiendas: p.CantidadTiendas,
		EsPago:          nivel.EsUsuarioPagoEn(p, ahora),
		Vencido:         vencimiento.Vencido,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}
