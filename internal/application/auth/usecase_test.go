package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/facil-uno/facil-api/internal/application/auth"
	"github.com/facil-uno/facil-api/internal/application/dto"
	"github.com/facil-uno/facil-api/internal/domain"
	"github.com/facil-uno/facil-api/internal/domain/entity"
	pkgjwt "github.com/facil-uno/facil-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de repositorio en memoria
// ──────────────────────────────────────────────────────────────────────────────

type perfilesEnMemoria struct {
	porID map[string]*entity.UserProfile
}

func nuevoRepo() *perfilesEnMemoria {
	return &perfilesEnMemoria{porID: make(map[string]*entity.UserProfile)}
}

func (r *perfilesEnMemoria) Create(_ context.Context, p *entity.UserProfile) error {
	copia := *p
	r.porID[p.ID] = &copia
	return nil
}

func (r *perfilesEnMemoria) GetByID(_ context.Context, id string) (*entity.UserProfile, error) {
	if p, ok := r.porID[id]; ok {
		copia := *p
		return &copia, nil
	}
	return nil, nil
}

func (r *perfilesEnMemoria) GetByEmail(_ context.Context, email string) (*entity.UserProfile, error) {
	for _, p := range r.porID {
		if p.Email == email {
			copia := *p
			return &copia, nil
		}
	}
	return nil, nil
}

func (r *perfilesEnMemoria) UsernameExiste(_ context.Context, username string) (bool, error) {
	for _, p := range r.porID {
		if p.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (r *perfilesEnMemoria) ListAll(_ context.Context) ([]*entity.UserProfile, error) {
	out := make([]*entity.UserProfile, 0, len(r.porID))
	for _, p := range r.porID {
		copia := *p
		out = append(out, &copia)
	}
	return out, nil
}

func (r *perfilesEnMemoria) Update(_ context.Context, p *entity.UserProfile) error {
	if _, ok := r.porID[p.ID]; !ok {
		return domain.ErrUserNotFound
	}
	copia := *p
	r.porID[p.ID] = &copia
	return nil
}

func (r *perfilesEnMemoria) Delete(_ context.Context, id string) error {
	if _, ok := r.porID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.porID, id)
	return nil
}

var jwtCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "facil-uno-test"}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

func TestRegister_OtorgaNivelProConTrial(t *testing.T) {
	repo := nuevoRepo()
	uc := auth.NewAuthUseCase(repo, jwtCfg)

	out, err := uc.Register(context.Background(), dto.RegisterRequest{
		Email:    "ana@example.com",
		Password: "super-secreta",
		Username: "ana",
		Plan:     "Starter",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.NivelPro, out.Nivel,
		"el registro siempre otorga nivel Pro, sin importar el plan elegido")
	require.NotNil(t, out.TrialExpiresAt)
	dias := time.Until(*out.TrialExpiresAt).Hours() / 24
	assert.InDelta(t, float64(entity.DiasTrial), dias, 0.01, "el trial dura 7 días desde el registro")
	assert.Nil(t, out.IsPaid, "is_paid queda sin marcar en cuentas nuevas")

	// El hash nunca viaja en la respuesta y el guardado es bcrypt
	guardado, _ := repo.GetByEmail(context.Background(), "ana@example.com")
	require.NotNil(t, guardado)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(guardado.PasswordHash), []byte("super-secreta")))
}

func TestRegister_EmailDuplicado(t *testing.T) {
	repo := nuevoRepo()
	uc := auth.NewAuthUseCase(repo, jwtCfg)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "12345678", Username: "ana"})
	require.NoError(t, err)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "12345678", Username: "otra"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_UsernameColisionadoRecibeSufijo(t *testing.T) {
	repo := nuevoRepo()
	uc := auth.NewAuthUseCase(repo, jwtCfg)
	ctx := context.Background()

	primero, err := uc.Register(ctx, dto.RegisterRequest{Email: "a@example.com", Password: "12345678", Username: "maria"})
	require.NoError(t, err)
	assert.Equal(t, "maria", primero.Username)

	segundo, err := uc.Register(ctx, dto.RegisterRequest{Email: "b@example.com", Password: "12345678", Username: "maria"})
	require.NoError(t, err)
	assert.Equal(t, "maria-2", segundo.Username, "la colisión se resuelve con sufijo numérico")

	tercero, err := uc.Register(ctx, dto.RegisterRequest{Email: "c@example.com", Password: "12345678", Username: "maria"})
	require.NoError(t, err)
	assert.Equal(t, "maria-3", tercero.Username)
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

func TestLogin_CredencialesValidas(t *testing.T) {
	repo := nuevoRepo()
	uc := auth.NewAuthUseCase(repo, jwtCfg)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "12345678", Username: "ana"})
	require.NoError(t, err)

	out, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "12345678"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	claims, err := pkgjwt.Parse(jwtCfg.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "ana", claims.Username)
	assert.Equal(t, entity.NivelPro, claims.Nivel)
}

func TestLogin_PasswordIncorrecta(t *testing.T) {
	repo := nuevoRepo()
	uc := auth.NewAuthUseCase(repo, jwtCfg)
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "ana@example.com", Password: "12345678", Username: "ana"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "ana@example.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UsuarioInexistente(t *testing.T) {
	uc := auth.NewAuthUseCase(nuevoRepo(), jwtCfg)
	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "nadie@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
