package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facil-uno/facil-api/internal/application/dto"
	"github.com/facil-uno/facil-api/internal/application/usecase"
	"github.com/facil-uno/facil-api/internal/domain"
	"github.com/facil-uno/facil-api/internal/domain/entity"
	"github.com/facil-uno/facil-api/internal/domain/repository"
	"github.com/facil-uno/facil-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type perfilesFake struct {
	porID map[string]*entity.UserProfile
	// fallarUpdate hace fallar Update para esos IDs, para probar el conteo de
	// fallidos del barrido.
	fallarUpdate map[string]bool
}

func nuevosPerfiles(ps ...*entity.UserProfile) *perfilesFake {
	f := &perfilesFake{porID: make(map[string]*entity.UserProfile), fallarUpdate: make(map[string]bool)}
	for _, p := range ps {
		copia := *p
		f.porID[p.ID] = &copia
	}
	return f
}

func (f *perfilesFake) Create(_ context.Context, p *entity.UserProfile) error {
	copia := *p
	f.porID[p.ID] = &copia
	return nil
}

func (f *perfilesFake) GetByID(_ context.Context, id string) (*entity.UserProfile, error) {
	if p, ok := f.porID[id]; ok {
		copia := *p
		return &copia, nil
	}
	return nil, nil
}

func (f *perfilesFake) GetByEmail(_ context.Context, email string) (*entity.UserProfile, error) {
	for _, p := range f.porID {
		if p.Email == email {
			copia := *p
			return &copia, nil
		}
	}
	return nil, nil
}

func (f *perfilesFake) UsernameExiste(_ context.Context, username string) (bool, error) {
	for _, p := range f.porID {
		if p.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (f *perfilesFake) ListAll(_ context.Context) ([]*entity.UserProfile, error) {
	out := make([]*entity.UserProfile, 0, len(f.porID))
	for _, p := range f.porID {
		copia := *p
		out = append(out, &copia)
	}
	return out, nil
}

func (f *perfilesFake) Update(_ context.Context, p *entity.UserProfile) error {
	if f.fallarUpdate[p.ID] {
		return errors.New("conexión perdida")
	}
	if _, ok := f.porID[p.ID]; !ok {
		return domain.ErrUserNotFound
	}
	copia := *p
	f.porID[p.ID] = &copia
	return nil
}

func (f *perfilesFake) Delete(_ context.Context, id string) error {
	if _, ok := f.porID[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(f.porID, id)
	return nil
}

type actividadesFake struct{ borrados []string }

func (f *actividadesFake) Create(context.Context, *entity.ActividadLog) error { return nil }
func (f *actividadesFake) ListByUser(context.Context, string, int, int) ([]*entity.ActividadLog, error) {
	return nil, nil
}
func (f *actividadesFake) StatsByUser(context.Context, string) (*entity.UserStats, error) {
	return nil, nil
}
func (f *actividadesFake) StatsTodos(context.Context) ([]*entity.UserStats, error) { return nil, nil }
func (f *actividadesFake) DeleteByUser(_ context.Context, userID string) error {
	f.borrados = append(f.borrados, userID)
	return nil
}

type despachosFake struct{ borrados []string }

func (f *despachosFake) CreateBatch(context.Context, []*entity.Despacho) error { return nil }
func (f *despachosFake) ListByUser(context.Context, string, int, int) ([]*entity.Despacho, error) {
	return nil, nil
}
func (f *despachosFake) DeleteByUser(_ context.Context, userID string) error {
	f.borrados = append(f.borrados, userID)
	return nil
}

// txFake ejecuta el callback directo contra los mismos fakes, sin transacción
// real.
type txFake struct {
	perfiles    *perfilesFake
	actividades *actividadesFake
	despachos   *despachosFake
}

func (f *txFake) Run(_ context.Context, fn func(
	perfiles repository.UserProfileRepository,
	actividades repository.ActividadRepository,
	despachos repository.DespachoRepository,
) error) error {
	return fn(f.perfiles, f.actividades, f.despachos)
}

func nuevoAdmin(perfiles *perfilesFake) (*usecase.AdminUseCase, *actividadesFake, *despachosFake) {
	acts := &actividadesFake{}
	desp := &despachosFake{}
	tx := &txFake{perfiles: perfiles, actividades: acts, despachos: desp}
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	return usecase.NewAdminUseCase(perfiles, tx, log), acts, desp
}

func perfilBase(id, username string, nivel int) *entity.UserProfile {
	now := time.Now()
	return &entity.UserProfile{
		ID:        id,
		Email:     username + "@example.com",
		Username:  username,
		Nivel:     nivel,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func ptr[T any](v T) *T { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// List: filtro sin mayúsculas ni acentos
// ──────────────────────────────────────────────────────────────────────────────

func TestList_FiltroIgnoraAcentosYMayusculas(t *testing.T) {
	repo := nuevosPerfiles(
		perfilBase("u1", "María", 3),
		perfilBase("u2", "pedro", 1),
	)
	uc, _, _ := nuevoAdmin(repo)
	ctx := context.Background()

	// Caso 1: "maria" sin tilde encuentra a "María"
	out, err := uc.List(ctx, "maria")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "María", out[0].Username)

	// Caso 2: filtro vacío devuelve todos
	out, err = uc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, out, 2)

	// Caso 3: el filtro también matchea por email
	out, err = uc.List(ctx, "PEDRO@EXAMPLE")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "pedro", out[0].Username)
}

// ──────────────────────────────────────────────────────────────────────────────
// Create / Update
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NivelInvalido(t *testing.T) {
	uc, _, _ := nuevoAdmin(nuevosPerfiles())
	_, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Email: "x@example.com", Password: "12345678", Username: "x", Nivel: 7,
	})
	assert.ErrorIs(t, err, domain.ErrNivelInvalido)
}

func TestCreate_ConTrialArrancaConVencimiento(t *testing.T) {
	repo := nuevosPerfiles()
	uc, _, _ := nuevoAdmin(repo)
	out, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Email: "x@example.com", Password: "12345678", Username: "x", Nivel: 2, ConTrial: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Nivel, "el admin elige el nivel, no se fuerza Pro")
	require.NotNil(t, out.TrialExpiresAt)
}

func TestUpdate_NivelInvalidoNoPersistido(t *testing.T) {
	repo := nuevosPerfiles(perfilBase("u1", "ana", 1))
	uc, _, _ := nuevoAdmin(repo)

	_, err := uc.Update(context.Background(), "u1", dto.UpdateUserRequest{Nivel: ptr(42)})
	assert.ErrorIs(t, err, domain.ErrNivelInvalido)

	guardado, _ := repo.GetByID(context.Background(), "u1")
	assert.Equal(t, 1, guardado.Nivel, "un nivel inválido no debe tocar el perfil")
}

func TestUpdate_FechaVaciaLimpiaElCampo(t *testing.T) {
	p := perfilBase("u1", "ana", 3)
	vence := time.Now().Add(48 * time.Hour)
	p.TrialExpiresAt = &vence
	repo := nuevosPerfiles(p)
	uc, _, _ := nuevoAdmin(repo)

	out, err := uc.Update(context.Background(), "u1", dto.UpdateUserRequest{TrialExpiresAt: ptr("")})
	require.NoError(t, err)
	assert.Nil(t, out.TrialExpiresAt, "string vacío borra la fecha")
}

func TestUpdate_FechaMalFormada(t *testing.T) {
	repo := nuevosPerfiles(perfilBase("u1", "ana", 3))
	uc, _, _ := nuevoAdmin(repo)
	_, err := uc.Update(context.Background(), "u1", dto.UpdateUserRequest{PaidUntil: ptr("31/12/2026")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_QuitarEmpresaLimpiaTiendas(t *testing.T) {
	p := perfilBase("u1", "ana", 3)
	p.PagosEmpresa = true
	p.CantidadTiendas = ptr(5)
	repo := nuevosPerfiles(p)
	uc, _, _ := nuevoAdmin(repo)

	out, err := uc.Update(context.Background(), "u1", dto.UpdateUserRequest{PagosEmpresa: ptr(false)})
	require.NoError(t, err)
	assert.Nil(t, out.CantidadTiendas, "sin pagos_empresa no puede quedar cantidad_tiendas")
}

func TestUpdate_PaymentStatusFueraDelCatalogo(t *testing.T) {
	repo := nuevosPerfiles(perfilBase("u1", "ana", 3))
	uc, _, _ := nuevoAdmin(repo)
	_, err := uc.Update(context.Background(), "u1", dto.UpdateUserRequest{PaymentStatus: ptr("maybe")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_UsuarioInexistente(t *testing.T) {
	uc, _, _ := nuevoAdmin(nuevosPerfiles())
	_, err := uc.Update(context.Background(), "fantasma", dto.UpdateUserRequest{Username: ptr("x")})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete: cascada de historial
// ──────────────────────────────────────────────────────────────────────────────

func TestDelete_BorraHistorialYPerfil(t *testing.T) {
	repo := nuevosPerfiles(perfilBase("u1", "ana", 3))
	uc, acts, desp := nuevoAdmin(repo)

	require.NoError(t, uc.Delete(context.Background(), "u1"))

	assert.Equal(t, []string{"u1"}, acts.borrados)
	assert.Equal(t, []string{"u1"}, desp.borrados)
	quedo, _ := repo.GetByID(context.Background(), "u1")
	assert.Nil(t, quedo)
}

func TestDelete_UsuarioInexistente(t *testing.T) {
	uc, _, _ := nuevoAdmin(nuevosPerfiles())
	err := uc.Delete(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ExtenderTrial
// ──────────────────────────────────────────────────────────────────────────────

func TestExtenderTrial_DiasNoPositivos(t *testing.T) {
	uc, _, _ := nuevoAdmin(nuevosPerfiles(perfilBase("u1", "ana", 3)))
	_, err := uc.ExtenderTrial(context.Background(), "u1", 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExtenderTrial_CorreElVencimiento(t *testing.T) {
	p := perfilBase("u1", "ana", 3)
	vence := time.Now().Add(24 * time.Hour)
	p.TrialExpiresAt = &vence
	repo := nuevosPerfiles(p)
	uc, _, _ := nuevoAdmin(repo)

	out, err := uc.ExtenderTrial(context.Background(), "u1", 5)
	require.NoError(t, err)
	require.NotNil(t, out.TrialExpiresAt)
	assert.WithinDuration(t, vence.AddDate(0, 0, 5), *out.TrialExpiresAt, time.Second)
}

// ──────────────────────────────────────────────────────────────────────────────
// ExpirarVencidos: barrido masivo
// ──────────────────────────────────────────────────────────────────────────────

func TestExpirarVencidos_DegradaSoloLosVencidos(t *testing.T) {
	ayer := time.Now().Add(-24 * time.Hour)
	manana := time.Now().Add(24 * time.Hour)

	vencido := perfilBase("u1", "vencido", 3)
	vencido.TrialExpiresAt = &ayer

	vigente := perfilBase("u2", "vigente", 3)
	vigente.TrialExpiresAt = &manana

	pago := perfilBase("u3", "pago", 3)
	pago.TrialExpiresAt = &ayer
	pago.IsPaid = ptr(true)

	admin := perfilBase("u4", "dios", entity.NivelDios)
	admin.TrialExpiresAt = &ayer

	repo := nuevosPerfiles(vencido, vigente, pago, admin)
	uc, _, _ := nuevoAdmin(repo)
	ctx := context.Background()

	out, err := uc.ExpirarVencidos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, out.Expirados, "solo el trial vencido sin pago se degrada")
	assert.Equal(t, 0, out.Fallidos)

	degradado, _ := repo.GetByID(ctx, "u1")
	assert.Equal(t, entity.NivelInvitado, degradado.Nivel)
	intacto, _ := repo.GetByID(ctx, "u3")
	assert.Equal(t, entity.NivelPro, intacto.Nivel, "un pago vencido de trial no se toca")
	diosIntacto, _ := repo.GetByID(ctx, "u4")
	assert.Equal(t, entity.NivelDios, diosIntacto.Nivel)

	// Caso 2: segundo barrido es idempotente
	out, err = uc.ExpirarVencidos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Expirados)
}

func TestExpirarVencidos_UnFalloNoDetieneElBarrido(t *testing.T) {
	ayer := time.Now().Add(-24 * time.Hour)

	a := perfilBase("u1", "a", 3)
	a.TrialExpiresAt = &ayer
	b := perfilBase("u2", "b", 3)
	b.TrialExpiresAt = &ayer

	repo := nuevosPerfiles(a, b)
	repo.fallarUpdate["u1"] = true
	uc, _, _ := nuevoAdmin(repo)

	out, err := uc.ExpirarVencidos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, out.Expirados)
	assert.Equal(t, 1, out.Fallidos)
}
