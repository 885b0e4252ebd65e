package http_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facil-uno/facil-api/internal/domain/entity"
	apphttp "github.com/facil-uno/facil-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fake de lectura de perfiles
// ──────────────────────────────────────────────────────────────────────────────

// perfilesFake devuelve un perfil fijo (o error) en cada GetByID, simulando la
// relectura de nivel desde la base.
type perfilesFake struct {
	perfil *entity.UserProfile
	err    error
}

func (f *perfilesFake) GetByID(_ context.Context, _ string) (*entity.UserProfile, error) {
	return f.perfil, f.err
}

func buildNivelApp(seccion string, perfiles *perfilesFake) *fiber.App {
	app := fiber.New()
	app.Get("/gated",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireSeccion(seccion, perfiles),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		},
	)
	app.Get("/admin",
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.RequireDios(perfiles),
		func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"ok": true})
		},
	)
	return app
}

func get(t *testing.T, app *fiber.App, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireSeccion
// ──────────────────────────────────────────────────────────────────────────────

// Caso 1: nivel suficiente (igualdad inclusive) → 200.
func TestRequireSeccion_NivelExactoAccede(t *testing.T) {
	perfiles := &perfilesFake{perfil: &entity.UserProfile{ID: testUserID, Nivel: entity.NivelPro}}
	app := buildNivelApp("pdf-generator", perfiles)

	resp := get(t, app, "/gated", tokenValido(t, entity.NivelPro))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"nivel Pro debe acceder a la sección pdf-generator (nivel requerido 3)")
}

// Caso 2: nivel insuficiente → 403 NIVEL_INSUFICIENTE.
func TestRequireSeccion_NivelInsuficiente(t *testing.T) {
	perfiles := &perfilesFake{perfil: &entity.UserProfile{ID: testUserID, Nivel: entity.NivelBasic}}
	app := buildNivelApp("pdf-generator", perfiles)

	resp := get(t, app, "/gated", tokenValido(t, entity.NivelBasic))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NIVEL_INSUFICIENTE")
}

// Caso 3: el gate usa el nivel de la DB, no el del token. Un usuario degradado
// por el admin queda afuera aunque su token viejo diga Pro.
func TestRequireSeccion_ReleeNivelDeLaBase(t *testing.T) {
	perfiles := &perfilesFake{perfil: &entity.UserProfile{ID: testUserID, Nivel: entity.NivelInvitado}}
	app := buildNivelApp("pdf-generator", perfiles)

	resp := get(t, app, "/gated", tokenValido(t, entity.NivelPro))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"la degradación en la base debe aplicar aunque el token viejo tenga nivel alto")
}

// Caso 4: fallo de infraestructura al leer el perfil → 503, no 403.
func TestRequireSeccion_ErrorDeInfraestructura(t *testing.T) {
	perfiles := &perfilesFake{err: errors.New("db caída")}
	app := buildNivelApp("pdf-generator", perfiles)

	resp := get(t, app, "/gated", tokenValido(t, entity.NivelPro))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "NIVEL_CHECK_FAILED")
}

// Caso 5: el perfil ya no existe → 401.
func TestRequireSeccion_UsuarioBorrado(t *testing.T) {
	perfiles := &perfilesFake{}
	app := buildNivelApp("pdf-generator", perfiles)

	resp := get(t, app, "/gated", tokenValido(t, entity.NivelPro))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 6: sección desconocida en el wiring → siempre 403.
func TestRequireSeccion_SeccionDesconocida(t *testing.T) {
	perfiles := &perfilesFake{perfil: &entity.UserProfile{ID: testUserID, Nivel: entity.NivelDios}}
	app := buildNivelApp("no-existe", perfiles)

	resp := get(t, app, "/gated", tokenValido(t, entity.NivelDios))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode,
		"una clave de sección desconocida debe negar acceso en vez de abrir de más")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireDios
// ──────────────────────────────────────────────────────────────────────────────

// Caso 7: solo el nivel 999 exacto entra al back-office.
func TestRequireDios_SoloNivelExacto(t *testing.T) {
	casos := []struct {
		nombre string
		nivel  int
		status int
	}{
		{"dios accede", entity.NivelDios, http.StatusOK},
		{"plus bloqueado", entity.NivelPlus, http.StatusForbidden},
		{"invitado bloqueado", entity.NivelInvitado, http.StatusForbidden},
		{"mil no hereda admin", 1000, http.StatusForbidden},
	}
	for _, c := range casos {
		t.Run(c.nombre, func(t *testing.T) {
			perfiles := &perfilesFake{perfil: &entity.UserProfile{ID: testUserID, Nivel: c.nivel}}
			app := buildNivelApp("admin", perfiles)

			resp := get(t, app, "/admin", tokenValido(t, c.nivel))
			defer resp.Body.Close()
			assert.Equal(t, c.status, resp.StatusCode)
		})
	}
}
