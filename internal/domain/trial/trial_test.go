package trial_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/facil-uno/facil-api/internal/domain/entity"
	"github.com/facil-uno/facil-api/internal/domain/trial"
)

var ahora = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func fechaPtr(t time.Time) *time.Time { return &t }
func boolPtr(b bool) *bool            { return &b }

// ──────────────────────────────────────────────────────────────────────────────
// InfoDe: días restantes con redondeo hacia arriba
// ──────────────────────────────────────────────────────────────────────────────

func TestInfoDe_DiasRestantesRedondeaHaciaArriba(t *testing.T) {
	// Vence en 36 horas → se muestran 2 días
	p := &entity.UserProfile{TrialExpiresAt: fechaPtr(ahora.Add(36 * time.Hour))}
	info := trial.InfoDe(p, ahora)
	assert.True(t, info.Activo)
	assert.Equal(t, 2, info.DiasRestantes, "36 horas restantes deben mostrarse como 2 días")

	// Vence en exactamente 48 horas → 2 días justos, sin redondeo
	p2 := &entity.UserProfile{TrialExpiresAt: fechaPtr(ahora.Add(48 * time.Hour))}
	assert.Equal(t, 2, trial.InfoDe(p2, ahora).DiasRestantes)

	// Vence en 1 hora → 1 día
	p3 := &entity.UserProfile{TrialExpiresAt: fechaPtr(ahora.Add(time.Hour))}
	assert.Equal(t, 1, trial.InfoDe(p3, ahora).DiasRestantes)
}

func TestInfoDe_TrialVencido(t *testing.T) {
	p := &entity.UserProfile{TrialExpiresAt: fechaPtr(ahora.AddDate(0, 0, -2))}
	info := trial.InfoDe(p, ahora)
	assert.False(t, info.Activo)
	assert.True(t, info.Vencido)
	assert.Equal(t, 0, info.DiasRestantes, "un trial vencido nunca muestra días negativos")
}

func TestInfoDe_SinTrialSeReportaVencido(t *testing.T) {
	info := trial.InfoDe(&entity.UserProfile{}, ahora)
	assert.False(t, info.Activo)
	assert.True(t, info.Vencido)
	assert.Nil(t, info.ExpiresAt)
}

func TestVencimientoTrial_SieteDias(t *testing.T) {
	assert.Equal(t, ahora.AddDate(0, 0, 7), trial.VencimientoTrial(ahora))
}

// ──────────────────────────────────────────────────────────────────────────────
// AplicarVencimiento: degradación a 0 al vencer el trial
// ──────────────────────────────────────────────────────────────────────────────

func TestAplicarVencimiento_DegradaTrialVencidoSinPago(t *testing.T) {
	p := &entity.UserProfile{Nivel: 3, TrialExpiresAt: fechaPtr(ahora.AddDate(0, 0, -1))}
	r := trial.AplicarVencimiento(p, ahora)

	assert.True(t, r.Vencido)
	assert.True(t, r.Demovido)
	assert.Equal(t, entity.NivelInvitado, p.Nivel, "el trial vencido sin pago degrada a nivel 0")
}

func TestAplicarVencimiento_Idempotente(t *testing.T) {
	p := &entity.UserProfile{Nivel: 3, TrialExpiresAt: fechaPtr(ahora.AddDate(0, 0, -1))}
	trial.AplicarVencimiento(p, ahora)
	require.Equal(t, entity.NivelInvitado, p.Nivel)

	// Segunda pasada: ya está en 0, no se toca ni se reporta demovido
	r := trial.AplicarVencimiento(p, ahora)
	assert.False(t, r.Demovido, "aplicar dos veces no debe volver a demover")
	assert.Equal(t, entity.NivelInvitado, p.Nivel)
}

func TestAplicarVencimiento_NoTocaInvitadoNiDios(t *testing.T) {
	vencido := fechaPtr(ahora.AddDate(0, 0, -5))

	dios := &entity.UserProfile{Nivel: entity.NivelDios, TrialExpiresAt: vencido}
	r := trial.AplicarVencimiento(dios, ahora)
	assert.False(t, r.Demovido)
	assert.Equal(t, entity.NivelDios, dios.Nivel, "Dios nunca se degrada")

	invitado := &entity.UserProfile{Nivel: entity.NivelInvitado, TrialExpiresAt: vencido}
	r = trial.AplicarVencimiento(invitado, ahora)
	assert.False(t, r.Demovido)
}

func TestAplicarVencimiento_PagoProtege(t *testing.T) {
	p := &entity.UserProfile{
		Nivel:          3,
		IsPaid:         boolPtr(true),
		TrialExpiresAt: fechaPtr(ahora.AddDate(0, 0, -1)),
	}
	r := trial.AplicarVencimiento(p, ahora)
	assert.False(t, r.Demovido, "un usuario pago no se degrada aunque su trial haya vencido")
	assert.Equal(t, 3, p.Nivel)
}

func TestAplicarVencimiento_PaidUntilMandaSobreTrial(t *testing.T) {
	// Plan pagado vigente + trial vencido: ni vencido ni demovido
	p := &entity.UserProfile{
		Nivel:          3,
		PaidUntil:      fechaPtr(ahora.AddDate(0, 1, 0)),
		TrialExpiresAt: fechaPtr(ahora.AddDate(0, 0, -10)),
	}
	r := trial.AplicarVencimiento(p, ahora)
	assert.False(t, r.Vencido)
	assert.False(t, r.Demovido)
	assert.Equal(t, 3, p.Nivel, "con paid_until vigente el trial deja de ser relevante")
}

func TestAplicarVencimiento_PlanPagadoVencidoSoloMarca(t *testing.T) {
	// El vencimiento del plan pagado marca Vencido pero nunca degrada: el
	// seguimiento de facturación queda en manos del admin.
	p := &entity.UserProfile{Nivel: 4, PaidUntil: fechaPtr(ahora.AddDate(0, 0, -1))}
	r := trial.AplicarVencimiento(p, ahora)
	assert.True(t, r.Vencido)
	assert.False(t, r.Demovido)
	assert.Equal(t, 4, p.Nivel, "el vencimiento del plan pagado no cambia el nivel")
}

// ──────────────────────────────────────────────────────────────────────────────
// Extender
// ──────────────────────────────────────────────────────────────────────────────

func TestExtender_DesdeVencimientoActual(t *testing.T) {
	vence := ahora.AddDate(0, 0, 2)
	p := &entity.UserProfile{TrialExpiresAt: &vence}
	nueva := trial.Extender(p, 5, ahora)
	assert.Equal(t, vence.AddDate(0, 0, 5), nueva, "la extensión cuenta desde el vencimiento actual")
	assert.Equal(t, nueva, *p.TrialExpiresAt)
}

func TestExtender_SinTrialCuentaDesdeAhora(t *testing.T) {
	p := &entity.UserProfile{}
	nueva := trial.Extender(p, 7, ahora)
	assert.Equal(t, ahora.AddDate(0, 0, 7), nueva)
}
