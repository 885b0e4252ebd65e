package nivel_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/facil-uno/facil-api/internal/domain/entity"
	"github.com/facil-uno/facil-api/internal/domain/nivel"
)

var ahora = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func boolPtr(b bool) *bool { return &b }

// ──────────────────────────────────────────────────────────────────────────────
// EsUsuarioPagoEn: precedencia de las cuatro reglas
// ──────────────────────────────────────────────────────────────────────────────

func TestEsUsuarioPago_IsPaidExplicitoManda(t *testing.T) {
	vencido := ahora.AddDate(0, 0, -10)

	// is_paid=true gana aunque el trial esté vencido o vigente
	p := &entity.UserProfile{Nivel: 3, IsPaid: boolPtr(true), TrialExpiresAt: &vencido}
	assert.True(t, nivel.EsUsuarioPagoEn(p, ahora))

	// is_paid=false gana aunque la heurística diría pagado
	p2 := &entity.UserProfile{Nivel: 3, IsPaid: boolPtr(false), TrialExpiresAt: &vencido}
	assert.False(t, nivel.EsUsuarioPagoEn(p2, ahora),
		"is_paid=false debe bloquear aunque el trial vencido con nivel alto sugiera pago")
}

func TestEsUsuarioPago_SinTrialNiFlag(t *testing.T) {
	p := &entity.UserProfile{Nivel: 3}
	assert.False(t, nivel.EsUsuarioPagoEn(p, ahora),
		"sin is_paid y sin trial la cuenta no se considera paga")
}

func TestEsUsuarioPago_HeuristicaTrialVencidoConNivel(t *testing.T) {
	vencido := ahora.AddDate(0, 0, -3)

	// Trial vencido + nivel > 0 → se asume que un admin restauró el nivel tras un pago
	p := &entity.UserProfile{Nivel: 2, TrialExpiresAt: &vencido}
	assert.True(t, nivel.EsUsuarioPagoEn(p, ahora))

	// Trial vencido pero nivel 0 → degradado, no pago
	p2 := &entity.UserProfile{Nivel: 0, TrialExpiresAt: &vencido}
	assert.False(t, nivel.EsUsuarioPagoEn(p2, ahora))

	// Trial vigente sin flag → todavía no pago
	vigente := ahora.AddDate(0, 0, 3)
	p3 := &entity.UserProfile{Nivel: 3, TrialExpiresAt: &vigente}
	assert.False(t, nivel.EsUsuarioPagoEn(p3, ahora))
}

func TestEsUsuarioPago_PerfilNil(t *testing.T) {
	assert.False(t, nivel.EsUsuarioPagoEn(nil, ahora))
}
