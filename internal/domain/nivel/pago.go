package nivel

import (
	"time"

	"github.com/facil-uno/facil-api/internal/domain/entity"
)

// EsUsuarioPago determina si el acceso actual del usuario está respaldado por
// un plan pagado, en este orden de precedencia:
//
//  1. IsPaid == true  → pagado, sin importar el trial.
//  2. IsPaid == false → no pagado, sin importar el trial.
//  3. IsPaid sin marcar y sin trial → no pagado (cuenta histórica sin flag).
//  4. IsPaid sin marcar con trial vencido y nivel > 0 → se asume pagado: un
//     admin que restauró el nivel después del vencimiento probablemente lo
//     hizo porque el usuario pagó.
//
// La rama 4 es una regla heredada para registros viejos sin is_paid explícito;
// los registros nuevos siempre escriben el flag y nunca dependen de ella.
func EsUsuarioPago(p *entity.UserProfile) bool {
	return EsUsuarioPagoEn(p, time.Now())
}

// EsUsuarioPagoEn es la variante con instante explícito, para evaluación
// determinista.
func EsUsuarioPagoEn(p *entity.UserProfile, ahora time.Time) bool {
	if p == nil {
		return false
	}
	if p.IsPaid != nil {
		return *p.IsPaid
	}
	if p.TrialExpiresAt == nil {
		return false
	}
	vencido := ahora.After(*p.TrialExpiresAt)
	return vencido && p.Nivel > 0
}
