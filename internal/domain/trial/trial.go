// Package trial implementa el ciclo de vida del período de prueba: cálculo de
// días restantes y degradación de nivel al vencer.
package trial

import (
	"time"

	"github.com/facil-uno/facil-api/internal/domain/entity"
)

// Info estado del trial de un perfil en un instante dado.
type Info struct {
	Activo        bool
	DiasRestantes int
	Vencido       bool
	ExpiresAt     *time.Time
}

// InfoDe calcula el estado del trial. Sin trial configurado el perfil se
// reporta vencido e inactivo (cuentas viejas o creadas sin trial).
func InfoDe(p *entity.UserProfile, ahora time.Time) Info {
	if p == nil || p.TrialExpiresAt == nil {
		return Info{Activo: false, DiasRestantes: 0, Vencido: true}
	}
	resto := p.TrialExpiresAt.Sub(ahora)
	dias := int(resto.Hours() / 24)
	if resto > 0 && resto%(24*time.Hour) != 0 {
		dias++ // redondeo hacia arriba: un trial que vence mañana muestra 1 día
	}
	vencido := resto <= 0
	if dias < 0 {
		dias = 0
	}
	return Info{
		Activo:        !vencido,
		DiasRestantes: dias,
		Vencido:       vencido,
		ExpiresAt:     p.TrialExpiresAt,
	}
}

// VencimientoTrial fecha de fin de trial contada desde inicio.
func VencimientoTrial(inicio time.Time) time.Time {
	return inicio.AddDate(0, 0, entity.DiasTrial)
}

// Resultado de aplicar el vencimiento a un perfil.
type Resultado struct {
	// Vencido: el período de gracia (trial o plan pagado) ya pasó. Se usa para
	// mostrar el estado y alertar al admin.
	Vencido bool
	// Demovido: el nivel bajó a 0 en esta aplicación. Solo el vencimiento de
	// trial demueve; el de plan pagado queda en manos del admin (requiere
	// seguimiento de facturación humano).
	Demovido bool
}

// AplicarVencimiento degrada el nivel a 0 si el trial venció y el usuario no
// está marcado como pago. Idempotente: sobre un perfil ya demovido o sin nada
// que vencer no cambia el estado. Los niveles 0 y Dios nunca se tocan.
func AplicarVencimiento(p *entity.UserProfile, ahora time.Time) Resultado {
	var r Resultado
	if p == nil {
		return r
	}
	// Con plan pagado manda paid_until; el trial deja de ser relevante.
	if p.PaidUntil != nil {
		r.Vencido = ahora.After(*p.PaidUntil)
		return r
	}
	if p.Nivel == entity.NivelInvitado || p.Nivel == entity.NivelDios {
		return r
	}
	pago := p.IsPaid != nil && *p.IsPaid
	if p.TrialExpiresAt != nil && ahora.After(*p.TrialExpiresAt) && !pago {
		p.Nivel = entity.NivelInvitado
		r.Vencido = true
		r.Demovido = true
	}
	return r
}

// Extender corre la fecha de vencimiento del trial la cantidad de días
// indicada, contando desde el vencimiento actual (o desde ahora si el perfil
// no tenía trial).
func Extender(p *entity.UserProfile, dias int, ahora time.Time) time.Time {
	base := ahora
	if p.TrialExpiresAt != nil {
		base = *p.TrialExpiresAt
	}
	nueva := base.AddDate(0, 0, dias)
	p.TrialExpiresAt = &nueva
	return nueva
}
