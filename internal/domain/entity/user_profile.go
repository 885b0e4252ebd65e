package entity

import "time"

// Niveles de usuario. Conjunto cerrado: 0-4 son tiers ordenados (más alto ⊇ más
// bajo); 999 es un centinela de superusuario ("Dios") y no una continuación del
// orden numérico.
const (
	NivelInvitado = 0
	NivelStarter  = 1
	NivelBasic    = 2
	NivelPro      = 3
	NivelPlus     = 4 // reservado, sin secciones asociadas todavía
	NivelDios     = 999
)

// Estados de pago válidos para PaymentStatus.
const (
	PagoPendiente = "pending"
	PagoAprobado  = "approved"
	PagoRechazado = "rejected"
)

// DiasTrial duración del trial otorgado en el registro.
const DiasTrial = 7

// UserProfile representa el perfil y el derecho de acceso de un usuario.
// Los campos opcionales son punteros: nil significa "sin valor", distinto de
// cero/false (IsPaid es tri-estado: nil = nunca marcado por un admin).
type UserProfile struct {
	ID              string
	Email           string
	Username        string
	PasswordHash    string // bcrypt, nunca plano después de persistir
	Nivel           int
	Plan            string // nombre comercial elegido al registrarse (Starter, Basic, Pro)
	TrialExpiresAt  *time.Time
	PaidUntil       *time.Time
	IsPaid          *bool
	PaymentStatus   string // pending, approved, rejected o vacío
	PagosEmpresa    bool   // Plan Empresa: manejo de múltiples tiendas
	CantidadTiendas *int   // solo con PagosEmpresa; nil = ilimitado
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NivelValido informa si n pertenece al conjunto cerrado de niveles.
func NivelValido(n int) bool {
	switch n {
	case NivelInvitado, NivelStarter, NivelBasic, NivelPro, NivelPlus, NivelDios:
		return true
	}
	return false
}

// NormalizarEmpresa aplica la invariante del Plan Empresa: sin PagosEmpresa no
// puede quedar CantidadTiendas.
func (p *UserProfile) NormalizarEmpresa() {
	if !p.PagosEmpresa {
		p.CantidadTiendas = nil
	}
}

// NivelDesdePlan mapea el nombre comercial del plan a su nivel. Un plan
// desconocido equivale a Invitado.
func NivelDesdePlan(plan string) int {
	switch plan {
	case "Starter":
		return NivelStarter
	case "Basic":
		return NivelBasic
	case "Pro":
		return NivelPro
	}
	return NivelInvitado
}
