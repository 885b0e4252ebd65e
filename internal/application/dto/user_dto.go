package dto

import "time"

// RegisterRequest entrada del registro público. Plan es el nombre comercial
// elegido en la landing; el registro siempre otorga nivel Pro con 7 días de
// trial, sin importar el plan.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Plan     string `json:"plan" validate:"omitempty,oneof=Starter Basic Pro"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string          `json:"token"`
	User  ProfileResponse `json:"user"`
}

// TrialInfoResponse estado del trial para mostrar en la UI.
type TrialInfoResponse struct {
	Activo        bool       `json:"activo"`
	DiasRestantes int        `json:"dias_restantes"`
	Vencido       bool       `json:"vencido"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
}

// SeccionResponse una sección del catálogo con el acceso evaluado para el
// usuario actual.
type SeccionResponse struct {
	Clave          string `json:"clave"`
	Nombre         string `json:"nombre"`
	Descripcion    string `json:"descripcion"`
	NivelRequerido int    `json:"nivel_requerido"`
	TieneAcceso    bool   `json:"tiene_acceso"`
}

// ProfileResponse salida de un perfil (sin password).
type ProfileResponse struct {
	ID              string     `json:"id"`
	Email           string     `json:"email"`
	Username        string     `json:"username"`
	Nivel           int        `json:"nivel"`
	NivelNombre     string     `json:"nivel_nombre"`
	NivelColor      string     `json:"nivel_color"`
	Plan            string     `json:"plan,omitempty"`
	TrialExpiresAt  *time.Time `json:"trial_expires_at,omitempty"`
	PaidUntil       *time.Time `json:"paid_until,omitempty"`
	IsPaid          *bool      `json:"is_paid,omitempty"`
	PaymentStatus   string     `json:"payment_status,omitempty"`
	PagosEmpresa    bool       `json:"pagos_empresa"`
	CantidadTiendas *int       `json:"cantidad_tiendas,omitempty"`
	EsPago          bool       `json:"es_pago"`
	Vencido         bool       `json:"vencido"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// MeResponse perfil + trial + secciones accesibles en una sola llamada.
type MeResponse struct {
	User      ProfileResponse   `json:"user"`
	Trial     TrialInfoResponse `json:"trial"`
	Secciones []SeccionResponse `json:"secciones"`
}
