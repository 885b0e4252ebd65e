package dto

// CreateUserRequest entrada para que un admin cree un usuario. A diferencia
// del registro público, el admin elige el nivel y si arranca con trial.
type CreateUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Username string `json:"username" validate:"required,min=3,max=50"`
	Nivel    int    `json:"nivel"`
	ConTrial bool   `json:"con_trial"`
}

// UpdateUserRequest actualización parcial de un perfil por un admin. Los
// punteros distinguen "no tocar" (nil) de "setear este valor" (incluido
// limpiar: string vacío en fechas borra el campo).
type UpdateUserRequest struct {
	Username        *string `json:"username,omitempty"`
	Nivel           *int    `json:"nivel,omitempty"`
	IsPaid          *bool   `json:"is_paid,omitempty"`
	PaidUntil       *string `json:"paid_until,omitempty"`        // RFC3339 o "" para limpiar
	TrialExpiresAt  *string `json:"trial_expires_at,omitempty"`  // RFC3339 o "" para limpiar
	PaymentStatus   *string `json:"payment_status,omitempty"`    // pending, approved, rejected o ""
	PagosEmpresa    *bool   `json:"pagos_empresa,omitempty"`
	CantidadTiendas *int    `json:"cantidad_tiendas,omitempty"`
}

// ExtenderTrialRequest días a sumar al vencimiento actual del trial.
type ExtenderTrialRequest struct {
	Dias int `json:"dias" validate:"required,min=1,max=365"`
}

// UserStatsResponse estadísticas del panel admin.
type UserStatsResponse struct {
	TotalUsers   int         `json:"total_users"`
	UsersByLevel map[int]int `json:"users_by_level"`
	RecentUsers  int         `json:"recent_users"`
	PaidUsers    int         `json:"paid_users"`
	ExpiredUsers int         `json:"expired_users"`
	ActiveUsers  int         `json:"active_users"`
	TrialUsers   int         `json:"trial_users"`
}

// ExpirarResponse resultado del barrido de vencimientos.
type ExpirarResponse struct {
	Expirados int `json:"expirados"`
	Fallidos  int `json:"fallidos"`
}
