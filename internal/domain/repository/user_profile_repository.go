package repository

import (
	"context"

	"github.com/facil-uno/facil-api/internal/domain/entity"
)

// UserProfileRepository define el puerto de persistencia para UserProfile (DIP).
type UserProfileRepository interface {
	Create(ctx context.Context, p *entity.UserProfile) error
	GetByID(ctx context.Context, id string) (*entity.UserProfile, error)
	GetByEmail(ctx context.Context, email string) (*entity.UserProfile, error)
	// UsernameExiste informa si el username ya está tomado (para el sufijado
	// de colisiones en el registro).
	UsernameExiste(ctx context.Context, username string) (bool, error)
	// ListAll devuelve todos los perfiles, ordenados por fecha de creación
	// descendente. El filtrado de búsqueda se hace en memoria (panel admin).
	ListAll(ctx context.Context) ([]*entity.UserProfile, error)
	Update(ctx context.Context, p *entity.UserProfile) error
	Delete(ctx context.Context, id string) error
}
