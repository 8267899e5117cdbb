package pets

import "context"

// Repository es el Pet Store. Las implementaciones devuelven ErrNotFound
// cuando el id no existe y normalizan OwnerID a su forma canónica.
type Repository interface {
	// Create asigna un id nuevo (nunca reutilizado) y devuelve la mascota guardada.
	Create(ctx context.Context, p Pet) (Pet, error)
	GetByID(ctx context.Context, id int64) (Pet, error)
	List(ctx context.Context) ([]Pet, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Pet, error)

	// SetOwner asigna dueño solo si la mascota sigue sin adoptar.
	// Devuelve ErrAlreadyAdopted si ya tenía dueño.
	SetOwner(ctx context.Context, id int64, ownerID string) (Pet, error)

	// ApplyActivity sobrescribe los stats y agrega entry al historial en una sola operación.
	ApplyActivity(ctx context.Context, id int64, stats Stats, entry ActivityEntry) (Pet, error)

	AddItem(ctx context.Context, id int64, item Item) (Pet, error)
}
