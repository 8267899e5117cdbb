package heroes

import "context"

// Repository es el Hero Store. Las implementaciones devuelven ErrNotFound si el id no existe.
type Repository interface {
	// Create asigna el siguiente id entero.
	Create(ctx context.Context, h Hero) (Hero, error)
	GetByID(ctx context.Context, id int64) (Hero, error)
	// FindByName devuelve el héroe de menor id con ese nombre exacto.
	FindByName(ctx context.Context, name string) (Hero, error)
	List(ctx context.Context) ([]Hero, error)
	Update(ctx context.Context, h Hero) (Hero, error)
	SetPassword(ctx context.Context, id int64, password string) error
	Delete(ctx context.Context, id int64) error
}
