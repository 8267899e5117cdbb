package pets

import "context"

// OwnerResolver traduce el nombre de un héroe a su id canónico.
// Lo implementa heroes.Service; se define acá para evitar ciclos de imports (pets <-> heroes).
type OwnerResolver interface {
	OwnerIDByName(ctx context.Context, name string) (string, error)
}

// ListByOwnerName resuelve el héroe por nombre y devuelve sus mascotas.
func (s *Service) ListByOwnerName(ctx context.Context, owners OwnerResolver, name string) ([]Pet, error) {
	ownerID, err := owners.OwnerIDByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.ListByOwner(ctx, ownerID)
}
