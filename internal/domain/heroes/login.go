package heroes

import (
	"context"
	"errors"
	"strings"
)

// Login valida credenciales con bootstrap "primero que escribe gana":
//   - nombre desconocido => crea el héroe con esa contraseña
//   - héroe sin contraseña => adopta la contraseña recibida
//   - héroe con contraseña => debe coincidir exacto (sin hash, case-sensitive)
func (s *Service) Login(ctx context.Context, name, password string) (Hero, error) {
	name = strings.TrimSpace(name)
	if name == "" || password == "" {
		return Hero{}, &ValidationError{Problems: []string{"Nombre y contraseña requeridos"}}
	}

	h, err := s.repo.FindByName(ctx, name)
	switch {
	case errors.Is(err, ErrNotFound):
		return s.repo.Create(ctx, Hero{
			Name:      name,
			Password:  password,
			CreatedAt: s.now(),
		})
	case err != nil:
		return Hero{}, err
	}

	if h.Password == "" {
		if err := s.repo.SetPassword(ctx, h.ID, password); err != nil {
			return Hero{}, err
		}
		h.Password = password
		return h, nil
	}

	if h.Password != password {
		return Hero{}, ErrInvalidCredentials
	}
	return h, nil
}
