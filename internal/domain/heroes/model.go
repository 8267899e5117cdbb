package heroes

import (
	"strconv"
	"time"
)

// Hero es un jugador. Name es el identificador de login (no se fuerza unicidad).
type Hero struct {
	ID       int64
	Name     string
	Password string
	Alias    string
	City     string
	Team     string

	CreatedAt time.Time
}

// CanonicalID es la forma con la que las mascotas referencian al héroe como dueño.
func (h Hero) CanonicalID() string {
	return CanonicalID(h.ID)
}

func CanonicalID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// DisplayName prefiere el alias.
func (h Hero) DisplayName() string {
	if h.Alias != "" {
		return h.Alias
	}
	return h.Name
}
