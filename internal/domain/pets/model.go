package pets

import "time"

// Health es el estado de salud de la mascota.
// @Enum sano, enfermo
type Health string

const (
	HealthHealthy Health = "sano"
	HealthSick    Health = "enfermo"
)

// Activity identifica una actividad de cuidado.
// @Enum jugar, dormir, alimentar, curar
type Activity string

const (
	ActivityPlay  Activity = "jugar"
	ActivitySleep Activity = "dormir"
	ActivityFeed  Activity = "alimentar"
	ActivityCure  Activity = "curar"
)

const (
	StatMin     = 0
	StatMax     = 100
	StatDefault = 50
)

// Stats agrupa los campos que mutan las actividades.
type Stats struct {
	Happiness   int    `json:"felicidad"`
	Hunger      int    `json:"hambre"`
	Energy      int    `json:"energia"`
	Cleanliness int    `json:"limpieza"`
	Health      Health `json:"salud"`
}

// DefaultStats son los valores de una mascota recién creada.
func DefaultStats() Stats {
	return Stats{
		Happiness:   StatDefault,
		Hunger:      StatDefault,
		Energy:      StatDefault,
		Cleanliness: StatDefault,
		Health:      HealthHealthy,
	}
}

// Normalize deja los stats dentro de [0,100] y la salud en un valor conocido.
// Los stores lo aplican al leer registros escritos por versiones anteriores.
func (s Stats) Normalize() Stats {
	s.Happiness = clamp(s.Happiness)
	s.Hunger = clamp(s.Hunger)
	s.Energy = clamp(s.Energy)
	s.Cleanliness = clamp(s.Cleanliness)
	if s.Health != HealthSick {
		s.Health = HealthHealthy
	}
	return s
}

// ActivityEntry es una entrada del historial de actividades (append-only).
// Solo se serializan los campos de efecto que aplican a cada actividad.
type ActivityEntry struct {
	Kind            Activity  `json:"tipo"`
	At              time.Time `json:"fecha"`
	HappinessGained int       `json:"felicidadAumentada,omitempty"`
	EnergySpent     int       `json:"energiaConsumida,omitempty"`
	EnergyGained    int       `json:"energiaAumentada,omitempty"`
	HungerReduced   int       `json:"hambreReducida,omitempty"`
	Result          string    `json:"resultado,omitempty"`
}

// Item es un objeto agregado a la mascota.
type Item struct {
	Name string `json:"name"`
}

// Pet representa una mascota del juego.
type Pet struct {
	ID         int64
	Name       string
	Type       string
	SuperPower string

	// OwnerID es el id canónico del héroe dueño; "" = sin adoptar.
	OwnerID string

	Stats

	Activities []ActivityEntry
	Items      []Item

	CreatedAt time.Time
}

// Adopted indica si la mascota ya tiene dueño.
func (p Pet) Adopted() bool {
	return p.OwnerID != ""
}

func clamp(v int) int {
	if v < StatMin {
		return StatMin
	}
	if v > StatMax {
		return StatMax
	}
	return v
}
