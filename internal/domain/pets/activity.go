package pets

import (
	"fmt"
	"time"
)

// Efectos de cada actividad.
const (
	playHappiness = 10
	playEnergy    = 10
	playMinEnergy = 10

	sleepEnergy = 20
	sleepHunger = 10

	feedHappiness = 10
	feedHunger    = 10

	cureHunger = 50
	cureEnergy = 50
)

const (
	resultSickFromHunger = "enfermo por hambre en 0"
	resultCured          = "curada"
)

// Outcome es el resultado de decidir una actividad.
//
// Entry != nil significa que Pet trae stats nuevos que deben persistirse junto con
// la entrada. Err != nil significa que la llamada reporta fallo. Ambos pueden venir
// a la vez: alimentar con hambre en 0 enferma a la mascota y además falla.
type Outcome struct {
	Pet   Pet
	Entry *ActivityEntry
	Err   error
}

// Mutated indica si el outcome debe persistirse.
func (o Outcome) Mutated() bool {
	return o.Entry != nil
}

// Decide aplica la actividad kind sobre la foto p pedida por actorID.
// Es pura: no lee el store ni el reloj.
func Decide(p Pet, actorID string, kind Activity, now time.Time) Outcome {
	if !p.Adopted() || p.OwnerID != actorID {
		return Outcome{Pet: p, Err: ErrForbidden}
	}

	switch kind {
	case ActivityPlay:
		return play(p, now)
	case ActivitySleep:
		return sleep(p, now)
	case ActivityFeed:
		return feed(p, now)
	case ActivityCure:
		return cure(p, now)
	default:
		return Outcome{Pet: p, Err: fmt.Errorf("%w: unknown activity %q", ErrInvalidInput, kind)}
	}
}

func play(p Pet, now time.Time) Outcome {
	if p.Health == HealthSick {
		return Outcome{Pet: p, Err: stateError("La mascota está enferma y no puede jugar. Debe ser curada primero.")}
	}
	if p.Energy < playMinEnergy {
		return Outcome{Pet: p, Err: stateError("La mascota no tiene suficiente energía para jugar")}
	}

	p.Happiness = clamp(p.Happiness + playHappiness)
	p.Energy = clamp(p.Energy - playEnergy)

	return Outcome{Pet: p, Entry: &ActivityEntry{
		Kind:            ActivityPlay,
		At:              now,
		HappinessGained: playHappiness,
		EnergySpent:     playEnergy,
	}}
}

func sleep(p Pet, now time.Time) Outcome {
	if p.Health == HealthSick {
		return Outcome{Pet: p, Err: stateError("La mascota está enferma y no puede dormir. Debe ser curada primero.")}
	}

	p.Energy = clamp(p.Energy + sleepEnergy)
	p.Hunger = clamp(p.Hunger - sleepHunger)

	return Outcome{Pet: p, Entry: &ActivityEntry{
		Kind:          ActivitySleep,
		At:            now,
		EnergyGained:  sleepEnergy,
		HungerReduced: sleepHunger,
	}}
}

func feed(p Pet, now time.Time) Outcome {
	if p.Health == HealthSick {
		return Outcome{Pet: p, Err: stateError("La mascota está enferma y no puede ser alimentada. Debe ser curada primero.")}
	}

	// Alimentar con hambre en 0 enferma a la mascota: se persiste y además falla.
	if p.Hunger == 0 {
		p.Health = HealthSick
		return Outcome{
			Pet:   p,
			Entry: &ActivityEntry{Kind: ActivityFeed, At: now, Result: resultSickFromHunger},
			Err:   stateError("La mascota está enferma porque el hambre es 0"),
		}
	}

	p.Happiness = clamp(p.Happiness + feedHappiness)
	p.Hunger = clamp(p.Hunger - feedHunger)

	return Outcome{Pet: p, Entry: &ActivityEntry{
		Kind:            ActivityFeed,
		At:              now,
		HappinessGained: feedHappiness,
		HungerReduced:   feedHunger,
	}}
}

func cure(p Pet, now time.Time) Outcome {
	if p.Health != HealthSick {
		return Outcome{Pet: p}
	}

	p.Health = HealthHealthy
	p.Hunger = cureHunger
	p.Energy = cureEnergy

	return Outcome{Pet: p, Entry: &ActivityEntry{Kind: ActivityCure, At: now, Result: resultCured}}
}

// ParseActivity acepta tanto el nombre de ruta (play, feed...) como el tipo registrado.
func ParseActivity(s string) (Activity, bool) {
	switch s {
	case "play", string(ActivityPlay):
		return ActivityPlay, true
	case "sleep", string(ActivitySleep):
		return ActivitySleep, true
	case "feed", string(ActivityFeed):
		return ActivityFeed, true
	case "cure", string(ActivityCure):
		return ActivityCure, true
	default:
		return "", false
	}
}
