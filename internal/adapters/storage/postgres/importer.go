package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"superhero-pets/internal/domain/heroes"
	"superhero-pets/internal/domain/pets"
)

// ImportStats resume lo que hizo Import.
type ImportStats struct {
	Heroes       int
	Pets         int
	Activities   int
	OrphanOwners int
}

// Import copia héroes y mascotas (con sus ids) dentro de una sola transacción.
// Un owner que no corresponde a ningún héroe importado se guarda como NULL.
// Las secuencias quedan apuntando al máximo id importado.
func Import(ctx context.Context, db *sql.DB, hs []heroes.Hero, ps []pets.Pet) (ImportStats, error) {
	var st ImportStats

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return st, err
	}
	defer func() { _ = tx.Rollback() }()

	known := make(map[string]bool, len(hs))
	for _, h := range hs {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO heroes (id, name, password, alias, city, team, created_at)
			VALUES ($1,$2,$3,$4,$5,$6,$7)
		`, h.ID, h.Name, h.Password, h.Alias, h.City, h.Team, h.CreatedAt); err != nil {
			return st, fmt.Errorf("import hero %d: %w", h.ID, err)
		}
		known[h.CanonicalID()] = true
		st.Heroes++
	}

	for _, p := range ps {
		owner := p.OwnerID
		if owner != "" && !known[owner] {
			owner = ""
			st.OrphanOwners++
		}
		items, err := json.Marshal(nonNilItems(p.Items))
		if err != nil {
			return st, err
		}
		stats := p.Stats.Normalize()

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO pets (
				id, name, type, super_power, owner_id,
				felicidad, hambre, energia, limpieza, salud,
				items, created_at
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
		`,
			p.ID,
			p.Name,
			p.Type,
			p.SuperPower,
			toNullString(owner),
			stats.Happiness,
			stats.Hunger,
			stats.Energy,
			stats.Cleanliness,
			string(stats.Health),
			string(items),
			p.CreatedAt,
		); err != nil {
			return st, fmt.Errorf("import pet %d: %w", p.ID, err)
		}
		st.Pets++

		for _, e := range p.Activities {
			detail, err := json.Marshal(e)
			if err != nil {
				return st, err
			}
			if _, err := tx.ExecContext(ctx, `
				INSERT INTO pet_activities (pet_id, tipo, fecha, detail)
				VALUES ($1,$2,$3,$4)
			`, p.ID, string(e.Kind), e.At, string(detail)); err != nil {
				return st, fmt.Errorf("import activity for pet %d: %w", p.ID, err)
			}
			st.Activities++
		}
	}

	for _, table := range []string{"heroes", "pets"} {
		if _, err := tx.ExecContext(ctx, `
			SELECT setval(pg_get_serial_sequence('`+table+`', 'id'), COALESCE(MAX(id), 1), MAX(id) IS NOT NULL)
			FROM `+table); err != nil {
			return st, fmt.Errorf("sync %s sequence: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return st, err
	}
	return st, nil
}

// Reset vacía las tablas de datos antes de una importación completa.
func Reset(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `TRUNCATE pet_activities, pets, heroes RESTART IDENTITY`); err != nil {
		return fmt.Errorf("reset tables: %w", err)
	}
	return nil
}
