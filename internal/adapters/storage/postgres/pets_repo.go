package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"superhero-pets/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, name, type, super_power, owner_id,
	felicidad, hambre, energia, limpieza, salud,
	items, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var (
		p     pets.Pet
		owner sql.NullString
		salud string
		items []byte
	)
	if err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Type,
		&p.SuperPower,
		&owner,
		&p.Happiness,
		&p.Hunger,
		&p.Energy,
		&p.Cleanliness,
		&salud,
		&items,
		&p.CreatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	p.OwnerID = owner.String
	p.Health = pets.Health(salud)
	p.Stats = p.Stats.Normalize()
	p.Activities = []pets.ActivityEntry{}
	p.Items = []pets.Item{}
	if len(items) > 0 {
		if err := json.Unmarshal(items, &p.Items); err != nil {
			return pets.Pet{}, fmt.Errorf("pet %d items: %w", p.ID, err)
		}
	}
	return p, nil
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	items, err := json.Marshal(nonNilItems(p.Items))
	if err != nil {
		return pets.Pet{}, err
	}
	p.Stats = p.Stats.Normalize()

	err = r.db.QueryRowContext(ctx, `
		INSERT INTO pets (
			name, type, super_power, owner_id,
			felicidad, hambre, energia, limpieza, salud,
			items, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		RETURNING id
	`,
		p.Name,
		p.Type,
		p.SuperPower,
		toNullString(p.OwnerID),
		p.Happiness,
		p.Hunger,
		p.Energy,
		p.Cleanliness,
		string(p.Health),
		string(items),
		p.CreatedAt,
	).Scan(&p.ID)
	if err != nil {
		return pets.Pet{}, fmt.Errorf("insert pet: %w", err)
	}

	p.Activities = []pets.ActivityEntry{}
	p.Items = nonNilItems(p.Items)
	return p, nil
}

func (r *PetsRepo) GetByID(ctx context.Context, id int64) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)

	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT pet_id, tipo, fecha, detail
		FROM pet_activities
		WHERE pet_id = $1
		ORDER BY id ASC
	`, id)
	if err != nil {
		return pets.Pet{}, err
	}
	byPet, err := scanActivities(rows)
	if err != nil {
		return pets.Pet{}, err
	}
	if acts, ok := byPet[id]; ok {
		p.Activities = acts
	}
	return p, nil
}

func (r *PetsRepo) List(ctx context.Context) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+petColumns+` FROM pets ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	out, err := scanPets(rows)
	if err != nil {
		return nil, err
	}

	actRows, err := r.db.QueryContext(ctx, `
		SELECT pet_id, tipo, fecha, detail
		FROM pet_activities
		ORDER BY pet_id ASC, id ASC
	`)
	if err != nil {
		return nil, err
	}
	return attachActivities(out, actRows)
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerID string) ([]pets.Pet, error) {
	if ownerID == "" {
		return []pets.Pet{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+petColumns+` FROM pets WHERE owner_id = $1 ORDER BY id ASC`, ownerID)
	if err != nil {
		return nil, err
	}
	out, err := scanPets(rows)
	if err != nil {
		return nil, err
	}

	actRows, err := r.db.QueryContext(ctx, `
		SELECT a.pet_id, a.tipo, a.fecha, a.detail
		FROM pet_activities a
		JOIN pets p ON p.id = a.pet_id
		WHERE p.owner_id = $1
		ORDER BY a.pet_id ASC, a.id ASC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	return attachActivities(out, actRows)
}

// SetOwner es un UPDATE condicional: solo gana si owner_id sigue en NULL.
func (r *PetsRepo) SetOwner(ctx context.Context, id int64, ownerID string) (pets.Pet, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET owner_id = $2
		WHERE id = $1 AND owner_id IS NULL
	`, id, ownerID)
	if err != nil {
		return pets.Pet{}, fmt.Errorf("set owner: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return pets.Pet{}, err
		}
		return pets.Pet{}, pets.ErrAlreadyAdopted
	}
	return r.GetByID(ctx, id)
}

// ApplyActivity sobrescribe los stats y agrega la entrada en una transacción.
func (r *PetsRepo) ApplyActivity(ctx context.Context, id int64, stats pets.Stats, entry pets.ActivityEntry) (pets.Pet, error) {
	stats = stats.Normalize()
	detail, err := json.Marshal(entry)
	if err != nil {
		return pets.Pet{}, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return pets.Pet{}, err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		UPDATE pets
		SET
			felicidad = $2,
			hambre = $3,
			energia = $4,
			limpieza = $5,
			salud = $6
		WHERE id = $1
	`,
		id,
		stats.Happiness,
		stats.Hunger,
		stats.Energy,
		stats.Cleanliness,
		string(stats.Health),
	)
	if err != nil {
		return pets.Pet{}, fmt.Errorf("update stats: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.Pet{}, pets.ErrNotFound
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO pet_activities (pet_id, tipo, fecha, detail)
		VALUES ($1,$2,$3,$4)
	`, id, string(entry.Kind), entry.At, string(detail)); err != nil {
		return pets.Pet{}, fmt.Errorf("insert activity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return pets.Pet{}, err
	}
	return r.GetByID(ctx, id)
}

func (r *PetsRepo) AddItem(ctx context.Context, id int64, item pets.Item) (pets.Pet, error) {
	b, err := json.Marshal([]pets.Item{item})
	if err != nil {
		return pets.Pet{}, err
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET items = items || $2::jsonb
		WHERE id = $1
	`, id, string(b))
	if err != nil {
		return pets.Pet{}, fmt.Errorf("add item: %w", err)
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.Pet{}, pets.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func scanPets(rows *sql.Rows) ([]pets.Pet, error) {
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func scanActivities(rows *sql.Rows) (map[int64][]pets.ActivityEntry, error) {
	defer rows.Close()

	out := map[int64][]pets.ActivityEntry{}
	for rows.Next() {
		var (
			petID  int64
			tipo   string
			e      pets.ActivityEntry
			detail []byte
		)
		if err := rows.Scan(&petID, &tipo, &e.At, &detail); err != nil {
			return nil, err
		}
		if len(detail) > 0 {
			if err := json.Unmarshal(detail, &e); err != nil {
				return nil, fmt.Errorf("activity detail for pet %d: %w", petID, err)
			}
		}
		// Las columnas mandan sobre lo que traiga el detalle.
		e.Kind = pets.Activity(tipo)
		out[petID] = append(out[petID], e)
	}
	return out, rows.Err()
}

func attachActivities(items []pets.Pet, rows *sql.Rows) ([]pets.Pet, error) {
	byPet, err := scanActivities(rows)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if acts, ok := byPet[items[i].ID]; ok {
			items[i].Activities = acts
		}
	}
	return items, nil
}

func toNullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func nonNilItems(items []pets.Item) []pets.Item {
	if items == nil {
		return []pets.Item{}
	}
	return items
}
