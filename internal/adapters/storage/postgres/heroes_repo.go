package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"superhero-pets/internal/domain/heroes"
)

type HeroesRepo struct {
	db *sql.DB
}

func NewHeroesRepo(db *sql.DB) *HeroesRepo {
	return &HeroesRepo{db: db}
}

const heroColumns = `id, name, password, alias, city, team, created_at`

func scanHero(row rowScanner) (heroes.Hero, error) {
	var h heroes.Hero
	err := row.Scan(&h.ID, &h.Name, &h.Password, &h.Alias, &h.City, &h.Team, &h.CreatedAt)
	return h, err
}

func (r *HeroesRepo) Create(ctx context.Context, h heroes.Hero) (heroes.Hero, error) {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO heroes (name, password, alias, city, team, created_at)
		VALUES ($1,$2,$3,$4,$5,$6)
		RETURNING id
	`, h.Name, h.Password, h.Alias, h.City, h.Team, h.CreatedAt).Scan(&h.ID)
	if err != nil {
		return heroes.Hero{}, fmt.Errorf("insert hero: %w", err)
	}
	return h, nil
}

func (r *HeroesRepo) GetByID(ctx context.Context, id int64) (heroes.Hero, error) {
	h, err := scanHero(r.db.QueryRowContext(ctx, `SELECT `+heroColumns+` FROM heroes WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return heroes.Hero{}, heroes.ErrNotFound
		}
		return heroes.Hero{}, err
	}
	return h, nil
}

func (r *HeroesRepo) FindByName(ctx context.Context, name string) (heroes.Hero, error) {
	h, err := scanHero(r.db.QueryRowContext(ctx, `
		SELECT `+heroColumns+`
		FROM heroes
		WHERE name = $1
		ORDER BY id ASC
		LIMIT 1
	`, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return heroes.Hero{}, heroes.ErrNotFound
		}
		return heroes.Hero{}, err
	}
	return h, nil
}

func (r *HeroesRepo) List(ctx context.Context) ([]heroes.Hero, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+heroColumns+` FROM heroes ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]heroes.Hero, 0)
	for rows.Next() {
		h, err := scanHero(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Update no toca password ni created_at.
func (r *HeroesRepo) Update(ctx context.Context, h heroes.Hero) (heroes.Hero, error) {
	err := r.db.QueryRowContext(ctx, `
		UPDATE heroes
		SET
			name = $2,
			alias = $3,
			city = $4,
			team = $5
		WHERE id = $1
		RETURNING password, created_at
	`, h.ID, h.Name, h.Alias, h.City, h.Team).Scan(&h.Password, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return heroes.Hero{}, heroes.ErrNotFound
		}
		return heroes.Hero{}, fmt.Errorf("update hero: %w", err)
	}
	return h, nil
}

func (r *HeroesRepo) SetPassword(ctx context.Context, id int64, password string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE heroes SET password = $2 WHERE id = $1`, id, password)
	if err != nil {
		return fmt.Errorf("set password: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return heroes.ErrNotFound
	}
	return nil
}

func (r *HeroesRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM heroes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete hero: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return heroes.ErrNotFound
	}
	return nil
}
