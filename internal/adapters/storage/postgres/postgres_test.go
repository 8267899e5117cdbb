package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superhero-pets/internal/domain/heroes"
	"superhero-pets/internal/domain/pets"
)

var petCols = []string{
	"id", "name", "type", "super_power", "owner_id",
	"felicidad", "hambre", "energia", "limpieza", "salud",
	"items", "created_at",
}

var activityCols = []string{"pet_id", "tipo", "fecha", "detail"}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func TestPetsRepo_CreateReturnsID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPetsRepo(db)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`INSERT INTO pets`).
		WithArgs("Krypto", "perro", "vuelo", nil, 50, 50, 50, 50, "sano", "[]", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	p, err := repo.Create(context.Background(), pets.Pet{
		Name:       "Krypto",
		Type:       "perro",
		SuperPower: "vuelo",
		Stats:      pets.DefaultStats(),
		CreatedAt:  now,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(7), p.ID)
	assert.Empty(t, p.Items)
	assert.NotNil(t, p.Activities)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_GetByIDNotFound(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPetsRepo(db)

	mock.ExpectQuery(`FROM pets WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnRows(sqlmock.NewRows(petCols))

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, pets.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_GetByIDLoadsItemsAndActivities(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPetsRepo(db)
	at := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM pets WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(petCols).AddRow(
			int64(1), "Krypto", "perro", "vuelo", "3",
			int64(60), int64(40), int64(40), int64(50), "sano",
			[]byte(`[{"name":"capa"}]`), at,
		))
	mock.ExpectQuery(`FROM pet_activities WHERE pet_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(activityCols).AddRow(
			int64(1), "jugar", at,
			[]byte(`{"tipo":"jugar","fecha":"2024-05-02T09:00:00Z","felicidadAumentada":10,"energiaConsumida":10}`),
		))

	p, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "3", p.OwnerID)
	assert.Equal(t, 60, p.Happiness)
	assert.Equal(t, []pets.Item{{Name: "capa"}}, p.Items)
	require.Len(t, p.Activities, 1)
	assert.Equal(t, pets.ActivityPlay, p.Activities[0].Kind)
	assert.Equal(t, 10, p.Activities[0].EnergySpent)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_SetOwnerAlreadyAdopted(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPetsRepo(db)
	at := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)

	mock.ExpectExec(`UPDATE pets SET owner_id = \$2 WHERE id = \$1 AND owner_id IS NULL`).
		WithArgs(int64(1), "5").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM pets WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(petCols).AddRow(
			int64(1), "Krypto", "perro", "", "3",
			int64(50), int64(50), int64(50), int64(50), "sano",
			[]byte(`[]`), at,
		))
	mock.ExpectQuery(`FROM pet_activities`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(activityCols))

	_, err := repo.SetOwner(context.Background(), 1, "5")
	assert.ErrorIs(t, err, pets.ErrAlreadyAdopted)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_SetOwnerMissingPet(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPetsRepo(db)

	mock.ExpectExec(`UPDATE pets SET owner_id`).
		WithArgs(int64(8), "5").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(`FROM pets WHERE id = \$1`).
		WithArgs(int64(8)).
		WillReturnRows(sqlmock.NewRows(petCols))

	_, err := repo.SetOwner(context.Background(), 8, "5")
	assert.ErrorIs(t, err, pets.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_ApplyActivityCommitsStatsAndEntry(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPetsRepo(db)
	at := time.Date(2024, 5, 2, 9, 0, 0, 0, time.UTC)

	stats := pets.Stats{Happiness: 60, Hunger: 50, Energy: 40, Cleanliness: 50, Health: pets.HealthHealthy}
	entry := pets.ActivityEntry{Kind: pets.ActivityPlay, At: at, HappinessGained: 10, EnergySpent: 10}

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE pets SET felicidad = \$2`).
		WithArgs(int64(1), 60, 50, 40, 50, "sano").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO pet_activities`).
		WithArgs(int64(1), "jugar", at, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()
	mock.ExpectQuery(`FROM pets WHERE id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(petCols).AddRow(
			int64(1), "Krypto", "perro", "", "3",
			int64(60), int64(50), int64(40), int64(50), "sano",
			[]byte(`[]`), at,
		))
	mock.ExpectQuery(`FROM pet_activities`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(activityCols).AddRow(int64(1), "jugar", at, []byte(`{}`)))

	p, err := repo.ApplyActivity(context.Background(), 1, stats, entry)
	require.NoError(t, err)
	assert.Equal(t, 60, p.Happiness)
	assert.Equal(t, 40, p.Energy)
	require.Len(t, p.Activities, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_ApplyActivityMissingPetRollsBack(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPetsRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE pets SET felicidad`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := repo.ApplyActivity(context.Background(), 42, pets.DefaultStats(), pets.ActivityEntry{Kind: pets.ActivitySleep})
	assert.ErrorIs(t, err, pets.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_AddItemMissingPet(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPetsRepo(db)

	mock.ExpectExec(`UPDATE pets SET items = items \|\| \$2::jsonb`).
		WithArgs(int64(3), `[{"name":"capa"}]`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := repo.AddItem(context.Background(), 3, pets.Item{Name: "capa"})
	assert.ErrorIs(t, err, pets.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPetsRepo_ListByOwnerEmptyOwnerSkipsQuery(t *testing.T) {
	db, mock := newMock(t)
	repo := NewPetsRepo(db)

	out, err := repo.ListByOwner(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, out)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHeroesRepo_FindByNameTakesLowestID(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHeroesRepo(db)
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`FROM heroes WHERE name = \$1 ORDER BY id ASC LIMIT 1`).
		WithArgs("Bruce").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "password", "alias", "city", "team", "created_at"}).
			AddRow(int64(2), "Bruce", "secreto", "Batman", "Gotham", "JL", at))

	h, err := repo.FindByName(context.Background(), "Bruce")
	require.NoError(t, err)
	assert.Equal(t, int64(2), h.ID)
	assert.Equal(t, "Batman", h.Alias)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHeroesRepo_UpdateMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHeroesRepo(db)

	mock.ExpectQuery(`UPDATE heroes`).
		WithArgs(int64(9), "Clark", "Superman", "Metropolis", "").
		WillReturnRows(sqlmock.NewRows([]string{"password", "created_at"}))

	_, err := repo.Update(context.Background(), heroes.Hero{ID: 9, Name: "Clark", Alias: "Superman", City: "Metropolis"})
	assert.ErrorIs(t, err, heroes.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHeroesRepo_DeleteMissing(t *testing.T) {
	db, mock := newMock(t)
	repo := NewHeroesRepo(db)

	mock.ExpectExec(`DELETE FROM heroes WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.Delete(context.Background(), 4), heroes.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestImport_NullsOrphanOwners(t *testing.T) {
	db, mock := newMock(t)
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	hs := []heroes.Hero{{ID: 1, Name: "Bruce", CreatedAt: at}}
	ps := []pets.Pet{
		{ID: 1, Name: "Ace", OwnerID: "1", Stats: pets.DefaultStats(), CreatedAt: at},
		{ID: 2, Name: "Krypto", OwnerID: "77", Stats: pets.DefaultStats(), CreatedAt: at},
	}

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO heroes`).
		WithArgs(int64(1), "Bruce", "", "", "", "", at).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO pets`).
		WithArgs(int64(1), "Ace", "", "", "1", 50, 50, 50, 50, "sano", "[]", at).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO pets`).
		WithArgs(int64(2), "Krypto", "", "", nil, 50, 50, 50, 50, "sano", "[]", at).
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec(`setval`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`setval`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	st, err := Import(context.Background(), db, hs, ps)
	require.NoError(t, err)
	assert.Equal(t, ImportStats{Heroes: 1, Pets: 2, OrphanOwners: 1}, st)
	require.NoError(t, mock.ExpectationsWereMet())
}
