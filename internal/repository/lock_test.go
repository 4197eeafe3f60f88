package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

// SQLite ignores row locks and tests pin it to one connection, so concurrent
// joins cannot be raced there; these tests pin the locking SQL Postgres receives.

func TestTeamLockByID_SelectsForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "teams" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "hackathon_id", "name", "captain_id"}).
			AddRow(id.String(), uuid.NewString(), "Crew", uuid.NewString()))

	team, err := NewPGTeamRepository(db).LockByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, team.ID)
	require.Equal(t, "Crew", team.Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationLockByID_SelectsForUpdate(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectQuery(`SELECT \* FROM "team_invitations" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "status"}).AddRow(id.String(), "pending"))

	inv, err := NewPGInvitationRepository(db).LockByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, id, inv.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHackathonLocks(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()
	repo := NewPGHackathonRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "hackathons" WHERE id = \$1 .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "max_team_size"}).AddRow(id.String(), 3))
	mock.ExpectQuery(`SELECT \* FROM "hackathons" WHERE id = \$1 .*FOR SHARE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "max_team_size"}).AddRow(id.String(), 3))

	h, err := repo.LockByID(context.Background(), id)
	require.NoError(t, err)
	require.Equal(t, 3, h.MaxTeamSize)
	_, err = repo.LockShared(context.Background(), id)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTeamLockByID_NotFound(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`FOR UPDATE`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewPGTeamRepository(db).LockByID(context.Background(), uuid.New())
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
