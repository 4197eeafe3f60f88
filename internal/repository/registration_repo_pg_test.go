package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/internal/testutil"
)

func TestDeleteUnlinked_OnlyMatchesRowsWithoutTeam(t *testing.T) {
	db, mock := newMockDB(t)
	id := uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "hackathon_registrations" WHERE id = \$1 AND team_id IS NULL`).
		WithArgs(id.String()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	n, err := NewPGRegistrationRepository(db).DeleteUnlinked(context.Background(), id)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteUnlinked_KeepsRegistrationLinkedToTeam(t *testing.T) {
	ctx := context.Background()
	store := NewPGStore(testutil.NewDB(t))

	user := &model.User{TelegramUsername: "player", PasswordHash: "hashedpassword", Contacts: model.Contacts{}}
	require.NoError(t, store.Users().Create(ctx, user))
	start := time.Now().UTC()
	h := &model.Hackathon{
		Name: "Jam", StartDate: start, EndDate: start.Add(time.Hour),
		Status: model.HackathonStatusRegistration, MinTeamSize: 1, MaxTeamSize: 3,
	}
	require.NoError(t, store.Hackathons().Create(ctx, h))
	team := &model.Team{HackathonID: h.ID, Name: "Crew", CaptainID: user.ID}
	require.NoError(t, store.Teams().Create(ctx, team))

	regs := store.Registrations()
	reg := &model.Registration{HackathonID: h.ID, UserID: user.ID}
	require.NoError(t, regs.Create(ctx, reg))
	require.NoError(t, regs.SetTeam(ctx, h.ID, user.ID, &team.ID))

	n, err := regs.DeleteUnlinked(ctx, reg.ID)
	require.NoError(t, err)
	assert.Zero(t, n)
	_, err = regs.Get(ctx, h.ID, user.ID)
	require.NoError(t, err)

	require.NoError(t, regs.SetTeam(ctx, h.ID, user.ID, nil))
	n, err = regs.DeleteUnlinked(ctx, reg.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}
