package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/internal/repository"
)

// addMember seats userID on team. It must run inside tx with the team row
// already locked (TeamRepository.LockByID), which serialises the capacity
// check against concurrent joins of the same team.
func addMember(
	ctx context.Context, tx repository.Store, team *model.Team, userID uuid.UUID, role model.MemberRole,
) (*model.TeamMember, error) {
	// 1. Must be registered for the team's hackathon
	if _, err := tx.Registrations().Get(ctx, team.HackathonID, userID); err != nil {
		return nil, translate(err, ErrNotRegistered, "load registration")
	}

	// 2. Not already on this team
	_, err := tx.Teams().GetMember(ctx, team.ID, userID)
	if err == nil {
		return nil, ErrAlreadyMember
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("failed to check membership: %w", err)
	}

	// 3. Not on another team of the same hackathon
	if err := ensureNoTeam(ctx, tx, team.HackathonID, userID); err != nil {
		return nil, err
	}

	// 4. Seat available; the shared lock keeps max_team_size fixed until commit
	hackathon, err := tx.Hackathons().LockShared(ctx, team.HackathonID)
	if err != nil {
		return nil, translate(err, ErrHackathonNotFound, "load hackathon")
	}
	count, err := tx.Teams().CountMembers(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count members: %w", err)
	}
	if count >= int64(hackathon.MaxTeamSize) {
		return nil, teamFullError(hackathon.MaxTeamSize)
	}

	member := &model.TeamMember{
		TeamID:      team.ID,
		HackathonID: team.HackathonID,
		UserID:      userID,
		Role:        role,
	}
	if err := tx.Teams().AddMember(ctx, member); err != nil {
		return nil, translateWrite(err, ErrAlreadyInTeam, "add member")
	}
	if err := tx.Registrations().SetTeam(ctx, team.HackathonID, userID, &team.ID); err != nil {
		return nil, translate(err, ErrNotRegistered, "link registration")
	}
	return member, nil
}

// ensureNoTeam fails with ErrAlreadyInTeam when userID already sits on a team of the hackathon.
func ensureNoTeam(ctx context.Context, tx repository.Store, hackathonID, userID uuid.UUID) error {
	_, err := tx.Teams().FindMembership(ctx, hackathonID, userID)
	if err == nil {
		return ErrAlreadyInTeam
	}
	if !isNotFound(err) {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	return nil
}
