package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/internal/repository"
	"hackhub/teamhub/pkg/pagination"
)

type CreateTeamInput struct {
	HackathonID uuid.UUID
	CaptainID   uuid.UUID
	Name        string
	Description string
}

// TeamPatch holds the mutable team fields. Nil means unchanged.
type TeamPatch struct {
	Name        *string
	Description *string
}

type TeamService interface {
	CreateTeam(ctx context.Context, in CreateTeamInput) (*TeamDetails, error)
	GetTeam(ctx context.Context, teamID uuid.UUID) (*TeamDetails, error)
	UpdateTeam(ctx context.Context, teamID, requesterID uuid.UUID, patch TeamPatch) (*TeamDetails, error)
	DeleteTeam(ctx context.Context, teamID, requesterID uuid.UUID) error
	ListHackathonTeams(ctx context.Context, hackathonID uuid.UUID, page pagination.Params) (pagination.Page[TeamDetails], error)
	ListUserTeams(ctx context.Context, userID uuid.UUID) ([]TeamDetails, error)

	// AddMember seats userID on the team. Only the captain may add members directly.
	AddMember(ctx context.Context, teamID, requesterID, userID uuid.UUID) (*TeamDetails, error)
	// RemoveMember takes memberID off the team. Allowed for the member
	// themselves or the captain; the captain can never be removed.
	RemoveMember(ctx context.Context, teamID, memberID, requesterID uuid.UUID) error
}

type teamService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewTeamService(store repository.Store, logger *zap.Logger) TeamService {
	return &teamService{store: store, logger: logger}
}

func (s *teamService) CreateTeam(ctx context.Context, in CreateTeamInput) (*TeamDetails, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, newError(ErrValidation, "team name is required")
	}

	var team *model.Team
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		// 1. Hackathon exists
		hackathon, err := tx.Hackathons().GetByID(ctx, in.HackathonID)
		if err != nil {
			return translate(err, ErrHackathonNotFound, "load hackathon")
		}

		// 2. Teams only form during registration
		if !hackathon.OpenForTeams() {
			return ErrHackathonClosed
		}

		// 3. Captain is registered
		if _, err := tx.Registrations().Get(ctx, hackathon.ID, in.CaptainID); err != nil {
			return translate(err, ErrNotRegistered, "load registration")
		}

		// 4. Name free within the hackathon
		taken, err := tx.Teams().NameTaken(ctx, hackathon.ID, name, uuid.Nil)
		if err != nil {
			return fmt.Errorf("failed to check team name: %w", err)
		}
		if taken {
			return ErrTeamNameTaken
		}

		// 5. Captain not already seated elsewhere in this hackathon
		if err := ensureNoTeam(ctx, tx, hackathon.ID, in.CaptainID); err != nil {
			return err
		}

		team = &model.Team{
			HackathonID: hackathon.ID,
			Name:        name,
			Description: strings.TrimSpace(in.Description),
			CaptainID:   in.CaptainID,
		}
		if err := tx.Teams().Create(ctx, team); err != nil {
			return translateWrite(err, ErrTeamNameTaken, "create team")
		}

		captain := &model.TeamMember{
			TeamID:      team.ID,
			HackathonID: hackathon.ID,
			UserID:      in.CaptainID,
			Role:        model.MemberRoleCaptain,
		}
		if err := tx.Teams().AddMember(ctx, captain); err != nil {
			return translateWrite(err, ErrAlreadyInTeam, "add captain")
		}
		if err := tx.Registrations().SetTeam(ctx, hackathon.ID, in.CaptainID, &team.ID); err != nil {
			return translate(err, ErrNotRegistered, "link registration")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("team created",
		zap.String("team_id", team.ID.String()),
		zap.String("hackathon_id", team.HackathonID.String()),
		zap.String("captain_id", team.CaptainID.String()),
	)
	return s.GetTeam(ctx, team.ID)
}

func (s *teamService) GetTeam(ctx context.Context, teamID uuid.UUID) (*TeamDetails, error) {
	team, err := s.store.Teams().GetDetails(ctx, teamID)
	if err != nil {
		return nil, translate(err, ErrTeamNotFound, "load team")
	}
	details := newTeamDetails(team)
	return &details, nil
}

func (s *teamService) UpdateTeam(ctx context.Context, teamID, requesterID uuid.UUID, patch TeamPatch) (*TeamDetails, error) {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		team, err := tx.Teams().LockByID(ctx, teamID)
		if err != nil {
			return translate(err, ErrTeamNotFound, "load team")
		}
		if team.CaptainID != requesterID {
			return ErrNotCaptain
		}

		fields := map[string]interface{}{}
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return newError(ErrValidation, "team name must not be empty")
			}
			if name != team.Name {
				taken, err := tx.Teams().NameTaken(ctx, team.HackathonID, name, team.ID)
				if err != nil {
					return fmt.Errorf("failed to check team name: %w", err)
				}
				if taken {
					return ErrTeamNameTaken
				}
				fields["name"] = name
			}
		}
		if patch.Description != nil {
			fields["description"] = strings.TrimSpace(*patch.Description)
		}
		if len(fields) == 0 {
			return nil
		}

		if err := tx.Teams().Update(ctx, team.ID, fields); err != nil {
			return translateWrite(err, ErrTeamNameTaken, "update team")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetTeam(ctx, teamID)
}

func (s *teamService) DeleteTeam(ctx context.Context, teamID, requesterID uuid.UUID) error {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		team, err := tx.Teams().LockByID(ctx, teamID)
		if err != nil {
			return translate(err, ErrTeamNotFound, "load team")
		}
		if team.CaptainID != requesterID {
			return ErrNotCaptain
		}
		if err := tx.Teams().Delete(ctx, team.ID); err != nil {
			return translate(err, ErrTeamNotFound, "delete team")
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("team deleted", zap.String("team_id", teamID.String()))
	return nil
}

func (s *teamService) ListHackathonTeams(
	ctx context.Context, hackathonID uuid.UUID, page pagination.Params,
) (pagination.Page[TeamDetails], error) {
	if _, err := s.store.Hackathons().GetByID(ctx, hackathonID); err != nil {
		return pagination.Page[TeamDetails]{}, translate(err, ErrHackathonNotFound, "load hackathon")
	}

	teams, total, err := s.store.Teams().ListByHackathon(ctx, hackathonID, page)
	if err != nil {
		return pagination.Page[TeamDetails]{}, fmt.Errorf("failed to list teams: %w", err)
	}
	return pagination.NewPage(newTeamDetailsList(teams), total, page), nil
}

func (s *teamService) ListUserTeams(ctx context.Context, userID uuid.UUID) ([]TeamDetails, error) {
	teams, err := s.store.Teams().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return newTeamDetailsList(teams), nil
}

func (s *teamService) AddMember(ctx context.Context, teamID, requesterID, userID uuid.UUID) (*TeamDetails, error) {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		team, err := tx.Teams().LockByID(ctx, teamID)
		if err != nil {
			return translate(err, ErrTeamNotFound, "load team")
		}
		if team.CaptainID != requesterID {
			return ErrNotCaptain
		}
		_, err = addMember(ctx, tx, team, userID, model.MemberRoleMember)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("member added",
		zap.String("team_id", teamID.String()),
		zap.String("user_id", userID.String()),
	)
	return s.GetTeam(ctx, teamID)
}

func (s *teamService) RemoveMember(ctx context.Context, teamID, memberID, requesterID uuid.UUID) error {
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		team, err := tx.Teams().LockByID(ctx, teamID)
		if err != nil {
			return translate(err, ErrTeamNotFound, "load team")
		}
		if memberID == team.CaptainID {
			return ErrCannotRemoveCaptain
		}
		if requesterID != memberID && requesterID != team.CaptainID {
			return ErrRemovalForbidden
		}

		n, err := tx.Teams().RemoveMember(ctx, team.ID, memberID)
		if err != nil {
			return fmt.Errorf("failed to remove member: %w", err)
		}
		if n == 0 {
			return ErrMemberNotFound
		}

		err = tx.Registrations().SetTeam(ctx, team.HackathonID, memberID, nil)
		if err != nil && !isNotFound(err) {
			return fmt.Errorf("failed to unlink registration: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.Info("member removed",
		zap.String("team_id", teamID.String()),
		zap.String("user_id", memberID.String()),
		zap.String("removed_by", requesterID.String()),
	)
	return nil
}

var _ TeamService = (*teamService)(nil)
