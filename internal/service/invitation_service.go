package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/internal/repository"
)

type InvitationService interface {
	CreateInvitation(ctx context.Context, teamID, inviterID, inviteeID uuid.UUID, message string) (*InvitationView, error)
	// ResolveInvitation moves a pending invitation to accepted or rejected.
	// Accepting seats the invitee on the team in the same transaction; when
	// that fails the invitation stays pending and the reason is returned.
	ResolveInvitation(ctx context.Context, invitationID, responderID uuid.UUID, status model.InvitationStatus) (*InvitationView, error)
	ListForUser(ctx context.Context, userID uuid.UUID, status *model.InvitationStatus) ([]InvitationView, error)
	ListForTeam(ctx context.Context, teamID, requesterID uuid.UUID, status *model.InvitationStatus) ([]InvitationView, error)
}

type invitationService struct {
	store  repository.Store
	logger *zap.Logger
}

func NewInvitationService(store repository.Store, logger *zap.Logger) InvitationService {
	return &invitationService{store: store, logger: logger}
}

func (s *invitationService) CreateInvitation(
	ctx context.Context, teamID, inviterID, inviteeID uuid.UUID, message string,
) (*InvitationView, error) {
	var inv *model.Invitation
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		// 1. Team exists
		team, err := tx.Teams().GetByID(ctx, teamID)
		if err != nil {
			return translate(err, ErrTeamNotFound, "load team")
		}

		// 2. Only the captain invites
		if team.CaptainID != inviterID {
			return ErrNotCaptain
		}

		// 3. Not to oneself
		if inviteeID == inviterID {
			return ErrCannotInviteSelf
		}

		// 4. Invitee registered for the hackathon
		if _, err := tx.Registrations().Get(ctx, team.HackathonID, inviteeID); err != nil {
			return translate(err, ErrNotRegistered, "load registration")
		}

		// 5. Invitee not on the team yet
		_, err = tx.Teams().GetMember(ctx, team.ID, inviteeID)
		if err == nil {
			return ErrAlreadyMember
		}
		if !isNotFound(err) {
			return fmt.Errorf("failed to check membership: %w", err)
		}

		// 6. No open invitation for the same pair
		pending, err := tx.Invitations().HasPending(ctx, team.ID, inviteeID)
		if err != nil {
			return fmt.Errorf("failed to check invitations: %w", err)
		}
		if pending {
			return ErrInvitationExists
		}

		inv = &model.Invitation{
			TeamID:    team.ID,
			InviterID: inviterID,
			InviteeID: inviteeID,
			Status:    model.InvitationStatusPending,
			Message:   strings.TrimSpace(message),
		}
		if err := tx.Invitations().Create(ctx, inv); err != nil {
			return translateWrite(err, ErrInvitationExists, "create invitation")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("invitation created",
		zap.String("invitation_id", inv.ID.String()),
		zap.String("team_id", teamID.String()),
		zap.String("invitee_id", inviteeID.String()),
	)
	return s.view(ctx, inv.ID)
}

func (s *invitationService) ResolveInvitation(
	ctx context.Context, invitationID, responderID uuid.UUID, status model.InvitationStatus,
) (*InvitationView, error) {
	if !status.Terminal() {
		return nil, newError(ErrValidation, "status must be accepted or rejected")
	}

	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		inv, err := tx.Invitations().GetByID(ctx, invitationID)
		if err != nil {
			return translate(err, ErrInvitationNotFound, "load invitation")
		}
		if inv.InviteeID != responderID {
			return ErrNotInvitee
		}
		if inv.Status != model.InvitationStatusPending {
			return ErrInvitationResolved
		}

		// Lock order is team, then invitation, matching team deletion.
		var team *model.Team
		if status == model.InvitationStatusAccepted {
			team, err = tx.Teams().LockByID(ctx, inv.TeamID)
			if err != nil {
				return translate(err, ErrTeamNotFound, "load team")
			}
		}
		inv, err = tx.Invitations().LockByID(ctx, invitationID)
		if err != nil {
			return translate(err, ErrInvitationNotFound, "lock invitation")
		}
		if inv.Status != model.InvitationStatusPending {
			return ErrInvitationResolved
		}

		if err := tx.Invitations().UpdateStatus(ctx, inv.ID, status); err != nil {
			return translate(err, ErrInvitationNotFound, "update invitation")
		}

		if team != nil {
			if _, err := addMember(ctx, tx, team, responderID, model.MemberRoleMember); err != nil {
				return fmt.Errorf("cannot accept invitation: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("invitation resolved",
		zap.String("invitation_id", invitationID.String()),
		zap.String("status", string(status)),
	)
	return s.view(ctx, invitationID)
}

func (s *invitationService) ListForUser(
	ctx context.Context, userID uuid.UUID, status *model.InvitationStatus,
) ([]InvitationView, error) {
	invs, err := s.store.Invitations().List(ctx, repository.InvitationFilter{
		InviteeID: &userID,
		Status:    status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return newInvitationViews(invs), nil
}

func (s *invitationService) ListForTeam(
	ctx context.Context, teamID, requesterID uuid.UUID, status *model.InvitationStatus,
) ([]InvitationView, error) {
	team, err := s.store.Teams().GetByID(ctx, teamID)
	if err != nil {
		return nil, translate(err, ErrTeamNotFound, "load team")
	}
	if team.CaptainID != requesterID {
		return nil, ErrNotCaptain
	}

	invs, err := s.store.Invitations().List(ctx, repository.InvitationFilter{
		TeamID: &teamID,
		Status: status,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list invitations: %w", err)
	}
	return newInvitationViews(invs), nil
}

func (s *invitationService) view(ctx context.Context, id uuid.UUID) (*InvitationView, error) {
	inv, err := s.store.Invitations().GetDetails(ctx, id)
	if err != nil {
		return nil, translate(err, ErrInvitationNotFound, "load invitation")
	}
	v := newInvitationView(inv)
	return &v, nil
}

var _ InvitationService = (*invitationService)(nil)
