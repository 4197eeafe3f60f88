package repository

import (
	"context"

	"github.com/google/uuid"

	"hackhub/teamhub/internal/model"
)

// InvitationFilter narrows List. Nil fields are ignored.
type InvitationFilter struct {
	TeamID    *uuid.UUID
	InviteeID *uuid.UUID
	Status    *model.InvitationStatus
}

type InvitationRepository interface {
	Create(ctx context.Context, inv *model.Invitation) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error)
	// GetDetails loads the invitation with team, inviter and invitee.
	GetDetails(ctx context.Context, id uuid.UUID) (*model.Invitation, error)
	// LockByID loads the invitation under a row lock held until the enclosing transaction ends.
	LockByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error)
	HasPending(ctx context.Context, teamID, inviteeID uuid.UUID) (bool, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.InvitationStatus) error
	// List returns matching invitations with team, inviter and invitee, newest first.
	List(ctx context.Context, filter InvitationFilter) ([]model.Invitation, error)
}
