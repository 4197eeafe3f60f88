package repository

import (
	"context"

	"github.com/google/uuid"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/pkg/pagination"
)

type RegistrationRepository interface {
	Create(ctx context.Context, reg *model.Registration) error
	Get(ctx context.Context, hackathonID, userID uuid.UUID) (*model.Registration, error)
	// DeleteUnlinked removes the registration only while it has no team and
	// reports how many rows went away.
	DeleteUnlinked(ctx context.Context, id uuid.UUID) (int64, error)
	// SetTeam points the user's registration at teamID, or clears it when teamID is nil.
	SetTeam(ctx context.Context, hackathonID, userID uuid.UUID, teamID *uuid.UUID) error
	// ListByHackathon returns registrations with their users, newest first.
	ListByHackathon(ctx context.Context, hackathonID uuid.UUID, page pagination.Params) ([]model.Registration, int64, error)
	// ListByUser returns the user's registrations with their hackathons.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Registration, error)
}
