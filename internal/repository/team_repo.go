package repository

import (
	"context"

	"github.com/google/uuid"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/pkg/pagination"
)

type TeamRepository interface {
	Create(ctx context.Context, team *model.Team) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Team, error)
	// LockByID loads the team and holds a row lock on it until the enclosing
	// transaction ends. Concurrent roster changes on the same team queue up here.
	LockByID(ctx context.Context, id uuid.UUID) (*model.Team, error)
	// NameTaken reports whether another team of the hackathon (other than exceptID) uses name.
	NameTaken(ctx context.Context, hackathonID uuid.UUID, name string, exceptID uuid.UUID) (bool, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	// Delete removes the team, its members and invitations, and detaches
	// registrations that pointed at it.
	Delete(ctx context.Context, id uuid.UUID) error

	// GetDetails loads the team with captain and roster (members ordered by join time).
	GetDetails(ctx context.Context, id uuid.UUID) (*model.Team, error)
	ListByHackathon(ctx context.Context, hackathonID uuid.UUID, page pagination.Params) ([]model.Team, int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Team, error)

	AddMember(ctx context.Context, member *model.TeamMember) error
	GetMember(ctx context.Context, teamID, userID uuid.UUID) (*model.TeamMember, error)
	// FindMembership returns the user's membership in any team of the hackathon.
	FindMembership(ctx context.Context, hackathonID, userID uuid.UUID) (*model.TeamMember, error)
	CountMembers(ctx context.Context, teamID uuid.UUID) (int64, error)
	RemoveMember(ctx context.Context, teamID, userID uuid.UUID) (int64, error)
}
