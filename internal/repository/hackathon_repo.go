package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/pkg/pagination"
)

type HackathonFilter struct {
	Status        *model.HackathonStatus
	Query         string
	StartDateFrom *time.Time
	StartDateTo   *time.Time
	Page          pagination.Params
}

// HackathonStats counts what hangs off a hackathon.
type HackathonStats struct {
	Registrations int64
	Teams         int64
}

type HackathonRepository interface {
	Create(ctx context.Context, h *model.Hackathon) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.Hackathon, error)
	// LockByID loads the hackathon with SELECT ... FOR UPDATE.
	LockByID(ctx context.Context, id uuid.UUID) (*model.Hackathon, error)
	// LockShared loads the hackathon with SELECT ... FOR SHARE, blocking
	// LockByID holders until the surrounding transaction ends.
	LockShared(ctx context.Context, id uuid.UUID) (*model.Hackathon, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	// Delete removes the hackathon together with its teams, members,
	// invitations, registrations and skills.
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter HackathonFilter) ([]model.Hackathon, int64, error)
	Stats(ctx context.Context, id uuid.UUID) (HackathonStats, error)
	// LargestTeamSize is the member count of the biggest team, 0 without teams.
	LargestTeamSize(ctx context.Context, id uuid.UUID) (int64, error)

	AddSkill(ctx context.Context, skill *model.HackathonSkill) error
	HasSkill(ctx context.Context, hackathonID uuid.UUID, skillName string) (bool, error)
	RemoveSkill(ctx context.Context, hackathonID, skillID uuid.UUID) (int64, error)
	ListSkills(ctx context.Context, hackathonID uuid.UUID) ([]model.HackathonSkill, error)
}
