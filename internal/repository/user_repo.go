package repository

import (
	"context"

	"github.com/google/uuid"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/pkg/pagination"
)

// UserSearchFilter narrows SearchUsers. Zero values disable a criterion.
type UserSearchFilter struct {
	// HackathonID keeps only users registered for that hackathon.
	HackathonID *uuid.UUID
	// Skills keeps only users holding every listed skill.
	Skills []string
	// Query matches handle, full name, position or about, case-insensitively.
	Query string
	// Position matches a substring of the position, case-insensitively.
	Position string
	Page     pagination.Params
}

type UserListFilter struct {
	Role *model.Role
	Page pagination.Params
}

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// GetByID loads the user with skills.
	GetByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	// Update writes the given columns only.
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	List(ctx context.Context, filter UserListFilter) ([]model.User, int64, error)
	Search(ctx context.Context, filter UserSearchFilter) ([]model.User, int64, error)

	AddSkill(ctx context.Context, skill *model.UserSkill) error
	HasSkill(ctx context.Context, userID uuid.UUID, skillName string) (bool, error)
	// RemoveSkill returns the number of rows deleted.
	RemoveSkill(ctx context.Context, userID uuid.UUID, skillName string) (int64, error)
	ListSkills(ctx context.Context, userID uuid.UUID) ([]model.UserSkill, error)
}
