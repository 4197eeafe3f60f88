package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/internal/repository"
	"hackhub/teamhub/pkg/pagination"
)

// ProfilePatch holds the editable profile fields. Nil means unchanged.
type ProfilePatch struct {
	FullName *string
	Position *string
	About    *string
	Contacts *model.Contacts
}

type UserService interface {
	GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (*model.User, error)

	ListSkills(ctx context.Context, userID uuid.UUID) ([]model.UserSkill, error)
	AddSkill(ctx context.Context, userID uuid.UUID, skillName string) (*model.UserSkill, error)
	RemoveSkill(ctx context.Context, userID uuid.UUID, skillName string) error

	SearchUsers(ctx context.Context, filter repository.UserSearchFilter) (pagination.Page[model.User], error)

	ListUsers(ctx context.Context, filter repository.UserListFilter) (pagination.Page[model.User], error)
	SetRole(ctx context.Context, userID uuid.UUID, role model.Role) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUser(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, translate(err, ErrUserNotFound, "find user")
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (*model.User, error) {
	fields := map[string]interface{}{}
	if patch.FullName != nil {
		fields["full_name"] = strings.TrimSpace(*patch.FullName)
	}
	if patch.Position != nil {
		fields["position"] = strings.TrimSpace(*patch.Position)
	}
	if patch.About != nil {
		fields["about"] = strings.TrimSpace(*patch.About)
	}
	if patch.Contacts != nil {
		fields["contacts"] = *patch.Contacts
	}

	if len(fields) > 0 {
		if err := s.userRepo.Update(ctx, userID, fields); err != nil {
			return nil, translate(err, ErrUserNotFound, "update profile")
		}
	}
	return s.GetUser(ctx, userID)
}

func (s *userService) ListSkills(ctx context.Context, userID uuid.UUID) ([]model.UserSkill, error) {
	skills, err := s.userRepo.ListSkills(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return skills, nil
}

func (s *userService) AddSkill(ctx context.Context, userID uuid.UUID, skillName string) (*model.UserSkill, error) {
	skillName = strings.TrimSpace(skillName)
	if skillName == "" {
		return nil, newError(ErrValidation, "skill name is required")
	}

	has, err := s.userRepo.HasSkill(ctx, userID, skillName)
	if err != nil {
		return nil, fmt.Errorf("failed to check skill: %w", err)
	}
	if has {
		return nil, ErrSkillExists
	}

	skill := &model.UserSkill{UserID: userID, SkillName: skillName}
	if err := s.userRepo.AddSkill(ctx, skill); err != nil {
		return nil, translateWrite(err, ErrSkillExists, "add skill")
	}
	return skill, nil
}

func (s *userService) RemoveSkill(ctx context.Context, userID uuid.UUID, skillName string) error {
	n, err := s.userRepo.RemoveSkill(ctx, userID, strings.TrimSpace(skillName))
	if err != nil {
		return fmt.Errorf("failed to remove skill: %w", err)
	}
	if n == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (s *userService) SearchUsers(ctx context.Context, filter repository.UserSearchFilter) (pagination.Page[model.User], error) {
	users, total, err := s.userRepo.Search(ctx, filter)
	if err != nil {
		return pagination.Page[model.User]{}, fmt.Errorf("failed to search users: %w", err)
	}
	return pagination.NewPage(users, total, filter.Page), nil
}

func (s *userService) ListUsers(ctx context.Context, filter repository.UserListFilter) (pagination.Page[model.User], error) {
	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return pagination.Page[model.User]{}, fmt.Errorf("failed to list users: %w", err)
	}
	return pagination.NewPage(users, total, filter.Page), nil
}

func (s *userService) SetRole(ctx context.Context, userID uuid.UUID, role model.Role) (*model.User, error) {
	if !role.Valid() {
		return nil, errorf(ErrValidation, "unknown role %q", role)
	}
	if err := s.userRepo.Update(ctx, userID, map[string]interface{}{"role": role}); err != nil {
		return nil, translate(err, ErrUserNotFound, "update role")
	}
	return s.GetUser(ctx, userID)
}

var _ UserService = (*userService)(nil)
