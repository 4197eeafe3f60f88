package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/internal/repository"
	"hackhub/teamhub/pkg/pagination"
)

type CreateHackathonInput struct {
	Name        string
	Description string
	StartDate   time.Time
	EndDate     time.Time
	Status      model.HackathonStatus
	MinTeamSize int
	MaxTeamSize int
}

// HackathonPatch holds the editable hackathon fields. Nil means unchanged.
type HackathonPatch struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
	Status      *model.HackathonStatus
	MinTeamSize *int
	MaxTeamSize *int
}

type HackathonService interface {
	Create(ctx context.Context, in CreateHackathonInput) (*model.Hackathon, error)
	Get(ctx context.Context, id uuid.UUID) (*HackathonDetails, error)
	Update(ctx context.Context, id uuid.UUID, patch HackathonPatch) (*model.Hackathon, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter repository.HackathonFilter) (pagination.Page[model.Hackathon], error)

	Register(ctx context.Context, hackathonID, userID uuid.UUID) (*model.Registration, error)
	Unregister(ctx context.Context, hackathonID, userID uuid.UUID) error
	ListRegistrations(ctx context.Context, hackathonID uuid.UUID, page pagination.Params) (pagination.Page[model.Registration], error)
	ListUserRegistrations(ctx context.Context, userID uuid.UUID) ([]model.Registration, error)

	AddSkill(ctx context.Context, hackathonID uuid.UUID, skillName string, priority int) (*model.HackathonSkill, error)
	RemoveSkill(ctx context.Context, hackathonID, skillID uuid.UUID) error
	ListSkills(ctx context.Context, hackathonID uuid.UUID) ([]model.HackathonSkill, error)
}

type hackathonService struct {
	store            repository.Store
	hackathonRepo    repository.HackathonRepository
	registrationRepo repository.RegistrationRepository
	logger           *zap.Logger
}

func NewHackathonService(store repository.Store, logger *zap.Logger) HackathonService {
	return &hackathonService{
		store:            store,
		hackathonRepo:    store.Hackathons(),
		registrationRepo: store.Registrations(),
		logger:           logger,
	}
}

func validateSchedule(start, end time.Time, minSize, maxSize int) error {
	if end.Before(start) {
		return newError(ErrValidation, "end date must not be before start date")
	}
	if minSize < 1 {
		return newError(ErrValidation, "min team size must be at least 1")
	}
	if maxSize < minSize {
		return newError(ErrValidation, "max team size must not be less than min team size")
	}
	return nil
}

func (s *hackathonService) Create(ctx context.Context, in CreateHackathonInput) (*model.Hackathon, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, newError(ErrValidation, "hackathon name is required")
	}
	if in.Status == "" {
		in.Status = model.HackathonStatusRegistration
	}
	if !in.Status.Valid() {
		return nil, errorf(ErrValidation, "unknown status %q", in.Status)
	}
	if in.MinTeamSize == 0 {
		in.MinTeamSize = model.DefaultMinTeamSize
	}
	if in.MaxTeamSize == 0 {
		in.MaxTeamSize = model.DefaultMaxTeamSize
	}
	if err := validateSchedule(in.StartDate, in.EndDate, in.MinTeamSize, in.MaxTeamSize); err != nil {
		return nil, err
	}

	h := &model.Hackathon{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      in.Status,
		MinTeamSize: in.MinTeamSize,
		MaxTeamSize: in.MaxTeamSize,
	}
	if err := s.hackathonRepo.Create(ctx, h); err != nil {
		return nil, fmt.Errorf("failed to create hackathon: %w", err)
	}

	s.logger.Info("hackathon created", zap.String("hackathon_id", h.ID.String()), zap.String("name", h.Name))
	return h, nil
}

func (s *hackathonService) Get(ctx context.Context, id uuid.UUID) (*HackathonDetails, error) {
	h, err := s.hackathonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrHackathonNotFound, "load hackathon")
	}
	stats, err := s.hackathonRepo.Stats(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}
	return &HackathonDetails{
		Hackathon:         *h,
		RegistrationCount: stats.Registrations,
		TeamCount:         stats.Teams,
	}, nil
}

func (s *hackathonService) Update(ctx context.Context, id uuid.UUID, patch HackathonPatch) (*model.Hackathon, error) {
	var updated bool
	err := s.store.Transaction(ctx, func(tx repository.Store) error {
		// Held until commit; addMember takes a shared lock on the same row.
		h, err := tx.Hackathons().LockByID(ctx, id)
		if err != nil {
			return translate(err, ErrHackathonNotFound, "load hackathon")
		}

		fields := map[string]interface{}{}
		if patch.Name != nil {
			name := strings.TrimSpace(*patch.Name)
			if name == "" {
				return newError(ErrValidation, "hackathon name must not be empty")
			}
			h.Name = name
			fields["name"] = name
		}
		if patch.Description != nil {
			h.Description = strings.TrimSpace(*patch.Description)
			fields["description"] = h.Description
		}
		if patch.StartDate != nil {
			h.StartDate = *patch.StartDate
			fields["start_date"] = h.StartDate
		}
		if patch.EndDate != nil {
			h.EndDate = *patch.EndDate
			fields["end_date"] = h.EndDate
		}
		if patch.Status != nil {
			if !patch.Status.Valid() {
				return errorf(ErrValidation, "unknown status %q", *patch.Status)
			}
			h.Status = *patch.Status
			fields["status"] = h.Status
		}
		if patch.MinTeamSize != nil {
			h.MinTeamSize = *patch.MinTeamSize
			fields["min_team_size"] = h.MinTeamSize
		}
		if patch.MaxTeamSize != nil {
			h.MaxTeamSize = *patch.MaxTeamSize
			fields["max_team_size"] = h.MaxTeamSize
		}
		if len(fields) == 0 {
			return nil
		}
		if err := validateSchedule(h.StartDate, h.EndDate, h.MinTeamSize, h.MaxTeamSize); err != nil {
			return err
		}

		if patch.MaxTeamSize != nil {
			largest, err := tx.Hackathons().LargestTeamSize(ctx, id)
			if err != nil {
				return fmt.Errorf("failed to count team members: %w", err)
			}
			if largest > int64(h.MaxTeamSize) {
				return errorf(ErrConflict, "a team already has %d members, above max team size %d", largest, h.MaxTeamSize)
			}
		}

		if err := tx.Hackathons().Update(ctx, id, fields); err != nil {
			return translate(err, ErrHackathonNotFound, "update hackathon")
		}
		updated = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if updated {
		s.logger.Info("hackathon updated", zap.String("hackathon_id", id.String()))
	}
	h, err := s.hackathonRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, ErrHackathonNotFound, "load hackathon")
	}
	return h, nil
}

func (s *hackathonService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.hackathonRepo.Delete(ctx, id); err != nil {
		return translate(err, ErrHackathonNotFound, "delete hackathon")
	}
	s.logger.Info("hackathon deleted", zap.String("hackathon_id", id.String()))
	return nil
}

func (s *hackathonService) List(ctx context.Context, filter repository.HackathonFilter) (pagination.Page[model.Hackathon], error) {
	items, total, err := s.hackathonRepo.List(ctx, filter)
	if err != nil {
		return pagination.Page[model.Hackathon]{}, fmt.Errorf("failed to list hackathons: %w", err)
	}
	return pagination.NewPage(items, total, filter.Page), nil
}

func (s *hackathonService) Register(ctx context.Context, hackathonID, userID uuid.UUID) (*model.Registration, error) {
	// 1. Hackathon exists and accepts registrations
	h, err := s.hackathonRepo.GetByID(ctx, hackathonID)
	if err != nil {
		return nil, translate(err, ErrHackathonNotFound, "load hackathon")
	}
	if h.Status != model.HackathonStatusRegistration {
		return nil, ErrHackathonClosed
	}

	// 2. Not registered yet
	_, err = s.registrationRepo.Get(ctx, hackathonID, userID)
	if err == nil {
		return nil, ErrAlreadyRegistered
	}
	if !isNotFound(err) {
		return nil, fmt.Errorf("failed to check registration: %w", err)
	}

	// 3. Insert; the unique index settles concurrent duplicates
	reg := &model.Registration{HackathonID: hackathonID, UserID: userID}
	if err := s.registrationRepo.Create(ctx, reg); err != nil {
		return nil, translateWrite(err, ErrAlreadyRegistered, "register")
	}
	return reg, nil
}

func (s *hackathonService) Unregister(ctx context.Context, hackathonID, userID uuid.UUID) error {
	reg, err := s.registrationRepo.Get(ctx, hackathonID, userID)
	if err != nil {
		return translate(err, ErrRegistrationNotFound, "load registration")
	}
	if reg.TeamID != nil {
		return ErrRegistrationInTeam
	}

	// A join committing after the read above leaves team_id set, so the delete matches nothing.
	n, err := s.registrationRepo.DeleteUnlinked(ctx, reg.ID)
	if err != nil {
		return fmt.Errorf("failed to unregister: %w", err)
	}
	if n == 0 {
		return ErrRegistrationInTeam
	}
	return nil
}

func (s *hackathonService) ListRegistrations(
	ctx context.Context, hackathonID uuid.UUID, page pagination.Params,
) (pagination.Page[model.Registration], error) {
	if _, err := s.hackathonRepo.GetByID(ctx, hackathonID); err != nil {
		return pagination.Page[model.Registration]{}, translate(err, ErrHackathonNotFound, "load hackathon")
	}
	regs, total, err := s.registrationRepo.ListByHackathon(ctx, hackathonID, page)
	if err != nil {
		return pagination.Page[model.Registration]{}, fmt.Errorf("failed to list registrations: %w", err)
	}
	return pagination.NewPage(regs, total, page), nil
}

func (s *hackathonService) ListUserRegistrations(ctx context.Context, userID uuid.UUID) ([]model.Registration, error) {
	regs, err := s.registrationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	return regs, nil
}

func (s *hackathonService) AddSkill(
	ctx context.Context, hackathonID uuid.UUID, skillName string, priority int,
) (*model.HackathonSkill, error) {
	skillName = strings.TrimSpace(skillName)
	if skillName == "" {
		return nil, newError(ErrValidation, "skill name is required")
	}
	if priority == 0 {
		priority = 1
	}
	if priority < 1 || priority > 10 {
		return nil, newError(ErrValidation, "priority must be between 1 and 10")
	}

	if _, err := s.hackathonRepo.GetByID(ctx, hackathonID); err != nil {
		return nil, translate(err, ErrHackathonNotFound, "load hackathon")
	}
	has, err := s.hackathonRepo.HasSkill(ctx, hackathonID, skillName)
	if err != nil {
		return nil, fmt.Errorf("failed to check skill: %w", err)
	}
	if has {
		return nil, ErrSkillExists
	}

	skill := &model.HackathonSkill{HackathonID: hackathonID, SkillName: skillName, Priority: priority}
	if err := s.hackathonRepo.AddSkill(ctx, skill); err != nil {
		return nil, translateWrite(err, ErrSkillExists, "add skill")
	}
	return skill, nil
}

func (s *hackathonService) RemoveSkill(ctx context.Context, hackathonID, skillID uuid.UUID) error {
	n, err := s.hackathonRepo.RemoveSkill(ctx, hackathonID, skillID)
	if err != nil {
		return fmt.Errorf("failed to remove skill: %w", err)
	}
	if n == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (s *hackathonService) ListSkills(ctx context.Context, hackathonID uuid.UUID) ([]model.HackathonSkill, error) {
	if _, err := s.hackathonRepo.GetByID(ctx, hackathonID); err != nil {
		return nil, translate(err, ErrHackathonNotFound, "load hackathon")
	}
	skills, err := s.hackathonRepo.ListSkills(ctx, hackathonID)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return skills, nil
}

var _ HackathonService = (*hackathonService)(nil)
