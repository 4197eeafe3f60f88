package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/pkg/pagination"
)

type pgRegistrationRepository struct {
	db *gorm.DB
}

func NewPGRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &pgRegistrationRepository{db: db}
}

func (r *pgRegistrationRepository) Create(ctx context.Context, reg *model.Registration) error {
	return r.db.WithContext(ctx).Omit("Hackathon", "User", "Team").Create(reg).Error
}

func (r *pgRegistrationRepository) Get(ctx context.Context, hackathonID, userID uuid.UUID) (*model.Registration, error) {
	var reg model.Registration
	err := r.db.WithContext(ctx).
		Where("hackathon_id = ? AND user_id = ?", hackathonID, userID).
		First(&reg).Error
	if err != nil {
		return nil, err
	}
	return &reg, nil
}

func (r *pgRegistrationRepository) DeleteUnlinked(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Registration{}, "id = ? AND team_id IS NULL", id)
	return res.RowsAffected, res.Error
}

func (r *pgRegistrationRepository) SetTeam(ctx context.Context, hackathonID, userID uuid.UUID, teamID *uuid.UUID) error {
	var value interface{}
	if teamID != nil {
		value = *teamID
	}
	res := r.db.WithContext(ctx).Model(&model.Registration{}).
		Where("hackathon_id = ? AND user_id = ?", hackathonID, userID).
		Update("team_id", value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pgRegistrationRepository) ListByHackathon(
	ctx context.Context, hackathonID uuid.UUID, page pagination.Params,
) ([]model.Registration, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Registration{}).
		Where("hackathon_id = ?", hackathonID).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var regs []model.Registration
	err := base.
		Preload("User").
		Order("registered_at DESC").
		Scopes(pagination.Scope(page)).
		Find(&regs).Error
	return regs, total, err
}

func (r *pgRegistrationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Registration, error) {
	var regs []model.Registration
	err := r.db.WithContext(ctx).
		Preload("Hackathon").
		Where("user_id = ?", userID).
		Order("registered_at DESC").
		Find(&regs).Error
	return regs, err
}
