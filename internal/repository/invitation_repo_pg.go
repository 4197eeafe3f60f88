package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hackhub/teamhub/internal/model"
)

type pgInvitationRepository struct {
	db *gorm.DB
}

func NewPGInvitationRepository(db *gorm.DB) InvitationRepository {
	return &pgInvitationRepository{db: db}
}

func (r *pgInvitationRepository) Create(ctx context.Context, inv *model.Invitation) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(inv).Error
}

func (r *pgInvitationRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	var inv model.Invitation
	if err := r.db.WithContext(ctx).First(&inv, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *pgInvitationRepository) GetDetails(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	var inv model.Invitation
	err := r.db.WithContext(ctx).
		Preload("Team").
		Preload("Inviter").
		Preload("Invitee").
		First(&inv, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *pgInvitationRepository) LockByID(ctx context.Context, id uuid.UUID) (*model.Invitation, error) {
	var inv model.Invitation
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&inv, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (r *pgInvitationRepository) HasPending(ctx context.Context, teamID, inviteeID uuid.UUID) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Invitation{}).
		Where("team_id = ? AND invitee_id = ? AND status = ?", teamID, inviteeID, model.InvitationStatusPending).
		Count(&n).Error
	return n > 0, err
}

func (r *pgInvitationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.InvitationStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Invitation{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pgInvitationRepository) List(ctx context.Context, filter InvitationFilter) ([]model.Invitation, error) {
	query := r.db.WithContext(ctx).
		Preload("Team").
		Preload("Inviter").
		Preload("Invitee")

	if filter.TeamID != nil {
		query = query.Where("team_id = ?", *filter.TeamID)
	}
	if filter.InviteeID != nil {
		query = query.Where("invitee_id = ?", *filter.InviteeID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var invitations []model.Invitation
	err := query.Order("created_at DESC").Find(&invitations).Error
	return invitations, err
}
