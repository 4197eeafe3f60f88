package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/pkg/pagination"
)

type pgTeamRepository struct {
	db *gorm.DB
}

func NewPGTeamRepository(db *gorm.DB) TeamRepository {
	return &pgTeamRepository{db: db}
}

func withRoster(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Captain").
		Preload("Members", func(db *gorm.DB) *gorm.DB {
			return db.Order("team_members.joined_at ASC")
		}).
		Preload("Members.User")
}

func (r *pgTeamRepository) Create(ctx context.Context, team *model.Team) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(team).Error
}

func (r *pgTeamRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	var team model.Team
	if err := r.db.WithContext(ctx).First(&team, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *pgTeamRepository) LockByID(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	var team model.Team
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&team, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *pgTeamRepository) NameTaken(ctx context.Context, hackathonID uuid.UUID, name string, exceptID uuid.UUID) (bool, error) {
	var n int64
	query := r.db.WithContext(ctx).Model(&model.Team{}).
		Where("hackathon_id = ? AND name = ?", hackathonID, name)
	if exceptID != uuid.Nil {
		query = query.Where("id <> ?", exceptID)
	}
	err := query.Count(&n).Error
	return n > 0, err
}

func (r *pgTeamRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Team{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pgTeamRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.Registration{}).
			Where("team_id = ?", id).
			Update("team_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", id).Delete(&model.Invitation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", id).Delete(&model.TeamMember{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Team{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *pgTeamRepository) GetDetails(ctx context.Context, id uuid.UUID) (*model.Team, error) {
	var team model.Team
	if err := r.db.WithContext(ctx).Scopes(withRoster).First(&team, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *pgTeamRepository) ListByHackathon(
	ctx context.Context, hackathonID uuid.UUID, page pagination.Params,
) ([]model.Team, int64, error) {
	base := r.db.WithContext(ctx).Model(&model.Team{}).
		Where("hackathon_id = ?", hackathonID).
		Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var teams []model.Team
	err := base.
		Scopes(withRoster, pagination.Scope(page)).
		Order("teams.created_at DESC").
		Find(&teams).Error
	return teams, total, err
}

func (r *pgTeamRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.Team, error) {
	memberOf := r.db.Model(&model.TeamMember{}).Select("team_id").Where("user_id = ?", userID)

	var teams []model.Team
	err := r.db.WithContext(ctx).
		Scopes(withRoster).
		Where("teams.id IN (?)", memberOf).
		Order("teams.created_at DESC").
		Find(&teams).Error
	return teams, err
}

func (r *pgTeamRepository) AddMember(ctx context.Context, member *model.TeamMember) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(member).Error
}

func (r *pgTeamRepository) GetMember(ctx context.Context, teamID, userID uuid.UUID) (*model.TeamMember, error) {
	var m model.TeamMember
	err := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *pgTeamRepository) FindMembership(ctx context.Context, hackathonID, userID uuid.UUID) (*model.TeamMember, error) {
	var m model.TeamMember
	err := r.db.WithContext(ctx).
		Where("hackathon_id = ? AND user_id = ?", hackathonID, userID).
		First(&m).Error
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *pgTeamRepository) CountMembers(ctx context.Context, teamID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.TeamMember{}).Where("team_id = ?", teamID).Count(&n).Error
	return n, err
}

func (r *pgTeamRepository) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Delete(&model.TeamMember{})
	return res.RowsAffected, res.Error
}
