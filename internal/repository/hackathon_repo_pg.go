package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/pkg/pagination"
)

type pgHackathonRepository struct {
	db *gorm.DB
}

func NewPGHackathonRepository(db *gorm.DB) HackathonRepository {
	return &pgHackathonRepository{db: db}
}

func (r *pgHackathonRepository) Create(ctx context.Context, h *model.Hackathon) error {
	return r.db.WithContext(ctx).Omit("Skills").Create(h).Error
}

func (r *pgHackathonRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Hackathon, error) {
	var h model.Hackathon
	if err := r.db.WithContext(ctx).First(&h, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *pgHackathonRepository) LockByID(ctx context.Context, id uuid.UUID) (*model.Hackathon, error) {
	return r.lock(ctx, id, "UPDATE")
}

func (r *pgHackathonRepository) LockShared(ctx context.Context, id uuid.UUID) (*model.Hackathon, error) {
	return r.lock(ctx, id, "SHARE")
}

func (r *pgHackathonRepository) lock(ctx context.Context, id uuid.UUID, strength string) (*model.Hackathon, error) {
	var h model.Hackathon
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: strength}).
		First(&h, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *pgHackathonRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.Hackathon{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pgHackathonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		teamIDs := tx.Model(&model.Team{}).Select("id").Where("hackathon_id = ?", id)

		if err := tx.Where("team_id IN (?)", teamIDs).Delete(&model.Invitation{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hackathon_id = ?", id).Delete(&model.TeamMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hackathon_id = ?", id).Delete(&model.Registration{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hackathon_id = ?", id).Delete(&model.Team{}).Error; err != nil {
			return err
		}
		if err := tx.Where("hackathon_id = ?", id).Delete(&model.HackathonSkill{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.Hackathon{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *pgHackathonRepository) List(ctx context.Context, filter HackathonFilter) ([]model.Hackathon, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Hackathon{})

	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}
	if q := strings.TrimSpace(filter.Query); q != "" {
		like := containsPattern(q)
		query = query.Where("(LOWER(name) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')", like, like)
	}
	if filter.StartDateFrom != nil {
		query = query.Where("start_date >= ?", *filter.StartDateFrom)
	}
	if filter.StartDateTo != nil {
		query = query.Where("start_date <= ?", *filter.StartDateTo)
	}
	base := query.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var hackathons []model.Hackathon
	err := base.
		Order("start_date DESC").
		Scopes(pagination.Scope(filter.Page)).
		Find(&hackathons).Error
	return hackathons, total, err
}

func (r *pgHackathonRepository) Stats(ctx context.Context, id uuid.UUID) (HackathonStats, error) {
	var stats HackathonStats
	db := r.db.WithContext(ctx)
	if err := db.Model(&model.Registration{}).Where("hackathon_id = ?", id).Count(&stats.Registrations).Error; err != nil {
		return stats, err
	}
	if err := db.Model(&model.Team{}).Where("hackathon_id = ?", id).Count(&stats.Teams).Error; err != nil {
		return stats, err
	}
	return stats, nil
}

func (r *pgHackathonRepository) LargestTeamSize(ctx context.Context, id uuid.UUID) (int64, error) {
	db := r.db.WithContext(ctx)
	sizes := db.Model(&model.TeamMember{}).
		Select("COUNT(*) AS members").
		Where("hackathon_id = ?", id).
		Group("team_id")

	var largest int64
	err := db.Table("(?) AS sizes", sizes).
		Select("COALESCE(MAX(members), 0)").
		Scan(&largest).Error
	return largest, err
}

func (r *pgHackathonRepository) AddSkill(ctx context.Context, skill *model.HackathonSkill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

func (r *pgHackathonRepository) HasSkill(ctx context.Context, hackathonID uuid.UUID, skillName string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.HackathonSkill{}).
		Where("hackathon_id = ? AND skill_name = ?", hackathonID, skillName).
		Count(&n).Error
	return n > 0, err
}

func (r *pgHackathonRepository) RemoveSkill(ctx context.Context, hackathonID, skillID uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("id = ? AND hackathon_id = ?", skillID, hackathonID).
		Delete(&model.HackathonSkill{})
	return res.RowsAffected, res.Error
}

func (r *pgHackathonRepository) ListSkills(ctx context.Context, hackathonID uuid.UUID) ([]model.HackathonSkill, error) {
	var skills []model.HackathonSkill
	err := r.db.WithContext(ctx).
		Where("hackathon_id = ?", hackathonID).
		Order("priority ASC, created_at ASC").
		Find(&skills).Error
	return skills, err
}
