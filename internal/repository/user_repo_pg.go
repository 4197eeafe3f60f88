package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/pkg/pagination"
)

type pgUserRepository struct {
	db *gorm.DB
}

func NewPGUserRepository(db *gorm.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func preloadSkills(db *gorm.DB) *gorm.DB {
	return db.Order("user_skills.skill_name ASC")
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Omit("Skills").Create(user).Error
}

func (r *pgUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Preload("Skills", preloadSkills).
		First(&user, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *pgUserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, "telegram_username = ?", username).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *pgUserRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	res := r.db.WithContext(ctx).Model(&model.User{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *pgUserRepository) List(ctx context.Context, filter UserListFilter) ([]model.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.User{})
	if filter.Role != nil {
		query = query.Where("role = ?", *filter.Role)
	}
	base := query.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := base.
		Order("created_at DESC").
		Scopes(pagination.Scope(filter.Page)).
		Find(&users).Error
	return users, total, err
}

func (r *pgUserRepository) Search(ctx context.Context, filter UserSearchFilter) ([]model.User, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.User{})

	if filter.HackathonID != nil {
		registered := r.db.Model(&model.Registration{}).
			Select("user_id").
			Where("hackathon_id = ?", *filter.HackathonID)
		query = query.Where("users.id IN (?)", registered)
	}

	if skills := normalizeSkills(filter.Skills); len(skills) > 0 {
		holders := r.db.Model(&model.UserSkill{}).
			Select("user_id").
			Where("skill_name IN ?", skills).
			Group("user_id").
			Having("COUNT(DISTINCT skill_name) = ?", len(skills))
		query = query.Where("users.id IN (?)", holders)
	}

	if q := strings.TrimSpace(filter.Query); q != "" {
		like := containsPattern(q)
		query = query.Where(
			"(LOWER(users.telegram_username) LIKE ? ESCAPE '\\' OR LOWER(users.full_name) LIKE ? ESCAPE '\\' "+
				"OR LOWER(users.position) LIKE ? ESCAPE '\\' OR LOWER(users.about) LIKE ? ESCAPE '\\')",
			like, like, like, like,
		)
	}

	if p := strings.TrimSpace(filter.Position); p != "" {
		query = query.Where("LOWER(users.position) LIKE ? ESCAPE '\\'", containsPattern(p))
	}

	base := query.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []model.User
	err := base.
		Preload("Skills", preloadSkills).
		Order("users.created_at DESC").
		Scopes(pagination.Scope(filter.Page)).
		Find(&users).Error
	return users, total, err
}

// normalizeSkills trims, drops blanks and de-duplicates so that the HAVING
// count matches the number of distinct skills requested.
func normalizeSkills(skills []string) []string {
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

func (r *pgUserRepository) AddSkill(ctx context.Context, skill *model.UserSkill) error {
	return r.db.WithContext(ctx).Create(skill).Error
}

func (r *pgUserRepository) HasSkill(ctx context.Context, userID uuid.UUID, skillName string) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.UserSkill{}).
		Where("user_id = ? AND skill_name = ?", userID, skillName).
		Count(&n).Error
	return n > 0, err
}

func (r *pgUserRepository) RemoveSkill(ctx context.Context, userID uuid.UUID, skillName string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND skill_name = ?", userID, skillName).
		Delete(&model.UserSkill{})
	return res.RowsAffected, res.Error
}

func (r *pgUserRepository) ListSkills(ctx context.Context, userID uuid.UUID) ([]model.UserSkill, error) {
	var skills []model.UserSkill
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("skill_name ASC").
		Find(&skills).Error
	return skills, err
}
