package model

import "gorm.io/gorm"

// compositeIndexes are created after AutoMigrate. The statements are plain
// SQL understood by both PostgreSQL and SQLite.
var compositeIndexes = []string{
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_user_skills_user_skill " +
		"ON user_skills (user_id, skill_name)",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_hackathon_skills_hackathon_skill " +
		"ON hackathon_skills (hackathon_id, skill_name)",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_registrations_hackathon_user " +
		"ON hackathon_registrations (hackathon_id, user_id)",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_teams_hackathon_name " +
		"ON teams (hackathon_id, name)",
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_team_members_team_user " +
		"ON team_members (team_id, user_id)",
	// One team per user within a hackathon.
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_team_members_hackathon_user " +
		"ON team_members (hackathon_id, user_id)",
	// At most one open invitation per (team, invitee); resolved ones are kept as history.
	"CREATE UNIQUE INDEX IF NOT EXISTS idx_team_invitations_pending " +
		"ON team_invitations (team_id, invitee_id) WHERE status = 'pending'",
}

// AutoMigrate runs GORM auto-migration for all models and creates composite indexes.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&User{},
		&UserSkill{},
		&Hackathon{},
		&HackathonSkill{},
		&Team{},
		&TeamMember{},
		&Registration{},
		&Invitation{},
	); err != nil {
		return err
	}

	for _, stmt := range compositeIndexes {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
