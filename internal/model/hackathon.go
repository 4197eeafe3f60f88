package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HackathonStatus string

const (
	HackathonStatusRegistration HackathonStatus = "registration"
	HackathonStatusInProgress   HackathonStatus = "in_progress"
	HackathonStatusFinished     HackathonStatus = "finished"
)

func (s HackathonStatus) Valid() bool {
	switch s {
	case HackathonStatusRegistration, HackathonStatusInProgress, HackathonStatusFinished:
		return true
	}
	return false
}

const (
	DefaultMinTeamSize = 1
	DefaultMaxTeamSize = 5
)

type Hackathon struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text;not null;default:''" json:"description"`
	StartDate   time.Time       `gorm:"not null;index" json:"start_date"`
	EndDate     time.Time       `gorm:"not null" json:"end_date"`
	Status      HackathonStatus `gorm:"type:varchar(32);not null;default:'registration';index" json:"status"`
	MinTeamSize int             `gorm:"not null;default:1" json:"min_team_size"`
	MaxTeamSize int             `gorm:"not null;default:5" json:"max_team_size"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Skills []HackathonSkill `gorm:"foreignKey:HackathonID;constraint:OnDelete:CASCADE" json:"skills,omitempty"`
}

func (Hackathon) TableName() string { return "hackathons" }

func (h *Hackathon) BeforeCreate(*gorm.DB) error {
	assignID(&h.ID)
	if h.Status == "" {
		h.Status = HackathonStatusRegistration
	}
	return nil
}

// OpenForTeams reports whether new teams may still form.
func (h *Hackathon) OpenForTeams() bool {
	return h.Status == HackathonStatusRegistration
}

// HackathonSkill is a skill the organisers are looking for, ranked 1 (highest) to 10.
type HackathonSkill struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HackathonID uuid.UUID `gorm:"type:uuid;not null;index" json:"hackathon_id"`
	SkillName   string    `gorm:"type:varchar(64);not null" json:"skill_name"`
	Priority    int       `gorm:"not null;default:1" json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
}

func (HackathonSkill) TableName() string { return "hackathon_skills" }

func (s *HackathonSkill) BeforeCreate(*gorm.DB) error {
	assignID(&s.ID)
	return nil
}

// Registration records that a user takes part in a hackathon. TeamID is set
// while the user belongs to one of the hackathon's teams.
type Registration struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	HackathonID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"hackathon_id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	TeamID       *uuid.UUID `gorm:"type:uuid;index" json:"team_id"`
	RegisteredAt time.Time  `gorm:"autoCreateTime" json:"registered_at"`

	Hackathon *Hackathon `gorm:"foreignKey:HackathonID;constraint:OnDelete:CASCADE" json:"hackathon,omitempty"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Team      *Team      `gorm:"foreignKey:TeamID;constraint:OnDelete:SET NULL" json:"-"`
}

func (Registration) TableName() string { return "hackathon_registrations" }

func (r *Registration) BeforeCreate(*gorm.DB) error {
	assignID(&r.ID)
	return nil
}
