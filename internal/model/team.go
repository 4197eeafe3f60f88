package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MemberRole string

const (
	MemberRoleCaptain MemberRole = "captain"
	MemberRoleMember  MemberRole = "member"
)

type Team struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HackathonID uuid.UUID `gorm:"type:uuid;not null;index" json:"hackathon_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name"`
	Description string    `gorm:"type:text;not null;default:''" json:"description"`
	CaptainID   uuid.UUID `gorm:"type:uuid;not null;index" json:"captain_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Captain User         `gorm:"foreignKey:CaptainID" json:"-"`
	Members []TeamMember `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Team) TableName() string { return "teams" }

func (t *Team) BeforeCreate(*gorm.DB) error {
	assignID(&t.ID)
	return nil
}

// TeamMember carries the team's hackathon so that the store can reject a
// second membership of the same user within one hackathon.
type TeamMember struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	TeamID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"team_id"`
	HackathonID uuid.UUID  `gorm:"type:uuid;not null" json:"hackathon_id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Role        MemberRole `gorm:"type:varchar(16);not null;default:'member'" json:"role"`
	JoinedAt    time.Time  `gorm:"autoCreateTime" json:"joined_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (TeamMember) TableName() string { return "team_members" }

func (m *TeamMember) BeforeCreate(*gorm.DB) error {
	assignID(&m.ID)
	if m.Role == "" {
		m.Role = MemberRoleMember
	}
	return nil
}

type InvitationStatus string

const (
	InvitationStatusPending  InvitationStatus = "pending"
	InvitationStatusAccepted InvitationStatus = "accepted"
	InvitationStatusRejected InvitationStatus = "rejected"
)

func (s InvitationStatus) Valid() bool {
	switch s {
	case InvitationStatusPending, InvitationStatusAccepted, InvitationStatusRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed from s.
func (s InvitationStatus) Terminal() bool {
	return s == InvitationStatusAccepted || s == InvitationStatusRejected
}

type Invitation struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	TeamID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"team_id"`
	InviterID uuid.UUID        `gorm:"type:uuid;not null" json:"inviter_id"`
	InviteeID uuid.UUID        `gorm:"type:uuid;not null;index" json:"invitee_id"`
	Status    InvitationStatus `gorm:"type:varchar(16);not null;default:'pending'" json:"status"`
	Message   string           `gorm:"type:text;not null;default:''" json:"message"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`

	Team    *Team `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"-"`
	Inviter *User `gorm:"foreignKey:InviterID" json:"-"`
	Invitee *User `gorm:"foreignKey:InviteeID" json:"-"`
}

func (Invitation) TableName() string { return "team_invitations" }

func (i *Invitation) BeforeCreate(*gorm.DB) error {
	assignID(&i.ID)
	if i.Status == "" {
		i.Status = InvitationStatusPending
	}
	return nil
}
