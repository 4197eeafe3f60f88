package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Contacts maps a channel name (email, github, phone...) to a handle.
// Stored as a JSON document.
type Contacts map[string]string

func (c Contacts) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *Contacts) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*c = nil
		return nil
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	default:
		return fmt.Errorf("Contacts.Scan: unsupported type %T", value)
	}
}

type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	TelegramUsername string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"telegram_username"`
	PasswordHash     string    `gorm:"type:varchar(255);not null" json:"-"`
	Role             Role      `gorm:"type:varchar(16);not null;default:'user'" json:"role"`
	FullName         string    `gorm:"type:varchar(128);not null;default:''" json:"full_name"`
	Position         string    `gorm:"type:varchar(128);not null;default:''" json:"position"`
	About            string    `gorm:"type:text;not null;default:''" json:"about"`
	Contacts         Contacts  `gorm:"type:jsonb" json:"contacts"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	Skills []UserSkill `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"skills,omitempty"`
}

func (User) TableName() string { return "users" }

func (u *User) BeforeCreate(*gorm.DB) error {
	assignID(&u.ID)
	if u.Role == "" {
		u.Role = RoleUser
	}
	return nil
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

type UserSkill struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	SkillName string    `gorm:"type:varchar(64);not null" json:"skill_name"`
	CreatedAt time.Time `json:"created_at"`
}

func (UserSkill) TableName() string { return "user_skills" }

func (s *UserSkill) BeforeCreate(*gorm.DB) error {
	assignID(&s.ID)
	return nil
}

func assignID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
