package repository

import (
	"context"

	"gorm.io/gorm"
)

// Store groups the repositories that take part in multi-table workflows and
// runs them inside a single database transaction when asked to.
type Store interface {
	Users() UserRepository
	Hackathons() HackathonRepository
	Registrations() RegistrationRepository
	Teams() TeamRepository
	Invitations() InvitationRepository

	// Transaction calls fn with a Store bound to one transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	Transaction(ctx context.Context, fn func(tx Store) error) error
}

type pgStore struct {
	db *gorm.DB
}

func NewPGStore(db *gorm.DB) Store {
	return &pgStore{db: db}
}

func (s *pgStore) Users() UserRepository                 { return NewPGUserRepository(s.db) }
func (s *pgStore) Hackathons() HackathonRepository       { return NewPGHackathonRepository(s.db) }
func (s *pgStore) Registrations() RegistrationRepository { return NewPGRegistrationRepository(s.db) }
func (s *pgStore) Teams() TeamRepository                 { return NewPGTeamRepository(s.db) }
func (s *pgStore) Invitations() InvitationRepository     { return NewPGInvitationRepository(s.db) }

func (s *pgStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgStore{db: tx})
	})
}
