package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/internal/repository"
	"hackhub/teamhub/internal/service"
	"hackhub/teamhub/internal/testutil"
)

// workflowSuite wires the team, invitation and hackathon services to a fresh database per test.
type workflowSuite struct {
	suite.Suite
	ctx         context.Context
	db          *gorm.DB
	store       repository.Store
	teams       service.TeamService
	invitations service.InvitationService
	hackathons  service.HackathonService
}

func (s *workflowSuite) SetupTest() {
	s.ctx = context.Background()
	s.db = testutil.NewDB(s.T())
	s.store = repository.NewPGStore(s.db)

	logger := zap.NewNop()
	s.teams = service.NewTeamService(s.store, logger)
	s.invitations = service.NewInvitationService(s.store, logger)
	s.hackathons = service.NewHackathonService(s.store, logger)
}

func (s *workflowSuite) createUser(username string) *model.User {
	user := &model.User{
		TelegramUsername: username,
		PasswordHash:     "hashedpassword",
		Contacts:         model.Contacts{},
	}
	s.Require().NoError(s.store.Users().Create(s.ctx, user))
	return user
}

func (s *workflowSuite) createHackathon(maxTeamSize int) *model.Hackathon {
	start := time.Now().UTC().Add(24 * time.Hour)
	h := &model.Hackathon{
		Name:        "hack-" + uuid.NewString()[:8],
		StartDate:   start,
		EndDate:     start.Add(48 * time.Hour),
		Status:      model.HackathonStatusRegistration,
		MinTeamSize: 1,
		MaxTeamSize: maxTeamSize,
	}
	s.Require().NoError(s.store.Hackathons().Create(s.ctx, h))
	return h
}

func (s *workflowSuite) register(h *model.Hackathon, users ...*model.User) {
	for _, u := range users {
		_, err := s.hackathons.Register(s.ctx, h.ID, u.ID)
		s.Require().NoError(err)
	}
}

func (s *workflowSuite) createTeam(h *model.Hackathon, captain *model.User, name string) *service.TeamDetails {
	team, err := s.teams.CreateTeam(s.ctx, service.CreateTeamInput{
		HackathonID: h.ID,
		CaptainID:   captain.ID,
		Name:        name,
	})
	s.Require().NoError(err)
	return team
}

func (s *workflowSuite) registrationTeam(h *model.Hackathon, u *model.User) *uuid.UUID {
	reg, err := s.store.Registrations().Get(s.ctx, h.ID, u.ID)
	s.Require().NoError(err)
	return reg.TeamID
}

func (s *workflowSuite) invitationStatus(id uuid.UUID) model.InvitationStatus {
	inv, err := s.store.Invitations().GetByID(s.ctx, id)
	s.Require().NoError(err)
	return inv.Status
}
