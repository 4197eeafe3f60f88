package service_test

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/internal/repository"
	"hackhub/teamhub/internal/service"
	"hackhub/teamhub/pkg/pagination"
)

func (s *workflowSuite) TestCreateHackathon() {
	start := time.Date(2026, 11, 1, 10, 0, 0, 0, time.UTC)

	_, err := s.hackathons.Create(s.ctx, service.CreateHackathonInput{
		Name: "Backwards", StartDate: start, EndDate: start.Add(-time.Hour),
	})
	s.ErrorIs(err, service.ErrValidation)

	_, err = s.hackathons.Create(s.ctx, service.CreateHackathonInput{
		Name: "Tiny", StartDate: start, EndDate: start, MinTeamSize: 3, MaxTeamSize: 2,
	})
	s.ErrorIs(err, service.ErrValidation)

	h, err := s.hackathons.Create(s.ctx, service.CreateHackathonInput{
		Name: " Autumn Jam ", StartDate: start, EndDate: start.Add(48 * time.Hour),
	})
	s.Require().NoError(err)
	s.Equal("Autumn Jam", h.Name)
	s.Equal(model.HackathonStatusRegistration, h.Status)
	s.Equal(model.DefaultMinTeamSize, h.MinTeamSize)
	s.Equal(model.DefaultMaxTeamSize, h.MaxTeamSize)
}

func (s *workflowSuite) TestRegister() {
	h := s.createHackathon(5)
	user := s.createUser("player")

	reg, err := s.hackathons.Register(s.ctx, h.ID, user.ID)
	s.Require().NoError(err)
	s.Nil(reg.TeamID)

	_, err = s.hackathons.Register(s.ctx, h.ID, user.ID)
	s.ErrorIs(err, service.ErrAlreadyRegistered)

	_, err = s.hackathons.Register(s.ctx, uuid.New(), user.ID)
	s.ErrorIs(err, service.ErrHackathonNotFound)

	status := model.HackathonStatusFinished
	_, err = s.hackathons.Update(s.ctx, h.ID, service.HackathonPatch{Status: &status})
	s.Require().NoError(err)

	late := s.createUser("late")
	_, err = s.hackathons.Register(s.ctx, h.ID, late.ID)
	s.ErrorIs(err, service.ErrHackathonClosed)
}

func (s *workflowSuite) TestUnregister() {
	h := s.createHackathon(5)
	captain := s.createUser("captain")
	solo := s.createUser("solo")
	s.register(h, captain, solo)
	s.createTeam(h, captain, "Crew")

	err := s.hackathons.Unregister(s.ctx, h.ID, captain.ID)
	s.ErrorIs(err, service.ErrRegistrationInTeam)

	s.Require().NoError(s.hackathons.Unregister(s.ctx, h.ID, solo.ID))
	err = s.hackathons.Unregister(s.ctx, h.ID, solo.ID)
	s.ErrorIs(err, service.ErrRegistrationNotFound)
}

func (s *workflowSuite) TestUpdateHackathon_MaxTeamSizeBelowLargestTeam() {
	h := s.createHackathon(3)
	captain := s.createUser("captain")
	a := s.createUser("alpha")
	b := s.createUser("bravo")
	s.register(h, captain, a, b)
	team := s.createTeam(h, captain, "Crew")
	for _, u := range []*model.User{a, b} {
		_, err := s.teams.AddMember(s.ctx, team.ID, captain.ID, u.ID)
		s.Require().NoError(err)
	}

	smaller := 2
	_, err := s.hackathons.Update(s.ctx, h.ID, service.HackathonPatch{MaxTeamSize: &smaller})
	s.ErrorIs(err, service.ErrConflict)
	s.Contains(err.Error(), "3 members")

	got, err := s.store.Hackathons().GetByID(s.ctx, h.ID)
	s.Require().NoError(err)
	s.Equal(3, got.MaxTeamSize)

	same := 3
	updated, err := s.hackathons.Update(s.ctx, h.ID, service.HackathonPatch{MaxTeamSize: &same})
	s.Require().NoError(err)
	s.Equal(3, updated.MaxTeamSize)

	s.Require().NoError(s.teams.RemoveMember(s.ctx, team.ID, b.ID, b.ID))
	updated, err = s.hackathons.Update(s.ctx, h.ID, service.HackathonPatch{MaxTeamSize: &smaller})
	s.Require().NoError(err)
	s.Equal(2, updated.MaxTeamSize)
}

func (s *workflowSuite) TestGetHackathonCounts() {
	h := s.createHackathon(5)
	a := s.createUser("alpha")
	b := s.createUser("bravo")
	s.register(h, a, b)
	s.createTeam(h, a, "Crew")

	details, err := s.hackathons.Get(s.ctx, h.ID)
	s.Require().NoError(err)
	s.EqualValues(2, details.RegistrationCount)
	s.EqualValues(1, details.TeamCount)

	regs, err := s.hackathons.ListRegistrations(s.ctx, h.ID, pagination.Params{Page: 1, Size: 10})
	s.Require().NoError(err)
	s.EqualValues(2, regs.Total)
	s.Require().Len(regs.Items, 2)
	s.NotNil(regs.Items[0].User)

	mine, err := s.hackathons.ListUserRegistrations(s.ctx, a.ID)
	s.Require().NoError(err)
	s.Require().Len(mine, 1)
	s.Require().NotNil(mine[0].Hackathon)
	s.Equal(h.ID, mine[0].Hackathon.ID)
}

func (s *workflowSuite) TestListHackathons() {
	open := s.createHackathon(5)
	closed := s.createHackathon(5)
	status := model.HackathonStatusFinished
	_, err := s.hackathons.Update(s.ctx, closed.ID, service.HackathonPatch{Status: &status})
	s.Require().NoError(err)

	filterStatus := model.HackathonStatusRegistration
	page, err := s.hackathons.List(s.ctx, repository.HackathonFilter{
		Status: &filterStatus,
		Page:   pagination.Params{Page: 1, Size: 10},
	})
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal(open.ID, page.Items[0].ID)

	page, err = s.hackathons.List(s.ctx, repository.HackathonFilter{
		Query: strings.ToUpper(closed.Name),
		Page:  pagination.Params{Page: 1, Size: 10},
	})
	s.Require().NoError(err)
	s.Require().Len(page.Items, 1)
	s.Equal(closed.ID, page.Items[0].ID)
}

func (s *workflowSuite) TestHackathonSkills() {
	h := s.createHackathon(5)

	_, err := s.hackathons.AddSkill(s.ctx, h.ID, "go", 11)
	s.ErrorIs(err, service.ErrValidation)

	low, err := s.hackathons.AddSkill(s.ctx, h.ID, "design", 5)
	s.Require().NoError(err)
	_, err = s.hackathons.AddSkill(s.ctx, h.ID, "go", 0)
	s.Require().NoError(err)

	_, err = s.hackathons.AddSkill(s.ctx, h.ID, "go", 2)
	s.ErrorIs(err, service.ErrSkillExists)

	skills, err := s.hackathons.ListSkills(s.ctx, h.ID)
	s.Require().NoError(err)
	s.Require().Len(skills, 2)
	s.Equal("go", skills[0].SkillName)
	s.Equal(1, skills[0].Priority)

	s.Require().NoError(s.hackathons.RemoveSkill(s.ctx, h.ID, low.ID))
	err = s.hackathons.RemoveSkill(s.ctx, h.ID, low.ID)
	s.ErrorIs(err, service.ErrSkillNotFound)
}

func (s *workflowSuite) TestDeleteHackathon_Cascades() {
	h := s.createHackathon(5)
	captain := s.createUser("captain")
	invitee := s.createUser("invitee")
	s.register(h, captain, invitee)
	team := s.createTeam(h, captain, "Crew")
	_, err := s.invitations.CreateInvitation(s.ctx, team.ID, captain.ID, invitee.ID, "")
	s.Require().NoError(err)
	_, err = s.hackathons.AddSkill(s.ctx, h.ID, "go", 1)
	s.Require().NoError(err)

	s.Require().NoError(s.hackathons.Delete(s.ctx, h.ID))

	_, err = s.hackathons.Get(s.ctx, h.ID)
	s.ErrorIs(err, service.ErrHackathonNotFound)
	_, err = s.teams.GetTeam(s.ctx, team.ID)
	s.ErrorIs(err, service.ErrTeamNotFound)

	regs, err := s.hackathons.ListUserRegistrations(s.ctx, captain.ID)
	s.Require().NoError(err)
	s.Empty(regs)

	err = s.hackathons.Delete(s.ctx, h.ID)
	s.ErrorIs(err, service.ErrHackathonNotFound)
}
