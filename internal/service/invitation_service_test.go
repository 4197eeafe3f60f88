package service_test

import (
	"github.com/google/uuid"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/internal/service"
)

func (s *workflowSuite) TestCreateInvitation_Checks() {
	h := s.createHackathon(5)
	captain := s.createUser("captain")
	member := s.createUser("member")
	invitee := s.createUser("invitee")
	stranger := s.createUser("stranger")
	s.register(h, captain, member, invitee)
	team := s.createTeam(h, captain, "Crew")
	_, err := s.teams.AddMember(s.ctx, team.ID, captain.ID, member.ID)
	s.Require().NoError(err)

	_, err = s.invitations.CreateInvitation(s.ctx, uuid.New(), captain.ID, invitee.ID, "")
	s.ErrorIs(err, service.ErrTeamNotFound)

	_, err = s.invitations.CreateInvitation(s.ctx, team.ID, member.ID, invitee.ID, "")
	s.ErrorIs(err, service.ErrNotCaptain)

	_, err = s.invitations.CreateInvitation(s.ctx, team.ID, captain.ID, captain.ID, "")
	s.ErrorIs(err, service.ErrCannotInviteSelf)
	s.ErrorIs(err, service.ErrValidation)

	_, err = s.invitations.CreateInvitation(s.ctx, team.ID, captain.ID, stranger.ID, "")
	s.ErrorIs(err, service.ErrNotRegistered)

	_, err = s.invitations.CreateInvitation(s.ctx, team.ID, captain.ID, member.ID, "")
	s.ErrorIs(err, service.ErrAlreadyMember)

	inv, err := s.invitations.CreateInvitation(s.ctx, team.ID, captain.ID, invitee.ID, " join us ")
	s.Require().NoError(err)
	s.Equal(model.InvitationStatusPending, inv.Status)
	s.Equal("join us", inv.Message)
	s.Equal("Crew", inv.TeamName)
	s.Equal(h.ID, inv.HackathonID)
	s.Equal("captain", inv.InviterUsername)
	s.Equal("invitee", inv.InviteeUsername)

	_, err = s.invitations.CreateInvitation(s.ctx, team.ID, captain.ID, invitee.ID, "")
	s.ErrorIs(err, service.ErrInvitationExists)
}

func (s *workflowSuite) TestResolveInvitation_Accept() {
	h := s.createHackathon(5)
	captain := s.createUser("captain")
	invitee := s.createUser("invitee")
	s.register(h, captain, invitee)
	team := s.createTeam(h, captain, "Crew")
	inv, err := s.invitations.CreateInvitation(s.ctx, team.ID, captain.ID, invitee.ID, "")
	s.Require().NoError(err)

	resolved, err := s.invitations.ResolveInvitation(s.ctx, inv.ID, invitee.ID, model.InvitationStatusAccepted)
	s.Require().NoError(err)
	s.Equal(model.InvitationStatusAccepted, resolved.Status)

	details, err := s.teams.GetTeam(s.ctx, team.ID)
	s.Require().NoError(err)
	s.Equal(2, details.MemberCount)
	roles := map[uuid.UUID]model.MemberRole{}
	for _, m := range details.Members {
		roles[m.UserID] = m.Role
	}
	s.Equal(model.MemberRoleCaptain, roles[captain.ID])
	s.Equal(model.MemberRoleMember, roles[invitee.ID])

	linked := s.registrationTeam(h, invitee)
	s.Require().NotNil(linked)
	s.Equal(team.ID, *linked)

	// A resolved invitation no longer blocks a new one for the same pair.
	s.Require().NoError(s.teams.RemoveMember(s.ctx, team.ID, invitee.ID, invitee.ID))
	_, err = s.invitations.CreateInvitation(s.ctx, team.ID, captain.ID, invitee.ID, "")
	s.NoError(err)
}

func (s *workflowSuite) TestResolveInvitation_Reject() {
	h := s.createHackathon(5)
	captain := s.createUser("captain")
	invitee := s.createUser("invitee")
	s.register(h, captain, invitee)
	team := s.createTeam(h, captain, "Crew")
	inv, err := s.invitations.CreateInvitation(s.ctx, team.ID, captain.ID, invitee.ID, "")
	s.Require().NoError(err)

	_, err = s.invitations.ResolveInvitation(s.ctx, inv.ID, captain.ID, model.InvitationStatusRejected)
	s.ErrorIs(err, service.ErrNotInvitee)
	s.ErrorIs(err, service.ErrForbidden)

	_, err = s.invitations.ResolveInvitation(s.ctx, inv.ID, invitee.ID, model.InvitationStatusPending)
	s.ErrorIs(err, service.ErrValidation)

	resolved, err := s.invitations.ResolveInvitation(s.ctx, inv.ID, invitee.ID, model.InvitationStatusRejected)
	s.Require().NoError(err)
	s.Equal(model.InvitationStatusRejected, resolved.Status)
	s.Nil(s.registrationTeam(h, invitee))

	_, err = s.invitations.ResolveInvitation(s.ctx, inv.ID, invitee.ID, model.InvitationStatusAccepted)
	s.ErrorIs(err, service.ErrInvitationResolved)
	s.ErrorIs(err, service.ErrInvalidState)

	_, err = s.invitations.ResolveInvitation(s.ctx, uuid.New(), invitee.ID, model.InvitationStatusAccepted)
	s.ErrorIs(err, service.ErrInvitationNotFound)
}

func (s *workflowSuite) TestResolveInvitation_AcceptFullTeamStaysPending() {
	h := s.createHackathon(2)
	captain := s.createUser("captain")
	member := s.createUser("member")
	invitee := s.createUser("invitee")
	s.register(h, captain, member, invitee)
	team := s.createTeam(h, captain, "Pair")

	inv, err := s.invitations.CreateInvitation(s.ctx, team.ID, captain.ID, invitee.ID, "")
	s.Require().NoError(err)
	_, err = s.teams.AddMember(s.ctx, team.ID, captain.ID, member.ID)
	s.Require().NoError(err)

	_, err = s.invitations.ResolveInvitation(s.ctx, inv.ID, invitee.ID, model.InvitationStatusAccepted)
	s.Require().Error(err)
	s.ErrorIs(err, service.ErrConflict)
	s.Contains(err.Error(), "cannot accept invitation")

	s.Equal(model.InvitationStatusPending, s.invitationStatus(inv.ID))
	s.Nil(s.registrationTeam(h, invitee))
	_, err = s.store.Teams().GetMember(s.ctx, team.ID, invitee.ID)
	s.Error(err)

	// Rejecting is still possible afterwards.
	_, err = s.invitations.ResolveInvitation(s.ctx, inv.ID, invitee.ID, model.InvitationStatusRejected)
	s.NoError(err)
}

func (s *workflowSuite) TestResolveInvitation_AcceptWhileInOtherTeam() {
	h := s.createHackathon(5)
	captain := s.createUser("captain")
	invitee := s.createUser("invitee")
	s.register(h, captain, invitee)
	team := s.createTeam(h, captain, "Crew")

	inv, err := s.invitations.CreateInvitation(s.ctx, team.ID, captain.ID, invitee.ID, "")
	s.Require().NoError(err)
	s.createTeam(h, invitee, "Own")

	_, err = s.invitations.ResolveInvitation(s.ctx, inv.ID, invitee.ID, model.InvitationStatusAccepted)
	s.ErrorIs(err, service.ErrAlreadyInTeam)
	s.Equal(model.InvitationStatusPending, s.invitationStatus(inv.ID))
}

func (s *workflowSuite) TestListInvitations() {
	h := s.createHackathon(5)
	captain := s.createUser("captain")
	first := s.createUser("first")
	second := s.createUser("second")
	s.register(h, captain, first, second)
	team := s.createTeam(h, captain, "Crew")

	inv1, err := s.invitations.CreateInvitation(s.ctx, team.ID, captain.ID, first.ID, "")
	s.Require().NoError(err)
	_, err = s.invitations.CreateInvitation(s.ctx, team.ID, captain.ID, second.ID, "")
	s.Require().NoError(err)
	_, err = s.invitations.ResolveInvitation(s.ctx, inv1.ID, first.ID, model.InvitationStatusRejected)
	s.Require().NoError(err)

	mine, err := s.invitations.ListForUser(s.ctx, first.ID, nil)
	s.Require().NoError(err)
	s.Len(mine, 1)

	pending := model.InvitationStatusPending
	mine, err = s.invitations.ListForUser(s.ctx, first.ID, &pending)
	s.Require().NoError(err)
	s.Empty(mine)

	all, err := s.invitations.ListForTeam(s.ctx, team.ID, captain.ID, nil)
	s.Require().NoError(err)
	s.Len(all, 2)

	open, err := s.invitations.ListForTeam(s.ctx, team.ID, captain.ID, &pending)
	s.Require().NoError(err)
	s.Require().Len(open, 1)
	s.Equal(second.ID, open[0].InviteeID)

	_, err = s.invitations.ListForTeam(s.ctx, team.ID, first.ID, nil)
	s.ErrorIs(err, service.ErrNotCaptain)
}
