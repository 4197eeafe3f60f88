package service

import (
	"time"

	"github.com/google/uuid"

	"hackhub/teamhub/internal/model"
)

// MemberView is one roster entry of a team.
type MemberView struct {
	ID               uuid.UUID        `json:"id"`
	UserID           uuid.UUID        `json:"user_id"`
	Role             model.MemberRole `json:"role"`
	JoinedAt         time.Time        `json:"joined_at"`
	TelegramUsername string           `json:"telegram_username"`
	FullName         string           `json:"full_name"`
	Position         string           `json:"position"`
}

// TeamDetails is a team with its captain and roster.
type TeamDetails struct {
	ID              uuid.UUID    `json:"id"`
	HackathonID     uuid.UUID    `json:"hackathon_id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	CaptainID       uuid.UUID    `json:"captain_id"`
	CaptainUsername string       `json:"captain_telegram_username"`
	MemberCount     int          `json:"member_count"`
	Members         []MemberView `json:"members"`
	CreatedAt       time.Time    `json:"created_at"`
	UpdatedAt       time.Time    `json:"updated_at"`
}

func newTeamDetails(t *model.Team) TeamDetails {
	members := make([]MemberView, 0, len(t.Members))
	for _, m := range t.Members {
		members = append(members, MemberView{
			ID:               m.ID,
			UserID:           m.UserID,
			Role:             m.Role,
			JoinedAt:         m.JoinedAt,
			TelegramUsername: m.User.TelegramUsername,
			FullName:         m.User.FullName,
			Position:         m.User.Position,
		})
	}
	return TeamDetails{
		ID:              t.ID,
		HackathonID:     t.HackathonID,
		Name:            t.Name,
		Description:     t.Description,
		CaptainID:       t.CaptainID,
		CaptainUsername: t.Captain.TelegramUsername,
		MemberCount:     len(members),
		Members:         members,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}

func newTeamDetailsList(teams []model.Team) []TeamDetails {
	out := make([]TeamDetails, 0, len(teams))
	for i := range teams {
		out = append(out, newTeamDetails(&teams[i]))
	}
	return out
}

// InvitationView is an invitation with the names a client needs to render it.
type InvitationView struct {
	ID              uuid.UUID              `json:"id"`
	TeamID          uuid.UUID              `json:"team_id"`
	TeamName        string                 `json:"team_name"`
	HackathonID     uuid.UUID              `json:"hackathon_id"`
	InviterID       uuid.UUID              `json:"inviter_id"`
	InviterUsername string                 `json:"inviter_telegram_username"`
	InviteeID       uuid.UUID              `json:"invitee_id"`
	InviteeUsername string                 `json:"invitee_telegram_username"`
	Status          model.InvitationStatus `json:"status"`
	Message         string                 `json:"message"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

func newInvitationView(inv *model.Invitation) InvitationView {
	v := InvitationView{
		ID:        inv.ID,
		TeamID:    inv.TeamID,
		InviterID: inv.InviterID,
		InviteeID: inv.InviteeID,
		Status:    inv.Status,
		Message:   inv.Message,
		CreatedAt: inv.CreatedAt,
		UpdatedAt: inv.UpdatedAt,
	}
	if inv.Team != nil {
		v.TeamName = inv.Team.Name
		v.HackathonID = inv.Team.HackathonID
	}
	if inv.Inviter != nil {
		v.InviterUsername = inv.Inviter.TelegramUsername
	}
	if inv.Invitee != nil {
		v.InviteeUsername = inv.Invitee.TelegramUsername
	}
	return v
}

func newInvitationViews(invs []model.Invitation) []InvitationView {
	out := make([]InvitationView, 0, len(invs))
	for i := range invs {
		out = append(out, newInvitationView(&invs[i]))
	}
	return out
}

// HackathonDetails is a hackathon with its participation counters.
type HackathonDetails struct {
	model.Hackathon
	RegistrationCount int64 `json:"registration_count"`
	TeamCount         int64 `json:"team_count"`
}
