package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/internal/service"
	"hackhub/teamhub/pkg/response"
)

type TeamHandler struct {
	teamService       service.TeamService
	invitationService service.InvitationService
}

func NewTeamHandler(teamService service.TeamService, invitationService service.InvitationService) *TeamHandler {
	return &TeamHandler{teamService: teamService, invitationService: invitationService}
}

type CreateTeamRequest struct {
	HackathonID uuid.UUID `json:"hackathon_id" binding:"required"`
	Name        string    `json:"name" binding:"required,max=128"`
	Description string    `json:"description" binding:"max=4000"`
}

type UpdateTeamRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=128"`
	Description *string `json:"description" binding:"omitempty,max=4000"`
}

type CreateInvitationRequest struct {
	InviteeID uuid.UUID `json:"invitee_id" binding:"required"`
	Message   string    `json:"message" binding:"max=1000"`
}

func (h *TeamHandler) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	team, err := h.teamService.CreateTeam(c.Request.Context(), service.CreateTeamInput{
		HackathonID: req.HackathonID,
		CaptainID:   userID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err, "failed to create team")
		return
	}
	response.Created(c, team)
}

func (h *TeamHandler) Get(c *gin.Context) {
	teamID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	team, err := h.teamService.GetTeam(c.Request.Context(), teamID)
	if err != nil {
		respondError(c, err, "failed to load team")
		return
	}
	response.Success(c, team)
}

func (h *TeamHandler) Update(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	teamID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	team, err := h.teamService.UpdateTeam(c.Request.Context(), teamID, userID, service.TeamPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err, "failed to update team")
		return
	}
	response.Success(c, team)
}

func (h *TeamHandler) Delete(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	teamID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.teamService.DeleteTeam(c.Request.Context(), teamID, userID); err != nil {
		respondError(c, err, "failed to delete team")
		return
	}
	response.Success(c, nil)
}

func (h *TeamHandler) My(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	teams, err := h.teamService.ListUserTeams(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to list teams")
		return
	}
	response.Success(c, teams)
}

func (h *TeamHandler) AddMember(c *gin.Context) {
	requesterID, ok := requireUserID(c)
	if !ok {
		return
	}
	teamID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := uuidParam(c, "user_id")
	if !ok {
		return
	}

	team, err := h.teamService.AddMember(c.Request.Context(), teamID, requesterID, memberID)
	if err != nil {
		respondError(c, err, "failed to add member")
		return
	}
	response.Success(c, team)
}

func (h *TeamHandler) RemoveMember(c *gin.Context) {
	requesterID, ok := requireUserID(c)
	if !ok {
		return
	}
	teamID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	memberID, ok := uuidParam(c, "user_id")
	if !ok {
		return
	}

	if err := h.teamService.RemoveMember(c.Request.Context(), teamID, memberID, requesterID); err != nil {
		respondError(c, err, "failed to remove member")
		return
	}
	response.Success(c, nil)
}

func (h *TeamHandler) Invite(c *gin.Context) {
	inviterID, ok := requireUserID(c)
	if !ok {
		return
	}
	teamID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req CreateInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	inv, err := h.invitationService.CreateInvitation(c.Request.Context(), teamID, inviterID, req.InviteeID, req.Message)
	if err != nil {
		respondError(c, err, "failed to send invitation")
		return
	}
	response.Created(c, inv)
}

func (h *TeamHandler) ListInvitations(c *gin.Context) {
	requesterID, ok := requireUserID(c)
	if !ok {
		return
	}
	teamID, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	status, ok := statusQuery(c)
	if !ok {
		return
	}

	invs, err := h.invitationService.ListForTeam(c.Request.Context(), teamID, requesterID, status)
	if err != nil {
		respondError(c, err, "failed to list invitations")
		return
	}
	response.Success(c, invs)
}

// statusQuery reads an optional ?status= invitation filter.
func statusQuery(c *gin.Context) (*model.InvitationStatus, bool) {
	raw := c.Query("status")
	if raw == "" {
		return nil, true
	}
	status := model.InvitationStatus(raw)
	if !status.Valid() {
		response.BadRequest(c, "invalid status")
		return nil, false
	}
	return &status, true
}
