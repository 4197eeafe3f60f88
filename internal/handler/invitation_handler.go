package handler

import (
	"github.com/gin-gonic/gin"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/internal/service"
	"hackhub/teamhub/pkg/response"
)

type InvitationHandler struct {
	invitationService service.InvitationService
}

func NewInvitationHandler(invitationService service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationService: invitationService}
}

type ResolveInvitationRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}

func (h *InvitationHandler) My(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	status, ok := statusQuery(c)
	if !ok {
		return
	}

	invs, err := h.invitationService.ListForUser(c.Request.Context(), userID, status)
	if err != nil {
		respondError(c, err, "failed to list invitations")
		return
	}
	response.Success(c, invs)
}

func (h *InvitationHandler) Resolve(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	invitationID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req ResolveInvitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	inv, err := h.invitationService.ResolveInvitation(c.Request.Context(), invitationID, userID, model.InvitationStatus(req.Status))
	if err != nil {
		respondError(c, err, "failed to process invitation")
		return
	}
	response.Success(c, inv)
}
