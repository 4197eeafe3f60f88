package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/internal/repository"
	"hackhub/teamhub/internal/service"
	"hackhub/teamhub/pkg/pagination"
	"hackhub/teamhub/pkg/response"
)

type HackathonHandler struct {
	hackathonService service.HackathonService
	teamService      service.TeamService
	limits           pagination.Limits
}

func NewHackathonHandler(
	hackathonService service.HackathonService,
	teamService service.TeamService,
	limits pagination.Limits,
) *HackathonHandler {
	return &HackathonHandler{
		hackathonService: hackathonService,
		teamService:      teamService,
		limits:           limits,
	}
}

type CreateHackathonRequest struct {
	Name        string    `json:"name" binding:"required,max=256"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date" binding:"required"`
	EndDate     time.Time `json:"end_date" binding:"required"`
	Status      string    `json:"status"`
	MinTeamSize int       `json:"min_team_size" binding:"omitempty,min=1"`
	MaxTeamSize int       `json:"max_team_size" binding:"omitempty,min=1"`
}

type UpdateHackathonRequest struct {
	Name        *string    `json:"name" binding:"omitempty,max=256"`
	Description *string    `json:"description"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Status      *string    `json:"status"`
	MinTeamSize *int       `json:"min_team_size"`
	MaxTeamSize *int       `json:"max_team_size"`
}

type AddHackathonSkillRequest struct {
	SkillName string `json:"skill_name" binding:"required,max=64"`
	Priority  int    `json:"priority"`
}

// List handles GET /hackathons?status=&search=&start_from=&start_to=&page=&size=
func (h *HackathonHandler) List(c *gin.Context) {
	filter := repository.HackathonFilter{
		Query: c.Query("search"),
		Page:  h.limits.FromQuery(c),
	}
	if raw := c.Query("status"); raw != "" {
		status := model.HackathonStatus(raw)
		if !status.Valid() {
			response.BadRequest(c, "invalid status")
			return
		}
		filter.Status = &status
	}

	var ok bool
	if filter.StartDateFrom, ok = timeQuery(c, "start_from"); !ok {
		return
	}
	if filter.StartDateTo, ok = timeQuery(c, "start_to"); !ok {
		return
	}

	page, err := h.hackathonService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "failed to list hackathons")
		return
	}
	response.Success(c, page)
}

func (h *HackathonHandler) Get(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	details, err := h.hackathonService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to load hackathon")
		return
	}
	response.Success(c, details)
}

func (h *HackathonHandler) ListSkills(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	skills, err := h.hackathonService.ListSkills(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "failed to list skills")
		return
	}
	response.Success(c, skills)
}

func (h *HackathonHandler) Register(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	reg, err := h.hackathonService.Register(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err, "registration failed")
		return
	}
	response.Created(c, reg)
}

func (h *HackathonHandler) Unregister(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.hackathonService.Unregister(c.Request.Context(), id, userID); err != nil {
		respondError(c, err, "failed to cancel registration")
		return
	}
	response.Success(c, nil)
}

func (h *HackathonHandler) MyRegistrations(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	regs, err := h.hackathonService.ListUserRegistrations(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to list registrations")
		return
	}
	response.Success(c, regs)
}

func (h *HackathonHandler) ListTeams(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	page, err := h.teamService.ListHackathonTeams(c.Request.Context(), id, h.limits.FromQuery(c))
	if err != nil {
		respondError(c, err, "failed to list teams")
		return
	}
	response.Success(c, page)
}

// Admin endpoints

func (h *HackathonHandler) Create(c *gin.Context) {
	var req CreateHackathonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	hackathon, err := h.hackathonService.Create(c.Request.Context(), service.CreateHackathonInput{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      model.HackathonStatus(req.Status),
		MinTeamSize: req.MinTeamSize,
		MaxTeamSize: req.MaxTeamSize,
	})
	if err != nil {
		respondError(c, err, "failed to create hackathon")
		return
	}
	response.Created(c, hackathon)
}

func (h *HackathonHandler) Update(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req UpdateHackathonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	patch := service.HackathonPatch{
		Name:        req.Name,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		MinTeamSize: req.MinTeamSize,
		MaxTeamSize: req.MaxTeamSize,
	}
	if req.Status != nil {
		status := model.HackathonStatus(*req.Status)
		patch.Status = &status
	}

	hackathon, err := h.hackathonService.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondError(c, err, "failed to update hackathon")
		return
	}
	response.Success(c, hackathon)
}

func (h *HackathonHandler) Delete(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	if err := h.hackathonService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "failed to delete hackathon")
		return
	}
	response.Success(c, nil)
}

func (h *HackathonHandler) AddSkill(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req AddHackathonSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	skill, err := h.hackathonService.AddSkill(c.Request.Context(), id, req.SkillName, req.Priority)
	if err != nil {
		respondError(c, err, "failed to add skill")
		return
	}
	response.Created(c, skill)
}

func (h *HackathonHandler) RemoveSkill(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	skillID, ok := uuidParam(c, "skill_id")
	if !ok {
		return
	}

	if err := h.hackathonService.RemoveSkill(c.Request.Context(), id, skillID); err != nil {
		respondError(c, err, "failed to remove skill")
		return
	}
	response.Success(c, nil)
}

func (h *HackathonHandler) ListRegistrations(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	page, err := h.hackathonService.ListRegistrations(c.Request.Context(), id, h.limits.FromQuery(c))
	if err != nil {
		respondError(c, err, "failed to list registrations")
		return
	}
	response.Success(c, page)
}

// timeQuery parses an optional RFC 3339 or YYYY-MM-DD query value.
func timeQuery(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, true
		}
	}
	response.BadRequest(c, "invalid "+name)
	return nil, false
}
