package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"hackhub/teamhub/internal/model"
	"hackhub/teamhub/internal/repository"
	"hackhub/teamhub/internal/service"
	"hackhub/teamhub/pkg/pagination"
	"hackhub/teamhub/pkg/response"
)

type UserHandler struct {
	userService service.UserService
	limits      pagination.Limits
}

func NewUserHandler(userService service.UserService, limits pagination.Limits) *UserHandler {
	return &UserHandler{userService: userService, limits: limits}
}

type UpdateProfileRequest struct {
	FullName *string         `json:"full_name" binding:"omitempty,max=128"`
	Position *string         `json:"position" binding:"omitempty,max=128"`
	About    *string         `json:"about" binding:"omitempty,max=4000"`
	Contacts *model.Contacts `json:"contacts"`
}

type AddSkillRequest struct {
	SkillName string `json:"skill_name" binding:"required,max=64"`
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required"`
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to load profile")
		return
	}
	response.Success(c, user)
}

func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, service.ProfilePatch{
		FullName: req.FullName,
		Position: req.Position,
		About:    req.About,
		Contacts: req.Contacts,
	})
	if err != nil {
		respondError(c, err, "failed to update profile")
		return
	}
	response.Success(c, user)
}

func (h *UserHandler) ListSkills(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	skills, err := h.userService.ListSkills(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to list skills")
		return
	}
	response.Success(c, skills)
}

func (h *UserHandler) AddSkill(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req AddSkillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	skill, err := h.userService.AddSkill(c.Request.Context(), userID, req.SkillName)
	if err != nil {
		respondError(c, err, "failed to add skill")
		return
	}
	response.Created(c, skill)
}

func (h *UserHandler) RemoveSkill(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.userService.RemoveSkill(c.Request.Context(), userID, c.Param("skill")); err != nil {
		respondError(c, err, "failed to remove skill")
		return
	}
	response.Success(c, nil)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "failed to load user")
		return
	}
	response.Success(c, user)
}

// Search handles GET /users/search?hackathon_id=&skills=go,sql&search=&position=&page=&size=
func (h *UserHandler) Search(c *gin.Context) {
	filter := repository.UserSearchFilter{
		Skills:   splitList(c.QueryArray("skills")),
		Query:    c.Query("search"),
		Position: c.Query("position"),
		Page:     h.limits.FromQuery(c),
	}
	if raw := c.Query("hackathon_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid hackathon_id")
			return
		}
		filter.HackathonID = &id
	}

	page, err := h.userService.SearchUsers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "user search failed")
		return
	}
	response.Success(c, page)
}

func (h *UserHandler) ListUsers(c *gin.Context) {
	filter := repository.UserListFilter{Page: h.limits.FromQuery(c)}
	if raw := c.Query("role"); raw != "" {
		role := model.Role(raw)
		if !role.Valid() {
			response.BadRequest(c, "invalid role")
			return
		}
		filter.Role = &role
	}

	page, err := h.userService.ListUsers(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "failed to list users")
		return
	}
	response.Success(c, page)
}

func (h *UserHandler) SetRole(c *gin.Context) {
	userID, ok := uuidParam(c, "id")
	if !ok {
		return
	}

	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.userService.SetRole(c.Request.Context(), userID, model.Role(req.Role))
	if err != nil {
		respondError(c, err, "failed to update role")
		return
	}
	response.Success(c, user)
}

// splitList accepts both ?skills=a&skills=b and ?skills=a,b.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
