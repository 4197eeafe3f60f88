package handler

import (
	"github.com/gin-gonic/gin"

	"hackhub/teamhub/internal/handler/middleware"
	"hackhub/teamhub/internal/service"
	"hackhub/teamhub/pkg/response"
)

type AuthHandler struct {
	authService service.AuthService
	userService service.UserService
}

func NewAuthHandler(authService service.AuthService, userService service.UserService) *AuthHandler {
	return &AuthHandler{authService: authService, userService: userService}
}

type RegisterRequest struct {
	TelegramUsername string `json:"telegram_username" binding:"required"`
	Password         string `json:"password" binding:"required"`
	FullName         string `json:"full_name"`
}

type LoginRequest struct {
	TelegramUsername string `json:"telegram_username" binding:"required"`
	Password         string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), service.RegisterInput{
		Username: req.TelegramUsername,
		Password: req.Password,
		FullName: req.FullName,
	})
	if err != nil {
		respondError(c, err, "registration failed")
		return
	}

	response.Created(c, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	tokenSet, err := h.authService.Login(c.Request.Context(), req.TelegramUsername, req.Password)
	if err != nil {
		respondError(c, err, "login failed")
		return
	}

	response.Success(c, tokenSet)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	tokenSet, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, err, "token refresh failed")
		return
	}

	response.Success(c, tokenSet)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		response.Unauthorized(c, "invalid user context")
		return
	}

	// The body is optional: a bare logout only revokes the access token.
	var req LogoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "invalid request: "+err.Error())
			return
		}
	}

	if err := h.authService.Logout(c.Request.Context(), claims, req.RefreshToken); err != nil {
		respondError(c, err, "logout failed")
		return
	}

	response.Success(c, nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := requireUserID(c)
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
