package handlers

import (
	"github.com/gin-gonic/gin"

	"skillport_backend/internal/middleware"
	"skillport_backend/internal/services"
	"skillport_backend/internal/services/dto"
)

type AuthHandler struct {
	*BaseHandler
	auth *services.AuthService
}

func NewAuthHandler(base *BaseHandler, auth *services.AuthService) *AuthHandler {
	return &AuthHandler{BaseHandler: base, auth: auth}
}

func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/auth")
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
	g.POST("/refresh", h.Refresh)
	g.POST("/logout", h.Logout)
	g.POST("/verify-email", h.VerifyEmail)
	g.POST("/forgot-password", h.ForgotPassword)
	g.POST("/reset-password", h.ResetPassword)
	g.POST("/change-password", middleware.AuthMiddleware(), h.ChangePassword)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	user, err := h.auth.Register(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	resp, err := h.auth.Login(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	tokens, err := h.auth.Refresh(&req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, tokens)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	var req dto.LogoutRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.auth.Logout(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req dto.VerifyEmailRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.auth.VerifyEmail(req.Token); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req dto.ForgotPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.auth.ForgotPassword(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req dto.ResetPasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.auth.ResetPassword(&req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.auth.ChangePassword(userID, &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}
