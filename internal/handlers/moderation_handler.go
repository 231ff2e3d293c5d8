package handlers

import (
	"github.com/gin-gonic/gin"

	"skillport_backend/internal/middleware"
	"skillport_backend/internal/models"
	"skillport_backend/internal/services"
	"skillport_backend/internal/services/dto"
)

type ModerationHandler struct {
	*BaseHandler
	moderation *services.ModerationService
}

func NewModerationHandler(base *BaseHandler, moderation *services.ModerationService) *ModerationHandler {
	return &ModerationHandler{BaseHandler: base, moderation: moderation}
}

func (h *ModerationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/admin",
		middleware.AuthMiddleware(),
		middleware.RequireRoles(string(models.UserRoleAdmin)))

	g.POST("/users/:id/freeze", h.FreezeUser)
	g.POST("/users/:id/unfreeze", h.UnfreezeUser)
	g.PUT("/users/:id/trust-score", h.AdjustTrustScore)
	g.POST("/lessons/:id/review", h.ReviewLesson)
	g.GET("/audit-log", h.ListAuditLog)
}

func (h *ModerationHandler) FreezeUser(c *gin.Context) {
	actorID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	var req dto.FreezeUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	user, err := h.moderation.FreezeUser(actorID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, user)
}

func (h *ModerationHandler) UnfreezeUser(c *gin.Context) {
	actorID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	var req dto.UnfreezeUserRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	user, err := h.moderation.UnfreezeUser(actorID, c.Param("id"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, user)
}

func (h *ModerationHandler) AdjustTrustScore(c *gin.Context) {
	actorID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	var req dto.AdjustTrustScoreRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.moderation.AdjustTrustScore(actorID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ModerationHandler) ReviewLesson(c *gin.Context) {
	actorID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	var req dto.ReviewLessonRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	if err := h.moderation.ReviewLesson(actorID, c.Param("id"), &req); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ModerationHandler) ListAuditLog(c *gin.Context) {
	var query dto.AuditListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}
	logs, meta, err := h.moderation.ListAuditLog(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"logs": logs, "meta": meta})
}
