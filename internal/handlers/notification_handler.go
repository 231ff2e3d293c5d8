package handlers

import (
	"github.com/gin-gonic/gin"

	"skillport_backend/internal/middleware"
	"skillport_backend/internal/services"
)

type NotificationHandler struct {
	*BaseHandler
	notifications *services.NotificationService
}

func NewNotificationHandler(base *BaseHandler, notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{BaseHandler: base, notifications: notifications}
}

func (h *NotificationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/notifications", middleware.AuthMiddleware())
	g.GET("", h.List)
	g.POST("/:id/read", h.MarkRead)
	g.POST("/read-all", h.MarkAllRead)
}

func (h *NotificationHandler) List(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	query := h.ParsePagination(c)
	resp, err := h.notifications.List(userID, &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	if err := h.notifications.MarkRead(c.Param("id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	if err := h.notifications.MarkAllRead(userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}
