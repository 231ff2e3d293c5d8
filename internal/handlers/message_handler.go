package handlers

import (
	"github.com/gin-gonic/gin"

	"skillport_backend/internal/middleware"
	"skillport_backend/internal/services"
	"skillport_backend/internal/services/dto"
)

type MessageHandler struct {
	*BaseHandler
	messages *services.MessageService
}

func NewMessageHandler(base *BaseHandler, messages *services.MessageService) *MessageHandler {
	return &MessageHandler{BaseHandler: base, messages: messages}
}

func (h *MessageHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/messages", middleware.AuthMiddleware())
	g.POST("", h.Send)
	g.GET("/unread-count", h.UnreadCount)

	rg.GET("/applications/:id/messages", middleware.AuthMiddleware(), h.GetThread)
}

func (h *MessageHandler) Send(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	var req dto.SendMessageRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	message, err := h.messages.Send(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, message)
}

func (h *MessageHandler) GetThread(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	thread, err := h.messages.GetThread(c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, thread)
}

func (h *MessageHandler) UnreadCount(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	count, err := h.messages.CountUnread(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"unread": count})
}
