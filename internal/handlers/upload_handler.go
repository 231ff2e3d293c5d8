package handlers

import (
	"github.com/gin-gonic/gin"

	"skillport_backend/internal/middleware"
	"skillport_backend/internal/services"
	"skillport_backend/pkg/apperrors"
)

type UploadHandler struct {
	*BaseHandler
	uploads *services.UploadService
}

func NewUploadHandler(base *BaseHandler, uploads *services.UploadService) *UploadHandler {
	return &UploadHandler{BaseHandler: base, uploads: uploads}
}

func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/uploads", middleware.AuthMiddleware())
	g.POST("", h.Upload)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
}

func (h *UploadHandler) Upload(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	header, err := c.FormFile("file")
	if err != nil {
		h.HandleServiceError(c, apperrors.NewBadRequestError("A file is required under the 'file' field"))
		return
	}
	upload, err := h.uploads.Upload(c.Request.Context(), userID, header)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, upload)
}

func (h *UploadHandler) Get(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	upload, err := h.uploads.Get(c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, upload)
}

func (h *UploadHandler) List(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	uploads, err := h.uploads.ListByUser(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, uploads)
}
