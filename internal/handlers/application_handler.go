package handlers

import (
	"github.com/gin-gonic/gin"

	"skillport_backend/internal/middleware"
	"skillport_backend/internal/models"
	"skillport_backend/internal/services"
	"skillport_backend/internal/services/dto"
)

type ApplicationHandler struct {
	*BaseHandler
	applications *services.ApplicationService
}

func NewApplicationHandler(base *BaseHandler, applications *services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{BaseHandler: base, applications: applications}
}

func (h *ApplicationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/applications", middleware.AuthMiddleware())
	g.POST("", middleware.RequireRoles(string(models.UserRoleTalent)), h.Apply)
	g.GET("/:id", h.Get)
	g.PUT("/:id/status", middleware.RequireRoles(string(models.UserRoleDirector)), h.SetStatus)
	g.POST("/:id/withdraw", middleware.RequireRoles(string(models.UserRoleTalent)), h.Withdraw)

	rg.GET("/jobs/:id/applications", middleware.AuthMiddleware(),
		middleware.RequireRoles(string(models.UserRoleDirector)), h.ListForJob)
	rg.GET("/my/applications", middleware.AuthMiddleware(),
		middleware.RequireRoles(string(models.UserRoleTalent)), h.ListMine)
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateApplicationRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	application, err := h.applications.Apply(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, application)
}

func (h *ApplicationHandler) Get(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	application, err := h.applications.Get(c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, application)
}

func (h *ApplicationHandler) SetStatus(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateApplicationStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	application, err := h.applications.SetStatus(c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, application)
}

func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	if err := h.applications.Withdraw(c.Param("id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	applications, err := h.applications.ListForJob(c.Param("id"), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, applications)
}

func (h *ApplicationHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	applications, err := h.applications.ListForTalent(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, applications)
}
