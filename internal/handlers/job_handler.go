package handlers

import (
	"github.com/gin-gonic/gin"

	"skillport_backend/internal/middleware"
	"skillport_backend/internal/models"
	"skillport_backend/internal/services"
	"skillport_backend/internal/services/dto"
)

type JobHandler struct {
	*BaseHandler
	jobs *services.JobService
}

func NewJobHandler(base *BaseHandler, jobs *services.JobService) *JobHandler {
	return &JobHandler{BaseHandler: base, jobs: jobs}
}

func (h *JobHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/jobs")
	g.GET("", h.ListPublic)
	g.GET("/:id", middleware.OptionalAuth(), h.Get)

	director := g.Group("", middleware.AuthMiddleware(),
		middleware.RequireRoles(string(models.UserRoleDirector)))
	director.POST("", h.Create)
	director.PUT("/:id", h.Update)
	director.DELETE("/:id", h.Delete)

	rg.GET("/my/jobs", middleware.AuthMiddleware(),
		middleware.RequireRoles(string(models.UserRoleDirector)), h.ListMine)
}

func (h *JobHandler) Create(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	job, err := h.jobs.Create(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, job)
}

func (h *JobHandler) Update(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateJobRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	job, err := h.jobs.Update(c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, job)
}

func (h *JobHandler) Get(c *gin.Context) {
	job, err := h.jobs.Get(c.Param("id"), middleware.GetUserID(c), h.GetUserRole(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	if err := h.jobs.Delete(c.Param("id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *JobHandler) ListPublic(c *gin.Context) {
	var query dto.JobListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}
	resp, err := h.jobs.ListPublic(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *JobHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	jobs, err := h.jobs.ListByDirector(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, jobs)
}
