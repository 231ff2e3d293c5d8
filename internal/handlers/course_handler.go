package handlers

import (
	"github.com/gin-gonic/gin"

	"skillport_backend/internal/middleware"
	"skillport_backend/internal/services"
	"skillport_backend/internal/services/dto"
)

type CourseHandler struct {
	*BaseHandler
	courses *services.CourseService
}

func NewCourseHandler(base *BaseHandler, courses *services.CourseService) *CourseHandler {
	return &CourseHandler{BaseHandler: base, courses: courses}
}

func (h *CourseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/courses")
	g.GET("", h.ListPublished)
	g.GET("/:id", middleware.OptionalAuth(), h.Get)

	authed := g.Group("", middleware.AuthMiddleware())
	authed.POST("", h.Create)
	authed.PUT("/:id", h.Update)
	authed.POST("/:id/publish", h.Publish)
	authed.POST("/:id/unpublish", h.Unpublish)
	authed.POST("/:id/modules", h.AddModule)

	// A wildcard route on /courses/:id forces the author's own listing
	// onto its own prefix.
	rg.GET("/my/courses", middleware.AuthMiddleware(), h.ListMine)

	modules := rg.Group("/modules", middleware.AuthMiddleware())
	modules.POST("/:id/lessons", h.AddLesson)

	lessons := rg.Group("/lessons", middleware.AuthMiddleware())
	lessons.PUT("/:id", h.UpdateLesson)
}

func (h *CourseHandler) Create(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateCourseRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	course, err := h.courses.CreateCourse(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, course)
}

func (h *CourseHandler) Update(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateCourseRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	course, err := h.courses.UpdateCourse(c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, course)
}

func (h *CourseHandler) Get(c *gin.Context) {
	course, err := h.courses.GetCourse(c.Param("id"), middleware.GetUserID(c), h.GetUserRole(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, course)
}

func (h *CourseHandler) ListPublished(c *gin.Context) {
	query := h.ParsePagination(c)
	resp, err := h.courses.ListPublished(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, resp)
}

func (h *CourseHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	courses, err := h.courses.ListByAuthor(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, courses)
}

func (h *CourseHandler) Publish(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	if err := h.courses.Publish(c.Param("id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *CourseHandler) Unpublish(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	if err := h.courses.Unpublish(c.Param("id"), userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.NoContent(c)
}

func (h *CourseHandler) AddModule(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateModuleRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	module, err := h.courses.AddModule(c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, module)
}

func (h *CourseHandler) AddLesson(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	var req dto.CreateLessonRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	lesson, err := h.courses.AddLesson(c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.Created(c, lesson)
}

func (h *CourseHandler) UpdateLesson(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateLessonRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	lesson, err := h.courses.UpdateLesson(c.Param("id"), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, lesson)
}
