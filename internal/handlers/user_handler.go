package handlers

import (
	"github.com/gin-gonic/gin"

	"skillport_backend/internal/middleware"
	"skillport_backend/internal/models"
	"skillport_backend/internal/services"
	"skillport_backend/internal/services/dto"
)

type UserHandler struct {
	*BaseHandler
	users *services.UserService
}

func NewUserHandler(base *BaseHandler, users *services.UserService) *UserHandler {
	return &UserHandler{BaseHandler: base, users: users}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/users")
	g.GET("/me", middleware.AuthMiddleware(), h.Me)
	g.PUT("/me", middleware.AuthMiddleware(), h.UpdateMe)
	g.GET("/:id", middleware.OptionalAuth(), h.Get)

	admin := rg.Group("/admin/users",
		middleware.AuthMiddleware(),
		middleware.RequireRoles(string(models.UserRoleAdmin)))
	admin.GET("", h.List)
	admin.GET("/:id", h.AdminGet)
}

func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	user, err := h.users.GetProfile(userID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, user)
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := h.GetUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}
	user, err := h.users.UpdateProfile(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, user)
}

func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.users.GetProfile(c.Param("id"), middleware.GetUserID(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, user)
}

func (h *UserHandler) List(c *gin.Context) {
	var query dto.UserListQuery
	if !h.BindAndValidateQuery(c, &query) {
		return
	}
	users, meta, err := h.users.ListUsers(&query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, gin.H{"users": users, "meta": meta})
}

func (h *UserHandler) AdminGet(c *gin.Context) {
	user, err := h.users.GetAdminView(c.Param("id"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	h.OK(c, user)
}
