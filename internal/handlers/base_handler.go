package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"skillport_backend/internal/middleware"
	"skillport_backend/internal/services/dto"
	"skillport_backend/internal/validator"
	"skillport_backend/pkg/apperrors"
)

// BaseHandler carries the helpers every resource handler embeds.
type BaseHandler struct {
	validator *validator.Validator
	errors    *apperrors.GinErrorHandler
}

func NewBaseHandler(v *validator.Validator, eh *apperrors.GinErrorHandler) *BaseHandler {
	return &BaseHandler{validator: v, errors: eh}
}

// BindAndValidateJSON binds the request body and runs struct validation.
// On failure it writes the 400 response itself and returns false.
func (h *BaseHandler) BindAndValidateJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.errors.HandleGinError(c, apperrors.NewBadRequestError("Invalid request body"))
		return false
	}
	if err := h.validator.Validate(obj); err != nil {
		var ve *validator.ValidationError
		if errors.As(err, &ve) {
			h.errors.HandleGinError(c, apperrors.ValidationError(ve.Errors))
		} else {
			h.errors.HandleGinError(c, apperrors.NewBadRequestError("Validation failed"))
		}
		return false
	}
	return true
}

// BindAndValidateQuery binds query parameters and validates them.
func (h *BaseHandler) BindAndValidateQuery(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.errors.HandleGinError(c, apperrors.NewBadRequestError("Invalid query parameters"))
		return false
	}
	if err := h.validator.Validate(obj); err != nil {
		var ve *validator.ValidationError
		if errors.As(err, &ve) {
			h.errors.HandleGinError(c, apperrors.ValidationError(ve.Errors))
		} else {
			h.errors.HandleGinError(c, apperrors.NewBadRequestError("Validation failed"))
		}
		return false
	}
	return true
}

// HandleServiceError maps a service error onto the HTTP response.
func (h *BaseHandler) HandleServiceError(c *gin.Context, err error) {
	h.errors.HandleGinError(c, err)
}

// GetUserID returns the authenticated user id set by the auth
// middleware. A missing id means the middleware did not run; that is a
// server error, not a client one.
func (h *BaseHandler) GetUserID(c *gin.Context) (string, bool) {
	userID := middleware.GetUserID(c)
	if userID == "" {
		h.errors.HandleGinError(c, apperrors.InternalError(errors.New("no user id in authenticated context")))
		return "", false
	}
	return userID, true
}

// GetUserRole returns the authenticated user's role, empty for
// anonymous requests.
func (h *BaseHandler) GetUserRole(c *gin.Context) string {
	return middleware.GetUserRole(c)
}

// ParsePagination reads page/limit with defaults.
func (h *BaseHandler) ParsePagination(c *gin.Context) dto.PaginationQuery {
	q := dto.PaginationQuery{
		Page:  h.ParseQueryInt(c, "page", 1),
		Limit: h.ParseQueryInt(c, "limit", 20),
	}
	q.Normalize()
	return q
}

func (h *BaseHandler) ParseQueryInt(c *gin.Context, key string, def int) int {
	raw := c.Query(key)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

// OK writes a 200 with the payload under "data".
func (h *BaseHandler) OK(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusOK, gin.H{"data": payload})
}

// Created writes a 201 with the payload under "data".
func (h *BaseHandler) Created(c *gin.Context, payload interface{}) {
	c.JSON(http.StatusCreated, gin.H{"data": payload})
}

// NoContent writes a 204.
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
