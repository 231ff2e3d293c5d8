package dto

import (
	"time"

	"skillport_backend/internal/models"
)

type CreateCourseRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=200"`
	Description string `json:"description" validate:"omitempty,max=5000"`
	Price       int64  `json:"price" validate:"min=0"`
	Currency    string `json:"currency" validate:"omitempty,len=3"`
}

type UpdateCourseRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Price       *int64  `json:"price" validate:"omitempty,min=0"`
}

type CreateModuleRequest struct {
	Title      string `json:"title" validate:"required,min=1,max=200"`
	OrderIndex int    `json:"order_index" validate:"min=0"`
}

type CreateLessonRequest struct {
	Title      string `json:"title" validate:"required,min=1,max=200"`
	Content    string `json:"content" validate:"required"`
	OrderIndex int    `json:"order_index" validate:"min=0"`
}

type UpdateLessonRequest struct {
	Title      *string `json:"title" validate:"omitempty,min=1,max=200"`
	Content    *string `json:"content" validate:"omitempty"`
	OrderIndex *int    `json:"order_index" validate:"omitempty,min=0"`
}

type CourseResponse struct {
	ID          string           `json:"id"`
	AuthorID    string           `json:"author_id"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Price       int64            `json:"price"`
	Currency    string           `json:"currency"`
	Published   bool             `json:"published"`
	Modules     []ModuleResponse `json:"modules,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

type ModuleResponse struct {
	ID         string           `json:"id"`
	Title      string           `json:"title"`
	OrderIndex int              `json:"order_index"`
	Lessons    []LessonResponse `json:"lessons,omitempty"`
}

type LessonResponse struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Content    string `json:"content,omitempty"`
	OrderIndex int    `json:"order_index"`

	// Moderation fields, present only for the author and admins.
	Approved      *bool   `json:"approved,omitempty"`
	RejectionNote *string `json:"rejection_note,omitempty"`
}

// ToCourseResponse projects a course. When forOwner is false, lessons
// still pending or rejected are omitted entirely and moderation fields
// are stripped from the rest.
func ToCourseResponse(c *models.Course, forOwner bool) CourseResponse {
	resp := CourseResponse{
		ID:          c.ID,
		AuthorID:    c.AuthorID,
		Title:       c.Title,
		Description: c.Description,
		Price:       c.Price,
		Currency:    c.Currency,
		Published:   c.Published,
		CreatedAt:   c.CreatedAt,
	}
	for _, m := range c.Modules {
		mod := ModuleResponse{ID: m.ID, Title: m.Title, OrderIndex: m.OrderIndex}
		for _, l := range m.Lessons {
			if !forOwner && !l.Approved {
				continue
			}
			lr := LessonResponse{
				ID:         l.ID,
				Title:      l.Title,
				Content:    l.Content,
				OrderIndex: l.OrderIndex,
			}
			if forOwner {
				approved := l.Approved
				lr.Approved = &approved
				lr.RejectionNote = l.RejectionNote
			}
			mod.Lessons = append(mod.Lessons, lr)
		}
		resp.Modules = append(resp.Modules, mod)
	}
	return resp
}

type CourseListResponse struct {
	Courses []CourseResponse `json:"courses"`
	Meta    ListMeta         `json:"meta"`
}
