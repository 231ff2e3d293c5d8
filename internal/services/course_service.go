package services

import (
	"time"

	"skillport_backend/internal/models"
	"skillport_backend/internal/repositories"
	"skillport_backend/internal/services/dto"
	"skillport_backend/pkg/apperrors"
)

type CourseService struct {
	courseRepo  repositories.CourseRepository
	userRepo    repositories.UserRepository
	paymentRepo repositories.PaymentRepository
	currency    string
}

func NewCourseService(
	courseRepo repositories.CourseRepository,
	userRepo repositories.UserRepository,
	paymentRepo repositories.PaymentRepository,
	currency string,
) *CourseService {
	return &CourseService{
		courseRepo:  courseRepo,
		userRepo:    userRepo,
		paymentRepo: paymentRepo,
		currency:    currency,
	}
}

// requireNotRestricted loads the author and rejects when the account is
// currently frozen. An expired freeze passes.
func (s *CourseService) requireNotRestricted(userID string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if user.Restricted(time.Now()) {
		return apperrors.ErrAccountFrozen
	}
	return nil
}

func (s *CourseService) CreateCourse(authorID string, req *dto.CreateCourseRequest) (*dto.CourseResponse, error) {
	if err := s.requireNotRestricted(authorID); err != nil {
		return nil, err
	}

	currency := req.Currency
	if currency == "" {
		currency = s.currency
	}

	course := &models.Course{
		AuthorID:    authorID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Currency:    currency,
	}
	if err := s.courseRepo.CreateCourse(course); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToCourseResponse(course, true)
	return &resp, nil
}

func (s *CourseService) UpdateCourse(courseID, requesterID string, req *dto.UpdateCourseRequest) (*dto.CourseResponse, error) {
	course, err := s.findOwnedCourse(courseID, requesterID)
	if err != nil {
		return nil, err
	}
	if err := s.requireNotRestricted(requesterID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Price != nil {
		course.Price = *req.Price
	}

	if err := s.courseRepo.UpdateCourse(course); err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := dto.ToCourseResponse(course, true)
	return &resp, nil
}

// GetCourse returns a course. The author, admins and enrolled users see
// full content; everyone else sees only approved lessons, and drafts are
// hidden entirely.
func (s *CourseService) GetCourse(courseID, requesterID, requesterRole string) (*dto.CourseResponse, error) {
	course, err := s.courseRepo.FindCourseByID(courseID)
	if err != nil {
		if err == repositories.ErrCourseNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	isOwner := requesterID != "" && course.AuthorID == requesterID
	isAdmin := requesterRole == string(models.UserRoleAdmin)

	if !course.Published && !isOwner && !isAdmin {
		return nil, apperrors.NewNotFoundError("course", "Course not found")
	}

	full := isOwner || isAdmin
	resp := dto.ToCourseResponse(course, full)

	// Lesson content is paywalled: non-enrolled visitors get the outline
	// of approved lessons without their bodies.
	if !full {
		enrolled := false
		if requesterID != "" {
			enrolled, err = s.paymentRepo.EnrollmentExists(requesterID, courseID)
			if err != nil {
				return nil, apperrors.InternalError(err)
			}
		}
		if !enrolled {
			for mi := range resp.Modules {
				for li := range resp.Modules[mi].Lessons {
					resp.Modules[mi].Lessons[li].Content = ""
				}
			}
		}
	}

	return &resp, nil
}

func (s *CourseService) ListPublished(query *dto.PaginationQuery) (*dto.CourseListResponse, error) {
	query.Normalize()
	courses, total, err := s.courseRepo.ListPublished(query.Page, query.Limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.CourseListResponse{
		Courses: make([]dto.CourseResponse, 0, len(courses)),
		Meta:    dto.ListMeta{Page: query.Page, Limit: query.Limit, Total: total},
	}
	for i := range courses {
		resp.Courses = append(resp.Courses, dto.ToCourseResponse(&courses[i], false))
	}
	return resp, nil
}

func (s *CourseService) ListByAuthor(authorID string) ([]dto.CourseResponse, error) {
	courses, err := s.courseRepo.ListByAuthor(authorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		resp = append(resp, dto.ToCourseResponse(&courses[i], true))
	}
	return resp, nil
}

// Publish flips a course live. Every lesson must already be approved.
func (s *CourseService) Publish(courseID, requesterID string) error {
	if _, err := s.findOwnedCourse(courseID, requesterID); err != nil {
		return err
	}
	if err := s.requireNotRestricted(requesterID); err != nil {
		return err
	}

	pending, err := s.courseRepo.CountUnapprovedLessons(courseID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if pending > 0 {
		return apperrors.NewBadRequestError("All lessons must be approved before publishing")
	}

	if err := s.courseRepo.SetPublished(courseID, true); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CourseService) Unpublish(courseID, requesterID string) error {
	if _, err := s.findOwnedCourse(courseID, requesterID); err != nil {
		return err
	}
	if err := s.courseRepo.SetPublished(courseID, false); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *CourseService) AddModule(courseID, requesterID string, req *dto.CreateModuleRequest) (*dto.ModuleResponse, error) {
	if _, err := s.findOwnedCourse(courseID, requesterID); err != nil {
		return nil, err
	}
	if err := s.requireNotRestricted(requesterID); err != nil {
		return nil, err
	}

	module := &models.CourseModule{
		CourseID:   courseID,
		Title:      req.Title,
		OrderIndex: req.OrderIndex,
	}
	if err := s.courseRepo.CreateModule(module); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.ModuleResponse{ID: module.ID, Title: module.Title, OrderIndex: module.OrderIndex}, nil
}

func (s *CourseService) AddLesson(moduleID, requesterID string, req *dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	module, err := s.courseRepo.FindModuleByID(moduleID)
	if err != nil {
		if err == repositories.ErrModuleNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if _, err := s.findOwnedCourse(module.CourseID, requesterID); err != nil {
		return nil, err
	}
	if err := s.requireNotRestricted(requesterID); err != nil {
		return nil, err
	}

	lesson := &models.Lesson{
		ModuleID:   moduleID,
		Title:      req.Title,
		Content:    req.Content,
		OrderIndex: req.OrderIndex,
	}
	if err := s.courseRepo.CreateLesson(lesson); err != nil {
		return nil, apperrors.InternalError(err)
	}

	approved := lesson.Approved
	return &dto.LessonResponse{
		ID:         lesson.ID,
		Title:      lesson.Title,
		Content:    lesson.Content,
		OrderIndex: lesson.OrderIndex,
		Approved:   &approved,
	}, nil
}

// UpdateLesson edits lesson content. The repository resets moderation
// state back to pending on every content update.
func (s *CourseService) UpdateLesson(lessonID, requesterID string, req *dto.UpdateLessonRequest) (*dto.LessonResponse, error) {
	lesson, err := s.courseRepo.FindLessonByID(lessonID)
	if err != nil {
		if err == repositories.ErrLessonNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	module, err := s.courseRepo.FindModuleByID(lesson.ModuleID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if _, err := s.findOwnedCourse(module.CourseID, requesterID); err != nil {
		return nil, err
	}
	if err := s.requireNotRestricted(requesterID); err != nil {
		return nil, err
	}

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.Content != nil {
		lesson.Content = *req.Content
	}
	if req.OrderIndex != nil {
		lesson.OrderIndex = *req.OrderIndex
	}

	if err := s.courseRepo.UpdateLesson(lesson); err != nil {
		return nil, apperrors.InternalError(err)
	}

	approved := false
	return &dto.LessonResponse{
		ID:         lesson.ID,
		Title:      lesson.Title,
		Content:    lesson.Content,
		OrderIndex: lesson.OrderIndex,
		Approved:   &approved,
	}, nil
}

func (s *CourseService) findOwnedCourse(courseID, requesterID string) (*models.Course, error) {
	course, err := s.courseRepo.FindCourseByID(courseID)
	if err != nil {
		if err == repositories.ErrCourseNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if course.AuthorID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return course, nil
}
