package repositories

import (
	"errors"

	"skillport_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCourseNotFound = errors.New("course not found")
	ErrModuleNotFound = errors.New("course module not found")
	ErrLessonNotFound = errors.New("lesson not found")
)

type CourseRepository interface {
	WithTx(tx *gorm.DB) CourseRepository

	CreateCourse(course *models.Course) error
	// FindCourseByID loads the course with its modules and lessons in
	// display order.
	FindCourseByID(id string) (*models.Course, error)
	UpdateCourse(course *models.Course) error
	SetPublished(courseID string, published bool) error
	ListPublished(page, pageSize int) ([]models.Course, int64, error)
	ListByAuthor(authorID string) ([]models.Course, error)

	CreateModule(module *models.CourseModule) error
	FindModuleByID(id string) (*models.CourseModule, error)
	UpdateModule(module *models.CourseModule) error

	CreateLesson(lesson *models.Lesson) error
	FindLessonByID(id string) (*models.Lesson, error)
	UpdateLesson(lesson *models.Lesson) error
	SaveLessonReview(lesson *models.Lesson) error

	CountUnapprovedLessons(courseID string) (int64, error)
}

type CourseRepositoryImpl struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &CourseRepositoryImpl{db: db}
}

func (r *CourseRepositoryImpl) WithTx(tx *gorm.DB) CourseRepository {
	return &CourseRepositoryImpl{db: tx}
}

func (r *CourseRepositoryImpl) CreateCourse(course *models.Course) error {
	return r.db.Create(course).Error
}

func (r *CourseRepositoryImpl) FindCourseByID(id string) (*models.Course, error) {
	var course models.Course
	err := r.db.
		Preload("Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("course_modules.order_index ASC")
		}).
		Preload("Modules.Lessons", func(db *gorm.DB) *gorm.DB {
			return db.Order("lessons.order_index ASC")
		}).
		First(&course, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepositoryImpl) UpdateCourse(course *models.Course) error {
	result := r.db.Model(course).Updates(map[string]interface{}{
		"title":       course.Title,
		"description": course.Description,
		"price":       course.Price,
		"currency":    course.Currency,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepositoryImpl) SetPublished(courseID string, published bool) error {
	result := r.db.Model(&models.Course{}).Where("id = ?", courseID).Update("published", published)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrCourseNotFound
	}
	return nil
}

func (r *CourseRepositoryImpl) ListPublished(page, pageSize int) ([]models.Course, int64, error) {
	query := r.db.Model(&models.Course{}).Where("published = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var courses []models.Course
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").Limit(pageSize).Offset(offset).Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepositoryImpl) ListByAuthor(authorID string) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.Where("author_id = ?", authorID).Order("created_at DESC").Find(&courses).Error
	return courses, err
}

func (r *CourseRepositoryImpl) CreateModule(module *models.CourseModule) error {
	return r.db.Create(module).Error
}

func (r *CourseRepositoryImpl) FindModuleByID(id string) (*models.CourseModule, error) {
	var module models.CourseModule
	err := r.db.First(&module, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModuleNotFound
		}
		return nil, err
	}
	return &module, nil
}

func (r *CourseRepositoryImpl) UpdateModule(module *models.CourseModule) error {
	result := r.db.Model(module).Updates(map[string]interface{}{
		"title":       module.Title,
		"order_index": module.OrderIndex,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrModuleNotFound
	}
	return nil
}

func (r *CourseRepositoryImpl) CreateLesson(lesson *models.Lesson) error {
	return r.db.Create(lesson).Error
}

func (r *CourseRepositoryImpl) FindLessonByID(id string) (*models.Lesson, error) {
	var lesson models.Lesson
	err := r.db.First(&lesson, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}
	return &lesson, nil
}

func (r *CourseRepositoryImpl) UpdateLesson(lesson *models.Lesson) error {
	result := r.db.Model(lesson).Updates(map[string]interface{}{
		"title":       lesson.Title,
		"content":     lesson.Content,
		"order_index": lesson.OrderIndex,
		// Content edits reset the moderation state back to pending.
		"approved":       false,
		"rejection_note": nil,
		"reviewed_by":    nil,
		"reviewed_at":    nil,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLessonNotFound
	}
	return nil
}

func (r *CourseRepositoryImpl) SaveLessonReview(lesson *models.Lesson) error {
	result := r.db.Model(lesson).Updates(map[string]interface{}{
		"approved":       lesson.Approved,
		"rejection_note": lesson.RejectionNote,
		"reviewed_by":    lesson.ReviewedBy,
		"reviewed_at":    lesson.ReviewedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLessonNotFound
	}
	return nil
}

func (r *CourseRepositoryImpl) CountUnapprovedLessons(courseID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Lesson{}).
		Joins("JOIN course_modules ON course_modules.id = lessons.module_id").
		Where("course_modules.course_id = ? AND lessons.approved = ?", courseID, false).
		Count(&count).Error
	return count, err
}
