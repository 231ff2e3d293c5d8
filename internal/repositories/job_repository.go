package repositories

import (
	"errors"

	"skillport_backend/internal/models"

	"gorm.io/gorm"
)

var ErrJobNotFound = errors.New("job not found")

type JobFilter struct {
	City     string
	Search   string
	Page     int
	PageSize int
}

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id string) (*models.Job, error)
	Update(job *models.Job) error
	Delete(id string) error
	// ListPublic returns active, non-hidden jobs ordered by visibility
	// weight then recency.
	ListPublic(filter JobFilter) ([]models.Job, int64, error)
	ListByDirector(directorID string) ([]models.Job, error)
	CountActiveByDirector(directorID string) (int64, error)
	CountApplications(jobID string) (int64, error)
}

type JobRepositoryImpl struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &JobRepositoryImpl{db: db}
}

func (r *JobRepositoryImpl) Create(job *models.Job) error {
	return r.db.Create(job).Error
}

func (r *JobRepositoryImpl) FindByID(id string) (*models.Job, error) {
	var job models.Job
	err := r.db.First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (r *JobRepositoryImpl) Update(job *models.Job) error {
	result := r.db.Model(job).Updates(map[string]interface{}{
		"title":             job.Title,
		"description":       job.Description,
		"city":              job.City,
		"payment_min":       job.PaymentMin,
		"payment_max":       job.PaymentMax,
		"status":            job.Status,
		"hidden":            job.Hidden,
		"visibility_weight": job.VisibilityWeight,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) Delete(id string) error {
	result := r.db.Delete(&models.Job{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func (r *JobRepositoryImpl) ListPublic(filter JobFilter) ([]models.Job, int64, error) {
	query := r.db.Model(&models.Job{}).
		Where("status = ? AND hidden = ?", models.JobStatusActive, false)

	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var jobs []models.Job
	offset := (filter.Page - 1) * filter.PageSize
	err := query.
		Order("visibility_weight DESC, created_at DESC").
		Limit(filter.PageSize).Offset(offset).
		Find(&jobs).Error
	return jobs, total, err
}

func (r *JobRepositoryImpl) ListByDirector(directorID string) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.Where("director_id = ?", directorID).Order("created_at DESC").Find(&jobs).Error
	return jobs, err
}

func (r *JobRepositoryImpl) CountActiveByDirector(directorID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Job{}).
		Where("director_id = ? AND status = ?", directorID, models.JobStatusActive).
		Count(&count).Error
	return count, err
}

func (r *JobRepositoryImpl) CountApplications(jobID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Application{}).Where("job_id = ?", jobID).Count(&count).Error
	return count, err
}
