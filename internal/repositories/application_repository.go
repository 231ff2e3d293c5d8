package repositories

import (
	"errors"

	"skillport_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound  = errors.New("application not found")
	ErrDuplicateApplication = errors.New("application already exists for this job")
)

type ApplicationRepository interface {
	Create(application *models.Application) error
	FindByID(id string) (*models.Application, error)
	FindByJobAndTalent(jobID, talentID string) (*models.Application, error)
	ListByJob(jobID string) ([]models.Application, error)
	ListByTalent(talentID string) ([]models.Application, error)
	UpdateStatus(id string, status models.ApplicationStatus) error
}

type ApplicationRepositoryImpl struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &ApplicationRepositoryImpl{db: db}
}

func (r *ApplicationRepositoryImpl) Create(application *models.Application) error {
	var existing models.Application
	err := r.db.Where("job_id = ? AND talent_id = ?", application.JobID, application.TalentID).
		First(&existing).Error
	if err == nil {
		return ErrDuplicateApplication
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(application).Error
}

func (r *ApplicationRepositoryImpl) FindByID(id string) (*models.Application, error) {
	var application models.Application
	err := r.db.First(&application, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) FindByJobAndTalent(jobID, talentID string) (*models.Application, error) {
	var application models.Application
	err := r.db.Where("job_id = ? AND talent_id = ?", jobID, talentID).First(&application).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &application, nil
}

func (r *ApplicationRepositoryImpl) ListByJob(jobID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.Where("job_id = ?", jobID).Order("created_at DESC").Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) ListByTalent(talentID string) ([]models.Application, error) {
	var applications []models.Application
	err := r.db.Where("talent_id = ?", talentID).Order("created_at DESC").Find(&applications).Error
	return applications, err
}

func (r *ApplicationRepositoryImpl) UpdateStatus(id string, status models.ApplicationStatus) error {
	result := r.db.Model(&models.Application{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}
