package services

import (
	"time"

	"skillport_backend/internal/models"
	"skillport_backend/internal/repositories"
	"skillport_backend/internal/services/dto"
	"skillport_backend/pkg/apperrors"
)

type ApplicationService struct {
	applicationRepo repositories.ApplicationRepository
	jobRepo         repositories.JobRepository
	userRepo        repositories.UserRepository
	notifications   *NotificationService
}

func NewApplicationService(
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	notifications *NotificationService,
) *ApplicationService {
	return &ApplicationService{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		notifications:   notifications,
	}
}

// Apply submits one application per talent per job. Duplicates are a
// conflict, not an update.
func (s *ApplicationService) Apply(talentID string, req *dto.CreateApplicationRequest) (*dto.ApplicationResponse, error) {
	talent, err := s.userRepo.FindByID(talentID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if talent.Role != models.UserRoleTalent {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if talent.Restricted(time.Now()) {
		return nil, apperrors.ErrAccountFrozen
	}

	job, err := s.jobRepo.FindByID(req.JobID)
	if err != nil {
		if err == repositories.ErrJobNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if job.Status != models.JobStatusActive || job.Hidden {
		return nil, apperrors.NewBadRequestError("Job is not accepting applications")
	}

	application := &models.Application{
		JobID:    req.JobID,
		TalentID: talentID,
		Answer:   req.Answer,
		MediaURL: req.MediaURL,
		Status:   models.ApplicationStatusPending,
	}
	if err := s.applicationRepo.Create(application); err != nil {
		if err == repositories.ErrDuplicateApplication {
			return nil, apperrors.NewConflictError("application", "You have already applied to this job")
		}
		return nil, apperrors.InternalError(err)
	}

	go s.notifications.Notify(job.DirectorID, "new_application",
		"New application", "A talent applied to your job: "+job.Title,
		map[string]interface{}{"job_id": job.ID, "application_id": application.ID})

	resp := dto.ToApplicationResponse(application)
	return &resp, nil
}

func (s *ApplicationService) Get(id, requesterID string) (*dto.ApplicationResponse, error) {
	application, job, err := s.findWithJob(id)
	if err != nil {
		return nil, err
	}
	if application.TalentID != requesterID && job.DirectorID != requesterID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	resp := dto.ToApplicationResponse(application)
	return &resp, nil
}

// ListForJob returns a job's applications to its director.
func (s *ApplicationService) ListForJob(jobID, directorID string) ([]dto.ApplicationResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if err == repositories.ErrJobNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if job.DirectorID != directorID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	applications, err := s.applicationRepo.ListByJob(jobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toApplicationResponses(applications), nil
}

func (s *ApplicationService) ListForTalent(talentID string) ([]dto.ApplicationResponse, error) {
	applications, err := s.applicationRepo.ListByTalent(talentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return toApplicationResponses(applications), nil
}

// SetStatus moves an application through the director-controlled states.
// Withdrawn applications are final.
func (s *ApplicationService) SetStatus(id, directorID string, req *dto.UpdateApplicationStatusRequest) (*dto.ApplicationResponse, error) {
	application, job, err := s.findWithJob(id)
	if err != nil {
		return nil, err
	}
	if job.DirectorID != directorID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if application.Status == models.ApplicationStatusWithdrawn {
		return nil, apperrors.NewBadRequestError("Application has been withdrawn")
	}

	newStatus := models.ApplicationStatus(req.Status)
	if err := s.applicationRepo.UpdateStatus(id, newStatus); err != nil {
		return nil, apperrors.InternalError(err)
	}
	application.Status = newStatus

	go s.notifications.Notify(application.TalentID, "application_status",
		"Application update", "Your application for "+job.Title+" is now "+req.Status,
		map[string]interface{}{"job_id": job.ID, "application_id": application.ID, "status": req.Status})

	resp := dto.ToApplicationResponse(application)
	return &resp, nil
}

func (s *ApplicationService) Withdraw(id, talentID string) error {
	application, _, err := s.findWithJob(id)
	if err != nil {
		return err
	}
	if application.TalentID != talentID {
		return apperrors.ErrInsufficientPermissions
	}
	if application.Status == models.ApplicationStatusWithdrawn {
		return nil
	}
	if err := s.applicationRepo.UpdateStatus(id, models.ApplicationStatusWithdrawn); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ApplicationService) findWithJob(id string) (*models.Application, *models.Job, error) {
	application, err := s.applicationRepo.FindByID(id)
	if err != nil {
		if err == repositories.ErrApplicationNotFound {
			return nil, nil, apperrors.ErrNotFound(err)
		}
		return nil, nil, apperrors.InternalError(err)
	}
	job, err := s.jobRepo.FindByID(application.JobID)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}
	return application, job, nil
}

func toApplicationResponses(applications []models.Application) []dto.ApplicationResponse {
	resp := make([]dto.ApplicationResponse, 0, len(applications))
	for i := range applications {
		resp = append(resp, dto.ToApplicationResponse(&applications[i]))
	}
	return resp
}
