package services

import (
	"time"

	"skillport_backend/internal/auth"
	"skillport_backend/internal/models"
	"skillport_backend/internal/repositories"
	"skillport_backend/internal/services/dto"
	"skillport_backend/pkg/apperrors"
)

type JobService struct {
	jobRepo  repositories.JobRepository
	userRepo repositories.UserRepository
}

func NewJobService(jobRepo repositories.JobRepository, userRepo repositories.UserRepository) *JobService {
	return &JobService{jobRepo: jobRepo, userRepo: userRepo}
}

// Create posts a job as a draft. The director's trust capabilities are
// stamped onto the job at creation time; later score changes do not
// retroactively reorder existing listings.
func (s *JobService) Create(directorID string, req *dto.CreateJobRequest) (*dto.JobResponse, error) {
	director, caps, err := s.loadDirector(directorID)
	if err != nil {
		return nil, err
	}
	if director.Restricted(time.Now()) {
		return nil, apperrors.ErrAccountFrozen
	}

	job := &models.Job{
		DirectorID:       directorID,
		Title:            req.Title,
		Description:      req.Description,
		City:             req.City,
		PaymentMin:       req.PaymentMin,
		PaymentMax:       req.PaymentMax,
		Status:           models.JobStatusDraft,
		VisibilityWeight: caps.VisibilityWeight,
	}
	if err := s.jobRepo.Create(job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToJobResponse(job)
	return &resp, nil
}

func (s *JobService) Update(jobID, directorID string, req *dto.UpdateJobRequest) (*dto.JobResponse, error) {
	job, err := s.findOwnedJob(jobID, directorID)
	if err != nil {
		return nil, err
	}

	director, caps, err := s.loadDirector(directorID)
	if err != nil {
		return nil, err
	}
	if director.Restricted(time.Now()) {
		return nil, apperrors.ErrAccountFrozen
	}

	if req.Title != nil {
		job.Title = *req.Title
	}
	if req.Description != nil {
		job.Description = *req.Description
	}
	if req.City != nil {
		job.City = *req.City
	}
	if req.PaymentMin != nil {
		job.PaymentMin = *req.PaymentMin
	}
	if req.PaymentMax != nil {
		job.PaymentMax = *req.PaymentMax
	}

	if req.Status != nil {
		newStatus := models.JobStatus(*req.Status)
		if newStatus == models.JobStatusActive && job.Status != models.JobStatusActive {
			if err := s.enforceActiveLimit(directorID, caps.MaxActiveJobs); err != nil {
				return nil, err
			}
			// Reactivation restamps the weight and re-applies the
			// auto-approval gate.
			job.VisibilityWeight = caps.VisibilityWeight
			job.Hidden = !caps.AutoApproveJobs
		}
		job.Status = newStatus
	}

	if err := s.jobRepo.Update(job); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToJobResponse(job)
	return &resp, nil
}

// Get loads a single job. Drafts and hidden postings exist only for
// their owner and admins; everyone else gets a 404, not a 403, so the
// job's existence is not leaked.
func (s *JobService) Get(jobID, viewerID, viewerRole string) (*dto.JobResponse, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if err == repositories.ErrJobNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	privileged := job.DirectorID == viewerID || viewerRole == string(models.UserRoleAdmin)
	if !privileged && (job.Status != models.JobStatusActive || job.Hidden) {
		return nil, apperrors.ErrNotFound(repositories.ErrJobNotFound)
	}

	resp := dto.ToJobResponse(job)
	return &resp, nil
}

func (s *JobService) Delete(jobID, directorID string) error {
	if _, err := s.findOwnedJob(jobID, directorID); err != nil {
		return err
	}
	if err := s.jobRepo.Delete(jobID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *JobService) ListPublic(query *dto.JobListQuery) (*dto.JobListResponse, error) {
	query.Normalize()
	jobs, total, err := s.jobRepo.ListPublic(repositories.JobFilter{
		City:     query.City,
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.Limit,
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.JobListResponse{
		Jobs: make([]dto.JobResponse, 0, len(jobs)),
		Meta: dto.ListMeta{Page: query.Page, Limit: query.Limit, Total: total},
	}
	for i := range jobs {
		resp.Jobs = append(resp.Jobs, dto.ToJobResponse(&jobs[i]))
	}
	return resp, nil
}

func (s *JobService) ListByDirector(directorID string) ([]dto.JobResponse, error) {
	jobs, err := s.jobRepo.ListByDirector(directorID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := make([]dto.JobResponse, 0, len(jobs))
	for i := range jobs {
		resp = append(resp, dto.ToJobResponse(&jobs[i]))
	}
	return resp, nil
}

func (s *JobService) loadDirector(directorID string) (*models.User, auth.DirectorCapabilities, error) {
	user, err := s.userRepo.FindByID(directorID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, auth.DirectorCapabilities{}, apperrors.ErrNotFound(err)
		}
		return nil, auth.DirectorCapabilities{}, apperrors.InternalError(err)
	}
	if user.Role != models.UserRoleDirector {
		return nil, auth.DirectorCapabilities{}, apperrors.ErrInsufficientPermissions
	}
	return user, auth.CapabilitiesForScore(user.TrustScore), nil
}

func (s *JobService) enforceActiveLimit(directorID string, maxActive int) error {
	active, err := s.jobRepo.CountActiveByDirector(directorID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	if active >= int64(maxActive) {
		return apperrors.ErrJobLimitReached
	}
	return nil
}

func (s *JobService) findOwnedJob(jobID, directorID string) (*models.Job, error) {
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
	return job, nil
}
