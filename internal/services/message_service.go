package services

import (
	"time"

	"skillport_backend/internal/auth"
	"skillport_backend/internal/models"
	"skillport_backend/internal/repositories"
	"skillport_backend/internal/services/dto"
	"skillport_backend/pkg/apperrors"
)

type MessageService struct {
	messageRepo     repositories.MessageRepository
	applicationRepo repositories.ApplicationRepository
	jobRepo         repositories.JobRepository
	userRepo        repositories.UserRepository
	notifications   *NotificationService
}

func NewMessageService(
	messageRepo repositories.MessageRepository,
	applicationRepo repositories.ApplicationRepository,
	jobRepo repositories.JobRepository,
	userRepo repositories.UserRepository,
	notifications *NotificationService,
) *MessageService {
	return &MessageService{
		messageRepo:     messageRepo,
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		userRepo:        userRepo,
		notifications:   notifications,
	}
}

// Send posts a message into an application thread. Only the thread's
// director and talent may write, and a director whose tier lacks the
// message-first capability cannot open the thread.
func (s *MessageService) Send(senderID string, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	sender, err := s.userRepo.FindByID(senderID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	if sender.Restricted(time.Now()) {
		return nil, apperrors.ErrAccountFrozen
	}

	application, err := s.applicationRepo.FindByID(req.ApplicationID)
	if err != nil {
		if err == repositories.ErrApplicationNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	job, err := s.jobRepo.FindByID(application.JobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	isDirector := senderID == job.DirectorID
	isTalent := senderID == application.TalentID
	if !isDirector && !isTalent {
		return nil, apperrors.ErrInsufficientPermissions
	}

	if isDirector {
		caps := auth.CapabilitiesForScore(sender.TrustScore)
		if !caps.CanMessageFirst {
			count, err := s.messageRepo.CountByApplication(req.ApplicationID)
			if err != nil {
				return nil, apperrors.InternalError(err)
			}
			if count == 0 {
				return nil, apperrors.NewForbiddenError("Your trust tier does not allow opening conversations")
			}
		}
	}

	message := &models.Message{
		ApplicationID: application.ID,
		JobID:         job.ID,
		DirectorID:    job.DirectorID,
		TalentID:      application.TalentID,
		SenderID:      senderID,
		Body:          req.Body,
	}
	if err := s.messageRepo.Create(message); err != nil {
		return nil, apperrors.InternalError(err)
	}

	recipientID := application.TalentID
	if isTalent {
		recipientID = job.DirectorID
	}
	go s.notifications.Notify(recipientID, "new_message",
		"New message", "You have a new message about "+job.Title,
		map[string]interface{}{"application_id": application.ID})

	resp := dto.ToMessageResponse(message)
	return &resp, nil
}

// GetThread returns a thread to one of its participants and marks the
// messages addressed to them as read.
func (s *MessageService) GetThread(applicationID, requesterID string) (*dto.ThreadResponse, error) {
	application, err := s.applicationRepo.FindByID(applicationID)
	if err != nil {
		if err == repositories.ErrApplicationNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	job, err := s.jobRepo.FindByID(application.JobID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if requesterID != job.DirectorID && requesterID != application.TalentID {
		return nil, apperrors.ErrInsufficientPermissions
	}

	messages, err := s.messageRepo.ListByApplication(applicationID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.messageRepo.MarkThreadRead(applicationID, requesterID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ThreadResponse{
		ApplicationID: applicationID,
		Messages:      make([]dto.MessageResponse, 0, len(messages)),
	}
	for i := range messages {
		resp.Messages = append(resp.Messages, dto.ToMessageResponse(&messages[i]))
	}
	return resp, nil
}

func (s *MessageService) CountUnread(userID string) (int64, error) {
	count, err := s.messageRepo.CountUnread(userID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}
