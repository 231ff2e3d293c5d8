package services

import (
	"encoding/json"

	"gorm.io/datatypes"

	"skillport_backend/internal/logger"
	"skillport_backend/internal/models"
	"skillport_backend/internal/repositories"
	"skillport_backend/internal/services/dto"
	"skillport_backend/pkg/apperrors"
)

type NotificationService struct {
	notificationRepo repositories.NotificationRepository
}

func NewNotificationService(notificationRepo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// Notify records an in-app notification. It is called from other
// services as a side effect and never fails their requests; errors are
// logged and swallowed.
func (s *NotificationService) Notify(userID, notifType, title, message string, data map[string]interface{}) {
	var payload datatypes.JSON
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			logger.Error("failed to encode notification data", "user_id", userID, "type", notifType, "error", err)
			return
		}
		payload = datatypes.JSON(raw)
	}

	notification := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    payload,
	}
	if err := s.notificationRepo.Create(notification); err != nil {
		logger.Error("failed to create notification", "user_id", userID, "type", notifType, "error", err)
	}
}

func (s *NotificationService) List(userID string, query *dto.PaginationQuery) (*dto.NotificationListResponse, error) {
	query.Normalize()

	notifications, total, err := s.notificationRepo.ListByUser(userID, query.Page, query.Limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	unread, err := s.notificationRepo.CountUnread(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.NotificationListResponse{
		Notifications: make([]dto.NotificationResponse, 0, len(notifications)),
		UnreadCount:   unread,
		Meta:          dto.ListMeta{Page: query.Page, Limit: query.Limit, Total: total},
	}
	for i := range notifications {
		resp.Notifications = append(resp.Notifications, dto.ToNotificationResponse(&notifications[i]))
	}
	return resp, nil
}

func (s *NotificationService) MarkRead(id, userID string) error {
	if err := s.notificationRepo.MarkRead(id, userID); err != nil {
		if err == repositories.ErrNotificationNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *NotificationService) MarkAllRead(userID string) error {
	if err := s.notificationRepo.MarkAllRead(userID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}
