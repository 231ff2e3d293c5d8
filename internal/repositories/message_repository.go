package repositories

import (
	"errors"
	"time"

	"skillport_backend/internal/models"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageRepository interface {
	Create(message *models.Message) error
	ListByApplication(applicationID string) ([]models.Message, error)
	// MarkThreadRead marks every message in the thread that was sent TO
	// the reader as read.
	MarkThreadRead(applicationID, readerID string) error
	CountUnread(userID string) (int64, error)
	CountByApplication(applicationID string) (int64, error)
}

type MessageRepositoryImpl struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &MessageRepositoryImpl{db: db}
}

func (r *MessageRepositoryImpl) Create(message *models.Message) error {
	return r.db.Create(message).Error
}

func (r *MessageRepositoryImpl) ListByApplication(applicationID string) ([]models.Message, error) {
	var messages []models.Message
	err := r.db.Where("application_id = ?", applicationID).Order("created_at ASC").Find(&messages).Error
	return messages, err
}

func (r *MessageRepositoryImpl) MarkThreadRead(applicationID, readerID string) error {
	return r.db.Model(&models.Message{}).
		Where("application_id = ? AND sender_id != ? AND is_read = ?", applicationID, readerID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		}).Error
}

func (r *MessageRepositoryImpl) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).
		Where("(director_id = ? OR talent_id = ?) AND sender_id != ? AND is_read = ?",
			userID, userID, userID, false).
		Count(&count).Error
	return count, err
}

func (r *MessageRepositoryImpl) CountByApplication(applicationID string) (int64, error) {
	var count int64
	err := r.db.Model(&models.Message{}).Where("application_id = ?", applicationID).Count(&count).Error
	return count, err
}
