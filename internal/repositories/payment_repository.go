package repositories

import (
	"errors"
	"time"

	"skillport_backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PaymentRepository interface {
	WithTx(tx *gorm.DB) PaymentRepository

	Create(payment *models.Payment) error
	FindByID(id string) (*models.Payment, error)
	// FindByReference looks a payment up by the gateway's idempotent
	// transaction reference.
	FindByReference(reference string) (*models.Payment, error)
	UpdateStatus(reference string, status models.PaymentStatus, paidAt *time.Time) error
	ListByUser(userID string) ([]models.Payment, error)

	// Enrollments are owned by reconciliation; the (user, course)
	// uniqueness constraint makes concurrent webhook replays benign.
	CreateEnrollment(enrollment *models.Enrollment) error
	EnrollmentExists(userID, courseID string) (bool, error)
	ListEnrollments(userID string) ([]models.Enrollment, error)
}

type PaymentRepositoryImpl struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: db}
}

func (r *PaymentRepositoryImpl) WithTx(tx *gorm.DB) PaymentRepository {
	return &PaymentRepositoryImpl{db: tx}
}

func (r *PaymentRepositoryImpl) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

func (r *PaymentRepositoryImpl) FindByID(id string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) FindByReference(reference string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.First(&payment, "reference = ?", reference).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &payment, nil
}

func (r *PaymentRepositoryImpl) UpdateStatus(reference string, status models.PaymentStatus, paidAt *time.Time) error {
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now(),
	}
	if paidAt != nil {
		updates["paid_at"] = paidAt
	}

	result := r.db.Model(&models.Payment{}).Where("reference = ?", reference).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

func (r *PaymentRepositoryImpl) ListByUser(userID string) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}

func (r *PaymentRepositoryImpl) CreateEnrollment(enrollment *models.Enrollment) error {
	// ON CONFLICT DO NOTHING: a replayed webhook racing another delivery
	// must not produce a duplicate enrollment.
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
		DoNothing: true,
	}).Create(enrollment).Error
}

func (r *PaymentRepositoryImpl) EnrollmentExists(userID, courseID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Enrollment{}).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		Count(&count).Error
	return count > 0, err
}

func (r *PaymentRepositoryImpl) ListEnrollments(userID string) ([]models.Enrollment, error) {
	var enrollments []models.Enrollment
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&enrollments).Error
	return enrollments, err
}
