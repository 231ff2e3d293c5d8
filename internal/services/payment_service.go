package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"skillport_backend/internal/email"
	"skillport_backend/internal/logger"
	"skillport_backend/internal/models"
	"skillport_backend/internal/payments"
	"skillport_backend/internal/repositories"
	"skillport_backend/internal/services/dto"
	"skillport_backend/pkg/apperrors"
)

// PaymentGateway is the slice of the gateway client the service needs.
type PaymentGateway interface {
	InitTransaction(ctx context.Context, reference, email string, amount int64, currency string) (string, error)
}

type PaymentService struct {
	db            txRunner
	paymentRepo   repositories.PaymentRepository
	courseRepo    repositories.CourseRepository
	userRepo      repositories.UserRepository
	gateway       PaymentGateway
	email         email.Provider
	notifications *NotificationService
	currency      string
}

func NewPaymentService(
	db txRunner,
	paymentRepo repositories.PaymentRepository,
	courseRepo repositories.CourseRepository,
	userRepo repositories.UserRepository,
	gateway PaymentGateway,
	emailProvider email.Provider,
	notifications *NotificationService,
	currency string,
) *PaymentService {
	return &PaymentService{
		db:            db,
		paymentRepo:   paymentRepo,
		courseRepo:    courseRepo,
		userRepo:      userRepo,
		gateway:       gateway,
		email:         emailProvider,
		notifications: notifications,
		currency:      currency,
	}
}

// Checkout creates a pending payment covering one or more courses and
// returns the gateway's checkout URL.
func (s *PaymentService) Checkout(ctx context.Context, userID string, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	var total int64
	for _, courseID := range req.CourseIDs {
		course, err := s.courseRepo.FindCourseByID(courseID)
		if err != nil {
			if err == repositories.ErrCourseNotFound {
				return nil, apperrors.ErrNotFound(err)
			}
			return nil, apperrors.InternalError(err)
		}
		if !course.Published {
			return nil, apperrors.NewBadRequestError("Course is not available for purchase")
		}
		enrolled, err := s.paymentRepo.EnrollmentExists(userID, courseID)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if enrolled {
			return nil, apperrors.NewConflictError("payment", "Already enrolled in course "+course.Title)
		}
		total += course.Price
	}

	courseIDs, err := json.Marshal(req.CourseIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	payment := &models.Payment{
		Reference: fmt.Sprintf("sp_%s", uuid.NewString()),
		UserID:    userID,
		Amount:    total,
		Currency:  s.currency,
		Status:    models.PaymentStatusPending,
		CourseIDs: datatypes.JSON(courseIDs),
	}
	if err := s.paymentRepo.Create(payment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	checkoutURL, err := s.gateway.InitTransaction(ctx, payment.Reference, user.Email, total, s.currency)
	if err != nil {
		logger.CtxWithError(ctx, "gateway checkout initialization failed", err, "reference", payment.Reference)
		return nil, apperrors.ErrGatewayError
	}

	return &dto.CheckoutResponse{
		Reference:   payment.Reference,
		CheckoutURL: checkoutURL,
		Amount:      total,
		Currency:    s.currency,
	}, nil
}

// HandleWebhook reconciles one gateway event against the local payment
// record. Reconciliation is idempotent: replayed events find the payment
// already in the target state and do nothing. State moves only along
// pending -> completed, pending -> failed and completed -> refunded; any
// other event/state pair is logged and dropped.
func (s *PaymentService) HandleWebhook(ctx context.Context, event *payments.WebhookEvent) error {
	payment, err := s.paymentRepo.FindByReference(event.Data.Reference)
	if err != nil {
		if err == repositories.ErrPaymentNotFound {
			return apperrors.NewNotFoundError("payment", "Unknown payment reference")
		}
		return apperrors.InternalError(err)
	}

	switch event.Event {
	case payments.EventChargeSuccess:
		return s.reconcileSuccess(ctx, payment)
	case payments.EventChargeFailed:
		return s.reconcileFailure(ctx, payment)
	case payments.EventRefundProcessed:
		return s.reconcileRefund(ctx, payment)
	default:
		logger.CtxWarn(ctx, "ignoring unknown webhook event", "event", event.Event, "reference", payment.Reference)
		return nil
	}
}

func (s *PaymentService) reconcileSuccess(ctx context.Context, payment *models.Payment) error {
	switch payment.Status {
	case models.PaymentStatusCompleted:
		// Replay.
		return nil
	case models.PaymentStatusPending:
	default:
		logger.CtxWarn(ctx, "charge.success for payment not in pending",
			"reference", payment.Reference, "status", payment.Status)
		return nil
	}

	var courseIDs []string
	if err := json.Unmarshal(payment.CourseIDs, &courseIDs); err != nil {
		return apperrors.InternalError(err)
	}

	now := time.Now()
	err := s.db.Transaction(func(tx *gorm.DB) error {
		txPayments := s.paymentRepo.WithTx(tx)
		if err := txPayments.UpdateStatus(payment.Reference, models.PaymentStatusCompleted, &now); err != nil {
			return err
		}
		for _, courseID := range courseIDs {
			enrollment := &models.Enrollment{
				UserID:    payment.UserID,
				CourseID:  courseID,
				PaymentID: payment.ID,
			}
			if err := txPayments.CreateEnrollment(enrollment); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	go s.sendEnrollmentEmail(payment, courseIDs)
	go s.notifications.Notify(payment.UserID, "enrollment",
		"Enrollment confirmed", "Your payment was received and your courses are unlocked",
		map[string]interface{}{"reference": payment.Reference, "course_ids": courseIDs})

	logger.CtxInfo(ctx, "payment completed", "reference", payment.Reference, "courses", len(courseIDs))
	return nil
}

func (s *PaymentService) reconcileFailure(ctx context.Context, payment *models.Payment) error {
	switch payment.Status {
	case models.PaymentStatusFailed:
		return nil
	case models.PaymentStatusPending:
	default:
		logger.CtxWarn(ctx, "charge.failed for payment not in pending",
			"reference", payment.Reference, "status", payment.Status)
		return nil
	}

	if err := s.paymentRepo.UpdateStatus(payment.Reference, models.PaymentStatusFailed, nil); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "payment failed", "reference", payment.Reference)
	return nil
}

// reconcileRefund flips a completed payment to refunded. Enrollments are
// not revoked automatically; that is an admin decision.
func (s *PaymentService) reconcileRefund(ctx context.Context, payment *models.Payment) error {
	switch payment.Status {
	case models.PaymentStatusRefunded:
		return nil
	case models.PaymentStatusCompleted:
	default:
		logger.CtxWarn(ctx, "refund.processed for payment not in completed",
			"reference", payment.Reference, "status", payment.Status)
		return nil
	}

	if err := s.paymentRepo.UpdateStatus(payment.Reference, models.PaymentStatusRefunded, nil); err != nil {
		return apperrors.InternalError(err)
	}
	logger.CtxInfo(ctx, "payment refunded", "reference", payment.Reference)
	return nil
}

func (s *PaymentService) ListPayments(userID string) ([]dto.PaymentResponse, error) {
	userPayments, err := s.paymentRepo.ListByUser(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := make([]dto.PaymentResponse, 0, len(userPayments))
	for i := range userPayments {
		resp = append(resp, dto.ToPaymentResponse(&userPayments[i]))
	}
	return resp, nil
}

func (s *PaymentService) ListEnrollments(userID string) ([]dto.EnrollmentResponse, error) {
	enrollments, err := s.paymentRepo.ListEnrollments(userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	resp := make([]dto.EnrollmentResponse, 0, len(enrollments))
	for i := range enrollments {
		resp = append(resp, dto.ToEnrollmentResponse(&enrollments[i]))
	}
	return resp, nil
}

func (s *PaymentService) sendEnrollmentEmail(payment *models.Payment, courseIDs []string) {
	user, err := s.userRepo.FindByID(payment.UserID)
	if err != nil {
		logger.Error("failed to load user for enrollment email", "user_id", payment.UserID, "error", err)
		return
	}

	titles := make([]string, 0, len(courseIDs))
	for _, courseID := range courseIDs {
		course, err := s.courseRepo.FindCourseByID(courseID)
		if err != nil {
			continue
		}
		titles = append(titles, course.Title)
	}

	err = s.email.SendTemplate([]string{user.Email}, "You're enrolled!", "enrollment", email.TemplateData{
		"Name":    user.Name,
		"Courses": titles,
	})
	if err != nil {
		logger.Error("failed to send enrollment email", "user_id", user.ID, "error", err)
	}
}
