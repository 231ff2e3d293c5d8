package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"skillport_backend/internal/email"
	"skillport_backend/internal/models"
	"skillport_backend/internal/payments"
	"skillport_backend/internal/services/dto"
	"skillport_backend/pkg/apperrors"
)

type stubGateway struct {
	checkoutURL string
	err         error
}

func (g *stubGateway) InitTransaction(_ context.Context, reference, _ string, _ int64, _ string) (string, error) {
	if g.err != nil {
		return "", g.err
	}
	return g.checkoutURL + "/" + reference, nil
}

func newPaymentFixture(t *testing.T) (*PaymentService, *stubPaymentRepo, *stubCourseRepo, *stubUserRepo) {
	t.Helper()

	userRepo := newStubUserRepo(&models.User{
		BaseModel: models.BaseModel{ID: "user-1"},
		Email:     "talent@example.com",
		Name:      "Talent",
		Role:      models.UserRoleTalent,
	})

	courseRepo := newStubCourseRepo()
	require.NoError(t, courseRepo.CreateCourse(&models.Course{
		BaseModel: models.BaseModel{ID: "course-1"},
		AuthorID:  "author-1", Title: "Go Basics", Price: 5000, Currency: "USD", Published: true,
	}))
	require.NoError(t, courseRepo.CreateCourse(&models.Course{
		BaseModel: models.BaseModel{ID: "course-2"},
		AuthorID:  "author-1", Title: "Advanced Go", Price: 9000, Currency: "USD", Published: true,
	}))

	paymentRepo := newStubPaymentRepo()
	notifications := NewNotificationService(&stubNotificationRepo{})

	svc := NewPaymentService(stubTx{}, paymentRepo, courseRepo, userRepo,
		&stubGateway{checkoutURL: "https://checkout.example"},
		&email.ConsoleProvider{}, notifications, "USD")

	return svc, paymentRepo, courseRepo, userRepo
}

func checkoutReq(courseIDs ...string) *dto.CheckoutRequest {
	return &dto.CheckoutRequest{CourseIDs: courseIDs}
}

func pendingPayment(reference string, courseIDs ...string) *models.Payment {
	raw, _ := json.Marshal(courseIDs)
	return &models.Payment{
		BaseModel: models.BaseModel{ID: "pay-" + reference},
		Reference: reference,
		UserID:    "user-1",
		Amount:    14000,
		Currency:  "USD",
		Status:    models.PaymentStatusPending,
		CourseIDs: datatypes.JSON(raw),
	}
}

func TestCheckoutCreatesPendingPayment(t *testing.T) {
	svc, paymentRepo, _, _ := newPaymentFixture(t)

	resp, err := svc.Checkout(context.Background(), "user-1", checkoutReq("course-1", "course-2"))
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Reference)
	assert.Equal(t, "https://checkout.example/"+resp.Reference, resp.CheckoutURL)
	assert.Equal(t, int64(14000), resp.Amount)

	stored, err := paymentRepo.FindByReference(resp.Reference)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, stored.Status)
}

func TestCheckoutRejectsUnpublishedCourse(t *testing.T) {
	svc, _, courseRepo, _ := newPaymentFixture(t)
	require.NoError(t, courseRepo.SetPublished("course-1", false))

	_, err := svc.Checkout(context.Background(), "user-1", checkoutReq("course-1"))
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
}

func TestCheckoutRejectsExistingEnrollment(t *testing.T) {
	svc, paymentRepo, _, _ := newPaymentFixture(t)
	require.NoError(t, paymentRepo.CreateEnrollment(&models.Enrollment{
		UserID: "user-1", CourseID: "course-1",
	}))

	_, err := svc.Checkout(context.Background(), "user-1", checkoutReq("course-1"))
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, appErr.HTTPCode)
}

func TestWebhookChargeSuccessEnrollsAllCourses(t *testing.T) {
	svc, paymentRepo, _, _ := newPaymentFixture(t)
	require.NoError(t, paymentRepo.Create(pendingPayment("ref-1", "course-1", "course-2")))

	err := svc.HandleWebhook(context.Background(), &payments.WebhookEvent{
		Event: payments.EventChargeSuccess,
		Data:  payments.WebhookEventData{Reference: "ref-1"},
	})
	require.NoError(t, err)

	payment, err := paymentRepo.FindByReference("ref-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
	require.NotNil(t, payment.PaidAt)

	enrollments, err := paymentRepo.ListEnrollments("user-1")
	require.NoError(t, err)
	assert.Len(t, enrollments, 2)
}

func TestWebhookChargeSuccessReplayIsIdempotent(t *testing.T) {
	svc, paymentRepo, _, _ := newPaymentFixture(t)
	require.NoError(t, paymentRepo.Create(pendingPayment("ref-1", "course-1")))

	event := &payments.WebhookEvent{
		Event: payments.EventChargeSuccess,
		Data:  payments.WebhookEventData{Reference: "ref-1"},
	}
	require.NoError(t, svc.HandleWebhook(context.Background(), event))
	require.NoError(t, svc.HandleWebhook(context.Background(), event))
	require.NoError(t, svc.HandleWebhook(context.Background(), event))

	payment, err := paymentRepo.FindByReference("ref-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)

	enrollments, err := paymentRepo.ListEnrollments("user-1")
	require.NoError(t, err)
	assert.Len(t, enrollments, 1)
}

func TestWebhookChargeFailed(t *testing.T) {
	svc, paymentRepo, _, _ := newPaymentFixture(t)
	require.NoError(t, paymentRepo.Create(pendingPayment("ref-1", "course-1")))

	event := &payments.WebhookEvent{
		Event: payments.EventChargeFailed,
		Data:  payments.WebhookEventData{Reference: "ref-1"},
	}
	require.NoError(t, svc.HandleWebhook(context.Background(), event))
	require.NoError(t, svc.HandleWebhook(context.Background(), event))

	payment, err := paymentRepo.FindByReference("ref-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusFailed, payment.Status)

	enrollments, err := paymentRepo.ListEnrollments("user-1")
	require.NoError(t, err)
	assert.Empty(t, enrollments)
}

func TestWebhookRefundOnlyFromCompleted(t *testing.T) {
	svc, paymentRepo, _, _ := newPaymentFixture(t)
	require.NoError(t, paymentRepo.Create(pendingPayment("ref-1", "course-1")))

	refund := &payments.WebhookEvent{
		Event: payments.EventRefundProcessed,
		Data:  payments.WebhookEventData{Reference: "ref-1"},
	}

	// A refund on a pending payment is dropped, not applied.
	require.NoError(t, svc.HandleWebhook(context.Background(), refund))
	payment, err := paymentRepo.FindByReference("ref-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusPending, payment.Status)

	require.NoError(t, svc.HandleWebhook(context.Background(), &payments.WebhookEvent{
		Event: payments.EventChargeSuccess,
		Data:  payments.WebhookEventData{Reference: "ref-1"},
	}))
	require.NoError(t, svc.HandleWebhook(context.Background(), refund))

	payment, err = paymentRepo.FindByReference("ref-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusRefunded, payment.Status)
}

func TestWebhookFailureAfterCompletionIsDropped(t *testing.T) {
	svc, paymentRepo, _, _ := newPaymentFixture(t)
	require.NoError(t, paymentRepo.Create(pendingPayment("ref-1", "course-1")))

	require.NoError(t, svc.HandleWebhook(context.Background(), &payments.WebhookEvent{
		Event: payments.EventChargeSuccess,
		Data:  payments.WebhookEventData{Reference: "ref-1"},
	}))
	require.NoError(t, svc.HandleWebhook(context.Background(), &payments.WebhookEvent{
		Event: payments.EventChargeFailed,
		Data:  payments.WebhookEventData{Reference: "ref-1"},
	}))

	payment, err := paymentRepo.FindByReference("ref-1")
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, payment.Status)
}

func TestWebhookUnknownReference(t *testing.T) {
	svc, _, _, _ := newPaymentFixture(t)

	err := svc.HandleWebhook(context.Background(), &payments.WebhookEvent{
		Event: payments.EventChargeSuccess,
		Data:  payments.WebhookEventData{Reference: "no-such-ref"},
	})
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, appErr.HTTPCode)
}
