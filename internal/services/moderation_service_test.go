package services

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillport_backend/internal/email"
	"skillport_backend/internal/models"
	"skillport_backend/internal/services/dto"
	"skillport_backend/pkg/apperrors"
)

func dtoFreeze(reason string, expiresAt *time.Time) *dto.FreezeUserRequest {
	return &dto.FreezeUserRequest{Reason: reason, ExpiresAt: expiresAt}
}

func dtoUnfreeze(reason string) *dto.UnfreezeUserRequest {
	return &dto.UnfreezeUserRequest{Reason: reason}
}

func dtoTrust(score int, reason string) *dto.AdjustTrustScoreRequest {
	return &dto.AdjustTrustScoreRequest{Score: score, Reason: reason}
}

func dtoReview(approve bool, note, reason string) *dto.ReviewLessonRequest {
	return &dto.ReviewLessonRequest{Approve: approve, Note: note, Reason: reason}
}

func newModerationFixture() (*ModerationService, *stubUserRepo, *stubCourseRepo, *stubAuditRepo) {
	userRepo := newStubUserRepo(
		&models.User{
			BaseModel: models.BaseModel{ID: "admin-1"},
			Email:     "admin@example.com",
			Role:      models.UserRoleAdmin,
		},
		&models.User{
			BaseModel: models.BaseModel{ID: "director-1"},
			Email:     "director@example.com",
			Role:      models.UserRoleDirector,
		},
	)
	courseRepo := newStubCourseRepo()
	auditRepo := &stubAuditRepo{}
	svc := NewModerationService(stubTx{}, userRepo, courseRepo, auditRepo,
		&email.ConsoleProvider{}, NewNotificationService(&stubNotificationRepo{}))
	return svc, userRepo, courseRepo, auditRepo
}

func TestFreezeUserRequiresReason(t *testing.T) {
	svc, userRepo, _, auditRepo := newModerationFixture()

	for _, reason := range []string{"", "   ", "\t\n"} {
		_, err := svc.FreezeUser("admin-1", "director-1", dtoFreeze(reason, nil))
		require.Error(t, err)

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, appErr.HTTPCode)
		assert.Equal(t, "Reason is required", appErr.Message)
	}

	user, err := userRepo.FindByID("director-1")
	require.NoError(t, err)
	assert.False(t, user.Frozen)
	assert.Empty(t, auditRepo.logs)
}

func TestFreezeUserSetsAllFieldsAndAudits(t *testing.T) {
	svc, userRepo, _, auditRepo := newModerationFixture()

	expires := time.Now().Add(72 * time.Hour)
	view, err := svc.FreezeUser("admin-1", "director-1", dtoFreeze("spam postings", &expires))
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.True(t, view.Frozen)
	require.NotNil(t, view.RestrictionReason)
	assert.Equal(t, "spam postings", *view.RestrictionReason)

	user, err := userRepo.FindByID("director-1")
	require.NoError(t, err)
	assert.True(t, user.Frozen)
	require.NotNil(t, user.RestrictionReason)
	assert.Equal(t, "spam postings", *user.RestrictionReason)
	require.NotNil(t, user.RestrictionExpiresAt)
	require.NotNil(t, user.RestrictedBy)
	assert.Equal(t, "admin-1", *user.RestrictedBy)

	require.Len(t, auditRepo.logs, 1)
	entry := auditRepo.logs[0]
	assert.Equal(t, "user.freeze", entry.Action)
	assert.Equal(t, "admin-1", entry.ActorID)
	assert.Equal(t, "director-1", entry.TargetID)
	assert.Equal(t, "spam postings", entry.Reason)

	var before, after userModerationSnapshot
	require.NoError(t, json.Unmarshal(entry.Before, &before))
	require.NoError(t, json.Unmarshal(entry.After, &after))
	assert.False(t, before.Frozen)
	assert.True(t, after.Frozen)
}

func TestFreezeSelfRejected(t *testing.T) {
	svc, _, _, _ := newModerationFixture()

	_, err := svc.FreezeUser("admin-1", "admin-1", dtoFreeze("abuse", nil))
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode)
}

func TestUnfreezeClearsAllFields(t *testing.T) {
	svc, userRepo, _, auditRepo := newModerationFixture()

	_, err := svc.FreezeUser("admin-1", "director-1", dtoFreeze("spam", nil))
	require.NoError(t, err)
	view, err := svc.UnfreezeUser("admin-1", "director-1", dtoUnfreeze("appeal accepted"))
	require.NoError(t, err)
	require.NotNil(t, view)
	assert.False(t, view.Frozen)
	assert.Nil(t, view.RestrictionReason)

	user, err := userRepo.FindByID("director-1")
	require.NoError(t, err)
	assert.False(t, user.Frozen)
	assert.Nil(t, user.RestrictionReason)
	assert.Nil(t, user.RestrictionExpiresAt)
	assert.Nil(t, user.RestrictedBy)

	require.Len(t, auditRepo.logs, 2)
	assert.Equal(t, "user.unfreeze", auditRepo.logs[1].Action)
}

func TestAdjustTrustScoreDirectorsOnly(t *testing.T) {
	svc, userRepo, _, auditRepo := newModerationFixture()

	err := svc.AdjustTrustScore("admin-1", "director-1", dtoTrust(85, "consistent quality"))
	require.NoError(t, err)

	user, err := userRepo.FindByID("director-1")
	require.NoError(t, err)
	assert.Equal(t, 85, user.TrustScore)
	require.Len(t, auditRepo.logs, 1)
	assert.Equal(t, "user.trust_score", auditRepo.logs[0].Action)

	// Admins are not directors; their score cannot be adjusted.
	err = svc.AdjustTrustScore("admin-1", "admin-1", dtoTrust(50, "nope"))
	require.Error(t, err)
}

func TestReviewLessonApproveClearsNote(t *testing.T) {
	svc, _, courseRepo, auditRepo := newModerationFixture()

	note := "needs sources"
	require.NoError(t, courseRepo.CreateLesson(&models.Lesson{
		BaseModel:     models.BaseModel{ID: "lesson-1"},
		ModuleID:      "module-1",
		Title:         "Intro",
		RejectionNote: &note,
	}))

	err := svc.ReviewLesson("admin-1", "lesson-1", dtoReview(true, "", "sources added"))
	require.NoError(t, err)

	lesson, err := courseRepo.FindLessonByID("lesson-1")
	require.NoError(t, err)
	assert.True(t, lesson.Approved)
	assert.Nil(t, lesson.RejectionNote)
	require.NotNil(t, lesson.ReviewedBy)
	assert.Equal(t, "admin-1", *lesson.ReviewedBy)
	assert.NotNil(t, lesson.ReviewedAt)

	require.Len(t, auditRepo.logs, 1)
	assert.Equal(t, "lesson.approve", auditRepo.logs[0].Action)
}

func TestReviewLessonRejectRequiresNote(t *testing.T) {
	svc, _, courseRepo, _ := newModerationFixture()
	require.NoError(t, courseRepo.CreateLesson(&models.Lesson{
		BaseModel: models.BaseModel{ID: "lesson-1"},
		ModuleID:  "module-1",
	}))

	err := svc.ReviewLesson("admin-1", "lesson-1", dtoReview(false, "  ", "low quality"))
	require.Error(t, err)

	require.NoError(t, svc.ReviewLesson("admin-1", "lesson-1", dtoReview(false, "plagiarized content", "copyright complaint")))

	lesson, err := courseRepo.FindLessonByID("lesson-1")
	require.NoError(t, err)
	assert.False(t, lesson.Approved)
	require.NotNil(t, lesson.RejectionNote)
	assert.Equal(t, "plagiarized content", *lesson.RejectionNote)
}
