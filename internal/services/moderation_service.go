package services

import (
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"skillport_backend/internal/email"
	"skillport_backend/internal/logger"
	"skillport_backend/internal/models"
	"skillport_backend/internal/repositories"
	"skillport_backend/internal/services/dto"
	"skillport_backend/pkg/apperrors"
)

// ModerationService hosts the admin-only operations. Every mutation it
// performs writes an audit record in the same transaction as the change
// itself, so either both land or neither does.
type ModerationService struct {
	db            txRunner
	userRepo      repositories.UserRepository
	courseRepo    repositories.CourseRepository
	auditRepo     repositories.AuditRepository
	email         email.Provider
	notifications *NotificationService
}

func NewModerationService(
	db txRunner,
	userRepo repositories.UserRepository,
	courseRepo repositories.CourseRepository,
	auditRepo repositories.AuditRepository,
	emailProvider email.Provider,
	notifications *NotificationService,
) *ModerationService {
	return &ModerationService{
		db:            db,
		userRepo:      userRepo,
		courseRepo:    courseRepo,
		auditRepo:     auditRepo,
		email:         emailProvider,
		notifications: notifications,
	}
}

type userModerationSnapshot struct {
	Frozen               bool       `json:"frozen"`
	RestrictionReason    *string    `json:"restriction_reason"`
	RestrictionExpiresAt *time.Time `json:"restriction_expires_at"`
	TrustScore           int        `json:"trust_score"`
}

func snapshotUser(u *models.User) datatypes.JSON {
	raw, _ := json.Marshal(userModerationSnapshot{
		Frozen:               u.Frozen,
		RestrictionReason:    u.RestrictionReason,
		RestrictionExpiresAt: u.RestrictionExpiresAt,
		TrustScore:           u.TrustScore,
	})
	return datatypes.JSON(raw)
}

type lessonModerationSnapshot struct {
	Approved      bool    `json:"approved"`
	RejectionNote *string `json:"rejection_note"`
}

func snapshotLesson(l *models.Lesson) datatypes.JSON {
	raw, _ := json.Marshal(lessonModerationSnapshot{
		Approved:      l.Approved,
		RejectionNote: l.RejectionNote,
	})
	return datatypes.JSON(raw)
}

func requireReason(reason string) (string, error) {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return "", apperrors.NewBadRequestError("Reason is required")
	}
	return trimmed, nil
}

// FreezeUser restricts an account. The reason is mandatory and recorded
// both on the user and in the audit trail. The updated admin view is
// returned.
func (s *ModerationService) FreezeUser(actorID, targetID string, req *dto.FreezeUserRequest) (*dto.AdminUserResponse, error) {
	reason, err := requireReason(req.Reason)
	if err != nil {
		return nil, err
	}
	if actorID == targetID {
		return nil, apperrors.ErrCannotModifySelf
	}

	target, err := s.userRepo.FindByID(targetID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	before := snapshotUser(target)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).SetRestriction(targetID, reason, req.ExpiresAt, actorID); err != nil {
			return err
		}

		target.Frozen = true
		target.RestrictionReason = &reason
		target.RestrictionExpiresAt = req.ExpiresAt
		return s.auditRepo.WithTx(tx).Append(&models.AuditLog{
			ActorID:    actorID,
			Action:     "user.freeze",
			TargetType: "user",
			TargetID:   targetID,
			Before:     before,
			After:      snapshotUser(target),
			Reason:     reason,
		})
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToAdminUserResponse(target)
	return &resp, nil
}

// UnfreezeUser lifts a restriction. All restriction fields are cleared
// together. The updated admin view is returned.
func (s *ModerationService) UnfreezeUser(actorID, targetID string, req *dto.UnfreezeUserRequest) (*dto.AdminUserResponse, error) {
	reason, err := requireReason(req.Reason)
	if err != nil {
		return nil, err
	}

	target, err := s.userRepo.FindByID(targetID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	before := snapshotUser(target)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).ClearRestriction(targetID); err != nil {
			return err
		}

		target.Frozen = false
		target.RestrictionReason = nil
		target.RestrictionExpiresAt = nil
		return s.auditRepo.WithTx(tx).Append(&models.AuditLog{
			ActorID:    actorID,
			Action:     "user.unfreeze",
			TargetType: "user",
			TargetID:   targetID,
			Before:     before,
			After:      snapshotUser(target),
			Reason:     reason,
		})
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToAdminUserResponse(target)
	return &resp, nil
}

// AdjustTrustScore sets a director's trust score to an absolute value.
func (s *ModerationService) AdjustTrustScore(actorID, targetID string, req *dto.AdjustTrustScoreRequest) error {
	reason, err := requireReason(req.Reason)
	if err != nil {
		return err
	}

	target, err := s.userRepo.FindByID(targetID)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}
	if target.Role != models.UserRoleDirector {
		return apperrors.ErrInvalidUserRole
	}

	before := snapshotUser(target)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.WithTx(tx).SetTrustScore(targetID, req.Score); err != nil {
			return err
		}

		target.TrustScore = req.Score
		return s.auditRepo.WithTx(tx).Append(&models.AuditLog{
			ActorID:    actorID,
			Action:     "user.trust_score",
			TargetType: "user",
			TargetID:   targetID,
			Before:     before,
			After:      snapshotUser(target),
			Reason:     reason,
		})
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// ReviewLesson approves or rejects lesson content. A rejection carries a
// note for the author; an approval clears any previous note.
func (s *ModerationService) ReviewLesson(actorID, lessonID string, req *dto.ReviewLessonRequest) error {
	reason, err := requireReason(req.Reason)
	if err != nil {
		return err
	}
	if !req.Approve && strings.TrimSpace(req.Note) == "" {
		return apperrors.NewBadRequestError("A rejection note is required")
	}

	lesson, err := s.courseRepo.FindLessonByID(lessonID)
	if err != nil {
		if err == repositories.ErrLessonNotFound {
			return apperrors.ErrNotFound(err)
		}
		return apperrors.InternalError(err)
	}

	before := snapshotLesson(lesson)
	now := time.Now()

	lesson.Approved = req.Approve
	lesson.ReviewedBy = &actorID
	lesson.ReviewedAt = &now
	if req.Approve {
		lesson.RejectionNote = nil
	} else {
		note := strings.TrimSpace(req.Note)
		lesson.RejectionNote = &note
	}

	action := "lesson.approve"
	if !req.Approve {
		action = "lesson.reject"
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.courseRepo.WithTx(tx).SaveLessonReview(lesson); err != nil {
			return err
		}
		return s.auditRepo.WithTx(tx).Append(&models.AuditLog{
			ActorID:    actorID,
			Action:     action,
			TargetType: "lesson",
			TargetID:   lessonID,
			Before:     before,
			After:      snapshotLesson(lesson),
			Reason:     reason,
		})
	})
	if err != nil {
		return apperrors.InternalError(err)
	}

	// Side effects never fail the request.
	go s.notifyLessonReviewed(lesson)
	return nil
}

// notifyLessonReviewed tells the course author about a review outcome,
// by email and in-app notification.
func (s *ModerationService) notifyLessonReviewed(lesson *models.Lesson) {
	module, err := s.courseRepo.FindModuleByID(lesson.ModuleID)
	if err != nil {
		logger.Error("failed to load module for review notice", "lesson_id", lesson.ID, "error", err)
		return
	}
	course, err := s.courseRepo.FindCourseByID(module.CourseID)
	if err != nil {
		logger.Error("failed to load course for review notice", "lesson_id", lesson.ID, "error", err)
		return
	}
	author, err := s.userRepo.FindByID(course.AuthorID)
	if err != nil {
		logger.Error("failed to load author for review notice", "lesson_id", lesson.ID, "error", err)
		return
	}

	outcome := "approved"
	var note string
	if !lesson.Approved {
		outcome = "rejected"
		if lesson.RejectionNote != nil {
			note = *lesson.RejectionNote
		}
	}

	s.notifications.Notify(author.ID, "lesson_reviewed",
		"Lesson "+outcome, "Your lesson \""+lesson.Title+"\" was "+outcome,
		map[string]interface{}{"lesson_id": lesson.ID, "course_id": course.ID, "approved": lesson.Approved})

	err = s.email.SendTemplate([]string{author.Email}, "Your lesson was "+outcome, "lesson_reviewed", email.TemplateData{
		"Name":        author.Name,
		"LessonTitle": lesson.Title,
		"Outcome":     outcome,
		"Note":        note,
	})
	if err != nil {
		logger.Error("failed to send review email", "user_id", author.ID, "error", err)
	}
}

func (s *ModerationService) ListAuditLog(query *dto.AuditListQuery) ([]dto.AuditLogResponse, *dto.ListMeta, error) {
	query.Normalize()

	logs, total, err := s.auditRepo.List(repositories.AuditFilter{
		ActorID:    query.ActorID,
		TargetID:   query.TargetID,
		TargetType: query.TargetType,
		Page:       query.Page,
		PageSize:   query.Limit,
	})
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}

	resp := make([]dto.AuditLogResponse, 0, len(logs))
	for i := range logs {
		resp = append(resp, dto.ToAuditLogResponse(&logs[i]))
	}
	return resp, &dto.ListMeta{Page: query.Page, Limit: query.Limit, Total: total}, nil
}
