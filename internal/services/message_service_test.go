package services

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"skillport_backend/internal/models"
	"skillport_backend/internal/repositories"
	"skillport_backend/internal/services/dto"
	"skillport_backend/pkg/apperrors"
)

type stubMessageRepo struct {
	messages []models.Message
}

func (r *stubMessageRepo) Create(m *models.Message) error {
	m.ID = "msg"
	r.messages = append(r.messages, *m)
	return nil
}

func (r *stubMessageRepo) ListByApplication(applicationID string) ([]models.Message, error) {
	var out []models.Message
	for _, m := range r.messages {
		if m.ApplicationID == applicationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *stubMessageRepo) MarkThreadRead(applicationID, readerID string) error {
	for i := range r.messages {
		if r.messages[i].ApplicationID == applicationID && r.messages[i].SenderID != readerID {
			r.messages[i].IsRead = true
		}
	}
	return nil
}

func (r *stubMessageRepo) CountUnread(userID string) (int64, error) {
	var count int64
	for _, m := range r.messages {
		if !m.IsRead && m.SenderID != userID &&
			(m.DirectorID == userID || m.TalentID == userID) {
			count++
		}
	}
	return count, nil
}

func (r *stubMessageRepo) CountByApplication(applicationID string) (int64, error) {
	var count int64
	for _, m := range r.messages {
		if m.ApplicationID == applicationID {
			count++
		}
	}
	return count, nil
}

var _ repositories.MessageRepository = (*stubMessageRepo)(nil)

func newMessageFixture(directorScore int) (*MessageService, *stubMessageRepo) {
	userRepo := newStubUserRepo(
		&models.User{
			BaseModel:  models.BaseModel{ID: "director-1"},
			Email:      "director@example.com",
			Role:       models.UserRoleDirector,
			TrustScore: directorScore,
		},
		&models.User{
			BaseModel: models.BaseModel{ID: "talent-1"},
			Email:     "talent@example.com",
			Role:      models.UserRoleTalent,
		},
		&models.User{
			BaseModel: models.BaseModel{ID: "stranger-1"},
			Email:     "stranger@example.com",
			Role:      models.UserRoleTalent,
		},
	)
	jobRepo := newStubJobRepo(&models.Job{
		BaseModel:  models.BaseModel{ID: "job-1"},
		DirectorID: "director-1",
		Title:      "Lead role",
		Status:     models.JobStatusActive,
	})
	applicationRepo := newStubApplicationRepo(&models.Application{
		BaseModel: models.BaseModel{ID: "app-1"},
		JobID:     "job-1",
		TalentID:  "talent-1",
	})
	messageRepo := &stubMessageRepo{}
	notifications := NewNotificationService(&stubNotificationRepo{})

	return NewMessageService(messageRepo, applicationRepo, jobRepo, userRepo, notifications), messageRepo
}

func sendReq(body string) *dto.SendMessageRequest {
	return &dto.SendMessageRequest{ApplicationID: "app-1", Body: body}
}

func TestLowTierDirectorCannotOpenThread(t *testing.T) {
	svc, _ := newMessageFixture(0)

	_, err := svc.Send("director-1", sendReq("hello"))
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusForbidden, appErr.HTTPCode)
}

func TestLowTierDirectorCanReply(t *testing.T) {
	svc, _ := newMessageFixture(0)

	// The talent opens the thread; after that the director may reply.
	_, err := svc.Send("talent-1", sendReq("hi, any questions?"))
	require.NoError(t, err)

	_, err = svc.Send("director-1", sendReq("yes, when can you start?"))
	require.NoError(t, err)
}

func TestRisingDirectorCanOpenThread(t *testing.T) {
	svc, _ := newMessageFixture(50)

	_, err := svc.Send("director-1", sendReq("hello"))
	require.NoError(t, err)
}

func TestStrangerCannotJoinThread(t *testing.T) {
	svc, _ := newMessageFixture(50)

	_, err := svc.Send("stranger-1", sendReq("let me in"))
	require.Error(t, err)

	_, err = svc.GetThread("app-1", "stranger-1")
	require.Error(t, err)
}

func TestGetThreadMarksRead(t *testing.T) {
	svc, messageRepo := newMessageFixture(50)

	_, err := svc.Send("director-1", sendReq("hello"))
	require.NoError(t, err)

	unread, err := svc.CountUnread("talent-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	thread, err := svc.GetThread("app-1", "talent-1")
	require.NoError(t, err)
	require.Len(t, thread.Messages, 1)

	unread, err = svc.CountUnread("talent-1")
	require.NoError(t, err)
	assert.Equal(t, int64(0), unread)
	assert.True(t, messageRepo.messages[0].IsRead)
}
