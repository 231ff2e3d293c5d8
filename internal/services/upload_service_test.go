package services

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillport_backend/internal/models"
	"skillport_backend/internal/repositories"
	"skillport_backend/pkg/apperrors"
)

type stubUploadRepo struct {
	mu      sync.Mutex
	uploads map[string]*models.Upload
	nextID  int
}

func newStubUploadRepo() *stubUploadRepo {
	return &stubUploadRepo{uploads: make(map[string]*models.Upload)}
}

func (r *stubUploadRepo) Create(u *models.Upload) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.ID == "" {
		r.nextID++
		u.ID = "upload-" + string(rune('0'+r.nextID))
	}
	copied := *u
	r.uploads[u.ID] = &copied
	return nil
}

func (r *stubUploadRepo) FindByID(id string) (*models.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.uploads[id]
	if !ok {
		return nil, repositories.ErrUploadNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *stubUploadRepo) ListByUser(userID string) ([]models.Upload, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Upload
	for _, u := range r.uploads {
		if u.UserID == userID {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *stubUploadRepo) SetSecondaryURL(id, url string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.uploads[id]; ok {
		u.SecondaryURL = &url
	}
	return nil
}

// stubStorage records saved paths in memory.
type stubStorage struct {
	mu    sync.Mutex
	saved map[string][]byte
}

func newStubStorage() *stubStorage {
	return &stubStorage{saved: make(map[string][]byte)}
}

func (s *stubStorage) Save(_ context.Context, path string, reader io.Reader, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[path] = data
	return nil
}

func (s *stubStorage) Get(_ context.Context, path string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return io.NopCloser(bytes.NewReader(s.saved[path])), nil
}

func (s *stubStorage) Delete(_ context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.saved, path)
	return nil
}

func (s *stubStorage) Exists(_ context.Context, path string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.saved[path]
	return ok, nil
}

func (s *stubStorage) GetURL(_ context.Context, path string) (string, error) {
	return "https://media.test/" + path, nil
}

func (s *stubStorage) GetSignedURL(_ context.Context, path string, _ time.Duration) (string, error) {
	return "https://media.test/" + path + "?signed", nil
}

// fileHeader builds a real multipart.FileHeader around the content.
func fileHeader(t *testing.T, name string, content []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(int64(buf.Len()) + 1024)
	require.NoError(t, err)
	return form.File["file"][0]
}

func newUploadFixture(maxSize int64) (*UploadService, *stubUploadRepo, *stubStorage) {
	uploadRepo := newStubUploadRepo()
	primary := newStubStorage()
	svc := NewUploadService(uploadRepo, primary, nil, maxSize, []string{
		"image/png",
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	})
	return svc, uploadRepo, primary
}

var pngContent = append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)

func TestUploadStoresSniffedType(t *testing.T) {
	svc, uploadRepo, primary := newUploadFixture(1 << 20)

	resp, err := svc.Upload(context.Background(), "user-1", fileHeader(t, "avatar.png", pngContent))
	require.NoError(t, err)
	assert.Equal(t, "image/png", resp.MimeType)
	assert.NotEmpty(t, resp.URL)

	stored, err := uploadRepo.FindByID(resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "avatar.png", stored.FileName)

	exists, err := primary.Exists(context.Background(), stored.Path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUploadRejectsOversizeFile(t *testing.T) {
	svc, _, _ := newUploadFixture(16)

	_, err := svc.Upload(context.Background(), "user-1", fileHeader(t, "big.png", pngContent))
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusRequestEntityTooLarge, appErr.HTTPCode)
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	svc, _, _ := newUploadFixture(1 << 20)

	// Plain text sniffs as text/plain, which the allow-list omits.
	_, err := svc.Upload(context.Background(), "user-1", fileHeader(t, "notes.txt", []byte("hello world")))
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnsupportedMediaType, appErr.HTTPCode)
}

// Word documents defeat content sniffing: docx is a zip container and
// legacy doc reads as an opaque binary. The extension decides within
// those container types, and only there.
func TestUploadResolvesOfficeContainerTypes(t *testing.T) {
	svc, _, _ := newUploadFixture(1 << 20)

	zipContent := append([]byte("PK\x03\x04"), make([]byte, 64)...)
	resp, err := svc.Upload(context.Background(), "user-1", fileHeader(t, "cv.docx", zipContent))
	require.NoError(t, err)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.wordprocessingml.document", resp.MimeType)

	docContent := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 64)...)
	resp, err = svc.Upload(context.Background(), "user-1", fileHeader(t, "cv.doc", docContent))
	require.NoError(t, err)
	assert.Equal(t, "application/msword", resp.MimeType)

	// A zip that is not named .docx stays a zip and is rejected.
	_, err = svc.Upload(context.Background(), "user-1", fileHeader(t, "archive.zip", zipContent))
	require.Error(t, err)
}

func TestUploadVisibleOnlyToOwner(t *testing.T) {
	svc, _, _ := newUploadFixture(1 << 20)

	resp, err := svc.Upload(context.Background(), "user-1", fileHeader(t, "avatar.png", pngContent))
	require.NoError(t, err)

	_, err = svc.Get(resp.ID, "user-2")
	require.Error(t, err)

	got, err := svc.Get(resp.ID, "user-1")
	require.NoError(t, err)
	assert.Equal(t, resp.ID, got.ID)
}
