package services

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"skillport_backend/internal/models"
	"skillport_backend/internal/repositories"
)

// stubTx runs the transaction callback directly, with no database.
type stubTx struct{}

func (stubTx) Transaction(fc func(tx *gorm.DB) error, _ ...*sql.TxOptions) error {
	return fc(nil)
}

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newStubUserRepo(users ...*models.User) *stubUserRepo {
	r := &stubUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *stubUserRepo) WithTx(*gorm.DB) repositories.UserRepository { return r }

func (r *stubUserRepo) FindByID(id string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (r *stubUserRepo) FindByEmail(email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *stubUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == user.Email {
			return repositories.ErrUserAlreadyExists
		}
	}
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *stubUserRepo) Update(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *stubUserRepo) UpdatePassword(userID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.PasswordHash = hash
	}
	return nil
}

func (r *stubUserRepo) VerifyUser(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[userID]; ok {
		u.IsVerified = true
		u.Status = models.UserStatusActive
	}
	return nil
}

func (r *stubUserRepo) FindByVerificationToken(token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.VerificationToken == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *stubUserRepo) FindByResetToken(token string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetToken == token {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *stubUserRepo) SetRestriction(userID, reason string, expiresAt *time.Time, restrictedBy string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Frozen = true
	u.RestrictionReason = &reason
	u.RestrictionExpiresAt = expiresAt
	u.RestrictedBy = &restrictedBy
	return nil
}

func (r *stubUserRepo) ClearRestriction(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.Frozen = false
	u.RestrictionReason = nil
	u.RestrictionExpiresAt = nil
	u.RestrictedBy = nil
	return nil
}

func (r *stubUserRepo) SetTrustScore(userID string, score int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return repositories.ErrUserNotFound
	}
	u.TrustScore = score
	return nil
}

func (r *stubUserRepo) FindWithFilter(repositories.UserFilter) ([]models.User, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, *u)
	}
	return out, int64(len(out)), nil
}

type stubPaymentRepo struct {
	mu          sync.Mutex
	payments    map[string]*models.Payment // keyed by reference
	enrollments []models.Enrollment
}

func newStubPaymentRepo(ps ...*models.Payment) *stubPaymentRepo {
	r := &stubPaymentRepo{payments: make(map[string]*models.Payment)}
	for _, p := range ps {
		r.payments[p.Reference] = p
	}
	return r
}

func (r *stubPaymentRepo) WithTx(*gorm.DB) repositories.PaymentRepository { return r }

func (r *stubPaymentRepo) Create(p *models.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p.ID == "" {
		p.ID = fmt.Sprintf("pay-%d", len(r.payments)+1)
	}
	copied := *p
	r.payments[p.Reference] = &copied
	return nil
}

func (r *stubPaymentRepo) FindByID(id string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.payments {
		if p.ID == id {
			copied := *p
			return &copied, nil
		}
	}
	return nil, repositories.ErrPaymentNotFound
}

func (r *stubPaymentRepo) FindByReference(reference string) (*models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[reference]
	if !ok {
		return nil, repositories.ErrPaymentNotFound
	}
	copied := *p
	return &copied, nil
}

func (r *stubPaymentRepo) UpdateStatus(reference string, status models.PaymentStatus, paidAt *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.payments[reference]
	if !ok {
		return repositories.ErrPaymentNotFound
	}
	p.Status = status
	p.PaidAt = paidAt
	return nil
}

func (r *stubPaymentRepo) ListByUser(userID string) ([]models.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Payment
	for _, p := range r.payments {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

// CreateEnrollment mirrors the ON CONFLICT DO NOTHING semantics of the
// real repository.
func (r *stubPaymentRepo) CreateEnrollment(e *models.Enrollment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.enrollments {
		if existing.UserID == e.UserID && existing.CourseID == e.CourseID {
			return nil
		}
	}
	if e.ID == "" {
		e.ID = fmt.Sprintf("enr-%d", len(r.enrollments)+1)
	}
	r.enrollments = append(r.enrollments, *e)
	return nil
}

func (r *stubPaymentRepo) EnrollmentExists(userID, courseID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, e := range r.enrollments {
		if e.UserID == userID && e.CourseID == courseID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubPaymentRepo) ListEnrollments(userID string) ([]models.Enrollment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Enrollment
	for _, e := range r.enrollments {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

type stubCourseRepo struct {
	mu      sync.Mutex
	courses map[string]*models.Course
	modules map[string]*models.CourseModule
	lessons map[string]*models.Lesson
}

func newStubCourseRepo() *stubCourseRepo {
	return &stubCourseRepo{
		courses: make(map[string]*models.Course),
		modules: make(map[string]*models.CourseModule),
		lessons: make(map[string]*models.Lesson),
	}
}

func (r *stubCourseRepo) WithTx(*gorm.DB) repositories.CourseRepository { return r }

func (r *stubCourseRepo) CreateCourse(c *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c.ID == "" {
		c.ID = fmt.Sprintf("course-%d", len(r.courses)+1)
	}
	copied := *c
	r.courses[c.ID] = &copied
	return nil
}

func (r *stubCourseRepo) FindCourseByID(id string) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[id]
	if !ok {
		return nil, repositories.ErrCourseNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *stubCourseRepo) UpdateCourse(c *models.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *c
	r.courses[c.ID] = &copied
	return nil
}

func (r *stubCourseRepo) SetPublished(courseID string, published bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.courses[courseID]
	if !ok {
		return repositories.ErrCourseNotFound
	}
	c.Published = published
	return nil
}

func (r *stubCourseRepo) ListPublished(int, int) ([]models.Course, int64, error) {
	return nil, 0, nil
}

func (r *stubCourseRepo) ListByAuthor(string) ([]models.Course, error) { return nil, nil }

func (r *stubCourseRepo) CreateModule(m *models.CourseModule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.ID == "" {
		m.ID = fmt.Sprintf("module-%d", len(r.modules)+1)
	}
	copied := *m
	r.modules[m.ID] = &copied
	return nil
}

func (r *stubCourseRepo) FindModuleByID(id string) (*models.CourseModule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.modules[id]
	if !ok {
		return nil, repositories.ErrModuleNotFound
	}
	copied := *m
	return &copied, nil
}

func (r *stubCourseRepo) UpdateModule(m *models.CourseModule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *m
	r.modules[m.ID] = &copied
	return nil
}

func (r *stubCourseRepo) CreateLesson(l *models.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if l.ID == "" {
		l.ID = fmt.Sprintf("lesson-%d", len(r.lessons)+1)
	}
	copied := *l
	r.lessons[l.ID] = &copied
	return nil
}

func (r *stubCourseRepo) FindLessonByID(id string) (*models.Lesson, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	l, ok := r.lessons[id]
	if !ok {
		return nil, repositories.ErrLessonNotFound
	}
	copied := *l
	return &copied, nil
}

func (r *stubCourseRepo) UpdateLesson(l *models.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *l
	copied.Approved = false
	copied.RejectionNote = nil
	r.lessons[l.ID] = &copied
	return nil
}

func (r *stubCourseRepo) SaveLessonReview(l *models.Lesson) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *l
	r.lessons[l.ID] = &copied
	return nil
}

func (r *stubCourseRepo) CountUnapprovedLessons(courseID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, l := range r.lessons {
		m, ok := r.modules[l.ModuleID]
		if ok && m.CourseID == courseID && !l.Approved {
			count++
		}
	}
	return count, nil
}

type stubAuditRepo struct {
	mu   sync.Mutex
	logs []models.AuditLog
}

func (r *stubAuditRepo) WithTx(*gorm.DB) repositories.AuditRepository { return r }

func (r *stubAuditRepo) Append(log *models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.ID = fmt.Sprintf("audit-%d", len(r.logs)+1)
	r.logs = append(r.logs, *log)
	return nil
}

func (r *stubAuditRepo) List(repositories.AuditFilter) ([]models.AuditLog, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.AuditLog, len(r.logs))
	copy(out, r.logs)
	return out, int64(len(out)), nil
}

type stubJobRepo struct {
	mu   sync.Mutex
	jobs map[string]*models.Job
}

func newStubJobRepo(jobs ...*models.Job) *stubJobRepo {
	r := &stubJobRepo{jobs: make(map[string]*models.Job)}
	for _, j := range jobs {
		r.jobs[j.ID] = j
	}
	return r
}

func (r *stubJobRepo) Create(j *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j.ID == "" {
		j.ID = fmt.Sprintf("job-%d", len(r.jobs)+1)
	}
	copied := *j
	r.jobs[j.ID] = &copied
	return nil
}

func (r *stubJobRepo) FindByID(id string) (*models.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return nil, repositories.ErrJobNotFound
	}
	copied := *j
	return &copied, nil
}

func (r *stubJobRepo) Update(j *models.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *j
	r.jobs[j.ID] = &copied
	return nil
}

func (r *stubJobRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.jobs, id)
	return nil
}

func (r *stubJobRepo) ListPublic(repositories.JobFilter) ([]models.Job, int64, error) {
	return nil, 0, nil
}

func (r *stubJobRepo) ListByDirector(string) ([]models.Job, error) { return nil, nil }

func (r *stubJobRepo) CountActiveByDirector(directorID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, j := range r.jobs {
		if j.DirectorID == directorID && j.Status == models.JobStatusActive {
			count++
		}
	}
	return count, nil
}

func (r *stubJobRepo) CountApplications(string) (int64, error) { return 0, nil }

type stubApplicationRepo struct {
	mu           sync.Mutex
	applications map[string]*models.Application
}

func newStubApplicationRepo(apps ...*models.Application) *stubApplicationRepo {
	r := &stubApplicationRepo{applications: make(map[string]*models.Application)}
	for _, a := range apps {
		r.applications[a.ID] = a
	}
	return r
}

func (r *stubApplicationRepo) Create(a *models.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.applications {
		if existing.JobID == a.JobID && existing.TalentID == a.TalentID {
			return repositories.ErrDuplicateApplication
		}
	}
	if a.ID == "" {
		a.ID = fmt.Sprintf("app-%d", len(r.applications)+1)
	}
	copied := *a
	r.applications[a.ID] = &copied
	return nil
}

func (r *stubApplicationRepo) FindByID(id string) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.applications[id]
	if !ok {
		return nil, repositories.ErrApplicationNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *stubApplicationRepo) FindByJobAndTalent(jobID, talentID string) (*models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.applications {
		if a.JobID == jobID && a.TalentID == talentID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, repositories.ErrApplicationNotFound
}

func (r *stubApplicationRepo) ListByJob(jobID string) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Application
	for _, a := range r.applications {
		if a.JobID == jobID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubApplicationRepo) ListByTalent(talentID string) ([]models.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Application
	for _, a := range r.applications {
		if a.TalentID == talentID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubApplicationRepo) UpdateStatus(id string, status models.ApplicationStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.applications[id]
	if !ok {
		return repositories.ErrApplicationNotFound
	}
	a.Status = status
	return nil
}

type stubNotificationRepo struct {
	mu      sync.Mutex
	created []models.Notification
}

func (r *stubNotificationRepo) Create(n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, *n)
	return nil
}

func (r *stubNotificationRepo) ListByUser(string, int, int) ([]models.Notification, int64, error) {
	return nil, 0, nil
}
func (r *stubNotificationRepo) MarkRead(string, string) error { return nil }
func (r *stubNotificationRepo) MarkAllRead(string) error      { return nil }
func (r *stubNotificationRepo) CountUnread(string) (int64, error) {
	return 0, nil
}
