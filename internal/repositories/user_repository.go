package repositories

import (
	"errors"
	"time"

	"skillport_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
)

type UserFilter struct {
	Role     models.UserRole
	Status   models.UserStatus
	Frozen   *bool
	Search   string
	Page     int
	PageSize int
}

type UserRepository interface {
	// WithTx returns a copy of the repository bound to the transaction.
	WithTx(tx *gorm.DB) UserRepository

	FindByID(id string) (*models.User, error)
	FindByEmail(email string) (*models.User, error)
	Create(user *models.User) error
	Update(user *models.User) error
	UpdatePassword(userID, passwordHash string) error
	VerifyUser(userID string) error
	FindByVerificationToken(token string) (*models.User, error)
	FindByResetToken(token string) (*models.User, error)

	// Moderation. SetRestriction and ClearRestriction touch all
	// restriction fields in a single UPDATE.
	SetRestriction(userID, reason string, expiresAt *time.Time, restrictedBy string) error
	ClearRestriction(userID string) error
	SetTrustScore(userID string, score int) error

	FindWithFilter(filter UserFilter) ([]models.User, int64, error)
}

type UserRepositoryImpl struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) WithTx(tx *gorm.DB) UserRepository {
	return &UserRepositoryImpl{db: tx}
}

func (r *UserRepositoryImpl) FindByID(id string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) Create(user *models.User) error {
	var existing models.User
	if err := r.db.Where("email = ?", user.Email).First(&existing).Error; err == nil {
		return ErrUserAlreadyExists
	}
	return r.db.Create(user).Error
}

func (r *UserRepositoryImpl) Update(user *models.User) error {
	result := r.db.Model(user).Updates(map[string]interface{}{
		"email":              user.Email,
		"name":               user.Name,
		"status":             user.Status,
		"is_verified":        user.IsVerified,
		"verification_token": user.VerificationToken,
		"reset_token":        user.ResetToken,
		"reset_token_exp":    user.ResetTokenExp,
		"updated_at":         time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) UpdatePassword(userID, passwordHash string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"password_hash":   passwordHash,
		"reset_token":     "",
		"reset_token_exp": nil,
		"updated_at":      time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) VerifyUser(userID string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"is_verified":        true,
		"status":             models.UserStatusActive,
		"verification_token": "",
		"updated_at":         time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindByVerificationToken(token string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "verification_token = ? AND verification_token != ''", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) FindByResetToken(token string) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, "reset_token = ? AND reset_token != ''", token).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) SetRestriction(userID, reason string, expiresAt *time.Time, restrictedBy string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"frozen":                 true,
		"restriction_reason":     reason,
		"restriction_expires_at": expiresAt,
		"restricted_by":          restrictedBy,
		"updated_at":             time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) ClearRestriction(userID string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"frozen":                 false,
		"restriction_reason":     nil,
		"restriction_expires_at": nil,
		"restricted_by":          nil,
		"updated_at":             time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) SetTrustScore(userID string, score int) error {
	result := r.db.Model(&models.User{}).Where("id = ?", userID).Updates(map[string]interface{}{
		"trust_score": score,
		"updated_at":  time.Now(),
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *UserRepositoryImpl) FindWithFilter(filter UserFilter) ([]models.User, int64, error) {
	query := r.db.Model(&models.User{})

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Frozen != nil {
		query = query.Where("frozen = ?", *filter.Frozen)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("email ILIKE ? OR name ILIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []models.User
	offset := (filter.Page - 1) * filter.PageSize
	err := query.Order("created_at DESC").Limit(filter.PageSize).Offset(offset).Find(&users).Error
	return users, total, err
}
