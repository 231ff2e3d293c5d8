package services

import (
	"skillport_backend/internal/models"
	"skillport_backend/internal/repositories"
	"skillport_backend/internal/services/dto"
	"skillport_backend/pkg/apperrors"
)

type UserService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// GetProfile returns a user. Email and other private fields are only
// included when the requester is the user themselves.
func (s *UserService) GetProfile(id, requesterID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := dto.ToUserResponse(user, id == requesterID)
	return &resp, nil
}

func (s *UserService) UpdateProfile(id string, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
	if req.Avatar != nil {
		user.Avatar = *req.Avatar
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.ToUserResponse(user, true)
	return &resp, nil
}

// ListUsers is admin-only and returns the unredacted moderation view.
func (s *UserService) ListUsers(query *dto.UserListQuery) ([]dto.AdminUserResponse, *dto.ListMeta, error) {
	query.Normalize()

	filter := repositories.UserFilter{
		Role:     models.UserRole(query.Role),
		Status:   models.UserStatus(query.Status),
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.Limit,
	}

	users, total, err := s.userRepo.FindWithFilter(filter)
	if err != nil {
		return nil, nil, apperrors.InternalError(err)
	}

	resp := make([]dto.AdminUserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.ToAdminUserResponse(&users[i]))
	}
	return resp, &dto.ListMeta{Page: query.Page, Limit: query.Limit, Total: total}, nil
}

func (s *UserService) GetAdminView(id string) (*dto.AdminUserResponse, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if err == repositories.ErrUserNotFound {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, apperrors.InternalError(err)
	}
	resp := dto.ToAdminUserResponse(user)
	return &resp, nil
}
