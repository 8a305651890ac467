package user

import (
	"log/slog"

	"github.com/guardhq/workforce-management/internal"
	"github.com/guardhq/workforce-management/internal/auth"
)

const minPasswordLength = 8

type Service struct {
	repo   Repository
	hasher *auth.PasswordHasher
	logger *slog.Logger
}

func NewService(repo Repository, hasher *auth.PasswordHasher, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		logger: logger,
	}
}

func (s *Service) CreateUser(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(dto.Password)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	// employee_no is only carried for employee-backed accounts.
	var employeeNo *string
	if dto.Employment == EmploymentYes {
		employeeNo = dto.EmployeeNo
	}

	status := "ACTIVE"
	u := &User{
		EmployeeNo:     employeeNo,
		Username:       dto.Username,
		Password:       hash,
		EmployeeStatus: &status,
		UserRole:       dto.UserRole,
		UserType:       dto.UserType,
		Employment:     dto.Employment,
	}

	if err := s.repo.Create(u); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to create user", "error", err, "username", dto.Username)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", u.ID, "username", u.Username, "user_type", u.UserType)
	return u, nil
}

func (s *Service) UpdateUser(userID int64, dto UpdateUserDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	patch := dto.ToPatch()
	if patch.Empty() {
		return internal.NewValidationError("No fields provided to update", internal.ErrCodeNoFieldsToUpdate)
	}

	// Callers forwarding a stored hash back must not get it re-hashed.
	if patch.Password != nil && !auth.IsHashed(*patch.Password) {
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			s.logger.Error("password hashing failed", "error", err)
			return internal.NewInternalError("failed to update user", err)
		}
		patch.Password = &hash
	}

	if err := s.repo.Update(userID, patch); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to update user", "error", err, "user_id", userID)
		return internal.NewInternalError("failed to update user", err)
	}

	s.logger.Info("user updated", "user_id", userID)
	return nil
}

func (s *Service) ResetPassword(dto ResetPasswordDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	u, err := s.repo.GetByEmployeeNo(dto.EmployeeNo)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to load user for password reset", "error", err, "employee_no", dto.EmployeeNo)
		return internal.NewInternalError("failed to reset password", err)
	}

	if !s.hasher.Verify(dto.OldPassword, u.Password) {
		return internal.NewValidationError("Old password is incorrect", internal.ErrCodeWrongOldPassword)
	}

	if s.hasher.Verify(dto.NewPassword, u.Password) {
		return internal.NewValidationError(
			"New password must be different from the old password",
			internal.ErrCodePasswordReused,
		)
	}

	if len(dto.NewPassword) < minPasswordLength {
		return internal.NewValidationError(
			"New password must be at least 8 characters long",
			internal.ErrCodeWeakPassword,
		)
	}

	hash, err := s.hasher.Hash(dto.NewPassword)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return internal.NewInternalError("failed to reset password", err)
	}

	if err := s.repo.UpdatePasswordByEmployeeNo(dto.EmployeeNo, hash); err != nil {
		s.logger.Error("failed to store new password", "error", err, "employee_no", dto.EmployeeNo)
		return internal.NewInternalError("failed to reset password", err)
	}

	s.logger.Info("password reset", "employee_no", dto.EmployeeNo)
	return nil
}

func (s *Service) DeleteUser(userID int64) error {
	if err := s.repo.Delete(userID); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to delete user", "error", err, "user_id", userID)
		return internal.NewInternalError("failed to delete user", err)
	}

	s.logger.Info("user deleted", "user_id", userID)
	return nil
}

func (s *Service) GetUser(userID int64) (*User, error) {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to get user", "error", err, "user_id", userID)
		return nil, internal.NewInternalError("failed to get user", err)
	}
	return u, nil
}

func (s *Service) ListUsers() ([]User, error) {
	users, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list users", "error", err)
		return nil, internal.NewInternalError("failed to list users", err)
	}
	return users, nil
}
