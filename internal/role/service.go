package role

import (
	"log/slog"

	"github.com/guardhq/workforce-management/internal"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (s *Service) CreateRole(dto CreateRoleDTO) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	role, err := s.repo.Create(dto.RoleName, dto.RoleDescription, dto.Permissions)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to create role", "error", err, "role_name", dto.RoleName)
		return nil, internal.NewInternalError("failed to create role", err)
	}

	s.logger.Info("role created", "role_id", role.ID, "role_name", role.RoleName, "permissions", len(dto.Permissions))
	return role, nil
}

func (s *Service) UpdateRole(roleID int64, dto UpdateRoleDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if err := s.repo.Update(roleID, dto.RoleName, dto.RoleDescription, dto.Permissions); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to update role", "error", err, "role_id", roleID)
		return internal.NewInternalError("failed to update role", err)
	}

	s.logger.Info("role updated", "role_id", roleID)
	return nil
}

func (s *Service) DeleteRole(roleID int64) error {
	if err := s.repo.Delete(roleID); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to delete role", "error", err, "role_id", roleID)
		return internal.NewInternalError("failed to delete role", err)
	}

	s.logger.Info("role deleted", "role_id", roleID)
	return nil
}

func (s *Service) ListRoles() ([]Role, error) {
	roles, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list roles", "error", err)
		return nil, internal.NewInternalError("failed to list roles", err)
	}
	return roles, nil
}

func (s *Service) GetRolePermissions(roleID int64) ([]Permission, error) {
	perms, err := s.repo.Permissions(roleID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to get role permissions", "error", err, "role_id", roleID)
		return nil, internal.NewInternalError("failed to get role permissions", err)
	}
	return perms, nil
}

func (s *Service) ListPermissions() ([]Permission, error) {
	perms, err := s.repo.ListPermissions()
	if err != nil {
		s.logger.Error("failed to list permissions", "error", err)
		return nil, internal.NewInternalError("failed to list permissions", err)
	}
	return perms, nil
}
