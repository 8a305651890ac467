package client

import (
	"log/slog"

	"github.com/guardhq/workforce-management/internal"
	"github.com/guardhq/workforce-management/internal/auth"
)

type Service struct {
	repo              Repository
	hasher            *auth.PasswordHasher
	defaultClientPass string
	logger            *slog.Logger
}

func NewService(repo Repository, hasher *auth.PasswordHasher, defaultClientPass string, logger *slog.Logger) *Service {
	return &Service{
		repo:              repo,
		hasher:            hasher,
		defaultClientPass: defaultClientPass,
		logger:            logger,
	}
}

// AddClient creates the client, its derived login account and the
// initial employee assignments as one atomic unit.
func (s *Service) AddClient(dto CreateClientDTO) (*Client, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(s.defaultClientPass)
	if err != nil {
		s.logger.Error("password hashing failed", "error", err)
		return nil, internal.NewInternalError("failed to add client", err)
	}

	c := &Client{
		Name:    dto.Name,
		Email:   dto.Email,
		Phone:   dto.Phone,
		Address: dto.Address,
	}

	if err := s.repo.CreateWithAccount(c, hash, dto.EmployeeNumbers); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to add client", "error", err, "email", dto.Email)
		return nil, internal.NewInternalError("failed to add client", err)
	}

	s.logger.Info("client added", "client_id", c.ID, "email", c.Email, "assignments", len(dto.EmployeeNumbers))
	return c, nil
}

func (s *Service) UpdateClient(clientID int64, dto UpdateClientDTO) (*Client, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		ID:      clientID,
		Name:    dto.Name,
		Email:   dto.Email,
		Phone:   dto.Phone,
		Address: dto.Address,
	}

	if err := s.repo.Update(c, dto.EmployeeNumbers); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to update client", "error", err, "client_id", clientID)
		return nil, internal.NewInternalError("failed to update client", err)
	}

	s.logger.Info("client updated", "client_id", clientID)
	return c, nil
}

func (s *Service) DeleteClient(clientID int64) error {
	if err := s.repo.Delete(clientID); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to delete client", "error", err, "client_id", clientID)
		return internal.NewInternalError("failed to delete client", err)
	}

	s.logger.Info("client deleted", "client_id", clientID)
	return nil
}

func (s *Service) GetClient(clientID int64) (*Client, error) {
	c, err := s.repo.GetByID(clientID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to get client", "error", err, "client_id", clientID)
		return nil, internal.NewInternalError("failed to get client", err)
	}
	return c, nil
}

func (s *Service) ListClients() ([]Client, error) {
	clients, err := s.repo.List()
	if err != nil {
		s.logger.Error("failed to list clients", "error", err)
		return nil, internal.NewInternalError("failed to list clients", err)
	}
	return clients, nil
}

func (s *Service) GetAssignedEmployees(clientID int64) ([]AssignedEmployee, error) {
	employees, err := s.repo.AssignedEmployees(clientID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to get assigned employees", "error", err, "client_id", clientID)
		return nil, internal.NewInternalError("failed to get assigned employees", err)
	}
	return employees, nil
}

// AssignEmployees adds employees to a client's roster without disturbing
// the existing assignments.
func (s *Service) AssignEmployees(clientID int64, dto AssignEmployeesDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	if err := s.repo.AssignEmployees(clientID, dto.EmployeeNumbers); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to assign employees", "error", err, "client_id", clientID)
		return internal.NewInternalError("failed to assign employees", err)
	}

	s.logger.Info("employees assigned", "client_id", clientID, "count", len(dto.EmployeeNumbers))
	return nil
}

func (s *Service) RemoveAssignment(assignmentID int64) error {
	if err := s.repo.RemoveAssignment(assignmentID); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to remove assignment", "error", err, "assignment_id", assignmentID)
		return internal.NewInternalError("failed to remove assignment", err)
	}

	s.logger.Info("assignment removed", "assignment_id", assignmentID)
	return nil
}

// GetUnassignedEmployees lists employees with no client assignment.
func (s *Service) GetUnassignedEmployees() ([]AssignedEmployee, error) {
	employees, err := s.repo.UnassignedEmployees()
	if err != nil {
		s.logger.Error("failed to get unassigned employees", "error", err)
		return nil, internal.NewInternalError("failed to get unassigned employees", err)
	}
	return employees, nil
}
