package employee

import (
	"log/slog"

	"github.com/guardhq/workforce-management/internal"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) AddEmployee(dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	e := &Employee{
		EmployeeNo:        dto.EmployeeNo,
		Name:              dto.Name,
		NameInitial:       dto.NameInitial,
		CallingName:       dto.CallingName,
		NIC:               dto.NIC,
		DateOfBirth:       dto.BirthDate(),
		ContactNumber:     dto.ContactNumber,
		Address:           dto.Address,
		EmployeeCategory:  dto.EmployeeCategory,
		EmployeeType:      dto.EmployeeType,
		Department:        dto.Department,
		Designation:       dto.Designation,
		DeptDesignationID: dto.DeptDesignationID,
		WorkLocation:      dto.WorkLocation,
		ActiveStatus:      true,
	}

	if err := s.repo.Create(e); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to add employee", "error", err, "employee_no", dto.EmployeeNo)
		return nil, internal.NewInternalError("failed to add employee", err)
	}

	s.logger.Info("employee added", "employee_no", e.EmployeeNo)
	return e, nil
}

func (s *Service) UpdateEmployee(employeeNo string, dto UpdateEmployeeDTO) error {
	if err := dto.Validate(); err != nil {
		return err
	}

	patch := dto.ToPatch()
	if patch.Empty() {
		return internal.NewValidationError("No fields to update", internal.ErrCodeNoFieldsToUpdate)
	}

	if err := s.repo.Update(employeeNo, patch); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return err
		}
		s.logger.Error("failed to update employee", "error", err, "employee_no", employeeNo)
		return internal.NewInternalError("failed to update employee", err)
	}

	s.logger.Info("employee updated", "employee_no", employeeNo)
	return nil
}

func (s *Service) GetEmployee(employeeNo string) (*Employee, error) {
	e, err := s.repo.GetByEmployeeNo(employeeNo)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to get employee", "error", err, "employee_no", employeeNo)
		return nil, internal.NewInternalError("failed to get employee", err)
	}
	return e, nil
}

func (s *Service) ListEmployees(activeOnly bool) ([]Employee, error) {
	employees, err := s.repo.List(activeOnly)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, internal.NewInternalError("failed to list employees", err)
	}
	return employees, nil
}
