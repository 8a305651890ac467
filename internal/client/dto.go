package client

import "github.com/guardhq/workforce-management/internal"

type CreateClientDTO struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Address         *string  `json:"address"`
	EmployeeNumbers []string `json:"employee_numbers"`
}

func (d CreateClientDTO) Validate() error {
	if d.Name == "" || d.Email == "" || d.Phone == "" {
		return internal.NewValidationError("Name, email, and phone are required", internal.ErrCodeMissingFields)
	}
	return nil
}

type UpdateClientDTO struct {
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	Address         *string  `json:"address"`
	EmployeeNumbers []string `json:"employee_numbers"`
}

func (d UpdateClientDTO) Validate() error {
	if d.Name == "" || d.Email == "" || d.Phone == "" {
		return internal.NewValidationError("Name, email, and phone are required", internal.ErrCodeMissingFields)
	}
	return nil
}

type AssignEmployeesDTO struct {
	EmployeeNumbers []string `json:"employee_numbers"`
}

func (d AssignEmployeesDTO) Validate() error {
	if len(d.EmployeeNumbers) == 0 {
		return internal.NewValidationError("An array of employee numbers is required", internal.ErrCodeMissingFields)
	}
	return nil
}
