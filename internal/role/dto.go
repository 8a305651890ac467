package role

import "github.com/guardhq/workforce-management/internal"

type CreateRoleDTO struct {
	RoleName        string  `json:"role_name"`
	RoleDescription string  `json:"role_description"`
	Permissions     []int64 `json:"permissions"`
}

type UpdateRoleDTO struct {
	RoleName        string  `json:"role_name"`
	RoleDescription string  `json:"role_description"`
	Permissions     []int64 `json:"permissions"`
}

func (d CreateRoleDTO) Validate() error {
	if d.RoleName == "" {
		return internal.NewValidationFieldError("role_name", "role_name is required", internal.ErrCodeMissingFields)
	}
	if d.RoleDescription == "" {
		return internal.NewValidationFieldError("role_description", "role_description is required", internal.ErrCodeMissingFields)
	}
	return nil
}

func (d UpdateRoleDTO) Validate() error {
	if d.RoleName == "" {
		return internal.NewValidationFieldError("role_name", "role_name is required", internal.ErrCodeMissingFields)
	}
	if d.Permissions == nil {
		return internal.NewValidationFieldError("permissions", "permissions is required", internal.ErrCodeMissingFields)
	}
	return nil
}
