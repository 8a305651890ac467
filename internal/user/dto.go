package user

import "github.com/guardhq/workforce-management/internal"

type CreateUserDTO struct {
	EmployeeNo *string `json:"employee_no"`
	Username   string  `json:"username"`
	Password   string  `json:"password"`
	UserRole   *int64  `json:"user_role"`
	UserType   string  `json:"user_type"`
	Employment string  `json:"employment"`
}

func (d CreateUserDTO) Validate() error {
	if d.Username == "" || d.Password == "" {
		return internal.NewValidationError("Username and password are required", internal.ErrCodeMissingFields)
	}
	if d.UserType != "" && !ValidUserType(d.UserType) {
		return internal.NewValidationError("Invalid user type", internal.ErrCodeInvalidUserType)
	}
	if !ValidEmployment(d.Employment) {
		return internal.NewValidationError("Invalid employment value", internal.ErrCodeInvalidEmployment)
	}
	return nil
}

// UpdateUserDTO is a sparse patch; absent fields are left untouched,
// which is not the same as setting them to null.
type UpdateUserDTO struct {
	EmployeeNo     *string `json:"employee_no"`
	Username       *string `json:"username"`
	Password       *string `json:"password"`
	EmployeeStatus *string `json:"employee_status"`
	UserRole       *int64  `json:"user_role"`
	UserType       *string `json:"user_type"`
	Employment     *string `json:"employment"`
}

func (d UpdateUserDTO) Validate() error {
	if d.UserType != nil && !ValidUserType(*d.UserType) {
		return internal.NewValidationError("Invalid user type", internal.ErrCodeInvalidUserType)
	}
	if d.Employment != nil && !ValidEmployment(*d.Employment) {
		return internal.NewValidationError("Invalid employment value", internal.ErrCodeInvalidEmployment)
	}
	return nil
}

func (d UpdateUserDTO) ToPatch() UpdatePatch {
	return UpdatePatch{
		EmployeeNo:     d.EmployeeNo,
		Username:       d.Username,
		Password:       d.Password,
		EmployeeStatus: d.EmployeeStatus,
		UserRole:       d.UserRole,
		UserType:       d.UserType,
		Employment:     d.Employment,
	}
}

type ResetPasswordDTO struct {
	EmployeeNo  string `json:"employee_no"`
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (d ResetPasswordDTO) Validate() error {
	if d.EmployeeNo == "" || d.OldPassword == "" || d.NewPassword == "" {
		return internal.NewValidationError(
			"Employee number, old password, and new password are required",
			internal.ErrCodeMissingFields,
		)
	}
	return nil
}
