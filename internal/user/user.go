package user

import (
	userDatamodel "github.com/guardhq/workforce-management/internal/core/datamodel/user"
)

const (
	UserTypeAdmin      = "admin"
	UserTypeSuperadmin = "superadmin"
	UserTypeUser       = "user"
	UserTypeClient     = "client"

	EmploymentYes = "Yes"
	EmploymentNo  = "No"
)

// ValidUserType reports whether t is one of the enumerated account types.
func ValidUserType(t string) bool {
	switch t {
	case UserTypeAdmin, UserTypeSuperadmin, UserTypeUser, UserTypeClient:
		return true
	}
	return false
}

func ValidEmployment(e string) bool {
	return e == EmploymentYes || e == EmploymentNo
}

type User struct {
	ID             int64   `json:"id"`
	EmployeeNo     *string `json:"employee_no"`
	Username       string  `json:"username"`
	Password       string  `json:"-"`
	EmployeeStatus *string `json:"employee_status"`
	UserRole       *int64  `json:"user_role"`
	UserType       string  `json:"user_type"`
	Employment     string  `json:"employment"`
}

// UpdatePatch is a sparse patch: nil fields are left untouched. For the
// nullable columns an explicit empty value clears the column.
type UpdatePatch struct {
	EmployeeNo     *string
	Username       *string
	Password       *string
	EmployeeStatus *string
	UserRole       *int64
	UserType       *string
	Employment     *string
}

func (p UpdatePatch) Empty() bool {
	return p.EmployeeNo == nil && p.Username == nil && p.Password == nil &&
		p.EmployeeStatus == nil && p.UserRole == nil && p.UserType == nil &&
		p.Employment == nil
}

// Repository is the account store contract. Create and Update run their
// referential checks (role id, employee number, username uniqueness)
// inside the same transaction as the write.
type Repository interface {
	Create(u *User) error
	Update(userID int64, patch UpdatePatch) error
	Delete(userID int64) error
	GetByID(userID int64) (*User, error)
	GetByEmployeeNo(employeeNo string) (*User, error)
	UpdatePasswordByEmployeeNo(employeeNo, passwordHash string) error
	List() ([]User, error)
}

func FromDataModel(row *userDatamodel.User) *User {
	return &User{
		ID:             row.ID,
		EmployeeNo:     row.EmployeeNo,
		Username:       row.Username,
		Password:       row.Password,
		EmployeeStatus: row.EmployeeStatus,
		UserRole:       row.UserRole,
		UserType:       row.UserType,
		Employment:     row.Employment,
	}
}
