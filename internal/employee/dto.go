package employee

import (
	"time"

	"github.com/guardhq/workforce-management/internal"
)

type CreateEmployeeDTO struct {
	EmployeeNo        string  `json:"employee_no"`
	Name              string  `json:"name"`
	NameInitial       *string `json:"name_initial"`
	CallingName       *string `json:"calling_name"`
	NIC               *string `json:"nic"`
	DateOfBirth       string  `json:"date_of_birth"`
	ContactNumber     string  `json:"contact_number"`
	Address           string  `json:"address"`
	EmployeeCategory  string  `json:"employee_category"`
	EmployeeType      string  `json:"employee_type"`
	Department        string  `json:"department"`
	Designation       string  `json:"designation"`
	DeptDesignationID *int64  `json:"department_designation_id"`
	WorkLocation      string  `json:"work_location"`
}

func (d CreateEmployeeDTO) Validate() error {
	if d.EmployeeNo == "" || d.Name == "" || d.DateOfBirth == "" ||
		d.ContactNumber == "" || d.Address == "" {
		return internal.NewValidationError(
			"Employee number, name, date of birth, contact number, and address are required",
			internal.ErrCodeMissingFields,
		)
	}
	if _, err := time.Parse("2006-01-02", d.DateOfBirth); err != nil {
		return internal.NewValidationFieldError("date_of_birth", "must be in YYYY-MM-DD format", internal.ErrCodeInvalidDateFormat)
	}
	return nil
}

// BirthDate parses the validated date string.
func (d CreateEmployeeDTO) BirthDate() time.Time {
	t, _ := time.Parse("2006-01-02", d.DateOfBirth)
	return t
}

type UpdateEmployeeDTO struct {
	Name              *string `json:"name"`
	NameInitial       *string `json:"name_initial"`
	CallingName       *string `json:"calling_name"`
	NIC               *string `json:"nic"`
	DateOfBirth       *string `json:"date_of_birth"`
	ContactNumber     *string `json:"contact_number"`
	Address           *string `json:"address"`
	EmployeeCategory  *string `json:"employee_category"`
	EmployeeType      *string `json:"employee_type"`
	Department        *string `json:"department"`
	Designation       *string `json:"designation"`
	DeptDesignationID *int64  `json:"department_designation_id"`
	WorkLocation      *string `json:"work_location"`
	ActiveStatus      *bool   `json:"active_status"`
}

func (d UpdateEmployeeDTO) Validate() error {
	if d.DateOfBirth != nil {
		if _, err := time.Parse("2006-01-02", *d.DateOfBirth); err != nil {
			return internal.NewValidationFieldError("date_of_birth", "must be in YYYY-MM-DD format", internal.ErrCodeInvalidDateFormat)
		}
	}
	return nil
}

func (d UpdateEmployeeDTO) ToPatch() UpdatePatch {
	patch := UpdatePatch{
		Name:              d.Name,
		NameInitial:       d.NameInitial,
		CallingName:       d.CallingName,
		NIC:               d.NIC,
		ContactNumber:     d.ContactNumber,
		Address:           d.Address,
		EmployeeCategory:  d.EmployeeCategory,
		EmployeeType:      d.EmployeeType,
		Department:        d.Department,
		Designation:       d.Designation,
		DeptDesignationID: d.DeptDesignationID,
		WorkLocation:      d.WorkLocation,
		ActiveStatus:      d.ActiveStatus,
	}
	if d.DateOfBirth != nil {
		t, _ := time.Parse("2006-01-02", *d.DateOfBirth)
		patch.DateOfBirth = &t
	}
	return patch
}
