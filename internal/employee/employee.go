package employee

import "time"

// Employee is the workforce directory record, keyed by the business
// employee number assigned at hire. Records are deactivated, never
// removed, so historical scans and assignments stay resolvable.
type Employee struct {
	EmployeeNo        string    `json:"employee_no"`
	Name              string    `json:"name"`
	NameInitial       *string   `json:"name_initial,omitempty"`
	CallingName       *string   `json:"calling_name,omitempty"`
	NIC               *string   `json:"nic,omitempty"`
	DateOfBirth       time.Time `json:"date_of_birth"`
	ContactNumber     string    `json:"contact_number"`
	Address           string    `json:"address"`
	EmployeeCategory  string    `json:"employee_category"`
	EmployeeType      string    `json:"employee_type"`
	Department        string    `json:"department"`
	Designation       string    `json:"designation"`
	DeptDesignationID *int64    `json:"department_designation_id,omitempty"`
	WorkLocation      string    `json:"work_location"`
	ActiveStatus      bool      `json:"active_status"`
}

// UpdatePatch carries only the fields the caller wants changed. Nil
// means leave alone.
type UpdatePatch struct {
	Name              *string
	NameInitial       *string
	CallingName       *string
	NIC               *string
	DateOfBirth       *time.Time
	ContactNumber     *string
	Address           *string
	EmployeeCategory  *string
	EmployeeType      *string
	Department        *string
	Designation       *string
	DeptDesignationID *int64
	WorkLocation      *string
	ActiveStatus      *bool
}

func (p UpdatePatch) Empty() bool {
	return p.Name == nil && p.NameInitial == nil && p.CallingName == nil &&
		p.NIC == nil && p.DateOfBirth == nil && p.ContactNumber == nil &&
		p.Address == nil && p.EmployeeCategory == nil && p.EmployeeType == nil &&
		p.Department == nil && p.Designation == nil && p.DeptDesignationID == nil &&
		p.WorkLocation == nil && p.ActiveStatus == nil
}

type Repository interface {
	Create(e *Employee) error
	Update(employeeNo string, patch UpdatePatch) error
	GetByEmployeeNo(employeeNo string) (*Employee, error)
	List(activeOnly bool) ([]Employee, error)
}
