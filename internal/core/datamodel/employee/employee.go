package employee

import "time"

// Employee is keyed by the business employee number, not a surrogate id.
// Employees are never hard-deleted; ActiveStatus carries the lifecycle.
type Employee struct {
	EmployeeNo        string    `gorm:"column:employee_no;primaryKey;size:45"`
	Name              string    `gorm:"column:name;not null;size:255"`
	NameInitial       *string   `gorm:"column:name_initial;size:100"`
	CallingName       *string   `gorm:"column:calling_name;size:100"`
	NIC               *string   `gorm:"column:nic;size:20"`
	DateOfBirth       time.Time `gorm:"column:date_of_birth;type:date;not null"`
	ContactNumber     string    `gorm:"column:contact_number;not null;size:20"`
	Address           string    `gorm:"column:address;not null;size:500"`
	EmployeeCategory  string    `gorm:"column:employee_category;not null;size:20"`
	EmployeeType      string    `gorm:"column:employee_type;not null;size:500"`
	Department        string    `gorm:"column:department;not null;size:100"`
	Designation       string    `gorm:"column:designation;not null;size:100"`
	DeptDesignationID *int64    `gorm:"column:department_designation_id"`
	WorkLocation      string    `gorm:"column:work_location;not null;size:255"`
	ActiveStatus      bool      `gorm:"column:active_status;not null;default:true"`
}

func (Employee) TableName() string { return "employees" }

// DesignationDepartment is the lookup joined during login to resolve an
// employee's department and designation labels.
type DesignationDepartment struct {
	ID          int64  `gorm:"primaryKey"`
	Designation string `gorm:"column:designation;not null;size:100"`
	Department  string `gorm:"column:department;not null;size:100"`
}

func (DesignationDepartment) TableName() string { return "designation_departments" }

type Supervisor struct {
	ID                   int64   `gorm:"primaryKey"`
	SupervisorEmployeeNo string  `gorm:"column:supervisor_employee_no;not null;size:45"`
	SupervisorFullname   string  `gorm:"column:supervisor_fullname;not null;size:255"`
	SupervisorEmail      *string `gorm:"column:supervisor_email;size:255"`
	SupervisorContactNo  *string `gorm:"column:supervisor_contact_no;size:20"`
}

func (Supervisor) TableName() string { return "supervisors" }

type SupervisorEmployeeAssignment struct {
	ID           int64  `gorm:"primaryKey"`
	SupervisorID int64  `gorm:"column:supervisor_id;not null"`
	EmployeeNo   string `gorm:"column:employee_no;not null;size:45"`
}

func (SupervisorEmployeeAssignment) TableName() string { return "supervisor_employee_assignments" }

// AttendanceDaily holds one check-in/check-out record per employee per day.
type AttendanceDaily struct {
	ID           int64      `gorm:"primaryKey"`
	EmployeeID   string     `gorm:"column:employee_id;not null;size:45"`
	CheckInTime  *time.Time `gorm:"column:checkin_time"`
	CheckInType  *string    `gorm:"column:checkin_type;size:45"`
	CheckOutTime *time.Time `gorm:"column:checkout_time"`
	CheckOutType *string    `gorm:"column:checkout_type;size:45"`
	Status       *string    `gorm:"column:status;size:45"`
}

func (AttendanceDaily) TableName() string { return "attendance_daily" }
