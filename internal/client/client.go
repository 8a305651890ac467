package client

import "time"

// Client owns a derived login account (employee_no "CL"+id, username =
// email) and a set of employee assignments; both live and die with the
// client row.
type Client struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   *string   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AssignedEmployee is the directory projection of an employee working a
// client's contract.
type AssignedEmployee struct {
	EmployeeNo    string `json:"employee_no"`
	Name          string `json:"name"`
	ContactNumber string `json:"contact_number"`
	Category      string `json:"employee_category"`
	Department    string `json:"department"`
	Designation   string `json:"designation"`
	WorkLocation  string `json:"work_location"`
}

// Repository is the onboarding-workflow store contract. The multi-table
// writes (client + derived account + assignments) are atomic.
type Repository interface {
	// CreateWithAccount inserts the client, derives its login account
	// with the supplied password hash, and assigns the given employees.
	// Unknown employee numbers abort the whole transaction.
	CreateWithAccount(c *Client, derivedPasswordHash string, employeeNumbers []string) error

	// Update rewrites client fields, renames the derived account when
	// the email changes, and reconciles the assignment set as a minimal
	// delta.
	Update(c *Client, employeeNumbers []string) error

	// Delete cascades: assignments, derived account, client row.
	Delete(clientID int64) error

	GetByID(clientID int64) (*Client, error)
	List() ([]Client, error)

	AssignedEmployees(clientID int64) ([]AssignedEmployee, error)
	UnassignedEmployees() ([]AssignedEmployee, error)

	// AssignEmployees adds assignments without touching existing ones.
	// Already-assigned numbers abort the batch as a conflict.
	AssignEmployees(clientID int64, employeeNumbers []string) error

	// RemoveAssignment deletes a single assignment by its row id.
	RemoveAssignment(assignmentID int64) error
}
