package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/guardhq/workforce-management/internal"
	"github.com/guardhq/workforce-management/internal/client"
	clientDatamodel "github.com/guardhq/workforce-management/internal/core/datamodel/client"
	employeeDatamodel "github.com/guardhq/workforce-management/internal/core/datamodel/employee"
	userDatamodel "github.com/guardhq/workforce-management/internal/core/datamodel/user"
	"github.com/guardhq/workforce-management/internal/user"
)

// ClientRepository implements the client.Repository interface using GORM.
type ClientRepository struct {
	db *gorm.DB
}

func NewClientRepository(db *gorm.DB) client.Repository {
	return &ClientRepository{db: db}
}

func derivedEmployeeNo(clientID int64) string {
	return fmt.Sprintf("CL%d", clientID)
}

// missingEmployeeNos returns the subset of numbers with no employee row,
// checked inside the workflow transaction.
func missingEmployeeNos(tx *gorm.DB, numbers []string) ([]string, error) {
	if len(numbers) == 0 {
		return nil, nil
	}

	var existing []string
	if err := tx.Model(&employeeDatamodel.Employee{}).
		Where("employee_no IN ?", numbers).
		Pluck("employee_no", &existing).Error; err != nil {
		return nil, err
	}

	known := make(map[string]bool, len(existing))
	for _, no := range existing {
		known[no] = true
	}

	var missing []string
	for _, no := range numbers {
		if !known[no] {
			missing = append(missing, no)
		}
	}
	return missing, nil
}

func invalidEmployeesError(missing []string) error {
	return internal.NewValidationError("Some employee numbers do not exist", internal.ErrCodeInvalidEmployeeNo).
		WithDetails(map[string][]string{"invalid_employee_numbers": missing})
}

// CreateWithAccount runs the full onboarding unit: client row, derived
// login account and assignments. Nothing persists when any step fails.
func (r *ClientRepository) CreateWithAccount(c *client.Client, derivedPasswordHash string, employeeNumbers []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		row := clientDatamodel.Client{
			Name:    c.Name,
			Email:   c.Email,
			Phone:   c.Phone,
			Address: c.Address,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		employeeNo := derivedEmployeeNo(row.ID)
		account := userDatamodel.User{
			EmployeeNo: &employeeNo,
			Username:   c.Email,
			Password:   derivedPasswordHash,
			UserType:   user.UserTypeClient,
			Employment: user.EmploymentNo,
		}
		if err := tx.Create(&account).Error; err != nil {
			return err
		}

		if len(employeeNumbers) > 0 {
			missing, err := missingEmployeeNos(tx, employeeNumbers)
			if err != nil {
				return err
			}
			if len(missing) > 0 {
				return invalidEmployeesError(missing)
			}

			for _, no := range employeeNumbers {
				assignment := clientDatamodel.EmployeeClientAssignment{
					ClientID:   row.ID,
					EmployeeNo: no,
				}
				if err := tx.Create(&assignment).Error; err != nil {
					return err
				}
			}
		}

		c.ID = row.ID
		c.CreatedAt = row.CreatedAt
		c.UpdatedAt = row.UpdatedAt
		return nil
	})
}

// Update rewrites the client fields, keeps the derived account's
// username tracking the client email, and reconciles the assignment set
// as inserts of additions and deletes of removals only.
func (r *ClientRepository) Update(c *client.Client, employeeNumbers []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing clientDatamodel.Client
		if err := tx.Where("id = ?", c.ID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return internal.ErrClientNotFound
			}
			return err
		}

		missing, err := missingEmployeeNos(tx, employeeNumbers)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return invalidEmployeesError(missing)
		}

		updates := map[string]interface{}{
			"name":    c.Name,
			"email":   c.Email,
			"phone":   c.Phone,
			"address": c.Address,
		}
		if err := tx.Model(&clientDatamodel.Client{}).Where("id = ?", c.ID).Updates(updates).Error; err != nil {
			return err
		}

		// The derived account's username is the client email, 1:1.
		if c.Email != existing.Email {
			if err := tx.Model(&userDatamodel.User{}).
				Where("employee_no = ? AND user_type = ?", derivedEmployeeNo(c.ID), user.UserTypeClient).
				Update("username", c.Email).Error; err != nil {
				return err
			}
		}

		var current []string
		if err := tx.Model(&clientDatamodel.EmployeeClientAssignment{}).
			Where("client_id = ?", c.ID).
			Pluck("employee_no", &current).Error; err != nil {
			return err
		}

		currentSet := make(map[string]bool, len(current))
		for _, no := range current {
			currentSet[no] = true
		}
		targetSet := make(map[string]bool, len(employeeNumbers))
		for _, no := range employeeNumbers {
			targetSet[no] = true
		}

		for _, no := range current {
			if !targetSet[no] {
				if err := tx.Where("client_id = ? AND employee_no = ?", c.ID, no).
					Delete(&clientDatamodel.EmployeeClientAssignment{}).Error; err != nil {
					return err
				}
			}
		}

		for _, no := range employeeNumbers {
			if !currentSet[no] {
				assignment := clientDatamodel.EmployeeClientAssignment{
					ClientID:   c.ID,
					EmployeeNo: no,
				}
				if err := tx.Create(&assignment).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

// Delete cascades assignments, the derived account, then the client row.
func (r *ClientRepository) Delete(clientID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing clientDatamodel.Client
		if err := tx.Where("id = ?", clientID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return internal.ErrClientNotFound
			}
			return err
		}

		if err := tx.Where("client_id = ?", clientID).
			Delete(&clientDatamodel.EmployeeClientAssignment{}).Error; err != nil {
			return err
		}

		if err := tx.Where("employee_no = ? AND user_type = ?", derivedEmployeeNo(clientID), user.UserTypeClient).
			Delete(&userDatamodel.User{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", clientID).Delete(&clientDatamodel.Client{}).Error
	})
}

func (r *ClientRepository) GetByID(clientID int64) (*client.Client, error) {
	var row clientDatamodel.Client
	if err := r.db.Where("id = ?", clientID).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrClientNotFound
		}
		return nil, err
	}
	return fromDataModel(&row), nil
}

func (r *ClientRepository) List() ([]client.Client, error) {
	var rows []clientDatamodel.Client
	if err := r.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	clients := make([]client.Client, len(rows))
	for i := range rows {
		clients[i] = *fromDataModel(&rows[i])
	}
	return clients, nil
}

const assignedEmployeeColumns = "employees.employee_no, employees.name, employees.contact_number, " +
	"employees.employee_category, employees.department, employees.designation, employees.work_location"

func (r *ClientRepository) AssignedEmployees(clientID int64) ([]client.AssignedEmployee, error) {
	var rows []client.AssignedEmployee
	err := r.db.
		Table("employees").
		Select(assignedEmployeeColumns).
		Joins("JOIN employee_client_assignments ON employee_client_assignments.employee_no = employees.employee_no").
		Where("employee_client_assignments.client_id = ?", clientID).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ClientRepository) UnassignedEmployees() ([]client.AssignedEmployee, error) {
	var rows []client.AssignedEmployee
	err := r.db.
		Table("employees").
		Select(assignedEmployeeColumns).
		Joins("LEFT JOIN employee_client_assignments ON employee_client_assignments.employee_no = employees.employee_no").
		Where("employee_client_assignments.employee_no IS NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// AssignEmployees is additive; the existing roster stays untouched and
// re-assigning an already-assigned employee rejects the whole batch.
func (r *ClientRepository) AssignEmployees(clientID int64, employeeNumbers []string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&clientDatamodel.Client{}).
			Where("id = ?", clientID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return internal.ErrClientNotFound
		}

		missing, err := missingEmployeeNos(tx, employeeNumbers)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return invalidEmployeesError(missing)
		}

		var assigned []string
		if err := tx.Model(&clientDatamodel.EmployeeClientAssignment{}).
			Where("client_id = ? AND employee_no IN ?", clientID, employeeNumbers).
			Pluck("employee_no", &assigned).Error; err != nil {
			return err
		}
		if len(assigned) > 0 {
			return internal.NewConflictError("Some employees are already assigned to this client", internal.ErrCodeDuplicateAssignment).
				WithDetails(map[string][]string{"assigned_employee_numbers": assigned})
		}

		for _, no := range employeeNumbers {
			assignment := clientDatamodel.EmployeeClientAssignment{
				ClientID:   clientID,
				EmployeeNo: no,
			}
			if err := tx.Create(&assignment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ClientRepository) RemoveAssignment(assignmentID int64) error {
	result := r.db.Where("id = ?", assignmentID).
		Delete(&clientDatamodel.EmployeeClientAssignment{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.NewNotFoundError("Assignment not found", internal.ErrCodeAssignmentNotFound)
	}
	return nil
}

func fromDataModel(row *clientDatamodel.Client) *client.Client {
	return &client.Client{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		Phone:     row.Phone,
		Address:   row.Address,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
