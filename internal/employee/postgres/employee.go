package postgres

import (
	"gorm.io/gorm"

	"github.com/guardhq/workforce-management/internal"
	datamodel "github.com/guardhq/workforce-management/internal/core/datamodel/employee"
	"github.com/guardhq/workforce-management/internal/employee"
)

// EmployeeRepository implements the employee.Repository interface using GORM.
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) employee.Repository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(e *employee.Employee) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&datamodel.Employee{}).
			Where("employee_no = ?", e.EmployeeNo).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return internal.NewConflictError("Employee number already exists", internal.ErrCodeInvalidEmployeeNo)
		}

		row := toDataModel(e)
		return tx.Create(row).Error
	})
}

func (r *EmployeeRepository) Update(employeeNo string, patch employee.UpdatePatch) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing datamodel.Employee
		if err := tx.Where("employee_no = ?", employeeNo).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return internal.ErrEmployeeNotFound
			}
			return err
		}

		updates := map[string]interface{}{}
		if patch.Name != nil {
			updates["name"] = *patch.Name
		}
		if patch.NameInitial != nil {
			updates["name_initial"] = *patch.NameInitial
		}
		if patch.CallingName != nil {
			updates["calling_name"] = *patch.CallingName
		}
		if patch.NIC != nil {
			updates["nic"] = *patch.NIC
		}
		if patch.DateOfBirth != nil {
			updates["date_of_birth"] = *patch.DateOfBirth
		}
		if patch.ContactNumber != nil {
			updates["contact_number"] = *patch.ContactNumber
		}
		if patch.Address != nil {
			updates["address"] = *patch.Address
		}
		if patch.EmployeeCategory != nil {
			updates["employee_category"] = *patch.EmployeeCategory
		}
		if patch.EmployeeType != nil {
			updates["employee_type"] = *patch.EmployeeType
		}
		if patch.Department != nil {
			updates["department"] = *patch.Department
		}
		if patch.Designation != nil {
			updates["designation"] = *patch.Designation
		}
		if patch.DeptDesignationID != nil {
			updates["department_designation_id"] = *patch.DeptDesignationID
		}
		if patch.WorkLocation != nil {
			updates["work_location"] = *patch.WorkLocation
		}
		if patch.ActiveStatus != nil {
			updates["active_status"] = *patch.ActiveStatus
		}

		return tx.Model(&datamodel.Employee{}).
			Where("employee_no = ?", employeeNo).
			Updates(updates).Error
	})
}

func (r *EmployeeRepository) GetByEmployeeNo(employeeNo string) (*employee.Employee, error) {
	var row datamodel.Employee
	if err := r.db.Where("employee_no = ?", employeeNo).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}
	return fromDataModel(&row), nil
}

func (r *EmployeeRepository) List(activeOnly bool) ([]employee.Employee, error) {
	query := r.db.Order("employee_no")
	if activeOnly {
		query = query.Where("active_status = ?", true)
	}

	var rows []datamodel.Employee
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}

	employees := make([]employee.Employee, len(rows))
	for i := range rows {
		employees[i] = *fromDataModel(&rows[i])
	}
	return employees, nil
}

func toDataModel(e *employee.Employee) *datamodel.Employee {
	return &datamodel.Employee{
		EmployeeNo:        e.EmployeeNo,
		Name:              e.Name,
		NameInitial:       e.NameInitial,
		CallingName:       e.CallingName,
		NIC:               e.NIC,
		DateOfBirth:       e.DateOfBirth,
		ContactNumber:     e.ContactNumber,
		Address:           e.Address,
		EmployeeCategory:  e.EmployeeCategory,
		EmployeeType:      e.EmployeeType,
		Department:        e.Department,
		Designation:       e.Designation,
		DeptDesignationID: e.DeptDesignationID,
		WorkLocation:      e.WorkLocation,
		ActiveStatus:      e.ActiveStatus,
	}
}

func fromDataModel(row *datamodel.Employee) *employee.Employee {
	return &employee.Employee{
		EmployeeNo:        row.EmployeeNo,
		Name:              row.Name,
		NameInitial:       row.NameInitial,
		CallingName:       row.CallingName,
		NIC:               row.NIC,
		DateOfBirth:       row.DateOfBirth,
		ContactNumber:     row.ContactNumber,
		Address:           row.Address,
		EmployeeCategory:  row.EmployeeCategory,
		EmployeeType:      row.EmployeeType,
		Department:        row.Department,
		Designation:       row.Designation,
		DeptDesignationID: row.DeptDesignationID,
		WorkLocation:      row.WorkLocation,
		ActiveStatus:      row.ActiveStatus,
	}
}
