package postgres

import (
	"gorm.io/gorm"

	"github.com/guardhq/workforce-management/internal"
	employeeDatamodel "github.com/guardhq/workforce-management/internal/core/datamodel/employee"
	roleDatamodel "github.com/guardhq/workforce-management/internal/core/datamodel/role"
	userDatamodel "github.com/guardhq/workforce-management/internal/core/datamodel/user"
	"github.com/guardhq/workforce-management/internal/user"
)

// UserRepository implements the user.Repository interface using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

func roleExists(tx *gorm.DB, roleID int64) (bool, error) {
	var count int64
	if err := tx.Model(&roleDatamodel.Role{}).Where("id = ?", roleID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func employeeExists(tx *gorm.DB, employeeNo string) (bool, error) {
	var count int64
	if err := tx.Model(&employeeDatamodel.Employee{}).Where("employee_no = ?", employeeNo).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create inserts the account after verifying username uniqueness, role
// existence and employee linkage, all within one transaction.
func (r *UserRepository) Create(u *user.User) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&userDatamodel.User{}).Where("username = ?", u.Username).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return internal.ErrUsernameTaken
		}

		if u.UserRole != nil {
			ok, err := roleExists(tx, *u.UserRole)
			if err != nil {
				return err
			}
			if !ok {
				return internal.NewValidationError("Invalid role ID", internal.ErrCodeInvalidRole)
			}
		}

		if u.Employment == user.EmploymentYes && u.EmployeeNo != nil {
			ok, err := employeeExists(tx, *u.EmployeeNo)
			if err != nil {
				return err
			}
			if !ok {
				return internal.NewValidationError("Invalid employee number", internal.ErrCodeInvalidEmployeeNo)
			}
		}

		row := userDatamodel.User{
			EmployeeNo:     u.EmployeeNo,
			Username:       u.Username,
			Password:       u.Password,
			EmployeeStatus: u.EmployeeStatus,
			UserRole:       u.UserRole,
			UserType:       u.UserType,
			Employment:     u.Employment,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}
		u.ID = row.ID
		return nil
	})
}

// Update applies a sparse patch. Validation mirrors Create: username
// uniqueness excluding self, role existence, employee linkage when
// employment flips to "Yes".
func (r *UserRepository) Update(userID int64, patch user.UpdatePatch) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing userDatamodel.User
		if err := tx.Where("id = ?", userID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return internal.ErrUserNotFound
			}
			return err
		}

		if patch.Username != nil {
			var count int64
			if err := tx.Model(&userDatamodel.User{}).
				Where("username = ? AND id != ?", *patch.Username, userID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				return internal.ErrUsernameTaken
			}
		}

		if patch.UserRole != nil && *patch.UserRole != 0 {
			ok, err := roleExists(tx, *patch.UserRole)
			if err != nil {
				return err
			}
			if !ok {
				return internal.NewValidationError("Invalid role ID", internal.ErrCodeInvalidRole)
			}
		}

		employment := existing.Employment
		if patch.Employment != nil {
			employment = *patch.Employment
		}
		if employment == user.EmploymentYes && patch.EmployeeNo != nil && *patch.EmployeeNo != "" {
			ok, err := employeeExists(tx, *patch.EmployeeNo)
			if err != nil {
				return err
			}
			if !ok {
				return internal.NewValidationError("Invalid employee number", internal.ErrCodeInvalidEmployeeNo)
			}
		}

		updates := map[string]interface{}{}
		if patch.EmployeeNo != nil {
			if *patch.EmployeeNo == "" {
				updates["employee_no"] = nil
			} else {
				updates["employee_no"] = *patch.EmployeeNo
			}
		}
		if patch.Username != nil {
			updates["username"] = *patch.Username
		}
		if patch.Password != nil {
			updates["password"] = *patch.Password
		}
		if patch.EmployeeStatus != nil {
			updates["employee_status"] = *patch.EmployeeStatus
		}
		if patch.UserRole != nil {
			if *patch.UserRole == 0 {
				updates["user_role"] = nil
			} else {
				updates["user_role"] = *patch.UserRole
			}
		}
		if patch.UserType != nil {
			updates["user_type"] = *patch.UserType
		}
		if patch.Employment != nil {
			updates["employment"] = *patch.Employment
		}

		return tx.Model(&userDatamodel.User{}).Where("id = ?", userID).Updates(updates).Error
	})
}

func (r *UserRepository) Delete(userID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", userID).Delete(&userDatamodel.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return internal.ErrUserNotFound
		}
		return nil
	})
}

func (r *UserRepository) GetByID(userID int64) (*user.User, error) {
	var row userDatamodel.User
	if err := r.db.Where("id = ?", userID).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&row), nil
}

func (r *UserRepository) GetByEmployeeNo(employeeNo string) (*user.User, error) {
	var row userDatamodel.User
	if err := r.db.Where("employee_no = ?", employeeNo).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}
	return user.FromDataModel(&row), nil
}

func (r *UserRepository) UpdatePasswordByEmployeeNo(employeeNo, passwordHash string) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("employee_no = ?", employeeNo).
		Update("password", passwordHash).Error
}

func (r *UserRepository) List() ([]user.User, error) {
	var rows []userDatamodel.User
	if err := r.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	users := make([]user.User, len(rows))
	for i := range rows {
		users[i] = *user.FromDataModel(&rows[i])
	}
	return users, nil
}
