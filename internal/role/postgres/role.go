package postgres

import (
	"gorm.io/gorm"

	"github.com/guardhq/workforce-management/internal"
	roleDatamodel "github.com/guardhq/workforce-management/internal/core/datamodel/role"
	"github.com/guardhq/workforce-management/internal/role"
)

// RoleRepository implements the role.Repository interface using GORM.
type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) role.Repository {
	return &RoleRepository{db: db}
}

// missingPermissionIDs returns the subset of ids absent from the
// permission catalog, queried within the given transaction.
func missingPermissionIDs(tx *gorm.DB, ids []int64) ([]int64, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var existing []int64
	if err := tx.Model(&roleDatamodel.Permission{}).Where("id IN ?", ids).Pluck("id", &existing).Error; err != nil {
		return nil, err
	}

	known := make(map[int64]bool, len(existing))
	for _, id := range existing {
		known[id] = true
	}

	var missing []int64
	for _, id := range ids {
		if !known[id] {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

// Create inserts the role and one link row per permission id. Any
// unknown permission id aborts the whole transaction and is reported in
// the error details.
func (r *RoleRepository) Create(name, description string, permissionIDs []int64) (*role.Role, error) {
	var created roleDatamodel.Role

	err := r.db.Transaction(func(tx *gorm.DB) error {
		missing, err := missingPermissionIDs(tx, permissionIDs)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return internal.NewValidationError("Some permission IDs do not exist", internal.ErrCodeMissingPermissions).
				WithDetails(map[string][]int64{"missing_permission_ids": missing})
		}

		created = roleDatamodel.Role{
			RoleName:        name,
			RoleDescription: description,
		}
		if err := tx.Create(&created).Error; err != nil {
			return err
		}

		for _, permissionID := range permissionIDs {
			link := roleDatamodel.RolePermission{
				RoleID:       created.ID,
				PermissionID: permissionID,
			}
			if err := tx.Create(&link).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &role.Role{
		ID:              created.ID,
		RoleName:        created.RoleName,
		RoleDescription: created.RoleDescription,
	}, nil
}

// Update applies the symmetric difference between the stored permission
// set and the target set: only additions are inserted and only removals
// are deleted.
func (r *RoleRepository) Update(roleID int64, name, description string, permissionIDs []int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var existing roleDatamodel.Role
		if err := tx.Where("id = ?", roleID).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return internal.ErrRoleNotFound
			}
			return err
		}

		missing, err := missingPermissionIDs(tx, permissionIDs)
		if err != nil {
			return err
		}
		if len(missing) > 0 {
			return internal.NewValidationError("Some permission IDs do not exist", internal.ErrCodeMissingPermissions).
				WithDetails(map[string][]int64{"missing_permission_ids": missing})
		}

		updates := map[string]interface{}{
			"role_name":        name,
			"role_description": description,
		}
		if err := tx.Model(&roleDatamodel.Role{}).Where("id = ?", roleID).Updates(updates).Error; err != nil {
			return err
		}

		var current []int64
		if err := tx.Model(&roleDatamodel.RolePermission{}).Where("role_id = ?", roleID).Pluck("permission_id", &current).Error; err != nil {
			return err
		}

		currentSet := make(map[int64]bool, len(current))
		for _, id := range current {
			currentSet[id] = true
		}
		targetSet := make(map[int64]bool, len(permissionIDs))
		for _, id := range permissionIDs {
			targetSet[id] = true
		}

		for _, id := range permissionIDs {
			if !currentSet[id] {
				link := roleDatamodel.RolePermission{RoleID: roleID, PermissionID: id}
				if err := tx.Create(&link).Error; err != nil {
					return err
				}
			}
		}

		for _, id := range current {
			if !targetSet[id] {
				if err := tx.Where("role_id = ? AND permission_id = ?", roleID, id).
					Delete(&roleDatamodel.RolePermission{}).Error; err != nil {
					return err
				}
			}
		}

		return nil
	})
}

func (r *RoleRepository) Delete(roleID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&roleDatamodel.RolePermission{}).Error; err != nil {
			return err
		}

		result := tx.Where("id = ?", roleID).Delete(&roleDatamodel.Role{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return internal.ErrRoleNotFound
		}
		return nil
	})
}

func (r *RoleRepository) List() ([]role.Role, error) {
	var rows []roleDatamodel.Role
	if err := r.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	roles := make([]role.Role, len(rows))
	for i, row := range rows {
		roles[i] = role.Role{
			ID:              row.ID,
			RoleName:        row.RoleName,
			RoleDescription: row.RoleDescription,
		}
	}
	return roles, nil
}

func (r *RoleRepository) Permissions(roleID int64) ([]role.Permission, error) {
	var exists roleDatamodel.Role
	if err := r.db.Where("id = ?", roleID).First(&exists).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrRoleNotFound
		}
		return nil, err
	}

	var rows []roleDatamodel.Permission
	err := r.db.
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	perms := make([]role.Permission, len(rows))
	for i, row := range rows {
		perms[i] = role.Permission{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
		}
	}
	return perms, nil
}

func (r *RoleRepository) ListPermissions() ([]role.Permission, error) {
	var rows []roleDatamodel.Permission
	if err := r.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	perms := make([]role.Permission, len(rows))
	for i, row := range rows {
		perms[i] = role.Permission{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
		}
	}
	return perms, nil
}
