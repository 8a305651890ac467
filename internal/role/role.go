package role

// Role is a named permission set assignable to user accounts.
type Role struct {
	ID              int64  `json:"id"`
	RoleName        string `json:"role_name"`
	RoleDescription string `json:"role_description"`
}

type Permission struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Repository is the role/permission store contract. Multi-row writes
// (role plus its permission links) are atomic: implementations run them
// in one transaction and never leave a partial permission set behind.
type Repository interface {
	Create(name, description string, permissionIDs []int64) (*Role, error)
	Update(roleID int64, name, description string, permissionIDs []int64) error
	Delete(roleID int64) error
	List() ([]Role, error)
	Permissions(roleID int64) ([]Permission, error)
	ListPermissions() ([]Permission, error)
}
