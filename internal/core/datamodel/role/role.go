package role

type Role struct {
	ID              int64  `gorm:"primaryKey"`
	RoleName        string `gorm:"column:role_name;not null;size:100"`
	RoleDescription string `gorm:"column:role_description;size:255"`
}

func (Role) TableName() string { return "roles" }

type Permission struct {
	ID          int64  `gorm:"primaryKey"`
	Name        string `gorm:"column:name;uniqueIndex;not null;size:100"`
	Description string `gorm:"column:description;size:255"`
}

func (Permission) TableName() string { return "permissions" }

type RolePermission struct {
	ID           int64 `gorm:"primaryKey"`
	RoleID       int64 `gorm:"column:role_id;not null;index"`
	PermissionID int64 `gorm:"column:permission_id;not null"`
}

func (RolePermission) TableName() string { return "role_permissions" }
