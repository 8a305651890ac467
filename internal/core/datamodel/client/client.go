package client

import "time"

type Client struct {
	ID        int64     `gorm:"primaryKey"`
	Name      string    `gorm:"column:name;not null;size:255"`
	Email     string    `gorm:"column:email;uniqueIndex;not null;size:255"`
	Phone     string    `gorm:"column:phone;not null;size:20"`
	Address   *string   `gorm:"column:address;size:500"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Client) TableName() string { return "clients" }

// EmployeeClientAssignment links an employee to a client contract.
// The composite unique index keeps the additive assignment path from
// inserting the same pair twice.
type EmployeeClientAssignment struct {
	ID         int64  `gorm:"primaryKey"`
	ClientID   int64  `gorm:"column:client_id;not null;uniqueIndex:idx_client_employee"`
	EmployeeNo string `gorm:"column:employee_no;not null;size:45;uniqueIndex:idx_client_employee"`
}

func (EmployeeClientAssignment) TableName() string { return "employee_client_assignments" }
