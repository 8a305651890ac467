package user

import "time"

// User covers every login account: employee-backed users, back-office
// admins and derived client accounts. EmployeeNo is null for accounts
// that do not represent an employee.
type User struct {
	ID             int64   `gorm:"primaryKey"`
	EmployeeNo     *string `gorm:"column:employee_no;size:45"`
	Username       string  `gorm:"column:username;uniqueIndex;not null;size:255"`
	Password       string  `gorm:"column:password;not null;size:255"`
	EmployeeStatus *string `gorm:"column:employee_status;size:45"`
	UserRole       *int64  `gorm:"column:user_role"`
	UserType       string  `gorm:"column:user_type;not null;size:20"`
	Employment     string  `gorm:"column:employment;not null;default:No;size:3"`
}

func (User) TableName() string { return "users" }

type RefreshToken struct {
	EmployeeNo string    `gorm:"column:employee_no;primaryKey;size:255"`
	Token      string    `gorm:"column:token;not null;size:512"`
	ExpiresAt  time.Time `gorm:"column:expires_at;not null"`
}

func (RefreshToken) TableName() string { return "refresh_tokens" }

type LoginLog struct {
	ID          int64     `gorm:"primaryKey"`
	Username    string    `gorm:"column:username;not null;size:255"`
	LoginStatus string    `gorm:"column:login_status;not null;size:10"`
	OS          *string   `gorm:"column:os;size:100"`
	Browser     *string   `gorm:"column:browser;size:100"`
	Mac         *string   `gorm:"column:mac;size:100"`
	LoggedTime  time.Time `gorm:"column:logged_time;not null"`
}

func (LoginLog) TableName() string { return "login_logs" }
