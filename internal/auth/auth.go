package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/guardhq/workforce-management/internal"
)

// Account is the credential row resolved during login. EmployeeNo is nil
// for accounts that are not backed by an employee (admins, clients).
type Account struct {
	ID           int64
	EmployeeNo   *string
	Username     string
	PasswordHash string
	UserRole     *int64
	UserType     string
	Employment   string
}

// Subject returns the token subject: the employee number when present,
// the username otherwise. Derived client accounts fall into the latter
// only before their CL-prefixed number is assigned.
func (a *Account) Subject() string {
	if a.EmployeeNo != nil && *a.EmployeeNo != "" {
		return *a.EmployeeNo
	}
	return a.Username
}

// EmployeeContext is the employment data merged into the login response
// for accounts with employment = "Yes".
type EmployeeContext struct {
	ActiveStatus bool
	Fullname     string
	NameInitial  *string
	CallingName  *string
	Designation  *string
	Department   *string
}

// Attendance mirrors the day-scoped check-in record; all fields are nil
// when the employee has not checked in today.
type Attendance struct {
	CheckInTime  *time.Time
	CheckInType  *string
	CheckOutTime *time.Time
	CheckOutType *string
	Status       *string
}

// ClientMetadata is the OS/browser/mac audit metadata logged with every
// login attempt.
type ClientMetadata struct {
	OS      string
	Browser string
	Mac     string
}

// Repository is the session-issuer data contract.
type Repository interface {
	// FindAccount resolves a login identifier: EMP- and CL-prefixed
	// values match employee_no, everything else matches username.
	// Returns internal.ErrUserNotFound when no account matches.
	FindAccount(identifier string) (*Account, error)

	// LogAttempt appends one audit row per login attempt, pass or fail.
	LogAttempt(username, status string, meta ClientMetadata, at time.Time) error

	EmployeeContext(employeeNo string) (*EmployeeContext, error)
	AttendanceForDay(employeeNo string, day time.Time) (*Attendance, error)
	SupervisorID(employeeNo string) (*int64, error)

	// PermissionIDs resolves a role to its permission-id set via the
	// role_permissions join.
	PermissionIDs(roleID int64) ([]int64, error)

	// DefaultCurrency returns the first currencies row, or ok=false when
	// the table is empty.
	DefaultCurrency() (currency, symbol string, ok bool, err error)

	// UpsertRefreshToken overwrites any previous refresh token for the
	// subject; the latest login wins.
	UpsertRefreshToken(subject, token string, expiresAt time.Time) error
}

// TokenGenerator creates and validates signed tokens.
type TokenGenerator interface {
	GenerateAccessToken(subject string, permissionIDs []int64) (string, error)
	GenerateRefreshToken(subject string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
	RefreshTokenLifetime() time.Duration
}

// Claims carried by both token kinds; PermissionIDs is empty on refresh
// tokens.
type Claims struct {
	Subject       string  `json:"employee_no"`
	PermissionIDs []int64 `json:"permissions,omitempty"`
	jwt.RegisteredClaims
}

type JWTTokenGenerator struct {
	AccessTokenSecret  []byte
	RefreshTokenSecret []byte
	AccessTokenTTL     time.Duration
	RefreshTokenTTL    time.Duration
}

// LoginResult is the assembled login response. Employee context fields
// are only present for employment = "Yes" accounts.
type LoginResult struct {
	EmployeeNo    *string `json:"employee_no"`
	Username      string  `json:"username"`
	UserType      string  `json:"user_type"`
	UserToken     string  `json:"user_token"`
	RefreshToken  string  `json:"refresh_token"`
	PermissionIDs []int64 `json:"permissions"`
	SupervisorID  *int64  `json:"supervisor_id"`
	Currency      string  `json:"currency"`
	Symbol        string  `json:"symbol"`

	EmployeeFullname    *string    `json:"employee_fullname,omitempty"`
	EmployeeNameInitial *string    `json:"employee_name_initial,omitempty"`
	EmployeeCallingName *string    `json:"employee_calling_name,omitempty"`
	Designation         *string    `json:"designation,omitempty"`
	Department          *string    `json:"department,omitempty"`
	CheckInTime         *time.Time `json:"checkin_time,omitempty"`
	CheckInType         *string    `json:"checkin_type,omitempty"`
	CheckOutTime        *time.Time `json:"checkout_time,omitempty"`
	CheckOutType        *string    `json:"checkout_type,omitempty"`
	AttendanceStatus    *string    `json:"attendance_status,omitempty"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// ServiceAPI is what the HTTP layer consumes.
type ServiceAPI interface {
	Login(dto LoginDTO, meta ClientMetadata) (*LoginResult, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
}

var (
	ErrInvalidCredentials = internal.ErrInvalidCredentials
	ErrUserInactive       = internal.ErrUserInactive
	ErrInvalidToken       = internal.ErrInvalidToken
	ErrTokenExpired       = internal.ErrTokenExpired
)

const (
	loginStatusPass = "Pass"
	loginStatusFail = "Fail"

	fallbackCurrency = "USD"
	fallbackSymbol   = "$"
)
