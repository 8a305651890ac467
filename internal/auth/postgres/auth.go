package postgres

import (
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/guardhq/workforce-management/internal"
	"github.com/guardhq/workforce-management/internal/auth"
	employeeDatamodel "github.com/guardhq/workforce-management/internal/core/datamodel/employee"
	referenceDatamodel "github.com/guardhq/workforce-management/internal/core/datamodel/reference"
	userDatamodel "github.com/guardhq/workforce-management/internal/core/datamodel/user"
)

// SessionRepository implements the auth.Repository contract using GORM.
type SessionRepository struct {
	db *gorm.DB
}

func NewSessionRepository(db *gorm.DB) auth.Repository {
	return &SessionRepository{db: db}
}

// FindAccount resolves EMP-prefixed identifiers against employee_no,
// CL-prefixed ones against derived client accounts, and everything else
// against username.
func (r *SessionRepository) FindAccount(identifier string) (*auth.Account, error) {
	var row userDatamodel.User

	query := r.db.Where("username = ?", identifier)
	if strings.HasPrefix(identifier, "EMP") || strings.HasPrefix(identifier, "CL") {
		query = r.db.Where("employee_no = ?", identifier)
	}

	if err := query.First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrUserNotFound
		}
		return nil, err
	}

	return &auth.Account{
		ID:           row.ID,
		EmployeeNo:   row.EmployeeNo,
		Username:     row.Username,
		PasswordHash: row.Password,
		UserRole:     row.UserRole,
		UserType:     row.UserType,
		Employment:   row.Employment,
	}, nil
}

func (r *SessionRepository) LogAttempt(username, status string, meta auth.ClientMetadata, at time.Time) error {
	row := userDatamodel.LoginLog{
		Username:    username,
		LoginStatus: status,
		LoggedTime:  at,
	}
	if meta.OS != "" {
		row.OS = &meta.OS
	}
	if meta.Browser != "" {
		row.Browser = &meta.Browser
	}
	if meta.Mac != "" {
		row.Mac = &meta.Mac
	}
	return r.db.Create(&row).Error
}

func (r *SessionRepository) EmployeeContext(employeeNo string) (*auth.EmployeeContext, error) {
	var row employeeDatamodel.Employee
	if err := r.db.Where("employee_no = ?", employeeNo).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, err
	}

	ctx := &auth.EmployeeContext{
		ActiveStatus: row.ActiveStatus,
		Fullname:     row.Name,
		NameInitial:  row.NameInitial,
		CallingName:  row.CallingName,
		Designation:  &row.Designation,
		Department:   &row.Department,
	}

	// Prefer the designation-department lookup when the employee is
	// linked to one; the inline columns are the legacy fallback.
	if row.DeptDesignationID != nil {
		var dd employeeDatamodel.DesignationDepartment
		if err := r.db.Where("id = ?", *row.DeptDesignationID).First(&dd).Error; err == nil {
			ctx.Designation = &dd.Designation
			ctx.Department = &dd.Department
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}

	return ctx, nil
}

// AttendanceForDay returns the day-scoped attendance record, or nil when
// the employee has no check-in for the given day.
func (r *SessionRepository) AttendanceForDay(employeeNo string, day time.Time) (*auth.Attendance, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.Add(24 * time.Hour)

	var row employeeDatamodel.AttendanceDaily
	err := r.db.
		Where("employee_id = ? AND checkin_time >= ? AND checkin_time < ?", employeeNo, dayStart, dayEnd).
		First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return &auth.Attendance{
		CheckInTime:  row.CheckInTime,
		CheckInType:  row.CheckInType,
		CheckOutTime: row.CheckOutTime,
		CheckOutType: row.CheckOutType,
		Status:       row.Status,
	}, nil
}

func (r *SessionRepository) SupervisorID(employeeNo string) (*int64, error) {
	var supervisorID int64
	err := r.db.
		Table("supervisors").
		Select("supervisors.id").
		Joins("JOIN supervisor_employee_assignments ON supervisor_employee_assignments.supervisor_id = supervisors.id").
		Where("supervisor_employee_assignments.employee_no = ?", employeeNo).
		Limit(1).
		Scan(&supervisorID).Error
	if err != nil {
		return nil, err
	}
	if supervisorID == 0 {
		return nil, nil
	}
	return &supervisorID, nil
}

func (r *SessionRepository) PermissionIDs(roleID int64) ([]int64, error) {
	var ids []int64
	err := r.db.
		Table("permissions").
		Select("permissions.id").
		Joins("JOIN role_permissions ON role_permissions.permission_id = permissions.id").
		Where("role_permissions.role_id = ?", roleID).
		Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []int64{}
	}
	return ids, nil
}

func (r *SessionRepository) DefaultCurrency() (string, string, bool, error) {
	var row referenceDatamodel.Currency
	err := r.db.Order("id").First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", "", false, nil
		}
		return "", "", false, err
	}
	return row.Currency, row.Symbol, true, nil
}

func (r *SessionRepository) UpsertRefreshToken(subject, token string, expiresAt time.Time) error {
	row := userDatamodel.RefreshToken{
		EmployeeNo: subject,
		Token:      token,
		ExpiresAt:  expiresAt,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_no"}},
		DoUpdates: clause.AssignmentColumns([]string{"token", "expires_at"}),
	}).Create(&row).Error
}
