package postgres

import (
	"gorm.io/gorm"

	"github.com/guardhq/workforce-management/internal"
	"github.com/guardhq/workforce-management/internal/checkpoint"
	datamodel "github.com/guardhq/workforce-management/internal/core/datamodel/checkpoint"
	clientDatamodel "github.com/guardhq/workforce-management/internal/core/datamodel/client"
	employeeDatamodel "github.com/guardhq/workforce-management/internal/core/datamodel/employee"
)

// CheckpointRepository implements the checkpoint.Repository interface using GORM.
type CheckpointRepository struct {
	db *gorm.DB
}

func NewCheckpointRepository(db *gorm.DB) checkpoint.Repository {
	return &CheckpointRepository{db: db}
}

func (r *CheckpointRepository) Create(c *checkpoint.Checkpoint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&clientDatamodel.Client{}).
			Where("id = ?", c.ClientID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return internal.ErrClientNotFound
		}

		row := datamodel.Checkpoint{
			Name:            c.Name,
			ClientID:        c.ClientID,
			EmployeeIDs:     c.EmployeeIDs,
			LocationName:    c.LocationName,
			LocationAddress: c.LocationAddress,
			QRCodeURL:       "",
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		c.ID = row.ID
		c.CreatedAt = row.CreatedAt
		c.UpdatedAt = row.UpdatedAt
		return nil
	})
}

func (r *CheckpointRepository) SetQRCodeURL(checkpointID int64, url string) error {
	return r.db.Model(&datamodel.Checkpoint{}).
		Where("id = ?", checkpointID).
		Update("qr_code_url", url).Error
}

func (r *CheckpointRepository) GetByID(checkpointID int64) (*checkpoint.Checkpoint, error) {
	var row datamodel.Checkpoint
	if err := r.db.Where("id = ?", checkpointID).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrCheckpointNotFound
		}
		return nil, err
	}
	return fromDataModel(&row), nil
}

func (r *CheckpointRepository) ListByClient(clientID int64) (*checkpoint.ClientCheckpoints, error) {
	var clientRow clientDatamodel.Client
	if err := r.db.Where("id = ?", clientID).First(&clientRow).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrClientNotFound
		}
		return nil, err
	}

	var rows []datamodel.Checkpoint
	if err := r.db.Where("client_id = ?", clientID).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	checkpoints := make([]checkpoint.Checkpoint, len(rows))
	for i := range rows {
		checkpoints[i] = *fromDataModel(&rows[i])
	}

	return &checkpoint.ClientCheckpoints{
		Client: checkpoint.ClientSummary{
			ID:      clientRow.ID,
			Name:    clientRow.Name,
			Email:   clientRow.Email,
			Phone:   clientRow.Phone,
			Address: clientRow.Address,
		},
		Checkpoints: checkpoints,
	}, nil
}

// Roster resolves the checkpoint's guards through the owning client's
// assignment roster rather than the denormalized employee_ids column.
func (r *CheckpointRepository) Roster(checkpointID int64) (*checkpoint.CheckpointRoster, error) {
	var row datamodel.Checkpoint
	if err := r.db.Where("id = ?", checkpointID).First(&row).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, internal.ErrCheckpointNotFound
		}
		return nil, err
	}

	var guards []checkpoint.GuardDetail
	err := r.db.
		Table("employees").
		Select("employees.employee_no, employees.name, employees.nic, employees.contact_number, "+
			"employees.designation, employees.department, employees.work_location, employees.active_status").
		Joins("JOIN employee_client_assignments ON employee_client_assignments.employee_no = employees.employee_no").
		Where("employee_client_assignments.client_id = ?", row.ClientID).
		Scan(&guards).Error
	if err != nil {
		return nil, err
	}

	return &checkpoint.CheckpointRoster{
		Checkpoint: *fromDataModel(&row),
		Employees:  guards,
	}, nil
}

func (r *CheckpointRepository) RecordScan(s *checkpoint.Scan) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&datamodel.Checkpoint{}).
			Where("id = ?", s.CheckpointID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return internal.ErrCheckpointNotFound
		}

		row := datamodel.ScannedDetail{
			EmployeeNo:   s.EmployeeNo,
			CheckpointID: s.CheckpointID,
			LocationName: s.LocationName,
			ScanDate:     s.ScanDate,
			ScanTime:     s.ScanTime,
		}
		if err := tx.Create(&row).Error; err != nil {
			return err
		}

		s.ID = row.ID
		s.CreatedAt = row.CreatedAt
		return nil
	})
}

func (r *CheckpointRepository) ScansByEmployee(employeeNo string) ([]checkpoint.Scan, error) {
	var count int64
	if err := r.db.Model(&employeeDatamodel.Employee{}).
		Where("employee_no = ?", employeeNo).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, internal.ErrEmployeeNotFound
	}

	var rows []datamodel.ScannedDetail
	if err := r.db.Where("employee_no = ?", employeeNo).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return scansFromRows(rows), nil
}

func (r *CheckpointRepository) ScansByClient(clientID int64) ([]checkpoint.Scan, error) {
	var checkpointIDs []int64
	if err := r.db.Model(&datamodel.Checkpoint{}).
		Where("client_id = ?", clientID).
		Pluck("id", &checkpointIDs).Error; err != nil {
		return nil, err
	}
	if len(checkpointIDs) == 0 {
		return nil, internal.NewNotFoundError("No checkpoints found for this client", internal.ErrCodeCheckpointNotFound)
	}

	var rows []datamodel.ScannedDetail
	if err := r.db.Where("checkpoint_id IN ?", checkpointIDs).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return scansFromRows(rows), nil
}

func (r *CheckpointRepository) ListScans() ([]checkpoint.Scan, error) {
	var rows []datamodel.ScannedDetail
	if err := r.db.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	return scansFromRows(rows), nil
}

func scansFromRows(rows []datamodel.ScannedDetail) []checkpoint.Scan {
	scans := make([]checkpoint.Scan, len(rows))
	for i, row := range rows {
		scans[i] = checkpoint.Scan{
			ID:           row.ID,
			EmployeeNo:   row.EmployeeNo,
			CheckpointID: row.CheckpointID,
			LocationName: row.LocationName,
			ScanDate:     row.ScanDate,
			ScanTime:     row.ScanTime,
			CreatedAt:    row.CreatedAt,
		}
	}
	return scans
}

func fromDataModel(row *datamodel.Checkpoint) *checkpoint.Checkpoint {
	return &checkpoint.Checkpoint{
		ID:              row.ID,
		Name:            row.Name,
		ClientID:        row.ClientID,
		EmployeeIDs:     row.EmployeeIDs,
		LocationName:    row.LocationName,
		LocationAddress: row.LocationAddress,
		QRCodeURL:       row.QRCodeURL,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
