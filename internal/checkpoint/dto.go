package checkpoint

import "github.com/guardhq/workforce-management/internal"

type CreateCheckpointDTO struct {
	Name            string `json:"name"`
	ClientID        int64  `json:"client_id"`
	EmployeeIDs     string `json:"employee_ids"`
	LocationName    string `json:"location_name"`
	LocationAddress string `json:"location_address"`
}

func (d CreateCheckpointDTO) Validate() error {
	if d.Name == "" || d.ClientID == 0 || d.EmployeeIDs == "" ||
		d.LocationName == "" || d.LocationAddress == "" {
		return internal.NewValidationError("All fields are required", internal.ErrCodeMissingFields)
	}
	return nil
}

type RecordScanDTO struct {
	EmployeeNo   string `json:"employee_no"`
	CheckpointID int64  `json:"checkpoint_id"`
	LocationName string `json:"location_name"`
	ScanDate     string `json:"scan_date"`
	ScanTime     string `json:"scan_time"`
}

func (d RecordScanDTO) Validate() error {
	if d.EmployeeNo == "" || d.CheckpointID == 0 || d.LocationName == "" ||
		d.ScanDate == "" || d.ScanTime == "" {
		return internal.NewValidationError("All fields are required", internal.ErrCodeMissingFields)
	}
	return nil
}
