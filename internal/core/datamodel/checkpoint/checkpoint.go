package checkpoint

import "time"

// Checkpoint rows are created in two phases: first with an empty
// QRCodeURL, then updated once the QR artifact for the generated id
// has been written out.
type Checkpoint struct {
	ID              int64     `gorm:"primaryKey"`
	Name            string    `gorm:"column:name;not null;size:255"`
	ClientID        int64     `gorm:"column:client_id;not null;index"`
	EmployeeIDs     string    `gorm:"column:employee_ids;type:text;not null"`
	LocationName    string    `gorm:"column:location_name;not null;size:255"`
	LocationAddress string    `gorm:"column:location_address;type:text;not null"`
	QRCodeURL       string    `gorm:"column:qr_code_url;size:500"`
	CreatedAt       time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (Checkpoint) TableName() string { return "checkpoints" }

// ScannedDetail is append-only; rows are never updated or deleted.
type ScannedDetail struct {
	ID           int64     `gorm:"primaryKey"`
	EmployeeNo   string    `gorm:"column:employee_no;not null;size:45;index"`
	CheckpointID int64     `gorm:"column:checkpoint_id;not null;index"`
	LocationName string    `gorm:"column:location_name;not null;size:255"`
	ScanDate     string    `gorm:"column:scan_date;not null;size:10"`
	ScanTime     string    `gorm:"column:scan_time;not null;size:8"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}

func (ScannedDetail) TableName() string { return "scanned_details" }
