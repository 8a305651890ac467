package checkpoint

import "time"

// Checkpoint is a guarded location that employees confirm their rounds
// at by scanning its QR code. The QR artifact encodes only the
// checkpoint id; everything else is resolved server-side at scan time.
type Checkpoint struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	ClientID        int64     `json:"client_id"`
	EmployeeIDs     string    `json:"employee_ids"`
	LocationName    string    `json:"location_name"`
	LocationAddress string    `json:"location_address"`
	QRCodeURL       string    `json:"qr_code_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Scan is one append-only record of an employee scanning a checkpoint.
type Scan struct {
	ID           int64     `json:"id"`
	EmployeeNo   string    `json:"employee_no"`
	CheckpointID int64     `json:"checkpoint_id"`
	LocationName string    `json:"location_name"`
	ScanDate     string    `json:"scan_date"`
	ScanTime     string    `json:"scan_time"`
	CreatedAt    time.Time `json:"created_at"`
}

// ClientSummary is the client header returned alongside its checkpoints.
type ClientSummary struct {
	ID      int64   `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   string  `json:"phone"`
	Address *string `json:"address"`
}

// GuardDetail is an employee eligible to patrol a checkpoint, resolved
// through the owning client's assignment roster.
type GuardDetail struct {
	EmployeeNo    string  `json:"employee_no"`
	Name          string  `json:"name"`
	NIC           *string `json:"nic"`
	ContactNumber string  `json:"contact_number"`
	Designation   string  `json:"designation"`
	Department    string  `json:"department"`
	WorkLocation  string  `json:"work_location"`
	ActiveStatus  bool    `json:"active_status"`
}

// CheckpointRoster pairs a checkpoint with the guards assigned to its client.
type CheckpointRoster struct {
	Checkpoint Checkpoint    `json:"checkpoint"`
	Employees  []GuardDetail `json:"employees"`
}

// ClientCheckpoints pairs a client header with all of its checkpoints.
type ClientCheckpoints struct {
	Client      ClientSummary `json:"client"`
	Checkpoints []Checkpoint  `json:"checkpoints"`
}

type Repository interface {
	// Create inserts the checkpoint with an empty QR code URL; the URL
	// is filled in via SetQRCodeURL once the artifact exists.
	Create(c *Checkpoint) error
	SetQRCodeURL(checkpointID int64, url string) error

	GetByID(checkpointID int64) (*Checkpoint, error)
	ListByClient(clientID int64) (*ClientCheckpoints, error)
	Roster(checkpointID int64) (*CheckpointRoster, error)

	// RecordScan verifies the checkpoint exists before appending.
	RecordScan(s *Scan) error
	ScansByEmployee(employeeNo string) ([]Scan, error)
	ScansByClient(clientID int64) ([]Scan, error)
	ListScans() ([]Scan, error)
}

// ArtifactStore persists QR code images and hands back their public URL.
type ArtifactStore interface {
	Write(checkpointID int64, payload []byte) (string, error)
	Remove(checkpointID int64) error
}
