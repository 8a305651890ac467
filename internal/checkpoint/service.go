package checkpoint

import (
	"encoding/json"
	"log/slog"

	"github.com/guardhq/workforce-management/internal"
)

// qrPayload is what the printed QR code encodes. Scanning clients parse
// it and call the scan endpoint with the id.
type qrPayload struct {
	CheckpointID int64 `json:"checkpoint_id"`
}

type Service struct {
	repo      Repository
	artifacts ArtifactStore
	logger    *slog.Logger
}

func NewService(repo Repository, artifacts ArtifactStore, logger *slog.Logger) *Service {
	return &Service{repo: repo, artifacts: artifacts, logger: logger}
}

// AddCheckpoint creates the row first so the generated id can be baked
// into the QR artifact, then patches the URL onto the row.
func (s *Service) AddCheckpoint(dto CreateCheckpointDTO) (*Checkpoint, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	c := &Checkpoint{
		Name:            dto.Name,
		ClientID:        dto.ClientID,
		EmployeeIDs:     dto.EmployeeIDs,
		LocationName:    dto.LocationName,
		LocationAddress: dto.LocationAddress,
	}

	if err := s.repo.Create(c); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to create checkpoint", "error", err, "client_id", dto.ClientID)
		return nil, internal.NewInternalError("failed to create checkpoint", err)
	}

	payload, err := json.Marshal(qrPayload{CheckpointID: c.ID})
	if err != nil {
		return nil, internal.NewInternalError("failed to encode qr payload", err)
	}

	url, err := s.artifacts.Write(c.ID, payload)
	if err != nil {
		s.logger.Error("failed to write qr code artifact", "error", err, "checkpoint_id", c.ID)
		return nil, internal.NewInternalError("failed to generate qr code", err)
	}

	if err := s.repo.SetQRCodeURL(c.ID, url); err != nil {
		s.logger.Error("failed to set qr code url", "error", err, "checkpoint_id", c.ID)
		return nil, internal.NewInternalError("failed to create checkpoint", err)
	}
	c.QRCodeURL = url

	s.logger.Info("checkpoint created", "checkpoint_id", c.ID, "client_id", c.ClientID)
	return c, nil
}

func (s *Service) GetCheckpoint(checkpointID int64) (*Checkpoint, error) {
	c, err := s.repo.GetByID(checkpointID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to get checkpoint", "error", err, "checkpoint_id", checkpointID)
		return nil, internal.NewInternalError("failed to get checkpoint", err)
	}
	return c, nil
}

func (s *Service) GetCheckpointsByClient(clientID int64) (*ClientCheckpoints, error) {
	result, err := s.repo.ListByClient(clientID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to list checkpoints", "error", err, "client_id", clientID)
		return nil, internal.NewInternalError("failed to list checkpoints", err)
	}
	return result, nil
}

// GetRoster returns a checkpoint together with the guards eligible to
// patrol it, resolved through the owning client's assignments.
func (s *Service) GetRoster(checkpointID int64) (*CheckpointRoster, error) {
	roster, err := s.repo.Roster(checkpointID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to get checkpoint roster", "error", err, "checkpoint_id", checkpointID)
		return nil, internal.NewInternalError("failed to get checkpoint roster", err)
	}
	return roster, nil
}

// RecordScan appends one scan row per call. Repeated scans of the same
// checkpoint are legitimate patrol rounds, not duplicates.
func (s *Service) RecordScan(dto RecordScanDTO) (*Scan, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	scan := &Scan{
		EmployeeNo:   dto.EmployeeNo,
		CheckpointID: dto.CheckpointID,
		LocationName: dto.LocationName,
		ScanDate:     dto.ScanDate,
		ScanTime:     dto.ScanTime,
	}

	if err := s.repo.RecordScan(scan); err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to record scan", "error", err,
			"employee_no", dto.EmployeeNo, "checkpoint_id", dto.CheckpointID)
		return nil, internal.NewInternalError("failed to record scan", err)
	}

	s.logger.Info("scan recorded", "employee_no", scan.EmployeeNo, "checkpoint_id", scan.CheckpointID)
	return scan, nil
}

func (s *Service) GetScansByEmployee(employeeNo string) ([]Scan, error) {
	scans, err := s.repo.ScansByEmployee(employeeNo)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to get scans", "error", err, "employee_no", employeeNo)
		return nil, internal.NewInternalError("failed to get scans", err)
	}
	return scans, nil
}

func (s *Service) GetScansByClient(clientID int64) ([]Scan, error) {
	scans, err := s.repo.ScansByClient(clientID)
	if err != nil {
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		s.logger.Error("failed to get scans", "error", err, "client_id", clientID)
		return nil, internal.NewInternalError("failed to get scans", err)
	}
	return scans, nil
}

func (s *Service) GetAllScans() ([]Scan, error) {
	scans, err := s.repo.ListScans()
	if err != nil {
		s.logger.Error("failed to list scans", "error", err)
		return nil, internal.NewInternalError("failed to list scans", err)
	}
	return scans, nil
}
