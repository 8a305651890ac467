package checkpoint

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/guardhq/workforce-management/internal"
)

func TestCheckpoint(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Checkpoint Suite")
}

type mockRepository struct {
	nextID      int64
	checkpoints map[int64]*Checkpoint
	scans       []Scan
	createErr   error
	setURLErr   error
}

func newMockRepository() *mockRepository {
	return &mockRepository{nextID: 1, checkpoints: map[int64]*Checkpoint{}}
}

func (m *mockRepository) Create(c *Checkpoint) error {
	if m.createErr != nil {
		return m.createErr
	}
	c.ID = m.nextID
	m.nextID++
	stored := *c
	m.checkpoints[c.ID] = &stored
	return nil
}

func (m *mockRepository) SetQRCodeURL(checkpointID int64, url string) error {
	if m.setURLErr != nil {
		return m.setURLErr
	}
	if c, ok := m.checkpoints[checkpointID]; ok {
		c.QRCodeURL = url
	}
	return nil
}

func (m *mockRepository) GetByID(checkpointID int64) (*Checkpoint, error) {
	c, ok := m.checkpoints[checkpointID]
	if !ok {
		return nil, internal.ErrCheckpointNotFound
	}
	return c, nil
}

func (m *mockRepository) ListByClient(clientID int64) (*ClientCheckpoints, error) {
	return &ClientCheckpoints{}, nil
}

func (m *mockRepository) Roster(checkpointID int64) (*CheckpointRoster, error) {
	return &CheckpointRoster{}, nil
}

func (m *mockRepository) RecordScan(s *Scan) error {
	if _, ok := m.checkpoints[s.CheckpointID]; !ok {
		return internal.ErrCheckpointNotFound
	}
	s.ID = int64(len(m.scans) + 1)
	m.scans = append(m.scans, *s)
	return nil
}

func (m *mockRepository) ScansByEmployee(employeeNo string) ([]Scan, error) {
	return m.scans, nil
}

func (m *mockRepository) ScansByClient(clientID int64) ([]Scan, error) {
	return m.scans, nil
}

func (m *mockRepository) ListScans() ([]Scan, error) {
	return m.scans, nil
}

type mockArtifactStore struct {
	payloads map[int64][]byte
	writeErr error
}

func newMockArtifactStore() *mockArtifactStore {
	return &mockArtifactStore{payloads: map[int64][]byte{}}
}

func (m *mockArtifactStore) Write(checkpointID int64, payload []byte) (string, error) {
	if m.writeErr != nil {
		return "", m.writeErr
	}
	m.payloads[checkpointID] = payload
	return "http://localhost:8080/qr-codes/checkpoint-1.png", nil
}

func (m *mockArtifactStore) Remove(checkpointID int64) error {
	delete(m.payloads, checkpointID)
	return nil
}

var _ = Describe("Checkpoint Service", func() {
	var (
		repo      *mockRepository
		artifacts *mockArtifactStore
		service   *Service
	)

	validDTO := CreateCheckpointDTO{
		Name:            "Main Gate",
		ClientID:        1,
		EmployeeIDs:     "EMP001",
		LocationName:    "North Entrance",
		LocationAddress: "12 Factory Rd",
	}

	BeforeEach(func() {
		repo = newMockRepository()
		artifacts = newMockArtifactStore()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		service = NewService(repo, artifacts, logger)
	})

	Describe("AddCheckpoint", func() {
		It("should bake the generated id into the QR payload", func() {
			c, err := service.AddCheckpoint(validDTO)
			Expect(err).NotTo(HaveOccurred())

			var payload qrPayload
			Expect(json.Unmarshal(artifacts.payloads[c.ID], &payload)).To(Succeed())
			Expect(payload.CheckpointID).To(Equal(c.ID))
		})

		It("should patch the artifact URL onto the stored row", func() {
			c, err := service.AddCheckpoint(validDTO)
			Expect(err).NotTo(HaveOccurred())
			Expect(c.QRCodeURL).To(Equal("http://localhost:8080/qr-codes/checkpoint-1.png"))
			Expect(repo.checkpoints[c.ID].QRCodeURL).To(Equal(c.QRCodeURL))
		})

		It("should reject incomplete input without touching the repository", func() {
			_, err := service.AddCheckpoint(CreateCheckpointDTO{Name: "Main Gate"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeMissingFields))
			Expect(repo.checkpoints).To(BeEmpty())
		})

		It("should surface an artifact write failure as an internal error", func() {
			artifacts.writeErr = errors.New("disk full")

			_, err := service.AddCheckpoint(validDTO)

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
		})

		It("should pass repository domain errors through unwrapped", func() {
			repo.createErr = internal.ErrClientNotFound

			_, err := service.AddCheckpoint(validDTO)
			Expect(err).To(MatchError(internal.ErrClientNotFound))
		})
	})

	Describe("RecordScan", func() {
		It("should append a scan for an existing checkpoint", func() {
			c, err := service.AddCheckpoint(validDTO)
			Expect(err).NotTo(HaveOccurred())

			scan, err := service.RecordScan(RecordScanDTO{
				EmployeeNo:   "EMP001",
				CheckpointID: c.ID,
				LocationName: "North Entrance",
				ScanDate:     "2026-09-01",
				ScanTime:     "22:15:00",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(scan.ID).To(BeNumerically(">", 0))
			Expect(repo.scans).To(HaveLen(1))
		})

		It("should reject a scan against an unknown checkpoint", func() {
			_, err := service.RecordScan(RecordScanDTO{
				EmployeeNo:   "EMP001",
				CheckpointID: 42,
				LocationName: "Nowhere",
				ScanDate:     "2026-09-01",
				ScanTime:     "22:15:00",
			})
			Expect(err).To(MatchError(internal.ErrCheckpointNotFound))
			Expect(repo.scans).To(BeEmpty())
		})

		It("should reject incomplete input", func() {
			_, err := service.RecordScan(RecordScanDTO{EmployeeNo: "EMP001"})

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeMissingFields))
		})
	})
})

var _ = Describe("FileArtifactStore", func() {
	var (
		dir   string
		store *FileArtifactStore
	)

	BeforeEach(func() {
		var err error
		dir, err = os.MkdirTemp("", "qr-codes")
		Expect(err).NotTo(HaveOccurred())
		store = NewFileArtifactStore(dir, "http://localhost:8080/qr-codes/")
	})

	AfterEach(func() {
		Expect(os.RemoveAll(dir)).To(Succeed())
	})

	It("should write a PNG named after the checkpoint id", func() {
		url, err := store.Write(7, []byte(`{"checkpoint_id":7}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(url).To(Equal("http://localhost:8080/qr-codes/checkpoint-7.png"))

		info, err := os.Stat(filepath.Join(dir, "checkpoint-7.png"))
		Expect(err).NotTo(HaveOccurred())
		Expect(info.Size()).To(BeNumerically(">", 0))
	})

	It("should tolerate removing an artifact that was never written", func() {
		Expect(store.Remove(99)).To(Succeed())
	})
})
