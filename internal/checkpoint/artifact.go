package checkpoint

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const qrImageSize = 256

// FileArtifactStore writes QR code PNGs to a local directory served as
// static files under baseURL.
type FileArtifactStore struct {
	dir     string
	baseURL string
}

func NewFileArtifactStore(dir, baseURL string) *FileArtifactStore {
	return &FileArtifactStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

func (s *FileArtifactStore) fileName(checkpointID int64) string {
	return fmt.Sprintf("checkpoint-%d.png", checkpointID)
}

func (s *FileArtifactStore) Write(checkpointID int64, payload []byte) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create qr code directory: %w", err)
	}

	name := s.fileName(checkpointID)
	path := filepath.Join(s.dir, name)
	if err := qrcode.WriteFile(string(payload), qrcode.Medium, qrImageSize, path); err != nil {
		return "", fmt.Errorf("write qr code image: %w", err)
	}

	return s.baseURL + "/" + name, nil
}

func (s *FileArtifactStore) Remove(checkpointID int64) error {
	err := os.Remove(filepath.Join(s.dir, s.fileName(checkpointID)))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
