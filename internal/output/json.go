package output

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"secreport/internal/report"
	"sync"
)

// JSONFile persists the report document to a file, replacing any previous one
type JSONFile struct {
	mu   sync.Mutex
	path string
}

// NewJSONFile creates a new JSON report sink
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

// Destination returns the file path
func (j *JSONFile) Destination() string {
	return j.path
}

// Write encodes the report to a temporary file and renames it into place
func (j *JSONFile) Write(_ context.Context, r report.SecurityReport) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	dir := filepath.Dir(j.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(j.path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	if err := report.Encode(w, r); err != nil {
		tmp.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to flush report: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close report file: %w", err)
	}

	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("failed to set report permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), j.path); err != nil {
		return fmt.Errorf("failed to move report into place: %w", err)
	}
	return nil
}

// ReadJSONFile reads a persisted report document back
func ReadJSONFile(path string) (report.SecurityReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return report.SecurityReport{}, fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()

	return report.Decode(bufio.NewReader(f))
}
