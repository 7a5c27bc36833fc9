package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"igfollowers/pkg/result"
)

// Manager writes envelope copies into an output directory
type Manager struct {
	outputDir string
	mu        sync.Mutex
}

// NewManager creates the output directory if needed
func NewManager(outputDir string) (*Manager, error) {
	if outputDir == "" {
		return nil, fmt.Errorf("output directory is empty")
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	return &Manager{outputDir: outputDir}, nil
}

// Path returns the file an envelope for username and method is stored in
func (m *Manager) Path(username, method string) string {
	return filepath.Join(m.outputDir, fmt.Sprintf("%s_%s.json", safeName(username), safeName(method)))
}

// SaveEnvelope writes env atomically, replacing any earlier run, and
// returns the final path
func (m *Manager) SaveEnvelope(username string, env result.Envelope) (string, error) {
	method := env.Method
	if method == "" {
		method = "unknown"
	}
	filename := m.Path(username, method)

	m.mu.Lock()
	defer m.mu.Unlock()

	tempFile := filename + ".tmp"
	out, err := os.Create(tempFile)
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}

	err = env.Write(out)
	closeErr := out.Close()

	if err != nil {
		os.Remove(tempFile)
		return "", fmt.Errorf("failed to write envelope: %w", err)
	}
	if closeErr != nil {
		os.Remove(tempFile)
		return "", fmt.Errorf("failed to close file: %w", closeErr)
	}

	if err := os.Rename(tempFile, filename); err != nil {
		os.Remove(tempFile)
		return "", fmt.Errorf("failed to rename temporary file: %w", err)
	}

	return filename, nil
}

// safeName keeps a path component inside the output directory
func safeName(s string) string {
	s = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', 0:
			return '_'
		}
		return r
	}, s)
	if s == "" || s == "." || s == ".." {
		return "_"
	}
	return s
}
