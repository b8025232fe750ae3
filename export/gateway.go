package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

var (
	// ErrSaveCancelled is returned by a gateway when the user dismissed the
	// save dialog. The run finishes as cancelled, not failed.
	ErrSaveCancelled = errors.New("save cancelled")

	ErrTargetExists = errors.New("target file already exists")
)

// Gateway decides where an artifact goes and writes it there. The CLI uses
// DirGateway; an interactive shell would put a file dialog behind this.
type Gateway interface {
	RequestSaveTarget(ctx context.Context, suggestedName string) (string, error)
	WriteTarget(path string, data []byte) error
}

// DirGateway saves artifacts into a fixed directory.
type DirGateway struct {
	Dir       string
	Overwrite bool
}

func (g DirGateway) RequestSaveTarget(_ context.Context, suggestedName string) (string, error) {
	dir := g.Dir
	if dir == "" {
		dir = "."
	}
	path := filepath.Join(dir, suggestedName)
	if !g.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", fmt.Errorf("%s: %w", path, ErrTargetExists)
		}
	}
	return path, nil
}

func (g DirGateway) WriteTarget(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("unable to prepare output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("unable to write output file: %w", err)
	}
	return nil
}
