package vcs

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ternarybob/arbor"
)

// Index stages changes in a version-control index. Paths are relative to the repository root.
type Index interface {
	Add(ctx context.Context, paths ...string) error
	Remove(ctx context.Context, paths ...string) error
}

// Nop works on the plain working tree. Nothing is staged, but removed
// paths are still deleted so the CMake lists never outlive their files.
type Nop struct {
	root   string
	logger arbor.ILogger
}

// NewNop creates a new Nop index rooted at root
func NewNop(root string, logger arbor.ILogger) *Nop {
	return &Nop{root: root, logger: logger}
}

// Add logs paths that would be staged
func (n *Nop) Add(ctx context.Context, paths ...string) error {
	n.logger.Info().Strs("paths", paths).Msg("Skipping git add")
	return nil
}

// Remove deletes paths from the working tree without staging the removal.
// Paths that are already gone are ignored.
func (n *Nop) Remove(ctx context.Context, paths ...string) error {
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return err
		}
		full := filepath.Join(n.root, path)
		if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("rm %s: %w", path, err)
		}
	}
	n.logger.Info().Strs("paths", paths).Msg("Removed legacy tests without staging")
	return nil
}
