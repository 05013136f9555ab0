package vcs

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Git stages changes by running the git binary in the repository root
type Git struct {
	root   string
	binary string
}

// NewGit creates a new Git index for the repository at root
func NewGit(root string) *Git {
	return &Git{root: root, binary: "git"}
}

// Add stages paths for addition
func (g *Git) Add(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	return g.run(ctx, append([]string{"add", "--"}, paths...)...)
}

// Remove stages paths for removal and deletes them from the working tree
func (g *Git) Remove(ctx context.Context, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}
	return g.run(ctx, append([]string{"rm", "-q", "--"}, paths...)...)
}

func (g *Git) run(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, g.binary, append([]string{"-C", g.root}, args...)...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git %s: %w: %s", args[0], err, strings.TrimSpace(string(output)))
	}
	return nil
}
