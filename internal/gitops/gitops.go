// Package gitops records fiscmind outputs in a git repository.
package gitops

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Author identifies who commits generated files.
type Author struct {
	Name  string
	Email string
}

func (a Author) String() string {
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Repo is a git working tree rooted at Dir.
type Repo struct {
	Dir    string
	Author Author
}

// Available reports whether a git binary is on PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// IsRepo reports whether dir is the root of a git working tree.
func IsRepo(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Init initializes a new repository at r.Dir.
func (r *Repo) Init(ctx context.Context) error {
	if _, err := r.run(ctx, "init", "--quiet"); err != nil {
		return fmt.Errorf("git init: %w", err)
	}
	return nil
}

// Commit stages paths (every change when none are given) and commits them.
// It returns the short hash of the new commit.
func (r *Repo) Commit(ctx context.Context, message string, paths ...string) (string, error) {
	if r.Author.Name == "" || r.Author.Email == "" {
		return "", errors.New("git commit: author name and email are required")
	}

	add := []string{"add"}
	if len(paths) == 0 {
		add = append(add, "-A")
	} else {
		add = append(add, "--")
		for _, p := range paths {
			rel, err := r.rel(p)
			if err != nil {
				return "", err
			}
			add = append(add, rel)
		}
	}
	if _, err := r.run(ctx, add...); err != nil {
		return "", fmt.Errorf("git add: %w", err)
	}

	if _, err := r.run(ctx, "commit", "--quiet", "-m", message, "--author", r.Author.String()); err != nil {
		return "", fmt.Errorf("git commit: %w", err)
	}

	out, err := r.run(ctx, "rev-parse", "--short", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse: %w", err)
	}
	return out, nil
}

func (r *Repo) rel(path string) (string, error) {
	if !filepath.IsAbs(path) {
		return path, nil
	}
	rel, err := filepath.Rel(r.Dir, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%s is outside the repository", path)
	}
	return rel, nil
}

// run executes git in r.Dir. The author doubles as committer so commits
// succeed on machines without a configured git identity.
func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	cmd.Env = append(os.Environ(),
		"GIT_COMMITTER_NAME="+r.Author.Name,
		"GIT_COMMITTER_EMAIL="+r.Author.Email,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("%s: %w", strings.TrimSpace(string(out)), err)
	}
	return strings.TrimSpace(string(out)), nil
}
