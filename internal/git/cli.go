package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotARepo is returned when the path is not inside a Git repository.
var ErrNotARepo = errors.New("not a git repository")

// ErrDetachedHead is returned by BranchName when HEAD points at a commit.
var ErrDetachedHead = errors.New("HEAD is detached")

// ErrEmptyMessage is returned by Commit for a blank message.
var ErrEmptyMessage = errors.New("commit message is empty")

// cmdTimeout is the maximum duration any local git command may run.
const cmdTimeout = 30 * time.Second

// pushTimeout bounds network operations.
const pushTimeout = 5 * time.Minute

// CLIService implements Repository by shelling out to the git CLI.
//   - GIT_OPTIONAL_LOCKS=0 on all read commands (no lock contention)
//   - Context-based timeouts prevent hangs
//   - Stdout/Stderr separated, so stderr noise doesn't corrupt output
type CLIService struct {
	root   string // Absolute path to the repo root.
	gitDir string // Path to the .git directory.
}

var _ Repository = (*CLIService)(nil)

// NewCLIService opens a Git repository at the given path.
func NewCLIService(path string) (*CLIService, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	topLevel, err := runGit(abs, nil, cmdTimeout, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, ErrNotARepo
	}
	gitDir, err := runGit(abs, nil, cmdTimeout, "rev-parse", "--git-dir")
	if err != nil {
		return nil, fmt.Errorf("finding .git directory: %w", err)
	}
	root := strings.TrimSpace(topLevel)
	gd := strings.TrimSpace(gitDir)
	if !filepath.IsAbs(gd) {
		gd = filepath.Join(abs, gd)
	}
	return &CLIService{root: root, gitDir: gd}, nil
}

// ── helpers ─────────────────────────────────────────────────────────────────

// readEnv is the environment set on all read-only git commands.
var readEnv = []string{"GIT_OPTIONAL_LOCKS=0"}

// run executes a read-only git command at the repo root.
func (s *CLIService) run(args ...string) (string, error) {
	return runGit(s.root, readEnv, cmdTimeout, args...)
}

// runWrite executes a git command that may take the index lock.
func (s *CLIService) runWrite(args ...string) (string, error) {
	return runGit(s.root, nil, cmdTimeout, args...)
}

// runGit executes a git command with a context timeout.
func runGit(dir string, extraEnv []string, timeout time.Duration, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	if len(extraEnv) > 0 {
		cmd.Env = append(os.Environ(), extraEnv...)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		errMsg := strings.TrimSpace(stderr.String())
		if errMsg == "" {
			errMsg = strings.TrimSpace(stdout.String())
		}
		return "", fmt.Errorf("git %s: %s: %w", strings.Join(args, " "), errMsg, err)
	}
	return stdout.String(), nil
}

// ── Repository info ─────────────────────────────────────────────────────────

// RepoRoot returns the repository root path.
func (s *CLIService) RepoRoot() string { return s.root }

// GitDir returns the path to the .git directory.
func (s *CLIService) GitDir() string { return s.gitDir }

// Head returns the current branch, or the short commit hash when detached.
func (s *CLIService) Head() (string, error) {
	name, err := s.BranchName()
	if err == nil {
		return name, nil
	}
	hash, hashErr := s.run("rev-parse", "--short", "HEAD")
	if hashErr != nil {
		return "", fmt.Errorf("getting HEAD: %w", hashErr)
	}
	return strings.TrimSpace(hash), nil
}

// BranchName returns the checked out branch. An unborn branch (no commits
// yet) still has a name.
func (s *CLIService) BranchName() (string, error) {
	ref, err := s.run("symbolic-ref", "--short", "-q", "HEAD")
	if err != nil {
		return "", ErrDetachedHead
	}
	return strings.TrimSpace(ref), nil
}

// ── Status & staging ────────────────────────────────────────────────────────

// Status lists the changed files of one side of the index.
func (s *CLIService) Status(t StatusType, includeUntracked bool) ([]StatusItem, error) {
	untracked := "--untracked-files=no"
	if includeUntracked && t == StatusWorkingDir {
		untracked = "--untracked-files=all"
	}
	out, err := s.run("status", "--porcelain=v1", "-z", untracked)
	if err != nil {
		return nil, fmt.Errorf("getting %s status: %w", t, err)
	}
	return ParseStatusOutput(out, t, includeUntracked), nil
}

// Stage stages the given paths, including deletions.
func (s *CLIService) Stage(paths ...string) error {
	args := append([]string{"add", "-A", "--"}, paths...)
	_, err := s.runWrite(args...)
	return err
}

// StageAll stages all changes.
func (s *CLIService) StageAll() error { _, err := s.runWrite("add", "-A"); return err }

// Unstage removes the given paths from the index. Works before the first
// commit, where there is no HEAD to reset to.
func (s *CLIService) Unstage(paths ...string) error {
	if _, err := s.run("rev-parse", "--verify", "-q", "HEAD"); err != nil {
		args := append([]string{"rm", "--cached", "-r", "-q", "--"}, paths...)
		_, err := s.runWrite(args...)
		return err
	}
	args := append([]string{"reset", "-q", "HEAD", "--"}, paths...)
	_, err := s.runWrite(args...)
	return err
}

// ResetWorkdir discards working tree changes of path. Untracked files are
// deleted; tracked files are restored from the index.
func (s *CLIService) ResetWorkdir(path string) error {
	tracked, err := s.isTracked(path)
	if err != nil {
		return err
	}
	if !tracked {
		full := filepath.Join(s.root, path)
		if !strings.HasPrefix(full, s.root+string(filepath.Separator)) {
			return fmt.Errorf("refusing to remove %q outside repository", path)
		}
		return os.RemoveAll(full)
	}
	_, err = s.runWrite("checkout", "--", path)
	return err
}

func (s *CLIService) isTracked(path string) (bool, error) {
	out, err := s.run("ls-files", "--", path)
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(out) != "", nil
}

// ── Diff ────────────────────────────────────────────────────────────────────

// Diff returns the parsed diff of path against the index (staged=false) or
// HEAD (staged=true). Untracked files diff as all-added.
func (s *CLIService) Diff(path string, staged bool) (FileDiff, error) {
	args := []string{"diff", "--color=never", "--no-ext-diff"}
	if staged {
		args = append(args, "--cached")
	}
	args = append(args, "--", path)
	out, err := s.run(args...)
	if err != nil {
		return FileDiff{}, err
	}
	if out != "" || staged {
		return ParseDiffOutput(out), nil
	}

	tracked, err := s.isTracked(path)
	if err != nil || tracked {
		return FileDiff{}, err
	}
	content, err := os.ReadFile(filepath.Join(s.root, path))
	if err != nil {
		return FileDiff{}, fmt.Errorf("reading untracked file: %w", err)
	}
	return UntrackedDiff(string(content)), nil
}

// ── Commits & branches ──────────────────────────────────────────────────────

// Commit creates a new commit with the given message.
func (s *CLIService) Commit(message string) error {
	if strings.TrimSpace(message) == "" {
		return ErrEmptyMessage
	}
	_, err := s.runWrite("commit", "-m", message)
	return err
}

// CreateBranch creates and checks out a new branch.
func (s *CLIService) CreateBranch(name string) error {
	_, err := s.runWrite("checkout", "-b", name)
	return err
}

// ── Remotes ─────────────────────────────────────────────────────────────────

// Push pushes ref (e.g. refs/heads/main) to remote. Credentials must come
// from a helper; prompting is disabled since the terminal belongs to the UI.
func (s *CLIService) Push(remote, ref string) error {
	env := []string{"GIT_TERMINAL_PROMPT=0"}
	_, err := runGit(s.root, env, pushTimeout, "push", remote, ref)
	return err
}
