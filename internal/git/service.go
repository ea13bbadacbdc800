package git

// Repository is the set of git operations the UI and background jobs need.
// Components depend on narrower slices of it so tests can substitute fakes.
type Repository interface {
	// ── Repository info ──────────────────────────────────────────────
	RepoRoot() string
	GitDir() string
	Head() (string, error)
	BranchName() (string, error)

	// ── Status & staging ─────────────────────────────────────────────
	Status(t StatusType, includeUntracked bool) ([]StatusItem, error)
	Stage(paths ...string) error
	StageAll() error
	Unstage(paths ...string) error
	ResetWorkdir(path string) error

	// ── Diff ─────────────────────────────────────────────────────────
	Diff(path string, staged bool) (FileDiff, error)

	// ── Commits & branches ───────────────────────────────────────────
	Commit(message string) error
	CreateBranch(name string) error

	// ── Remotes ──────────────────────────────────────────────────────
	Push(remote, ref string) error
}
