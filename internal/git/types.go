package git

// StatusCode represents a single-character Git status indicator.
type StatusCode byte

// Git status codes as single-byte indicators.
const (
	StatusUnmodified  StatusCode = ' '
	StatusModified    StatusCode = 'M'
	StatusTypeChanged StatusCode = 'T'
	StatusAdded       StatusCode = 'A'
	StatusDeleted     StatusCode = 'D'
	StatusRenamed     StatusCode = 'R'
	StatusCopied      StatusCode = 'C'
	StatusUnmerged    StatusCode = 'U'
	StatusUntracked   StatusCode = '?'
	StatusIgnored     StatusCode = '!'
)

// String returns the single-character representation.
func (s StatusCode) String() string { return string(s) }

// Label returns a human-readable description of the status.
func (s StatusCode) Label() string {
	switch s {
	case StatusModified:
		return "Modified"
	case StatusTypeChanged:
		return "Type Changed"
	case StatusAdded:
		return "Added"
	case StatusDeleted:
		return "Deleted"
	case StatusRenamed:
		return "Renamed"
	case StatusCopied:
		return "Copied"
	case StatusUnmerged:
		return "Unmerged"
	case StatusUntracked:
		return "Untracked"
	case StatusIgnored:
		return "Ignored"
	default:
		return ""
	}
}

// StatusType selects which side of the index a status listing describes.
type StatusType int

const (
	// StatusWorkingDir lists changes between the index and the working tree.
	StatusWorkingDir StatusType = iota
	// StatusStage lists changes between HEAD and the index.
	StatusStage
)

func (t StatusType) String() string {
	if t == StatusStage {
		return "stage"
	}
	return "workdir"
}

// StatusItem is one changed file in either list.
type StatusItem struct {
	Path     string
	OrigPath string // Only set for renames/copies.
	Code     StatusCode
}

// Status is a snapshot of one status listing.
type Status struct {
	Items []StatusItem
}

// DiffLineKind classifies a line of a hunk.
type DiffLineKind int

// Diff line kinds.
const (
	DiffContext DiffLineKind = iota
	DiffAdd
	DiffDelete
	DiffHeader
	DiffNoNewline
)

// DiffLine is one rendered line of a hunk. Line numbers are zero when the
// line does not exist on that side.
type DiffLine struct {
	Kind    DiffLineKind
	Content string
	OldLine int
	NewLine int
}

// Hunk is a contiguous block of changes; Lines[0] is its @@ header.
type Hunk struct {
	Header string
	Lines  []DiffLine
}

// FileDiff is the parsed diff of a single file.
type FileDiff struct {
	Hunks     []Hunk
	Lines     int
	Untracked bool
	Binary    bool
}

// Empty reports whether the diff carries no renderable content.
func (d FileDiff) Empty() bool {
	return len(d.Hunks) == 0 && !d.Binary
}
