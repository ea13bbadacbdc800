package git

import (
	"strconv"
	"strings"
)

// ── Status parsing ──────────────────────────────────────────────────────────

// ParseStatusOutput parses `git status --porcelain=v1 -z` into the list for
// one side of the index. Conflicted entries belong to the working directory.
// NUL-delimited scanning avoids allocating a large []string for repos with
// thousands of changed files.
func ParseStatusOutput(out string, t StatusType, includeUntracked bool) []StatusItem {
	if len(out) == 0 {
		return nil
	}
	items := make([]StatusItem, 0, 32)

	for len(out) > 0 {
		var entry string
		entry, out = nextNul(out)
		if len(entry) < 4 {
			continue
		}

		staging := StatusCode(entry[0])
		worktree := StatusCode(entry[1])
		item := StatusItem{Path: entry[3:]}

		// Renames/copies carry the original path in the following entry.
		if staging == StatusRenamed || staging == StatusCopied ||
			worktree == StatusRenamed || worktree == StatusCopied {
			item.OrigPath, out = nextNul(out)
		}

		switch {
		case staging == StatusUntracked && worktree == StatusUntracked:
			if t == StatusWorkingDir && includeUntracked {
				item.Code = StatusUntracked
				items = append(items, item)
			}
		case isConflict(staging, worktree):
			if t == StatusWorkingDir {
				item.Code = StatusUnmerged
				items = append(items, item)
			}
		case t == StatusStage && staging != StatusUnmodified && staging != StatusIgnored:
			item.Code = staging
			items = append(items, item)
		case t == StatusWorkingDir && worktree != StatusUnmodified && worktree != StatusIgnored:
			item.Code = worktree
			if worktree != StatusRenamed && worktree != StatusCopied {
				item.OrigPath = ""
			}
			items = append(items, item)
		}
	}
	return items
}

func nextNul(s string) (entry, rest string) {
	i := strings.IndexByte(s, '\x00')
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i+1:]
}

func isConflict(staging, worktree StatusCode) bool {
	return staging == StatusUnmerged || worktree == StatusUnmerged ||
		(staging == StatusAdded && worktree == StatusAdded) ||
		(staging == StatusDeleted && worktree == StatusDeleted)
}

// ── Diff parsing ────────────────────────────────────────────────────────────

// ParseDiffOutput parses a single-file unified diff as produced by
// `git diff -- <path>`.
func ParseDiffOutput(out string) FileDiff {
	var (
		d        FileDiff
		cur      *Hunk
		oldN     int
		newN     int
		inHeader = true
	)
	flush := func() {
		if cur != nil {
			d.Hunks = append(d.Hunks, *cur)
			cur = nil
		}
	}

	for len(out) > 0 {
		var line string
		if i := strings.IndexByte(out, '\n'); i >= 0 {
			line, out = out[:i], out[i+1:]
		} else {
			line, out = out, ""
		}

		if strings.HasPrefix(line, "@@") {
			flush()
			inHeader = false
			oldN, newN = parseHunkHeader(line)
			cur = &Hunk{Header: line}
			cur.Lines = append(cur.Lines, DiffLine{Kind: DiffHeader, Content: line})
			continue
		}
		if inHeader {
			if strings.HasPrefix(line, "Binary files ") {
				d.Binary = true
			}
			continue
		}
		if strings.HasPrefix(line, "diff --git ") {
			// a second file section; single-file diffs never get here
			flush()
			inHeader = true
			continue
		}
		if cur == nil {
			continue
		}

		var dl DiffLine
		switch {
		case strings.HasPrefix(line, "+"):
			dl = DiffLine{Kind: DiffAdd, Content: line[1:], NewLine: newN}
			newN++
		case strings.HasPrefix(line, "-"):
			dl = DiffLine{Kind: DiffDelete, Content: line[1:], OldLine: oldN}
			oldN++
		case strings.HasPrefix(line, `\`):
			dl = DiffLine{Kind: DiffNoNewline, Content: line}
		default:
			content := line
			if len(content) > 0 {
				content = content[1:]
			}
			dl = DiffLine{Kind: DiffContext, Content: content, OldLine: oldN, NewLine: newN}
			oldN++
			newN++
		}
		cur.Lines = append(cur.Lines, dl)
	}
	flush()

	for _, h := range d.Hunks {
		d.Lines += len(h.Lines)
	}
	return d
}

// parseHunkHeader extracts the starting line numbers of "@@ -a,b +c,d @@".
func parseHunkHeader(h string) (oldStart, newStart int) {
	fields := strings.Fields(h)
	for _, f := range fields[1:] {
		switch {
		case strings.HasPrefix(f, "-"):
			oldStart = leadingInt(f[1:])
		case strings.HasPrefix(f, "+"):
			newStart = leadingInt(f[1:])
		case f == "@@":
			return oldStart, newStart
		}
	}
	return oldStart, newStart
}

func leadingInt(s string) int {
	if i := strings.IndexByte(s, ','); i >= 0 {
		s = s[:i]
	}
	n, _ := strconv.Atoi(s)
	return n
}

// UntrackedDiff renders the content of a new file as a diff that adds
// every line.
func UntrackedDiff(content string) FileDiff {
	d := FileDiff{Untracked: true}
	if strings.IndexByte(content, 0) >= 0 {
		d.Binary = true
		return d
	}
	content = strings.TrimSuffix(content, "\n")
	if content == "" {
		return d
	}
	lines := strings.Split(content, "\n")
	header := "@@ -0,0 +1," + strconv.Itoa(len(lines)) + " @@"
	h := Hunk{Header: header, Lines: make([]DiffLine, 0, len(lines)+1)}
	h.Lines = append(h.Lines, DiffLine{Kind: DiffHeader, Content: header})
	for i, l := range lines {
		h.Lines = append(h.Lines, DiffLine{Kind: DiffAdd, Content: l, NewLine: i + 1})
	}
	d.Hunks = []Hunk{h}
	d.Lines = len(h.Lines)
	return d
}
