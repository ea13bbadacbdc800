package git

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatusOutputSplitsSides(t *testing.T) {
	out := "M  staged.go\x00" +
		" M modified.go\x00" +
		"MM both.go\x00" +
		"A  added.go\x00" +
		" D gone.go\x00" +
		"R  new.go\x00old.go\x00" +
		"UU conflict.go\x00" +
		"?? untracked.txt\x00"

	stage := ParseStatusOutput(out, StatusStage, true)
	assert.Equal(t, []StatusItem{
		{Path: "staged.go", Code: StatusModified},
		{Path: "both.go", Code: StatusModified},
		{Path: "added.go", Code: StatusAdded},
		{Path: "new.go", OrigPath: "old.go", Code: StatusRenamed},
	}, stage)

	wd := ParseStatusOutput(out, StatusWorkingDir, true)
	assert.Equal(t, []StatusItem{
		{Path: "modified.go", Code: StatusModified},
		{Path: "both.go", Code: StatusModified},
		{Path: "gone.go", Code: StatusDeleted},
		{Path: "conflict.go", Code: StatusUnmerged},
		{Path: "untracked.txt", Code: StatusUntracked},
	}, wd)
}

func TestParseStatusOutputWithoutUntracked(t *testing.T) {
	items := ParseStatusOutput("?? a.txt\x00 M b.txt\x00", StatusWorkingDir, false)
	assert.Equal(t, []StatusItem{{Path: "b.txt", Code: StatusModified}}, items)
}

func TestParseStatusOutputEmpty(t *testing.T) {
	assert.Empty(t, ParseStatusOutput("", StatusStage, true))
	assert.Empty(t, ParseStatusOutput("", StatusWorkingDir, true))
}

func TestParseDiffOutput(t *testing.T) {
	out := `diff --git a/main.go b/main.go
index 3b18e51..a042389 100644
--- a/main.go
+++ b/main.go
@@ -1,3 +1,4 @@ package main
 package main
-var x = 1
+var x = 2
+var y = 3
 
\ No newline at end of file
`
	d := ParseDiffOutput(out)
	require.Len(t, d.Hunks, 1)
	h := d.Hunks[0]
	assert.Equal(t, "@@ -1,3 +1,4 @@ package main", h.Header)
	require.Len(t, h.Lines, 7)
	assert.Equal(t, DiffHeader, h.Lines[0].Kind)
	assert.Equal(t, DiffLine{Kind: DiffContext, Content: "package main", OldLine: 1, NewLine: 1}, h.Lines[1])
	assert.Equal(t, DiffLine{Kind: DiffDelete, Content: "var x = 1", OldLine: 2}, h.Lines[2])
	assert.Equal(t, DiffLine{Kind: DiffAdd, Content: "var x = 2", NewLine: 2}, h.Lines[3])
	assert.Equal(t, DiffLine{Kind: DiffAdd, Content: "var y = 3", NewLine: 3}, h.Lines[4])
	assert.Equal(t, DiffLine{Kind: DiffContext, Content: "", OldLine: 3, NewLine: 4}, h.Lines[5])
	assert.Equal(t, DiffNoNewline, h.Lines[6].Kind)
	assert.Equal(t, 7, d.Lines)
	assert.False(t, d.Empty())
}

func TestParseDiffOutputMultipleHunks(t *testing.T) {
	out := "diff --git a/f b/f\n--- a/f\n+++ b/f\n" +
		"@@ -1 +1 @@\n-a\n+b\n" +
		"@@ -10,2 +10,2 @@\n x\n-y\n+z\n"
	d := ParseDiffOutput(out)
	require.Len(t, d.Hunks, 2)
	assert.Equal(t, 10, d.Hunks[1].Lines[1].OldLine)
	assert.Equal(t, 11, d.Hunks[1].Lines[3].NewLine)
}

func TestParseDiffOutputBinary(t *testing.T) {
	d := ParseDiffOutput("diff --git a/x.png b/x.png\nBinary files a/x.png and b/x.png differ\n")
	assert.True(t, d.Binary)
	assert.Empty(t, d.Hunks)
	assert.False(t, d.Empty())
}

func TestParseDiffOutputEmpty(t *testing.T) {
	assert.True(t, ParseDiffOutput("").Empty())
}

func TestUntrackedDiff(t *testing.T) {
	d := UntrackedDiff("one\ntwo\n")
	assert.True(t, d.Untracked)
	require.Len(t, d.Hunks, 1)
	assert.Equal(t, "@@ -0,0 +1,2 @@", d.Hunks[0].Header)
	assert.Equal(t, DiffLine{Kind: DiffAdd, Content: "two", NewLine: 2}, d.Hunks[0].Lines[2])

	assert.True(t, UntrackedDiff("bin\x00ary").Binary)
	assert.True(t, UntrackedDiff("").Empty())
}
