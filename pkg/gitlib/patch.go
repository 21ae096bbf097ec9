package gitlib

import (
	"fmt"
	"strings"

	git2go "github.com/libgit2/git2go/v34"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const defaultContextLines = 3

// CommitPatch renders the unified diff of a commit against its first
// parent with zero context lines. When libgit2 cannot produce the
// zero-context patch it retries with the default context width, so the
// caller always gets parseable diff text for a non-empty change.
func (r *Repository) CommitPatch(c *Commit) (string, error) {
	text, err := r.commitPatchText(c, 0)
	if err == nil {
		return text, nil
	}

	text, fallbackErr := r.commitPatchText(c, defaultContextLines)
	if fallbackErr != nil {
		return "", fmt.Errorf("diff commit %s: %w", c.Hash, err)
	}

	return text, nil
}

func (r *Repository) commitPatchText(c *Commit, contextLines uint32) (string, error) {
	newTree, err := c.raw.Tree()
	if err != nil {
		return "", fmt.Errorf("commit tree: %w", err)
	}
	defer newTree.Free()

	var oldTree *git2go.Tree
	if c.NumParents > 0 {
		parent := c.raw.Parent(0)
		defer parent.Free()

		oldTree, err = parent.Tree()
		if err != nil {
			return "", fmt.Errorf("parent tree: %w", err)
		}
		defer oldTree.Free()
	}

	opts, err := git2go.DefaultDiffOptions()
	if err != nil {
		return "", fmt.Errorf("diff options: %w", err)
	}

	opts.ContextLines = contextLines

	diff, err := r.repo.DiffTreeToTree(oldTree, newTree, &opts)
	if err != nil {
		return "", fmt.Errorf("diff trees: %w", err)
	}
	defer func() { _ = diff.Free() }()

	numDeltas, err := diff.NumDeltas()
	if err != nil {
		return "", fmt.Errorf("count deltas: %w", err)
	}

	var sb strings.Builder
	for i := range numDeltas {
		text, err := r.deltaText(diff, i)
		if err != nil {
			return "", err
		}

		sb.WriteString(text)
	}

	return sb.String(), nil
}

// deltaText renders one delta. Binary or otherwise unrenderable deltas
// fall back to a text diff of the two blobs.
func (r *Repository) deltaText(diff *git2go.Diff, index int) (string, error) {
	patch, err := diff.Patch(index)
	if err == nil {
		text, strErr := patch.String()
		freeErr := patch.Free()

		if strErr == nil && freeErr == nil {
			return text, nil
		}
	}

	delta, deltaErr := diff.Delta(index)
	if deltaErr != nil {
		return "", fmt.Errorf("delta %d: %w", index, deltaErr)
	}

	oldData, err := r.blobContent(delta.OldFile.Oid)
	if err != nil {
		return "", err
	}

	newData, err := r.blobContent(delta.NewFile.Oid)
	if err != nil {
		return "", err
	}

	return blobPatch(delta.OldFile.Path, delta.NewFile.Path, oldData, newData), nil
}

func (r *Repository) blobContent(oid *git2go.Oid) (string, error) {
	if oid == nil || oid.IsZero() {
		return "", nil
	}

	blob, err := r.repo.LookupBlob(oid)
	if err != nil {
		return "", fmt.Errorf("lookup blob %s: %w", oid.String(), err)
	}
	defer blob.Free()

	return string(blob.Contents()), nil
}

// blobPatch produces zero-context unified diff text for a pair of blob
// contents using a line-granular diff.
func blobPatch(oldPath, newPath string, oldData, newData string) string {
	dmp := diffmatchpatch.New()

	oldRunes, newRunes, lineIndex := dmp.DiffLinesToRunes(oldData, newData)
	diffs := dmp.DiffCharsToLines(dmp.DiffMainRunes(oldRunes, newRunes, false), lineIndex)

	var sb strings.Builder
	fmt.Fprintf(&sb, "diff --git a/%s b/%s\n", oldPath, newPath)
	fmt.Fprintf(&sb, "--- a/%s\n", oldPath)
	fmt.Fprintf(&sb, "+++ b/%s\n", newPath)

	oldLine, newLine := 1, 1

	var hunk strings.Builder
	hunkOldStart, hunkNewStart := 0, 0
	hunkOldCount, hunkNewCount := 0, 0

	flush := func() {
		if hunk.Len() == 0 {
			return
		}

		// Git addresses an empty side at the line before the hunk.
		oldStart, newStart := hunkOldStart, hunkNewStart
		if hunkOldCount == 0 {
			oldStart--
		}

		if hunkNewCount == 0 {
			newStart--
		}

		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", oldStart, hunkOldCount, newStart, hunkNewCount)
		sb.WriteString(hunk.String())
		hunk.Reset()
		hunkOldCount, hunkNewCount = 0, 0
	}

	open := func() {
		if hunk.Len() == 0 {
			hunkOldStart, hunkNewStart = oldLine, newLine
		}
	}

	for _, d := range diffs {
		lines := splitDiffLines(d.Text)

		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()

			oldLine += len(lines)
			newLine += len(lines)
		case diffmatchpatch.DiffDelete:
			open()

			for _, line := range lines {
				hunk.WriteString("-")
				hunk.WriteString(line)
				hunk.WriteString("\n")
			}

			hunkOldCount += len(lines)
			oldLine += len(lines)
		case diffmatchpatch.DiffInsert:
			open()

			for _, line := range lines {
				hunk.WriteString("+")
				hunk.WriteString(line)
				hunk.WriteString("\n")
			}

			hunkNewCount += len(lines)
			newLine += len(lines)
		}
	}

	flush()

	return sb.String()
}

func splitDiffLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}

	return strings.Split(text, "\n")
}
