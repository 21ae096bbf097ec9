package gitlib

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlobPatchReplacement(t *testing.T) {
	t.Parallel()

	got := blobPatch("a.txt", "a.txt", "foo\n", "bar\n")

	want := "diff --git a/a.txt b/a.txt\n" +
		"--- a/a.txt\n" +
		"+++ b/a.txt\n" +
		"@@ -1,1 +1,1 @@\n" +
		"-foo\n" +
		"+bar\n"
	assert.Equal(t, want, got)
}

func TestBlobPatchPureInsert(t *testing.T) {
	t.Parallel()

	got := blobPatch("a.txt", "a.txt", "", "hello\nworld\n")

	assert.Contains(t, got, "@@ -0,0 +1,2 @@\n")
	assert.Contains(t, got, "+hello\n+world\n")
	assert.NotContains(t, got, "\n-")
}

func TestBlobPatchPureDelete(t *testing.T) {
	t.Parallel()

	got := blobPatch("a.txt", "a.txt", "gone\n", "")

	assert.Contains(t, got, "@@ -1,1 +0,0 @@\n")
	assert.Contains(t, got, "-gone\n")
}

func TestBlobPatchSeparatedHunks(t *testing.T) {
	t.Parallel()

	oldData := "one\nkeep\nkeep\nkeep\ntwo\n"
	newData := "ONE\nkeep\nkeep\nkeep\nTWO\n"

	got := blobPatch("f", "f", oldData, newData)

	assert.Contains(t, got, "@@ -1,1 +1,1 @@\n-one\n+ONE\n")
	assert.Contains(t, got, "@@ -5,1 +5,1 @@\n-two\n+TWO\n")
	// Zero context: unchanged lines never appear in the body.
	assert.NotContains(t, got, "\n keep")
}

func TestBlobPatchIdenticalContent(t *testing.T) {
	t.Parallel()

	got := blobPatch("f", "f", "same\n", "same\n")

	assert.NotContains(t, got, "@@")
}

func TestHashRoundTrip(t *testing.T) {
	t.Parallel()

	var h Hash
	for i := range HashSize {
		h[i] = byte(i)
	}

	assert.Equal(t, h, HashFromOid(h.ToOid()))
	assert.Equal(t, "000102030405060708090a0b0c0d0e0f10111213", h.String())
	assert.False(t, h.IsZero())
	assert.True(t, Hash{}.IsZero())
}
