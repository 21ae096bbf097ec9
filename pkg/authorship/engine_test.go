package authorship

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bobHistory() []CommitRecord {
	return []CommitRecord{
		{
			Hash:        "c1",
			AuthorName:  "Bob",
			AuthorEmail: "bob@x.com",
			Patch:       "@@ -1 +1 @@\n-foo\n+bar\n",
		},
		{
			Hash:        "c2",
			AuthorName:  "Bob",
			AuthorEmail: "bob@x.com",
			Patch:       "@@ -0,0 +1 @@\n+hello\n",
		},
	}
}

func TestEngineTwoCommitScenario(t *testing.T) {
	t.Parallel()

	engine := NewEngine(Options{GroupBy: GroupByName})
	for _, rec := range bobHistory() {
		engine.Consume(rec)
	}

	rows := engine.Rows()
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, "Bob", row.Author)
	assert.Equal(t, "bob@x.com", row.Email)
	assert.Equal(t, 2, row.Commits)
	assert.Equal(t, 2, row.AddedLines)
	assert.Equal(t, 1, row.DeletedLines)
	assert.Equal(t, 3, row.AddedPlusDeleted)
	assert.Equal(t, 1, row.NetLines)
	assert.Equal(t, 5, row.AddedChars)
	assert.Equal(t, 0, row.DeletedChars)
	assert.Equal(t, 3, row.ModifiedChars)
	assert.Equal(t, 8, row.AddedOrModifiedChars)
	assert.Equal(t, 5, row.NetChars)
}

func TestEngineEmptyPatchCountsCommitOnly(t *testing.T) {
	t.Parallel()

	engine := NewEngine(Options{GroupBy: GroupByName})
	engine.Consume(CommitRecord{Hash: "c1", AuthorName: "Eve", AuthorEmail: "e@x.com"})

	rows := engine.Rows()
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, 1, row.Commits)
	assert.Zero(t, row.AddedLines)
	assert.Zero(t, row.DeletedLines)
	assert.Zero(t, row.AddedChars)
	assert.Zero(t, row.DeletedChars)
	assert.Zero(t, row.ModifiedChars)
}

func TestEngineDeterministicAcrossRuns(t *testing.T) {
	t.Parallel()

	history := append(bobHistory(),
		CommitRecord{Hash: "c3", AuthorName: "alice", AuthorEmail: "a@x.com",
			Patch: "@@ -1,2 +1 @@\n-abc\n-de\n+abd\n"},
		CommitRecord{Hash: "c4", AuthorName: "Alice", AuthorEmail: "a@x.com",
			Patch: "@@ -0,0 +1,2 @@\n+xyz\n+w\n"},
	)

	run := func() []Row {
		engine := NewEngine(Options{GroupBy: GroupByName})
		for _, rec := range history {
			engine.Consume(rec)
		}

		return engine.Rows()
	}

	first := run()
	second := run()

	assert.Equal(t, first, second)
}

func TestEngineCaseFoldedGroupsShareRecord(t *testing.T) {
	t.Parallel()

	engine := NewEngine(Options{GroupBy: GroupByName})
	engine.Consume(CommitRecord{Hash: "c1", AuthorName: "Alice", AuthorEmail: "a@x.com"})
	engine.Consume(CommitRecord{Hash: "c2", AuthorName: "alice", AuthorEmail: "a@x.com"})

	assert.Equal(t, 1, engine.Authors())

	rows := engine.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].Commits)
}

func TestEngineEmitsCommitEvents(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	engine := NewEngine(Options{GroupBy: GroupByName, Sink: sink})

	engine.Consume(CommitRecord{Hash: "c1", AuthorName: "Bob", AuthorEmail: "b@x.com",
		Patch: "@@ -1 +1 @@\n-a\n+b\n"})
	engine.Consume(CommitRecord{Hash: "c2", AuthorName: "Bob", AuthorEmail: "b@x.com"})

	require.Len(t, sink.commits, 2)
	assert.Equal(t, "c1", sink.commits[0].Hash)
	assert.False(t, sink.commits[0].EmptyPatch)
	assert.True(t, sink.commits[1].EmptyPatch)
	require.Len(t, sink.flushes, 1)
}
