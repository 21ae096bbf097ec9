package gitlib

import (
	"errors"
	"fmt"

	git2go "github.com/libgit2/git2go/v34"
)

// Commit is a read-only view of one commit in the walk.
type Commit struct {
	Hash       Hash
	Author     Signature
	Committer  Signature
	Message    string
	NumParents int

	raw *git2go.Commit
}

// Free releases the underlying libgit2 commit.
func (c *Commit) Free() {
	if c.raw != nil {
		c.raw.Free()
		c.raw = nil
	}
}

// CommitIter walks commit history, newest first, applying the LogOptions
// filters. Callers must Free each returned commit and Close the iterator.
type CommitIter struct {
	repo *Repository
	walk *git2go.RevWalk
	opts LogOptions
	done bool
}

// Next returns the next commit that passes the filters, or ErrNoHistory
// when the walk is exhausted.
func (it *CommitIter) Next() (*Commit, error) {
	if it.done {
		return nil, ErrNoHistory
	}

	var oid git2go.Oid
	for {
		if err := it.walk.Next(&oid); err != nil {
			it.Close()

			gitErr := new(git2go.GitError)
			if errors.As(err, &gitErr) && gitErr.Code == git2go.ErrorCodeIterOver {
				return nil, ErrNoHistory
			}

			return nil, fmt.Errorf("advance revwalk: %w", err)
		}

		raw, err := it.repo.repo.LookupCommit(&oid)
		if err != nil {
			it.Close()
			return nil, fmt.Errorf("lookup commit %s: %w", oid.String(), err)
		}

		// Commits outside the filters are skipped, never treated as end
		// of walk: with topological sorting over multiple refs an old
		// side-branch commit can surface before newer commits on
		// another ref, so the walk must run to exhaustion (the same
		// contract as git log --since over --all).
		if !it.opts.admits(raw.Author().When, int(raw.ParentCount())) {
			raw.Free()
			continue
		}

		return newCommit(raw), nil
	}
}

// Close releases the walk. Safe to call more than once.
func (it *CommitIter) Close() {
	if it.walk != nil {
		it.walk.Free()
		it.walk = nil
	}

	it.done = true
}

func newCommit(raw *git2go.Commit) *Commit {
	author := raw.Author()
	committer := raw.Committer()

	return &Commit{
		Hash: HashFromOid(raw.Id()),
		Author: Signature{
			Name:  author.Name,
			Email: author.Email,
			When:  author.When,
		},
		Committer: Signature{
			Name:  committer.Name,
			Email: committer.Email,
			When:  committer.When,
		},
		Message:    raw.Message(),
		NumParents: int(raw.ParentCount()),
		raw:        raw,
	}
}
