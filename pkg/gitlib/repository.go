package gitlib

import (
	"errors"
	"fmt"
	"time"

	git2go "github.com/libgit2/git2go/v34"
)

// ErrNoHistory is returned when the walk has no commits left.
var ErrNoHistory = errors.New("no commits in walk")

// Repository wraps a libgit2 repository handle.
type Repository struct {
	repo *git2go.Repository
	path string
}

// OpenRepository opens the repository at path, searching upward for the
// .git directory the way the git CLI does.
func OpenRepository(path string) (*Repository, error) {
	repo, err := git2go.OpenRepositoryExtended(path, 0, "")
	if err != nil {
		return nil, fmt.Errorf("open repository %q: %w", path, err)
	}

	return &Repository{repo: repo, path: path}, nil
}

// Path returns the path the repository was opened with.
func (r *Repository) Path() string {
	return r.path
}

// Free releases the underlying libgit2 handle.
func (r *Repository) Free() {
	if r.repo != nil {
		r.repo.Free()
		r.repo = nil
	}
}

// Head resolves HEAD to a commit hash.
func (r *Repository) Head() (Hash, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return Hash{}, fmt.Errorf("resolve HEAD: %w", err)
	}
	defer ref.Free()

	return HashFromOid(ref.Target()), nil
}

// ResolveRevision resolves a branch name, tag or revision expression to a
// commit hash.
func (r *Repository) ResolveRevision(rev string) (Hash, error) {
	obj, err := r.repo.RevparseSingle(rev)
	if err != nil {
		return Hash{}, fmt.Errorf("resolve revision %q: %w", rev, err)
	}
	defer obj.Free()

	commit, err := obj.Peel(git2go.ObjectCommit)
	if err != nil {
		return Hash{}, fmt.Errorf("peel %q to commit: %w", rev, err)
	}
	defer commit.Free()

	return HashFromOid(commit.Id()), nil
}

// LogOptions controls a history walk.
type LogOptions struct {
	// Branch is a revision to start from. Empty walks all refs.
	Branch string
	// Since drops commits authored strictly before this time.
	Since *time.Time
	// Until drops commits authored strictly after this time.
	Until *time.Time
	// IncludeMerges keeps commits with more than one parent.
	IncludeMerges bool
}

// admits reports whether a commit with the given author time and parent
// count passes the walk filters.
func (opts LogOptions) admits(when time.Time, parents int) bool {
	if !opts.IncludeMerges && parents > 1 {
		return false
	}

	if opts.Until != nil && when.After(*opts.Until) {
		return false
	}

	if opts.Since != nil && when.Before(*opts.Since) {
		return false
	}

	return true
}

// Log starts a commit walk in time order, newest first.
func (r *Repository) Log(opts LogOptions) (*CommitIter, error) {
	walk, err := r.repo.Walk()
	if err != nil {
		return nil, fmt.Errorf("create revwalk: %w", err)
	}

	walk.Sorting(git2go.SortTime | git2go.SortTopological)

	if opts.Branch != "" {
		hash, err := r.ResolveRevision(opts.Branch)
		if err != nil {
			walk.Free()
			return nil, err
		}

		if err := walk.Push(hash.ToOid()); err != nil {
			walk.Free()
			return nil, fmt.Errorf("push %s: %w", hash, err)
		}
	} else if err := walk.PushGlob("refs/*"); err != nil {
		walk.Free()
		return nil, fmt.Errorf("push refs glob: %w", err)
	}

	return &CommitIter{repo: r, walk: walk, opts: opts}, nil
}
