// Package gitver derives the default image tag from the state of the git
// working copy.
package gitver

import (
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/semver/v3"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// timestampLayout marks dirty builds, UTC: YYYYMMDD-HHMMSS.
const timestampLayout = "20060102-150405"

// ImageTag derives the default image tag from the repository containing
// dir.
//
// A clean tree whose HEAD carries an exact semver tag yields the
// normalized version (highest tag wins when several point at HEAD). Any
// other clean tree yields the full 40-character commit hash. A dirty tree
// always uses the commit hash and appends "-dirty-" plus a UTC timestamp,
// marking the build as non-reproducible.
//
// now is injectable for tests; pass time.Now.
func ImageTag(dir string, now func() time.Time) (string, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("opening git repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}

	dirty, err := worktreeDirty(repo)
	if err != nil {
		return "", err
	}
	if dirty {
		return FormatDirty(head.Hash().String(), now().UTC()), nil
	}

	if v := releaseTag(repo, head.Hash()); v != "" {
		return v, nil
	}
	return head.Hash().String(), nil
}

// FormatDirty appends the dirty marker and timestamp to a base tag.
func FormatDirty(base string, ts time.Time) string {
	return fmt.Sprintf("%s-dirty-%s", base, ts.Format(timestampLayout))
}

func worktreeDirty(repo *git.Repository) (bool, error) {
	wt, err := repo.Worktree()
	if err != nil {
		if errors.Is(err, git.ErrIsBareRepository) {
			return false, nil
		}
		return false, fmt.Errorf("opening worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return false, fmt.Errorf("worktree status: %w", err)
	}
	return !status.IsClean(), nil
}

// releaseTag returns the normalized semver version of the highest tag
// pointing at head, or "" when no semver tag does.
func releaseTag(repo *git.Repository, head plumbing.Hash) string {
	tags, err := repo.Tags()
	if err != nil {
		return ""
	}
	defer tags.Close()

	var best *semver.Version
	_ = tags.ForEach(func(ref *plumbing.Reference) error {
		hash := ref.Hash()
		// Annotated tags point at a tag object, not the commit.
		if obj, objErr := repo.TagObject(ref.Hash()); objErr == nil {
			hash = obj.Target
		}
		if hash != head {
			return nil
		}
		v, vErr := semver.NewVersion(ref.Name().Short())
		if vErr != nil {
			return nil
		}
		if best == nil || v.GreaterThan(best) {
			best = v
		}
		return nil
	})

	if best == nil {
		return ""
	}
	return best.String()
}
