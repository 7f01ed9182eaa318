package git

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// CommitFs returns a read-only filesystem holding the tree of commitID below
// root, placed at root's absolute path. Files are empty; the filesystem
// answers existence checks as of the commit, not content reads.
func CommitFs(root, commitID string) (afero.Fs, error) {
	if err := validateGitRef(commitID); err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root: %w", err)
	}

	// Run from root, ls-tree lists only root's subtree, relative to it.
	stdout, stderr, err := runGitCommand(absRoot, "ls-tree", "-r", "-z", "--name-only", commitID)
	if err != nil {
		return nil, gitCommandError(err, stderr)
	}

	fs := afero.NewMemMapFs()
	for _, name := range bytes.Split(stdout, []byte{0}) {
		if len(name) == 0 {
			continue
		}
		path := filepath.Join(absRoot, filepath.FromSlash(string(name)))
		if err := afero.WriteFile(fs, path, nil, 0o644); err != nil {
			return nil, fmt.Errorf("failed to record %s: %w", name, err)
		}
	}

	return afero.NewReadOnlyFs(fs), nil
}
