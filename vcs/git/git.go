package git

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/LegacyCodeHQ/modgraph/vcs"
)

// GetRepositoryRoot returns the absolute path to the repository root
func GetRepositoryRoot(repoPath string) (string, error) {
	stdout, stderr, err := runGitCommand(repoPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", gitCommandError(err, stderr)
	}

	return strings.TrimSpace(string(stdout)), nil
}

// ValidateCommit validates that a commit reference resolves in the given repository.
func ValidateCommit(repoPath, commitID string) error {
	if err := validateGitRef(commitID); err != nil {
		return err
	}

	if _, stderr, err := runGitCommand(repoPath, "rev-parse", "--verify", commitID+"^{commit}"); err != nil {
		if stderr != "" {
			return fmt.Errorf("invalid commit reference '%s': %s", commitID, stderr)
		}
		return fmt.Errorf("invalid commit reference '%s'", commitID)
	}

	return nil
}

// GetFileContentFromCommit reads the content of a file at a specific commit
// using 'git show commit:path'. The filePath should be relative to the repository root.
func GetFileContentFromCommit(repoPath, commitID, filePath string) ([]byte, error) {
	if err := validateGitRef(commitID); err != nil {
		return nil, err
	}
	if err := validateGitRelPath(filePath); err != nil {
		return nil, err
	}

	stdout, stderr, err := runGitCommand(repoPath, "show", fmt.Sprintf("%s:%s", commitID, filepath.ToSlash(filePath)))
	if err != nil {
		if stderr != "" {
			return nil, fmt.Errorf("git show failed: %s", stderr)
		}
		return nil, err
	}

	return stdout, nil
}

// CommitContentReader reads files as they were at commitID. Absolute paths are
// made relative to the repository root first.
func CommitContentReader(repoPath, commitID string) vcs.ContentReader {
	return func(filePath string) ([]byte, error) {
		relPath := filePath
		if filepath.IsAbs(filePath) {
			root, err := GetRepositoryRoot(repoPath)
			if err != nil {
				return nil, fmt.Errorf("failed to get repository root: %w", err)
			}
			// macOS temp dirs resolve through /private.
			if resolved, err := filepath.EvalSymlinks(filePath); err == nil {
				filePath = resolved
			}
			if resolved, err := filepath.EvalSymlinks(root); err == nil {
				root = resolved
			}
			relPath, err = filepath.Rel(root, filePath)
			if err != nil {
				return nil, err
			}
		}
		return GetFileContentFromCommit(repoPath, commitID, relPath)
	}
}

func validateGitRef(ref string) error {
	if ref == "" {
		return fmt.Errorf("git reference cannot be empty")
	}
	if strings.HasPrefix(ref, "-") {
		return fmt.Errorf("git reference cannot start with '-': %q", ref)
	}
	if strings.ContainsAny(ref, "\x00\n\r\t ") {
		return fmt.Errorf("git reference contains whitespace or NUL: %q", ref)
	}
	return nil
}

func validateGitRelPath(path string) error {
	if path == "" {
		return fmt.Errorf("git path cannot be empty")
	}
	if filepath.IsAbs(path) {
		return fmt.Errorf("git path must be relative: %q", path)
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("git path contains NUL: %q", path)
	}
	cleaned := filepath.Clean(path)
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(filepath.Separator)) {
		return fmt.Errorf("git path escapes repository: %q", path)
	}
	return nil
}
