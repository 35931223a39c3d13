package toolbox

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"nanoagent/model"
)

// FileInfo is the result of get_file_info.
type FileInfo struct {
	Path        string
	Size        int64
	ModifiedAt  time.Time
	IsDirectory bool
}

func (fi FileInfo) String() string {
	kind := "file"
	if fi.IsDirectory {
		kind = "directory"
	}
	return fmt.Sprintf("path: %s\ntype: %s\nsize: %d\nmodified: %s",
		fi.Path, kind, fi.Size, fi.ModifiedAt.Format(time.RFC3339))
}

// ReadFile returns the full contents of the file at path.
func (t *Toolbox) ReadFile(path string) (string, error) {
	abs, err := t.resolve(ToolReadFile, path)
	if err != nil {
		return "", err
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", t.notFound(ToolReadFile, path)
		}
		return "", t.ioError(ToolReadFile, path, err)
	}
	return string(data), nil
}

// WriteFile creates or overwrites the file at path, creating parent
// directories as needed, and returns the number of bytes written.
func (t *Toolbox) WriteFile(path, contents string) (int, error) {
	abs, err := t.resolve(ToolWriteFile, path)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(abs), 0755); err != nil {
		return 0, t.ioError(ToolWriteFile, path, err)
	}
	if err := os.WriteFile(abs, []byte(contents), 0644); err != nil {
		return 0, t.ioError(ToolWriteFile, path, err)
	}
	return len(contents), nil
}

// EditFile replaces an exact occurrence of oldText with newText and
// returns the number of replacements made (always 1 on success).
//
// Policy: the match must be unique. Zero occurrences fail with no_match,
// more than one with ambiguous_match, and the file is left untouched in
// both cases. Requiring uniqueness avoids edits landing on the wrong
// occurrence; the model can retry with a longer snippet.
func (t *Toolbox) EditFile(path, oldText, newText string) (int, error) {
	abs, err := t.resolve(ToolEditFile, path)
	if err != nil {
		return 0, err
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, t.notFound(ToolEditFile, path)
		}
		return 0, t.ioError(ToolEditFile, path, err)
	}

	content := string(data)
	switch n := strings.Count(content, oldText); {
	case oldText == "" || n == 0:
		return 0, &model.ToolError{
			Kind: model.ToolNoMatch,
			Tool: ToolEditFile,
			Msg:  fmt.Sprintf("old_text not found in %s", path),
		}
	case n > 1:
		return 0, &model.ToolError{
			Kind: model.ToolAmbiguousMatch,
			Tool: ToolEditFile,
			Msg:  fmt.Sprintf("old_text occurs %d times in %s; provide a unique match", n, path),
		}
	}

	updated := strings.Replace(content, oldText, newText, 1)

	perm := os.FileMode(0644)
	if info, statErr := os.Stat(abs); statErr == nil {
		perm = info.Mode().Perm()
	}
	if err := os.WriteFile(abs, []byte(updated), perm); err != nil {
		return 0, t.ioError(ToolEditFile, path, err)
	}
	return 1, nil
}

// ListDirectory returns the entries under path: directories first, then
// files, each group alphabetical. Directory names carry a trailing slash.
// The enumeration is finite and re-invocable, not a stream.
func (t *Toolbox) ListDirectory(path string) ([]string, error) {
	abs, err := t.resolve(ToolListDirectory, path)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, t.notFound(ToolListDirectory, path)
		}
		return nil, t.ioError(ToolListDirectory, path, err)
	}

	var dirs, files []string
	for _, e := range entries {
		if e.IsDir() {
			dirs = append(dirs, e.Name()+"/")
		} else {
			files = append(files, e.Name())
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)

	return append(dirs, files...), nil
}

// GetFileInfo returns size, modification time and type for path.
func (t *Toolbox) GetFileInfo(path string) (*FileInfo, error) {
	abs, err := t.resolve(ToolGetFileInfo, path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, t.notFound(ToolGetFileInfo, path)
		}
		return nil, t.ioError(ToolGetFileInfo, path, err)
	}

	return &FileInfo{
		Path:        path,
		Size:        info.Size(),
		ModifiedAt:  info.ModTime(),
		IsDirectory: info.IsDir(),
	}, nil
}

// resolve turns a tool-supplied path into an absolute path and enforces
// containment under the working directory. Symlinks are resolved before
// the check, so a link pointing outside the root is rejected the same way
// a ../ traversal is.
func (t *Toolbox) resolve(tool, path string) (string, error) {
	p := path
	if !filepath.IsAbs(p) {
		p = filepath.Join(t.root, p)
	}
	p = filepath.Clean(p)

	resolved, err := resolveSymlinks(p)
	if err != nil {
		return "", t.ioError(tool, path, err)
	}

	if resolved != t.root && !strings.HasPrefix(resolved, t.root+string(filepath.Separator)) {
		return "", &model.ToolError{
			Kind: model.ToolPathEscape,
			Tool: tool,
			Msg:  fmt.Sprintf("path %q escapes the working directory", path),
		}
	}
	return resolved, nil
}

// resolveSymlinks evaluates symlinks for path. When path (or a suffix of
// it) does not exist yet, the deepest existing ancestor is resolved and
// the non-existing remainder re-appended, so containment can still be
// checked for files about to be created.
func resolveSymlinks(path string) (string, error) {
	suffix := ""
	cur := path
	for {
		resolved, err := filepath.EvalSymlinks(cur)
		if err == nil {
			return filepath.Join(resolved, suffix), nil
		}
		if !os.IsNotExist(err) {
			return "", err
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return "", err
		}
		suffix = filepath.Join(filepath.Base(cur), suffix)
		cur = parent
	}
}

// canonicalRoot resolves workingDir to an absolute symlink-free path and
// verifies it is a directory.
func canonicalRoot(workingDir string) (string, error) {
	if workingDir == "" {
		workingDir = "."
	}
	abs, err := filepath.Abs(workingDir)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory")
	}
	return resolved, nil
}

func (t *Toolbox) notFound(tool, path string) error {
	return &model.ToolError{
		Kind: model.ToolNotFound,
		Tool: tool,
		Msg:  fmt.Sprintf("%s does not exist", path),
	}
}

// ioError covers filesystem failures that are neither a missing path nor
// a containment violation, such as permission denied or a symlink loop.
func (t *Toolbox) ioError(tool, path string, err error) error {
	return &model.ToolError{
		Kind: model.ToolIOError,
		Tool: tool,
		Msg:  fmt.Sprintf("%s: %v", path, err),
	}
}
