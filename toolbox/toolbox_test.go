package toolbox

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"nanoagent/model"
)

func newTestToolbox(t *testing.T) (*Toolbox, string) {
	t.Helper()
	dir := t.TempDir()
	tb, err := New(dir)
	if err != nil {
		t.Fatalf("New(%q) error = %v", dir, err)
	}
	return tb, tb.Root()
}

func assertToolError(t *testing.T, err error, kind model.ToolErrorKind) {
	t.Helper()
	var toolErr *model.ToolError
	if !errors.As(err, &toolErr) {
		t.Fatalf("error type %T, want *model.ToolError (err: %v)", err, err)
	}
	if toolErr.Kind != kind {
		t.Errorf("error kind: got %q, want %q", toolErr.Kind, kind)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	tb, root := newTestToolbox(t)

	n, err := tb.WriteFile("nested/deep/file.txt", "round trip")
	if err != nil {
		t.Fatalf("WriteFile error = %v", err)
	}
	if n != len("round trip") {
		t.Errorf("bytes written: got %d, want %d", n, len("round trip"))
	}

	// Parent directories were created.
	if _, err := os.Stat(filepath.Join(root, "nested", "deep")); err != nil {
		t.Fatalf("parent directories missing: %v", err)
	}

	got, err := tb.ReadFile("nested/deep/file.txt")
	if err != nil {
		t.Fatalf("ReadFile error = %v", err)
	}
	if got != "round trip" {
		t.Errorf("ReadFile: got %q", got)
	}
}

func TestWriteFileOverwrites(t *testing.T) {
	tb, _ := newTestToolbox(t)

	if _, err := tb.WriteFile("f.txt", "first"); err != nil {
		t.Fatal(err)
	}
	if _, err := tb.WriteFile("f.txt", "second"); err != nil {
		t.Fatal(err)
	}

	got, err := tb.ReadFile("f.txt")
	if err != nil {
		t.Fatal(err)
	}
	if got != "second" {
		t.Errorf("got %q, want %q", got, "second")
	}
}

func TestReadFileNotFound(t *testing.T) {
	tb, _ := newTestToolbox(t)

	_, err := tb.ReadFile("missing.txt")
	assertToolError(t, err, model.ToolNotFound)
}

func TestEditFile(t *testing.T) {
	tests := []struct {
		name         string
		contents     string
		oldText      string
		expectedKind model.ToolErrorKind // empty means success
	}{
		{"unique match", "alpha beta gamma", "beta", ""},
		{"no match", "alpha beta gamma", "delta", model.ToolNoMatch},
		{"ambiguous match", "beta alpha beta", "beta", model.ToolAmbiguousMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb, _ := newTestToolbox(t)
			if _, err := tb.WriteFile("f.txt", tt.contents); err != nil {
				t.Fatal(err)
			}

			n, err := tb.EditFile("f.txt", tt.oldText, "REPLACED")

			if tt.expectedKind != "" {
				assertToolError(t, err, tt.expectedKind)
				// File untouched on failure.
				got, _ := tb.ReadFile("f.txt")
				if got != tt.contents {
					t.Errorf("file modified after failed edit: %q", got)
				}
				return
			}

			if err != nil {
				t.Fatalf("EditFile error = %v", err)
			}
			if n != 1 {
				t.Errorf("replacements: got %d, want 1", n)
			}
			got, _ := tb.ReadFile("f.txt")
			if got != "alpha REPLACED gamma" {
				t.Errorf("edited contents: got %q", got)
			}
		})
	}
}

func TestEditFileNotFound(t *testing.T) {
	tb, _ := newTestToolbox(t)

	_, err := tb.EditFile("missing.txt", "a", "b")
	assertToolError(t, err, model.ToolNotFound)
}

func TestListDirectoryOrdering(t *testing.T) {
	tb, _ := newTestToolbox(t)

	for _, f := range []string{"zeta.txt", "alpha.txt"} {
		if _, err := tb.WriteFile(f, "x"); err != nil {
			t.Fatal(err)
		}
	}
	for _, d := range []string{"beta/inner.txt", "omega/inner.txt"} {
		if _, err := tb.WriteFile(d, "x"); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := tb.ListDirectory(".")
	if err != nil {
		t.Fatalf("ListDirectory error = %v", err)
	}

	expected := []string{"beta/", "omega/", "alpha.txt", "zeta.txt"}
	if len(entries) != len(expected) {
		t.Fatalf("entries: got %v, want %v", entries, expected)
	}
	for i := range expected {
		if entries[i] != expected[i] {
			t.Errorf("entry %d: got %q, want %q", i, entries[i], expected[i])
		}
	}

	// Re-invocable: a second call returns the same listing.
	again, err := tb.ListDirectory(".")
	if err != nil {
		t.Fatal(err)
	}
	if len(again) != len(entries) {
		t.Errorf("second listing differs: %v vs %v", again, entries)
	}
}

func TestListDirectoryNotFound(t *testing.T) {
	tb, _ := newTestToolbox(t)

	_, err := tb.ListDirectory("missing-dir")
	assertToolError(t, err, model.ToolNotFound)
}

func TestGetFileInfo(t *testing.T) {
	tb, _ := newTestToolbox(t)

	if _, err := tb.WriteFile("sub/f.txt", "hello"); err != nil {
		t.Fatal(err)
	}

	info, err := tb.GetFileInfo("sub/f.txt")
	if err != nil {
		t.Fatalf("GetFileInfo error = %v", err)
	}
	if info.Size != 5 {
		t.Errorf("size: got %d, want 5", info.Size)
	}
	if info.IsDirectory {
		t.Error("file reported as directory")
	}
	if info.ModifiedAt.IsZero() {
		t.Error("modification time missing")
	}

	dirInfo, err := tb.GetFileInfo("sub")
	if err != nil {
		t.Fatal(err)
	}
	if !dirInfo.IsDirectory {
		t.Error("directory not reported as directory")
	}

	_, err = tb.GetFileInfo("missing")
	assertToolError(t, err, model.ToolNotFound)
}

func TestPathEscapeAllOperations(t *testing.T) {
	tb, _ := newTestToolbox(t)

	escapes := []string{
		"../outside.txt",
		"a/../../outside.txt",
		"/etc/passwd",
	}

	for _, path := range escapes {
		t.Run(path, func(t *testing.T) {
			_, err := tb.ReadFile(path)
			assertToolError(t, err, model.ToolPathEscape)

			_, err = tb.WriteFile(path, "x")
			assertToolError(t, err, model.ToolPathEscape)

			_, err = tb.EditFile(path, "a", "b")
			assertToolError(t, err, model.ToolPathEscape)

			_, err = tb.ListDirectory(path)
			assertToolError(t, err, model.ToolPathEscape)

			_, err = tb.GetFileInfo(path)
			assertToolError(t, err, model.ToolPathEscape)
		})
	}
}

func TestSymlinkLoopIsIOError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	tb, root := newTestToolbox(t)
	loop := filepath.Join(root, "loop")
	if err := os.Symlink(loop, loop); err != nil {
		t.Fatal(err)
	}

	_, err := tb.ReadFile("loop")
	assertToolError(t, err, model.ToolIOError)
}

func TestPathEscapeThroughSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}

	outside := t.TempDir()
	if err := os.WriteFile(filepath.Join(outside, "secret.txt"), []byte("secret"), 0600); err != nil {
		t.Fatal(err)
	}

	tb, root := newTestToolbox(t)
	if err := os.Symlink(outside, filepath.Join(root, "link")); err != nil {
		t.Fatal(err)
	}

	// The path stays under the root lexically but resolves outside.
	_, err := tb.ReadFile("link/secret.txt")
	assertToolError(t, err, model.ToolPathEscape)

	_, err = tb.WriteFile("link/new.txt", "x")
	assertToolError(t, err, model.ToolPathEscape)

	// A symlink to a location inside the root is fine.
	if err := os.Mkdir(filepath.Join(root, "real"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink(filepath.Join(root, "real"), filepath.Join(root, "inlink")); err != nil {
		t.Fatal(err)
	}
	if _, err := tb.WriteFile("inlink/ok.txt", "fine"); err != nil {
		t.Errorf("in-root symlink rejected: %v", err)
	}
}

func TestDispatch(t *testing.T) {
	tb, _ := newTestToolbox(t)

	out, err := tb.Dispatch(model.ToolCall{
		Name:      ToolWriteFile,
		Arguments: map[string]any{"path": "f.txt", "contents": "hello"},
	})
	if err != nil {
		t.Fatalf("Dispatch(write_file) error = %v", err)
	}
	if out == "" {
		t.Error("expected a textual result")
	}

	out, err = tb.Dispatch(model.ToolCall{
		Name:      ToolReadFile,
		Arguments: map[string]any{"path": "f.txt"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if out != "hello" {
		t.Errorf("read via dispatch: got %q", out)
	}
}

func TestDispatchUnknownTool(t *testing.T) {
	tb, _ := newTestToolbox(t)

	_, err := tb.Dispatch(model.ToolCall{Name: "delete_everything"})
	assertToolError(t, err, model.ToolUnknown)
}

func TestDispatchBadArguments(t *testing.T) {
	tb, _ := newTestToolbox(t)

	tests := []struct {
		name string
		call model.ToolCall
	}{
		{"missing path", model.ToolCall{Name: ToolReadFile, Arguments: map[string]any{}}},
		{"wrong type", model.ToolCall{Name: ToolReadFile, Arguments: map[string]any{"path": 42}}},
		{"missing contents", model.ToolCall{Name: ToolWriteFile, Arguments: map[string]any{"path": "f.txt"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tb.Dispatch(tt.call)
			assertToolError(t, err, model.ToolBadArguments)
		})
	}
}

func TestDefinitionsCoverAllTools(t *testing.T) {
	tb, _ := newTestToolbox(t)

	defs := tb.Definitions()
	if len(defs) != 5 {
		t.Fatalf("got %d definitions, want 5", len(defs))
	}

	names := map[string]bool{}
	for _, d := range defs {
		names[d.Name] = true
	}
	for _, want := range []string{ToolReadFile, ToolWriteFile, ToolEditFile, ToolListDirectory, ToolGetFileInfo} {
		if !names[want] {
			t.Errorf("missing definition for %s", want)
		}
	}
}
