// Package toolbox implements the file-system tools the model can call
// during an agent run: read_file, write_file, edit_file, list_directory
// and get_file_info.
//
// Every operation is scoped to the working directory given at
// construction. Paths are resolved (symlinks included) before a
// containment check; anything that escapes the working directory fails
// with a path_escape tool error, no exceptions. This is the one
// security-relevant invariant of the toolset.
//
// A single agent run is single-threaded, so no locking is done here.
// Concurrent invocations sharing a working directory are not coordinated;
// callers that spawn multiple runs against the same directory get no
// write-ordering guarantees.
package toolbox

import (
	"fmt"
	"strings"

	mcptypes "github.com/mark3labs/mcp-go/mcp"

	"nanoagent/model"
)

// Tool names exposed to the model.
const (
	ToolReadFile      = "read_file"
	ToolWriteFile     = "write_file"
	ToolEditFile      = "edit_file"
	ToolListDirectory = "list_directory"
	ToolGetFileInfo   = "get_file_info"
)

// Toolbox exposes the five file tools scoped to one working directory.
type Toolbox struct {
	root string // absolute, symlink-resolved working directory
}

// New creates a Toolbox rooted at workingDir. The directory must exist;
// it is resolved to an absolute, symlink-free path so later containment
// checks compare canonical forms.
func New(workingDir string) (*Toolbox, error) {
	root, err := canonicalRoot(workingDir)
	if err != nil {
		return nil, fmt.Errorf("invalid working directory %q: %w", workingDir, err)
	}
	return &Toolbox{root: root}, nil
}

// Root returns the canonical working directory.
func (t *Toolbox) Root() string {
	return t.root
}

// Definitions returns the MCP tool definitions for all five tools, in
// registration order. These are converted to each provider's native tool
// format by the provider layer.
func (t *Toolbox) Definitions() []mcptypes.Tool {
	return []mcptypes.Tool{
		mcptypes.NewTool(ToolReadFile,
			mcptypes.WithDescription("Read the contents of a file. The path is relative to the working directory."),
			mcptypes.WithString("path", mcptypes.Required(), mcptypes.Description("File path to read")),
		),
		mcptypes.NewTool(ToolWriteFile,
			mcptypes.WithDescription("Create or overwrite a file with the given contents. Parent directories are created as needed."),
			mcptypes.WithString("path", mcptypes.Required(), mcptypes.Description("File path to write")),
			mcptypes.WithString("contents", mcptypes.Required(), mcptypes.Description("Full file contents to write")),
		),
		mcptypes.NewTool(ToolEditFile,
			mcptypes.WithDescription("Replace an exact text match in a file. The old text must occur exactly once; use a longer snippet to disambiguate."),
			mcptypes.WithString("path", mcptypes.Required(), mcptypes.Description("File path to edit")),
			mcptypes.WithString("old_text", mcptypes.Required(), mcptypes.Description("Exact text to replace (must be unique in the file)")),
			mcptypes.WithString("new_text", mcptypes.Required(), mcptypes.Description("Replacement text")),
		),
		mcptypes.NewTool(ToolListDirectory,
			mcptypes.WithDescription("List directory entries, directories first, then files, both alphabetically. Directories carry a trailing slash."),
			mcptypes.WithString("path", mcptypes.Description("Directory path to list (defaults to the working directory)")),
		),
		mcptypes.NewTool(ToolGetFileInfo,
			mcptypes.WithDescription("Get size, modification time and type of a file or directory."),
			mcptypes.WithString("path", mcptypes.Required(), mcptypes.Description("Path to inspect")),
		),
	}
}

// Dispatch validates and executes one tool call, returning the textual
// result fed back to the model. Failures are *model.ToolError; the agent
// loop reports them to the model instead of aborting the run.
func (t *Toolbox) Dispatch(call model.ToolCall) (string, error) {
	switch call.Name {
	case ToolReadFile:
		path, err := stringArg(call, "path")
		if err != nil {
			return "", err
		}
		return t.ReadFile(path)

	case ToolWriteFile:
		path, err := stringArg(call, "path")
		if err != nil {
			return "", err
		}
		contents, err := stringArg(call, "contents")
		if err != nil {
			return "", err
		}
		n, err := t.WriteFile(path, contents)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Wrote %d bytes to %s", n, path), nil

	case ToolEditFile:
		path, err := stringArg(call, "path")
		if err != nil {
			return "", err
		}
		oldText, err := stringArg(call, "old_text")
		if err != nil {
			return "", err
		}
		newText, err := stringArg(call, "new_text")
		if err != nil {
			return "", err
		}
		if _, err := t.EditFile(path, oldText, newText); err != nil {
			return "", err
		}
		return fmt.Sprintf("Replaced 1 occurrence in %s", path), nil

	case ToolListDirectory:
		path := optionalStringArg(call, "path", ".")
		entries, err := t.ListDirectory(path)
		if err != nil {
			return "", err
		}
		if len(entries) == 0 {
			return "(empty directory)", nil
		}
		return strings.Join(entries, "\n"), nil

	case ToolGetFileInfo:
		path, err := stringArg(call, "path")
		if err != nil {
			return "", err
		}
		info, err := t.GetFileInfo(path)
		if err != nil {
			return "", err
		}
		return info.String(), nil

	default:
		return "", &model.ToolError{
			Kind: model.ToolUnknown,
			Tool: call.Name,
			Msg:  fmt.Sprintf("not one of the registered tools: %s", call.Name),
		}
	}
}

func stringArg(call model.ToolCall, key string) (string, error) {
	raw, ok := call.Arguments[key]
	if !ok {
		return "", &model.ToolError{
			Kind: model.ToolBadArguments,
			Tool: call.Name,
			Msg:  fmt.Sprintf("missing required argument %q", key),
		}
	}
	s, ok := raw.(string)
	if !ok {
		return "", &model.ToolError{
			Kind: model.ToolBadArguments,
			Tool: call.Name,
			Msg:  fmt.Sprintf("argument %q must be a string, got %T", key, raw),
		}
	}
	return s, nil
}

func optionalStringArg(call model.ToolCall, key, fallback string) string {
	if raw, ok := call.Arguments[key]; ok {
		if s, ok := raw.(string); ok && s != "" {
			return s
		}
	}
	return fallback
}
