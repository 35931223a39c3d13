package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"nanoagent/model"
	"nanoagent/toolbox"
)

var testToolsKeepFlag bool

var testToolsCmd = &cobra.Command{
	Use:   "test-tools",
	Short: "Exercise the five file tools against a scratch directory",
	Long: `Run each file tool (write_file, read_file, edit_file, list_directory,
get_file_info) once against a temporary directory, plus an escape
attempt that must be rejected. Useful to verify an installation without
spending tokens.`,
	RunE: runTestTools,
}

func init() {
	testToolsCmd.Flags().BoolVar(&testToolsKeepFlag, "keep", false, "Keep the scratch directory instead of removing it")
}

func runTestTools(cmd *cobra.Command, args []string) error {
	dir, err := os.MkdirTemp("", "nano-agent-tools-*")
	if err != nil {
		return fmt.Errorf("cannot create scratch directory: %w", err)
	}
	if testToolsKeepFlag {
		fmt.Printf("scratch directory: %s\n", dir)
	} else {
		defer os.RemoveAll(dir)
	}

	tools, err := toolbox.New(dir)
	if err != nil {
		return err
	}

	failures := 0
	check := func(name string, err error) {
		if err != nil {
			failures++
			fmt.Printf("FAIL  %-14s %v\n", name, err)
			return
		}
		fmt.Printf("ok    %s\n", name)
	}

	_, err = tools.WriteFile("sample/sample.txt", "alpha beta gamma\n")
	check(toolbox.ToolWriteFile, err)

	contents, err := tools.ReadFile("sample/sample.txt")
	if err == nil && contents != "alpha beta gamma\n" {
		err = fmt.Errorf("read back %q, want the written contents", contents)
	}
	check(toolbox.ToolReadFile, err)

	_, err = tools.EditFile("sample/sample.txt", "beta", "BETA")
	check(toolbox.ToolEditFile, err)

	entries, err := tools.ListDirectory(".")
	if err == nil && len(entries) == 0 {
		err = fmt.Errorf("expected at least one entry")
	}
	check(toolbox.ToolListDirectory, err)

	info, err := tools.GetFileInfo("sample/sample.txt")
	if err == nil && info.IsDirectory {
		err = fmt.Errorf("sample.txt reported as a directory")
	}
	check(toolbox.ToolGetFileInfo, err)

	// The containment check must reject an escape attempt.
	_, escErr := tools.ReadFile("../outside.txt")
	var toolErr *model.ToolError
	if errors.As(escErr, &toolErr) && toolErr.Kind == model.ToolPathEscape {
		fmt.Println("ok    path containment")
	} else {
		failures++
		fmt.Printf("FAIL  path containment: got %v, want a path_escape error\n", escErr)
	}

	if failures > 0 {
		cmd.SilenceUsage = true
		return fmt.Errorf("%d tool check(s) failed", failures)
	}
	fmt.Println("all tools ok")
	return nil
}
