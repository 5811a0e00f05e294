// ABOUTME: Tests for the topics command over real temp files
// ABOUTME: Exercises segmentation end to end through the CLI surface

package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func isolateDataDir(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("OPENAI_API_KEY", "")
	xdg.Reload()
}

func TestTopicsCmd_DetectsChapters(t *testing.T) {
	isolateDataDir(t)
	path := writeTempFile(t, "biology.txt",
		"Chapter 1: Cells\nCells are the basic unit of life.\nChapter 2: Atoms\nAtoms form molecules.")

	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"topics", path})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	outputStr := output.String()
	for _, topic := range []string{"Chapter 1: Cells", "Chapter 2: Atoms"} {
		if !strings.Contains(outputStr, topic) {
			t.Errorf("Output should contain topic %q, got:\n%s", topic, outputStr)
		}
	}
}

func TestTopicsCmd_FilenameFallback(t *testing.T) {
	isolateDataDir(t)
	path := writeTempFile(t, "plain.txt",
		"Plain prose without any chapter structure at all, just sentences.")

	cmd := NewRootCmd()
	var output bytes.Buffer
	cmd.SetOut(&output)
	cmd.SetErr(&output)
	cmd.SetArgs([]string{"topics", path})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(output.String(), "plain.txt") {
		t.Errorf("Output should fall back to the filename topic, got:\n%s", output.String())
	}
}
