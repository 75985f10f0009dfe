package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func init() {
	color.NoColor = true
}

func writeInterfaceFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	goodMsg := writeInterfaceFile(t, dir, "Temperature.msg", "float64 reading\nuint8 SCALE_CELSIUS=0\n")
	goodSrv := writeInterfaceFile(t, dir, "Reset.srv", "bool hard\n---\nbool ok\n")
	badMsg := writeInterfaceFile(t, dir, "Bad.msg", "uint8 value 300\n")

	t.Run("All Valid", func(t *testing.T) {
		output, err := executeCommand(t, "validate", goodMsg, goodSrv)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(output, "OK ") || !strings.Contains(output, "all valid") {
			t.Errorf("unexpected output:\n%s", output)
		}
	})

	t.Run("Failure Sets Exit Code", func(t *testing.T) {
		output, err := executeCommand(t, "validate", goodMsg, badMsg)
		var exitErr *ExitError
		if !errors.As(err, &exitErr) {
			t.Fatalf("expected ExitError, got %v", err)
		}
		if exitErr.Code != 1 {
			t.Errorf("expected exit code 1, got %d", exitErr.Code)
		}
		if !strings.Contains(output, "FAIL "+badMsg) {
			t.Errorf("failing file should be reported:\n%s", output)
		}
	})

	t.Run("No Files", func(t *testing.T) {
		if _, err := executeCommand(t, "validate"); err == nil {
			t.Error("expected an error when no files are given")
		}
	})
}
