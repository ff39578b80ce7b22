//go:build basic || database

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	// sharedTrendplotPath holds the path to a shared trendplot binary built once for all tests.
	sharedTrendplotPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getTrendplotBinary returns the path to the trendplot binary, building it once if needed.
func getTrendplotBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "trendplot-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		trendplotPath := filepath.Join(tempDir, "trendplot")
		buildCmd := exec.Command("go", "build", "-o", trendplotPath, ".")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build trendplot: %v", err))
		}

		sharedTrendplotPath = trendplotPath
	})

	return sharedTrendplotPath
}

// runTrendplotCommand runs the binary in dir and returns its combined output.
func runTrendplotCommand(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(getTrendplotBinary(), args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("Command failed: %s\nOutput: %s", cmd.String(), string(output))
	}
	return string(output), err
}

const suiteFixture = `{
  "Mon, 01 Jan 2024 10:00:00 +0000": {"total": 500, "pass": 400, "fail": 80, "skip": 15, "error": 5},
  "Tue, 02 Jan 2024 10:00:00 +0000": {"total": 502, "pass": 410, "fail": 72, "skip": 15, "error": 5},
  "2024-01-03T10:00:00Z": {"total": 502, "pass": 415, "fail": 68, "skip": 14, "error": 5},
  "not a date": {"total": 1, "pass": 1},
  "Thu, 04 Jan 2024 10:00:00 +0000": {"total": 505, "pass": 420, "fail": 66, "skip": 14, "error": 5}
}`

const sizeFixture = `{
  "Mon, 01 Jan 2024 10:00:00 +0000": {"size": 40000, "multisize": 9000, "sizes": {"ls": 1200, "cp": 1100, "rm": null}},
  "Tue, 02 Jan 2024 10:00:00 +0000": {"size": 40100, "multisize": 9050, "sizes": {"ls": 1210, "cp": 1105, "rm": null}},
  "Wed, 03 Jan 2024 10:00:00 +0000": {"size": 40250, "multisize": 9100, "sizes": {"ls": 1215}}
}`

// writeFixture writes content to name inside dir and returns the path.
func writeFixture(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}
