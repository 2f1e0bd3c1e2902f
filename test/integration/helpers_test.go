//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/container-use/container-use-mcp/internal/platform"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	BinDir     string // First entry on PATH
	WhichDir   string // Directory holding the lookup tool, second on PATH
	ConfigHome string // Stand-in for the user's config directory
	ProjectDir string // A mock worktree
}

// setupTestEnv creates isolated temp directories and narrows PATH so
// discovery only sees BinDir and the lookup tool's own directory.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("integration tests use shell scripts as fake binaries")
	}

	env := &testEnv{
		BinDir:     t.TempDir(),
		ConfigHome: t.TempDir(),
		ProjectDir: t.TempDir(),
	}

	// Keep `which` reachable while hiding any real cu.
	which, err := lookWhich()
	if err != nil {
		t.Skip("which not available, skipping")
	}
	env.WhichDir = filepath.Dir(which)
	t.Setenv("PATH", env.BinDir+string(os.PathListSeparator)+env.WhichDir)

	return env
}

func lookWhich() (string, error) {
	for _, dir := range []string{"/usr/bin", "/bin", "/usr/local/bin"} {
		p := filepath.Join(dir, "which")
		if platform.IsExecutable(p) {
			return p, nil
		}
	}
	return "", os.ErrNotExist
}

// writeBinary installs an executable shell script named name in dir.
func writeBinary(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	writeFile(t, path, "#!/bin/sh\n"+script+"\n")
	if err := platform.Chmod(path, 0o755); err != nil {
		t.Fatalf("chmod %s: %v", path, err)
	}
	return path
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// userSettings returns the sandboxed user-level settings path.
func (e *testEnv) userSettings() string {
	return filepath.Join(e.ConfigHome, "zed", "settings.json")
}

// writeProjectSettings writes <project>/.zed/settings.json.
func writeProjectSettings(t *testing.T, projectDir, content string) {
	t.Helper()
	writeFile(t, filepath.Join(projectDir, ".zed", "settings.json"), content)
}
