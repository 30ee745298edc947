package testharness

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"
)

var (
	buildOnce sync.Once
	buildPath string
	buildErr  error
)

// Harness runs the sitewiz binary against an isolated home directory.
type Harness struct {
	t          *testing.T
	Root       string
	Home       string
	BinaryPath string
	Env        []string
}

// Result is one finished invocation of the binary.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func NewHarness(t *testing.T) *Harness {
	t.Helper()

	root := t.TempDir()
	home := filepath.Join(root, "home")
	mustMkdirAll(t, home)

	bin := buildBinary(t)
	return &Harness{t: t, Root: root, Home: home, BinaryPath: bin}
}

func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		path := filepath.Join(os.TempDir(), fmt.Sprintf("sitewiz-test-%d", time.Now().UnixNano()))
		if runtime.GOOS == "windows" {
			path += ".exe"
		}
		cmd := exec.Command("go", "build", "-o", path, "./cmd/sitewiz")
		cmd.Dir = repoRootFromWD(t)
		cmd.Env = append(os.Environ(), "GOCACHE=/tmp/go-cache", "GOMODCACHE=/tmp/go-mod")
		out, err := cmd.CombinedOutput()
		if err != nil {
			buildErr = fmt.Errorf("build sitewiz: %w: %s", err, string(out))
			return
		}
		buildPath = path
	})

	if buildErr != nil {
		t.Fatal(buildErr)
	}
	return buildPath
}

func repoRootFromWD(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return wd
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			t.Fatalf("could not find go.mod from %q", wd)
		}
		wd = parent
	}
}

// Run executes the binary with stdin closed, so it never sees a terminal.
func (h *Harness) Run(args ...string) Result {
	h.t.Helper()

	cmd := exec.Command(h.BinaryPath, args...)
	cmd.Dir = h.Home
	cmd.Env = append(os.Environ(),
		"HOME="+h.Home,
		"XDG_CONFIG_HOME=",
		"SITEWIZ_NOTIFY_BACKEND=",
		"SITEWIZ_OUTPUT=",
		"SITEWIZ_ALT_SCREEN=",
		"SITEWIZ_ACCESSIBLE=",
		"SITEWIZ_VERBOSITY=",
	)
	cmd.Env = append(cmd.Env, h.Env...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}
	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
	default:
		h.t.Fatalf("run sitewiz %v: %v", args, err)
	}
	return res
}

// SettingsPath is the default settings file inside the harness home.
func (h *Harness) SettingsPath() string {
	return filepath.Join(h.Home, ".config", "sitewiz", "config.yaml")
}

func (h *Harness) MustWriteFile(path, contents string) {
	h.t.Helper()
	mustMkdirAll(h.t, filepath.Dir(path))
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		h.t.Fatalf("write file %s: %v", path, err)
	}
}

// WriteAnswers stores an answers file under the harness root and returns its
// path.
func (h *Harness) WriteAnswers(name, contents string) string {
	h.t.Helper()
	path := filepath.Join(h.Root, name)
	h.MustWriteFile(path, contents)
	return path
}

func mustMkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", path, err)
	}
}
