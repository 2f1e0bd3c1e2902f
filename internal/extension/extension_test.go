package extension

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/container-use/container-use-mcp/internal/host"
	"github.com/container-use/container-use-mcp/internal/logging"
	"github.com/container-use/container-use-mcp/internal/platform"
)

const serverID host.ContextServerID = "container-use-mcp"

// fakeProject serves a fixed settings block for one extension id.
type fakeProject struct {
	settings map[string]*host.ContextServerSettings
	err      error
}

func (p *fakeProject) ContextServerSettings(id string) (*host.ContextServerSettings, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.settings[id], nil
}

func projectWith(raw string) *fakeProject {
	return &fakeProject{settings: map[string]*host.ContextServerSettings{
		"container-use-mcp": {Settings: json.RawMessage(raw)},
	}}
}

// fakeRunner records lookups and returns canned output.
type fakeRunner struct {
	calls  int
	name   string
	args   []string
	stdout []byte
	err    error
}

func (r *fakeRunner) Output(_ context.Context, name string, args ...string) (*host.Output, error) {
	r.calls++
	r.name = name
	r.args = args
	if r.err != nil {
		return nil, r.err
	}
	return &host.Output{Stdout: r.stdout}, nil
}

func newTestExtension(t *testing.T, r host.ProcessRunner, opts ...Option) *Extension {
	t.Helper()
	l, _ := logging.NewTestLogger()
	return New(append([]Option{WithRunner(r), WithLogger(l)}, opts...)...)
}

// writeBinary creates an executable file named cu in a temp dir.
func writeBinary(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cu")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := platform.Chmod(path, 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func assertLaunchShape(t *testing.T, cmd *host.Command) {
	t.Helper()
	if len(cmd.Args) != 1 || cmd.Args[0] != "stdio" {
		t.Errorf("args = %v, want [stdio]", cmd.Args)
	}
	if len(cmd.Env) != 0 {
		t.Errorf("env = %v, want empty", cmd.Env)
	}
}

func TestBinaryPath_CachedFileSkipsLookup(t *testing.T) {
	bin := writeBinary(t)
	r := &fakeRunner{stdout: []byte("/elsewhere/cu\n")}
	ext := newTestExtension(t, r, WithBinaryPath(bin))

	got, err := ext.binaryPath(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != bin {
		t.Errorf("path = %q, want %q", got, bin)
	}
	if r.calls != 0 {
		t.Errorf("lookup ran %d times, want 0", r.calls)
	}
}

func TestBinaryPath_DanglingCacheFallsThrough(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "gone", "cu")
	r := &fakeRunner{stdout: []byte("/usr/local/bin/cu\n")}
	ext := newTestExtension(t, r, WithBinaryPath(missing))

	got, err := ext.binaryPath(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/usr/local/bin/cu" {
		t.Errorf("path = %q, want /usr/local/bin/cu", got)
	}
	if r.calls != 1 {
		t.Errorf("lookup ran %d times, want 1", r.calls)
	}
	if ext.CachedBinaryPath() != "/usr/local/bin/cu" {
		t.Errorf("cache = %q, want discovered path", ext.CachedBinaryPath())
	}
}

func TestBinaryPath_DirectoryIsNotAFile(t *testing.T) {
	r := &fakeRunner{stdout: []byte("/usr/bin/cu")}
	ext := newTestExtension(t, r, WithBinaryPath(t.TempDir()))

	if _, err := ext.binaryPath(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.calls != 1 {
		t.Errorf("cached directory should trigger lookup, calls = %d", r.calls)
	}
}

func TestBinaryPath_LookupInvocation(t *testing.T) {
	r := &fakeRunner{stdout: []byte("  /opt/cu/bin/cu \n")}
	ext := newTestExtension(t, r)

	got, err := ext.binaryPath(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "/opt/cu/bin/cu" {
		t.Errorf("path = %q, want trimmed output", got)
	}
	wantName, wantArgs := platform.LookupCommand("cu")
	if r.name != wantName || len(r.args) != 1 || r.args[0] != wantArgs[0] {
		t.Errorf("lookup = %s %v, want %s %v", r.name, r.args, wantName, wantArgs)
	}
}

func TestBinaryPath_DiscoveryErrors(t *testing.T) {
	tests := []struct {
		name     string
		runner   *fakeRunner
		sentinel error
		prefix   string
	}{
		{
			name:     "spawn failure",
			runner:   &fakeRunner{err: errors.New("exec: \"which\": executable file not found in $PATH")},
			sentinel: ErrLookupFailed,
			prefix:   "finding cu in PATH: ",
		},
		{
			name:     "decode failure",
			runner:   &fakeRunner{stdout: []byte{0xff, 0xfe, '/', 'c', 'u'}},
			sentinel: ErrLookupOutput,
			prefix:   "parsing cu path: ",
		},
		{
			name:     "not found",
			runner:   &fakeRunner{stdout: []byte(" \n\t")},
			sentinel: ErrNotFound,
			prefix:   "failed to find cu path: ",
		},
	}

	messages := make(map[string]string)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext := newTestExtension(t, tt.runner)
			_, err := ext.binaryPath(context.Background())
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !IsKind(err, KindDiscovery) {
				t.Errorf("error kind is not discovery: %v", err)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Errorf("errors.Is(%v, %v) = false", err, tt.sentinel)
			}
			if !strings.HasPrefix(err.Error(), tt.prefix) {
				t.Errorf("message %q does not start with %q", err.Error(), tt.prefix)
			}
			if ext.CachedBinaryPath() != "" {
				t.Errorf("cache should stay empty, got %q", ext.CachedBinaryPath())
			}
			if tt.runner.calls != 1 {
				t.Errorf("lookup ran %d times, want exactly 1", tt.runner.calls)
			}
			messages[tt.name] = err.Error()
		})
	}

	if messages["spawn failure"] == messages["not found"] {
		t.Error("spawn and not-found messages must differ")
	}
}

func TestContextServerCommand_OverrideWinsOverCache(t *testing.T) {
	cached := writeBinary(t)
	override := writeBinary(t)
	r := &fakeRunner{stdout: []byte("/usr/bin/cu")}
	ext := newTestExtension(t, r, WithBinaryPath(cached))

	raw, _ := json.Marshal(map[string]string{"cu_path": override})
	cmd, err := ext.ContextServerCommand(context.Background(), serverID, projectWith(string(raw)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Command != override {
		t.Errorf("command = %q, want override %q", cmd.Command, override)
	}
	assertLaunchShape(t, cmd)
	if r.calls != 0 {
		t.Errorf("lookup ran %d times, want 0", r.calls)
	}
	if ext.CachedBinaryPath() != override {
		t.Errorf("cache = %q, want override", ext.CachedBinaryPath())
	}
}

func TestContextServerCommand_MissingOverrideFallsBackToLookup(t *testing.T) {
	r := &fakeRunner{stdout: []byte("/usr/bin/cu\n")}
	ext := newTestExtension(t, r)

	cmd, err := ext.ContextServerCommand(context.Background(), serverID,
		projectWith(`{"cu_path": "/does/not/exist/cu"}`))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Command != "/usr/bin/cu" {
		t.Errorf("command = %q, want discovered path", cmd.Command)
	}
	if r.calls != 1 {
		t.Errorf("lookup ran %d times, want 1", r.calls)
	}
}

func TestContextServerCommand_SettingsFallThrough(t *testing.T) {
	cached := writeBinary(t)

	projects := map[string]host.Project{
		"no block":          &fakeProject{},
		"nil settings":      &fakeProject{settings: map[string]*host.ContextServerSettings{"container-use-mcp": {}}},
		"empty object":      projectWith(`{}`),
		"wrong field type":  projectWith(`{"cu_path": 12}`),
		"not an object":     projectWith(`"cu"`),
		"malformed":         projectWith(`{"cu_path":`),
		"upper-case key":    projectWith(`{"CU_PATH": "/opt/other/cu"}`),
		"other server only": &fakeProject{settings: map[string]*host.ContextServerSettings{"other": {Settings: json.RawMessage(`{"cu_path":"/x"}`)}}},
	}

	for name, project := range projects {
		t.Run(name, func(t *testing.T) {
			r := &fakeRunner{stdout: []byte("/usr/bin/cu")}
			ext := newTestExtension(t, r, WithBinaryPath(cached))

			cmd, err := ext.ContextServerCommand(context.Background(), serverID, project)
			if err != nil {
				t.Fatalf("settings problems must not surface: %v", err)
			}
			if cmd.Command != cached {
				t.Errorf("command = %q, want cached %q", cmd.Command, cached)
			}
			assertLaunchShape(t, cmd)
			if r.calls != 0 {
				t.Errorf("lookup ran %d times, want 0", r.calls)
			}
		})
	}
}

func TestContextServerCommand_ParseFailureIsLogged(t *testing.T) {
	l, buf := logging.NewTestLogger()
	r := &fakeRunner{stdout: []byte("/usr/bin/cu")}
	ext := New(WithRunner(r), WithLogger(l))

	if _, err := ext.ContextServerCommand(context.Background(), serverID, projectWith(`[]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "ignoring settings") {
		t.Errorf("expected debug log for ignored settings, got %q", buf.String())
	}
}

func TestContextServerCommand_ProjectErrorPropagates(t *testing.T) {
	r := &fakeRunner{stdout: []byte("/usr/bin/cu")}
	ext := newTestExtension(t, r)

	_, err := ext.ContextServerCommand(context.Background(), serverID, &fakeProject{err: errors.New("settings store unavailable")})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !strings.Contains(err.Error(), "reading context server settings") {
		t.Errorf("unexpected message: %v", err)
	}
	if r.calls != 0 {
		t.Errorf("lookup should not run, calls = %d", r.calls)
	}
}

func TestContextServerCommand_DiscoveryErrorPropagates(t *testing.T) {
	r := &fakeRunner{stdout: nil}
	ext := newTestExtension(t, r)

	_, err := ext.ContextServerCommand(context.Background(), serverID, &fakeProject{})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var extErr *Error
	if !errors.As(err, &extErr) || extErr.Kind != KindDiscovery {
		t.Errorf("expected *Error of kind discovery, got %T %v", err, err)
	}
}

func TestContextServerCommand_DiscoveredPathIsReused(t *testing.T) {
	bin := writeBinary(t)
	r := &fakeRunner{stdout: []byte(bin + "\n")}
	ext := newTestExtension(t, r)

	for i := 0; i < 3; i++ {
		cmd, err := ext.ContextServerCommand(context.Background(), serverID, &fakeProject{})
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if cmd.Command != bin {
			t.Errorf("call %d: command = %q", i, cmd.Command)
		}
	}
	if r.calls != 1 {
		t.Errorf("lookup ran %d times, want 1", r.calls)
	}
}

func TestContextServerCommand_FreshDescriptorEachCall(t *testing.T) {
	bin := writeBinary(t)
	ext := newTestExtension(t, &fakeRunner{}, WithBinaryPath(bin))

	first, err := ext.ContextServerCommand(context.Background(), serverID, &fakeProject{})
	if err != nil {
		t.Fatal(err)
	}
	first.Args[0] = "mutated"

	second, err := ext.ContextServerCommand(context.Background(), serverID, &fakeProject{})
	if err != nil {
		t.Fatal(err)
	}
	assertLaunchShape(t, second)
}

func TestContextServerConfiguration(t *testing.T) {
	r := &fakeRunner{}
	ext := newTestExtension(t, r)

	cfg, err := ext.ContextServerConfiguration(context.Background(), serverID, &fakeProject{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.TrimSpace(cfg.InstallationInstructions) == "" {
		t.Error("installation instructions are empty")
	}
	if strings.TrimSpace(cfg.DefaultSettings) == "" {
		t.Error("default settings are empty")
	}

	var schema struct {
		Properties map[string]struct {
			Type string `json:"type"`
		} `json:"properties"`
		Required []string `json:"required"`
	}
	if err := json.Unmarshal([]byte(cfg.SettingsSchema), &schema); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	if len(schema.Properties) != 1 || schema.Properties["cu_path"].Type != "string" {
		t.Errorf("unexpected schema properties: %+v", schema.Properties)
	}
	if len(schema.Required) != 0 {
		t.Errorf("cu_path must be optional, required = %v", schema.Required)
	}
	if r.calls != 0 || ext.CachedBinaryPath() != "" {
		t.Error("configuration must not touch discovery state")
	}
}

func TestContextServerConfiguration_SchemaError(t *testing.T) {
	ext := newTestExtension(t, &fakeRunner{})
	ext.schema = func() (string, error) { return "", errors.New("serializing settings schema: boom") }

	_, err := ext.ContextServerConfiguration(context.Background(), serverID, &fakeProject{})
	if !IsKind(err, KindSchema) {
		t.Fatalf("expected schema error, got %v", err)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Errorf("message should carry cause: %v", err)
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		KindDiscovery: "discovery",
		KindSettings:  "settings",
		KindSchema:    "schema",
		Kind(99):      "kind(99)",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
