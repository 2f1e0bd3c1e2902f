package extension

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/container-use/container-use-mcp/internal/branding"
	"github.com/container-use/container-use-mcp/internal/configuration"
	"github.com/container-use/container-use-mcp/internal/host"
	"github.com/container-use/container-use-mcp/internal/logging"
	"github.com/container-use/container-use-mcp/internal/platform"
	"github.com/container-use/container-use-mcp/internal/settings"
)

var errEmptyLookup = errors.New("follow the installation instructions")

// Extension adapts the cu binary to the host's context server contract.
//
// The host drives one Extension and calls it sequentially; it is not safe
// for concurrent use.
type Extension struct {
	runner           host.ProcessRunner
	logger           *logging.Logger
	cachedBinaryPath string
	schema           func() (string, error)
}

// Option configures an Extension.
type Option func(*Extension)

// WithRunner sets the process facility used for the PATH lookup.
func WithRunner(r host.ProcessRunner) Option {
	return func(e *Extension) { e.runner = r }
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(e *Extension) { e.logger = l }
}

// WithBinaryPath seeds the cached binary path.
func WithBinaryPath(path string) Option {
	return func(e *Extension) { e.cachedBinaryPath = path }
}

// New creates an Extension with no cached binary path.
func New(opts ...Option) *Extension {
	e := &Extension{
		runner: host.ExecRunner{},
		schema: settings.Schema,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = logging.Default()
	}
	return e
}

// CachedBinaryPath returns the last known binary path, or "" if none.
func (e *Extension) CachedBinaryPath() string {
	return e.cachedBinaryPath
}

// ContextServerCommand returns the command that starts the context server.
// A cu_path in the project's settings replaces the cached path before
// resolution. Malformed settings are ignored.
func (e *Extension) ContextServerCommand(ctx context.Context, id host.ContextServerID, project host.Project) (*host.Command, error) {
	log := e.logger.With("server", string(id))

	cs, err := project.ContextServerSettings(branding.ExtensionID())
	if err != nil {
		return nil, fmt.Errorf("reading context server settings: %w", err)
	}

	if cs != nil && cs.Settings != nil {
		s, err := settings.Parse(cs.Settings)
		if err != nil {
			log.Debug("ignoring settings", "error", &Error{Kind: KindSettings, Err: err})
		} else if path, ok := s.Path(); ok {
			log.Debug("using configured binary path", "path", path)
			e.cachedBinaryPath = path
		}
	}

	path, err := e.binaryPath(ctx)
	if err != nil {
		return nil, err
	}

	return &host.Command{
		Command: path,
		Args:    []string{branding.LaunchArg()},
		Env:     []host.EnvVar{},
	}, nil
}

// ContextServerConfiguration returns the installation instructions, default
// settings, and settings schema for the host's configuration UI.
func (e *Extension) ContextServerConfiguration(_ context.Context, _ host.ContextServerID, _ host.Project) (*host.ContextServerConfiguration, error) {
	schema, err := e.schema()
	if err != nil {
		return nil, &Error{Kind: KindSchema, Err: err}
	}

	return &host.ContextServerConfiguration{
		InstallationInstructions: configuration.InstallationInstructions(),
		DefaultSettings:          configuration.DefaultSettings(),
		SettingsSchema:           schema,
	}, nil
}

// binaryPath returns the cached path if it is still a regular file, and
// otherwise asks the system where the binary is.
func (e *Extension) binaryPath(ctx context.Context) (string, error) {
	if e.cachedBinaryPath != "" && platform.IsRegularFile(e.cachedBinaryPath) {
		return e.cachedBinaryPath, nil
	}

	name, args := platform.LookupCommand(branding.BinaryName())
	out, err := e.runner.Output(ctx, name, args...)
	if err != nil {
		return "", discoveryError(ErrLookupFailed, err)
	}

	if !utf8.Valid(out.Stdout) {
		return "", discoveryError(ErrLookupOutput, errors.New("lookup output is not valid UTF-8"))
	}

	path := platform.FirstLine(string(out.Stdout))
	if path == "" {
		return "", discoveryError(ErrNotFound, errEmptyLookup)
	}

	e.logger.Debug("discovered binary", "path", path)
	e.cachedBinaryPath = path
	return path, nil
}
