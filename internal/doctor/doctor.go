package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/container-use/container-use-mcp/internal/branding"
	"github.com/container-use/container-use-mcp/internal/host"
	"github.com/container-use/container-use-mcp/internal/platform"
	"github.com/container-use/container-use-mcp/internal/settings"
)

// CommandBuilder is satisfied by *extension.Extension.
type CommandBuilder interface {
	ContextServerCommand(ctx context.Context, id host.ContextServerID, project host.Project) (*host.Command, error)
}

// settingsFiler is implemented by projects backed by files on disk.
type settingsFiler interface {
	SettingsFiles() []string
}

// Doctor holds what the checks need.
type Doctor struct {
	Extension CommandBuilder
	Project   host.Project
	Runner    host.ProcessRunner
}

// Result counts check outcomes.
type Result struct {
	Problems int
	Warnings int
}

// Run executes every check and writes the report to w.
func (d *Doctor) Run(ctx context.Context, w io.Writer) Result {
	var res Result

	d.CheckSettings(w, &res)
	fmt.Fprintln(w)

	cmd := d.CheckBinary(ctx, w, &res)
	if cmd != nil {
		fmt.Fprintln(w)
		d.CheckVersion(ctx, w, cmd.Command, &res)
	}

	fmt.Fprintln(w)
	switch {
	case res.Problems > 0:
		fmt.Fprintf(w, "%d problem(s), %d warning(s).\n", res.Problems, res.Warnings)
	case res.Warnings > 0:
		fmt.Fprintf(w, "No problems, %d warning(s).\n", res.Warnings)
	default:
		fmt.Fprintln(w, "All checks passed.")
	}
	return res
}

// CheckSettings reports where settings come from and whether the
// extension's settings block matches the schema.
func (d *Doctor) CheckSettings(w io.Writer, res *Result) {
	fmt.Fprintln(w, "Settings check:")

	if f, ok := d.Project.(settingsFiler); ok {
		for _, path := range f.SettingsFiles() {
			if _, err := os.Stat(path); err == nil {
				fmt.Fprintf(w, "  [ OK ] %s\n", path)
			} else {
				fmt.Fprintf(w, "  [ -- ] %s (not present)\n", path)
			}
		}
	}

	id := branding.ExtensionID()
	cs, err := d.Project.ContextServerSettings(id)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		res.Problems++
		return
	}
	if cs == nil || cs.Settings == nil {
		fmt.Fprintf(w, "  [ OK ] No settings for %s; %s will be looked up in PATH\n", id, branding.BinaryName())
		return
	}

	if cs.Command != nil {
		fmt.Fprintf(w, "  [WARN] A custom command is configured (%s); the extension's command is not used\n", cs.Command)
		res.Warnings++
	}

	result, err := settings.Validate(cs.Settings)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		res.Problems++
		return
	}
	if !result.Valid {
		fmt.Fprintf(w, "  [WARN] Settings for %s do not match the schema and will be ignored:\n", id)
		for _, issue := range result.Issues {
			fmt.Fprintf(w, "         %s\n", issue)
		}
		res.Warnings++
		return
	}

	s, err := settings.Parse(cs.Settings)
	if err != nil {
		fmt.Fprintf(w, "  [WARN] %v\n", err)
		res.Warnings++
		return
	}
	if path, ok := s.Path(); ok {
		fmt.Fprintf(w, "  [ OK ] cu_path = %s\n", path)
	} else {
		fmt.Fprintln(w, "  [ OK ] Settings valid, no cu_path override")
	}
}

// CheckBinary resolves the launch command through the extension.
func (d *Doctor) CheckBinary(ctx context.Context, w io.Writer, res *Result) *host.Command {
	fmt.Fprintln(w, "Binary check:")

	cmd, err := d.Extension.ContextServerCommand(ctx, host.ContextServerID(branding.ExtensionID()), d.Project)
	if err != nil {
		fmt.Fprintf(w, "  [MISS] %v\n", err)
		fmt.Fprintf(w, "         Run '%s configuration --instructions' for installation steps\n", branding.CLIName())
		res.Problems++
		return nil
	}

	fmt.Fprintf(w, "  [ OK ] %s found at %s\n", branding.BinaryName(), cmd.Command)
	if !platform.IsExecutable(cmd.Command) {
		fmt.Fprintf(w, "  [WARN] %s is not an executable file\n", cmd.Command)
		res.Warnings++
	}
	fmt.Fprintf(w, "  [ OK ] Launch command: %s\n", cmd)
	return cmd
}

var versionPattern = regexp.MustCompile(`v?\d+\.\d+\.\d+(?:-[0-9A-Za-z.-]+)?(?:\+[0-9A-Za-z.-]+)?`)

// CheckVersion runs "<binary> version" and reports the semantic version it prints.
func (d *Doctor) CheckVersion(ctx context.Context, w io.Writer, binary string, res *Result) {
	fmt.Fprintln(w, "Version check:")

	out, err := d.Runner.Output(ctx, binary, "version")
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		res.Problems++
		return
	}
	if out.ExitCode != 0 {
		fmt.Fprintf(w, "  [WARN] %s version exited with status %d\n", branding.BinaryName(), out.ExitCode)
		res.Warnings++
		return
	}

	v, err := ParseVersion(string(out.Stdout))
	if err != nil {
		fmt.Fprintf(w, "  [WARN] Could not determine %s version: %v\n", branding.BinaryName(), err)
		res.Warnings++
		return
	}
	fmt.Fprintf(w, "  [ OK ] %s %s\n", branding.BinaryName(), v)
}

// ParseVersion extracts the first semantic version from command output.
func ParseVersion(output string) (*semver.Version, error) {
	match := versionPattern.FindString(output)
	if match == "" {
		return nil, fmt.Errorf("no version in output %q", strings.TrimSpace(output))
	}
	v, err := semver.NewVersion(strings.TrimPrefix(match, "v"))
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", match, err)
	}
	return v, nil
}
