// Package branding provides compile-time identity values for the extension.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed. Hard defaults below apply when a key is missing.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	ExtensionID   string `yaml:"extension_id"`
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	BinaryName    string `yaml:"binary_name"`
	LaunchArg     string `yaml:"launch_arg"`
	SettingsTitle string `yaml:"settings_title"`
	EditorDir     string `yaml:"editor_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			ExtensionID:   "container-use-mcp",
			CLIName:       "container-use-mcp",
			DisplayName:   "Container Use",
			Description:   "Context server adapter for the container-use (cu) MCP server",
			BinaryName:    "cu",
			LaunchArg:     "stdio",
			SettingsTitle: "ContainerUseMcpSettings",
			EditorDir:     "zed",
			EnvPrefix:     "CONTAINER_USE_MCP",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// ExtensionID returns the identifier settings are scoped to (e.g., "container-use-mcp").
func ExtensionID() string { load(); return defaults.ExtensionID }

// CLIName returns the root command name of the development host.
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// BinaryName returns the name of the external executable (e.g., "cu").
func BinaryName() string { load(); return defaults.BinaryName }

// LaunchArg returns the single argument the binary is launched with.
func LaunchArg() string { load(); return defaults.LaunchArg }

// SettingsTitle returns the title of the generated settings schema.
func SettingsTitle() string { load(); return defaults.SettingsTitle }

// EditorDir returns the editor's settings directory name. The worktree copy
// is the dot-prefixed form (".zed"), the user copy lives under XDG config.
func EditorDir() string { load(); return defaults.EditorDir }

// EnvPrefix returns the environment variable prefix.
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("debug") → "CONTAINER_USE_MCP_DEBUG".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
