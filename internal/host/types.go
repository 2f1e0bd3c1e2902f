package host

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ContextServerID identifies a context server instance registered by an extension.
type ContextServerID string

// EnvVar is a single environment variable passed to a launched command.
type EnvVar struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Command describes how the host should start a context server process.
// Env lists variables added on top of the host's own environment.
type Command struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
	Env     []EnvVar `json:"env"`
}

// String renders the command line, e.g. "/usr/local/bin/cu stdio".
func (c Command) String() string {
	if len(c.Args) == 0 {
		return c.Command
	}
	return fmt.Sprintf("%s %s", c.Command, strings.Join(c.Args, " "))
}

// Environ renders Env as KEY=VALUE pairs.
func (c Command) Environ() []string {
	env := make([]string, 0, len(c.Env))
	for _, e := range c.Env {
		env = append(env, e.Name+"="+e.Value)
	}
	return env
}

// ContextServerConfiguration is the metadata the host shows when a user
// configures a context server.
type ContextServerConfiguration struct {
	InstallationInstructions string `json:"installation_instructions"`
	DefaultSettings          string `json:"default_settings"`
	SettingsSchema           string `json:"settings_schema"`
}

// ContextServerSettings is the per-server block of the host's settings
// (context_servers.<id>). Settings is schema-less at this boundary.
type ContextServerSettings struct {
	Command  *Command        `json:"command,omitempty"`
	Settings json.RawMessage `json:"settings,omitempty"`
}

// Project gives an extension read access to host settings for a worktree.
type Project interface {
	// ContextServerSettings returns the settings block registered under id,
	// or nil when the user configured nothing for it.
	ContextServerSettings(id string) (*ContextServerSettings, error)
}
