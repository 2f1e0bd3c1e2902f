package configuration

import (
	_ "embed"
	"fmt"

	"github.com/tailscale/hujson"
)

//go:embed configuration/installation_instructions.md
var installationInstructions string

//go:embed configuration/default_settings.jsonc
var defaultSettings string

// InstallationInstructions returns the embedded installation guide verbatim.
func InstallationInstructions() string { return installationInstructions }

// DefaultSettings returns the embedded default settings template verbatim.
func DefaultSettings() string { return defaultSettings }

// Standardize converts JSONC (comments, trailing commas) to standard JSON.
func Standardize(data []byte) ([]byte, error) {
	out, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("standardizing JSONC: %w", err)
	}
	return out, nil
}
