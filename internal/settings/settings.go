package settings

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/container-use/container-use-mcp/internal/branding"
)

const cuPathField = "cu_path"

// Settings is the shape of context_servers.<id>.settings.
type Settings struct {
	CUPath *string `json:"cu_path,omitempty" jsonschema_description:"Path to the cu binary (optional - will be looked up in PATH if not provided)"`
}

// Path returns the configured binary path and whether one was set.
func (s *Settings) Path() (string, bool) {
	if s == nil || s.CUPath == nil {
		return "", false
	}
	return *s.CUPath, true
}

// Parse decodes a raw settings payload. An empty or null payload yields
// empty settings. Field names match exactly. Unknown fields are ignored;
// fields of the wrong type and non-object payloads are errors.
func Parse(raw json.RawMessage) (*Settings, error) {
	var s Settings
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return &s, nil
	}
	if trimmed[0] != '{' {
		return nil, fmt.Errorf("parsing settings: expected a JSON object")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	if v, ok := fields[cuPathField]; ok {
		if err := json.Unmarshal(v, &s.CUPath); err != nil {
			return nil, fmt.Errorf("parsing settings: %s: %w", cuPathField, err)
		}
	}
	return &s, nil
}

var reflector = &jsonschema.Reflector{
	Anonymous:                 true,
	DoNotReference:            true,
	AllowAdditionalProperties: true,
}

// Schema returns the JSON Schema for Settings, generated from the struct
// definition, serialized as compact JSON.
func Schema() (string, error) {
	s := reflector.Reflect(&Settings{})
	s.Title = branding.SettingsTitle()

	data, err := json.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("serializing settings schema: %w", err)
	}
	return string(data), nil
}
