package project

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/container-use/container-use-mcp/internal/branding"
	"github.com/container-use/container-use-mcp/internal/configuration"
	"github.com/container-use/container-use-mcp/internal/host"
	"github.com/container-use/container-use-mcp/internal/logging"
)

const (
	settingsFile = "settings.json"
	serversKey   = "context_servers"
	keyDelimiter = "::"
	configFormat = "json"
)

// Project is a worktree on disk.
type Project struct {
	root         string
	userSettings string
}

// Option configures a Project.
type Option func(*Project)

// WithUserSettings overrides the user-level settings file. An empty path
// disables user settings.
func WithUserSettings(path string) Option {
	return func(p *Project) { p.userSettings = path }
}

// New returns a Project rooted at root.
func New(root string, opts ...Option) *Project {
	p := &Project{
		root:         root,
		userSettings: UserSettingsPath(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// UserSettingsPath returns the editor's user-level settings file
// ($XDG_CONFIG_HOME/zed/settings.json).
func UserSettingsPath() string {
	return filepath.Join(xdg.ConfigHome, branding.EditorDir(), settingsFile)
}

// Root returns the worktree root.
func (p *Project) Root() string { return p.root }

// SettingsFiles returns the candidate settings files in increasing precedence.
func (p *Project) SettingsFiles() []string {
	var files []string
	if p.userSettings != "" {
		files = append(files, p.userSettings)
	}
	return append(files, filepath.Join(p.root, "."+branding.EditorDir(), settingsFile))
}

// settingsLayers holds the merged view of the settings files alongside each
// file's own decoded document. Viper folds key case, so values handed to the
// extension are taken from the documents.
type settingsLayers struct {
	merged *viper.Viper
	docs   []map[string]interface{}
}

// load reads every existing settings file in precedence order.
func (p *Project) load() (*settingsLayers, error) {
	l := &settingsLayers{merged: viper.NewWithOptions(viper.KeyDelimiter(keyDelimiter))}
	l.merged.SetConfigType(configFormat)

	for _, path := range p.SettingsFiles() {
		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("reading settings %s: %w", path, err)
		}
		if len(bytes.TrimSpace(data)) == 0 {
			continue
		}

		std, err := configuration.Standardize(data)
		if err != nil {
			return nil, fmt.Errorf("parsing settings %s: %w", path, err)
		}
		doc, err := decodeObject(std)
		if err != nil {
			return nil, fmt.Errorf("parsing settings %s: %w", path, err)
		}
		if err := l.merged.MergeConfig(bytes.NewReader(std)); err != nil {
			return nil, fmt.Errorf("merging settings %s: %w", path, err)
		}
		l.docs = append(l.docs, doc)
		logging.Debug("loaded settings", "path", path)
	}

	return l, nil
}

// serverBlock merges the context_servers.<id> objects of every document,
// later documents winning. Keys match exactly. It returns nil when no
// document has the block.
func (l *settingsLayers) serverBlock(id string) (map[string]interface{}, error) {
	var block map[string]interface{}
	for _, doc := range l.docs {
		servers, ok := doc[serversKey].(map[string]interface{})
		if !ok {
			continue
		}
		raw, ok := servers[id]
		if !ok || raw == nil {
			continue
		}
		obj, ok := raw.(map[string]interface{})
		if !ok {
			return nil, fmt.Errorf("%s.%s must be an object, got %T", serversKey, id, raw)
		}
		if block == nil {
			block = map[string]interface{}{}
		}
		mergeObjects(block, obj)
	}
	return block, nil
}

func decodeObject(data []byte) (map[string]interface{}, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc map[string]interface{}
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// mergeObjects deep-merges src into dst. Nested objects merge; any other
// value replaces what dst holds.
func mergeObjects(dst, src map[string]interface{}) map[string]interface{} {
	for k, sv := range src {
		if sm, ok := sv.(map[string]interface{}); ok {
			dm, ok := dst[k].(map[string]interface{})
			if !ok {
				dm = map[string]interface{}{}
			}
			dst[k] = mergeObjects(dm, sm)
			continue
		}
		dst[k] = sv
	}
	return dst
}

// commandSettings is the on-disk form of a custom server command.
type commandSettings struct {
	Path string            `json:"path"`
	Args []string          `json:"args"`
	Env  map[string]string `json:"env"`
}

// ContextServerSettings implements host.Project. The server id and the keys
// inside its block are case-sensitive, as the editor reads them.
func (p *Project) ContextServerSettings(id string) (*host.ContextServerSettings, error) {
	l, err := p.load()
	if err != nil {
		return nil, err
	}
	if !l.merged.IsSet(serversKey + keyDelimiter + id) {
		return nil, nil
	}

	block, err := l.serverBlock(id)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, nil
	}

	cs := &host.ContextServerSettings{}

	if s, ok := block["settings"]; ok && s != nil {
		data, err := json.Marshal(s)
		if err != nil {
			return nil, fmt.Errorf("encoding %s.%s.settings: %w", serversKey, id, err)
		}
		cs.Settings = data
	}

	if c, ok := block["command"]; ok && c != nil {
		cmd, err := decodeCommand(c)
		if err != nil {
			return nil, fmt.Errorf("decoding %s.%s.command: %w", serversKey, id, err)
		}
		cs.Command = cmd
	}

	return cs, nil
}

func decodeCommand(v interface{}) (*host.Command, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var cs commandSettings
	if err := json.Unmarshal(data, &cs); err != nil {
		return nil, err
	}

	cmd := &host.Command{Command: cs.Path, Args: cs.Args, Env: []host.EnvVar{}}
	names := make([]string, 0, len(cs.Env))
	for name := range cs.Env {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		cmd.Env = append(cmd.Env, host.EnvVar{Name: name, Value: cs.Env[name]})
	}
	return cmd, nil
}
