// Package config manages settings of the development host itself, stored at
// $XDG_CONFIG_HOME/container-use-mcp/config.yaml and overridable through
// CONTAINER_USE_MCP_* environment variables. These are flag defaults, not
// extension settings; those come from the editor's settings files.
package config
