// Package configuration holds the static documents shipped with the
// extension: the installation instructions shown by the host and the
// default settings template. It also converts the host's JSONC settings
// dialect to plain JSON.
package configuration
