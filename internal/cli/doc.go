// Package cli defines the Cobra command tree for the development host. Each
// file registers one top-level command with the root command. The commands
// play the editor's part: they load a project's settings, drive the
// extension, and print what the editor would receive.
package cli
