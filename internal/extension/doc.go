// Package extension implements the container-use context server extension.
// An Extension is created once by the host and asked, per project, for the
// command that starts `cu stdio` and for the configuration metadata shown
// in the host's settings UI. It remembers where it last found the binary.
package extension
