// Package host defines the contract between the extension and the editor
// that loads it: what the host provides (project settings, a process
// facility) and what the extension hands back (a launch command and
// configuration metadata for a context server).
package host
