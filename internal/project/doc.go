// Package project reads editor settings for a worktree from disk and serves
// them through the host.Project contract. User-level settings are overlaid
// by the worktree's own settings file; both may contain comments.
package project
